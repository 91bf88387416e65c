package contract

// DefaultTitleMaxLength is used when NOTES_TITLE_MAX_LENGTH is not set.
const DefaultTitleMaxLength = 50

type NoteResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// NoteRequest is the body of POST /notes/.
//
// The "titlelen" tag is an alias registered by validators.New with the
// configured maximum title length.
type NoteRequest struct {
	Title       string `json:"title" validate:"required,titlelen"`
	Description string `json:"description" validate:"required"`
}

// UpdateNoteRequest replaces a note wholesale, so both fields are required.
type UpdateNoteRequest struct {
	Title       string `json:"title" validate:"required,titlelen"`
	Description string `json:"description" validate:"required"`
}
