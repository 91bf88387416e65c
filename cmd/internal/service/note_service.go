package service

import (
	"context"
	"notesapi/cmd/internal/contract"
	"notesapi/cmd/internal/domain/entity"
	"notesapi/cmd/internal/utils"
	"notesapi/cmd/internal/utils/apierror"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

// NoteStore persists notes. Get returns (nil, nil) when the note does not exist,
// and Put returns 0 when nothing was updated.
type NoteStore interface {
	Create(ctx context.Context, note *entity.Note) (int64, error)
	Get(ctx context.Context, id int64) (*entity.Note, error)
	GetAll(ctx context.Context) ([]*entity.Note, error)
	Put(ctx context.Context, id int64, note *entity.Note) (int64, error)
}

type DefaultNoteService struct {
	Store    NoteStore
	Validate *validator.Validate
}

func NewNoteService(store NoteStore, validate *validator.Validate) *DefaultNoteService {
	return &DefaultNoteService{
		Store:    store,
		Validate: validate,
	}
}

func (n *DefaultNoteService) GetAllNotes(ctx context.Context) ([]*contract.NoteResponse, apierror.ErrorResponse) {
	notes, err := n.Store.GetAll(ctx)
	if err != nil {
		log.Errorf("failed to fetch notes: %v", err)
		return nil, apierror.InternalServerError
	}

	resp := make([]*contract.NoteResponse, len(notes))
	for i, note := range notes {
		resp[i] = toNoteResponse(note)
	}
	return resp, nil
}

func (n *DefaultNoteService) GetNoteByID(ctx context.Context, noteID int64) (*contract.NoteResponse, apierror.ErrorResponse) {
	note, err := n.Store.Get(ctx, noteID)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", noteID, err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NoteNotFoundError
	}
	return toNoteResponse(note), nil
}

func (n *DefaultNoteService) CreateNote(ctx context.Context, req *contract.NoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, validationError(valerr)
	}

	note := &entity.Note{
		Title:       req.Title,
		Description: req.Description,
	}

	id, err := n.Store.Create(ctx, note)
	if err != nil {
		log.Errorf("failed to save note: %v", err)
		return nil, apierror.InternalServerError
	}

	log.Debugf("created note %d", id)
	return &contract.NoteResponse{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
	}, nil
}

// UpdateNote validates the payload before looking the note up, so an invalid
// payload is rejected even when the note does not exist.
func (n *DefaultNoteService) UpdateNote(ctx context.Context, noteID int64, req *contract.UpdateNoteRequest) (*contract.NoteResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, validationError(valerr)
	}

	note, err := n.Store.Get(ctx, noteID)
	if err != nil {
		log.Errorf("failed to fetch note %d: %v", noteID, err)
		return nil, apierror.InternalServerError
	}

	if note == nil {
		return nil, apierror.NoteNotFoundError
	}

	note.Title = req.Title
	note.Description = req.Description

	id, err := n.Store.Put(ctx, noteID, note)
	if err != nil {
		log.Errorf("failed to update note %d: %v", noteID, err)
		return nil, apierror.InternalServerError
	}

	// The note existed a moment ago but the store updated nothing.
	if id == 0 {
		return nil, apierror.NoteNotFoundError
	}

	return &contract.NoteResponse{
		ID:          noteID,
		Title:       req.Title,
		Description: req.Description,
	}, nil
}

func validationError(err error) apierror.ErrorResponse {
	if apierr := apierror.FromValidationError(err); apierr != nil {
		return apierr
	}

	// Only InvalidValidationError ends up here, which is a programming error.
	log.Errorf("unexpected validation failure: %v", err)
	return apierror.InternalServerError
}

func toNoteResponse(note *entity.Note) *contract.NoteResponse {
	return &contract.NoteResponse{
		ID:          note.ID,
		Title:       note.Title,
		Description: note.Description,
	}
}
