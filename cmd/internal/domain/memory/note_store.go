package memory

import (
	"context"
	"notesapi/cmd/internal/domain/entity"
	"notesapi/cmd/internal/utils"
	"sort"
	"sync"
)

// NoteStore keeps notes in a map. Ids start at 1 and are never reused.
type NoteStore struct {
	mu     sync.RWMutex
	lastID int64
	notes  map[int64]entity.Note
}

func NewNoteStore() *NoteStore {
	return &NoteStore{
		notes: make(map[int64]entity.Note),
	}
}

func (s *NoteStore) Create(_ context.Context, note *entity.Note) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	now := utils.NowUTC()

	stored := *note
	stored.ID = s.lastID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.notes[stored.ID] = stored

	note.ID = stored.ID
	return stored.ID, nil
}

func (s *NoteStore) Get(_ context.Context, id int64) (*entity.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	note, ok := s.notes[id]
	if !ok {
		return nil, nil
	}
	return &note, nil
}

func (s *NoteStore) GetAll(_ context.Context) ([]*entity.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]*entity.Note, 0, len(s.notes))
	for _, note := range s.notes {
		n := note
		notes = append(notes, &n)
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].ID < notes[j].ID
	})
	return notes, nil
}

func (s *NoteStore) Put(_ context.Context, id int64, note *entity.Note) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.notes[id]
	if !ok {
		return 0, nil
	}

	stored.Title = note.Title
	stored.Description = note.Description
	stored.UpdatedAt = utils.NowUTC()
	s.notes[id] = stored
	return id, nil
}
