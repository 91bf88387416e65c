package repository

import (
	"context"
	"errors"
	"notesapi/cmd/internal/domain/entity"
	"notesapi/cmd/internal/utils"

	"gorm.io/gorm"
)

type DefaultNoteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) *DefaultNoteRepository {
	return &DefaultNoteRepository{db: db}
}

func (d *DefaultNoteRepository) Create(ctx context.Context, note *entity.Note) (int64, error) {
	now := utils.NowUTC()
	note.ID = 0
	note.CreatedAt = now
	note.UpdatedAt = now

	err := d.db.WithContext(ctx).Create(note).Error
	if err != nil {
		return 0, err
	}
	return note.ID, nil
}

func (d *DefaultNoteRepository) Get(ctx context.Context, id int64) (*entity.Note, error) {
	var note entity.Note
	err := d.db.WithContext(ctx).First(&note, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (d *DefaultNoteRepository) GetAll(ctx context.Context) ([]*entity.Note, error) {
	notes := []*entity.Note{}
	err := d.db.WithContext(ctx).Order("id").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Put replaces title and description of the note with the given id.
// It returns 0 if no such note exists.
func (d *DefaultNoteRepository) Put(ctx context.Context, id int64, note *entity.Note) (int64, error) {
	result := d.db.WithContext(ctx).
		Model(&entity.Note{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"title":       note.Title,
			"description": note.Description,
			"updated_at":  utils.NowUTC(),
		})

	if result.Error != nil {
		return 0, result.Error
	}

	if result.RowsAffected == 0 {
		return 0, nil
	}
	return id, nil
}
