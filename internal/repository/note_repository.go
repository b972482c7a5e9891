package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/homeboard/homeboard-backend/internal/domain"
)

// NoteRepository defines the data operations for notes, visibility-scoped the
// same way as todos.
type NoteRepository interface {
	FindVisibleByID(ctx context.Context, id, userID uint) (*domain.Note, error)
	FindAllVisible(ctx context.Context, userID uint) ([]domain.Note, error)
	Save(ctx context.Context, note *domain.Note) error
	SoftDelete(ctx context.Context, id uint) error
	SoftDeleteVisible(ctx context.Context, ids []uint, userID uint) error
}

type gormNoteRepository struct {
	db *gorm.DB
}

func NewGormNoteRepository(db *gorm.DB) NoteRepository {
	return &gormNoteRepository{db: db}
}

func visibleNotes(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"notes.owner_id = ? OR notes.group_id IN (SELECT group_id FROM group_users WHERE user_id = ?)",
			userID, userID,
		)
	}
}

func (r *gormNoteRepository) FindVisibleByID(ctx context.Context, id, userID uint) (*domain.Note, error) {
	var note domain.Note
	err := r.db.WithContext(ctx).
		Scopes(visibleNotes(userID)).
		Preload("Owner").
		Preload("Group.Users").
		First(&note, id).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *gormNoteRepository) FindAllVisible(ctx context.Context, userID uint) ([]domain.Note, error) {
	var notes []domain.Note
	err := r.db.WithContext(ctx).
		Scopes(visibleNotes(userID)).
		Preload("Owner").
		Preload("Group").
		Order("notes.updated_at DESC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *gormNoteRepository) Save(ctx context.Context, note *domain.Note) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(note).Error
}

func (r *gormNoteRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Note{}, id).Error
}

func (r *gormNoteRepository) SoftDeleteVisible(ctx context.Context, ids []uint, userID uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Scopes(visibleNotes(userID)).
		Where("notes.id IN ?", ids).
		Delete(&domain.Note{}).Error
}
