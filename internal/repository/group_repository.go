package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/homeboard/homeboard-backend/internal/domain"
)

// GroupRepository defines the data operations for groups. A group is visible
// to its owner and to every member.
type GroupRepository interface {
	FindVisibleByID(ctx context.Context, id, userID uint) (*domain.Group, error)
	FindVisibleByIDs(ctx context.Context, ids []uint, userID uint) ([]*domain.Group, error)
	FindAllVisible(ctx context.Context, userID uint) ([]domain.Group, error)
	Save(ctx context.Context, group *domain.Group) error
	SoftDelete(ctx context.Context, id uint) error
	SoftDeleteOwned(ctx context.Context, ids []uint, userID uint) error
}

type gormGroupRepository struct {
	db *gorm.DB
}

func NewGormGroupRepository(db *gorm.DB) GroupRepository {
	return &gormGroupRepository{db: db}
}

func visibleGroups(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"groups.owner_id = ? OR groups.id IN (SELECT group_id FROM group_users WHERE user_id = ?)",
			userID, userID,
		)
	}
}

func (r *gormGroupRepository) FindVisibleByID(ctx context.Context, id, userID uint) (*domain.Group, error) {
	var group domain.Group
	err := r.db.WithContext(ctx).
		Scopes(visibleGroups(userID)).
		Preload("Owner").
		Preload("Users").
		First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *gormGroupRepository) FindVisibleByIDs(ctx context.Context, ids []uint, userID uint) ([]*domain.Group, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var groups []*domain.Group
	err := r.db.WithContext(ctx).
		Scopes(visibleGroups(userID)).
		Where("groups.id IN ?", ids).
		Preload("Users").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *gormGroupRepository) FindAllVisible(ctx context.Context, userID uint) ([]domain.Group, error) {
	var groups []domain.Group
	err := r.db.WithContext(ctx).
		Scopes(visibleGroups(userID)).
		Preload("Owner").
		Preload("Users").
		Order("groups.updated_at DESC").
		Find(&groups).Error
	if err != nil {
		return nil, err
	}
	return groups, nil
}

// Save persists the group and replaces the membership join rows with the
// current Users slice, inside one transaction.
func (r *gormGroupRepository) Save(ctx context.Context, group *domain.Group) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(group).Error; err != nil {
			return err
		}
		return tx.Model(group).Association("Users").Replace(group.Users)
	})
}

func (r *gormGroupRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.Group{}, id).Error
}

// SoftDeleteOwned bulk-deletes groups, restricted to those the user owns.
// The bulk path is intentionally stricter than single delete.
func (r *gormGroupRepository) SoftDeleteOwned(ctx context.Context, ids []uint, userID uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("groups.owner_id = ?", userID).
		Where("groups.id IN ?", ids).
		Delete(&domain.Group{}).Error
}
