package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/homeboard/homeboard-backend/internal/domain"
)

// RecipeRepository defines the data operations for cooking recipes. Recipes
// are the one entity shared with multiple groups, so visibility goes through
// the recipe_groups join table.
type RecipeRepository interface {
	FindVisibleByID(ctx context.Context, id, userID uint) (*domain.CookingRecipe, error)
	FindAllVisible(ctx context.Context, userID uint) ([]domain.CookingRecipe, error)
	Save(ctx context.Context, recipe *domain.CookingRecipe) error
	SoftDelete(ctx context.Context, id uint) error
	SoftDeleteVisible(ctx context.Context, ids []uint, userID uint) error
}

type gormRecipeRepository struct {
	db *gorm.DB
}

func NewGormRecipeRepository(db *gorm.DB) RecipeRepository {
	return &gormRecipeRepository{db: db}
}

func visibleRecipes(userID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"cooking_recipes.owner_id = ? OR cooking_recipes.id IN (SELECT cooking_recipe_id FROM recipe_groups WHERE group_id IN (SELECT group_id FROM group_users WHERE user_id = ?))",
			userID, userID,
		)
	}
}

func (r *gormRecipeRepository) FindVisibleByID(ctx context.Context, id, userID uint) (*domain.CookingRecipe, error) {
	var recipe domain.CookingRecipe
	err := r.db.WithContext(ctx).
		Scopes(visibleRecipes(userID)).
		Preload("Owner").
		Preload("Groups.Users").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *gormRecipeRepository) FindAllVisible(ctx context.Context, userID uint) ([]domain.CookingRecipe, error) {
	var recipes []domain.CookingRecipe
	err := r.db.WithContext(ctx).
		Scopes(visibleRecipes(userID)).
		Preload("Owner").
		Preload("Groups").
		Order("cooking_recipes.updated_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// Save persists the recipe and replaces its group associations (join rows
// only, the groups themselves are untouched).
func (r *gormRecipeRepository) Save(ctx context.Context, recipe *domain.CookingRecipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(recipe).Error; err != nil {
			return err
		}
		return tx.Model(recipe).Association("Groups").Replace(recipe.Groups)
	})
}

func (r *gormRecipeRepository) SoftDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&domain.CookingRecipe{}, id).Error
}

func (r *gormRecipeRepository) SoftDeleteVisible(ctx context.Context, ids []uint, userID uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Scopes(visibleRecipes(userID)).
		Where("cooking_recipes.id IN ?", ids).
		Delete(&domain.CookingRecipe{}).Error
}
