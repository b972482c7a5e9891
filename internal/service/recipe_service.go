package service

import (
	"context"
	"fmt"

	"github.com/homeboard/homeboard-backend/internal/domain"
	"github.com/homeboard/homeboard-backend/internal/policy"
	"github.com/homeboard/homeboard-backend/internal/repository"
)

// RecipeService implements the cooking recipe workflows. Recipes are the one
// entity shared with several groups at once, so the group field is a list.
type RecipeService interface {
	Upsert(ctx context.Context, user *domain.User, req RecipeRequest) (*RecipeResponse, bool, error)
	Edit(ctx context.Context, user *domain.User, id uint, req RecipeRequest) (*RecipeResponse, error)
	GetByID(ctx context.Context, user *domain.User, id uint) (*RecipeResponse, error)
	List(ctx context.Context, user *domain.User) ([]RecipeResponse, error)
	Delete(ctx context.Context, user *domain.User, id uint) error
	MultiDelete(ctx context.Context, user *domain.User, items []MultiDeleteItem) error
}

type recipeService struct {
	recipes repository.RecipeRepository
	groups  repository.GroupRepository
}

func NewRecipeService(recipes repository.RecipeRepository, groups repository.GroupRepository) RecipeService {
	return &recipeService{recipes: recipes, groups: groups}
}

// resolveGroups looks up every referenced group in the user's visibility
// scope. Any id that resolves to nothing aborts the request, the association
// update is all or nothing.
func (s *recipeService) resolveGroups(ctx context.Context, ref GroupsRef, userID uint) ([]*domain.Group, error) {
	if len(ref.IDs) == 0 {
		return nil, nil
	}
	ids := make([]uint, 0, len(ref.IDs))
	for _, id := range ref.IDs {
		if id > 0 {
			ids = append(ids, uint(id))
		}
	}
	if len(ids) == 0 {
		return nil, nil
	}
	found, err := s.groups.FindVisibleByIDs(ctx, ids, userID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	if len(found) != len(ids) {
		return nil, fmt.Errorf("groups %v: %w", ids, domain.ErrNotFound)
	}
	return found, nil
}

func (s *recipeService) apply(ctx context.Context, user *domain.User, recipe *domain.CookingRecipe, req RecipeRequest) error {
	if req.Name != "" {
		recipe.Name = req.Name
	}
	if req.Description != "" {
		recipe.Description = req.Description
	}
	if req.PreparationTime != 0 {
		recipe.PreparationTime = req.PreparationTime
	}
	if req.NbPerson != 0 {
		recipe.NbPerson = req.NbPerson
	}
	if req.Recipe != "" {
		recipe.Recipe = req.Recipe
	}
	if req.Groups.Present {
		groups, err := s.resolveGroups(ctx, req.Groups, user.ID)
		if err != nil {
			return err
		}
		recipe.Groups = groups
	}
	return checkEntity(recipe)
}

func (s *recipeService) Upsert(ctx context.Context, user *domain.User, req RecipeRequest) (*RecipeResponse, bool, error) {
	recipe := &domain.CookingRecipe{OwnerID: user.ID, Owner: user}
	created := true

	if req.ID != 0 {
		found, err := s.recipes.FindVisibleByID(ctx, req.ID, user.ID)
		if err != nil {
			return nil, false, notFound(err, "recipe", req.ID)
		}
		if !policy.CanAccess(user, found) {
			return nil, false, domain.ErrForbidden
		}
		recipe = found
		created = false
	}

	if err := s.apply(ctx, user, recipe, req); err != nil {
		return nil, false, err
	}
	if err := s.recipes.Save(ctx, recipe); err != nil {
		return nil, false, mapStoreError(err)
	}
	return toRecipeResponse(recipe), created, nil
}

func (s *recipeService) Edit(ctx context.Context, user *domain.User, id uint, req RecipeRequest) (*RecipeResponse, error) {
	recipe, err := s.recipes.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return nil, notFound(err, "recipe", id)
	}
	if !policy.CanAccess(user, recipe) {
		return nil, domain.ErrForbidden
	}
	if err := s.apply(ctx, user, recipe, req); err != nil {
		return nil, err
	}
	if err := s.recipes.Save(ctx, recipe); err != nil {
		return nil, mapStoreError(err)
	}
	return toRecipeResponse(recipe), nil
}

func (s *recipeService) GetByID(ctx context.Context, user *domain.User, id uint) (*RecipeResponse, error) {
	recipe, err := s.recipes.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return nil, notFound(err, "recipe", id)
	}
	if !policy.CanAccess(user, recipe) {
		return nil, domain.ErrForbidden
	}
	return toRecipeResponse(recipe), nil
}

func (s *recipeService) List(ctx context.Context, user *domain.User) ([]RecipeResponse, error) {
	recipes, err := s.recipes.FindAllVisible(ctx, user.ID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, *toRecipeResponse(&recipes[i]))
	}
	return out, nil
}

func (s *recipeService) Delete(ctx context.Context, user *domain.User, id uint) error {
	recipe, err := s.recipes.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return notFound(err, "recipe", id)
	}
	if !policy.CanDelete(user, recipe) {
		return domain.ErrForbidden
	}
	return mapStoreError(s.recipes.SoftDelete(ctx, recipe.ID))
}

func (s *recipeService) MultiDelete(ctx context.Context, user *domain.User, items []MultiDeleteItem) error {
	ids := deleteIDs(items)
	if len(ids) == 0 {
		return nil
	}
	return mapStoreError(s.recipes.SoftDeleteVisible(ctx, ids, user.ID))
}
