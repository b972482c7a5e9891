package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/homeboard/homeboard-backend/internal/domain"
	"github.com/homeboard/homeboard-backend/internal/repository"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkEntity runs struct validation and folds violations into a single
// ErrValidation naming the offending fields.
func checkEntity(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field())
		}
		return fmt.Errorf("%w: %s", domain.ErrValidation, strings.Join(fields, ", "))
	}
	return err
}

// mapStoreError translates persistence errors into domain sentinels so the
// HTTP layer never sees gorm.
func mapStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrConflict
	default:
		return err
	}
}

// notFound wraps lookup failures: a record that does not exist and one the
// user cannot see are deliberately indistinguishable.
func notFound(err error, what string, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", what, id, domain.ErrNotFound)
	}
	return err
}

// resolveGroupRef turns a present group reference into the group to attach.
// A nil result means detach. An id the user cannot see aborts the whole
// request with ErrNotFound, so a typo never silently drops the association.
func resolveGroupRef(ctx context.Context, groups repository.GroupRepository, ref GroupRef, userID uint) (*domain.Group, error) {
	if ref.Detach() {
		return nil, nil
	}
	group, err := groups.FindVisibleByID(ctx, uint(*ref.ID), userID)
	if err != nil {
		return nil, notFound(err, "group", uint(*ref.ID))
	}
	return group, nil
}

// attachGroup applies a resolved group to an entity's foreign key pair.
func attachGroup(group *domain.Group, groupID **uint, groupField **domain.Group) {
	*groupField = group
	if group == nil {
		*groupID = nil
		return
	}
	id := group.ID
	*groupID = &id
}

func deleteIDs(items []MultiDeleteItem) []uint {
	ids := make([]uint, 0, len(items))
	for _, it := range items {
		if it.ID != 0 {
			ids = append(ids, it.ID)
		}
	}
	return ids
}
