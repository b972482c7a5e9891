package service

import (
	"context"
	"errors"
	"log/slog"

	"gorm.io/gorm"

	"github.com/homeboard/homeboard-backend/internal/domain"
	"github.com/homeboard/homeboard-backend/internal/policy"
	"github.com/homeboard/homeboard-backend/internal/reconcile"
	"github.com/homeboard/homeboard-backend/internal/repository"
)

// GroupService implements the group workflows: creation, membership edits,
// ownership transfer, and deletion. The creator becomes owner and first
// member in one step.
type GroupService interface {
	Upsert(ctx context.Context, user *domain.User, req GroupRequest) (*GroupResponse, bool, error)
	Edit(ctx context.Context, user *domain.User, id uint, req GroupEditRequest) (*GroupResponse, error)
	GetByID(ctx context.Context, user *domain.User, id uint) (*GroupResponse, error)
	List(ctx context.Context, user *domain.User) ([]GroupResponse, error)
	Delete(ctx context.Context, user *domain.User, id uint) error
	MultiDelete(ctx context.Context, user *domain.User, items []MultiDeleteItem) error
}

type groupService struct {
	groups repository.GroupRepository
	users  repository.UserRepository
}

func NewGroupService(groups repository.GroupRepository, users repository.UserRepository) GroupService {
	return &groupService{groups: groups, users: users}
}

func (s *groupService) Upsert(ctx context.Context, user *domain.User, req GroupRequest) (*GroupResponse, bool, error) {
	group := &domain.Group{OwnerID: user.ID, Owner: user, Users: []*domain.User{user}}
	created := true

	if req.ID != 0 {
		found, err := s.groups.FindVisibleByID(ctx, req.ID, user.ID)
		if err != nil {
			return nil, false, notFound(err, "group", req.ID)
		}
		group = found
		created = false
	}

	if req.Name != "" {
		group.Name = req.Name
	}
	if err := checkEntity(group); err != nil {
		return nil, false, err
	}
	if err := s.groups.Save(ctx, group); err != nil {
		return nil, false, mapStoreError(err)
	}
	return toGroupResponse(group), created, nil
}

// matchMember reconciles one requested member against the current list. A
// user already in the group is kept as is; anyone else is looked up, and an
// unknown id is dropped with a warning rather than failing the edit.
func (s *groupService) matchMember(ctx context.Context, group *domain.Group) reconcile.MatchFunc[UserRef, domain.User] {
	return func(req UserRef) (*domain.User, error) {
		if req.ID == 0 {
			return nil, nil
		}
		for _, u := range group.Users {
			if u.ID == req.ID {
				member := *u
				return &member, nil
			}
		}
		user, err := s.users.FindByID(ctx, req.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				slog.Warn("dropping unknown user from group members", "group_id", group.ID, "user_id", req.ID)
				return nil, nil
			}
			return nil, err
		}
		return user, nil
	}
}

// Edit applies a partial update: rename, transfer ownership, replace the
// member list. A present empty member list empties the group.
func (s *groupService) Edit(ctx context.Context, user *domain.User, id uint, req GroupEditRequest) (*GroupResponse, error) {
	group, err := s.groups.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return nil, notFound(err, "group", id)
	}
	if !policy.CanAccess(user, group) {
		return nil, domain.ErrForbidden
	}

	if len(req.Name) > 5 {
		group.Name = req.Name
	}
	if req.Owner != nil && req.Owner.ID != 0 {
		owner, err := s.users.FindByID(ctx, req.Owner.ID)
		if err != nil {
			return nil, notFound(err, "user", req.Owner.ID)
		}
		group.OwnerID = owner.ID
		group.Owner = owner
	}
	if req.Users != nil {
		members, err := reconcile.Merge(*req.Users, s.matchMember(ctx, group))
		if err != nil {
			return nil, err
		}
		group.Users = make([]*domain.User, 0, len(members))
		for i := range members {
			group.Users = append(group.Users, &members[i])
		}
	}

	if err := checkEntity(group); err != nil {
		return nil, err
	}
	if err := s.groups.Save(ctx, group); err != nil {
		return nil, mapStoreError(err)
	}
	return toGroupResponse(group), nil
}

func (s *groupService) GetByID(ctx context.Context, user *domain.User, id uint) (*GroupResponse, error) {
	group, err := s.groups.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return nil, notFound(err, "group", id)
	}
	if !policy.CanAccess(user, group) {
		return nil, domain.ErrForbidden
	}
	return toGroupResponse(group), nil
}

func (s *groupService) List(ctx context.Context, user *domain.User) ([]GroupResponse, error) {
	groups, err := s.groups.FindAllVisible(ctx, user.ID)
	if err != nil {
		return nil, mapStoreError(err)
	}
	out := make([]GroupResponse, 0, len(groups))
	for i := range groups {
		out = append(out, *toGroupResponse(&groups[i]))
	}
	return out, nil
}

// Delete removes a group. Unlike the other entities, any member may delete
// it, not only the owner.
func (s *groupService) Delete(ctx context.Context, user *domain.User, id uint) error {
	group, err := s.groups.FindVisibleByID(ctx, id, user.ID)
	if err != nil {
		return notFound(err, "group", id)
	}
	if !policy.CanDelete(user, group) {
		return domain.ErrForbidden
	}
	return mapStoreError(s.groups.SoftDelete(ctx, group.ID))
}

// MultiDelete removes the requested groups the user owns. The bulk path is
// stricter than single delete on purpose: membership alone is not enough.
func (s *groupService) MultiDelete(ctx context.Context, user *domain.User, items []MultiDeleteItem) error {
	ids := deleteIDs(items)
	if len(ids) == 0 {
		return nil
	}
	return mapStoreError(s.groups.SoftDeleteOwned(ctx, ids, user.ID))
}
