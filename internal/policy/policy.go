// Package policy decides what a connected user may do with a business entity.
// Repository lookups are already visibility-scoped (owner OR group member),
// so CanAccess is a second, explicit gate: if a query is ever broadened by
// accident, unauthorized rows still fail here instead of silently passing.
package policy

import "github.com/homeboard/homeboard-backend/internal/domain"

// CanAccess reports whether the user may read or write the entity: the user
// owns it or is a member of a group it is shared with.
func CanAccess(user *domain.User, entity domain.BusinessEntity) bool {
	if user == nil || entity == nil {
		return false
	}
	if entity.OwnerUserID() == user.ID {
		return true
	}
	return isMember(user.ID, entity.GroupUserIDs())
}

// CanDelete reports whether the user may delete the entity. Deletion requires
// exact ownership, except for groups: any member may delete a group.
func CanDelete(user *domain.User, entity domain.BusinessEntity) bool {
	if user == nil || entity == nil {
		return false
	}
	if entity.EntityKind() == domain.KindGroup {
		return isMember(user.ID, entity.GroupUserIDs())
	}
	return entity.OwnerUserID() == user.ID
}

func isMember(userID uint, members []uint) bool {
	for _, id := range members {
		if id == userID {
			return true
		}
	}
	return false
}
