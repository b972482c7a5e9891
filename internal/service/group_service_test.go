package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeboard/homeboard-backend/internal/domain"
)

func TestGroupUpsertCreatorBecomesOwnerAndMember(t *testing.T) {
	groups := newFakeGroupRepo()
	svc := NewGroupService(groups, newFakeUserRepo())
	creator := testUser(1, "alice")

	resp, created, err := svc.Upsert(context.Background(), creator, GroupRequest{Name: "household"})
	require.NoError(t, err)
	assert.True(t, created)
	require.NotNil(t, resp.Owner)
	assert.EqualValues(t, 1, resp.Owner.ID)
	require.Len(t, resp.Users, 1)
	assert.EqualValues(t, 1, resp.Users[0].ID)
}

func TestGroupUpsertRequiresName(t *testing.T) {
	svc := NewGroupService(newFakeGroupRepo(), newFakeUserRepo())

	_, _, err := svc.Upsert(context.Background(), testUser(1, "alice"), GroupRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGroupEditReconcilesMembers(t *testing.T) {
	groups := newFakeGroupRepo()
	users := newFakeUserRepo()
	svc := NewGroupService(groups, users)

	owner := testUser(1, "alice")
	member := testUser(2, "bobby")
	joiner := testUser(3, "carol")
	users.users[1] = owner
	users.users[2] = member
	users.users[3] = joiner
	groups.groups[5] = testGroup(5, owner, member)

	// keep the owner, drop bobby, add carol, ignore an unknown id
	members := []UserRef{{ID: 1}, {ID: 3}, {ID: 404}}
	resp, err := svc.Edit(context.Background(), owner, 5, GroupEditRequest{Users: &members})
	require.NoError(t, err)
	require.Len(t, resp.Users, 2)
	assert.EqualValues(t, 1, resp.Users[0].ID)
	assert.EqualValues(t, 3, resp.Users[1].ID)
}

func TestGroupEditTransfersOwnership(t *testing.T) {
	groups := newFakeGroupRepo()
	users := newFakeUserRepo()
	svc := NewGroupService(groups, users)

	owner := testUser(1, "alice")
	member := testUser(2, "bobby")
	users.users[1] = owner
	users.users[2] = member
	groups.groups[5] = testGroup(5, owner, member)

	resp, err := svc.Edit(context.Background(), owner, 5, GroupEditRequest{Owner: &UserRef{ID: 2}})
	require.NoError(t, err)
	require.NotNil(t, resp.Owner)
	assert.EqualValues(t, 2, resp.Owner.ID)

	_, err = svc.Edit(context.Background(), member, 5, GroupEditRequest{Owner: &UserRef{ID: 404}})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGroupAnyMemberCanDelete(t *testing.T) {
	groups := newFakeGroupRepo()
	svc := NewGroupService(groups, newFakeUserRepo())

	owner := testUser(1, "alice")
	member := testUser(2, "bobby")
	groups.groups[5] = testGroup(5, owner, member)

	err := svc.Delete(context.Background(), member, 5)
	require.NoError(t, err)
	assert.Equal(t, []uint{5}, groups.deleted)
}

func TestGroupStrangerCannotDelete(t *testing.T) {
	groups := newFakeGroupRepo()
	svc := NewGroupService(groups, newFakeUserRepo())
	groups.groups[5] = testGroup(5, testUser(1, "alice"))

	err := svc.Delete(context.Background(), testUser(9, "mallory"), 5)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGroupMultiDeleteOwnerOnly(t *testing.T) {
	groups := newFakeGroupRepo()
	svc := NewGroupService(groups, newFakeUserRepo())

	owner := testUser(1, "alice")
	member := testUser(2, "bobby")
	groups.groups[5] = testGroup(5, owner, member)
	groups.groups[6] = testGroup(6, member, owner)

	err := svc.MultiDelete(context.Background(), owner, []MultiDeleteItem{{ID: 5}, {ID: 6}})
	require.NoError(t, err)
	assert.Equal(t, []uint{5}, groups.deleted)
	assert.Contains(t, groups.groups, uint(6))
}
