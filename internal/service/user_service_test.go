package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homeboard/homeboard-backend/internal/domain"
)

func TestRegisterForcesUserRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, &fakeMailer{})

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	stored := users.users[resp.ID]
	assert.Equal(t, domain.RoleUser, stored.Role)
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.True(t, stored.CheckPassword("s3cret"))
	assert.NotEmpty(t, stored.RefreshSecret)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), &fakeMailer{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Username: "al",
		Email:    "not-an-email",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Register(context.Background(), RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "abc",
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, &fakeMailer{})

	req := RegisterRequest{Username: "alice", Email: "alice@example.com", Password: "s3cret"}
	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestSearchRequiresThreeCharacters(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, &fakeMailer{})
	users.users[1] = testUser(1, "alice")

	_, err := svc.Search(context.Background(), "al")
	assert.ErrorIs(t, err, domain.ErrMalformed)

	found, err := svc.Search(context.Background(), "ali")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "alice", found[0].Username)
}

func TestEditIgnoresUnknownRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, &fakeMailer{})
	users.users[1] = testUser(1, "alice")

	resp, err := svc.Edit(context.Background(), 1, EditUserRequest{Role: "SUPERUSER", Phone: "0600000000"})
	require.NoError(t, err)
	assert.Equal(t, "0600000000", resp.Phone)
	assert.Equal(t, domain.RoleUser, users.users[1].Role)

	_, err = svc.Edit(context.Background(), 1, EditUserRequest{Role: domain.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, users.users[1].Role)
}

func TestResetPasswordSendsMailAndRotatesSecret(t *testing.T) {
	users := newFakeUserRepo()
	mailer := &fakeMailer{}
	svc := NewUserService(users, mailer)

	user := testUser(1, "alice")
	user.RefreshSecret = "before"
	users.users[1] = user

	require.NoError(t, svc.ResetPassword(context.Background(), "alice@example.com"))
	assert.Equal(t, []string{"alice@example.com"}, mailer.sent)
	assert.NotEqual(t, "before", users.users[1].RefreshSecret)

	err := svc.ResetPassword(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Len(t, mailer.sent, 1)
}
