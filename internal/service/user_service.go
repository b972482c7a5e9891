package service

import (
	"context"

	"github.com/homeboard/homeboard-backend/internal/domain"
	"github.com/homeboard/homeboard-backend/internal/mail"
	"github.com/homeboard/homeboard-backend/internal/repository"
)

// UserService implements account management: registration (open to anyone),
// the admin-only listing and edits, username search, and the reset-password
// mail flow.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*UserResponse, error)
	GetByID(ctx context.Context, id uint) (*UserResponse, error)
	List(ctx context.Context) ([]UserResponse, error)
	Search(ctx context.Context, fragment string) ([]UserResponse, error)
	Edit(ctx context.Context, id uint, req EditUserRequest) (*UserResponse, error)
	Delete(ctx context.Context, id uint) error
	ResetPassword(ctx context.Context, email string) error
}

type userService struct {
	users  repository.UserRepository
	mailer mail.Mailer
}

func NewUserService(users repository.UserRepository, mailer mail.Mailer) UserService {
	return &userService{users: users, mailer: mailer}
}

// Register creates a regular account. The role is never taken from the
// request; promotion to admin goes through Edit.
func (s *userService) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	user := &domain.User{
		Email:    req.Email,
		Username: req.Username,
		Role:     domain.RoleUser,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, err
	}
	user.RotateRefreshSecret()

	if err := checkEntity(user); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, mapStoreError(err)
	}
	return toUserResponse(user), nil
}

func (s *userService) GetByID(ctx context.Context, id uint) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context) ([]UserResponse, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, mapStoreError(err)
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserSummary(&users[i]))
	}
	return out, nil
}

// Search finds users by username fragment. Fragments under three characters
// are rejected to keep the result set (and the query) bounded.
func (s *userService) Search(ctx context.Context, fragment string) ([]UserResponse, error) {
	if len(fragment) < 3 {
		return nil, domain.ErrMalformed
	}
	users, err := s.users.SearchByUsername(ctx, fragment)
	if err != nil {
		return nil, mapStoreError(err)
	}
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserSummary(&users[i]))
	}
	return out, nil
}

func (s *userService) Edit(ctx context.Context, id uint, req EditUserRequest) (*UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "user", id)
	}
	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Role == domain.RoleUser || req.Role == domain.RoleAdmin {
		user.Role = req.Role
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if err := checkEntity(user); err != nil {
		return nil, err
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, mapStoreError(err)
	}
	return toUserResponse(user), nil
}

func (s *userService) Delete(ctx context.Context, id uint) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		return notFound(err, "user", id)
	}
	return mapStoreError(s.users.SoftDelete(ctx, id))
}

// ResetPassword invalidates the account's refresh tokens and sends the reset
// mail. An unknown email reports ErrNotFound so the handler can explain it.
func (s *userService) ResetPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return notFound(err, "user", 0)
	}
	user.RotateRefreshSecret()
	if err := s.users.Save(ctx, user); err != nil {
		return mapStoreError(err)
	}
	return s.mailer.SendResetPasswordMail(user.Email)
}
