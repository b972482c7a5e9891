package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/homeboard/homeboard-backend/internal/auth"
	"github.com/homeboard/homeboard-backend/internal/domain"
	"github.com/homeboard/homeboard-backend/internal/repository"
)

// AuthService implements login and password change. Token issuance is
// delegated to the token manager; this layer owns credential checking.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	ChangePassword(ctx context.Context, user *domain.User, req ChangePasswordRequest) error
}

// LoginResult bundles the authenticated user with its fresh token pair.
type LoginResult struct {
	User         *UserResponse
	AccessToken  string
	RefreshToken string
}

type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{users: users, tokens: tokens}
}

// Login checks the credentials and issues a token pair. An unknown email and
// a wrong password fail identically, nothing leaks which one it was.
func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, domain.ErrMalformed
	}
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, domain.ErrUnauthenticated
	}

	access, refresh, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		User:         toUserResponse(user),
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// ChangePassword verifies the old password, stores the new one, and rotates
// the refresh secret so every session except the fresh pair is logged out.
func (s *authService) ChangePassword(ctx context.Context, user *domain.User, req ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return domain.ErrMalformed
	}
	if !user.CheckPassword(req.OldPassword) {
		return domain.ErrUnauthenticated
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}
	user.RotateRefreshSecret()
	return mapStoreError(s.users.Save(ctx, user))
}
