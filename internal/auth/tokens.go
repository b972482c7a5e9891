package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/homeboard/homeboard-backend/internal/config"
	"github.com/homeboard/homeboard-backend/internal/domain"
)

// UserSource resolves users for refresh-token verification.
type UserSource interface {
	FindByID(ctx context.Context, id uint) (*domain.User, error)
}

// TokenManager issues and verifies the access/refresh token pair. Access
// tokens are short-lived and signed with the application secret. Refresh
// tokens are long-lived and signed with the user's own refresh secret, so
// rotating that secret invalidates every refresh token issued before.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(cfg config.AuthConfig) *TokenManager {
	return &TokenManager{
		secret:     []byte(cfg.JWTSecret),
		accessTTL:  cfg.AccessTTL,
		refreshTTL: cfg.RefreshTTL,
	}
}

type accessClaims struct {
	jwt.RegisteredClaims
	UserID   uint   `json:"userId"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

type refreshClaims struct {
	jwt.RegisteredClaims
	UserID uint `json:"userId"`
}

// IssuePair creates a fresh access/refresh token pair for the user.
func (m *TokenManager) IssuePair(user *domain.User) (access string, refresh string, err error) {
	now := time.Now()

	access, err = jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
	}).SignedString(m.secret)
	if err != nil {
		return "", "", fmt.Errorf("sign access token: %w", err)
	}

	refresh, err = jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
		},
		UserID: user.ID,
	}).SignedString([]byte(user.RefreshSecret))
	if err != nil {
		return "", "", fmt.Errorf("sign refresh token: %w", err)
	}

	return access, refresh, nil
}

// VerifyAccess parses an access token and returns the user id it carries.
func (m *TokenManager) VerifyAccess(tokenString string) (uint, error) {
	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if !token.Valid || claims.UserID == 0 {
		return 0, domain.ErrUnauthenticated
	}
	return claims.UserID, nil
}

// Refresh validates a refresh token against the owning user's secret and
// returns the user together with a brand new token pair. The user id is read
// from the unverified claims first; the signature check then runs against
// that user's stored secret, exactly mirroring login.
func (m *TokenManager) Refresh(ctx context.Context, refreshToken string, users UserSource) (*domain.User, string, string, error) {
	claims := &refreshClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(refreshToken, claims); err != nil {
		return nil, "", "", fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if claims.UserID == 0 {
		return nil, "", "", domain.ErrUnauthenticated
	}

	user, err := users.FindByID(ctx, claims.UserID)
	if err != nil {
		return nil, "", "", fmt.Errorf("%w: unknown user", domain.ErrUnauthenticated)
	}

	verified := &refreshClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, verified, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(user.RefreshSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, "", "", fmt.Errorf("%w: invalid refresh token", domain.ErrUnauthenticated)
	}

	access, refresh, err := m.IssuePair(user)
	if err != nil {
		return nil, "", "", err
	}
	return user, access, refresh, nil
}
