package domain

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the authentication principal. Password holds the bcrypt hash;
// RefreshSecret signs the user's refresh tokens, so rotating it invalidates
// every refresh token issued before the rotation.
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email         string `gorm:"uniqueIndex;not null" validate:"required,email"`
	Username      string `gorm:"not null" validate:"required,min=4,max=20"`
	Password      string `gorm:"not null"`
	RefreshSecret string `gorm:"not null"`
	Role          string `gorm:"not null" validate:"required"`
	Phone         string

	Groups []*Group `gorm:"many2many:group_users;"`
}

// SetPassword validates the clear-text length and stores the bcrypt hash.
func (u *User) SetPassword(clear string) error {
	if len(clear) < 4 || len(clear) > 100 {
		return ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(clear), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hash)
	return nil
}

// CheckPassword reports whether the clear-text password matches the stored hash.
func (u *User) CheckPassword(clear string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(clear)) == nil
}

// RotateRefreshSecret replaces the signing secret for refresh tokens.
func (u *User) RotateRefreshSecret() {
	u.RefreshSecret = uuid.NewString()
}
