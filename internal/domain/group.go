package domain

import (
	"time"

	"gorm.io/gorm"
)

// Group is a named set of users sharing visibility into business entities.
// The owner is the creator and is always part of Users. A Group is itself a
// business entity, with one asymmetry: any member may delete it, not only the
// owner.
type Group struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"not null" validate:"required"`
	OwnerID uint   `gorm:"not null"`
	Owner   *User

	Users []*User `gorm:"many2many:group_users;"`
}

func (g *Group) EntityKind() Kind    { return KindGroup }
func (g *Group) OwnerUserID() uint   { return g.OwnerID }
func (g *Group) GroupUserIDs() []uint {
	ids := make([]uint, 0, len(g.Users))
	for _, u := range g.Users {
		ids = append(ids, u.ID)
	}
	return ids
}
