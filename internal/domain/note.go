package domain

import (
	"time"

	"gorm.io/gorm"
)

// Note is a free-text entry, optionally shared through a group.
type Note struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"not null" validate:"required"`
	Data    string `gorm:"type:text"`
	OwnerID uint   `gorm:"not null"`
	Owner   *User
	GroupID *uint
	Group   *Group
}

func (n *Note) EntityKind() Kind  { return KindNote }
func (n *Note) OwnerUserID() uint { return n.OwnerID }
func (n *Note) GroupUserIDs() []uint {
	if n.Group == nil {
		return nil
	}
	return n.Group.GroupUserIDs()
}
