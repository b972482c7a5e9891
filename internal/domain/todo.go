package domain

import (
	"time"

	"gorm.io/gorm"
)

// Todo is a checklist owned by one user, optionally shared through a group.
// Tasks are cascade-owned: they are saved and soft-deleted with their Todo,
// and a save replaces the full task list.
type Todo struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name    string `gorm:"not null" validate:"required"`
	Status  bool   `gorm:"not null"`
	OwnerID uint   `gorm:"not null"`
	Owner   *User
	GroupID *uint
	Group   *Group

	Tasks []Task `gorm:"constraint:OnDelete:CASCADE"`
}

func (t *Todo) EntityKind() Kind  { return KindTodo }
func (t *Todo) OwnerUserID() uint { return t.OwnerID }
func (t *Todo) GroupUserIDs() []uint {
	if t.Group == nil {
		return nil
	}
	return t.Group.GroupUserIDs()
}

// Task belongs to exactly one Todo.
type Task struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Description string `gorm:"not null" validate:"required"`
	Status      bool   `gorm:"not null"`
	TodoID      uint   `gorm:"not null"`
}
