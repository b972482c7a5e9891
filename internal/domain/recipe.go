package domain

import (
	"time"

	"gorm.io/gorm"
)

// CookingRecipe is the one entity shareable with multiple groups at once.
// The name is unique across the whole table, not per user.
type CookingRecipe struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name            string `gorm:"uniqueIndex;not null" validate:"required"`
	Description     string `gorm:"type:text"`
	PreparationTime int
	NbPerson        int
	Recipe          string `gorm:"type:text"`
	OwnerID         uint   `gorm:"not null"`
	Owner           *User

	Groups []*Group `gorm:"many2many:recipe_groups;"`
}

func (r *CookingRecipe) EntityKind() Kind  { return KindRecipe }
func (r *CookingRecipe) OwnerUserID() uint { return r.OwnerID }
func (r *CookingRecipe) GroupUserIDs() []uint {
	var ids []uint
	for _, g := range r.Groups {
		ids = append(ids, g.GroupUserIDs()...)
	}
	return ids
}
