package domain

import (
	"time"

	"gorm.io/gorm"
)

// Vehicle owns an ordered list of servicings; each servicing owns its acts.
// Both levels are cascade-owned and fully replaced on save.
type Vehicle struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Brand          string
	Model          string
	Identification string
	OwnerID        uint `gorm:"not null"`
	Owner          *User
	GroupID        *uint
	Group          *Group

	Servicings []Servicing `gorm:"constraint:OnDelete:CASCADE"`
}

func (v *Vehicle) EntityKind() Kind  { return KindVehicle }
func (v *Vehicle) OwnerUserID() uint { return v.OwnerID }
func (v *Vehicle) GroupUserIDs() []uint {
	if v.Group == nil {
		return nil
	}
	return v.Group.GroupUserIDs()
}

// Servicing is one garage visit, identified by the odometer reading.
type Servicing struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Kilometer int       `gorm:"not null" validate:"required,gt=0"`
	Date      time.Time
	VehicleID uint `gorm:"not null"`

	Acts []Act `gorm:"constraint:OnDelete:CASCADE"`
}

// Act is one operation performed during a servicing.
type Act struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Description string `gorm:"not null" validate:"required"`
	Comment     string
	ServicingID uint `gorm:"not null"`
}
