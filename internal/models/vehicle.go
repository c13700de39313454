package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Vehicle is a car registered by a user. Seq is a per-user display order
// assigned at creation time and never reused while the vehicle is active.
type Vehicle struct {
	ID           uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	UserID       uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Seq          int            `gorm:"not null" json:"seq"`
	Maker        string         `gorm:"type:varchar(100);not null" json:"maker"`
	Model        string         `gorm:"type:varchar(100);not null" json:"model"`
	Year         *int           `json:"year"`
	Number       *string        `gorm:"type:varchar(50)" json:"number"`
	TankCapacity *float64       `json:"tank_capacity"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	FuelRecords []FuelRecord `gorm:"foreignKey:VehicleID" json:"-"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
