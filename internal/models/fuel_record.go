package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FuelRecord is a single fill-up for a vehicle. TotalMileage is the odometer
// reading at refuel time; UnitPrice and TotalCost are integers in the
// currency's minor unit. Efficiency figures are derived at read time and
// never stored.
type FuelRecord struct {
	ID             uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	VehicleID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"vehicle_id"`
	UserID         uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	RefuelDatetime time.Time      `gorm:"not null" json:"refuel_datetime"`
	TotalMileage   int            `gorm:"not null" json:"total_mileage"`
	FuelType       string         `gorm:"type:varchar(50);not null" json:"fuel_type"`
	UnitPrice      int            `gorm:"not null" json:"unit_price"`
	TotalCost      int            `gorm:"not null" json:"total_cost"`
	IsFullTank     bool           `gorm:"not null;default:false" json:"is_full_tank"`
	GasStationName *string        `gorm:"type:varchar(255)" json:"gas_station_name"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (r *FuelRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
