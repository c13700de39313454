package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ynym/garage-api/internal/models"
	"github.com/ynym/garage-api/internal/services"
	"github.com/ynym/garage-api/internal/utils"
)

// FuelRecordDTO represents a fuel record in API responses. The derived
// fields are only present when the listing was scoped to one vehicle; they
// are computed per response and never stored.
type FuelRecordDTO struct {
	ID             uuid.UUID `json:"id"`
	VehicleID      uuid.UUID `json:"vehicle_id"`
	UserID         uuid.UUID `json:"user_id"`
	RefuelDatetime time.Time `json:"refuel_datetime"`
	TotalMileage   int       `json:"total_mileage"`
	FuelType       string    `json:"fuel_type"`
	UnitPrice      int       `json:"unit_price"`
	TotalCost      int       `json:"total_cost"`
	IsFullTank     bool      `json:"is_full_tank"`
	GasStationName *string   `json:"gas_station_name"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Derived fields
	DistanceTraveled *int     `json:"distance_traveled"`
	FuelAmount       *float64 `json:"fuel_amount"`
	FuelEfficiency   *float64 `json:"fuel_efficiency"`
}

// FuelRecordListResponse represents a paginated list of fuel records
type FuelRecordListResponse struct {
	FuelRecords []FuelRecordDTO          `json:"fuel_records"`
	Pagination  utils.PaginationResponse `json:"pagination"`
}

// ToFuelRecordDTO converts a FuelRecord model to FuelRecordDTO with all
// derived fields absent
func ToFuelRecordDTO(record models.FuelRecord) FuelRecordDTO {
	return FuelRecordDTO{
		ID:             record.ID,
		VehicleID:      record.VehicleID,
		UserID:         record.UserID,
		RefuelDatetime: record.RefuelDatetime,
		TotalMileage:   record.TotalMileage,
		FuelType:       record.FuelType,
		UnitPrice:      record.UnitPrice,
		TotalCost:      record.TotalCost,
		IsFullTank:     record.IsFullTank,
		GasStationName: record.GasStationName,
		CreatedAt:      record.CreatedAt,
		UpdatedAt:      record.UpdatedAt,
	}
}

// ToFuelRecordStatsDTO converts a derivation result to FuelRecordDTO
func ToFuelRecordStatsDTO(stats services.FuelRecordWithStats) FuelRecordDTO {
	dto := ToFuelRecordDTO(stats.Record)
	dto.DistanceTraveled = stats.DistanceTraveled
	dto.FuelAmount = stats.FuelAmount
	dto.FuelEfficiency = stats.FuelEfficiency
	return dto
}

// ToFuelRecordListResponse converts derivation results to FuelRecordListResponse
func ToFuelRecordListResponse(records []services.FuelRecordWithStats, params utils.ListParams, total int64) FuelRecordListResponse {
	items := make([]FuelRecordDTO, len(records))
	for i, record := range records {
		items[i] = ToFuelRecordStatsDTO(record)
	}

	return FuelRecordListResponse{
		FuelRecords: items,
		Pagination: utils.PaginationResponse{
			Limit:  params.Limit,
			Offset: params.Offset,
			Total:  total,
		},
	}
}
