package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/ynym/garage-api/internal/models"
	"github.com/ynym/garage-api/internal/utils"
)

// VehicleDTO represents a vehicle in API responses
type VehicleDTO struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user_id"`
	Name         string    `json:"name"`
	Seq          int       `json:"seq"`
	Maker        string    `json:"maker"`
	Model        string    `json:"model"`
	Year         *int      `json:"year"`
	Number       *string   `json:"number"`
	TankCapacity *float64  `json:"tank_capacity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// VehicleListResponse represents a paginated list of vehicles
type VehicleListResponse struct {
	Vehicles   []VehicleDTO             `json:"vehicles"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

// ToVehicleDTO converts a Vehicle model to VehicleDTO
func ToVehicleDTO(vehicle models.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:           vehicle.ID,
		UserID:       vehicle.UserID,
		Name:         vehicle.Name,
		Seq:          vehicle.Seq,
		Maker:        vehicle.Maker,
		Model:        vehicle.Model,
		Year:         vehicle.Year,
		Number:       vehicle.Number,
		TankCapacity: vehicle.TankCapacity,
		CreatedAt:    vehicle.CreatedAt,
		UpdatedAt:    vehicle.UpdatedAt,
	}
}

// ToVehicleListResponse converts a slice of vehicles to VehicleListResponse
func ToVehicleListResponse(vehicles []models.Vehicle, params utils.ListParams, total int64) VehicleListResponse {
	items := make([]VehicleDTO, len(vehicles))
	for i, vehicle := range vehicles {
		items[i] = ToVehicleDTO(vehicle)
	}

	return VehicleListResponse{
		Vehicles: items,
		Pagination: utils.PaginationResponse{
			Limit:  params.Limit,
			Offset: params.Offset,
			Total:  total,
		},
	}
}
