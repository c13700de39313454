package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ynym/garage-api/internal/constants"
	"github.com/ynym/garage-api/internal/models"
	"github.com/ynym/garage-api/internal/repository"
	"gorm.io/gorm"
)

var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleService handles vehicle business logic
type VehicleService struct {
	vehicleRepo repository.VehicleRepository
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(vehicleRepo repository.VehicleRepository) *VehicleService {
	return &VehicleService{vehicleRepo: vehicleRepo}
}

// CreateVehicleInput represents input for registering a vehicle. The
// sequence number is assigned by the store, never supplied by the caller.
type CreateVehicleInput struct {
	Name         string
	Maker        string
	Model        string
	Year         *int
	Number       *string
	TankCapacity *float64
}

// UpdateVehicleInput represents a partial update. Nil fields are left
// untouched; Clear flags drop the corresponding optional field.
type UpdateVehicleInput struct {
	Name              *string
	Seq               *int
	Maker             *string
	Model             *string
	Year              *int
	ClearYear         bool
	Number            *string
	ClearNumber       bool
	TankCapacity      *float64
	ClearTankCapacity bool
}

// ListVehicles returns the user's active vehicles ordered by sequence
func (s *VehicleService) ListVehicles(userID uuid.UUID, limit, offset int) ([]models.Vehicle, int64, error) {
	if err := validateListRange(offset, limit); err != nil {
		return nil, 0, err
	}

	vehicles, total, err := s.vehicleRepo.List(userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}

	return vehicles, total, nil
}

// GetVehicle returns one of the user's active vehicles
func (s *VehicleService) GetVehicle(userID, vehicleID uuid.UUID) (*models.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(userID, vehicleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}

	return vehicle, nil
}

// CreateVehicle validates and persists a new vehicle; the store assigns the
// next per-user sequence number (current maximum + 1, or 1 for the first).
func (s *VehicleService) CreateVehicle(userID uuid.UUID, input CreateVehicleInput) (*models.Vehicle, error) {
	name, err := requireString("name", input.Name, constants.MaxVehicleNameLength)
	if err != nil {
		return nil, err
	}
	maker, err := requireString("maker", input.Maker, constants.MaxMakerLength)
	if err != nil {
		return nil, err
	}
	model, err := requireString("model", input.Model, constants.MaxModelLength)
	if err != nil {
		return nil, err
	}

	var number *string
	if input.Number != nil {
		number, err = optionalString("number", *input.Number, constants.MaxPlateNumberLength)
		if err != nil {
			return nil, err
		}
	}

	if input.TankCapacity != nil && *input.TankCapacity <= 0 {
		return nil, newValidationError("tank_capacity", "must be greater than zero")
	}

	vehicle := &models.Vehicle{
		UserID:       userID,
		Name:         name,
		Maker:        maker,
		Model:        model,
		Year:         input.Year,
		Number:       number,
		TankCapacity: input.TankCapacity,
	}

	if err := s.vehicleRepo.Create(vehicle); err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return vehicle, nil
}

// UpdateVehicle applies a partial update to one of the user's vehicles
func (s *VehicleService) UpdateVehicle(userID, vehicleID uuid.UUID, input UpdateVehicleInput) (*models.Vehicle, error) {
	vehicle, err := s.GetVehicle(userID, vehicleID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := requireString("name", *input.Name, constants.MaxVehicleNameLength)
		if err != nil {
			return nil, err
		}
		vehicle.Name = name
	}

	if input.Seq != nil {
		if *input.Seq <= 0 {
			return nil, newValidationError("seq", "must be a positive integer")
		}
		vehicle.Seq = *input.Seq
	}

	if input.Maker != nil {
		maker, err := requireString("maker", *input.Maker, constants.MaxMakerLength)
		if err != nil {
			return nil, err
		}
		vehicle.Maker = maker
	}

	if input.Model != nil {
		model, err := requireString("model", *input.Model, constants.MaxModelLength)
		if err != nil {
			return nil, err
		}
		vehicle.Model = model
	}

	if input.ClearYear {
		vehicle.Year = nil
	} else if input.Year != nil {
		vehicle.Year = input.Year
	}

	if input.ClearNumber {
		vehicle.Number = nil
	} else if input.Number != nil {
		number, err := optionalString("number", *input.Number, constants.MaxPlateNumberLength)
		if err != nil {
			return nil, err
		}
		vehicle.Number = number
	}

	if input.ClearTankCapacity {
		vehicle.TankCapacity = nil
	} else if input.TankCapacity != nil {
		if *input.TankCapacity <= 0 {
			return nil, newValidationError("tank_capacity", "must be greater than zero")
		}
		vehicle.TankCapacity = input.TankCapacity
	}

	if err := s.vehicleRepo.Update(vehicle); err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return vehicle, nil
}

// DeleteVehicle soft deletes one of the user's vehicles. The vehicle's
// sequence number is not reclaimed; a later creation continues from the
// remaining maximum.
func (s *VehicleService) DeleteVehicle(userID, vehicleID uuid.UUID) error {
	vehicle, err := s.GetVehicle(userID, vehicleID)
	if err != nil {
		return err
	}

	if err := s.vehicleRepo.Delete(vehicle); err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	return nil
}
