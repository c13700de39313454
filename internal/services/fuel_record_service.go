package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ynym/garage-api/internal/constants"
	"github.com/ynym/garage-api/internal/models"
	"github.com/ynym/garage-api/internal/repository"
	"gorm.io/gorm"
)

var ErrFuelRecordNotFound = errors.New("fuel record not found")

// FuelRecordService handles fuel record business logic, including the
// read-time efficiency derivation.
type FuelRecordService struct {
	fuelRecordRepo repository.FuelRecordRepository
	vehicleRepo    repository.VehicleRepository
}

// NewFuelRecordService creates a new FuelRecordService
func NewFuelRecordService(fuelRecordRepo repository.FuelRecordRepository, vehicleRepo repository.VehicleRepository) *FuelRecordService {
	return &FuelRecordService{
		fuelRecordRepo: fuelRecordRepo,
		vehicleRepo:    vehicleRepo,
	}
}

// ListFuelRecordsInput represents filters for listing fuel records
type ListFuelRecordsInput struct {
	UserID    uuid.UUID
	VehicleID *uuid.UUID
	Limit     int
	Offset    int
}

// CreateFuelRecordInput represents input for recording a fill-up
type CreateFuelRecordInput struct {
	VehicleID      uuid.UUID
	RefuelDatetime time.Time
	TotalMileage   int
	FuelType       string
	UnitPrice      int
	TotalCost      int
	IsFullTank     bool
	GasStationName *string
}

// UpdateFuelRecordInput represents a partial update; nil fields are left
// untouched.
type UpdateFuelRecordInput struct {
	RefuelDatetime *time.Time
	TotalMileage   *int
	FuelType       *string
	UnitPrice      *int
	TotalCost      *int
	IsFullTank     *bool
	GasStationName *string
}

// ListFuelRecords returns the user's active fuel records, most recent
// first. When a vehicle filter is given the full chronological chain for
// that vehicle is loaded separately and each returned record carries its
// derived distance, fuel amount and efficiency; without a vehicle filter
// the derived fields stay undefined.
func (s *FuelRecordService) ListFuelRecords(input ListFuelRecordsInput) ([]FuelRecordWithStats, int64, error) {
	if err := validateListRange(input.Offset, input.Limit); err != nil {
		return nil, 0, err
	}

	records, total, err := s.fuelRecordRepo.List(repository.FuelRecordFilter{
		UserID:    input.UserID,
		VehicleID: input.VehicleID,
		Limit:     input.Limit,
		Offset:    input.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fuel records: %w", err)
	}

	if input.VehicleID == nil || len(records) == 0 {
		return withoutFuelStats(records), total, nil
	}

	chain, err := s.fuelRecordRepo.ListByVehicleAsc(input.UserID, *input.VehicleID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load fuel record chain: %w", err)
	}

	return deriveFuelStats(records, chain), total, nil
}

// GetFuelRecord returns one of the user's active fuel records
func (s *FuelRecordService) GetFuelRecord(userID, recordID uuid.UUID) (*models.FuelRecord, error) {
	record, err := s.fuelRecordRepo.FindByID(userID, recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFuelRecordNotFound
		}
		return nil, fmt.Errorf("failed to find fuel record: %w", err)
	}

	return record, nil
}

// CreateFuelRecord validates and persists a new fuel record. The target
// vehicle must be an active vehicle of the same user.
func (s *FuelRecordService) CreateFuelRecord(userID uuid.UUID, input CreateFuelRecordInput) (*models.FuelRecord, error) {
	fuelType, err := requireString("fuel_type", input.FuelType, constants.MaxFuelTypeLength)
	if err != nil {
		return nil, err
	}
	if input.TotalMileage <= 0 {
		return nil, newValidationError("total_mileage", "must be a positive integer")
	}
	if input.UnitPrice <= 0 {
		return nil, newValidationError("unit_price", "must be a positive integer")
	}
	if input.TotalCost < 0 {
		return nil, newValidationError("total_cost", "must not be negative")
	}

	var stationName *string
	if input.GasStationName != nil {
		stationName, err = optionalString("gas_station_name", *input.GasStationName, constants.MaxStationNameLength)
		if err != nil {
			return nil, err
		}
	}

	if _, err := s.vehicleRepo.FindByID(userID, input.VehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to verify vehicle: %w", err)
	}

	record := &models.FuelRecord{
		UserID:         userID,
		VehicleID:      input.VehicleID,
		RefuelDatetime: input.RefuelDatetime,
		TotalMileage:   input.TotalMileage,
		FuelType:       fuelType,
		UnitPrice:      input.UnitPrice,
		TotalCost:      input.TotalCost,
		IsFullTank:     input.IsFullTank,
		GasStationName: stationName,
	}

	if err := s.fuelRecordRepo.Create(record); err != nil {
		return nil, fmt.Errorf("failed to create fuel record: %w", err)
	}

	return record, nil
}

// UpdateFuelRecord applies a partial update to one of the user's fuel
// records. A station name that trims to empty is ignored rather than
// cleared.
func (s *FuelRecordService) UpdateFuelRecord(userID, recordID uuid.UUID, input UpdateFuelRecordInput) (*models.FuelRecord, error) {
	record, err := s.GetFuelRecord(userID, recordID)
	if err != nil {
		return nil, err
	}

	if input.RefuelDatetime != nil {
		record.RefuelDatetime = *input.RefuelDatetime
	}

	if input.TotalMileage != nil {
		if *input.TotalMileage <= 0 {
			return nil, newValidationError("total_mileage", "must be a positive integer")
		}
		record.TotalMileage = *input.TotalMileage
	}

	if input.FuelType != nil {
		fuelType, err := requireString("fuel_type", *input.FuelType, constants.MaxFuelTypeLength)
		if err != nil {
			return nil, err
		}
		record.FuelType = fuelType
	}

	if input.UnitPrice != nil {
		if *input.UnitPrice <= 0 {
			return nil, newValidationError("unit_price", "must be a positive integer")
		}
		record.UnitPrice = *input.UnitPrice
	}

	if input.TotalCost != nil {
		if *input.TotalCost < 0 {
			return nil, newValidationError("total_cost", "must not be negative")
		}
		record.TotalCost = *input.TotalCost
	}

	if input.IsFullTank != nil {
		record.IsFullTank = *input.IsFullTank
	}

	if input.GasStationName != nil {
		stationName, err := optionalString("gas_station_name", *input.GasStationName, constants.MaxStationNameLength)
		if err != nil {
			return nil, err
		}
		if stationName != nil {
			record.GasStationName = stationName
		}
	}

	if err := s.fuelRecordRepo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to update fuel record: %w", err)
	}

	return record, nil
}

// DeleteFuelRecord soft deletes one of the user's fuel records
func (s *FuelRecordService) DeleteFuelRecord(userID, recordID uuid.UUID) error {
	record, err := s.GetFuelRecord(userID, recordID)
	if err != nil {
		return err
	}

	if err := s.fuelRecordRepo.Delete(record); err != nil {
		return fmt.Errorf("failed to delete fuel record: %w", err)
	}

	return nil
}
