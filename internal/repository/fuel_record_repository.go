package repository

import (
	"github.com/google/uuid"
	"github.com/ynym/garage-api/internal/database"
	"github.com/ynym/garage-api/internal/models"
	"gorm.io/gorm"
)

// GormFuelRecordRepository is a GORM implementation of FuelRecordRepository
type GormFuelRecordRepository struct {
	db *gorm.DB
}

// NewFuelRecordRepository creates a new FuelRecordRepository
func NewFuelRecordRepository(db *gorm.DB) FuelRecordRepository {
	return &GormFuelRecordRepository{db: db}
}

// Create persists a new fuel record
func (r *GormFuelRecordRepository) Create(record *models.FuelRecord) error {
	return r.db.Create(record).Error
}

// FindByID finds an active fuel record owned by the given user
func (r *GormFuelRecordRepository) FindByID(userID, id uuid.UUID) (*models.FuelRecord, error) {
	var record models.FuelRecord
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// List retrieves active fuel records ordered by refuel time descending.
// This is the presentation order; chain building uses ListByVehicleAsc.
func (r *GormFuelRecordRepository) List(filter FuelRecordFilter) ([]models.FuelRecord, int64, error) {
	query := r.db.Model(&models.FuelRecord{}).Where("user_id = ?", filter.UserID)

	if filter.VehicleID != nil {
		query = query.Where("vehicle_id = ?", *filter.VehicleID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.FuelRecord
	err := query.
		Order("refuel_datetime DESC").
		Scopes(database.Paginate(filter.Limit, filter.Offset)).
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

// ListByVehicleAsc retrieves the complete active record set of one vehicle
// ordered by refuel time ascending
func (r *GormFuelRecordRepository) ListByVehicleAsc(userID, vehicleID uuid.UUID) ([]models.FuelRecord, error) {
	var records []models.FuelRecord
	err := r.db.
		Where("user_id = ? AND vehicle_id = ?", userID, vehicleID).
		Order("refuel_datetime ASC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

// Update persists changes to a fuel record
func (r *GormFuelRecordRepository) Update(record *models.FuelRecord) error {
	return r.db.Save(record).Error
}

// Delete soft deletes a fuel record
func (r *GormFuelRecordRepository) Delete(record *models.FuelRecord) error {
	return r.db.Delete(record).Error
}
