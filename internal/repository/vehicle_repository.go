package repository

import (
	"github.com/google/uuid"
	"github.com/ynym/garage-api/internal/database"
	"github.com/ynym/garage-api/internal/models"
	"gorm.io/gorm"
)

// GormVehicleRepository is a GORM implementation of VehicleRepository
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new VehicleRepository
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &GormVehicleRepository{db: db}
}

// Create assigns the next sequence number for the owner and persists the
// vehicle. The max lookup only considers active vehicles, so a deleted
// non-maximal sequence is never reused. Both steps share one transaction;
// exactly-once assignment under concurrent creations would additionally
// need a unique (user_id, seq) constraint with retry on conflict.
func (r *GormVehicleRepository) Create(vehicle *models.Vehicle) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var maxSeq int
		err := tx.Model(&models.Vehicle{}).
			Where("user_id = ?", vehicle.UserID).
			Select("COALESCE(MAX(seq), 0)").
			Scan(&maxSeq).Error
		if err != nil {
			return err
		}

		vehicle.Seq = maxSeq + 1
		return tx.Create(vehicle).Error
	})
}

// FindByID finds an active vehicle owned by the given user
func (r *GormVehicleRepository) FindByID(userID, id uuid.UUID) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&vehicle).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// List retrieves active vehicles ordered by sequence ascending
func (r *GormVehicleRepository) List(userID uuid.UUID, limit, offset int) ([]models.Vehicle, int64, error) {
	query := r.db.Model(&models.Vehicle{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var vehicles []models.Vehicle
	err := query.
		Order("seq ASC").
		Scopes(database.Paginate(limit, offset)).
		Find(&vehicles).Error
	if err != nil {
		return nil, 0, err
	}

	return vehicles, total, nil
}

// Update persists changes to a vehicle
func (r *GormVehicleRepository) Update(vehicle *models.Vehicle) error {
	return r.db.Save(vehicle).Error
}

// Delete soft deletes a vehicle
func (r *GormVehicleRepository) Delete(vehicle *models.Vehicle) error {
	return r.db.Delete(vehicle).Error
}
