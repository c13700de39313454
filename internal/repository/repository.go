package repository

import (
	"github.com/google/uuid"
	"github.com/ynym/garage-api/internal/models"
)

// Every read and write is scoped to the owning user. A row that belongs to a
// different user, or that has been soft-deleted, behaves exactly like a row
// that does not exist.

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create persists a new task
	Create(task *models.Task) error

	// FindByID finds an active task owned by the given user
	FindByID(userID, id uuid.UUID) (*models.Task, error)

	// List retrieves active tasks with filtering and pagination, ordered by
	// due date ascending (nulls last) then creation time ascending
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(task *models.Task) error
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	UserID      uuid.UUID
	IsCompleted *bool
	Limit       int
	Offset      int
}

// VehicleRepository defines the interface for vehicle data access
type VehicleRepository interface {
	// Create assigns the next per-user sequence number and persists the
	// vehicle; both steps run inside one transaction
	Create(vehicle *models.Vehicle) error

	// FindByID finds an active vehicle owned by the given user
	FindByID(userID, id uuid.UUID) (*models.Vehicle, error)

	// List retrieves active vehicles ordered by sequence ascending
	List(userID uuid.UUID, limit, offset int) ([]models.Vehicle, int64, error)

	// Update persists changes to a vehicle
	Update(vehicle *models.Vehicle) error

	// Delete soft deletes a vehicle
	Delete(vehicle *models.Vehicle) error
}

// FuelRecordRepository defines the interface for fuel record data access
type FuelRecordRepository interface {
	// Create persists a new fuel record
	Create(record *models.FuelRecord) error

	// FindByID finds an active fuel record owned by the given user
	FindByID(userID, id uuid.UUID) (*models.FuelRecord, error)

	// List retrieves active fuel records ordered by refuel time descending
	List(filter FuelRecordFilter) ([]models.FuelRecord, int64, error)

	// ListByVehicleAsc retrieves the complete active record set of one
	// vehicle ordered by refuel time ascending, for chain building
	ListByVehicleAsc(userID, vehicleID uuid.UUID) ([]models.FuelRecord, error)

	// Update persists changes to a fuel record
	Update(record *models.FuelRecord) error

	// Delete soft deletes a fuel record
	Delete(record *models.FuelRecord) error
}

// FuelRecordFilter holds filtering options for listing fuel records
type FuelRecordFilter struct {
	UserID    uuid.UUID
	VehicleID *uuid.UUID
	Limit     int
	Offset    int
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create persists a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uuid.UUID) (*models.User, error)

	// FindByEmail finds a user by email address
	FindByEmail(email string) (*models.User, error)
}
