package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is a maintenance or to-do item owned by a single user.
type Task struct {
	ID          uuid.UUID      `gorm:"type:uuid;primarykey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Title       string         `gorm:"type:varchar(255);not null" json:"title"`
	Description *string        `gorm:"type:varchar(2000)" json:"description"`
	IsCompleted bool           `gorm:"not null;default:false" json:"is_completed"`
	CompletedAt *time.Time     `json:"completed_at"`
	DueDate     *time.Time     `gorm:"index" json:"due_date"`
	Order       int            `gorm:"column:display_order;not null;default:0" json:"order"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
