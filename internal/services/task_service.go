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

var ErrTaskNotFound = errors.New("task not found")

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	UserID      uuid.UUID
	IsCompleted *bool
	Limit       int
	Offset      int
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
	DueDate     *time.Time
	IsCompleted bool
	Order       int
}

// UpdateTaskInput represents a partial update. Nil fields are left
// untouched; Clear flags drop the corresponding optional field.
type UpdateTaskInput struct {
	Title            *string
	Description      *string
	ClearDescription bool
	IsCompleted      *bool
	DueDate          *time.Time
	ClearDueDate     bool
	Order            *int
}

// ListTasks returns the user's active tasks, due date ascending with tasks
// lacking a due date last, creation time breaking ties.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	if err := validateListRange(input.Offset, input.Limit); err != nil {
		return nil, 0, err
	}

	tasks, total, err := s.taskRepo.List(repository.TaskFilter{
		UserID:      input.UserID,
		IsCompleted: input.IsCompleted,
		Limit:       input.Limit,
		Offset:      input.Offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, total, nil
}

// GetTask returns one of the user's active tasks
func (s *TaskService) GetTask(userID, taskID uuid.UUID) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(userID, taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// CreateTask validates and persists a new task for the user
func (s *TaskService) CreateTask(userID uuid.UUID, input CreateTaskInput) (*models.Task, error) {
	title, err := requireString("title", input.Title, constants.MaxTitleLength)
	if err != nil {
		return nil, err
	}

	var description *string
	if input.Description != nil {
		description, err = optionalString("description", *input.Description, constants.MaxDescriptionLength)
		if err != nil {
			return nil, err
		}
	}

	if input.Order < 0 {
		return nil, newValidationError("order", "must not be negative")
	}

	task := &models.Task{
		UserID:      userID,
		Title:       title,
		Description: description,
		DueDate:     input.DueDate,
		IsCompleted: input.IsCompleted,
		Order:       input.Order,
	}
	if task.IsCompleted {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask applies a partial update to one of the user's tasks. The
// completion timestamp follows the completion flag: flipping it on stamps
// the current time, flipping it off clears it.
func (s *TaskService) UpdateTask(userID, taskID uuid.UUID, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.GetTask(userID, taskID)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title, err := requireString("title", *input.Title, constants.MaxTitleLength)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}

	if input.ClearDescription {
		task.Description = nil
	} else if input.Description != nil {
		description, err := optionalString("description", *input.Description, constants.MaxDescriptionLength)
		if err != nil {
			return nil, err
		}
		task.Description = description
	}

	if input.IsCompleted != nil {
		if *input.IsCompleted && !task.IsCompleted {
			now := time.Now()
			task.CompletedAt = &now
		} else if !*input.IsCompleted {
			task.CompletedAt = nil
		}
		task.IsCompleted = *input.IsCompleted
	}

	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if input.Order != nil {
		if *input.Order < 0 {
			return nil, newValidationError("order", "must not be negative")
		}
		task.Order = *input.Order
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask soft deletes one of the user's tasks. A task that is already
// deleted, or owned by someone else, is reported as not found.
func (s *TaskService) DeleteTask(userID, taskID uuid.UUID) error {
	task, err := s.GetTask(userID, taskID)
	if err != nil {
		return err
	}

	if err := s.taskRepo.Delete(task); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}
