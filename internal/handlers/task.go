package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ynym/garage-api/internal/dto"
	apierrors "github.com/ynym/garage-api/internal/errors"
	"github.com/ynym/garage-api/internal/middleware"
	"github.com/ynym/garage-api/internal/services"
	"github.com/ynym/garage-api/internal/utils"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns the current user's tasks, optionally filtered by
// completion state.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	params, err := utils.GetListParams(c)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	var isCompleted *bool
	if raw := c.Query("is_completed"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid is_completed")
			return
		}
		isCompleted = &value
	}

	tasks, total, err := h.taskService.ListTasks(services.ListTasksInput{
		UserID:      userID,
		IsCompleted: isCompleted,
		Limit:       params.Limit,
		Offset:      params.Offset,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskListResponse(tasks, params, total))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	task, err := h.taskService.GetTask(userID, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string  `json:"title" binding:"required"`
		Description *string `json:"description"`
		DueDate     *string `json:"due_date"`
		IsCompleted bool    `json:"is_completed"`
		Order       int     `json:"order"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := time.Parse(dto.DueDateLayout, *req.DueDate)
		if err != nil {
			apierrors.BadRequest(c, "due_date must be a YYYY-MM-DD date")
			return
		}
		dueDate = &parsed
	}

	task, err := h.taskService.CreateTask(userID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		IsCompleted: req.IsCompleted,
		Order:       req.Order,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. Only keys present in the body are
// touched; an explicit null clears the optional field it names.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	var body patch
	if err := c.ShouldBindJSON(&body); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput

	if body.has("title") {
		title, err := body.str("title")
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.Title = &title
	}

	if body.isNull("description") {
		input.ClearDescription = true
	} else if body.has("description") {
		description, err := body.str("description")
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.Description = &description
	}

	if body.has("is_completed") {
		isCompleted, err := body.boolean("is_completed")
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.IsCompleted = &isCompleted
	}

	if body.isNull("due_date") {
		input.ClearDueDate = true
	} else if body.has("due_date") {
		dueDate, err := body.date("due_date", dto.DueDateLayout)
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.DueDate = &dueDate
	}

	if body.has("order") {
		order, err := body.integer("order")
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.Order = &order
	}

	task, err := h.taskService.UpdateTask(userID, taskID, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask soft deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid task ID")
		return
	}

	if err := h.taskService.DeleteTask(userID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondTaskError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, validationErr.Error(), gin.H{"field": validationErr.Field})
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
