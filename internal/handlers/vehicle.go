package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ynym/garage-api/internal/dto"
	apierrors "github.com/ynym/garage-api/internal/errors"
	"github.com/ynym/garage-api/internal/middleware"
	"github.com/ynym/garage-api/internal/services"
	"github.com/ynym/garage-api/internal/utils"
)

type VehicleHandler struct {
	vehicleService *services.VehicleService
}

func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// ListVehicles returns the current user's vehicles ordered by sequence
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
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

	vehicles, total, err := h.vehicleService.ListVehicles(userID, params.Limit, params.Offset)
	if err != nil {
		respondVehicleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleListResponse(vehicles, params, total))
}

// GetVehicle returns a specific vehicle by ID
func (h *VehicleHandler) GetVehicle(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.vehicleService.GetVehicle(userID, vehicleID)
	if err != nil {
		respondVehicleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleDTO(*vehicle))
}

// CreateVehicle registers a new vehicle; the sequence number is assigned
// server-side.
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateVehicleRequest struct {
		Name         string   `json:"name" binding:"required"`
		Maker        string   `json:"maker" binding:"required"`
		Model        string   `json:"model" binding:"required"`
		Year         *int     `json:"year"`
		Number       *string  `json:"number"`
		TankCapacity *float64 `json:"tank_capacity"`
	}

	var req CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(userID, services.CreateVehicleInput{
		Name:         req.Name,
		Maker:        req.Maker,
		Model:        req.Model,
		Year:         req.Year,
		Number:       req.Number,
		TankCapacity: req.TankCapacity,
	})
	if err != nil {
		respondVehicleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVehicleDTO(*vehicle))
}

// UpdateVehicle applies a partial update. Only keys present in the body are
// touched; an explicit null clears the optional field it names.
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid vehicle ID")
		return
	}

	var body patch
	if err := c.ShouldBindJSON(&body); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateVehicleInput

	if body.has("name") {
		name, err := body.str("name")
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.Name = &name
	}

	if body.has("seq") {
		seq, err := body.integer("seq")
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.Seq = &seq
	}

	if body.has("maker") {
		maker, err := body.str("maker")
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.Maker = &maker
	}

	if body.has("model") {
		model, err := body.str("model")
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.Model = &model
	}

	if body.isNull("year") {
		input.ClearYear = true
	} else if body.has("year") {
		year, err := body.integer("year")
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.Year = &year
	}

	if body.isNull("number") {
		input.ClearNumber = true
	} else if body.has("number") {
		number, err := body.str("number")
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.Number = &number
	}

	if body.isNull("tank_capacity") {
		input.ClearTankCapacity = true
	} else if body.has("tank_capacity") {
		capacity, err := body.float("tank_capacity")
		if err != nil {
			apierrors.BadRequest(c, err.Error())
			return
		}
		input.TankCapacity = &capacity
	}

	vehicle, err := h.vehicleService.UpdateVehicle(userID, vehicleID, input)
	if err != nil {
		respondVehicleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVehicleDTO(*vehicle))
}

// DeleteVehicle soft deletes a vehicle
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid vehicle ID")
		return
	}

	if err := h.vehicleService.DeleteVehicle(userID, vehicleID); err != nil {
		respondVehicleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondVehicleError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrVehicleNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, validationErr.Error(), gin.H{"field": validationErr.Field})
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
