package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ynym/garage-api/internal/dto"
	apierrors "github.com/ynym/garage-api/internal/errors"
	"github.com/ynym/garage-api/internal/middleware"
	"github.com/ynym/garage-api/internal/services"
	"github.com/ynym/garage-api/internal/utils"
)

type FuelRecordHandler struct {
	fuelRecordService *services.FuelRecordService
}

func NewFuelRecordHandler(fuelRecordService *services.FuelRecordService) *FuelRecordHandler {
	return &FuelRecordHandler{fuelRecordService: fuelRecordService}
}

// ListFuelRecords returns the current user's fuel records, most recent
// first. With a vehicle_id filter each record carries derived distance,
// fuel amount and efficiency; without one the derived fields are null.
func (h *FuelRecordHandler) ListFuelRecords(c *gin.Context) {
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

	var vehicleID *uuid.UUID
	if raw := c.Query("vehicle_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			apierrors.BadRequest(c, "Invalid vehicle_id")
			return
		}
		vehicleID = &parsed
	}

	records, total, err := h.fuelRecordService.ListFuelRecords(services.ListFuelRecordsInput{
		UserID:    userID,
		VehicleID: vehicleID,
		Limit:     params.Limit,
		Offset:    params.Offset,
	})
	if err != nil {
		respondFuelRecordError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFuelRecordListResponse(records, params, total))
}

// GetFuelRecord returns a specific fuel record by ID
func (h *FuelRecordHandler) GetFuelRecord(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid fuel record ID")
		return
	}

	record, err := h.fuelRecordService.GetFuelRecord(userID, recordID)
	if err != nil {
		respondFuelRecordError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFuelRecordDTO(*record))
}

// CreateFuelRecord records a new fill-up for one of the user's vehicles
func (h *FuelRecordHandler) CreateFuelRecord(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateFuelRecordRequest struct {
		VehicleID      string     `json:"vehicle_id" binding:"required,uuid"`
		RefuelDatetime *time.Time `json:"refuel_datetime" binding:"required"`
		TotalMileage   *int       `json:"total_mileage" binding:"required"`
		FuelType       string     `json:"fuel_type" binding:"required"`
		UnitPrice      *int       `json:"unit_price" binding:"required"`
		TotalCost      *int       `json:"total_cost" binding:"required"`
		IsFullTank     bool       `json:"is_full_tank"`
		GasStationName *string    `json:"gas_station_name"`
	}

	var req CreateFuelRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.fuelRecordService.CreateFuelRecord(userID, services.CreateFuelRecordInput{
		VehicleID:      uuid.MustParse(req.VehicleID),
		RefuelDatetime: *req.RefuelDatetime,
		TotalMileage:   *req.TotalMileage,
		FuelType:       req.FuelType,
		UnitPrice:      *req.UnitPrice,
		TotalCost:      *req.TotalCost,
		IsFullTank:     req.IsFullTank,
		GasStationName: req.GasStationName,
	})
	if err != nil {
		respondFuelRecordError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFuelRecordDTO(*record))
}

// UpdateFuelRecord applies a partial update. Omitted and null fields are
// both left untouched.
func (h *FuelRecordHandler) UpdateFuelRecord(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid fuel record ID")
		return
	}

	type UpdateFuelRecordRequest struct {
		RefuelDatetime *time.Time `json:"refuel_datetime"`
		TotalMileage   *int       `json:"total_mileage"`
		FuelType       *string    `json:"fuel_type"`
		UnitPrice      *int       `json:"unit_price"`
		TotalCost      *int       `json:"total_cost"`
		IsFullTank     *bool      `json:"is_full_tank"`
		GasStationName *string    `json:"gas_station_name"`
	}

	var req UpdateFuelRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	record, err := h.fuelRecordService.UpdateFuelRecord(userID, recordID, services.UpdateFuelRecordInput{
		RefuelDatetime: req.RefuelDatetime,
		TotalMileage:   req.TotalMileage,
		FuelType:       req.FuelType,
		UnitPrice:      req.UnitPrice,
		TotalCost:      req.TotalCost,
		IsFullTank:     req.IsFullTank,
		GasStationName: req.GasStationName,
	})
	if err != nil {
		respondFuelRecordError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFuelRecordDTO(*record))
}

// DeleteFuelRecord soft deletes a fuel record
func (h *FuelRecordHandler) DeleteFuelRecord(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid fuel record ID")
		return
	}

	if err := h.fuelRecordService.DeleteFuelRecord(userID, recordID); err != nil {
		respondFuelRecordError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondFuelRecordError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.Is(err, services.ErrFuelRecordNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrVehicleNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.As(err, &validationErr):
		apierrors.BadRequestWithDetails(c, validationErr.Error(), gin.H{"field": validationErr.Field})
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
