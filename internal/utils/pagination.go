package utils

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ynym/garage-api/internal/constants"
)

// ListParams holds offset/limit pagination parameters as requested by the
// client. Range validation happens in the service layer so that out-of-range
// values fail loudly instead of being silently clamped.
type ListParams struct {
	Limit  int
	Offset int
}

// PaginationResponse represents the pagination metadata in API responses
type PaginationResponse struct {
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Total  int64 `json:"total"`
}

// GetListParams extracts pagination parameters from the request
func GetListParams(c *gin.Context) (ListParams, error) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(constants.DefaultListLimit)))
	if err != nil {
		return ListParams{}, fmt.Errorf("limit must be an integer")
	}

	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		return ListParams{}, fmt.Errorf("offset must be an integer")
	}

	return ListParams{Limit: limit, Offset: offset}, nil
}
