package helpers

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"schoolhub/internal/app/models/dto"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1 // page numbers are 1-based
)

// ListParams holds the parsed list query parameters common to every
// collection endpoint.
type ListParams struct {
	Page      int
	PageSize  int
	Search    string
	SortBy    string
	SortOrder string
}

// ParseListParams extracts page, limit, search and sort parameters from the
// request. Invalid page/limit values fall back to defaults; sortBy is returned
// as-is and must be checked against the resource's allow-list by the caller.
func ParseListParams(c *gin.Context, defaultSortBy string) ListParams {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	sortOrder := strings.ToLower(c.DefaultQuery("sortOrder", "asc"))
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "asc"
	}

	return ListParams{
		Page:      page,
		PageSize:  size,
		Search:    strings.TrimSpace(c.Query("search")),
		SortBy:    c.DefaultQuery("sortBy", defaultSortBy),
		SortOrder: sortOrder,
	}
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
func NewPaginationInfo(totalItems int64, page, size int) dto.PaginationInfo {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = DefaultPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	}

	return dto.PaginationInfo{
		CurrentPage: page,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}
