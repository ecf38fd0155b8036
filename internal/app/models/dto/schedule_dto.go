package dto

import "schoolhub/internal/app/models"

// CreateScheduleRequest is the payload for POST /schedules.
type CreateScheduleRequest struct {
	Title     string  `json:"title" binding:"required"`
	Category  string  `json:"category" binding:"required"`
	StartDate string  `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string  `json:"endDate" binding:"required,datetime=2006-01-02"`
	Img       *string `json:"img,omitempty"`
}

// UpdateScheduleRequest is the payload for PUT /schedules/:id. Only fields
// present in the payload are written.
type UpdateScheduleRequest struct {
	Title     *string `json:"title,omitempty"`
	Category  *string `json:"category,omitempty"`
	StartDate *string `json:"startDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"endDate,omitempty" binding:"omitempty,datetime=2006-01-02"`
	Img       *string `json:"img,omitempty"`
}

// ScheduleListResponse is the response body of GET /schedules.
type ScheduleListResponse struct {
	Schedules  []models.Schedule `json:"schedules"`
	Pagination PaginationInfo    `json:"pagination"`
}

// UpdatedScheduleResponse reports the identifier of an updated row.
type UpdatedScheduleResponse struct {
	ID int64 `json:"id"`
}
