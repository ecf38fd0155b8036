package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"schoolhub/internal/app/models/dto"
	"schoolhub/internal/app/repositories"
	"schoolhub/internal/app/services"
	"schoolhub/internal/middleware"
	"schoolhub/internal/pkg/helpers"
)

// ScheduleController handles schedule endpoints.
type ScheduleController struct {
	scheduleService *services.ScheduleService
	logger          zerolog.Logger
}

// NewScheduleController creates a new ScheduleController
func NewScheduleController(scheduleService *services.ScheduleService, logger zerolog.Logger) *ScheduleController {
	return &ScheduleController{
		scheduleService: scheduleService,
		logger:          logger,
	}
}

// CreateSchedule creates a schedule
// @Summary Create a schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateScheduleRequest true "Schedule information"
// @Success 201 {object} dto.APIResponse "Created schedule"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /schedules [post]
func (c *ScheduleController) CreateSchedule(ctx *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid schedule payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	schedule, err := c.scheduleService.CreateSchedule(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(schedule))
}

// ListSchedules lists schedules with pagination, search and sorting
// @Summary List schedules
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size (1-100)"
// @Param search query string false "Free-text search term"
// @Param sortBy query string false "Sort field" Enums(title, category, startDate, endDate, createdAt)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} dto.APIResponse{data=dto.ScheduleListResponse}
// @Router /schedules [get]
func (c *ScheduleController) ListSchedules(ctx *gin.Context) {
	params := helpers.ParseListParams(ctx, "startDate")

	schedules, totalItems, err := c.scheduleService.ListSchedules(ctx.Request.Context(), repositories.ListQuery{
		Page:      params.Page,
		PageSize:  params.PageSize,
		Search:    params.Search,
		SortBy:    params.SortBy,
		SortOrder: params.SortOrder,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.ScheduleListResponse{
		Schedules:  schedules,
		Pagination: helpers.NewPaginationInfo(totalItems, params.Page, params.PageSize),
	}))
}

// GetScheduleByID retrieves a single schedule
// @Summary Get schedule details
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} dto.APIResponse "Schedule"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Router /schedules/{id} [get]
func (c *ScheduleController) GetScheduleByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	schedule, err := c.scheduleService.GetScheduleByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(schedule))
}

// UpdateSchedule applies a partial update
// @Summary Update a schedule
// @Tags schedules
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Param request body dto.UpdateScheduleRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UpdatedScheduleResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Router /schedules/{id} [put]
func (c *ScheduleController) UpdateSchedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateScheduleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid schedule update payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.scheduleService.UpdateSchedule(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.UpdatedScheduleResponse{ID: id}))
}

// DeleteSchedule removes a schedule
// @Summary Delete a schedule
// @Tags schedules
// @Produce json
// @Security BearerAuth
// @Param id path int true "Schedule ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Schedule not found"
// @Router /schedules/{id} [delete]
func (c *ScheduleController) DeleteSchedule(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.scheduleService.DeleteSchedule(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"id": id, "deleted": true}))
}
