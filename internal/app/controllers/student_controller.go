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

// StudentController handles student endpoints.
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// ListStudents lists students with pagination, search and sorting
// @Summary List students
// @Description Returns one page of students with guardian data and pagination metadata
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param limit query int false "Page size (1-100)"
// @Param search query string false "Free-text search term"
// @Param sortBy query string false "Sort field" Enums(firstName, lastName, admissionNo, email, form, createdAt)
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} dto.APIResponse{data=dto.StudentListResponse}
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	params := helpers.ParseListParams(ctx, "firstName")

	students, totalItems, err := c.studentService.ListStudents(ctx.Request.Context(), repositories.ListQuery{
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

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.StudentListResponse{
		Students:   students,
		Pagination: helpers.NewPaginationInfo(totalItems, params.Page, params.PageSize),
	}))
}

// GetStudentByID retrieves a single student
// @Summary Get student details
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse "Student with guardian"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(student))
}

// UpdateStudent applies a partial update
// @Summary Update a student
// @Description Updates only the supplied fields; a supplied password is re-hashed
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=dto.UpdatedStudentResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation or duplicate error"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student update payload")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	if err := c.studentService.UpdateStudent(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.UpdatedStudentResponse{ID: id}))
}

// DeleteStudent removes a student and, via the schema, its guardian
// @Summary Delete a student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx)
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"id": id, "deleted": true}))
}
