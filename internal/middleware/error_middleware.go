package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolhub/internal/app/models/dto"
	"schoolhub/internal/pkg/apperrors"
	"schoolhub/internal/pkg/logger"
)

// HandleAPIError maps service errors to structured HTTP responses. Anything
// that does not match a known sentinel is logged and reported as an opaque
// internal error.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()).WithField("email")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrAdmissionNoAlreadyExists):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()).WithField("admissionNo")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrGuardianEmailExists):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()).WithField("guardian.email")
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrConflict):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrStudentNotFound),
		errors.Is(err, apperrors.ErrScheduleNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, "Invalid email or password")
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
		c.JSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled error")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
	}
}
