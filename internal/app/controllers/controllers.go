package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"schoolhub/internal/app/models/dto"
)

// parseIDParam reads the :id path parameter. On failure it writes the 400
// response itself and returns false.
func parseIDParam(ctx *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || id < 1 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "id must be a positive number").WithField("id")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}
