package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"schoolhub/internal/app/models/dto"
	"schoolhub/internal/pkg/auth"
)

// Context keys set by the JWT guard for downstream handlers.
const (
	ContextStudentID = "studentID"
	ContextEmail     = "email"
	ContextName      = "name"
	ContextRole      = "role"
)

// AuthMiddleware guards routes behind a valid bearer token.
type AuthMiddleware struct {
	jwtService *auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// JWTAuth validates the Authorization header. Missing or malformed headers are
// unauthorized; an expired token is unauthorized with its own code; any other
// verification failure is forbidden.
func (m *AuthMiddleware) JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		tokenString, err := auth.ExtractBearerToken(authHeader)
		if err != nil {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required").
				WithDetails("Authorization header must use the Bearer scheme")
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				errorDetail := dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token has expired")
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
				return
			}

			errorDetail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Token verification failed")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(errorDetail))
			return
		}

		c.Set(ContextStudentID, claims.StudentID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextName, claims.Name)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}
