package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"schoolhub/internal/app/models/dto"
	"schoolhub/internal/pkg/auth"
)

func newGuardedRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/protected", NewAuthMiddleware(jwtService).JWTAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"id":    c.GetInt64(ContextStudentID),
			"email": c.GetString(ContextEmail),
		})
	})
	return router
}

func doRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorCode {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error == nil {
		t.Fatalf("expected error detail in response body")
	}
	return resp.Error.Code
}

func TestJWTAuthMissingHeader(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Minute})
	router := newGuardedRouter(jwtService)

	rec := doRequest(router, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != dto.ErrorCodeUnauthorized {
		t.Fatalf("expected %s, got %s", dto.ErrorCodeUnauthorized, code)
	}
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Minute})
	router := newGuardedRouter(jwtService)

	rec := doRequest(router, "Token abc123")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: -time.Minute})
	token, _, err := jwtService.GenerateToken(7, "late@example.com", "Late")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	router := newGuardedRouter(jwtService)
	rec := doRequest(router, "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != dto.ErrorCodeExpiredToken {
		t.Fatalf("expected %s, got %s", dto.ErrorCodeExpiredToken, code)
	}
}

func TestJWTAuthTamperedToken(t *testing.T) {
	issuer := auth.NewJWTService(auth.JWTConfig{SecretKey: "other-secret", AccessTokenExp: time.Minute})
	token, _, err := issuer.GenerateToken(7, "spoof@example.com", "Spoof")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Minute})
	router := newGuardedRouter(jwtService)

	rec := doRequest(router, "Bearer "+token)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != dto.ErrorCodeForbidden {
		t.Fatalf("expected %s, got %s", dto.ErrorCodeForbidden, code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "secret", AccessTokenExp: time.Minute})
	token, _, err := jwtService.GenerateToken(7, "jane@example.com", "Jane")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	router := newGuardedRouter(jwtService)
	rec := doRequest(router, "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.ID != 7 || body.Email != "jane@example.com" {
		t.Fatalf("claims not propagated to handler context: %+v", body)
	}
}
