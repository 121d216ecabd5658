package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/handler"
	"github.com/noah-isme/nemi-admin-api/internal/models"
	"github.com/noah-isme/nemi-admin-api/pkg/config"
	appErrors "github.com/noah-isme/nemi-admin-api/pkg/errors"
)

type staticTokens struct {
	role models.UserRole
}

func (s staticTokens) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "valid" {
		return nil, appErrors.ErrUnauthorized
	}
	return &models.JWTClaims{UserID: "u1", Role: s.role}, nil
}

func testRouter(role models.UserRole, env string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return newRouter(routerDeps{
		cfg:    &config.Config{Env: env, APIPrefix: "/api"},
		logger: zap.NewNop(),
		tokens: staticTokens{role: role},
		h: handlers{
			auth:           handler.NewAuthHandler(nil),
			users:          handler.NewUserHandler(nil),
			programs:       handler.NewProgramHandler(nil),
			parents:        handler.NewParentHandler(nil),
			children:       handler.NewChildHandler(nil),
			enrollments:    handler.NewEnrollmentHandler(nil),
			payments:       handler.NewPaymentHandler(nil),
			activities:     handler.NewActivityHandler(nil),
			attendance:     handler.NewAttendanceHandler(nil),
			communications: handler.NewCommunicationHandler(nil),
			inventory:      handler.NewInventoryHandler(nil),
			dashboard:      handler.NewDashboardHandler(nil),
			reports:        handler.NewReportHandler(nil),
			checkin:        handler.NewCheckinHandler(nil),
			assistant:      handler.NewAssistantHandler(nil),
			health:         handler.NewHealthHandler(nil, nil),
		},
	})
}

func TestRouterRegistersEveryEntity(t *testing.T) {
	routes := map[string]bool{}
	for _, route := range testRouter(models.RoleAdmin, config.EnvDevelopment).Routes() {
		routes[route.Method+" "+route.Path] = true
	}

	for _, entity := range []string{"programs", "parents", "children", "enrollments", "payments", "activities", "attendance", "communications", "inventory", "users"} {
		base := "/api/" + entity
		for _, route := range []string{"GET " + base, "POST " + base, "GET " + base + "/:id", "PUT " + base + "/:id", "DELETE " + base + "/:id"} {
			assert.True(t, routes[route], route)
		}
	}
	for _, route := range []string{
		"POST /api/auth/login", "GET /api/auth/me", "POST /api/auth/change-password",
		"GET /api/dashboard", "GET /api/reports/:type", "POST /api/assistant",
		"GET /api/children/:id/checkin-qr", "POST /api/attendance/checkin",
		"GET /health", "GET /ready", "GET /metrics", "GET /docs/*any",
	} {
		assert.True(t, routes[route], route)
	}
}

func TestRouterHidesDocsInProduction(t *testing.T) {
	for _, route := range testRouter(models.RoleAdmin, config.EnvProduction).Routes() {
		assert.NotEqual(t, "/docs/*any", route.Path)
	}
}

func TestRouterEnforcesAuthAndRoles(t *testing.T) {
	staff := testRouter(models.RoleStaff, config.EnvDevelopment)

	rec := httptest.NewRecorder()
	staff.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/programs", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	for _, target := range []string{"/api/programs/p1", "/api/payments/p1", "/api/users/u2"} {
		rec = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, target, nil)
		req.Header.Set("Authorization", "Bearer valid")
		staff.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code, target)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	req.Header.Set("Authorization", "Bearer valid")
	staff.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouterHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter(models.RoleStaff, config.EnvDevelopment).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
