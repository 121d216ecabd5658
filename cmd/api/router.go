package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/nemi-admin-api/internal/handler"
	"github.com/noah-isme/nemi-admin-api/internal/middleware"
	"github.com/noah-isme/nemi-admin-api/internal/service"
	"github.com/noah-isme/nemi-admin-api/pkg/config"
	"github.com/noah-isme/nemi-admin-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/nemi-admin-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/nemi-admin-api/pkg/middleware/requestid"
)

type crudHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

type handlers struct {
	auth           *handler.AuthHandler
	users          *handler.UserHandler
	programs       *handler.ProgramHandler
	parents        *handler.ParentHandler
	children       *handler.ChildHandler
	enrollments    *handler.EnrollmentHandler
	payments       *handler.PaymentHandler
	activities     *handler.ActivityHandler
	attendance     *handler.AttendanceHandler
	communications *handler.CommunicationHandler
	inventory      *handler.InventoryHandler
	dashboard      *handler.DashboardHandler
	reports        *handler.ReportHandler
	checkin        *handler.CheckinHandler
	assistant      *handler.AssistantHandler
	health         *handler.HealthHandler
}

type routerDeps struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *service.MetricsService
	tokens  middleware.TokenValidator
	h       handlers
}

func newRouter(deps routerDeps) *gin.Engine {
	cfg, logr := deps.cfg, deps.logger

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if deps.metrics != nil {
		r.Use(middleware.Metrics(deps.metrics))
	}
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", deps.h.health.Health)
	r.GET("/ready", deps.h.health.Ready)
	r.GET("/metrics", deps.h.health.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	api.POST("/auth/login", deps.h.auth.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(deps.tokens))
	secured.GET("/auth/me", deps.h.auth.Me)
	secured.POST("/auth/change-password", deps.h.auth.ChangePassword)

	secured.GET("/dashboard", deps.h.dashboard.Get)
	secured.GET("/reports/:type", deps.h.reports.Generate)
	secured.POST("/assistant", deps.h.assistant.Ask)

	// Registered before the CRUD group so the static segment wins over /attendance/:id.
	secured.POST("/attendance/checkin", deps.h.checkin.Checkin)
	secured.GET("/children/:id/checkin-qr", deps.h.checkin.QRCode)

	registerCRUD(secured, "/programs", deps.h.programs, logr)
	registerCRUD(secured, "/parents", deps.h.parents, logr)
	registerCRUD(secured, "/children", deps.h.children, logr)
	registerCRUD(secured, "/enrollments", deps.h.enrollments, logr)
	registerCRUD(secured, "/payments", deps.h.payments, logr)
	registerCRUD(secured, "/activities", deps.h.activities, logr)
	registerCRUD(secured, "/attendance", deps.h.attendance, logr)
	registerCRUD(secured, "/communications", deps.h.communications, logr)
	registerCRUD(secured, "/inventory", deps.h.inventory, logr)

	users := secured.Group("/users", middleware.AdminOnly())
	users.GET("", deps.h.users.List)
	users.GET("/:id", deps.h.users.Get)
	users.POST("", middleware.Audit(logr, "create", "users"), deps.h.users.Create)
	users.PUT("/:id", middleware.Audit(logr, "update", "users"), deps.h.users.Update)
	users.DELETE("/:id", middleware.Audit(logr, "delete", "users"), deps.h.users.Delete)

	return r
}

// registerCRUD mounts the five entity routes. Deletes are admin only and audited.
func registerCRUD(group *gin.RouterGroup, path string, h crudHandler, logr *zap.Logger) {
	resource := path[1:]
	group.GET(path, h.List)
	group.GET(path+"/:id", h.Get)
	group.POST(path, h.Create)
	group.PUT(path+"/:id", h.Update)
	group.DELETE(path+"/:id", middleware.AdminOnly(), middleware.Audit(logr, "delete", resource), h.Delete)
}
