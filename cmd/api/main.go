package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/nemi-admin-api/api/swagger"
	"github.com/noah-isme/nemi-admin-api/internal/handler"
	"github.com/noah-isme/nemi-admin-api/internal/repository"
	"github.com/noah-isme/nemi-admin-api/internal/service"
	"github.com/noah-isme/nemi-admin-api/pkg/cache"
	"github.com/noah-isme/nemi-admin-api/pkg/config"
	"github.com/noah-isme/nemi-admin-api/pkg/database"
	"github.com/noah-isme/nemi-admin-api/pkg/export"
	"github.com/noah-isme/nemi-admin-api/pkg/llm"
	"github.com/noah-isme/nemi-admin-api/pkg/logger"
	"github.com/noah-isme/nemi-admin-api/pkg/messaging"
)

// @title NEMI Admin API
// @version 1.0.0
// @description Administration API for the NEMI childcare programs
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server exited", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.RunMigrations(db.DB); err != nil {
			return err
		}
		logr.Info("database migrations applied")
	}

	loc := cfg.Location()
	metrics := service.NewMetricsService()
	validate := service.NewValidator()

	programRepo := repository.NewProgramRepository(db)
	parentRepo := repository.NewParentRepository(db)
	childRepo := repository.NewChildRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)
	communicationRepo := repository.NewCommunicationRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	userRepo := repository.NewUserRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	cacheSvc := newDashboardCache(ctx, cfg, metrics, logr)

	var publisher *messaging.Publisher
	if cfg.AMQP.URL != "" {
		publisher, err = messaging.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange, cfg.AMQP.Queue, logr)
		if err != nil {
			return err
		}
		defer publisher.Close() //nolint:errcheck
	}
	var dispatch *service.DispatchService
	if publisher != nil {
		dispatch = service.NewDispatchService(parentRepo, communicationRepo, publisher, cfg.Dispatch, logr)
	} else {
		dispatch = service.NewDispatchService(parentRepo, communicationRepo, nil, cfg.Dispatch, logr)
	}
	dispatch.Start(ctx)
	defer dispatch.Stop()

	userSvc := service.NewUserService(userRepo, validate, logr)
	if err := userSvc.EnsureBootstrapAdmin(ctx, cfg.Bootstrap); err != nil {
		return err
	}
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            "nemi-admin-api",
	})

	programSvc := service.NewProgramService(programRepo, validate, cacheSvc, logr)
	parentSvc := service.NewParentService(parentRepo, validate, logr)
	childSvc := service.NewChildService(childRepo, parentRepo.Exists, validate, cacheSvc, logr)
	enrollmentSvc := service.NewEnrollmentService(enrollmentRepo, programRepo.Exists, childRepo.Exists, validate, cacheSvc, logr)
	paymentSvc := service.NewPaymentService(paymentRepo, enrollmentRepo.Exists, validate, cacheSvc, logr)
	activitySvc := service.NewActivityService(activityRepo, programRepo.Exists, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, childRepo.Exists, validate, cacheSvc, loc, logr)
	communicationSvc := service.NewCommunicationService(communicationRepo, parentRepo.Exists, dispatch, validate, logr)
	inventorySvc := service.NewInventoryService(inventoryRepo, validate, logr)

	dashboardSvc := service.NewDashboardService(statsRepo, programRepo, cacheSvc, metrics, logr, service.DashboardServiceConfig{
		CacheTTL: cfg.Dashboard.CacheTTL,
		Location: loc,
	})
	reportSvc := service.NewReportService(service.ReportSources{
		Children:    childRepo,
		Parents:     parentRepo,
		Programs:    programRepo,
		Enrollments: enrollmentRepo,
		Payments:    paymentRepo,
	}, export.NewPDFExporter(loc), export.NewCSVExporter(), loc, metrics, logr)
	checkinSvc := service.NewCheckinService(attendanceRepo, childRepo.Exists, validate, cacheSvc, logr, service.CheckinConfig{
		BaseURL:  cfg.Checkin.BaseURL,
		Secret:   cfg.Checkin.Secret,
		Location: loc,
	})
	assistantSvc := service.NewAssistantService(service.AssistantSources{
		Programs:    programRepo,
		Children:    childRepo,
		Parents:     parentRepo,
		Enrollments: enrollmentRepo,
		Payments:    paymentRepo,
		Activities:  activityRepo,
		Attendance:  attendanceRepo,
		Messages:    communicationRepo,
		Stats:       dashboardSvc,
	}, llm.NewProvider(llm.Config{
		APIKey:     cfg.Assistant.APIKey,
		BaseURL:    cfg.Assistant.BaseURL,
		Model:      cfg.Assistant.Model,
		Timeout:    cfg.Assistant.Timeout,
		MaxRetries: 2,
	}, logr), validate, loc, logr)

	router := newRouter(routerDeps{
		cfg:     cfg,
		logger:  logr,
		metrics: metrics,
		tokens:  authSvc,
		h: handlers{
			auth:           handler.NewAuthHandler(authSvc),
			users:          handler.NewUserHandler(userSvc),
			programs:       handler.NewProgramHandler(programSvc),
			parents:        handler.NewParentHandler(parentSvc),
			children:       handler.NewChildHandler(childSvc),
			enrollments:    handler.NewEnrollmentHandler(enrollmentSvc),
			payments:       handler.NewPaymentHandler(paymentSvc),
			activities:     handler.NewActivityHandler(activitySvc),
			attendance:     handler.NewAttendanceHandler(attendanceSvc),
			communications: handler.NewCommunicationHandler(communicationSvc),
			inventory:      handler.NewInventoryHandler(inventorySvc),
			dashboard:      handler.NewDashboardHandler(dashboardSvc),
			reports:        handler.NewReportHandler(reportSvc),
			checkin:        handler.NewCheckinHandler(checkinSvc),
			assistant:      handler.NewAssistantHandler(assistantSvc),
			health:         handler.NewHealthHandler(metrics, db),
		},
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newDashboardCache connects Redis when the dashboard cache is enabled. Connection failures
// disable caching instead of aborting startup.
func newDashboardCache(ctx context.Context, cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger) *service.CacheService {
	if !cfg.Dashboard.CacheEnabled {
		return service.NewCacheService(nil, metrics, cfg.Dashboard.CacheTTL, logr, false)
	}
	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, dashboard cache disabled", zap.Error(err))
		return service.NewCacheService(nil, metrics, cfg.Dashboard.CacheTTL, logr, false)
	}
	return service.NewCacheService(repository.NewCacheRepository(client), metrics, cfg.Dashboard.CacheTTL, logr, true)
}
