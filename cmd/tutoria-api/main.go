package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/tutoria-escolar/tutoria-api/api/swagger"
	"github.com/tutoria-escolar/tutoria-api/internal/handler"
	"github.com/tutoria-escolar/tutoria-api/internal/middleware"
	"github.com/tutoria-escolar/tutoria-api/internal/repository"
	"github.com/tutoria-escolar/tutoria-api/internal/service"
	"github.com/tutoria-escolar/tutoria-api/pkg/config"
	"github.com/tutoria-escolar/tutoria-api/pkg/export"
	"github.com/tutoria-escolar/tutoria-api/pkg/jobs"
	"github.com/tutoria-escolar/tutoria-api/pkg/logger"
	corsmiddleware "github.com/tutoria-escolar/tutoria-api/pkg/middleware/cors"
	reqidmiddleware "github.com/tutoria-escolar/tutoria-api/pkg/middleware/requestid"
	"github.com/tutoria-escolar/tutoria-api/pkg/store"
)

// @title Tutoria API
// @version 0.1.0
// @description Incident tracking and derivation engine for school tutoring
// @BasePath /api/v1
// @schemes http

const jobCleanupAttended = "cleanup_attended"

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

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	recordStore, err := newStore(cfg)
	if err != nil {
		logr.Sugar().Fatalw("failed to init store", "backend", cfg.Store.Backend, "error", err)
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
		recordStore = store.NewInstrumented(recordStore, metrics.ObserveStoreOp)
	}

	incidentRepo := repository.NewIncidentRepository(recordStore, logr)
	attendanceRepo := repository.NewAttendanceRepository(recordStore, logr)
	attendedRepo := repository.NewAttendedRepository(recordStore, logr)
	seenRepo := repository.NewSeenRepository(recordStore, logr)
	studentRepo := repository.NewStudentRepository(recordStore, logr)
	tutorRepo := repository.NewTutorRepository(recordStore, logr)
	classRepo := repository.NewClassRepository(recordStore, logr)
	gradeRepo := repository.NewGradeRepository(recordStore, logr)
	catalogRepo := repository.NewCatalogRepository(recordStore, logr)

	incidents := service.NewIncidentService(incidentRepo, logr)
	attendance := service.NewAttendanceService(attendanceRepo, attendedRepo, validator.New(), logr)
	notifications := service.NewNotificationService(incidentRepo, attendance, seenRepo, attendedRepo, logr)
	reports := service.NewReportService(service.NewGeminiClient(cfg.Gemini, logr), logr)
	roster := service.NewRosterService(studentRepo, tutorRepo, classRepo, gradeRepo, catalogRepo, logr)

	if cfg.Seed.Enabled {
		seeder := service.NewSeedService(incidentRepo, studentRepo, tutorRepo, classRepo, gradeRepo, logr)
		seeder.Run(context.Background())
	}

	queue := jobs.NewQueue("housekeeping", func(ctx context.Context, job jobs.Job) error {
		if job.Type == jobCleanupAttended {
			notifications.CleanupAttended(ctx, cfg.Notifications.AttendedRetentionDays)
		}
		return nil
	}, jobs.QueueConfig{Logger: logr})
	queue.Start(context.Background())
	defer queue.Stop()
	queue.EnqueueEvery(cfg.Notifications.CleanupInterval, jobCleanupAttended)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	if metrics != nil {
		r.Use(middleware.Metrics(metrics))
	}

	metricsHandler := handler.NewMetricsHandler(metrics)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	if metrics != nil {
		r.GET("/metrics", metricsHandler.Prometheus)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	handler.Register(r, cfg.APIPrefix, handler.Handlers{
		Incidents:     handler.NewIncidentHandler(incidents, export.NewCSVExporter()),
		Attendance:    handler.NewAttendanceHandler(attendance),
		Notifications: handler.NewNotificationHandler(notifications, incidents, attendance),
		Reports:       handler.NewReportHandler(reports, export.NewPDFExporter()),
		Roster:        handler.NewRosterHandler(roster),
		Metrics:       metricsHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "store", cfg.Store.Backend)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}

func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StorePostgres:
		db, err := store.NewPostgresDB(cfg.Database)
		if err != nil {
			return nil, err
		}
		return store.NewPostgres(db)
	case config.StoreRedis:
		client, err := store.NewRedisClient(cfg.Redis)
		if err != nil {
			return nil, err
		}
		return store.NewRedis(client, cfg.Store.KeyPrefix), nil
	default:
		return store.NewMemory(), nil
	}
}
