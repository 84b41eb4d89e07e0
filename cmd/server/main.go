package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/certprep/exam-service/internal/cache"
	"github.com/certprep/exam-service/internal/config"
	"github.com/certprep/exam-service/internal/handlers"
	"github.com/certprep/exam-service/internal/repositories"
	"github.com/certprep/exam-service/internal/repositories/jsonfile"
	"github.com/certprep/exam-service/internal/repositories/postgres"
	"github.com/certprep/exam-service/internal/services"
	"github.com/certprep/exam-service/internal/store"
	"github.com/certprep/exam-service/internal/utils"
	"github.com/certprep/exam-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	var appLogger utils.Logger
	if cfg.Environment == "production" {
		appLogger = utils.NewDefaultLogger()
	} else {
		appLogger = utils.NewDevelopmentLogger()
	}
	slogLogger := utils.ToSlogLogger(appLogger)

	slogLogger.Info("Starting exam service",
		"environment", cfg.Environment,
		"port", cfg.Port)

	// Exam catalog, fronted by Redis when available
	var cacheService cache.CacheService
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		slogLogger.Warn("Redis unavailable, serving catalog without cache", "error", err)
		cacheService = cache.NewNoopCache()
	} else {
		cacheService = cache.NewRedisCache(redisClient, slogLogger)
	}
	var examRepo repositories.ExamRepository = repositories.NewCachedExamRepository(
		jsonfile.NewExamRepository(cfg.ExamsFile, slogLogger),
		cacheService,
		5*time.Minute,
		slogLogger,
	)

	// Result persistence
	var resultRepo repositories.ResultRepository
	switch cfg.ResultStore {
	case "postgres":
		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		pgRepo := postgres.NewResultRepository(db)
		if err := pgRepo.Migrate(); err != nil {
			log.Fatalf("Failed to migrate result schema: %v", err)
		}
		resultRepo = pgRepo
	default:
		resultRepo = jsonfile.NewResultRepository(cfg.ResultsDir, slogLogger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogLogger)
	if err != nil {
		log.Fatalf("Failed to create event publisher: %v", err)
	}
	defer publisher.Close()

	validator := utils.NewValidator()
	sessions := store.NewSessionStore()

	sessionService := services.NewSessionService(examRepo, sessions, cfg.Exam, publisher, slogLogger, validator, nil)
	scoringService := services.NewScoringService(sessions, resultRepo, cfg.Exam, publisher, slogLogger)
	statsService := services.NewStatsService(examRepo, slogLogger)
	importService := services.NewImportExportService(validator, slogLogger)

	handlerManager := handlers.NewHandlerManager(
		handlers.NewExamHandler(examRepo, statsService, cfg.Exam, appLogger),
		handlers.NewSessionHandler(sessionService, scoringService, importService, validator, appLogger),
		handlers.NewImportHandler(importService, appLogger),
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(appLogger))

	handlerManager.SetupRoutes(router)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
