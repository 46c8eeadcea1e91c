package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/educore-id/educore-api/api/swagger"
	"github.com/educore-id/educore-api/internal/handler"
	"github.com/educore-id/educore-api/internal/middleware"
	"github.com/educore-id/educore-api/internal/repository"
	"github.com/educore-id/educore-api/internal/service"
	"github.com/educore-id/educore-api/pkg/cache"
	"github.com/educore-id/educore-api/pkg/config"
	"github.com/educore-id/educore-api/pkg/database"
	"github.com/educore-id/educore-api/pkg/jobs"
	"github.com/educore-id/educore-api/pkg/logger"
	corsmiddleware "github.com/educore-id/educore-api/pkg/middleware/cors"
	ratelimitmiddleware "github.com/educore-id/educore-api/pkg/middleware/ratelimit"
	reqidmiddleware "github.com/educore-id/educore-api/pkg/middleware/requestid"
	"github.com/educore-id/educore-api/pkg/storage"
)

// @title Educore API
// @version 1.0.0
// @description School e-learning backend: session auth, profiles, materials and completion tracking
// @BasePath /
// @schemes http
// @securityDefinitions.apikey SessionToken
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.Database); err != nil {
		logr.Fatal("failed to run migrations", zap.Error(err))
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	blob, err := storage.NewLocalStorage(cfg.Storage.UploadsDir)
	if err != nil {
		logr.Fatal("failed to init upload storage", zap.Error(err))
	}
	signer := storage.NewDownloadTokenSigner(cfg.Storage.DownloadTokenSecret, cfg.Storage.DownloadTokenTTL)

	validate := validator.New()

	accountRepo := repository.NewAccountRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	completionRepo := repository.NewCompletionRepository(db)
	rosterRepo := repository.NewRosterRepository(db)

	metricsSvc := service.NewMetricsService()
	authSvc := service.NewAuthService(accountRepo, sessionRepo, profileRepo, validate, logr, metricsSvc, service.AuthConfig{SessionTTL: cfg.Session.TTL})
	profileSvc := service.NewProfileService(profileRepo, validate, logr)
	catalogSvc := service.NewCatalogService(catalogRepo, logr)
	materialSvc := service.NewMaterialService(materialRepo, completionRepo, catalogRepo, blob, signer, validate, logr)
	rosterSvc := service.NewRosterService(rosterRepo, logr)
	uploadSvc := service.NewUploadService(blob, logr)

	sweeper := jobs.NewSweeper("session-purge", time.Hour, func(ctx context.Context) (int64, error) {
		count, err := sessionRepo.DeleteExpired(ctx)
		metricsSvc.AddSessionsPurged(count)
		return count, err
	}, logr)
	sweeper.Start(context.Background())
	defer sweeper.Stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	if cfg.RateLimit.Enabled {
		limiter := ratelimitmiddleware.New(redisClient, cfg.RateLimit.Requests, cfg.RateLimit.Window, metricsSvc.IncRateLimited)
		r.Use(limiter.Middleware())
	}

	handlers := handler.Handlers{
		Auth:     handler.NewAuthHandler(authSvc),
		Profile:  handler.NewProfileHandler(profileSvc),
		Catalog:  handler.NewCatalogHandler(catalogSvc),
		Material: handler.NewMaterialHandler(materialSvc),
		Roster:   handler.NewRosterHandler(rosterSvc),
		Upload:   handler.NewUploadHandler(uploadSvc, metricsSvc),
		File:     handler.NewFileHandler(uploadSvc, signer),
		Metrics:  handler.NewMetricsHandler(metricsSvc, db, redisClient),
	}
	guards := handler.AuthMiddleware{
		Authenticate: middleware.Auth(authSvc),
		TeacherOnly:  middleware.RequireTeacher(),
		StudentOnly:  middleware.RequireStudent(),
	}
	handler.RegisterRoutes(r, handlers, guards)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
