package main

import (
	"context"
	"go-talentmatch-backend/config"
	_ "go-talentmatch-backend/docs" // Important for Swagger
	v1 "go-talentmatch-backend/internal/delivery/http/v1"
	"go-talentmatch-backend/internal/repository/postgres"
	"go-talentmatch-backend/internal/usecase"
	"go-talentmatch-backend/pkg/aiclient"
	"go-talentmatch-backend/pkg/auth"
	"go-talentmatch-backend/pkg/database"
	"go-talentmatch-backend/pkg/identity"
	"go-talentmatch-backend/pkg/logger"
	"go-talentmatch-backend/pkg/redis"
	"go-talentmatch-backend/pkg/storage"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// @title           TalentMatch Backend API
// @version         1.0
// @description     Candidate-job matching and application lifecycle backend using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting talentmatch backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (rate limiting backend; in-memory fallback if absent)
	if err := redis.Initialize(redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup Object Storage
	store, err := storage.NewResumeStore(context.Background(), storage.Config{
		Provider:        storage.Provider(cfg.S3Provider),
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		Region:          cfg.S3Region,
		Bucket:          cfg.S3Bucket,
		WasabiEndpoint:  cfg.WasabiEndpoint,
	})
	if err != nil {
		logger.Log.Error("Failed to configure resume storage", "error", err)
		os.Exit(1)
	}

	// 6. External collaborators
	parser := aiclient.New(cfg.AIServiceURL)
	profiles := identity.New(cfg.AuthServiceURL)

	// 7. Setup Repositories
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)

	// 8. Setup UseCases
	resumeUC := usecase.NewResumeUsecase(resumeRepo, candidateRepo, store, parser, profiles)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, resumeRepo, parser)
	rankingUC := usecase.NewRankingUsecase(jobRepo, candidateRepo, applicationRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo, candidateRepo, resumeRepo)
	analyticsUC := usecase.NewAnalyticsUsecase(jobRepo, applicationRepo)

	// 9. Setup Auth Provider (JWKS)
	jwksProvider := auth.NewProvider(cfg.JWKSUrl)

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ResumeUC:      resumeUC,
		CandidateUC:   candidateUC,
		RankingUC:     rankingUC,
		ApplicationUC: applicationUC,
		AnalyticsUC:   analyticsUC,
		JWKSProvider:  jwksProvider,
		Config:        cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
