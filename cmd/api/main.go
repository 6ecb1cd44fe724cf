package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-screening-backend/config"
	v1 "go-screening-backend/internal/delivery/http/v1"
	"go-screening-backend/internal/embedding"
	"go-screening-backend/internal/repository/postgres"
	"go-screening-backend/internal/scoring"
	"go-screening-backend/internal/skills"
	"go-screening-backend/internal/textproc"
	"go-screening-backend/internal/usecase"
	"go-screening-backend/pkg/database"
	"go-screening-backend/pkg/logger"
	"go-screening-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           Candidate Screening API
// @version         1.0
// @description     Candidate-job matching and evaluation engine.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.Debug)
	logger.Log.Info("Starting screening backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresPool(context.Background(), cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repositories
	jobRepo := postgres.NewJobRepository(dbPool)
	resumeRepo := postgres.NewResumeRepository(dbPool)
	evalRepo := postgres.NewEvaluationRepository(dbPool)

	// 5. Setup Scoring Pipeline
	normalizer, err := textproc.NewNormalizer()
	if err != nil {
		logger.Log.Error("Failed to build text normalizer", "error", err)
		os.Exit(1)
	}

	vocab := skills.DefaultVocabulary(normalizer.NormalizeSkillTerm)
	if cfg.SkillVocabularyFile != "" {
		vocab, err = skills.LoadVocabulary(cfg.SkillVocabularyFile, normalizer.NormalizeSkillTerm)
		if err != nil {
			logger.Log.Error("Failed to load skill vocabulary", "file", cfg.SkillVocabularyFile, "error", err)
			os.Exit(1)
		}
		logger.Log.Info("Loaded skill vocabulary", "file", cfg.SkillVocabularyFile, "terms", vocab.Len())
	}
	extractor := skills.NewExtractor(vocab, normalizer)

	classifier, err := scoring.NewClassifier(
		scoring.Weights{Skill: cfg.WeightSkill, Experience: cfg.WeightExperience, Semantic: cfg.WeightSemantic},
		scoring.Thresholds{Shortlist: cfg.ThresholdShortlist, Review: cfg.ThresholdReview},
	)
	if err != nil {
		logger.Log.Error("Invalid scoring configuration", "error", err)
		os.Exit(1)
	}

	// Without an API key the embedder stays nil and the classifier
	// renormalizes over skill and experience.
	var embedder scoring.Embedder
	if cfg.EmbeddingAPIKey != "" {
		embedder = embedding.NewClient(embedding.Config{
			APIKey:     cfg.EmbeddingAPIKey,
			BaseURL:    cfg.EmbeddingBaseURL,
			Model:      cfg.EmbeddingModel,
			Dimensions: cfg.EmbeddingDimensions,
			Timeout:    cfg.EmbeddingTimeout,
		})
	}
	scorer := scoring.NewScorer(normalizer, extractor, classifier, embedder)

	// 6. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)
	jobUC := usecase.NewJobUsecase(jobRepo, validate)
	screeningUC := usecase.NewScreeningUsecase(jobRepo, resumeRepo, evalRepo, scorer, cfg.BatchConcurrency)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		JobUC:       jobUC,
		ScreeningUC: screeningUC,
	})

	// 8. Start Server
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
