package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port  string
	DBUrl string
	Debug bool
	// Embedding model configuration. Leaving the API key empty disables the
	// semantic signal and the engine degrades to skill+experience scoring.
	EmbeddingAPIKey     string
	EmbeddingBaseURL    string
	EmbeddingModel      string
	EmbeddingDimensions int
	EmbeddingTimeout    time.Duration
	// Scoring weights (relative; renormalized when a component is absent)
	WeightSkill      float64
	WeightExperience float64
	WeightSemantic   float64
	// Status thresholds on the [0,1] scale
	ThresholdShortlist float64
	ThresholdReview    float64
	// Skill vocabulary override; empty uses the built-in vocabulary
	SkillVocabularyFile string
	// Batch screening concurrency limit
	BatchConcurrency int
}

func LoadConfig() (*Config, error) {
	// .env is only present in local development; ignore it elsewhere
	_ = godotenv.Load()

	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		DBUrl: getEnv("DATABASE_URL", ""),
		Debug: getEnvBool("DEBUG", false),

		EmbeddingAPIKey:     getEnv("EMBEDDING_API_KEY", ""),
		EmbeddingBaseURL:    strings.TrimRight(getEnv("EMBEDDING_BASE_URL", ""), "/"),
		EmbeddingModel:      getEnv("EMBEDDING_MODEL", "text-embedding-3-small"),
		EmbeddingDimensions: getEnvInt("EMBEDDING_DIMENSIONS", 0),
		EmbeddingTimeout:    time.Duration(getEnvInt("EMBEDDING_TIMEOUT_SECONDS", 10)) * time.Second,

		WeightSkill:      getEnvFloat("WEIGHT_SKILL", 0.4),
		WeightExperience: getEnvFloat("WEIGHT_EXPERIENCE", 0.3),
		WeightSemantic:   getEnvFloat("WEIGHT_SEMANTIC", 0.3),

		ThresholdShortlist: getEnvFloat("THRESHOLD_SHORTLIST", 0.80),
		ThresholdReview:    getEnvFloat("THRESHOLD_REVIEW", 0.60),

		SkillVocabularyFile: getEnv("SKILL_VOCABULARY_FILE", ""),
		BatchConcurrency:    getEnvInt("BATCH_CONCURRENCY", 4),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.EmbeddingAPIKey == "" {
		log.Println("WARNING: EMBEDDING_API_KEY not configured. Semantic scoring disabled; weights renormalize over skill and experience.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvFloat returns a float environment variable or fallback if not set/invalid
func getEnvFloat(key string, fallback float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
