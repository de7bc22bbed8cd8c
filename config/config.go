package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	DatabaseDSN string
	KafkaBroker string
	KafkaTopic  string
	KafkaUser   string
	KafkaPass   string

	// Similarity model. "lexical" needs nothing; "gemini" needs the API key.
	SimilarityModel string
	GeminiAPIKey    string
	GeminiModel     string

	ScoringMaxConcurrent int64
	SeedDemo             bool
	LogJSON              bool
	LogDebug             bool
	BaseURL              string
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("Warning: env file not found or could not be loaded:", err)
		}
	}

	return Config{
		ServerPort:           getEnv("SERVER_PORT", ":8000"),
		DatabaseDSN:          os.Getenv("DATABASE_DSN"),
		KafkaBroker:          os.Getenv("KAFKA_BROKER"),
		KafkaTopic:           os.Getenv("KAFKA_TOPIC"),
		KafkaUser:            os.Getenv("KAFKA_USERNAME"),
		KafkaPass:            os.Getenv("KAFKA_PASSWORD"),
		SimilarityModel:      getEnv("SIMILARITY_MODEL", "lexical"),
		GeminiAPIKey:         os.Getenv("GEMINI_API_KEY"),
		GeminiModel:          os.Getenv("GEMINI_EMBEDDING_MODEL"),
		ScoringMaxConcurrent: getEnvInt64("SCORING_MAX_CONCURRENT", 4),
		SeedDemo:             os.Getenv("SEED_DEMO") == "true",
		LogJSON:              os.Getenv("LOG_JSON") == "true",
		LogDebug:             os.Getenv("LOG_DEBUG") == "true",
		BaseURL:              getEnv("BASE_URL", "*"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		log.Printf("invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
