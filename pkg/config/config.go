package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string

	// Embedding model (OpenAI-compatible /embeddings endpoint)
	EmbedBaseURL string
	EmbedAPIKey  string
	EmbedModel   string

	// Vector index (ChromaDB)
	ChromaURL        string
	ChromaCollection string

	// Matching defaults
	MatchTopK     int
	MatchMinScore float64

	JWTSecret     string
	JWTIssuer     string
	JWTTTLMinutes int
}

// Load reads environment variables, optionally from a .env file if present.
func Load() Config {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	cfg := Config{
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		EmbedBaseURL:     getEnv("EMBED_BASE_URL", "https://api.openai.com/v1"),
		EmbedAPIKey:      os.Getenv("EMBED_API_KEY"),
		EmbedModel:       getEnv("EMBED_MODEL", "text-embedding-3-small"),
		ChromaURL:        getEnv("CHROMA_URL", "http://localhost:8000"),
		ChromaCollection: getEnv("CHROMA_COLLECTION", "jobs"),
		MatchTopK:        getEnvInt("MATCH_TOP_K", 20),
		MatchMinScore:    getEnvFloat("MATCH_MIN_SCORE", 0.3),
		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change"),
		JWTIssuer:        getEnv("JWT_ISSUER", "job-finder"),
		JWTTTLMinutes:    getEnvInt("JWT_TTL_MINUTES", 60),
	}
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
