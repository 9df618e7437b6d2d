// Package config loads application configuration from the environment,
// with an optional .env file for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Catalog configuration
	DataDir     string
	CatalogFile string

	// Blob store configuration
	BlobBackend string // "sqlite", "badger" or "memory"
	BlobPath    string

	// Extraction configuration
	OCRLanguage string

	// Remote analysis configuration. Endpoint empty means local-only;
	// "proxy:<path>" routes through AnalysisBaseURL.
	AnalysisEndpoint string
	AnalysisBaseURL  string
	AnalysisAPIKey   string
	AnalysisModel    string
	AnalysisTokens   int
}

// Load reads configuration from environment variables with sensible
// defaults. A .env file in the working directory is merged in when
// present.
func Load() (*Config, error) {
	// Missing .env is the normal production case.
	_ = godotenv.Load()

	config := &Config{
		DataDir:     getEnv("NOTES_DATA_DIR", "data"),
		CatalogFile: getEnv("NOTES_CATALOG_FILE", "subjects.json"),

		BlobBackend: getEnv("NOTES_BLOB_BACKEND", "sqlite"),
		BlobPath:    getEnv("NOTES_BLOB_PATH", ""),

		OCRLanguage: getEnv("NOTES_OCR_LANGUAGE", "eng"),

		AnalysisEndpoint: getEnv("NOTES_ANALYSIS_ENDPOINT", ""),
		AnalysisBaseURL:  getEnv("NOTES_ANALYSIS_BASE_URL", ""),
		AnalysisAPIKey:   getEnv("NOTES_ANALYSIS_API_KEY", ""),
		AnalysisModel:    getEnv("NOTES_ANALYSIS_MODEL", ""),
		AnalysisTokens:   getEnvAsInt("NOTES_ANALYSIS_MAX_TOKENS", 0),
	}

	return config, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
