package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Logger is global since we will need it everywhere
var Logger *slog.Logger

// ServiceConfig contains the settings for the HTTP pdf-service. The CLI
// gateway reads nothing but stdin, so none of this applies to it.
type ServiceConfig struct {
	ListenAddrPort string
	RendererName   string
	MaxUploadMB    int
}

// SetupLogger builds the shared logger. Diagnostics go to stderr: stdout is
// reserved for the JSON payload.
func SetupLogger() *slog.Logger {
	handler := slog.NewTextHandler(os.Stderr, nil)
	return slog.New(handler)
}

// SetupService loads .env if present and reads the pdf-service settings from
// the environment.
func SetupService() ServiceConfig {
	godotenv.Load() //.env is optional, settings may come straight from the environment

	return ServiceConfig{
		ListenAddrPort: getEnv("PDF_SERVICE_PORT", "8002"),
		RendererName:   getEnv("PDF_SERVICE_RENDERER", "pdfium"),
		MaxUploadMB:    getEnvInt("PDF_SERVICE_MAX_UPLOAD_MB", 32),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intVal, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intVal
}
