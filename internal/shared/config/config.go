package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	DatabaseURL     string
	Env             string

	// OptimizerURL is the endpoint of the text optimization service.
	// Empty disables the optimize routes.
	OptimizerURL string
	// OptimizerWebhookSecret authenticates inbound result deliveries on
	// the auth-exempt webhook. Empty skips the check (dev only).
	OptimizerWebhookSecret string
	// AutosaveInterval is the debounce window between the last edit and
	// the write-back to the store.
	AutosaveInterval time.Duration
	// MaxResumesPerOwner is the free plan document cap.
	MaxResumesPerOwner int
	// ExportTimeout bounds one rasterization pass.
	ExportTimeout time.Duration
	// ChromePath overrides headless Chrome discovery for exports.
	ChromePath string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		log.Printf("DATABASE_URL is required in production")
	}

	return Config{
		Port:                   getEnv("PORT", "8080"),
		CORSAllowOrigin:        splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		ObjectStoreType:        normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:          getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:              getEnv("AWS_REGION", ""),
		S3Bucket:               getEnv("S3_BUCKET", ""),
		S3Prefix:               getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:            getEnv("SSE_KMS_KEY_ID", ""),
		DatabaseURL:            dbURL,
		Env:                    env,
		OptimizerURL:           getEnv("OPTIMIZER_URL", ""),
		OptimizerWebhookSecret: getEnv("OPTIMIZER_WEBHOOK_SECRET", ""),
		AutosaveInterval:       getEnvSeconds("AUTOSAVE_INTERVAL_SECONDS", 30),
		MaxResumesPerOwner:     getEnvInt("FREE_PLAN_MAX_RESUMES", 3),
		ExportTimeout:          getEnvSeconds("EXPORT_TIMEOUT_SECONDS", 60),
		ChromePath:             getEnv("CHROME_PATH", ""),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid value %q, using %d", key, raw, def)
		return def
	}
	return val
}

func getEnvSeconds(key string, defSeconds int) time.Duration {
	return time.Duration(getEnvInt(key, defSeconds)) * time.Second
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
