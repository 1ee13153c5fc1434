package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is built once at startup and injected where needed. Nothing else
// in the codebase reads the process environment.
type Config struct {
	Port         string
	MongoURI     string
	DatabaseName string

	AllowedOrigins []string

	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration

	CookieSecure bool
	CookieDomain string

	// MediaBackend selects the object storage implementation: "gcs" or "r2".
	MediaBackend string

	GCSBucket          string
	GCSCredentialsFile string

	R2Bucket          string
	R2AccessKeyID     string
	R2SecretAccessKey string
	R2Endpoint        string
	R2PublicDomain    string

	MaxUploadSizeMB int64
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := &Config{
		Port:               getDefault("PORT", "8080"),
		MongoURI:           os.Getenv("MONGODB_URI"),
		DatabaseName:       os.Getenv("DATABASE_NAME"),
		AllowedOrigins:     splitList(os.Getenv("ALLOWED_ORIGINS")),
		AccessTokenSecret:  os.Getenv("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: os.Getenv("REFRESH_TOKEN_SECRET"),
		AccessTokenTTL:     time.Duration(intDefault("ACCESS_TOKEN_TTL_MINUTES", 15)) * time.Minute,
		RefreshTokenTTL:    time.Duration(intDefault("REFRESH_TOKEN_TTL_DAYS", 14)) * 24 * time.Hour,
		CookieSecure:       os.Getenv("COOKIE_SECURE") == "true",
		CookieDomain:       os.Getenv("COOKIE_DOMAIN"),
		MediaBackend:       getDefault("MEDIA_BACKEND", "gcs"),
		GCSBucket:          os.Getenv("GCS_BUCKET"),
		GCSCredentialsFile: os.Getenv("CREDENTIALS_FILE_LOCATION"),
		R2Bucket:           os.Getenv("R2_BUCKET"),
		R2AccessKeyID:      os.Getenv("R2_ACCESS_KEY_ID"),
		R2SecretAccessKey:  os.Getenv("R2_SECRET_ACCESS_KEY"),
		R2Endpoint:         os.Getenv("R2_ENDPOINT"),
		R2PublicDomain:     strings.TrimRight(os.Getenv("R2_PUBLIC_DOMAIN"), "/"),
		MaxUploadSizeMB:    int64(intDefault("MAX_UPLOAD_SIZE_MB", 100)),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGODB_URI is required")
	}
	if cfg.DatabaseName == "" {
		return nil, fmt.Errorf("DATABASE_NAME is required")
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required")
	}

	switch cfg.MediaBackend {
	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("GCS_BUCKET is required when MEDIA_BACKEND=gcs")
		}
	case "r2":
		if cfg.R2Bucket == "" || cfg.R2AccessKeyID == "" || cfg.R2SecretAccessKey == "" || cfg.R2Endpoint == "" {
			return nil, fmt.Errorf("missing R2 env vars (R2_BUCKET, R2_ACCESS_KEY_ID, R2_SECRET_ACCESS_KEY, R2_ENDPOINT)")
		}
	default:
		return nil, fmt.Errorf("unknown MEDIA_BACKEND %q", cfg.MediaBackend)
	}

	return cfg, nil
}

func getDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func intDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitList(raw string) []string {
	out := make([]string, 0)
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
