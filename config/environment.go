package config

import (
	"os"
	"strings"
	"time"
)

// Config holds everything read from the environment at startup. Values are
// threaded into the components that need them instead of being consulted
// globally.
type Config struct {
	Port          string
	DBURL         string
	JWTSecret     string
	AIURL         string
	UploadDir     string
	CORSOrigins   []string
	TokenValidity time.Duration
}

func Load() Config {
	cfg := Config{
		Port:          os.Getenv("PORT"),
		DBURL:         os.Getenv("DB_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
		AIURL:         os.Getenv("AI_URL"),
		UploadDir:     os.Getenv("UPLOAD_DIR"),
		TokenValidity: 24 * time.Hour,
	}

	if cfg.Port == "" {
		cfg.Port = "8080" // fallback port for local development
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.AIURL == "" {
		cfg.AIURL = "http://localhost:5042"
	}

	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		cfg.CORSOrigins = []string{"http://localhost:3000"}
	} else {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg
}
