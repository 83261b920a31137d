package utils

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("PORTFOLIOHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("PORTFOLIOHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "portfoliohub"
	}

	duration := 24 * time.Hour
	if ttl := os.Getenv("PORTFOLIOHUB_JWT_TTL_HOURS"); ttl != "" {
		if hours, err := strconv.Atoi(ttl); err == nil && hours > 0 {
			duration = time.Duration(hours) * time.Hour
		}
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: duration,
	}
}

type ServerConfig struct {
	HTTPAddr    string
	PreviewAddr string
	NotifyAddr  string
	MediaDir    string
	ExportDir   string
}

func LoadServerConfig() ServerConfig {
	return ServerConfig{
		HTTPAddr:    envOr("PORTFOLIOHUB_HTTP_ADDR", ":8080"),
		PreviewAddr: envOr("PORTFOLIOHUB_PREVIEW_ADDR", ":7070"),
		NotifyAddr:  envOr("PORTFOLIOHUB_NOTIFY_ADDR", ":7071"),
		MediaDir:    envOr("PORTFOLIOHUB_MEDIA_DIR", "data/media"),
		ExportDir:   envOr("PORTFOLIOHUB_EXPORT_DIR", "data/exports"),
	}
}

type AIConfig struct {
	APIKey string
	Model  string
}

func LoadAIConfig() AIConfig {
	return AIConfig{
		APIKey: os.Getenv("PORTFOLIOHUB_GENAI_API_KEY"),
		Model:  envOr("PORTFOLIOHUB_GENAI_MODEL", "gemini-2.0-flash"),
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
