package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"

	"cv-builder/resume/form"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string
	SessionTTL      time.Duration
	MaxSessions     int
	RenderRate      float64
	RenderBurst     int
	SkillsInput     string
	RequiredFields  []string
}

// Load reads configuration from environment variables and an optional
// config.yaml with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("env", "dev")
	v.SetDefault("cors_allow_origins", "http://localhost:5173")
	v.SetDefault("database_url", "")
	v.SetDefault("session_ttl", "2h")
	v.SetDefault("max_sessions", 1000)
	v.SetDefault("render_rate", 1.0)
	v.SetDefault("render_burst", 5)
	v.SetDefault("skills_input", "structured")
	v.SetDefault("required_fields", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("config: read config.yaml: %v", err)
		}
	}
	v.AutomaticEnv()

	cfg := fromViper(v)
	if cfg.Env == "production" && cfg.DatabaseURL == "" {
		log.Printf("DATABASE_URL is not set; generation history will be kept in memory")
	}
	return cfg
}

func fromViper(v *viper.Viper) Config {
	ttl := v.GetDuration("session_ttl")
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return Config{
		Port:            v.GetString("port"),
		Env:             normalizeEnv(v.GetString("env")),
		CORSAllowOrigin: splitAndTrim(v.GetString("cors_allow_origins")),
		DatabaseURL:     v.GetString("database_url"),
		SessionTTL:      ttl,
		MaxSessions:     v.GetInt("max_sessions"),
		RenderRate:      v.GetFloat64("render_rate"),
		RenderBurst:     v.GetInt("render_burst"),
		SkillsInput:     normalizeSkillsInput(v.GetString("skills_input")),
		RequiredFields:  splitAndTrim(v.GetString("required_fields")),
	}
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
	default:
		return "dev"
	}
}

// normalizeSkillsInput falls back to structured entry for unknown modes.
func normalizeSkillsInput(raw string) string {
	mode, err := form.ParseSkillsInput(raw)
	if err != nil {
		log.Printf("config: %v; using %s", err, mode)
	}
	return string(mode)
}
