package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Security SecurityConfig
	CORS     CORSConfig
	Logging  LoggingConfig
	Places   PlacesConfig
	PetTour  PetTourConfig
	Quota    QuotaConfig
	Admin    AdminConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// Addr returns host:port for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// SecurityConfig holds token settings
type SecurityConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// PlacesConfig configures the Kakao Local client. An empty key disables
// provider lookups.
type PlacesConfig struct {
	KakaoAPIKey  string
	KakaoBaseURL string
	Timeout      time.Duration
}

// PetTourConfig configures the open-data pet tour sync.
type PetTourConfig struct {
	APIKey  string
	BaseURL string
}

// Quota backends
const (
	QuotaBackendPostgres = "postgres"
	QuotaBackendRedis    = "redis"
)

// QuotaConfig selects where search counters live.
type QuotaConfig struct {
	Backend   string
	RedisAddr string
}

// AdminConfig seeds a staff account on start when both fields are set.
type AdminConfig struct {
	Email    string
	Password string
}

// Load reads configuration from config/local.env, .env and the environment.
// Variables already set in the environment win.
func Load() (*Config, error) {
	_ = godotenv.Load("config/local.env")
	_ = godotenv.Load(".env")

	cfg := &Config{}

	if err := cfg.loadDatabase(); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	if err := cfg.loadSecurity(); err != nil {
		return nil, fmt.Errorf("load security config: %w", err)
	}
	if err := cfg.loadPlaces(); err != nil {
		return nil, fmt.Errorf("load places config: %w", err)
	}
	cfg.loadCORS()
	cfg.loadLogging()
	cfg.loadPetTour()
	cfg.loadQuota()
	cfg.loadAdmin()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadDatabase reads only the database and logging settings. Tools that never
// serve HTTP use it so they do not need JWT_SECRET.
func LoadDatabase() (*Config, error) {
	_ = godotenv.Load("config/local.env")
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if err := cfg.loadDatabase(); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}
	cfg.loadLogging()
	cfg.loadPetTour()
	if cfg.Database.URL == "" {
		return nil, errors.New("DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}
	return cfg, nil
}

func (c *Config) loadDatabase() error {
	c.Database.URL = os.Getenv("DATABASE_URL")
	if c.Database.URL != "" {
		return nil
	}

	c.Database.Host = getEnvOrDefault("DB_HOST", "localhost")
	c.Database.User = os.Getenv("DB_USER")
	c.Database.Password = os.Getenv("DB_PASSWORD")
	c.Database.Name = os.Getenv("DB_NAME")
	c.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

	port, err := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	c.Database.Port = port

	if c.Database.Host != "" && c.Database.User != "" && c.Database.Name != "" {
		c.Database.URL = fmt.Sprintf(
			"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
			c.Database.User,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
			c.Database.SSLMode,
		)
	}
	return nil
}

func (c *Config) loadServer() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")
	return nil
}

func (c *Config) loadSecurity() error {
	c.Security.JWTSecret = os.Getenv("JWT_SECRET")
	ttl, err := time.ParseDuration(getEnvOrDefault("TOKEN_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	c.Security.TokenTTL = ttl
	return nil
}

func (c *Config) loadPlaces() error {
	c.Places.KakaoAPIKey = os.Getenv("KAKAO_REST_API_KEY")
	c.Places.KakaoBaseURL = getEnvOrDefault("KAKAO_BASE_URL", "https://dapi.kakao.com")
	timeout, err := time.ParseDuration(getEnvOrDefault("PROVIDER_TIMEOUT", "10s"))
	if err != nil {
		return fmt.Errorf("invalid PROVIDER_TIMEOUT: %w", err)
	}
	c.Places.Timeout = timeout
	return nil
}

func (c *Config) loadCORS() {
	c.CORS.AllowedOrigins = parseList(getEnvOrDefault("CORS_ALLOWED_ORIGINS",
		"http://localhost:3000,http://localhost:5173,http://localhost:8080"))
}

func (c *Config) loadLogging() {
	c.Logging.Level = strings.ToLower(getEnvOrDefault("LOG_LEVEL", "info"))
	c.Logging.Format = strings.ToLower(getEnvOrDefault("LOG_FORMAT", "json"))
}

func (c *Config) loadPetTour() {
	c.PetTour.APIKey = os.Getenv("TOUR_API_KEY")
	c.PetTour.BaseURL = getEnvOrDefault("TOUR_API_BASE_URL", "http://apis.data.go.kr")
}

func (c *Config) loadQuota() {
	c.Quota.Backend = strings.ToLower(getEnvOrDefault("QUOTA_BACKEND", QuotaBackendPostgres))
	c.Quota.RedisAddr = getEnvOrDefault("REDIS_ADDR", "localhost:6379")
}

func (c *Config) loadAdmin() {
	c.Admin.Email = os.Getenv("ADMIN_EMAIL")
	c.Admin.Password = os.Getenv("ADMIN_PASSWORD")
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var problems []string

	if c.Database.URL == "" {
		problems = append(problems, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}

	if c.Security.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required")
	} else if len(c.Security.JWTSecret) < 16 {
		problems = append(problems, "JWT_SECRET must be at least 16 characters")
	}
	if c.Security.TokenTTL <= 0 {
		problems = append(problems, "TOKEN_TTL must be positive")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, "PORT must be between 1 and 65535")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		problems = append(problems, "LOG_LEVEL must be one of: debug, info, warn, error")
	}
	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		problems = append(problems, "LOG_FORMAT must be one of: json, text")
	}

	if c.Places.Timeout <= 0 {
		problems = append(problems, "PROVIDER_TIMEOUT must be positive")
	}

	switch c.Quota.Backend {
	case QuotaBackendPostgres:
	case QuotaBackendRedis:
		if c.Quota.RedisAddr == "" {
			problems = append(problems, "REDIS_ADDR is required when QUOTA_BACKEND=redis")
		}
	default:
		problems = append(problems, "QUOTA_BACKEND must be one of: postgres, redis")
	}

	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		problems = append(problems, "ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
