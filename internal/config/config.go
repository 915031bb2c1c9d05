package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"

	"moviehub/internal/logger"
)

const (
	defaultHTTPAddr        = ":8080"
	defaultDatabaseURL     = "moviehub.db"
	defaultTMDBBaseURL     = "https://api.themoviedb.org/3/"
	defaultTMDBLanguage    = "en"
	defaultTMDBTimeout     = "15s"
	defaultTMDBCacheMaxAge = "2h"
	defaultTMDBRateLimit   = "40"
	defaultAPIRateLimit    = "20"
	defaultDebug           = "false"
)

type Config struct {
	AppEnv             string
	HTTPAddr           string
	DatabaseURL        string
	TMDBBaseURL        string
	TMDBToken          string
	TMDBLanguage       string
	TMDBTimeout        time.Duration
	TMDBCacheMaxAge    time.Duration
	TMDBRateLimit      float64
	APIRateLimit       float64
	CORSAllowedOrigins []string
	LogLevel           string
	Debug              bool
}

// Load reads the configuration from the environment, after merging an
// optional .env file from the working directory.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("failed to read .env", "error", err)
	}
	return FromEnv(time.Now())
}

func FromEnv(now time.Time) (*Config, error) {
	cfg := &Config{}
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv == "" {
		appEnv = "dev"
	}
	cfg.AppEnv = strings.ToLower(appEnv)

	cfg.HTTPAddr = strings.TrimSpace(getEnv("HTTP_ADDR", defaultHTTPAddr))
	cfg.DatabaseURL = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseURL))
	cfg.TMDBBaseURL = strings.TrimSpace(getEnv("TMDB_BASE_URL", defaultTMDBBaseURL))
	cfg.TMDBToken = strings.TrimSpace(os.Getenv("TMDB_API_TOKEN"))
	cfg.TMDBLanguage = strings.TrimSpace(getEnv("TMDB_LANGUAGE", defaultTMDBLanguage))
	cfg.LogLevel = strings.TrimSpace(getEnv("LOG_LEVEL", "info"))
	cfg.Debug = parseBoolEnv("DEBUG", defaultDebug)

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, o)
			}
		}
	}

	var err error
	cfg.TMDBTimeout, err = parseDurationEnv("TMDB_TIMEOUT", defaultTMDBTimeout)
	if err != nil {
		return nil, err
	}

	cfg.TMDBCacheMaxAge, err = parseDurationEnv("TMDB_CACHE_MAX_AGE", defaultTMDBCacheMaxAge)
	if err != nil {
		return nil, err
	}

	cfg.TMDBRateLimit, err = parseFloatEnv("TMDB_RATE_LIMIT", defaultTMDBRateLimit)
	if err != nil {
		return nil, err
	}

	cfg.APIRateLimit, err = parseFloatEnv("API_RATE_LIMIT", defaultAPIRateLimit)
	if err != nil {
		return nil, err
	}

	if err := validateConfig(cfg, now); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return isProdLike(c.AppEnv)
}

func validateConfig(cfg *Config, now time.Time) error {
	if cfg.TMDBTimeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be > 0")
	}
	if cfg.TMDBCacheMaxAge < 0 {
		return fmt.Errorf("TMDB_CACHE_MAX_AGE must be >= 0")
	}
	if cfg.TMDBRateLimit <= 0 {
		return fmt.Errorf("TMDB_RATE_LIMIT must be > 0")
	}
	if cfg.APIRateLimit <= 0 {
		return fmt.Errorf("API_RATE_LIMIT must be > 0")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if !strings.HasPrefix(cfg.TMDBBaseURL, "http://") && !strings.HasPrefix(cfg.TMDBBaseURL, "https://") {
		return fmt.Errorf("TMDB_BASE_URL must be an http(s) URL")
	}
	if cfg.TMDBToken == "" {
		return fmt.Errorf("TMDB_API_TOKEN is empty")
	}
	if err := inspectToken(cfg.TMDBToken, now); err != nil {
		return err
	}
	return nil
}

// inspectToken checks that the TMDB read access token looks like the JWT the
// API issues and has not expired. The signature is TMDB's to verify.
func inspectToken(token string, now time.Time) error {
	claims := jwtlib.MapClaims{}
	if _, _, err := jwtlib.NewParser().ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("TMDB_API_TOKEN is not a read access token: %w", err)
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return fmt.Errorf("TMDB_API_TOKEN has an invalid exp claim: %w", err)
	}
	if exp != nil && exp.Before(now) {
		return fmt.Errorf("TMDB_API_TOKEN expired at %s", exp.Format(time.RFC3339))
	}
	return nil
}

func isProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseFloatEnv(name, fallback string) (float64, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return f, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
