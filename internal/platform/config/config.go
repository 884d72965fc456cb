package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	// Refresh Token Config
	RefreshTokenSecret         string
	RefreshTokenExpiryDuration time.Duration
	RefreshTokenRotationWindow time.Duration

	// Board / comment rules
	MaxCommentDepth int
	AdminBoardIDs   []int64

	// Redis (search cache, rate limiter store)
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	SearchCacheTTL time.Duration

	// S3 attachment storage
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	S3BucketName       string
	S3Endpoint         string

	LoginRateLimit     string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "board-backend")
	v.SetDefault("REFRESH_TOKEN_SECRET", "default_insecure_refresh_secret_please_change_this_!@#$")
	v.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	v.SetDefault("REFRESH_TOKEN_ROTATION_WINDOW", "24h")
	v.SetDefault("MAX_COMMENT_DEPTH", 3)
	v.SetDefault("ADMIN_BOARD_IDS", "1")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("SEARCH_CACHE_TTL", "1h")
	v.SetDefault("AWS_REGION", "")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("AWS_S3_BUCKET_NAME", "")
	v.SetDefault("AWS_S3_ENDPOINT", "")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	// Environment variables override the defaults above (and the values loaded from .env).
	v.AutomaticEnv()

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	cfg.DatabaseURL = v.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = v.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = v.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = v.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = v.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must not be empty")
	}
	cfg.JWTExpiryDuration = durationOr(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.JWTIssuer = v.GetString("JWT_ISSUER")

	cfg.RefreshTokenSecret = v.GetString("REFRESH_TOKEN_SECRET")
	if cfg.RefreshTokenSecret == "" {
		return nil, fmt.Errorf("REFRESH_TOKEN_SECRET must not be empty")
	}
	if cfg.IsProduction && strings.HasPrefix(cfg.RefreshTokenSecret, "default_insecure") {
		log.Println("Warning: REFRESH_TOKEN_SECRET is not set, using default insecure secret. THIS IS NOT FOR PRODUCTION.")
	}
	cfg.RefreshTokenExpiryDuration = durationOr(v, "REFRESH_TOKEN_EXPIRY_DURATION", 7*24*time.Hour)
	cfg.RefreshTokenRotationWindow = durationOr(v, "REFRESH_TOKEN_ROTATION_WINDOW", 24*time.Hour)

	rawDepth := strings.TrimSpace(v.GetString("MAX_COMMENT_DEPTH"))
	maxDepth, err := strconv.Atoi(rawDepth)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_COMMENT_DEPTH %q: %w", rawDepth, err)
	}
	if maxDepth < 0 {
		return nil, fmt.Errorf("MAX_COMMENT_DEPTH must be >= 0, got %d", maxDepth)
	}
	cfg.MaxCommentDepth = maxDepth

	adminBoards, err := parseIDList(v.GetString("ADMIN_BOARD_IDS"))
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_BOARD_IDS: %w", err)
	}
	cfg.AdminBoardIDs = adminBoards

	cfg.RedisAddr = v.GetString("REDIS_ADDR")
	cfg.RedisPassword = v.GetString("REDIS_PASSWORD")
	cfg.RedisDB = v.GetInt("REDIS_DB")
	cfg.SearchCacheTTL = durationOr(v, "SEARCH_CACHE_TTL", time.Hour)

	cfg.AWSRegion = v.GetString("AWS_REGION")
	cfg.AWSAccessKeyID = v.GetString("AWS_ACCESS_KEY_ID")
	cfg.AWSSecretAccessKey = v.GetString("AWS_SECRET_ACCESS_KEY")
	cfg.S3BucketName = v.GetString("AWS_S3_BUCKET_NAME")
	cfg.S3Endpoint = v.GetString("AWS_S3_ENDPOINT")
	if cfg.S3BucketName == "" {
		log.Println("Warning: AWS_S3_BUCKET_NAME not set. Post attachments will be rejected.")
	}

	cfg.LoginRateLimit = v.GetString("LOGIN_RATE_LIMIT")
	cfg.CORSAllowedOrigins = splitNonEmpty(v.GetString("CORS_ALLOWED_ORIGINS"))

	return cfg, nil
}

// IsAdminBoard reports whether posts on boardID are restricted to admins.
func (c *Config) IsAdminBoard(boardID int64) bool {
	for _, id := range c.AdminBoardIDs {
		if id == boardID {
			return true
		}
	}
	return false
}

func durationOr(v *viper.Viper, key string, def time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

func parseIDList(raw string) ([]int64, error) {
	parts := splitNonEmpty(raw)
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func splitNonEmpty(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
