package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DatabaseURL string `validate:"required"`
	HTTPAddr    string `validate:"required"`
	AutoMigrate bool

	Timezone string `validate:"required"`
	Location *time.Location

	// DasDefaultAmount is the flat monthly MEI value used when the user
	// marks the DAS as paid without typing an amount.
	DasDefaultAmount   decimal.Decimal
	DasHistoryLimit    int    `validate:"min=1"`
	DasOverdueSchedule string `validate:"required"`
	HistoryMonths      int    `validate:"min=1,max=24"`

	StorageBackend string `validate:"oneof=fs s3"`
	StorageDir     string `validate:"required_if=StorageBackend fs"`
	S3Bucket       string `validate:"required_if=StorageBackend s3"`
	S3Region       string
	S3Endpoint     string
	// Static S3 keys. Left empty the default AWS credential chain is used.
	S3AccessKey    string        `validate:"required_with=S3SecretKey"`
	S3SecretKey    string        `validate:"required_with=S3AccessKey"`
	SignedURLTTL   time.Duration `validate:"min=1s"`
	MaxUploadBytes int64         `validate:"min=1"`

	CORSOrigins []string
	SessionTTL  time.Duration `validate:"min=1m"`

	LogLevel  string `validate:"oneof=trace debug info warn error"`
	LogFormat string `validate:"oneof=json console"`
}

var validate = validator.New()

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

// Load reads .env when it exists, then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv builds the configuration from environment variables only.
func FromEnv() (Config, error) {
	var (
		cfg  Config
		errs []error
	)

	cfg.DatabaseURL = getenv("DATABASE_URL", "")
	cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
	cfg.Timezone = getenv("APP_TIMEZONE", "America/Sao_Paulo")
	cfg.DasOverdueSchedule = getenv("DAS_OVERDUE_SCHEDULE", "@daily")
	cfg.StorageBackend = getenv("STORAGE_BACKEND", "fs")
	cfg.StorageDir = getenv("STORAGE_DIR", "./data/notas-fiscais")
	cfg.S3Bucket = getenv("S3_BUCKET", "notas-fiscais")
	cfg.S3Region = getenv("S3_REGION", "sa-east-1")
	cfg.S3Endpoint = getenv("S3_ENDPOINT", "")
	cfg.S3AccessKey = getenv("S3_ACCESS_KEY_ID", "")
	cfg.S3SecretKey = getenv("S3_SECRET_ACCESS_KEY", "")
	cfg.LogLevel = strings.ToLower(getenv("LOG_LEVEL", "info"))
	cfg.LogFormat = strings.ToLower(getenv("LOG_FORMAT", "json"))

	for _, origin := range strings.Split(getenv("CORS_ORIGINS", "http://localhost:3000"), ",") {
		if o := strings.TrimSpace(origin); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	var err error
	if cfg.AutoMigrate, err = strconv.ParseBool(getenv("AUTO_MIGRATE", "true")); err != nil {
		errs = append(errs, fmt.Errorf("AUTO_MIGRATE: %w", err))
	}
	if cfg.DasDefaultAmount, err = decimal.NewFromString(getenv("DAS_DEFAULT_AMOUNT", "66.00")); err != nil {
		errs = append(errs, fmt.Errorf("DAS_DEFAULT_AMOUNT: %w", err))
	}
	if cfg.DasHistoryLimit, err = strconv.Atoi(getenv("DAS_HISTORY_LIMIT", "12")); err != nil {
		errs = append(errs, fmt.Errorf("DAS_HISTORY_LIMIT: %w", err))
	}
	if cfg.HistoryMonths, err = strconv.Atoi(getenv("HISTORY_MONTHS", "6")); err != nil {
		errs = append(errs, fmt.Errorf("HISTORY_MONTHS: %w", err))
	}
	if cfg.SignedURLTTL, err = time.ParseDuration(getenv("SIGNED_URL_TTL", "1h")); err != nil {
		errs = append(errs, fmt.Errorf("SIGNED_URL_TTL: %w", err))
	}
	if cfg.SessionTTL, err = time.ParseDuration(getenv("SESSION_TTL", "720h")); err != nil {
		errs = append(errs, fmt.Errorf("SESSION_TTL: %w", err))
	}
	maxMB, err := strconv.ParseInt(getenv("MAX_UPLOAD_MB", "10"), 10, 64)
	if err != nil {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_MB: %w", err))
	}
	cfg.MaxUploadBytes = maxMB << 20

	if cfg.Location, err = time.LoadLocation(cfg.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("APP_TIMEZONE: %w", err))
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("bad config: %w", errors.Join(errs...))
	}
	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("bad config: %w", err)
	}
	return cfg, nil
}

// MustLoad is Load for main packages.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Now returns the current time in the configured business timezone.
func (c Config) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}
