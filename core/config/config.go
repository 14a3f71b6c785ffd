package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"streetnetwork.app/kinship/core/db"
)

type Config struct {
	OTel        OTelConfig
	WorkOS      WorkOSConfig
	Discord     DiscordConfig
	SMTP        SMTPConfig
	Pinata      PinataConfig
	Chatbot     LLMConfig
	ArangoDB    ArangoDBConfig
	Mongo       MongoConfig
	Queue       QueueConfig
	Session     SessionConfig
	Env         string
	Port        string
	AppURL      string
	AdminAPIKey string
	DB          db.Config

	// TrustedProxies lists the proxy IPs/CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string
}

type WorkOSConfig struct {
	APIKey      string
	ClientID    string
	RedirectURI string
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type DiscordConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

type PinataConfig struct {
	JWT     string
	Gateway string
	BaseURL string
}

type LLMConfig struct {
	Provider      string // "openai" or "anthropic"
	APIKey        string
	BaseURL       string
	Model         string
	MaxTokens     int
	RatePerMinute int
}

type ArangoDBConfig struct {
	URL      string
	Username string
	Password string
	Database string
}

type MongoConfig struct {
	URI         string
	Database    string
	ImageBucket string
	MaxImageMB  int64

	// DiscordStatsCollection is written by the community Discord bot.
	DiscordStatsCollection string
}

// QueueConfig describes the Redis stream shared by the server (producer)
// and the worker (consumer).
type QueueConfig struct {
	RedisURL  string
	Stream    string
	Group     string
	DLQStream string
	Consumer  string
}

type SessionConfig struct {
	TTL         time.Duration
	CookieName  string
	NonceTTL    time.Duration
	InviteTTL   time.Duration
	PasswordMin int
}

type ServiceType string

const (
	ServiceTypeServer  ServiceType = "server"
	ServiceTypeWorker  ServiceType = "worker"
	ServiceTypeMigrate ServiceType = "migrate"
)

// Load loads configuration from environment variables.
// In development, it loads from service-specific .env files:
//   - .env.server for the API server
//   - .env.worker for the background worker
//   - .env.migrate for the migration runner
//
// Falls back to .env if service-specific file doesn't exist.
func Load(serviceType ServiceType) (Config, error) {
	if getEnv("KINSHIP_ENV", "development") == "development" {
		envFile := fmt.Sprintf(".env.%s", serviceType)
		if err := godotenv.Load(envFile); err != nil {
			_ = godotenv.Load(".env")
		}
	}

	cfg := Config{
		Env:            getEnv("KINSHIP_ENV", "development"),
		Port:           getEnv("PORT", "8080"),
		AppURL:         getEnv("APP_URL", "http://localhost:3000"),
		AdminAPIKey:    getEnv("ADMIN_API_KEY", ""),
		TrustedProxies: getEnvList("TRUSTED_PROXIES"),
		DB: db.Config{
			DSN:      getEnv("DATABASE_URL", ""),
			MaxConns: getEnvInt32("DB_MAX_CONNS", 10),
			MinConns: getEnvInt32("DB_MIN_CONNS", 2),
		},
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "kinship-"+string(serviceType)),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		WorkOS: WorkOSConfig{
			APIKey:      getEnv("WORKOS_API_KEY", ""),
			ClientID:    getEnv("WORKOS_CLIENT_ID", ""),
			RedirectURI: getEnv("WORKOS_REDIRECT_URI", "http://localhost:8080/auth/callback"),
		},
		Discord: DiscordConfig{
			ClientID:     getEnv("DISCORD_CLIENT_ID", ""),
			ClientSecret: getEnv("DISCORD_CLIENT_SECRET", ""),
			RedirectURI:  getEnv("DISCORD_REDIRECT_URI", "http://localhost:8080/auth/discord/callback"),
		},
		SMTP: SMTPConfig{
			Host:      getEnv("SMTP_HOST", ""),
			Port:      getEnvInt("SMTP_PORT", 587),
			Username:  getEnv("SMTP_USER", ""),
			Password:  getEnv("SMTP_PASSWORD", ""),
			FromEmail: getEnv("SMTP_FROM_EMAIL", ""),
			FromName:  getEnv("SMTP_FROM_NAME", "Kinnected Family"),
		},
		Pinata: PinataConfig{
			JWT:     getEnv("PINATA_JWT", ""),
			Gateway: getEnv("PINATA_GATEWAY", ""),
			BaseURL: getEnv("PINATA_API_URL", "https://api.pinata.cloud"),
		},
		Chatbot: LLMConfig{
			Provider:      getEnv("CHATBOT_LLM_PROVIDER", "openai"),
			APIKey:        getEnv("CHATBOT_LLM_API_KEY", ""),
			BaseURL:       getEnv("CHATBOT_LLM_BASE_URL", ""),
			Model:         getEnv("CHATBOT_LLM_MODEL", "gpt-4o-mini"),
			MaxTokens:     getEnvInt("CHATBOT_LLM_MAX_TOKENS", 512),
			RatePerMinute: getEnvInt("CHATBOT_RATE_PER_MINUTE", 20),
		},
		ArangoDB: ArangoDBConfig{
			URL:      getEnv("ARANGO_URL", ""),
			Username: getEnv("ARANGO_USERNAME", ""),
			Password: getEnv("ARANGO_PASSWORD", ""),
			Database: getEnv("ARANGO_DATABASE", ""),
		},
		Mongo: MongoConfig{
			URI:         getEnv("MONGO_URI", ""),
			Database:    getEnv("MONGO_DATABASE", "kinship"),
			ImageBucket: getEnv("IMAGE_BUCKET", "images"),
			MaxImageMB:  getEnvInt64("IMAGE_MAX_MB", 10),

			DiscordStatsCollection: getEnv("DISCORD_STATS_COLLECTION", "user_stats"),
		},
		Queue: QueueConfig{
			RedisURL:  getEnv("REDIS_URL", "redis://localhost:6379/0"),
			Stream:    getEnv("REDIS_STREAM", "kinship_tasks"),
			Group:     getEnv("REDIS_CONSUMER_GROUP", "kinship_workers"),
			DLQStream: getEnv("REDIS_DLQ_STREAM", "kinship_tasks_dlq"),
			Consumer:  getEnv("REDIS_CONSUMER_NAME", string(serviceType)),
		},
		Session: SessionConfig{
			TTL:         getEnvDuration("SESSION_TTL", 30*24*time.Hour),
			CookieName:  getEnv("SESSION_COOKIE_NAME", "kinship_session"),
			NonceTTL:    getEnvDuration("WALLET_NONCE_TTL", 5*time.Minute),
			InviteTTL:   getEnvDuration("INVITATION_TTL", 7*24*time.Hour),
			PasswordMin: getEnvInt("PASSWORD_MIN_LENGTH", 8),
		},
	}

	if cfg.DB.DSN == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}

	if serviceType == ServiceTypeServer && cfg.Mongo.URI == "" {
		return Config{}, fmt.Errorf("MONGO_URI is required")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c WorkOSConfig) Enabled() bool {
	return c.APIKey != "" && c.ClientID != ""
}

func (c DiscordConfig) Enabled() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

func (c SMTPConfig) Enabled() bool {
	return c.Host != "" && c.FromEmail != ""
}

func (c PinataConfig) Enabled() bool {
	return c.JWT != ""
}

func (c LLMConfig) Enabled() bool {
	return c.APIKey != "" && (c.Provider == "openai" || c.Provider == "anthropic")
}

func (c ArangoDBConfig) Enabled() bool {
	return c.URL != "" && c.Username != "" && c.Database != ""
}

// MaxImageBytes is the upload ceiling for a single image.
func (c MongoConfig) MaxImageBytes() int64 {
	return c.MaxImageMB << 20
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvList splits a comma separated value, returning nil when unset.
func getEnvList(key string) []string {
	var values []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func getEnvInt32(key string, fallback int32) int32 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(i)
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
