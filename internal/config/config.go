package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig          `toml:"app"`
	Store        StoreConfig        `toml:"store"`
	Remote       RemoteConfig       `toml:"remote"`
	Logger       LoggerConfig       `toml:"logger"`
	Auth         AuthConfig         `toml:"auth"`
	Sync         SyncConfig         `toml:"sync"`
	Integrations IntegrationsConfig `toml:"integrations"`
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string `toml:"name"`
	Env                   string `toml:"env"`
	Host                  string `toml:"host"`
	Port                  string `toml:"port"`
	Version               string `toml:"version"`
	RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
}

// StoreConfig selects the primary collection store backend.
// Tagged union: Type determines which other fields are relevant.
type StoreConfig struct {
	Type string `toml:"type"` // "memory", "file", "sqlite", "postgres" or "redis"

	// File-specific (Type == "file")
	Dir string `toml:"dir,omitempty"`

	// SQLite-specific (Type == "sqlite")
	Path string `toml:"path,omitempty"`

	// Postgres-specific (Type == "postgres")
	DSN      string `toml:"dsn,omitempty"`
	MaxConns int32  `toml:"max_conns,omitempty"`
	MinConns int32  `toml:"min_conns,omitempty"`

	// Redis-specific (Type == "redis")
	Addr     string `toml:"addr,omitempty"`
	Password string `toml:"password,omitempty"`
	DB       int    `toml:"db,omitempty"`
}

// RemoteConfig selects the optional cloud-sync mirror backend.
// Empty Type disables sync entirely.
type RemoteConfig struct {
	Type string `toml:"type"` // "", "redis" or "s3"

	// Redis-specific
	Addr     string `toml:"addr,omitempty"`
	Password string `toml:"password,omitempty"`
	DB       int    `toml:"db,omitempty"`

	// S3-specific
	Bucket          string `toml:"bucket,omitempty"`
	Prefix          string `toml:"prefix,omitempty"`
	Region          string `toml:"region,omitempty"`
	Endpoint        string `toml:"endpoint,omitempty"`
	AccessKeyID     string `toml:"access_key_id,omitempty"`
	SecretAccessKey string `toml:"secret_access_key,omitempty"`
	PathStyle       bool   `toml:"path_style,omitempty"`
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string `toml:"level"`
}

// AuthConfig defines session and access-control parameters.
type AuthConfig struct {
	JWTSecret             string `toml:"jwt_secret"`
	AccessTokenTTLMinutes int    `toml:"access_token_ttl_minutes"`
	BcryptCost            int    `toml:"bcrypt_cost"`
	FailOpen              bool   `toml:"fail_open"`
}

// SyncConfig controls the cloud-sync worker.
type SyncConfig struct {
	DebounceSeconds int `toml:"debounce_seconds"`
}

// IntegrationsConfig carries external-service credentials. Every value is
// optional; an absent value degrades the feature, it never blocks startup.
type IntegrationsConfig struct {
	IdentityClientID string `toml:"identity_client_id"`
	SheetsAPIKey     string `toml:"sheets_api_key"`
	GenAIAPIKey      string `toml:"genai_api_key"`
	CloudProjectID   string `toml:"cloud_project_id"`
	CloudAPIKey      string `toml:"cloud_api_key"`
}

// Load reads configuration from an optional TOML file (ISPOPS_CONFIG_FILE)
// and environment variables. Environment values win over file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("ISPOPS_CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		App: AppConfig{
			Name:                  "isp-ops-service",
			Env:                   "development",
			Host:                  "0.0.0.0",
			Port:                  "8080",
			Version:               "dev",
			RequestTimeoutSeconds: 30,
		},
		Store:  StoreConfig{Type: "file", Dir: "./data"},
		Logger: LoggerConfig{Level: "info"},
		Auth: AuthConfig{
			JWTSecret:             "dev-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            12,
			FailOpen:              true,
		},
		Sync: SyncConfig{DebounceSeconds: 5},
	}
}

func applyEnv(cfg *Config) {
	setEnv(&cfg.App.Name, "APP_NAME")
	setEnv(&cfg.App.Env, "APP_ENV")
	setEnv(&cfg.App.Host, "APP_HOST")
	setEnv(&cfg.App.Port, "APP_PORT")
	setEnv(&cfg.App.Version, "APP_VERSION")
	setEnvInt(&cfg.App.RequestTimeoutSeconds, "HTTP_REQUEST_TIMEOUT_SECONDS")

	setEnv(&cfg.Store.Type, "STORE_TYPE")
	setEnv(&cfg.Store.Dir, "STORE_DIR")
	setEnv(&cfg.Store.Path, "STORE_SQLITE_PATH")
	setEnv(&cfg.Store.DSN, "STORE_POSTGRES_DSN")
	setEnv(&cfg.Store.Addr, "STORE_REDIS_ADDR")
	setEnv(&cfg.Store.Password, "STORE_REDIS_PASSWORD")
	setEnvInt32(&cfg.Store.MaxConns, "STORE_POSTGRES_MAX_CONNS")
	setEnvInt32(&cfg.Store.MinConns, "STORE_POSTGRES_MIN_CONNS")

	setEnv(&cfg.Remote.Type, "REMOTE_TYPE")
	setEnv(&cfg.Remote.Addr, "REMOTE_REDIS_ADDR")
	setEnv(&cfg.Remote.Password, "REMOTE_REDIS_PASSWORD")
	setEnv(&cfg.Remote.Bucket, "REMOTE_S3_BUCKET")
	setEnv(&cfg.Remote.Prefix, "REMOTE_S3_PREFIX")
	setEnv(&cfg.Remote.Region, "REMOTE_S3_REGION")
	setEnv(&cfg.Remote.Endpoint, "REMOTE_S3_ENDPOINT")
	setEnv(&cfg.Remote.AccessKeyID, "REMOTE_S3_ACCESS_KEY_ID")
	setEnv(&cfg.Remote.SecretAccessKey, "REMOTE_S3_SECRET_ACCESS_KEY")
	setEnvBool(&cfg.Remote.PathStyle, "REMOTE_S3_PATH_STYLE")

	setEnv(&cfg.Logger.Level, "LOG_LEVEL")

	setEnv(&cfg.Auth.JWTSecret, "AUTH_JWT_SECRET")
	setEnvInt(&cfg.Auth.AccessTokenTTLMinutes, "AUTH_ACCESS_TOKEN_TTL_MINUTES")
	setEnvInt(&cfg.Auth.BcryptCost, "AUTH_BCRYPT_COST")
	setEnvBool(&cfg.Auth.FailOpen, "ACCESS_FAIL_OPEN")

	setEnvInt(&cfg.Sync.DebounceSeconds, "SYNC_DEBOUNCE_SECONDS")

	setEnv(&cfg.Integrations.IdentityClientID, "INTEGRATION_IDENTITY_CLIENT_ID")
	setEnv(&cfg.Integrations.SheetsAPIKey, "INTEGRATION_SHEETS_API_KEY")
	setEnv(&cfg.Integrations.GenAIAPIKey, "INTEGRATION_GENAI_API_KEY")
	setEnv(&cfg.Integrations.CloudProjectID, "INTEGRATION_CLOUD_PROJECT_ID")
	setEnv(&cfg.Integrations.CloudAPIKey, "INTEGRATION_CLOUD_API_KEY")
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Debounce returns the sync debounce interval.
func (s SyncConfig) Debounce() time.Duration {
	if s.DebounceSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(s.DebounceSeconds) * time.Second
}

// Enabled reports whether a remote mirror is configured.
func (r RemoteConfig) Enabled() bool {
	return r.Type != ""
}

func setEnv(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

func setEnvInt(dst *int, key string) {
	val := os.Getenv(key)
	if val == "" {
		return
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return
	}
	*dst = parsed
}

func setEnvInt32(dst *int32, key string) {
	val := os.Getenv(key)
	if val == "" {
		return
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return
	}
	*dst = int32(parsed)
}

func setEnvBool(dst *bool, key string) {
	val := os.Getenv(key)
	if val == "" {
		return
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return
	}
	*dst = parsed
}
