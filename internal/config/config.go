package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig      `toml:"app"`
	Auth     AuthConfig     `toml:"auth"`
	LLM      LLMConfig      `toml:"llm"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	RabbitMQ RabbitMQConfig `toml:"rabbitmq"`
	Storage  StorageConfig  `toml:"storage"`
	Log      LogConfig      `toml:"log"`
}

type AppConfig struct {
	Name    string `toml:"name"`
	Env     string `toml:"env"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	GinMode string `toml:"gin_mode"`
}

type AuthConfig struct {
	JWTSecret       string `toml:"jwt_secret"`
	JWTExpireMinute int    `toml:"jwt_expire_minute"`
}

type LLMConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	// Variant selects the analysis prompt: "general" lets the model classify
	// the document type, "rental" assumes a residential lease with the tenant
	// as the client.
	Variant          string `toml:"variant"`
	MaxDocumentChars int    `toml:"max_document_chars"`
}

type DatabaseConfig struct {
	// Driver is "sqlite" (default, single local file) or "mysql".
	Driver     string      `toml:"driver"`
	SQLitePath string      `toml:"sqlite_path"`
	MySQL      MySQLConfig `toml:"mysql"`
}

type MySQLConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DB       string `toml:"db"`
	Params   string `toml:"params"`
}

type RedisConfig struct {
	// Addr empty disables the history cache.
	Addr                   string `toml:"addr"`
	Password               string `toml:"password"`
	DB                     int    `toml:"db"`
	HistoryTTLSeconds      int    `toml:"history_ttl_seconds"`
	HistoryDirtyTTLSeconds int    `toml:"history_dirty_ttl_seconds"`
}

type RabbitMQConfig struct {
	// URL empty disables audit event publishing.
	URL        string `toml:"url"`
	AuditQueue string `toml:"audit_queue"`
}

type StorageConfig struct {
	// Endpoint empty disables archiving of uploaded originals.
	Endpoint  string `toml:"endpoint"`
	Region    string `toml:"region"`
	Bucket    string `toml:"bucket"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	UseSSL    bool   `toml:"use_ssl"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	configPath := getEnv("CONFIG_FILE", "configs/config.toml")
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("decode config file failed: %w", err)
		}
	}

	overrideByEnv(cfg)
	return cfg, nil
}

func (c *Config) HTTPAddr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

func (c *Config) MySQLDSN() string {
	m := c.Database.MySQL
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		m.User, m.Password, m.Host, m.Port, m.DB, m.Params)
}

func defaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Name:    "legalai-review",
			Env:     "dev",
			Host:    "0.0.0.0",
			Port:    8080,
			GinMode: "debug",
		},
		Auth: AuthConfig{
			JWTSecret:       "change-me-in-production",
			JWTExpireMinute: 120,
		},
		LLM: LLMConfig{
			BaseURL:          "https://api.openai.com/v1",
			APIKey:           "",
			Model:            "gpt-4o",
			Variant:          "general",
			MaxDocumentChars: 15000,
		},
		Database: DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: "legal_app.db",
			MySQL: MySQLConfig{
				Host:   "127.0.0.1",
				Port:   3306,
				User:   "root",
				DB:     "legalai_review",
				Params: "parseTime=true&loc=Local&charset=utf8mb4",
			},
		},
		Redis: RedisConfig{
			HistoryTTLSeconds:      60,
			HistoryDirtyTTLSeconds: 5,
		},
		RabbitMQ: RabbitMQConfig{
			AuditQueue: "analysis.audit",
		},
		Storage: StorageConfig{
			Region: "us-east-1",
			Bucket: "contracts",
		},
		Log: LogConfig{
			Level:  "info",
			Pretty: true,
		},
	}
}

func overrideByEnv(cfg *Config) {
	cfg.App.Name = getEnv("APP_NAME", cfg.App.Name)
	cfg.App.Env = getEnv("APP_ENV", cfg.App.Env)
	cfg.App.Host = getEnv("APP_HOST", cfg.App.Host)
	cfg.App.Port = getEnvAsInt("APP_PORT", cfg.App.Port)
	cfg.App.GinMode = getEnv("GIN_MODE", cfg.App.GinMode)

	cfg.Auth.JWTSecret = getEnv("JWT_SECRET", cfg.Auth.JWTSecret)
	cfg.Auth.JWTExpireMinute = getEnvAsInt("JWT_EXPIRE_MINUTE", cfg.Auth.JWTExpireMinute)

	cfg.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.APIKey = getEnv("OPENAI_API_KEY", getEnv("LLM_API_KEY", cfg.LLM.APIKey))
	cfg.LLM.Model = getEnv("LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.Variant = getEnv("LLM_VARIANT", cfg.LLM.Variant)
	cfg.LLM.MaxDocumentChars = getEnvAsInt("LLM_MAX_DOCUMENT_CHARS", cfg.LLM.MaxDocumentChars)

	cfg.Database.Driver = getEnv("DB_DRIVER", cfg.Database.Driver)
	cfg.Database.SQLitePath = getEnv("DB_SQLITE_PATH", cfg.Database.SQLitePath)
	cfg.Database.MySQL.Host = getEnv("MYSQL_HOST", cfg.Database.MySQL.Host)
	cfg.Database.MySQL.Port = getEnvAsInt("MYSQL_PORT", cfg.Database.MySQL.Port)
	cfg.Database.MySQL.User = getEnv("MYSQL_USER", cfg.Database.MySQL.User)
	cfg.Database.MySQL.Password = getEnv("MYSQL_PASSWORD", cfg.Database.MySQL.Password)
	cfg.Database.MySQL.DB = getEnv("MYSQL_DB", cfg.Database.MySQL.DB)
	cfg.Database.MySQL.Params = getEnv("MYSQL_PARAMS", cfg.Database.MySQL.Params)

	cfg.Redis.Addr = getEnv("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = getEnvAsInt("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.HistoryTTLSeconds = getEnvAsInt("REDIS_HISTORY_TTL_SECONDS", cfg.Redis.HistoryTTLSeconds)
	cfg.Redis.HistoryDirtyTTLSeconds = getEnvAsInt("REDIS_HISTORY_DIRTY_TTL_SECONDS", cfg.Redis.HistoryDirtyTTLSeconds)

	cfg.RabbitMQ.URL = getEnv("RABBITMQ_URL", cfg.RabbitMQ.URL)
	cfg.RabbitMQ.AuditQueue = getEnv("RABBITMQ_AUDIT_QUEUE", cfg.RabbitMQ.AuditQueue)

	cfg.Storage.Endpoint = getEnv("STORAGE_ENDPOINT", cfg.Storage.Endpoint)
	cfg.Storage.Region = getEnv("STORAGE_REGION", cfg.Storage.Region)
	cfg.Storage.Bucket = getEnv("STORAGE_BUCKET", cfg.Storage.Bucket)
	cfg.Storage.AccessKey = getEnv("STORAGE_ACCESS_KEY", cfg.Storage.AccessKey)
	cfg.Storage.SecretKey = getEnv("STORAGE_SECRET_KEY", cfg.Storage.SecretKey)

	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return parsed
}
