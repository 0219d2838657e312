package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	OrdersAPI OrdersAPIConfig
	Tags      TagsConfig
	Database  DatabaseConfig
	Telegram  TelegramConfig
	CORS      CORSConfig
	Draft     DraftConfig
}

type ServerConfig struct {
	Port            int
	RequestTimeout  time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level string
}

type OrdersAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

const (
	TagsSourceHTTP  = "http"
	TagsSourceFile  = "file"
	TagsSourceMySQL = "mysql"
)

type TagsConfig struct {
	Source  string
	URL     string
	File    string
	Timeout time.Duration
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type TelegramConfig struct {
	BotToken    string
	InitDataTTL time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

type DraftConfig struct {
	TTL          time.Duration
	ReapInterval time.Duration
}

// Load reads the configuration from the environment. When CONFIG_FILE is set
// the file is read first and environment variables override it.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_REQUEST_TIMEOUT", "30s")
	v.SetDefault("SERVER_READ_TIMEOUT", "10s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "35s")
	v.SetDefault("SERVER_IDLE_TIMEOUT", "30s")
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ORDERS_API_BASE_URL", "http://localhost:8000")
	v.SetDefault("ORDERS_API_TIMEOUT", "10s")
	v.SetDefault("TAGS_SOURCE", TagsSourceHTTP)
	v.SetDefault("TAGS_URL", "")
	v.SetDefault("TAGS_FILE", "")
	v.SetDefault("TAGS_TIMEOUT", "5s")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "tutorlink")
	v.SetDefault("DB_PASSWORD", "secret")
	v.SetDefault("DB_NAME", "tutorlink")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("TELEGRAM_BOT_TOKEN", "")
	v.SetDefault("TELEGRAM_INIT_DATA_TTL", "24h")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("DRAFT_TTL", "1h")
	v.SetDefault("DRAFT_REAP_INTERVAL", "1m")

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	durations := map[string]time.Duration{}
	for _, key := range []string{
		"SERVER_REQUEST_TIMEOUT",
		"SERVER_READ_TIMEOUT",
		"SERVER_WRITE_TIMEOUT",
		"SERVER_IDLE_TIMEOUT",
		"SERVER_SHUTDOWN_TIMEOUT",
		"ORDERS_API_TIMEOUT",
		"TAGS_TIMEOUT",
		"DB_CONN_MAX_LIFETIME",
		"TELEGRAM_INIT_DATA_TTL",
		"DRAFT_TTL",
		"DRAFT_REAP_INTERVAL",
	} {
		d, err := time.ParseDuration(v.GetString(key))
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", key, err)
		}
		durations[key] = d
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            v.GetInt("SERVER_PORT"),
			RequestTimeout:  durations["SERVER_REQUEST_TIMEOUT"],
			ReadTimeout:     durations["SERVER_READ_TIMEOUT"],
			WriteTimeout:    durations["SERVER_WRITE_TIMEOUT"],
			IdleTimeout:     durations["SERVER_IDLE_TIMEOUT"],
			ShutdownTimeout: durations["SERVER_SHUTDOWN_TIMEOUT"],
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		OrdersAPI: OrdersAPIConfig{
			BaseURL: v.GetString("ORDERS_API_BASE_URL"),
			Timeout: durations["ORDERS_API_TIMEOUT"],
		},
		Tags: TagsConfig{
			Source:  strings.ToLower(v.GetString("TAGS_SOURCE")),
			URL:     v.GetString("TAGS_URL"),
			File:    v.GetString("TAGS_FILE"),
			Timeout: durations["TAGS_TIMEOUT"],
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durations["DB_CONN_MAX_LIFETIME"],
		},
		Telegram: TelegramConfig{
			BotToken:    v.GetString("TELEGRAM_BOT_TOKEN"),
			InitDataTTL: durations["TELEGRAM_INIT_DATA_TTL"],
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Draft: DraftConfig{
			TTL:          durations["DRAFT_TTL"],
			ReapInterval: durations["DRAFT_REAP_INTERVAL"],
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %d", c.Server.Port)
	}
	if c.OrdersAPI.BaseURL == "" {
		return fmt.Errorf("ORDERS_API_BASE_URL is required")
	}
	if c.OrdersAPI.Timeout <= 0 {
		return fmt.Errorf("ORDERS_API_TIMEOUT must be positive")
	}
	// A submit waits for the orders service inside the request deadline, and
	// its response must be written before the server write deadline.
	if c.Server.RequestTimeout <= c.OrdersAPI.Timeout {
		return fmt.Errorf("SERVER_REQUEST_TIMEOUT must exceed ORDERS_API_TIMEOUT")
	}
	if c.Server.WriteTimeout > 0 && c.Server.WriteTimeout <= c.Server.RequestTimeout {
		return fmt.Errorf("SERVER_WRITE_TIMEOUT must exceed SERVER_REQUEST_TIMEOUT")
	}
	switch c.Tags.Source {
	case TagsSourceHTTP, TagsSourceFile, TagsSourceMySQL:
	default:
		return fmt.Errorf("unknown TAGS_SOURCE %q", c.Tags.Source)
	}
	if c.Draft.TTL <= 0 || c.Draft.ReapInterval <= 0 {
		return fmt.Errorf("DRAFT_TTL and DRAFT_REAP_INTERVAL must be positive")
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
