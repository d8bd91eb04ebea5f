package config

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	defaultBaseURL           = "https://api.binance.com"
	defaultRequestTimeoutSec = 10
	defaultLogLevel          = "info"
	defaultSQLitePath        = "data/bnrest.db"
	defaultRedisPrefix       = "bnrest"

	// Binance rejects recvWindow above one minute.
	maxRecvWindow = 60000
)

// Config 应用配置，凭证不从这里读取
type Config struct {
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`

	Binance BinanceConfig `toml:"binance"`

	Journal JournalConfig `toml:"journal"`
}

// BinanceConfig REST 客户端配置
type BinanceConfig struct {
	BaseURL            string            `toml:"base_url"`
	ProxyURL           string            `toml:"proxy_url"`
	InsecureSkipVerify bool              `toml:"insecure_skip_verify"`
	RecvWindow         int64             `toml:"recv_window"`
	RequestTimeoutSec  int               `toml:"request_timeout_sec"`
	ProxyHeaders       map[string]string `toml:"proxy_headers"`
}

// RequestTimeout is the per-command context timeout.
func (b BinanceConfig) RequestTimeout() time.Duration {
	return time.Duration(b.RequestTimeoutSec) * time.Second
}

// ProxyHeaderSet returns proxy_headers as canonicalized HTTP headers.
func (b BinanceConfig) ProxyHeaderSet() http.Header {
	if len(b.ProxyHeaders) == 0 {
		return nil
	}
	h := make(http.Header, len(b.ProxyHeaders))
	for k, v := range b.ProxyHeaders {
		h.Set(k, v)
	}
	return h
}

// JournalConfig 调用日志存储配置
type JournalConfig struct {
	SQLite struct {
		Enabled bool   `toml:"enabled"`
		Path    string `toml:"path"`
	} `toml:"sqlite"`

	Postgres struct {
		Enabled bool   `toml:"enabled"`
		DSN     string `toml:"dsn"`
	} `toml:"postgres"`

	Redis struct {
		Enabled    bool   `toml:"enabled"`
		Addr       string `toml:"addr"`
		Password   string `toml:"password"`
		DB         int    `toml:"db"`
		Prefix     string `toml:"prefix"`
		Stream     string `toml:"stream"`
		Channel    string `toml:"channel"`
		TTLSeconds int    `toml:"ttl_seconds"`
	} `toml:"redis"`
}

// Load reads path, fills defaults and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	var cfg Config
	applyDefaults(&cfg)
	return &cfg
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = defaultLogLevel
	}
	cfg.Binance.BaseURL = strings.TrimSpace(cfg.Binance.BaseURL)
	if cfg.Binance.BaseURL == "" {
		cfg.Binance.BaseURL = defaultBaseURL
	}
	cfg.Binance.ProxyURL = strings.TrimSpace(cfg.Binance.ProxyURL)
	if cfg.Binance.RequestTimeoutSec <= 0 {
		cfg.Binance.RequestTimeoutSec = defaultRequestTimeoutSec
	}
	if strings.TrimSpace(cfg.Journal.SQLite.Path) == "" {
		cfg.Journal.SQLite.Path = defaultSQLitePath
	}
	if strings.TrimSpace(cfg.Journal.Redis.Prefix) == "" {
		cfg.Journal.Redis.Prefix = defaultRedisPrefix
	}
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.Binance.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("binance.base_url %q: want http(s)://host", cfg.Binance.BaseURL)
	}

	if cfg.Binance.ProxyURL != "" {
		p, err := url.Parse(cfg.Binance.ProxyURL)
		if err != nil {
			return fmt.Errorf("binance.proxy_url: %w", err)
		}
		switch p.Scheme {
		case "http", "https", "socks5", "socks5h":
		default:
			return fmt.Errorf("binance.proxy_url scheme %q not supported", p.Scheme)
		}
		if p.Host == "" {
			return errors.New("binance.proxy_url has no host")
		}
	}

	if cfg.Binance.RecvWindow < 0 || cfg.Binance.RecvWindow > maxRecvWindow {
		return fmt.Errorf("binance.recv_window must be between 0 and %d", maxRecvWindow)
	}

	if cfg.Journal.Postgres.Enabled && strings.TrimSpace(cfg.Journal.Postgres.DSN) == "" {
		return errors.New("journal.postgres.dsn empty but enabled")
	}
	if cfg.Journal.Redis.Enabled && strings.TrimSpace(cfg.Journal.Redis.Addr) == "" {
		return errors.New("journal.redis.addr empty but enabled")
	}
	if cfg.Journal.Redis.TTLSeconds < 0 {
		return errors.New("journal.redis.ttl_seconds is negative")
	}
	return nil
}
