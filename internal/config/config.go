// Package config loads the goldbooks.yaml configuration with environment
// variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the top-level goldbooks.yaml configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	DB     DBConfig     `yaml:"db"`
	OCR    OCRConfig    `yaml:"ocr"`
	Stock  StockConfig  `yaml:"stock"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

// OCRConfig points at the external receipt extraction service.
type OCRConfig struct {
	Endpoint       string `yaml:"endpoint"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	CacheSize      int    `yaml:"cache_size"`
}

// StockConfig points at the stock movement feed.
type StockConfig struct {
	FeedURL        string `yaml:"feed_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8899"},
		DB:     DBConfig{Path: "goldbooks.db"},
		OCR:    OCRConfig{TimeoutSeconds: 60, CacheSize: 256},
		Stock:  StockConfig{TimeoutSeconds: 10},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads the config file, layering it over the defaults and applying
// GOLDBOOKS_* environment overrides. A missing file is not an error; the
// defaults plus environment stand alone.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Addr, "GOLDBOOKS_ADDR")
	setString(&cfg.DB.Path, "GOLDBOOKS_DB")
	setString(&cfg.OCR.Endpoint, "GOLDBOOKS_OCR_ENDPOINT")
	setString(&cfg.OCR.APIKey, "GOLDBOOKS_OCR_API_KEY")
	setInt(&cfg.OCR.TimeoutSeconds, "GOLDBOOKS_OCR_TIMEOUT_SECONDS")
	setInt(&cfg.OCR.CacheSize, "GOLDBOOKS_OCR_CACHE_SIZE")
	setString(&cfg.Stock.FeedURL, "GOLDBOOKS_STOCK_FEED_URL")
	setInt(&cfg.Stock.TimeoutSeconds, "GOLDBOOKS_STOCK_TIMEOUT_SECONDS")
	setString(&cfg.Log.Level, "GOLDBOOKS_LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
