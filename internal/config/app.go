package config

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var StoreDrivers = []string{"memory", "sqlite", "postgres", "redis"}

type App struct {
	Addr        string        `yaml:"addr"`
	Development bool          `yaml:"development"`
	StoreDriver string        `yaml:"store_driver"`
	SQLitePath  string        `yaml:"sqlite_path"`
	RedisAddr   string        `yaml:"redis_addr"`
	RedisTTL    time.Duration `yaml:"redis_ttl"`
	PrinterURL  string        `yaml:"printer_url"`
	FeedSize    int           `yaml:"feed_size"`
	LogFile     string        `yaml:"log_file"`
}

func defaultApp() App {
	return App{
		Addr:        ":8080",
		StoreDriver: "memory",
		SQLitePath:  "data/receiptsweeper.db",
		RedisAddr:   "localhost:6379",
		RedisTTL:    7 * 24 * time.Hour,
		FeedSize:    50,
	}
}

// Load reads the YAML file at path (if any) over the defaults, then applies
// environment overrides. Environment always wins.
func Load(path string) (*App, error) {
	cfg := defaultApp()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("unable to parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if !slices.Contains(StoreDrivers, cfg.StoreDriver) {
		return nil, fmt.Errorf("unknown store driver %q, want one of %v", cfg.StoreDriver, StoreDrivers)
	}
	if cfg.FeedSize <= 0 {
		return nil, fmt.Errorf("feed size must be positive, got %d", cfg.FeedSize)
	}

	return &cfg, nil
}

func (c *App) applyEnv() error {
	if v, ok := os.LookupEnv("APP_ADDR"); ok {
		c.Addr = v
	} else if v, ok := os.LookupEnv("APP_PORT"); ok {
		c.Addr = ":" + v
	}
	if v, ok := os.LookupEnv("DEVELOPMENT"); ok {
		c.Development = v != "0"
	}
	if v, ok := os.LookupEnv("STORE_DRIVER"); ok {
		c.StoreDriver = v
	}
	if v, ok := os.LookupEnv("SQLITE_PATH"); ok {
		c.SQLitePath = v
	}
	if v, ok := os.LookupEnv("REDIS_ADDR"); ok {
		c.RedisAddr = v
	}
	if v, ok := os.LookupEnv("REDIS_TTL"); ok {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("unable to parse REDIS_TTL: %w", err)
		}
		c.RedisTTL = ttl
	}
	if v, ok := os.LookupEnv("PRINTER_URL"); ok {
		c.PrinterURL = v
	}
	if v, ok := os.LookupEnv("FEED_SIZE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("unable to convert FEED_SIZE to int: %w", err)
		}
		c.FeedSize = n
	}
	if v, ok := os.LookupEnv("LOG_FILE"); ok {
		c.LogFile = v
	}
	return nil
}

func (c App) Fields() logrus.Fields {
	return logrus.Fields{
		"addr":         c.Addr,
		"development":  c.Development,
		"store_driver": c.StoreDriver,
		"sqlite_path":  c.SQLitePath,
		"redis_addr":   c.RedisAddr,
		"redis_ttl":    c.RedisTTL.String(),
		"printer_url":  c.PrinterURL,
		"feed_size":    c.FeedSize,
		"log_file":     c.LogFile,
	}
}
