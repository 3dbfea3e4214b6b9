package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          string        `yaml:"port" validate:"required,numeric"`
	Backend       string        `yaml:"backend" validate:"required,oneof=postgres memory"`
	DatabaseURL   string        `yaml:"database_url" validate:"required_if=Backend postgres"`
	RedisAddr     string        `yaml:"redis_addr"`
	SeedPath      string        `yaml:"seed_path"`
	SignalWindow  time.Duration `yaml:"signal_window" validate:"gt=0"`
	TrafficWindow time.Duration `yaml:"traffic_window" validate:"gt=0"`
	SolverWorkers int           `yaml:"solver_workers" validate:"gte=1"`
	LogLevel      string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
}

func Defaults() Config {
	return Config{
		Port:          "8080",
		Backend:       "postgres",
		SeedPath:      "data/seeds/network.json",
		SignalWindow:  5 * time.Minute,
		TrafficWindow: 24 * time.Hour,
		SolverWorkers: runtime.GOMAXPROCS(0),
		LogLevel:      "info",
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load builds the configuration from defaults, an optional YAML file named
// by CONFIG_FILE, and environment overrides (a .env file is loaded first
// when present). The result is validated.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Defaults()

	if path := Get("CONFIG_FILE", ""); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

var validate = validator.New()

func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	cfg.Port = Get("PORT", cfg.Port)
	cfg.Backend = Get("BACKEND", cfg.Backend)
	cfg.DatabaseURL = Get("DATABASE_URL", cfg.DatabaseURL)
	cfg.RedisAddr = Get("REDIS_ADDR", cfg.RedisAddr)
	cfg.SeedPath = Get("SEED_PATH", cfg.SeedPath)
	cfg.LogLevel = Get("LOG_LEVEL", cfg.LogLevel)

	var err error
	if cfg.SignalWindow, err = durationEnv("SIGNAL_WINDOW", cfg.SignalWindow); err != nil {
		return err
	}
	if cfg.TrafficWindow, err = durationEnv("TRAFFIC_WINDOW", cfg.TrafficWindow); err != nil {
		return err
	}

	if v := Get("SOLVER_WORKERS", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("SOLVER_WORKERS=%q: %w", v, err)
		}
		cfg.SolverWorkers = n
	}

	return nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := Get(key, "")
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q: %w", key, v, err)
	}
	return d, nil
}
