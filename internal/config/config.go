package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config application configuration loaded from YAML + env overrides
type Config struct {
	App        AppConfig        `yaml:"app"`
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	CORS       CORSConfig       `yaml:"cors"`
	Moderation ModerationConfig `yaml:"moderation"`
}

// AppConfig general application settings
type AppConfig struct {
	Env string `yaml:"env"`
}

// ServerConfig HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig MySQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// DSN builds the MySQL connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// RedisConfig Redis connection settings
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// JWTConfig token settings for the admin API
type JWTConfig struct {
	Secret    string        `yaml:"secret"`
	ExpiresIn time.Duration `yaml:"expires_in"`
}

// UnmarshalYAML accepts expires_in as a duration string such as "24h"
func (j *JWTConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Secret    string `yaml:"secret"`
		ExpiresIn string `yaml:"expires_in"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Secret != "" {
		j.Secret = raw.Secret
	}
	if raw.ExpiresIn != "" {
		d, err := time.ParseDuration(raw.ExpiresIn)
		if err != nil {
			return fmt.Errorf("invalid jwt.expires_in %q: %w", raw.ExpiresIn, err)
		}
		j.ExpiresIn = d
	}
	return nil
}

// CORSConfig cross-origin settings
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// ModerationConfig scoring weights and decision thresholds.
// Defaults reproduce the calibrated production behavior; treat overrides
// as experiments to validate against labeled campaign data before rollout.
type ModerationConfig struct {
	BaseScore           float64 `yaml:"base_score"`
	LuxuryWeight        float64 `yaml:"luxury_weight"`
	InappropriateWeight float64 `yaml:"inappropriate_weight"`
	FraudWeight         float64 `yaml:"fraud_weight"`
	NeedWeight          float64 `yaml:"need_weight"`
	TrustWeight         float64 `yaml:"trust_weight"`
	ApproveThreshold    float64 `yaml:"approve_threshold"`
	ReviewThreshold     float64 `yaml:"review_threshold"`
}

// DefaultModeration returns the production scoring constants
func DefaultModeration() ModerationConfig {
	return ModerationConfig{
		BaseScore:           50,
		LuxuryWeight:        0.25,
		InappropriateWeight: 0.35,
		FraudWeight:         0.30,
		NeedWeight:          0.20,
		TrustWeight:         0.20,
		ApproveThreshold:    70,
		ReviewThreshold:     40,
	}
}

// Load reads configuration from a YAML file, then applies env overrides
func Load(path string) (*Config, error) {
	cfg := &Config{
		App:        AppConfig{Env: "local"},
		Server:     ServerConfig{Host: "0.0.0.0", Port: 8080},
		Database:   DatabaseConfig{Host: "127.0.0.1", Port: 3306, User: "root", Name: "givespark"},
		Redis:      RedisConfig{Host: "127.0.0.1", Port: 6379, PoolSize: 10},
		JWT:        JWTConfig{ExpiresIn: 24 * time.Hour},
		Moderation: DefaultModeration(),
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	applyEnvOverrides(cfg)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required (set jwt.secret or JWT_SECRET)")
	}

	return cfg, nil
}

// IsDevelopment reports whether the app runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "local" || c.App.Env == "dev" || c.App.Env == "development"
}

// applyEnvOverrides lets OS env vars win over file values
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.App.Env = v
	}
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Name = v
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		cfg.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("CORS_ALLOW_ORIGINS"); v != "" {
		cfg.CORS.AllowOrigins = v
	}
}
