// Package config loads the service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Share    ShareConfig    `yaml:"share"`
	Notes    NotesConfig    `yaml:"notes"`
}

type ServerConfig struct {
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	ExternalURL    string        `yaml:"external_url"`
	RequestTimeout Duration `yaml:"request_timeout"`
	MaxDataSize    int64         `yaml:"max_data_size"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	From     string `yaml:"from"`
}

type ShareConfig struct {
	DefaultExpire Duration `yaml:"default_expire"`
	MaxExpire     Duration `yaml:"max_expire"`
	SweepInterval Duration `yaml:"sweep_interval"`
	ConsumeGrace  Duration `yaml:"consume_grace"`
}

type NotesConfig struct {
	CleanupInterval Duration `yaml:"cleanup_interval"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			ExternalURL:    "http://localhost:8080",
			RequestTimeout: Duration(60 * time.Second),
			MaxDataSize:    1024 * 1024,
		},
		Database: DatabaseConfig{
			URL: "postgres://localhost:5432/sealnote?sslmode=disable",
		},
		SMTP: SMTPConfig{
			Host: "localhost",
			Port: 587,
			From: "noreply@localhost",
		},
		Share: ShareConfig{
			DefaultExpire: Duration(time.Hour),
			MaxExpire:     Duration(7 * 24 * time.Hour),
			SweepInterval: Duration(10 * time.Minute),
			ConsumeGrace:  Duration(time.Second),
		},
		Notes: NotesConfig{
			CleanupInterval: Duration(time.Minute),
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.loadFromFile(path); err != nil {
			return nil, err
		}
	}

	cfg.loadFromEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Server.Port = port
		}
	}
	if v := os.Getenv("EXTERNAL_URL"); v != "" {
		c.Server.ExternalURL = v
	}

	if v := os.Getenv("POSTGRES_URL"); v != "" {
		c.Database.URL = v
	}

	if v := os.Getenv("SMTP_HOST"); v != "" {
		c.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.SMTP.Port = port
		}
	}
	if v := os.Getenv("SMTP_USERNAME"); v != "" {
		c.SMTP.Username = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		c.SMTP.Password = v
	}
	if v := os.Getenv("SMTP_FROM"); v != "" {
		c.SMTP.From = v
	}

	if v := os.Getenv("SHARE_DEFAULT_EXPIRE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Share.DefaultExpire = Duration(d)
		}
	}
	if v := os.Getenv("SHARE_MAX_EXPIRE"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Share.MaxExpire = Duration(d)
		}
	}
}

func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}

	if _, err := url.ParseRequestURI(c.Server.ExternalURL); err != nil {
		return fmt.Errorf("invalid external_url: %w", err)
	}

	if c.Database.URL == "" {
		return fmt.Errorf("database url is required")
	}

	if c.Share.DefaultExpire <= 0 {
		return fmt.Errorf("default_expire must be positive")
	}

	if c.Share.MaxExpire < c.Share.DefaultExpire {
		return fmt.Errorf("max_expire must be >= default_expire")
	}

	if c.Server.MaxDataSize < 1 {
		return fmt.Errorf("max_data_size must be positive")
	}

	return nil
}

// WebExternalURL returns the parsed public base URL of the service
func (c *Config) WebExternalURL() (*url.URL, error) {
	return url.Parse(c.Server.ExternalURL)
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
