package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const defaultPath = "config.yaml"

type Config struct {
	Port        string   `yaml:"port"`
	SecretKey   string   `yaml:"secretKey"`
	Debug       bool     `yaml:"debug"`
	LogLevel    string   `yaml:"logLevel"` // debug|info|warn|error
	CORSOrigins []string `yaml:"corsOrigins"`
	Rooms       []string `yaml:"rooms"`
}

// Load reads the yaml file named by CONFIG_PATH (default ./config.yaml),
// then applies environment overrides and defaults. A missing file is fine;
// the service runs on environment variables alone.
func Load() (*Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultPath
	}

	var cfg Config
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return nil, err
	}

	cfg.applyEnv()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		c.SecretKey = v
	}
	if v := os.Getenv("DEBUG"); v != "" {
		v = strings.ToLower(v)
		c.Debug = v == "true" || v == "1" || v == "t"
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		c.CORSOrigins = splitList(v)
	}
}

func (c *Config) validate() error {
	if c.Port == "" {
		c.Port = "8080"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Debug {
		c.LogLevel = "debug"
	}
	if len(c.CORSOrigins) == 0 {
		c.CORSOrigins = []string{"*"}
	}
	if len(c.Rooms) == 0 {
		c.Rooms = []string{"General", "Random", "Tech", "Games"}
	}
	for _, room := range c.Rooms {
		if strings.TrimSpace(room) == "" {
			return errors.New("rooms must not contain empty names")
		}
	}
	if c.SecretKey == "" {
		key, err := randomKey()
		if err != nil {
			return fmt.Errorf("generate secret key: %w", err)
		}
		// identity cookies do not survive a restart without a configured key
		c.SecretKey = key
	}
	return nil
}

func randomKey() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
