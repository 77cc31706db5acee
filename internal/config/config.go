// Package config loads surveyflow settings from flags, environment
// (SURVEYFLOW_*), an optional surveyflow.yaml and a .env file.
package config

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	appName   = "surveyflow"
	envPrefix = "SURVEYFLOW"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config is the resolved application configuration.
type Config struct {
	LogLevel string `mapstructure:"log_level"`
	// Graph is a sample name, a directory of markdown questions, or a .yaml/.json survey file.
	Graph    string         `mapstructure:"graph"`
	Store    StoreConfig    `mapstructure:"store"`
	Security SecurityConfig `mapstructure:"security"`
	HTTP     HTTPConfig     `mapstructure:"http"`
}

type StoreConfig struct {
	Kind  string      `mapstructure:"kind"`
	Path  string      `mapstructure:"path"`
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
	Prefix   string        `mapstructure:"prefix"`
}

type SecurityConfig struct {
	// EncryptionKey is a 32 byte key, hex or base64 encoded. Empty disables encryption.
	EncryptionKey string   `mapstructure:"encryption_key"`
	FallbackKeys  []string `mapstructure:"fallback_keys"`
	PIIPatterns   []string `mapstructure:"pii_patterns"`
}

type HTTPConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
}

// New returns a viper instance wired with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("graph", "crop")
	v.SetDefault("store.kind", StoreFile)
	v.SetDefault("store.path", ".surveyflow/sessions")
	v.SetDefault("store.redis.addr", "localhost:6379")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.redis.ttl", time.Duration(0))
	v.SetDefault("store.redis.prefix", "surveyflow:session:")
	v.SetDefault("security.encryption_key", "")
	v.SetDefault("security.fallback_keys", []string{})
	v.SetDefault("security.pii_patterns", []string{})
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.metrics", true)
}

// Load reads .env, then the config file, then unmarshals v.
// An empty configFile searches for surveyflow.yaml in the working directory
// and in $HOME/.config/surveyflow; a missing file is not an error.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(appName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("$HOME/.config/%s", appName))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	switch c.Store.Kind {
	case StoreMemory, StoreFile, StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("unknown store kind %q", c.Store.Kind)
	}
	if _, _, err := c.Security.Keys(); err != nil {
		return err
	}
	return nil
}

// Keys decodes the encryption keys. A nil active key means encryption is off.
func (s SecurityConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if s.EncryptionKey == "" {
		return nil, nil, nil
	}
	active, err = decodeKey(s.EncryptionKey)
	if err != nil {
		return nil, nil, fmt.Errorf("encryption key: %w", err)
	}
	for i, k := range s.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("fallback key #%d: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	if key, err := hex.DecodeString(s); err == nil && len(key) == 32 {
		return key, nil
	}
	if key, err := base64.StdEncoding.DecodeString(s); err == nil && len(key) == 32 {
		return key, nil
	}
	return nil, errors.New("must be 32 bytes, hex or base64 encoded")
}
