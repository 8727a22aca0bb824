// Package config loads the service configuration and owns the mongo
// connection setup.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Cache backend names accepted in configuration.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config is everything main needs to wire the process.
type Config struct {
	ServerPort    string
	MongoURI      string
	MongoDatabase string
	RedisAddress  string
	CacheBackend  string
	CacheTTL      time.Duration
}

// Load reads config.yaml from the working directory, with env vars
// (SERVER_PORT, MONGO_URI, ...) overriding file values. A missing file is
// fine; defaults cover local development.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetDefault("server.port", "8080")
	v.SetDefault("mongo.uri", "mongodb://127.0.0.1:27017")
	v.SetDefault("mongo.database", "crm")
	v.SetDefault("redis.address", "127.0.0.1:6379")
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.ttl", "5m")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{
		ServerPort:    v.GetString("server.port"),
		MongoURI:      v.GetString("mongo.uri"),
		MongoDatabase: v.GetString("mongo.database"),
		RedisAddress:  v.GetString("redis.address"),
		CacheBackend:  v.GetString("cache.backend"),
		CacheTTL:      v.GetDuration("cache.ttl"),
	}
	if cfg.CacheBackend != CacheBackendMemory && cfg.CacheBackend != CacheBackendRedis {
		return nil, fmt.Errorf("unknown cache backend %q", cfg.CacheBackend)
	}
	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("cache ttl must be positive, got %s", cfg.CacheTTL)
	}
	return cfg, nil
}
