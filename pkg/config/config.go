package config

import (
	"os"
	"strconv"
)

// DBConfig is the relational store connection config.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// MQConfig is the broker connection config.
type MQConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig is the ephemeral store connection config.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// ServerConfig is the health/readiness HTTP surface config.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// LogConfig controls structured logging verbosity.
type LogConfig struct {
	Level string `yaml:"level"`
}

// OverrideDBFromEnv overrides DB settings from the process environment.
func OverrideDBFromEnv(cfg *DBConfig) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Name = name
	}
}

// OverrideMQFromEnv overrides broker settings from the process environment.
func OverrideMQFromEnv(cfg *MQConfig) {
	if url := os.Getenv("BROKER_URL"); url != "" {
		cfg.URL = url
	}
}

// OverrideRedisFromEnv overrides ephemeral store settings from the process environment.
func OverrideRedisFromEnv(cfg *RedisConfig) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Password = password
	}
}

// OverrideServerFromEnv overrides the health server port from the process environment.
func OverrideServerFromEnv(cfg *ServerConfig) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port = port
	}
}

// OverrideLogFromEnv overrides the log level from the process environment.
func OverrideLogFromEnv(cfg *LogConfig) {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Level = level
	}
}
