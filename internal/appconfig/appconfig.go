// Package appconfig composes the shared config primitives in
// pkg/config into the single Config every stage binary loads at
// startup, following the teacher's per-service Load() pattern.
package appconfig

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"notifyhub/pkg/config"
)

// Config is the full set of settings a stage process needs: store,
// broker, ephemeral store, HTTP surface, and logging.
type Config struct {
	DB     config.DBConfig     `yaml:"db"`
	MQ     config.MQConfig     `yaml:"mq"`
	Redis  config.RedisConfig  `yaml:"redis"`
	Server config.ServerConfig `yaml:"server"`
	Log    config.LogConfig    `yaml:"log"`
}

// Load reads the layered YAML config for the active environment and
// applies process environment overrides, in that order.
func Load() (*Config, error) {
	env := config.GetConfigEnv()
	configDir := config.GetEnv("CONFIG_DIR", "config")

	cfgMap, err := config.LoadConfig(env, configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfgData, err := yaml.Marshal(cfgMap)
	if err != nil {
		return nil, fmt.Errorf("marshal merged config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(cfgData, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal merged config: %w", err)
	}

	config.OverrideDBFromEnv(&cfg.DB)
	config.OverrideMQFromEnv(&cfg.MQ)
	config.OverrideRedisFromEnv(&cfg.Redis)
	config.OverrideServerFromEnv(&cfg.Server)
	config.OverrideLogFromEnv(&cfg.Log)

	return &cfg, nil
}
