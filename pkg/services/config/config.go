package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const EnvPrefix = "FMCG"

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Source SourceConfig `mapstructure:"source"`
	Log    LogConfig    `mapstructure:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	// RateLimit is the number of requests per minute allowed from one IP.
	// Zero disables limiting.
	RateLimit  int  `mapstructure:"rate_limit" validate:"gte=0"`
	Production bool `mapstructure:"production"`
}

type SourceConfig struct {
	Kind              string        `mapstructure:"kind" validate:"oneof=http file s3"`
	BaseURL           string        `mapstructure:"base_url" validate:"required_if=Kind http"`
	Root              string        `mapstructure:"root" validate:"required_if=Kind file"`
	Bucket            string        `mapstructure:"bucket" validate:"required_if=Kind s3"`
	Prefix            string        `mapstructure:"prefix"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"gt=0"`
	PriorInsightsPath string        `mapstructure:"prior_insights_path"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=trace debug info warn error"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.rate_limit", 120)
	v.SetDefault("server.production", false)
	v.SetDefault("source.kind", "http")
	v.SetDefault("source.base_url", "http://localhost:3000")
	v.SetDefault("source.root", "")
	v.SetDefault("source.bucket", "")
	v.SetDefault("source.prefix", "")
	v.SetDefault("source.timeout", 30*time.Second)
	v.SetDefault("source.prior_insights_path", "")
	v.SetDefault("log.level", "info")
}

// LoadConfig reads the optional config file at path, then FMCG_* environment
// variables on top of it (FMCG_SOURCE_BASE_URL overrides source.base_url).
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source.Kind = strings.ToLower(cfg.Source.Kind)
	cfg.Log.Level = strings.ToLower(cfg.Log.Level)
	return &cfg, nil
}

// Validate checks the config after flags and profiles have been applied.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
