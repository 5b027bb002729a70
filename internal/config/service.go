package config

import (
	"strings"
	"time"

	"github.com/rgehrsitz/hpgo/internal/domain"
	"github.com/spf13/viper"
)

// ServiceConfig holds process-level settings for the CLI, API server and TUI.
// Plan data never lives here.
type ServiceConfig struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	Projection ProjectionConfig `mapstructure:"projection"`
	Comparison ComparisonConfig `mapstructure:"comparison"`
}

type ServerConfig struct {
	HTTPAddr        string        `mapstructure:"http_addr"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type ProjectionConfig struct {
	LookaheadYears int  `mapstructure:"lookahead_years"`
	MaxYears       int  `mapstructure:"max_years"` // hard cap on requested horizons
	Debug          bool `mapstructure:"debug"`
}

type ComparisonConfig struct {
	MaxViableYears int `mapstructure:"max_viable_years"`
}

// LoadServiceConfig reads settings from a YAML file and HPGO_* environment
// variables. An empty path reads the environment and defaults only.
func LoadServiceConfig(path string) (ServiceConfig, error) {
	v := viper.New()
	v.SetEnvPrefix("HPGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", false)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", true)
	v.SetDefault("projection.lookahead_years", DefaultLookaheadYears)
	v.SetDefault("projection.max_years", 60)
	v.SetDefault("projection.debug", false)
	v.SetDefault("comparison.max_viable_years", 3)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return ServiceConfig{}, err
		}
	}

	var cfg ServiceConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return ServiceConfig{}, err
	}

	return cfg, nil
}

// ApplyDefaults fills plan fields this config controls when the input leaves them unset
func (c ProjectionConfig) ApplyDefaults(input domain.PlanInput) domain.PlanInput {
	if input.LookaheadYears == nil && c.LookaheadYears > 0 {
		lookahead := c.LookaheadYears
		input.LookaheadYears = &lookahead
	}
	return input
}

// Horizon resolves the number of years to simulate for a plan. requested
// overrides the plan horizon when positive; MaxYears caps the result.
func (c ProjectionConfig) Horizon(plan domain.Plan, requested int) int {
	years := plan.Horizon()
	if requested > 0 {
		years = requested
	}
	if c.MaxYears > 0 && years > c.MaxYears {
		years = c.MaxYears
	}
	return years
}
