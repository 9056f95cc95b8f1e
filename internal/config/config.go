package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexiusacademia/steelcct/internal/transform"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. STEELCCT_ENGINE_WORKERS
const EnvPrefix = "STEELCCT"

// Configuration keys
const (
	KeyMaxTempStep     = "engine.max_temp_step"
	KeyMinSegmentSteps = "engine.min_segment_steps"
	KeyWorkers         = "engine.workers"
	KeyMinAustenite    = "engine.min_austenite"
	KeyTTTPoints       = "ttt.points"
	KeyCCTRates        = "cct.rates"
	KeyLogLevel        = "log.level"
	KeyLogFormat       = "log.format"
)

// Config holds the tunable settings of the CLI
type Config struct {
	Engine    transform.Settings
	TTTPoints int // temperatures sampled per TTT curve
	CCTRates  int // cooling rates per CCT sweep
	LogLevel  string
	LogFormat string
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Engine:    transform.DefaultSettings(),
		TTTPoints: 100,
		CCTRates:  40,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

// SetDefaults registers the built-in values with v
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyMaxTempStep, d.Engine.MaxTempStep)
	v.SetDefault(KeyMinSegmentSteps, d.Engine.MinSegmentSteps)
	v.SetDefault(KeyWorkers, d.Engine.Workers)
	v.SetDefault(KeyMinAustenite, d.Engine.MinAustenite)
	v.SetDefault(KeyTTTPoints, d.TTTPoints)
	v.SetDefault(KeyCCTRates, d.CCTRates)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
}

// Load reads the configuration from v. When file is not empty it is read
// first (yaml, json or toml); environment variables override it.
func Load(v *viper.Viper, file string) (Config, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	cfg := Config{
		Engine: transform.Settings{
			MaxTempStep:     v.GetFloat64(KeyMaxTempStep),
			MinSegmentSteps: v.GetInt(KeyMinSegmentSteps),
			Workers:         v.GetInt(KeyWorkers),
			MinAustenite:    v.GetFloat64(KeyMinAustenite),
		},
		TTTPoints: v.GetInt(KeyTTTPoints),
		CCTRates:  v.GetInt(KeyCCTRates),
		LogLevel:  v.GetString(KeyLogLevel),
		LogFormat: v.GetString(KeyLogFormat),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the ranges of every setting
func (c Config) Validate() error {
	var errs []error
	if !(c.Engine.MaxTempStep > 0) {
		errs = append(errs, fmt.Errorf("%s must be positive, got %g", KeyMaxTempStep, c.Engine.MaxTempStep))
	}
	if c.Engine.MinSegmentSteps < 1 {
		errs = append(errs, fmt.Errorf("%s must be at least 1, got %d", KeyMinSegmentSteps, c.Engine.MinSegmentSteps))
	}
	if c.Engine.Workers < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", KeyWorkers, c.Engine.Workers))
	}
	if c.Engine.MinAustenite < 0 || c.Engine.MinAustenite >= 1 {
		errs = append(errs, fmt.Errorf("%s must be in [0, 1), got %g", KeyMinAustenite, c.Engine.MinAustenite))
	}
	if c.TTTPoints < 2 {
		errs = append(errs, fmt.Errorf("%s must be at least 2, got %d", KeyTTTPoints, c.TTTPoints))
	}
	if c.CCTRates < 2 {
		errs = append(errs, fmt.Errorf("%s must be at least 2, got %d", KeyCCTRates, c.CCTRates))
	}
	return errors.Join(errs...)
}
