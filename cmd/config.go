package cmd

import (
	"fmt"

	"github.com/alexiusacademia/steelcct/internal/alloy"
	"github.com/alexiusacademia/steelcct/internal/config"
	"github.com/alexiusacademia/steelcct/internal/logging"
	"github.com/alexiusacademia/steelcct/internal/transform"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	appConfig = config.Default()
	logger    = logging.NewNop()
)

// initConfig merges defaults, the config file, STEELCCT_* variables and
// the persistent flags, then builds the logger
func initConfig(flags *pflag.FlagSet) error {
	v := viper.New()
	if err := bindFlags(v, flags); err != nil {
		return err
	}

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	l, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	appConfig = cfg
	logger = l
	logger.WithFields(logrus.Fields{
		"config":        v.ConfigFileUsed(),
		"max_temp_step": cfg.Engine.MaxTempStep,
		"workers":       cfg.Engine.Workers,
	}).Debug("configuration loaded")
	return nil
}

// bindFlags maps the persistent flags onto their config keys so a flag
// given on the command line wins over the file and the environment
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		config.KeyLogLevel:    "log-level",
		config.KeyLogFormat:   "log-format",
		config.KeyWorkers:     "workers",
		config.KeyMaxTempStep: "max-temp-step",
	}
	for key, name := range bindings {
		f := flags.Lookup(name)
		if f == nil {
			return fmt.Errorf("flag --%s is not defined", name)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}

// newEngine builds the transformation engine for an alloy with the
// loaded settings
func newEngine(a *alloy.Alloy) *transform.Engine {
	return transform.NewEngine(a,
		transform.WithSettings(appConfig.Engine),
		transform.WithLogger(logger.WithField("alloy", a.Composition().String())),
	)
}
