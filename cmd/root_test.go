package cmd

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/steelcct/internal/config"
	"github.com/alexiusacademia/steelcct/internal/logging"
)

// resetRoot restores the package state a command run leaves behind
func resetRoot(t *testing.T) {
	t.Cleanup(func() {
		rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
		rootCmd.SetArgs(nil)
		appConfig = config.Default()
		logger = logging.NewNop()
	})
}

func TestRoot_LoadsConfigBeforeCommand(t *testing.T) {
	resetRoot(t)

	rootCmd.SetArgs([]string{"version", "--workers", "2", "--log-level", "debug", "--max-temp-step", "0.5"})
	require.NoError(t, rootCmd.ExecuteContext(context.Background()))

	assert.Equal(t, 2, appConfig.Engine.Workers)
	assert.Equal(t, 0.5, appConfig.Engine.MaxTempStep)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestRoot_InvalidConfig(t *testing.T) {
	resetRoot(t)
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	t.Cleanup(func() {
		rootCmd.SilenceUsage = false
		rootCmd.SilenceErrors = false
	})

	rootCmd.SetArgs([]string{"version", "--max-temp-step", "0"})
	err := rootCmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.KeyMaxTempStep)
}

func TestInitConfig_UnknownFlag(t *testing.T) {
	err := initConfig(pflag.NewFlagSet("empty", pflag.ContinueOnError))
	assert.ErrorContains(t, err, "--")
}
