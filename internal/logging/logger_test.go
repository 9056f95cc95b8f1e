package logging_test

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/steelcct/internal/logging"
)

func TestNew(t *testing.T) {
	l, err := logging.New("debug", "text")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)

	l, err = logging.New("warn", "JSON")
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
}

func TestNew_Invalid(t *testing.T) {
	_, err := logging.New("loud", "text")
	assert.ErrorContains(t, err, "log level")

	_, err = logging.New("info", "xml")
	assert.ErrorContains(t, err, "xml")
}

func TestNewNop(t *testing.T) {
	l := logging.NewNop()
	assert.False(t, l.IsLevelEnabled(logrus.ErrorLevel))
	l.Error("discarded")
}
