package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/steelcct/internal/kinetics"
	"github.com/alexiusacademia/steelcct/internal/transform"
)

func TestWriteRuns(t *testing.T) {
	runs := []transform.CoolingRun{{
		Rate:   466,
		Tini:   900,
		Tfin:   368.8,
		Final:  transform.State{Pearlite: 0.05, Bainite: 0.018, Martensite: 0.3, Austenite: 0.632},
		Events: []transform.Event{{Phase: kinetics.Martensite, Kind: transform.Start, Temp: 369.8}},
	}}

	var buf bytes.Buffer
	writeRuns(&buf, runs)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "Austenite")
	assert.Contains(t, lines[0], "End (°C)")
	fields := strings.Fields(lines[2])
	assert.Equal(t, []string{"466", "369", "0.000", "0.050", "0.018", "0.300", "0.632", "M:370"}, fields)
}
