package diagram_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/steelcct/internal/diagram"
	"github.com/alexiusacademia/steelcct/internal/kinetics"
)

func sample() diagram.Diagram {
	return diagram.Diagram{
		Title:  "Sample",
		XLabel: "Time (s)",
		YLabel: "Temperature (°C)",
		LogX:   true,
		Series: []diagram.Series{
			{Name: "Ferrite start", Phase: kinetics.Ferrite, Kind: diagram.StartCurve, Points: []diagram.Point{{X: 1, Y: 700}, {X: 10, Y: 650}, {X: 100, Y: 720}}},
			{Name: "Ferrite finish", Phase: kinetics.Ferrite, Kind: diagram.FinishCurve, Points: []diagram.Point{{X: 10, Y: 700}, {X: 1000, Y: 720}}},
			{Name: "Point", Phase: kinetics.Bainite, Kind: diagram.StartCurve, Points: []diagram.Point{{X: 5, Y: 500}}},
			{Name: "Path", Phase: kinetics.Austenite, Kind: diagram.PathCurve, Points: []diagram.Point{{X: 0, Y: 900}, {X: 100, Y: 25}}},
		},
		Guides: []diagram.Guide{{Label: "Ms", Y: 370}},
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"ttt.png", "ttt.svg", filepath.Join("nested", "ttt.pdf")} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, diagram.Export(sample(), path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}

	t.Run("Unknown Extension Saved As PNG", func(t *testing.T) {
		path := filepath.Join(dir, "diagram")
		require.NoError(t, diagram.Export(sample(), path))
		_, err := os.Stat(path + ".png")
		assert.NoError(t, err)
	})

	t.Run("Empty Diagram", func(t *testing.T) {
		path := filepath.Join(dir, "empty.png")
		empty := diagram.Diagram{Title: "Empty", Guides: []diagram.Guide{{Label: "Ms", Y: 370}}}
		assert.NoError(t, diagram.Export(empty, path))
	})
}

func TestDrawASCII(t *testing.T) {
	out := diagram.DrawASCII(sample(), 60, 12)
	assert.Contains(t, out, "Sample")
	assert.Contains(t, out, "Ferrite start")
	assert.Contains(t, out, "log")
	assert.Greater(t, strings.Count(out, "\n"), 12)

	linear := sample()
	linear.LogX = false
	assert.Contains(t, diagram.DrawASCII(linear, 60, 12), "linear")

	// Points that cannot be placed leave nothing to draw
	none := diagram.Diagram{Title: "None", LogX: true, Series: []diagram.Series{{Points: []diagram.Point{{X: 0, Y: 1}}}}}
	assert.Contains(t, diagram.DrawASCII(none, 60, 12), "no data")
}

func TestDrawSummaryBox(t *testing.T) {
	out := diagram.DrawSummaryBox("Hardness", []string{"Mixture HV:  520", "Martensite HV:  640"})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Contains(t, lines[1], "Hardness")
	assert.Contains(t, lines[4], "Martensite HV:  640")

	// Every row has the same display width
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)))
	}
}
