package diagram

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/alexiusacademia/steelcct/internal/kinetics"
	"github.com/guptarohit/asciigraph"
)

var phaseANSI = map[kinetics.Phase]asciigraph.AnsiColor{
	kinetics.Ferrite:    asciigraph.Green,
	kinetics.Pearlite:   asciigraph.Blue,
	kinetics.Bainite:    asciigraph.Yellow,
	kinetics.Martensite: asciigraph.Red,
	kinetics.Austenite:  asciigraph.Default,
}

// DrawASCII renders the series of a diagram as a terminal chart. Every
// series is resampled onto a common abscissa of width columns (logarithmic
// when the diagram is).
func DrawASCII(d Diagram, width, height int) string {
	if width < 10 {
		width = 10
	}
	if height < 5 {
		height = 5
	}

	xmin, xmax, ok := xRange(d)
	if !ok {
		return fmt.Sprintf("\n  %s: no data\n", d.Title)
	}

	grid := make([]float64, width)
	for i := range grid {
		f := float64(i) / float64(width-1)
		if d.LogX {
			grid[i] = math.Pow(10, math.Log10(xmin)+f*(math.Log10(xmax)-math.Log10(xmin)))
		} else {
			grid[i] = xmin + f*(xmax-xmin)
		}
	}

	var data [][]float64
	var colors []asciigraph.AnsiColor
	var legend []string
	for _, s := range d.Series {
		pts := sortedPoints(s.Points, d.LogX)
		if len(pts) == 0 {
			continue
		}
		row := make([]float64, width)
		for i, x := range grid {
			row[i] = interpolate(pts, x)
		}
		data = append(data, row)
		c := asciigraph.Default
		if s.Kind != HardnessCurve {
			if pc, ok := phaseANSI[s.Phase]; ok {
				c = pc
			}
		}
		colors = append(colors, c)
		legend = append(legend, fmt.Sprintf("%s%s%s", c, s.Name, asciigraph.Default))
	}
	if len(data) == 0 {
		return fmt.Sprintf("\n  %s: no data\n", d.Title)
	}

	scale := "linear"
	if d.LogX {
		scale = "log"
	}
	graph := asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("%s: %s from %.3g to %.3g (%s)", d.YLabel, d.XLabel, xmin, xmax, scale)),
	)

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", d.Title))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", len([]rune(d.Title)))))
	sb.WriteString(graph)
	sb.WriteString("\n\n  Legend: ")
	sb.WriteString(strings.Join(legend, "  "))
	sb.WriteString("\n")
	return sb.String()
}

func xRange(d Diagram) (float64, float64, bool) {
	xmin, xmax := math.Inf(1), math.Inf(-1)
	for _, s := range d.Series {
		for _, p := range sortedPoints(s.Points, d.LogX) {
			xmin = math.Min(xmin, p.X)
			xmax = math.Max(xmax, p.X)
		}
	}
	if math.IsInf(xmin, 1) {
		return 0, 0, false
	}
	if xmax == xmin {
		xmax = xmin + 1
		if d.LogX {
			xmax = xmin * 10
		}
	}
	return xmin, xmax, true
}

func sortedPoints(points []Point, logX bool) []Point {
	pts := make([]Point, 0, len(points))
	for _, p := range points {
		if !finite(p.X) || !finite(p.Y) || (logX && p.X <= 0) {
			continue
		}
		pts = append(pts, p)
	}
	sort.SliceStable(pts, func(i, j int) bool { return pts[i].X < pts[j].X })
	return pts
}

// interpolate evaluates the polyline at x, holding the end values outside
// its range
func interpolate(pts []Point, x float64) float64 {
	if x <= pts[0].X {
		return pts[0].Y
	}
	last := pts[len(pts)-1]
	if x >= last.X {
		return last.Y
	}
	i := sort.Search(len(pts), func(i int) bool { return pts[i].X >= x })
	a, b := pts[i-1], pts[i]
	if b.X == a.X {
		return b.Y
	}
	return a.Y + (b.Y-a.Y)*(x-a.X)/(b.X-a.X)
}

// DrawSummaryBox creates a summary box for results
func DrawSummaryBox(title string, lines []string) string {
	var sb strings.Builder

	maxLen := len([]rune(title))
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}
	maxLen += 4

	border := strings.Repeat("═", maxLen)
	sb.WriteString(fmt.Sprintf("  ╔%s╗\n", border))
	sb.WriteString(fmt.Sprintf("  ║  %s%s  ║\n", title, strings.Repeat(" ", maxLen-4-len([]rune(title)))))
	sb.WriteString(fmt.Sprintf("  ╠%s╣\n", border))
	for _, line := range lines {
		sb.WriteString(fmt.Sprintf("  ║  %s%s  ║\n", line, strings.Repeat(" ", maxLen-4-len([]rune(line)))))
	}
	sb.WriteString(fmt.Sprintf("  ╚%s╝\n", border))

	return sb.String()
}
