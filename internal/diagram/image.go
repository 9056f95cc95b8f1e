package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/steelcct/internal/kinetics"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Phase colours shared by every exported diagram
var phaseColors = map[kinetics.Phase]color.Color{
	kinetics.Ferrite:    color.RGBA{R: 34, G: 139, B: 34, A: 255},
	kinetics.Pearlite:   color.RGBA{R: 30, G: 90, B: 200, A: 255},
	kinetics.Bainite:    color.RGBA{R: 230, G: 140, B: 0, A: 255},
	kinetics.Martensite: color.RGBA{R: 200, G: 30, B: 30, A: 255},
	kinetics.Austenite:  color.Gray{Y: 110},
}

// Export draws a diagram to an image file. The format follows the
// extension (png, svg, pdf); anything else is saved as png.
func Export(d Diagram, filename string) error {
	p := plot.New()
	p.Title.Text = d.Title
	p.X.Label.Text = d.XLabel
	p.Y.Label.Text = d.YLabel
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	if d.LogX {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	xmin, xmax := math.Inf(1), math.Inf(-1)
	for _, s := range d.Series {
		pts := toXYs(s.Points, d.LogX)
		if len(pts) == 0 {
			continue
		}
		for _, pt := range pts {
			xmin = math.Min(xmin, pt.X)
			xmax = math.Max(xmax, pt.X)
		}

		if len(pts) == 1 {
			sc, err := plotter.NewScatter(pts)
			if err != nil {
				return err
			}
			sc.GlyphStyle.Color = seriesColor(s)
			sc.GlyphStyle.Radius = vg.Points(3)
			sc.GlyphStyle.Shape = draw.CircleGlyph{}
			p.Add(sc)
			p.Legend.Add(s.Name, sc)
			continue
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return err
		}
		line.LineStyle.Width = vg.Points(1.5)
		line.LineStyle.Color = seriesColor(s)
		switch s.Kind {
		case FinishCurve:
			line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		case PathCurve:
			line.LineStyle.Width = vg.Points(1)
			line.LineStyle.Color = color.Black
		}
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	// Reference temperatures across the whole data range
	if !math.IsInf(xmin, 1) {
		for _, g := range d.Guides {
			guide, err := plotter.NewLine(plotter.XYs{{X: xmin, Y: g.Y}, {X: xmax, Y: g.Y}})
			if err != nil {
				return err
			}
			guide.LineStyle.Width = vg.Points(0.75)
			guide.LineStyle.Color = color.Gray{Y: 128}
			guide.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
			p.Add(guide)

			lbl, err := plotter.NewLabels(plotter.XYLabels{
				XYs:    []plotter.XY{{X: xmax, Y: g.Y}},
				Labels: []string{fmt.Sprintf("%s %.0f°C", g.Label, g.Y)},
			})
			if err != nil {
				return err
			}
			p.Add(lbl)
		}
	}

	width := 8 * vg.Inch
	height := 6 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

// toXYs drops points a renderer cannot place: non-finite values and, on a
// logarithmic axis, non-positive abscissae
func toXYs(points []Point, logX bool) plotter.XYs {
	pts := make(plotter.XYs, 0, len(points))
	for _, pt := range points {
		if !finite(pt.X) || !finite(pt.Y) {
			continue
		}
		if logX && pt.X <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: pt.X, Y: pt.Y})
	}
	return pts
}

func seriesColor(s Series) color.Color {
	if s.Kind == HardnessCurve {
		return color.Black
	}
	if c, ok := phaseColors[s.Phase]; ok {
		return c
	}
	return color.Black
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
