// Package chartpng renders radar comparison data to a PNG image.
package chartpng

import (
	"bytes"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"footscout/internal/radar"
)

const (
	defaultWidth  = 900
	defaultHeight = 700

	// Radial headroom beyond the unit circle for rings and labels.
	plotExtent = 1.35
	labelR     = 1.12
)

var gridColor = drawing.Color{R: 180, G: 180, B: 180, A: 255}

// Render draws the radar chart as a PNG. Pure function of its inputs: the
// same chart data always yields the same image bytes.
func Render(c *radar.Chart, width, height int) ([]byte, error) {
	if len(c.Polygons) == 0 {
		return nil, fmt.Errorf("nothing to render")
	}
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}

	n := len(c.Features)
	series := make([]chart.Series, 0, n+len(c.Polygons)+6)

	// Rings at 0.2..1.0 and one spoke per axis. Unnamed series stay out of
	// the legend.
	for _, r := range []float64{0.2, 0.4, 0.6, 0.8, 1.0} {
		xs, ys := ringPolygon(n, r)
		series = append(series, chart.ContinuousSeries{
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: gridColor, StrokeWidth: 1},
		})
	}
	for i := 0; i < n; i++ {
		x, y := axisPoint(i, n, 1.0)
		series = append(series, chart.ContinuousSeries{
			XValues: []float64{0, x},
			YValues: []float64{0, y},
			Style:   chart.Style{StrokeColor: gridColor, StrokeWidth: 1},
		})
	}

	labels := make([]chart.Value2, 0, n)
	for i, f := range c.Features {
		x, y := axisPoint(i, n, labelR)
		labels = append(labels, chart.Value2{XValue: x, YValue: y, Label: f})
	}
	series = append(series, chart.AnnotationSeries{
		Annotations: labels,
		Style: chart.Style{
			StrokeColor: drawing.ColorTransparent,
			FillColor:   drawing.ColorTransparent,
		},
	})

	for pi, poly := range c.Polygons {
		col := chart.GetDefaultColor(pi)
		xs := make([]float64, 0, n+1)
		ys := make([]float64, 0, n+1)
		for i, v := range poly.Values {
			x, y := axisPoint(i, n, clamp01(v))
			xs = append(xs, x)
			ys = append(ys, y)
		}
		// close the loop
		xs = append(xs, xs[0])
		ys = append(ys, ys[0])
		series = append(series, chart.ContinuousSeries{
			Name:    legendName(poly),
			XValues: xs,
			YValues: ys,
			// Stroke only: go-chart area fill runs down to the canvas
			// bottom, which is wrong for a closed polygon.
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 2.5,
			},
		})
	}

	ch := chart.Chart{
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: -plotExtent, Max: plotExtent},
		},
		YAxis: chart.YAxis{
			Style: chart.Hidden(),
			Range: &chart.ContinuousRange{Min: -plotExtent, Max: plotExtent},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render radar: %w", err)
	}
	return buf.Bytes(), nil
}

// axisPoint maps axis i of n at radius r onto the plane, axis 0 at the top,
// axes clockwise.
func axisPoint(i, n int, r float64) (float64, float64) {
	theta := math.Pi/2 - 2*math.Pi*float64(i)/float64(n)
	return r * math.Cos(theta), r * math.Sin(theta)
}

func ringPolygon(n int, r float64) ([]float64, []float64) {
	xs := make([]float64, 0, n+1)
	ys := make([]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		x, y := axisPoint(i%n, n, r)
		xs = append(xs, x)
		ys = append(ys, y)
	}
	return xs, ys
}

func legendName(p radar.Polygon) string {
	return fmt.Sprintf("%s, %dy - %s (%s)", p.Player, p.Age, p.MarketValueLabel, p.Squad)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
