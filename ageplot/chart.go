package ageplot

import (
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	Width  = 1200
	Height = 600

	AgeLabel         = "Age"
	MethylationLabel = "Methylation Level"
)

var (
	DataColor       = chart.ColorBlue
	LinearColor     = chart.ColorRed
	PolynomialColor = chart.ColorGreen
)

// pointStyle renders points only, with no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 1,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    4,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
	}
}

// paddedRange spans xs with a margin on both sides, so that a single distinct
// value still yields a drawable axis.
func paddedRange(xs []float64, minPad float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 1
	}

	pad := math.Max(0.05*(hi-lo), minPad)

	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// Scatter is a chart of methylation level against age.
func Scatter(title string, ages, levels []float64, legend string) *chart.Chart {
	graph := &chart.Chart{
		Title:  title,
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name:  AgeLabel,
			Range: paddedRange(ages, 1),
		},
		YAxis: chart.YAxis{
			Name:  MethylationLabel,
			Range: paddedRange(levels, 0.01),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    legend,
				XValues: ages,
				YValues: levels,
				Style:   pointStyle(DataColor),
			},
		},
	}

	return graph
}

// AddFit overlays a fitted curve on c. xs must be sorted.
func AddFit(c *chart.Chart, name string, xs, ys []float64, col drawing.Color) {
	c.Series = append(c.Series, chart.ContinuousSeries{
		Name:    name,
		XValues: xs,
		YValues: ys,
		Style:   lineStyle(col),
	})

	// The curve can leave the range of the observations.
	c.YAxis.Range = paddedRange(seriesY(c), 0.01)
}

func seriesY(c *chart.Chart) []float64 {
	var out []float64
	for _, s := range c.Series {
		if cs, ok := s.(chart.ContinuousSeries); ok {
			out = append(out, cs.YValues...)
		}
	}

	return out
}

// AddLegend attaches a legend listing every series by name. Call it once all
// series are in place.
func AddLegend(c *chart.Chart) {
	c.Elements = []chart.Renderable{
		chart.Legend(c),
	}
}
