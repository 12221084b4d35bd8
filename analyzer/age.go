package analyzer

import (
	"fmt"
	"math"
	"sort"

	"github.com/carbocation/methylage/ageplot"
	"github.com/carbocation/methylage/dataset"
	"github.com/carbocation/methylage/methylstat"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ageSeries pairs a probe's measured values with the ages of the same
// samples. Samples lacking either value are left out.
func (a *Analyzer) ageSeries(p dataset.Probe) (ages, levels []float64) {
	for j, sampleID := range a.matrix.Samples {
		v := p.Values[j]
		if !v.Valid {
			continue
		}

		s, exists := a.metadata.Sample(sampleID)
		if !exists || !s.Age.Valid {
			continue
		}

		ages = append(ages, s.Age.Float64)
		levels = append(levels, v.Float64)
	}

	return ages, levels
}

func (a *Analyzer) lookupProbe(id string) (dataset.Probe, error) {
	p, exists := a.matrix.Probe(id)
	if !exists {
		return p, &ProbeNotFoundError{Probe: id}
	}

	return p, nil
}

// PlotAgainstAge charts one probe's methylation against age twice: once with
// a least squares line and once with a quadratic. Nothing is rendered if the
// probe is unknown or either fit is undefined.
func (a *Analyzer) PlotAgainstAge(probeID string) error {
	p, err := a.lookupProbe(probeID)
	if err != nil {
		return err
	}

	ages, levels := a.ageSeries(p)

	linear, err := methylstat.LinearFit(ages, levels)
	if err != nil {
		return err
	}
	quadratic, err := methylstat.PolynomialFit(ages, levels, 2)
	if err != nil {
		return err
	}

	curveX := append([]float64(nil), ages...)
	sort.Float64s(curveX)

	charts := []struct {
		name  string
		graph *chart.Chart
	}{
		{
			name: p.ID + "_linear",
			graph: fitChart(
				fmt.Sprintf("CpG Site %s Methylation vs Age (Linear Relationship)", p.ID),
				ages, levels, "Linear Fit", curveX, linear.Predict(curveX), ageplot.LinearColor),
		},
		{
			name: p.ID + "_polynomial",
			graph: fitChart(
				fmt.Sprintf("CpG Site %s Methylation vs Age (Non-Linear Relationship)", p.ID),
				ages, levels, "Polynomial Fit (Degree 2)", curveX, quadratic.Predict(curveX), ageplot.PolynomialColor),
		},
	}

	for _, c := range charts {
		if err := a.renderer.Render(c.name, c.graph); err != nil {
			return err
		}
	}

	a.log.Printf("%s: n=%d linear R^2=%.3f quadratic R^2=%.3f\n", p.ID, len(ages), linear.RSquared(ages, levels), quadratic.RSquared(ages, levels))

	return nil
}

func fitChart(title string, ages, levels []float64, fitName string, curveX, curveY []float64, col drawing.Color) *chart.Chart {
	c := ageplot.Scatter(title, ages, levels, "Data")
	ageplot.AddFit(c, fitName, curveX, curveY, col)
	ageplot.AddLegend(c)

	return c
}

// CorrelationWithAge computes the Pearson correlation between age and each
// probe's methylation, renders an annotated scatter per probe, and returns
// the coefficients keyed by probe. Every probe is looked up before anything
// is rendered, so an unknown probe aborts the whole call.
//
// A coefficient is NaN when it is undefined (fewer than two samples, or no
// variation in age or methylation). A probe with no sample that has both an
// age and a measurement cannot be charted and is a
// *methylstat.StatisticalComputationError.
func (a *Analyzer) CorrelationWithAge(probeIDs []string) (map[string]float64, error) {
	type pending struct {
		probe  string
		ages   []float64
		levels []float64
		r      float64
	}

	work := make([]pending, 0, len(probeIDs))
	seen := make(map[string]struct{}, len(probeIDs))
	for _, id := range probeIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		p, err := a.lookupProbe(id)
		if err != nil {
			return nil, err
		}

		ages, levels := a.ageSeries(p)
		if len(ages) == 0 {
			return nil, &methylstat.StatisticalComputationError{
				Op:     "correlation with age",
				Reason: fmt.Sprintf("probe %s has no sample with both an age and a measurement", id),
			}
		}

		work = append(work, pending{probe: id, ages: ages, levels: levels, r: methylstat.Pearson(ages, levels)})
	}

	out := make(map[string]float64, len(work))
	for _, w := range work {
		if math.IsNaN(w.r) {
			a.log.Printf("%s: correlation with age is undefined for %d samples\n", w.probe, len(w.ages))
		}

		c := ageplot.Scatter(
			fmt.Sprintf("CpG Site %s Methylation vs Age (Correlation: %.2f)", w.probe, w.r),
			w.ages, w.levels,
			fmt.Sprintf("Data (Correlation: %.2f)", w.r))
		ageplot.AddLegend(c)

		if err := a.renderer.Render(w.probe+"_correlation", c); err != nil {
			return nil, err
		}

		out[w.probe] = w.r
	}

	return out, nil
}
