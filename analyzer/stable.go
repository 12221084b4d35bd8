package analyzer

import "github.com/carbocation/methylage/methylstat"

type ProbeVariance struct {
	Probe string

	// N is the number of measured samples.
	N int

	// Variance is NaN when N < 2.
	Variance float64
}

// Variances computes each probe's sample variance over its measured values,
// in matrix order.
func (a *Analyzer) Variances() []ProbeVariance {
	out := make([]ProbeVariance, 0, len(a.matrix.Probes))
	for _, p := range a.matrix.Probes {
		vals := p.Available()
		out = append(out, ProbeVariance{
			Probe:    p.ID,
			N:        len(vals),
			Variance: methylstat.Variance(vals),
		})
	}

	return out
}

// StableSites returns probes whose variance is strictly below threshold.
// Probes measured in fewer than two samples have no variance and are never
// stable.
func (a *Analyzer) StableSites(threshold float64) []string {
	out := make([]string, 0)
	for _, v := range a.Variances() {
		if v.Variance < threshold {
			out = append(out, v.Probe)
		}
	}

	return out
}
