package analyzer

import (
	"math"

	"github.com/carbocation/methylage/methylstat"
)

type SampleSummary struct {
	Sample string
	methylstat.Summary

	// Age is NaN when the sample has no metadata or no recorded age.
	Age float64
}

// SampleSummaries describes each sample column's measured values, which is
// handy for spotting failed arrays before testing anything.
func (a *Analyzer) SampleSummaries() []SampleSummary {
	out := make([]SampleSummary, 0, len(a.matrix.Samples))
	vals := make([]float64, 0, len(a.matrix.Probes))

	for j, sampleID := range a.matrix.Samples {
		vals = vals[:0]
		for _, p := range a.matrix.Probes {
			if v := p.Values[j]; v.Valid {
				vals = append(vals, v.Float64)
			}
		}

		s := SampleSummary{
			Sample:  sampleID,
			Summary: methylstat.Summarize(vals),
			Age:     math.NaN(),
		}
		if md, exists := a.metadata.Sample(sampleID); exists && md.Age.Valid {
			s.Age = md.Age.Float64
		}

		out = append(out, s)
	}

	return out
}
