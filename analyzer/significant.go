package analyzer

import (
	"github.com/carbocation/methylage/dataset"
	"github.com/carbocation/methylage/methylstat"
)

type ProbeTest struct {
	Probe string
	methylstat.TTest
}

// groupColumns finds the matrix columns of samples whose metadata field
// equals value.
func (a *Analyzer) groupColumns(field, value string) ([]int, error) {
	var cols []int
	for _, id := range a.metadata.SamplesWhere(field, value) {
		if col, exists := a.matrix.SampleColumn(id); exists {
			cols = append(cols, col)
		}
	}

	if len(cols) == 0 {
		return nil, &GroupNotFoundError{Field: field, Value: value}
	}

	return cols, nil
}

func gather(dst []float64, p dataset.Probe, cols []int) []float64 {
	for _, c := range cols {
		if v := p.Values[c]; v.Valid {
			dst = append(dst, v.Float64)
		}
	}

	return dst
}

// SignificanceTests runs a Welch t-test for every probe, comparing samples
// whose metadata field equals group1 against those where it equals group2.
// Only measured values take part. Results are in matrix order.
func (a *Analyzer) SignificanceTests(field, group1, group2 string) ([]ProbeTest, error) {
	cols1, err := a.groupColumns(field, group1)
	if err != nil {
		return nil, err
	}
	cols2, err := a.groupColumns(field, group2)
	if err != nil {
		return nil, err
	}

	// The buffers are reused across probes; WelchTTest does not keep them.
	buf1 := make([]float64, 0, len(cols1))
	buf2 := make([]float64, 0, len(cols2))

	out := make([]ProbeTest, 0, len(a.matrix.Probes))
	undefined := 0
	for _, p := range a.matrix.Probes {
		buf1 = gather(buf1[:0], p, cols1)
		buf2 = gather(buf2[:0], p, cols2)

		res := methylstat.WelchTTest(buf1, buf2)
		if !res.Defined() {
			undefined++
		}
		out = append(out, ProbeTest{Probe: p.ID, TTest: res})
	}

	if undefined > 0 {
		a.log.Printf("%d of %d probes had too few or invariant values for a t-test between %s=%q and %s=%q\n", undefined, len(out), field, group1, field, group2)
	}

	return out, nil
}

// SignificantSites returns, in matrix order, the probes whose t-test p-value
// is below pThreshold. Probes whose test is undefined are not significant.
func (a *Analyzer) SignificantSites(field, group1, group2 string, pThreshold float64) ([]string, error) {
	tests, err := a.SignificanceTests(field, group1, group2)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0)
	for _, t := range tests {
		if t.P < pThreshold {
			out = append(out, t.Probe)
		}
	}

	return out, nil
}
