package dataset

import (
	"fmt"

	"github.com/carbocation/methylage/methylstat"
	"gopkg.in/guregu/null.v3"
)

// Probe is one row of the methylation matrix. Values line up with the
// matrix's Samples; an invalid entry is a missing measurement.
type Probe struct {
	ID     string
	Values []null.Float
}

// Available returns the probe's non-missing values in sample order.
func (p Probe) Available() []float64 {
	out := make([]float64, 0, len(p.Values))
	for _, v := range p.Values {
		if v.Valid {
			out = append(out, v.Float64)
		}
	}

	return out
}

func (p Probe) AvailableCount() int {
	n := 0
	for _, v := range p.Values {
		if v.Valid {
			n++
		}
	}

	return n
}

// Matrix holds methylation levels, one Probe per row and one column per
// sample.
type Matrix struct {
	Samples []string
	Probes  []Probe

	probeIndex  map[string]int
	sampleIndex map[string]int
}

// NewMatrix validates that probe and sample identifiers are unique and that
// every probe has one value per sample.
func NewMatrix(samples []string, probes []Probe) (*Matrix, error) {
	m := &Matrix{
		Samples:     samples,
		Probes:      probes,
		sampleIndex: make(map[string]int, len(samples)),
	}

	for i, s := range samples {
		if _, exists := m.sampleIndex[s]; exists {
			return nil, fmt.Errorf("sample %s appears more than once", s)
		}
		m.sampleIndex[s] = i
	}

	for _, p := range probes {
		if len(p.Values) != len(samples) {
			return nil, fmt.Errorf("probe %s has %d values but there are %d samples", p.ID, len(p.Values), len(samples))
		}
	}

	if err := m.reindex(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Matrix) reindex() error {
	m.probeIndex = make(map[string]int, len(m.Probes))
	for i, p := range m.Probes {
		if _, exists := m.probeIndex[p.ID]; exists {
			return fmt.Errorf("probe %s appears more than once", p.ID)
		}
		m.probeIndex[p.ID] = i
	}

	return nil
}

func (m *Matrix) Probe(id string) (Probe, bool) {
	i, exists := m.probeIndex[id]
	if !exists {
		return Probe{}, false
	}

	return m.Probes[i], true
}

// SampleColumn returns the column position of a sample.
func (m *Matrix) SampleColumn(id string) (int, bool) {
	i, exists := m.sampleIndex[id]
	return i, exists
}

// DropEmpty discards probes with no measurement in any sample and returns how
// many were removed.
func (m *Matrix) DropEmpty() int {
	kept := m.Probes[:0]
	for _, p := range m.Probes {
		if p.AvailableCount() > 0 {
			kept = append(kept, p)
		}
	}

	dropped := len(m.Probes) - len(kept)
	m.Probes = kept

	// Identifiers were unique before, so they still are.
	_ = m.reindex()

	return dropped
}

// Impute fills every missing cell with the mean of its probe's available
// values and returns the number of cells filled. Probes with no available
// values are left alone; DropEmpty removes them.
func (m *Matrix) Impute() int {
	filled := 0
	for _, p := range m.Probes {
		if p.AvailableCount() == len(p.Values) {
			continue
		}

		mean, err := methylstat.Mean(p.Available())
		if err != nil {
			continue
		}

		for j, v := range p.Values {
			if !v.Valid {
				p.Values[j] = null.FloatFrom(mean)
				filled++
			}
		}
	}

	return filled
}

func (m *Matrix) HasMissing() bool {
	for _, p := range m.Probes {
		if p.AvailableCount() != len(p.Values) {
			return true
		}
	}

	return false
}
