package dataset

import (
	"fmt"
	"strings"

	"gopkg.in/guregu/null.v3"
)

// Sample is one metadata row. Fields holds every column of the row as
// written, including the identifier and age columns.
type Sample struct {
	ID     string
	Age    null.Float
	Fields map[string]string
}

type Metadata struct {
	// Columns in header order
	Columns []string
	Samples []Sample

	index map[string]int
}

func NewMetadata(columns []string, samples []Sample) (*Metadata, error) {
	md := &Metadata{
		Columns: columns,
		Samples: samples,
		index:   make(map[string]int, len(samples)),
	}

	for i, s := range samples {
		if _, exists := md.index[s.ID]; exists {
			return nil, fmt.Errorf("SampleID %s appears more than once", s.ID)
		}
		md.index[s.ID] = i
	}

	return md, nil
}

func (md *Metadata) Sample(id string) (Sample, bool) {
	i, exists := md.index[id]
	if !exists {
		return Sample{}, false
	}

	return md.Samples[i], true
}

func (md *Metadata) HasField(name string) bool {
	for _, c := range md.Columns {
		if c == name {
			return true
		}
	}

	return false
}

// SamplesWhere returns, in metadata order, the IDs of samples whose field
// equals value. Surrounding whitespace is ignored on both sides.
func (md *Metadata) SamplesWhere(field, value string) []string {
	value = strings.TrimSpace(value)

	var out []string
	for _, s := range md.Samples {
		v, exists := s.Fields[field]
		if !exists {
			continue
		}
		if strings.TrimSpace(v) == value {
			out = append(out, s.ID)
		}
	}

	return out
}
