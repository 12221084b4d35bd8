package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/methylage"
	"github.com/carbocation/pfx"
	"gopkg.in/guregu/null.v3"
)

const (
	MatrixSource   = "methylation matrix"
	MetadataSource = "metadata"
)

func (l Layout) newReader(r io.Reader) *csv.Reader {
	br := bufio.NewReaderSize(r, methylage.DelimiterSniffBytes)

	delim := l.Delimiter
	if delim == 0 {
		delim = methylage.PeekDelimiter(br)
	}

	cr := csv.NewReader(br)
	cr.Comma = delim
	cr.Comment = l.Comment
	cr.ReuseRecord = true

	return cr
}

// readHeader returns a trimmed copy of the first record.
func readHeader(cr *csv.Reader, source string) ([]string, error) {
	row, err := cr.Read()
	if err == io.EOF {
		return nil, loadErr(source, 0, "no header row")
	} else if err != nil {
		return nil, wrapReadErr(source, err)
	}

	header := make([]string, len(row))
	for i, v := range row {
		header[i] = strings.TrimSpace(v)
	}

	// Excel likes to prepend a byte order mark.
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	return header, nil
}

func wrapReadErr(source string, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return &DataLoadError{Source: source, Line: perr.Line, Err: perr.Err}
	}

	return &DataLoadError{Source: source, Err: pfx.Err(err)}
}

// LoadMatrix reads a methylation matrix whose first column holds probe
// identifiers and whose remaining columns are samples.
func LoadMatrix(r io.Reader, layout Layout) (*Matrix, error) {
	cr := layout.newReader(r)

	header, err := readHeader(cr, MatrixSource)
	if err != nil {
		return nil, err
	}

	if header[0] != layout.ProbeColumn {
		return nil, loadErr(MatrixSource, 1, "first column is %q but %q was expected", header[0], layout.ProbeColumn)
	}
	if len(header) < 2 {
		return nil, loadErr(MatrixSource, 1, "no sample columns")
	}

	samples := header[1:]
	var probes []Probe

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, wrapReadErr(MatrixSource, err)
		}
		line, _ := cr.FieldPos(0)

		p := Probe{
			ID:     strings.TrimSpace(row[0]),
			Values: make([]null.Float, len(samples)),
		}
		if p.ID == "" {
			return nil, loadErr(MatrixSource, line, "empty %s", layout.ProbeColumn)
		}

		for j, cell := range row[1:] {
			if layout.isMissing(cell) {
				continue
			}

			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, loadErr(MatrixSource, line, "probe %s, sample %s: %v", p.ID, samples[j], err)
			}
			p.Values[j] = null.FloatFrom(v)
		}

		probes = append(probes, p)
	}

	m, err := NewMatrix(samples, probes)
	if err != nil {
		return nil, &DataLoadError{Source: MatrixSource, Err: err}
	}

	return m, nil
}

// LoadMetadata reads one row per sample. The layout's sample and age columns
// must be present; all other columns are kept as text.
func LoadMetadata(r io.Reader, layout Layout) (*Metadata, error) {
	cr := layout.newReader(r)

	header, err := readHeader(cr, MetadataSource)
	if err != nil {
		return nil, err
	}

	idCol, ageCol := -1, -1
	for i, v := range header {
		switch v {
		case layout.SampleColumn:
			idCol = i
		case layout.AgeColumn:
			ageCol = i
		}
	}
	if idCol < 0 {
		return nil, loadErr(MetadataSource, 1, "%s column not found in %v", layout.SampleColumn, header)
	}
	if ageCol < 0 {
		return nil, loadErr(MetadataSource, 1, "%s column not found in %v", layout.AgeColumn, header)
	}

	var samples []Sample
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, wrapReadErr(MetadataSource, err)
		}
		line, _ := cr.FieldPos(0)

		s := Sample{
			ID:     strings.TrimSpace(row[idCol]),
			Fields: make(map[string]string, len(header)),
		}
		if s.ID == "" {
			return nil, loadErr(MetadataSource, line, "empty %s", layout.SampleColumn)
		}

		for i, v := range row {
			s.Fields[header[i]] = v
		}

		if !layout.isMissing(row[ageCol]) {
			age, err := strconv.ParseFloat(strings.TrimSpace(row[ageCol]), 64)
			if err != nil {
				return nil, loadErr(MetadataSource, line, "sample %s: %s: %v", s.ID, layout.AgeColumn, err)
			}
			s.Age = null.FloatFrom(age)
		}

		samples = append(samples, s)
	}

	md, err := NewMetadata(header, samples)
	if err != nil {
		return nil, &DataLoadError{Source: MetadataSource, Err: err}
	}

	return md, nil
}
