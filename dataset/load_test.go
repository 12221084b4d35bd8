package dataset

import (
	"errors"
	"strings"
	"testing"
)

var biolearn = Layouts[DefaultLayout]

func TestLoadMatrix(t *testing.T) {
	input := "cpgSite,GSM1,GSM2,GSM3\ncg00000029,0.51,NA,0.49\ncg00000108, 0.93 ,0.95,\n"

	m, err := LoadMatrix(strings.NewReader(input), biolearn)
	if err != nil {
		t.Fatal(err)
	}

	if len(m.Samples) != 3 || m.Samples[2] != "GSM3" {
		t.Fatalf("Unexpected samples %v", m.Samples)
	}
	if len(m.Probes) != 2 {
		t.Fatalf("Expected 2 probes, got %d", len(m.Probes))
	}

	p, exists := m.Probe("cg00000108")
	if !exists {
		t.Fatal("cg00000108 not found")
	}
	if !p.Values[0].Valid || p.Values[0].Float64 != 0.93 {
		t.Errorf("Whitespace around a value was not tolerated: %+v", p.Values[0])
	}
	if p.Values[2].Valid {
		t.Errorf("Empty cell should be missing, got %+v", p.Values[2])
	}

	p, _ = m.Probe("cg00000029")
	if p.AvailableCount() != 2 {
		t.Errorf("NA should be missing, got %d available values", p.AvailableCount())
	}

	if col, exists := m.SampleColumn("GSM2"); !exists || col != 1 {
		t.Errorf("GSM2 at column %d (exists: %v)", col, exists)
	}
}

func TestLoadMatrixTabDelimited(t *testing.T) {
	input := "cpgSite\tS1\tS2\ncg01\t0.1\t\ncg02\t\t0.3\n"

	m, err := LoadMatrix(strings.NewReader(input), biolearn)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Samples) != 2 || len(m.Probes) != 2 {
		t.Fatalf("Loaded %d samples and %d probes", len(m.Samples), len(m.Probes))
	}
	if p, _ := m.Probe("cg02"); p.Values[0].Valid || p.Values[1].Float64 != 0.3 {
		t.Errorf("Unexpected values %+v", p.Values)
	}
}

func TestLoadMatrixRejects(t *testing.T) {
	for _, v := range []struct {
		Name  string
		Input string
	}{
		{"empty", ""},
		{"wrong identifier column", "probe,S1\ncg01,0.1\n"},
		{"no samples", "cpgSite\ncg01\n"},
		{"ragged row", "cpgSite,S1,S2\ncg01,0.1\n"},
		{"not a number", "cpgSite,S1\ncg01,high\n"},
		{"duplicate probe", "cpgSite,S1\ncg01,0.1\ncg01,0.2\n"},
		{"duplicate sample", "cpgSite,S1,S1\ncg01,0.1,0.2\n"},
		{"empty probe", "cpgSite,S1\n,0.2\n"},
	} {
		_, err := LoadMatrix(strings.NewReader(v.Input), biolearn)

		var dle *DataLoadError
		if !errors.As(err, &dle) {
			t.Errorf("%s: expected a DataLoadError, got %v", v.Name, err)
		}
	}
}

func TestLoadMetadata(t *testing.T) {
	input := "SampleID,Age,Disease State,Sex\nS1,40,None,F\nS2,,COVID,M\nS3,67.5,COVID,F\n"

	md, err := LoadMetadata(strings.NewReader(input), biolearn)
	if err != nil {
		t.Fatal(err)
	}

	if !md.HasField("Disease State") || md.HasField("Smoking") {
		t.Errorf("Unexpected columns %v", md.Columns)
	}

	s, exists := md.Sample("S3")
	if !exists || !s.Age.Valid || s.Age.Float64 != 67.5 {
		t.Errorf("Unexpected sample %+v", s)
	}
	if s, _ := md.Sample("S2"); s.Age.Valid {
		t.Errorf("Blank age should be missing, got %+v", s.Age)
	}

	if got := md.SamplesWhere("Disease State", "COVID"); len(got) != 2 || got[0] != "S2" || got[1] != "S3" {
		t.Errorf("Unexpected COVID samples %v", got)
	}
	if got := md.SamplesWhere("Disease State", "Influenza"); len(got) != 0 {
		t.Errorf("Unexpected Influenza samples %v", got)
	}
}

func TestLoadMetadataRejects(t *testing.T) {
	for _, v := range []struct {
		Name  string
		Input string
	}{
		{"empty", ""},
		{"no SampleID", "ID,Age\nS1,40\n"},
		{"no Age", "SampleID,Sex\nS1,F\n"},
		{"age not numeric", "SampleID,Age\nS1,forty\n"},
		{"duplicate sample", "SampleID,Age\nS1,40\nS1,41\n"},
	} {
		_, err := LoadMetadata(strings.NewReader(v.Input), biolearn)

		var dle *DataLoadError
		if !errors.As(err, &dle) {
			t.Errorf("%s: expected a DataLoadError, got %v", v.Name, err)
		}
	}
}

func TestLayoutByName(t *testing.T) {
	l, err := LayoutByName("geo")
	if err != nil {
		t.Fatal(err)
	}
	if l.ProbeColumn != "ID_REF" || l.Delimiter != '\t' {
		t.Errorf("Unexpected layout %+v", l)
	}

	if _, err := LayoutByName("illumina"); err == nil {
		t.Error("Expected an error for an unknown layout")
	}
}
