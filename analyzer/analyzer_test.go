package analyzer

import (
	"context"
	"errors"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/carbocation/methylage/ageplot"
	"github.com/carbocation/methylage/dataset"
	"github.com/carbocation/methylage/methylstat"
	"github.com/wcharczuk/go-chart/v2"
)

const testMatrix = `cpgSite,S1,S2,S3,S4,S5,S6
cgStable,0.5,0.5,0.5,0.5,0.5,0.5
cgSplit,0.1,0.1,0.1,0.9,0.9,0.9
cgAge,0.25,0.30,0.45,0.52,0.61,0.70
cgSparse,0.4,,NA,,,
cgEmpty,,,,,,
cgNoisy,0.1,0.8,0.3,0.9,0.2,0.7
`

const testMetadata = `SampleID,Age,Disease State
S1,25,None
S2,30,None
S3,45,None
S4,52,COVID
S5,61,COVID
S6,70,COVID
`

// recorder keeps rendered charts in memory.
type recorder struct {
	names  []string
	charts []*chart.Chart
}

func (r *recorder) Render(name string, c *chart.Chart) error {
	r.names = append(r.names, name)
	r.charts = append(r.charts, c)
	return nil
}

var quiet = log.New(io.Discard, "", 0)

func newTestAnalyzer(t *testing.T) (*Analyzer, *recorder) {
	t.Helper()

	layout := dataset.Layouts[dataset.DefaultLayout]

	m, err := dataset.LoadMatrix(strings.NewReader(testMatrix), layout)
	if err != nil {
		t.Fatal(err)
	}
	md, err := dataset.LoadMetadata(strings.NewReader(testMetadata), layout)
	if err != nil {
		t.Fatal(err)
	}

	rec := &recorder{}

	return New(m, md, WithRenderer(rec), WithLogger(quiet)), rec
}

func TestPreprocess(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	res := a.Preprocess()
	if res.DroppedProbes != 1 || res.ImputedCells != 5 {
		t.Fatalf("Unexpected result %+v", res)
	}
	if a.matrix.HasMissing() {
		t.Fatal("Missing values remain after preprocessing")
	}
	if _, exists := a.matrix.Probe("cgEmpty"); exists {
		t.Error("cgEmpty should have been dropped")
	}

	sparse, _ := a.matrix.Probe("cgSparse")
	for _, v := range sparse.Values {
		if v.Float64 != 0.4 {
			t.Errorf("Expected cgSparse to be imputed with 0.4, got %v", v.Float64)
		}
	}

	if again := a.Preprocess(); again != (PreprocessResult{}) {
		t.Errorf("Second preprocessing changed data: %+v", again)
	}
}

func TestStableSites(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	if got, expected := a.StableSites(DefaultStableThreshold), []string{"cgStable"}; !reflect.DeepEqual(got, expected) {
		t.Errorf("Before preprocessing: got %v, expected %v", got, expected)
	}

	a.Preprocess()

	if got, expected := a.StableSites(DefaultStableThreshold), []string{"cgStable", "cgSparse"}; !reflect.DeepEqual(got, expected) {
		t.Errorf("After preprocessing: got %v, expected %v", got, expected)
	}

	// A constant probe is stable for any positive threshold.
	if got := a.StableSites(1e-300); len(got) == 0 || got[0] != "cgStable" {
		t.Errorf("Constant probe not stable at a tiny threshold: %v", got)
	}
}

func TestVariancesUndefinedForSingleValue(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	for _, v := range a.Variances() {
		if v.Probe == "cgSparse" {
			if v.N != 1 || !math.IsNaN(v.Variance) {
				t.Errorf("Expected n=1 and NaN variance, got %+v", v)
			}
			return
		}
	}
	t.Fatal("cgSparse not found")
}

func TestSignificantSites(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	got, err := a.SignificantSites("Disease State", "None", "COVID", DefaultPValueThreshold)
	if err != nil {
		t.Fatal(err)
	}
	if expected := []string{"cgSplit", "cgAge"}; !reflect.DeepEqual(got, expected) {
		t.Fatalf("Got %v, expected %v", got, expected)
	}

	tests, err := a.SignificanceTests("Disease State", "None", "COVID")
	if err != nil {
		t.Fatal(err)
	}
	if len(tests) != a.NumProbes() {
		t.Fatalf("Expected one test per probe, got %d", len(tests))
	}
	for _, res := range tests {
		switch res.Probe {
		case "cgAge":
			// scipy.stats.ttest_ind(..., equal_var=False)
			if math.Abs(res.P-0.0261479507917) > 1e-6 {
				t.Errorf("cgAge: P=%v", res.P)
			}
		case "cgStable", "cgSparse", "cgEmpty":
			if res.Defined() {
				t.Errorf("%s: expected an undefined test, got %+v", res.Probe, res.TTest)
			}
		}
	}
}

func TestSignificantSitesUnknownGroup(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	for _, v := range []struct {
		Field, Group1, Group2 string
	}{
		{"Disease State", "None", "Influenza"},
		{"Disease State", "Influenza", "COVID"},
		{"Smoking", "Yes", "No"},
	} {
		_, err := a.SignificantSites(v.Field, v.Group1, v.Group2, DefaultPValueThreshold)

		var gnf *GroupNotFoundError
		if !errors.As(err, &gnf) {
			t.Errorf("%+v: expected a GroupNotFoundError, got %v", v, err)
		}
	}
}

func TestPlotAgainstAge(t *testing.T) {
	a, rec := newTestAnalyzer(t)

	if err := a.PlotAgainstAge("cgAge"); err != nil {
		t.Fatal(err)
	}

	if expected := []string{"cgAge_linear", "cgAge_polynomial"}; !reflect.DeepEqual(rec.names, expected) {
		t.Fatalf("Rendered %v, expected %v", rec.names, expected)
	}
	for _, c := range rec.charts {
		if len(c.Series) != 2 {
			t.Errorf("%s: expected scatter and fit series, got %d", c.Title, len(c.Series))
		}
	}
}

func TestPlotAgainstAgeUnknownProbe(t *testing.T) {
	a, rec := newTestAnalyzer(t)

	err := a.PlotAgainstAge("cgMissing")

	var pnf *ProbeNotFoundError
	if !errors.As(err, &pnf) || pnf.Probe != "cgMissing" {
		t.Fatalf("Expected a ProbeNotFoundError, got %v", err)
	}
	if len(rec.names) != 0 {
		t.Fatalf("Rendered %v for an unknown probe", rec.names)
	}
}

func TestPlotAgainstAgeTooFewSamples(t *testing.T) {
	a, rec := newTestAnalyzer(t)

	err := a.PlotAgainstAge("cgSparse")

	var sce *methylstat.StatisticalComputationError
	if !errors.As(err, &sce) {
		t.Fatalf("Expected a StatisticalComputationError, got %v", err)
	}
	if len(rec.names) != 0 {
		t.Fatalf("Rendered %v for an undefined fit", rec.names)
	}
}

func TestCorrelationWithAge(t *testing.T) {
	a, rec := newTestAnalyzer(t)

	got, err := a.CorrelationWithAge([]string{"cgAge", "cgStable", "cgAge"})
	if err != nil {
		t.Fatal(err)
	}

	if r := got["cgAge"]; math.Abs(r-1) > 1e-9 {
		t.Errorf("cgAge: expected r=1, got %v", r)
	}
	if r, exists := got["cgStable"]; !exists || !math.IsNaN(r) {
		t.Errorf("cgStable: expected NaN, got %v (present: %v)", r, exists)
	}

	if expected := []string{"cgAge_correlation", "cgStable_correlation"}; !reflect.DeepEqual(rec.names, expected) {
		t.Fatalf("Rendered %v, expected %v", rec.names, expected)
	}
	if !strings.Contains(rec.charts[0].Title, "Correlation: 1.00") {
		t.Errorf("Title %q is not annotated with the coefficient", rec.charts[0].Title)
	}
}

func TestCorrelationWithAgeAbortsOnUnknownProbe(t *testing.T) {
	a, rec := newTestAnalyzer(t)

	got, err := a.CorrelationWithAge([]string{"cgAge", "cgMissing"})

	var pnf *ProbeNotFoundError
	if !errors.As(err, &pnf) {
		t.Fatalf("Expected a ProbeNotFoundError, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected no partial result, got %v", got)
	}
	if len(rec.names) != 0 {
		t.Errorf("Rendered %v before aborting", rec.names)
	}
}

func TestSampleSummaries(t *testing.T) {
	a, _ := newTestAnalyzer(t)

	sums := a.SampleSummaries()
	if len(sums) != 6 {
		t.Fatalf("Expected 6 samples, got %d", len(sums))
	}
	if sums[0].Sample != "S1" || sums[0].Age != 25 || sums[0].N != 5 {
		t.Errorf("Unexpected first summary %+v", sums[0])
	}
	if sums[5].N != 4 {
		t.Errorf("Expected 4 measured probes for S6, got %d", sums[5].N)
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestOpenAndRenderPNG(t *testing.T) {
	dir := t.TempDir()
	betas := writeFile(t, dir, "betas.csv", testMatrix)
	meta := writeFile(t, dir, "meta.tsv", strings.ReplaceAll(testMetadata, ",", "\t"))
	out := filepath.Join(dir, "charts")

	a, err := Open(context.Background(), betas, meta, WithRenderer(ageplot.PNGRenderer{Dir: out}), WithLogger(quiet))
	if err != nil {
		t.Fatal(err)
	}
	if a.NumProbes() != 6 || a.NumSamples() != 6 {
		t.Fatalf("Loaded %d probes and %d samples", a.NumProbes(), a.NumSamples())
	}

	if err := a.PlotAgainstAge("cgAge"); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"cgAge_linear.png", "cgAge_polynomial.png"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Error(err)
		}
	}
}

func TestOpenMissingFile(t *testing.T) {
	dir := t.TempDir()
	meta := writeFile(t, dir, "meta.csv", testMetadata)
	missing := filepath.Join(dir, "nope.csv")

	_, err := Open(context.Background(), missing, meta, WithLogger(quiet))

	var dle *dataset.DataLoadError
	if !errors.As(err, &dle) {
		t.Fatalf("Expected a DataLoadError, got %v", err)
	}
	if dle.Source != missing {
		t.Errorf("Expected source %s, got %s", missing, dle.Source)
	}
}

func TestOpenMalformedMetadata(t *testing.T) {
	dir := t.TempDir()
	betas := writeFile(t, dir, "betas.csv", testMatrix)
	meta := writeFile(t, dir, "meta.csv", "SampleID,Age\nS1,old\n")

	_, err := Open(context.Background(), betas, meta, WithLogger(quiet))

	var dle *dataset.DataLoadError
	if !errors.As(err, &dle) || dle.Source != meta {
		t.Fatalf("Expected a DataLoadError for %s, got %v", meta, err)
	}
}
