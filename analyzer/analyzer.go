// Package analyzer answers exploratory questions about a methylation matrix
// and its sample metadata: which probes are stable, which differ between two
// groups, and how probes track chronological age.
package analyzer

import (
	"context"
	"errors"
	"io"
	"log"

	"cloud.google.com/go/storage"
	"github.com/carbocation/methylage"
	"github.com/carbocation/methylage/ageplot"
	"github.com/carbocation/methylage/dataset"
)

const (
	DefaultStableThreshold = 0.01
	DefaultPValueThreshold = 0.05
)

// Analyzer owns a methylation matrix and its metadata. Preprocess is the only
// method that modifies the matrix. An Analyzer is meant to be used by one
// caller at a time.
type Analyzer struct {
	matrix   *dataset.Matrix
	metadata *dataset.Metadata

	renderer ageplot.Renderer
	log      *log.Logger
}

type options struct {
	layout   dataset.Layout
	renderer ageplot.Renderer
	client   *storage.Client
	logger   *log.Logger
}

type Option func(*options)

// WithLayout sets the column names used to read both tables. Only Open
// consults it.
func WithLayout(layout dataset.Layout) Option {
	return func(o *options) { o.layout = layout }
}

// WithRenderer sets where charts go. By default they are written as PNG files
// in the working directory.
func WithRenderer(r ageplot.Renderer) Option {
	return func(o *options) { o.renderer = r }
}

// WithStorageClient allows Open to read gs:// paths.
func WithStorageClient(client *storage.Client) Option {
	return func(o *options) { o.client = client }
}

func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) options {
	o := options{
		layout:   dataset.Layouts[dataset.DefaultLayout],
		renderer: ageplot.PNGRenderer{Dir: "."},
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// New wraps tables that are already in memory.
func New(m *dataset.Matrix, md *dataset.Metadata, opts ...Option) *Analyzer {
	o := newOptions(opts)

	a := &Analyzer{
		matrix:   m,
		metadata: md,
		renderer: o.renderer,
		log:      o.logger,
	}

	unmatched := 0
	for _, s := range m.Samples {
		if _, exists := md.Sample(s); !exists {
			unmatched++
		}
	}
	if unmatched > 0 {
		a.log.Printf("%d of %d methylation samples have no metadata and will be ignored in age and group comparisons\n", unmatched, len(m.Samples))
	}

	return a
}

// Open loads both tables fully into memory. Any failure to read or parse
// either source is a *dataset.DataLoadError naming the path.
func Open(ctx context.Context, methylationPath, metadataPath string, opts ...Option) (*Analyzer, error) {
	o := newOptions(opts)

	rc, err := openSource(ctx, methylationPath, o.client)
	if err != nil {
		return nil, err
	}
	m, err := dataset.LoadMatrix(rc, o.layout)
	rc.Close()
	if err != nil {
		return nil, relabel(err, methylationPath)
	}

	rc, err = openSource(ctx, metadataPath, o.client)
	if err != nil {
		return nil, err
	}
	md, err := dataset.LoadMetadata(rc, o.layout)
	rc.Close()
	if err != nil {
		return nil, relabel(err, metadataPath)
	}

	o.logger.Printf("Loaded %d probes x %d samples from %s and %d metadata rows from %s\n", len(m.Probes), len(m.Samples), methylationPath, len(md.Samples), metadataPath)

	return New(m, md, opts...), nil
}

func openSource(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	rc, err := methylage.Open(ctx, path, client)
	if err != nil {
		return nil, &dataset.DataLoadError{Source: path, Err: err}
	}

	return rc, nil
}

func relabel(err error, path string) error {
	var dle *dataset.DataLoadError
	if errors.As(err, &dle) {
		dle.Source = path
	}

	return err
}

func (a *Analyzer) NumProbes() int {
	return len(a.matrix.Probes)
}

func (a *Analyzer) NumSamples() int {
	return len(a.matrix.Samples)
}

// ProbeIDs lists probes in matrix order.
func (a *Analyzer) ProbeIDs() []string {
	out := make([]string, 0, len(a.matrix.Probes))
	for _, p := range a.matrix.Probes {
		out = append(out, p.ID)
	}

	return out
}
