package ageplot

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"
)

// Renderer consumes finished charts. Name is a filesystem-safe identifier
// such as "cg00000029_linear".
type Renderer interface {
	Render(name string, c *chart.Chart) error
}

// PNGRenderer writes each chart to Dir/<name>.png.
type PNGRenderer struct {
	Dir string
}

func (p PNGRenderer) Render(name string, c *chart.Chart) error {
	buffer := bytes.NewBuffer([]byte{})
	if err := c.Render(chart.PNG, buffer); err != nil {
		return pfx.Err(err)
	}

	dir := p.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pfx.Err(err)
	}

	return pfx.Err(os.WriteFile(filepath.Join(dir, SafeName(name)+".png"), buffer.Bytes(), 0o644))
}

var unsafeChars = strings.NewReplacer("/", "_", "\\", "_", " ", "_", ":", "_")

// SafeName makes a probe identifier usable as a file name.
func SafeName(name string) string {
	return unsafeChars.Replace(name)
}
