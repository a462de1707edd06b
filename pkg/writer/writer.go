// Package writer provides the output encoders that consume finished
// layers. Each encoder implements LayerWriter; the slicing core drives
// the interface and never sees a concrete format.
package writer

import (
	"fmt"

	"github.com/lkorpas/bslice/pkg/geom"
)

// LayerWriter is the sink for sliced layers. Open is called once before
// any layer, WriteLayer once per layer in ascending height order, and
// Finish once to flush and close the output.
type LayerWriter interface {
	Open(path string, width, height float64, layers int) error
	WriteLayer(layer geom.Layer) error
	Finish() error
}

// Format selects an output encoder.
type Format string

const (
	SVG Format = "svg"
	DXF Format = "dxf"
	PS  Format = "ps"
)

// Ext returns the file extension conventionally used for the format.
func (f Format) Ext() string {
	return "." + string(f)
}

// ParseFormat converts a user-supplied format name into a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case SVG, DXF, PS:
		return Format(s), nil
	}
	return "", fmt.Errorf("writer: unknown output format %q (want svg, dxf, or ps)", s)
}

// New returns a fresh, unopened writer for the format.
func New(f Format) (LayerWriter, error) {
	switch f {
	case SVG:
		return &svgWriter{}, nil
	case DXF:
		return &dxfWriter{}, nil
	case PS:
		return &psWriter{}, nil
	}
	return nil, fmt.Errorf("writer: unknown output format %q", f)
}
