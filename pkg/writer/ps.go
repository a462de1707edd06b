package writer

import (
	"bufio"
	"fmt"
	"math"
	"os"

	"github.com/lkorpas/bslice/pkg/geom"
)

// psWriter emits DSC-conformant PostScript with one page per layer, so a
// stack of contours prints as a flip book of cross-sections.
type psWriter struct {
	f *os.File
	w *bufio.Writer
}

var _ LayerWriter = (*psWriter)(nil)

func (w *psWriter) Open(path string, width, height float64, layers int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writer: creating %s: %w", path, err)
	}
	w.f = f
	w.w = bufio.NewWriter(f)
	fmt.Fprintf(w.w, "%%!PS-Adobe-3.0\n")
	fmt.Fprintf(w.w, "%%%%BoundingBox: 0 0 %d %d\n", int(math.Ceil(width)), int(math.Ceil(height)))
	fmt.Fprintf(w.w, "%%%%Pages: %d\n", layers)
	fmt.Fprintf(w.w, "%%%%EndComments\n")
	return nil
}

func (w *psWriter) WriteLayer(layer geom.Layer) error {
	fmt.Fprintf(w.w, "%%%%Page: %d %d\n", layer.N, layer.N)
	fmt.Fprintf(w.w, "0.2 setlinewidth\n")
	for _, p := range layer.Paths {
		fmt.Fprintf(w.w, "newpath\n")
		for i, pt := range p {
			op := "lineto"
			if i == 0 {
				op = "moveto"
			}
			fmt.Fprintf(w.w, "%g %g %s\n", pt.X, pt.Y, op)
		}
		if p.Closed() {
			fmt.Fprintf(w.w, "closepath\n")
		}
		fmt.Fprintf(w.w, "stroke\n")
	}
	fmt.Fprintf(w.w, "showpage\n")
	return nil
}

func (w *psWriter) Finish() error {
	fmt.Fprintf(w.w, "%%%%EOF\n")
	if err := w.w.Flush(); err != nil {
		return fmt.Errorf("writer: flushing ps output: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("writer: closing ps output: %w", err)
	}
	return nil
}
