package writer

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/lkorpas/bslice/pkg/geom"
)

// svgWriter emits one SVG document with a <g> element per layer. Layers
// are stacked in document order; a viewer (or a downstream tool) can show
// or extract them individually by id.
type svgWriter struct {
	f      *os.File
	canvas *svg.SVG
}

var _ LayerWriter = (*svgWriter)(nil)

const svgPathStyle = `fill="none" stroke="black" stroke-width="0.2"`

func (w *svgWriter) Open(path string, width, height float64, layers int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writer: creating %s: %w", path, err)
	}
	w.f = f
	w.canvas = svg.New(f)
	w.canvas.Start(int(math.Ceil(width)), int(math.Ceil(height)))
	return nil
}

func (w *svgWriter) WriteLayer(layer geom.Layer) error {
	w.canvas.Gid(fmt.Sprintf("layer-%d", layer.N))
	for _, p := range layer.Paths {
		w.canvas.Path(pathData(p), svgPathStyle)
	}
	w.canvas.Gend()
	return nil
}

func (w *svgWriter) Finish() error {
	w.canvas.End()
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("writer: closing svg output: %w", err)
	}
	return nil
}

// pathData renders a path as SVG path data, keeping full float precision
// (svgo's shape helpers take integer coordinates).
func pathData(p geom.Path) string {
	var b strings.Builder
	for i, pt := range p {
		if i == 0 {
			b.WriteByte('M')
		} else {
			b.WriteByte('L')
		}
		b.WriteString(strconv.FormatFloat(pt.X, 'g', -1, 64))
		b.WriteByte(' ')
		b.WriteString(strconv.FormatFloat(pt.Y, 'g', -1, 64))
	}
	if p.Closed() {
		b.WriteByte('Z')
	}
	return b.String()
}
