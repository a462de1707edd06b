package writer

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/entity"

	"github.com/lkorpas/bslice/pkg/geom"
)

// dxfWriter buffers the whole drawing and saves it on Finish, since the
// DXF library writes complete documents. Each slice layer becomes a DXF
// layer named LAYER_<n> holding one lightweight polyline per path.
type dxfWriter struct {
	path    string
	drawing *drawing.Drawing
}

var _ LayerWriter = (*dxfWriter)(nil)

func (w *dxfWriter) Open(path string, width, height float64, layers int) error {
	w.path = path
	w.drawing = dxf.NewDrawing()
	w.drawing.Header().LtScale = 1.0
	return nil
}

func (w *dxfWriter) WriteLayer(layer geom.Layer) error {
	name := fmt.Sprintf("LAYER_%d", layer.N)
	if _, err := w.drawing.AddLayer(name, color.White, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("writer: adding dxf layer %s: %w", name, err)
	}
	for _, p := range layer.Paths {
		lwp := entity.NewLwPolyline(len(p))
		for i, pt := range p {
			lwp.Vertices[i] = []float64{pt.X, pt.Y}
		}
		w.drawing.AddEntity(lwp)
	}
	return nil
}

func (w *dxfWriter) Finish() error {
	if err := w.drawing.SaveAs(w.path); err != nil {
		return fmt.Errorf("writer: saving dxf output: %w", err)
	}
	return nil
}
