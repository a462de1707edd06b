package slicer

import (
	"fmt"
	"io"
	"log"
	"math"

	"github.com/lkorpas/bslice/pkg/geom"
	"github.com/lkorpas/bslice/pkg/writer"
)

// Config carries everything the layering driver needs. It is the only
// configuration surface of the core: no package-level state, no global
// logger.
type Config struct {
	// OutPath is handed to the writer's Open call.
	OutPath string

	// Thickness is the plane step per layer. Must be positive.
	Thickness float64

	// Width and Height give the target draw area. Ignored when Scale
	// is set.
	Width, Height float64

	// Scale, when non-zero, overrides the fit computation with a fixed
	// uniform scale factor.
	Scale float64

	// Logger receives progress output. Nil silences the driver.
	Logger *log.Logger
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.New(io.Discard, "", 0)
}

// Run slices the facets from bottom to top and forwards each layer's
// stitched paths to w. The plane starts at the (post-transform) minimum
// Z of zero and advances by Thickness while it remains within the mesh;
// planes that cut nothing produce no layer. Processing is strictly
// sequential: each layer owns its segments and paths, and the only state
// crossing layer boundaries is the shrinking facet index.
func Run(cfg Config, facets []geom.Facet, w writer.LayerWriter) error {
	if cfg.Thickness <= 0 {
		return fmt.Errorf("slicer: layer thickness must be positive, got %g", cfg.Thickness)
	}
	logger := cfg.logger()

	fit, err := ScaleToFit(facets, cfg.Width, cfg.Height, cfg.Scale)
	if err != nil {
		return err
	}
	logger.Printf("scaled %d facets by %g to %g x %g, z extent %g",
		len(facets), fit.Scale, fit.Width, fit.Height, fit.MaxZ)

	ix := facetIndex{facets: IndexFacets(fit.Facets)}
	layers := int(math.Ceil(fit.MaxZ / cfg.Thickness))

	if err := w.Open(cfg.OutPath, fit.Width, fit.Height, layers); err != nil {
		return err
	}

	n := 1
	for z := 0.0; z <= fit.MaxZ; z += cfg.Thickness {
		ix.prune(z)
		segments := SliceAt(ix.candidates(), z)
		paths := Stitch(segments)
		if len(paths) == 0 {
			logger.Printf("plane at z=%g cut nothing, skipped", z)
			continue
		}
		logger.Printf("layer %d at z=%g: %d segment(s), %d path(s)",
			n, z, len(segments), len(paths))
		if err := w.WriteLayer(geom.Layer{N: n, Z: z, Paths: paths}); err != nil {
			return fmt.Errorf("slicer: writing layer %d: %w", n, err)
		}
		n++
	}

	if err := w.Finish(); err != nil {
		return err
	}
	logger.Printf("wrote %d layer(s) to %s", n-1, cfg.OutPath)
	return nil
}
