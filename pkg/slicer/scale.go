// Package slicer converts a facet collection into layered 2D contours:
// scale-to-fit transform, Z-ordered facet index, per-plane intersection,
// and segment stitching, driven layer by layer from the mesh bottom to
// its top.
package slicer

import (
	"fmt"

	"github.com/lkorpas/bslice/pkg/geom"
)

// DegenerateMeshError reports a mesh whose bounding box has zero extent
// on an axis, which makes the scale computation divide by zero.
type DegenerateMeshError struct {
	Axis string
}

func (e *DegenerateMeshError) Error() string {
	return fmt.Sprintf("slicer: degenerate mesh: zero extent on %s axis", e.Axis)
}

// Fit is the result of ScaleToFit: the resolved drawing area, the scaled
// Z extent (minimum Z is always zero after the transform), and the
// transformed facets.
type Fit struct {
	Width, Height float64
	MaxZ          float64
	Scale         float64
	Facets        []geom.Facet
}

// ScaleToFit uniformly scales and translates the facets so that they fit
// the requested width and height with all coordinates non-negative.
//
// When the model's X/Y aspect is orthogonal to the requested aspect, the
// requested width and height are swapped: the output can be rotated 90
// degrees, so a portrait model may fill a landscape target sideways.
//
// A non-zero scale overrides the fit computation and resolves the width
// and height to the scaled bounding-box extents. Otherwise the larger of
// width/xExtent and height/yExtent that still keeps both scaled extents
// inside the target wins.
//
// The input slice is not modified.
func ScaleToFit(facets []geom.Facet, width, height, scale float64) (*Fit, error) {
	bounds := geom.Bounds(facets)
	xsize, ysize, zsize := bounds.Dx(), bounds.Dy(), bounds.Dz()
	switch {
	case !(xsize > 0):
		return nil, &DegenerateMeshError{Axis: "X"}
	case !(ysize > 0):
		return nil, &DegenerateMeshError{Axis: "Y"}
	case !(zsize > 0):
		return nil, &DegenerateMeshError{Axis: "Z"}
	}

	if (width > height && xsize < ysize) || (height > width && xsize > ysize) {
		width, height = height, width
	}

	if scale != 0 {
		width, height = xsize*scale, ysize*scale
	} else {
		// Try the larger candidate first, fall back to the smaller.
		scale = width / xsize
		if other := height / ysize; other > scale {
			scale = other
		}
		if scale*xsize > width || scale*ysize > height {
			scale = width / xsize
			if other := height / ysize; other < scale {
				scale = other
			}
		}
	}

	scaled := make([]geom.Facet, len(facets))
	for i, f := range facets {
		for v, p := range f {
			scaled[i][v] = geom.Point3{
				X: (p.X - bounds.Min.X) * scale,
				Y: (p.Y - bounds.Min.Y) * scale,
				Z: (p.Z - bounds.Min.Z) * scale,
			}
		}
	}

	return &Fit{
		Width:  width,
		Height: height,
		MaxZ:   zsize * scale,
		Scale:  scale,
		Facets: scaled,
	}, nil
}
