// Package kernel defines the abstract geometry kernel interface used for
// procedural models. An implementation provides solid primitives, boolean
// operations, and tessellation into the facet form the slicing pipeline
// consumes, so a scripted solid slices exactly like a loaded STL file.
package kernel

import "github.com/lkorpas/bslice/pkg/geom"

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Primitives
	Box(x, y, z float64) Solid
	Cylinder(height, radius float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Difference(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// ToFacets tessellates the solid's surface into slicer-ready
	// triangles.
	ToFacets(s Solid) ([]geom.Facet, error)
}
