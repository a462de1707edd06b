// Package geom defines the value types shared by the slicing pipeline:
// 3D facets on the input side, 2D segments, paths and layers on the
// output side, and the coordinate quantization key that ties the two
// halves of the pipeline together.
package geom

import (
	"math"
	"strconv"
)

// Point3 is a point in 3D space. It has no identity beyond its coordinates.
type Point3 struct {
	X, Y, Z float64
}

// Point2 is a point in the slicing plane. It carries no Z because it lies
// exactly on the plane that produced it.
type Point2 struct {
	X, Y float64
}

// Key returns the quantization key for the point: both coordinates
// formatted to 10 significant digits, comma-joined. Two endpoints are
// considered the same point exactly when their keys are equal. The plane
// slicer's degenerate-segment filter and the path stitcher's endpoint
// registry both depend on this function, so they always agree on which
// points coincide.
func (p Point2) Key() string {
	b := make([]byte, 0, 48)
	b = strconv.AppendFloat(b, p.X, 'g', 10, 64)
	b = append(b, ',')
	b = strconv.AppendFloat(b, p.Y, 'g', 10, 64)
	return string(b)
}

// Facet is a triangular surface element: exactly three vertices.
// Degenerate (collinear) triangles are tolerated; they contribute no or
// collapsed segments during slicing.
type Facet [3]Point3

// MinZ returns the smallest vertex Z of the facet.
func (f Facet) MinZ() float64 {
	return math.Min(f[0].Z, math.Min(f[1].Z, f[2].Z))
}

// MaxZ returns the largest vertex Z of the facet.
func (f Facet) MaxZ() float64 {
	return math.Max(f[0].Z, math.Max(f[1].Z, f[2].Z))
}

// Segment is a pair of plane-intersection endpoints. Segments are created
// fresh for each layer and never persist across layers.
type Segment struct {
	A, B Point2
}

// Path is an ordered chain of 2D points reconstructed from intersection
// segments. A path from a manifold cross-section revisits its first point
// at the end; open chains from imperfect meshes simply end where
// continuations ran out.
type Path []Point2

// Closed reports whether the first and last point of the path resolve to
// the same quantization key.
func (p Path) Closed() bool {
	if len(p) < 2 {
		return false
	}
	return p[0].Key() == p[len(p)-1].Key()
}

// Layer is the cross-section of a mesh at one plane height.
type Layer struct {
	N     int     // 1-based layer index
	Z     float64 // plane height
	Paths []Path
}

// Box is an axis-aligned bounding box accumulated over points.
type Box struct {
	Min, Max Point3
}

// NewBox returns an empty box that any Extend will replace.
func NewBox() Box {
	return Box{
		Min: Point3{math.Inf(1), math.Inf(1), math.Inf(1)},
		Max: Point3{math.Inf(-1), math.Inf(-1), math.Inf(-1)},
	}
}

// Extend grows the box to contain p.
func (b *Box) Extend(p Point3) {
	b.Min.X = math.Min(b.Min.X, p.X)
	b.Min.Y = math.Min(b.Min.Y, p.Y)
	b.Min.Z = math.Min(b.Min.Z, p.Z)
	b.Max.X = math.Max(b.Max.X, p.X)
	b.Max.Y = math.Max(b.Max.Y, p.Y)
	b.Max.Z = math.Max(b.Max.Z, p.Z)
}

// Dx returns the X extent of the box.
func (b Box) Dx() float64 { return b.Max.X - b.Min.X }

// Dy returns the Y extent of the box.
func (b Box) Dy() float64 { return b.Max.Y - b.Min.Y }

// Dz returns the Z extent of the box.
func (b Box) Dz() float64 { return b.Max.Z - b.Min.Z }

// Bounds returns the bounding box of a facet collection.
func Bounds(facets []Facet) Box {
	b := NewBox()
	for _, f := range facets {
		for _, v := range f {
			b.Extend(v)
		}
	}
	return b
}
