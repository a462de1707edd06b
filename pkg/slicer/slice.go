package slicer

import "github.com/lkorpas/bslice/pkg/geom"

// SliceAt intersects every candidate facet with the horizontal plane at
// height z and returns the unordered segments of the cross-section.
//
// A facet contributes exactly one segment when its vertices straddle the
// plane (some strictly above, some at-or-below). Facets entirely on one
// side contribute nothing: whole-below facets are left for the index to
// prune, whole-above facets have not been reached yet. Segments whose
// endpoints quantize to the same key are the footprint of a vertex lying
// numerically on the plane; they are discarded here, silently, so the
// stitcher never sees zero-length edges.
func SliceAt(candidates []IndexedFacet, z float64) []geom.Segment {
	var segments []geom.Segment
	for _, c := range candidates {
		if c.MinZ > z {
			continue
		}
		above, below := splitFacet(c.Facet, z)
		if len(above) == 0 || len(below) == 0 {
			continue
		}
		// 1 above x 2 below or 2 above x 1 below: always two points.
		var pts [2]geom.Point2
		n := 0
		for _, a := range above {
			for _, b := range below {
				pts[n] = planeIntersect(a, b, z)
				n++
			}
		}
		if pts[0].Key() == pts[1].Key() {
			continue
		}
		segments = append(segments, geom.Segment{A: pts[0], B: pts[1]})
	}
	return segments
}

// splitFacet partitions the facet's vertices into strictly-above and
// at-or-below sets for the plane at z. The strict split guarantees
// planeIntersect never divides by zero: an edge with both ends in the
// same set is never interpolated.
func splitFacet(f geom.Facet, z float64) (above, below []geom.Point3) {
	for _, p := range f {
		if p.Z > z {
			above = append(above, p)
		} else {
			below = append(below, p)
		}
	}
	return above, below
}

// planeIntersect returns where the edge from a (above) to b (below)
// crosses the plane at z, by linear interpolation on X and Y
// independently.
func planeIntersect(a, b geom.Point3, z float64) geom.Point2 {
	t := (z - b.Z) / (a.Z - b.Z)
	return geom.Point2{
		X: b.X + t*(a.X-b.X),
		Y: b.Y + t*(a.Y-b.Y),
	}
}
