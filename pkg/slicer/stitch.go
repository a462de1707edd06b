package slicer

import "github.com/lkorpas/bslice/pkg/geom"

// segmentTable is the stitcher's endpoint registry: a map from quantized
// endpoint key to the indices of the pending segments touching that
// endpoint. A segment is registered under both its endpoints until it is
// consumed, and consuming it removes both registrations, so a used
// segment is unreachable from either end. Indices into the segment slice
// stand in for the segments themselves; nothing aliases live pointers.
type segmentTable struct {
	segs    []geom.Segment
	buckets map[string][]int
}

func newSegmentTable(segs []geom.Segment) *segmentTable {
	t := &segmentTable{
		segs:    segs,
		buckets: make(map[string][]int, 2*len(segs)),
	}
	for i, s := range segs {
		t.register(s.A.Key(), i)
		t.register(s.B.Key(), i)
	}
	return t
}

func (t *segmentTable) register(key string, i int) {
	t.buckets[key] = append(t.buckets[key], i)
}

// unregister removes one registration of segment i from the bucket at
// key, deleting the bucket when it empties.
func (t *segmentTable) unregister(key string, i int) {
	b := t.buckets[key]
	for j, idx := range b {
		if idx == i {
			b[j] = b[len(b)-1]
			b = b[:len(b)-1]
			break
		}
	}
	if len(b) == 0 {
		delete(t.buckets, key)
	} else {
		t.buckets[key] = b
	}
}

// empty reports whether any segment is still pending.
func (t *segmentTable) empty() bool {
	return len(t.buckets) == 0
}

// seed removes an arbitrary pending segment and returns it. Which one is
// picked depends on map iteration order; any choice is valid, so the
// randomness only affects path enumeration order, not path content.
func (t *segmentTable) seed() (geom.Segment, bool) {
	for key, b := range t.buckets {
		i := b[len(b)-1]
		s := t.segs[i]
		t.unregister(key, i)
		other := s.A.Key()
		if other == key {
			other = s.B.Key()
		}
		t.unregister(other, i)
		return s, true
	}
	return geom.Segment{}, false
}

// next consumes a pending segment touching p and returns its other
// endpoint. ok is false when no continuation exists: the chain is
// exhausted, either because a contour closed and was fully consumed or
// because the mesh left a genuinely open end. When several segments
// share the endpoint (a branching vertex from a non-manifold or
// self-touching cross-section) the most recently registered one wins;
// no geometric tie-break is attempted.
func (t *segmentTable) next(p geom.Point2) (geom.Point2, bool) {
	key := p.Key()
	b, ok := t.buckets[key]
	if !ok {
		return geom.Point2{}, false
	}
	i := b[len(b)-1]
	s := t.segs[i]
	t.unregister(key, i)

	other := s.B
	if s.B.Key() == key && s.A.Key() != key {
		other = s.A
	}
	t.unregister(other.Key(), i)
	return other, true
}

// Stitch reassembles an unordered multiset of segments into paths by
// matching coincident endpoints. Each path is seeded with an arbitrary
// pending segment and grown from its open end until no continuation
// remains. Manifold cross-sections, where every endpoint touches exactly
// two segments, come out as closed cycles (the last point repeats the
// first); anything else is emitted as-is, open.
func Stitch(segs []geom.Segment) []geom.Path {
	t := newSegmentTable(segs)

	var paths []geom.Path
	for !t.empty() {
		s, ok := t.seed()
		if !ok {
			break
		}
		path := geom.Path{s.A, s.B}
		for {
			p, ok := t.next(path[len(path)-1])
			if !ok {
				break
			}
			path = append(path, p)
		}
		paths = append(paths, path)
	}
	return paths
}
