package slicer

import (
	"sort"

	"github.com/lkorpas/bslice/pkg/geom"
)

// IndexedFacet annotates a facet with its precomputed vertical extent.
// The slicing loop sorts and prunes on MaxZ and skips on MinZ without
// revisiting the vertices.
type IndexedFacet struct {
	MaxZ, MinZ float64
	Facet      geom.Facet
}

// IndexFacets builds the Z-ordered facet index: ascending by maximum
// vertex Z, ties broken by minimum Z. The ordering is what makes prefix
// pruning safe — once the plane has passed a facet's maximum Z, it has
// passed every earlier facet's too.
func IndexFacets(facets []geom.Facet) []IndexedFacet {
	indexed := make([]IndexedFacet, len(facets))
	for i, f := range facets {
		indexed[i] = IndexedFacet{MaxZ: f.MaxZ(), MinZ: f.MinZ(), Facet: f}
	}
	sort.SliceStable(indexed, func(i, j int) bool {
		if indexed[i].MaxZ != indexed[j].MaxZ {
			return indexed[i].MaxZ < indexed[j].MaxZ
		}
		return indexed[i].MinZ < indexed[j].MinZ
	})
	return indexed
}

// facetIndex is a cursor over the sorted index. Pruning only ever drops a
// leading run, so it is a slice re-head, not a data structure update.
type facetIndex struct {
	facets []IndexedFacet
}

// prune drops every leading facet whose maximum Z is strictly below z.
// Because z is non-decreasing across layers, a dropped facet can never
// intersect this or any later plane.
func (ix *facetIndex) prune(z float64) {
	i := 0
	for i < len(ix.facets) && ix.facets[i].MaxZ < z {
		i++
	}
	ix.facets = ix.facets[i:]
}

// candidates returns the facets still in play.
func (ix *facetIndex) candidates() []IndexedFacet {
	return ix.facets
}
