package stl

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/lkorpas/bslice/pkg/geom"
)

const textCube = `solid cube
facet normal 0 0 -1
  outer loop
    vertex 0 0 0
    vertex 1 1 0
    vertex 1 0 0
  endloop
endfacet
facet normal 0 0 -1
  outer loop
    vertex 0 0 0
    vertex 0 1 0
    vertex 1 1 0
  endloop
endfacet
endsolid cube
`

func TestDecodeText(t *testing.T) {
	m, err := Decode(strings.NewReader(textCube))
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if m.Name != "cube" {
		t.Errorf("Name = %q, want %q", m.Name, "cube")
	}
	if len(m.Facets) != 2 {
		t.Fatalf("got %d facets, want 2", len(m.Facets))
	}
	want := geom.Facet{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}}
	if m.Facets[0] != want {
		t.Errorf("facet 0 = %v, want %v", m.Facets[0], want)
	}
}

func TestDecodeTextMissingEndsolid(t *testing.T) {
	src := strings.TrimSuffix(textCube, "endsolid cube\n")
	_, err := Decode(strings.NewReader(src))
	var merr *MalformedMeshError
	if !errors.As(err, &merr) {
		t.Fatalf("want MalformedMeshError, got %v", err)
	}
	if merr.Expected != `endsolid cube` {
		t.Errorf("Expected = %q, want %q", merr.Expected, "endsolid cube")
	}
}

func TestDecodeTextMismatchedName(t *testing.T) {
	src := strings.Replace(textCube, "endsolid cube", "endsolid box", 1)
	_, err := Decode(strings.NewReader(src))
	var merr *MalformedMeshError
	if !errors.As(err, &merr) {
		t.Fatalf("want MalformedMeshError, got %v", err)
	}
	if merr.Found != "endsolid box" {
		t.Errorf("Found = %q, want %q", merr.Found, "endsolid box")
	}
}

func TestDecodeTextBadVertex(t *testing.T) {
	src := strings.Replace(textCube, "vertex 1 0 0", "vortex 1 0 0", 1)
	_, err := Decode(strings.NewReader(src))
	var merr *MalformedMeshError
	if !errors.As(err, &merr) {
		t.Fatalf("want MalformedMeshError, got %v", err)
	}
	if merr.Expected != "vertex x y z" {
		t.Errorf("Expected = %q, want %q", merr.Expected, "vertex x y z")
	}
	if merr.Line != 6 {
		t.Errorf("Line = %d, want 6", merr.Line)
	}
}

func TestDecodeTextFourVertices(t *testing.T) {
	src := strings.Replace(textCube,
		"    vertex 1 0 0\n", "    vertex 1 0 0\n    vertex 2 0 0\n", 1)
	_, err := Decode(strings.NewReader(src))
	var merr *MalformedMeshError
	if !errors.As(err, &merr) {
		t.Fatalf("want MalformedMeshError, got %v", err)
	}
}

func TestBinaryRoundTrip(t *testing.T) {
	// Coordinates chosen to be exactly representable at float32.
	in := &Mesh{
		Name: "fixture",
		Facets: []geom.Facet{
			{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
			{{X: 0.5, Y: 0.25, Z: 8}, {X: -4, Y: 2, Z: 1}, {X: 3, Y: 3, Z: 3}},
			{{X: 10, Y: 10, Z: 10}, {X: 0, Y: 10, Z: 10}, {X: 10, Y: 0, Z: 10}},
		},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	out, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(out.Facets) != len(in.Facets) {
		t.Fatalf("got %d facets, want %d", len(out.Facets), len(in.Facets))
	}
	for i := range in.Facets {
		if out.Facets[i] != in.Facets[i] {
			t.Errorf("facet %d = %v, want %v", i, out.Facets[i], in.Facets[i])
		}
	}
}

func TestBinaryTruncated(t *testing.T) {
	in := &Mesh{
		Facets: []geom.Facet{
			{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
			{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}},
		},
	}
	var buf bytes.Buffer
	if err := Encode(&buf, in); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	short := buf.Bytes()[:buf.Len()-10]

	_, err := Decode(bytes.NewReader(short))
	var terr *TruncatedMeshError
	if !errors.As(err, &terr) {
		t.Fatalf("want TruncatedMeshError, got %v", err)
	}
	if terr.Want != 2 || terr.Got != 1 {
		t.Errorf("Want/Got = %d/%d, want 2/1", terr.Want, terr.Got)
	}
}

func TestBinaryTruncatedHeader(t *testing.T) {
	_, err := Decode(bytes.NewReader(make([]byte, 40)))
	var terr *TruncatedMeshError
	if !errors.As(err, &terr) {
		t.Fatalf("want TruncatedMeshError, got %v", err)
	}
}

func TestDecodeSniffsBinaryWithoutSolidPrefix(t *testing.T) {
	// A header full of NULs must not be mistaken for text.
	var buf bytes.Buffer
	if err := Encode(&buf, &Mesh{}); err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	m, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(m.Facets) != 0 {
		t.Fatalf("got %d facets, want 0", len(m.Facets))
	}
}
