package writer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lkorpas/bslice/pkg/geom"
)

// squareLayer builds a closed unit-square layer at the given height.
func squareLayer(n int, z float64) geom.Layer {
	return geom.Layer{
		N: n,
		Z: z,
		Paths: []geom.Path{{
			{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
		}},
	}
}

// writeTwoLayers drives a writer through a full open/write/finish cycle and
// returns the produced file's contents.
func writeTwoLayers(t *testing.T, w LayerWriter, path string) string {
	t.Helper()
	if err := w.Open(path, 10, 10, 2); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := w.WriteLayer(squareLayer(1, 0)); err != nil {
		t.Fatalf("WriteLayer 1 failed: %v", err)
	}
	if err := w.WriteLayer(squareLayer(2, 5)); err != nil {
		t.Fatalf("WriteLayer 2 failed: %v", err)
	}
	if err := w.Finish(); err != nil {
		t.Fatalf("Finish failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	return string(data)
}

func TestSVGWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.svg")
	got := writeTwoLayers(t, &svgWriter{}, path)

	for _, want := range []string{
		"<svg",
		`id="layer-1"`,
		`id="layer-2"`,
		"</svg>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("svg output missing %q", want)
		}
	}
	// Two groups, one path each.
	if n := strings.Count(got, "<path"); n != 2 {
		t.Errorf("svg output has %d paths, want 2", n)
	}
}

func TestSVGPathData(t *testing.T) {
	p := geom.Path{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 0}}
	d := pathData(p)
	if d != "M0 0L10 0L0 0Z" {
		t.Errorf("pathData = %q", d)
	}

	open := geom.Path{{X: 1.5, Y: 2}, {X: 3, Y: 4}}
	d = pathData(open)
	if d != "M1.5 2L3 4" {
		t.Errorf("open pathData = %q", d)
	}
}

func TestPSWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ps")
	got := writeTwoLayers(t, &psWriter{}, path)

	for _, want := range []string{
		"%!PS-Adobe-3.0",
		"%%Pages: 2",
		"%%Page: 1 1",
		"%%Page: 2 2",
		"0 0 moveto",
		"closepath",
		"showpage",
		"%%EOF",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("ps output missing %q", want)
		}
	}
}

func TestDXFWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.dxf")
	got := writeTwoLayers(t, &dxfWriter{}, path)

	for _, want := range []string{
		"LAYER_1",
		"LAYER_2",
		"LWPOLYLINE",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("dxf output missing %q", want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"svg", "dxf", "ps"} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", name, err)
		}
		if f.Ext() != "."+name {
			t.Errorf("Ext() = %q, want %q", f.Ext(), "."+name)
		}
	}
	if _, err := ParseFormat("pdf"); err == nil {
		t.Error("ParseFormat accepted pdf")
	}
}

func TestNewReturnsWriterPerFormat(t *testing.T) {
	for _, f := range []Format{SVG, DXF, PS} {
		w, err := New(f)
		if err != nil {
			t.Errorf("New(%q) failed: %v", f, err)
		}
		if w == nil {
			t.Errorf("New(%q) returned nil writer", f)
		}
	}
	if _, err := New(Format("pdf")); err == nil {
		t.Error("New accepted unknown format")
	}
}
