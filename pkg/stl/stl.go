// Package stl reads and writes STL triangle meshes. Both the line-oriented
// text variant and the fixed-record binary variant are supported; the
// format is detected by sniffing the first bytes of the stream.
package stl

import (
	"bufio"
	"fmt"
	"io"

	"github.com/lkorpas/bslice/pkg/geom"
)

// Mesh is a loaded STL solid: a flat, unordered collection of facets.
// Facet order carries no meaning for any downstream stage.
type Mesh struct {
	Name   string
	Facets []geom.Facet
}

// MalformedMeshError reports an unexpected token or structure in a text
// format mesh. It carries enough context to diagnose the offending line.
type MalformedMeshError struct {
	Line     int
	Expected string
	Found    string
}

func (e *MalformedMeshError) Error() string {
	return fmt.Sprintf("stl: malformed mesh at line %d: expected %q, found %q",
		e.Line, e.Expected, e.Found)
}

// TruncatedMeshError reports a binary stream that ended before the facet
// count declared in its header was read. Want < 0 means the stream ended
// inside the header itself.
type TruncatedMeshError struct {
	Want int
	Got  int
}

func (e *TruncatedMeshError) Error() string {
	if e.Want < 0 {
		return "stl: truncated binary mesh: stream ended inside the header"
	}
	return fmt.Sprintf("stl: truncated binary mesh: read %d of %d facets", e.Got, e.Want)
}

// Decode reads a mesh in either STL variant. A stream beginning with the
// text token "solid" is parsed as the text format, anything else as the
// binary format. Binary payloads that happen to begin with those five
// bytes are misdetected as text; this is a known limitation of the
// format's own sniffing heuristic, which defines no stricter signature.
func Decode(r io.Reader) (*Mesh, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(textMagic))
	if err != nil {
		// Too short to even hold the text magic: try binary, which
		// reports the truncation with context.
		return decodeBinary(br)
	}
	if string(head) == textMagic {
		return decodeText(br)
	}
	return decodeBinary(br)
}

const textMagic = "solid"
