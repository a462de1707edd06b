package stl

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/lkorpas/bslice/pkg/geom"
)

var le = binary.LittleEndian

// recordSize is the fixed size of one binary facet record: a 12-byte
// normal, three 12-byte vertices, and a 2-byte attribute field.
const recordSize = 50

// decodeBinary parses the binary format: an 80-byte header (ignored), a
// little-endian uint32 facet count, then count fixed-size records. The
// normal and attribute fields of each record are ignored. Exactly count
// facets must be present; anything shorter is a truncation error.
func decodeBinary(r io.Reader) (*Mesh, error) {
	var header [80]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, &TruncatedMeshError{Want: -1}
	}

	var count uint32
	if err := binary.Read(r, le, &count); err != nil {
		return nil, &TruncatedMeshError{Want: -1}
	}

	m := &Mesh{
		Name:   strings.TrimRight(string(header[:]), "\x00 "),
		Facets: make([]geom.Facet, 0, count),
	}

	var buf [recordSize]byte
	for i := 0; i < int(count); i++ {
		if _, err := io.ReadFull(r, buf[:]); err != nil {
			return nil, &TruncatedMeshError{Want: int(count), Got: i}
		}
		var f geom.Facet
		for v := 0; v < 3; v++ {
			const start = 12 // skip the normal
			off := start + 12*v
			f[v] = geom.Point3{
				X: float64(math.Float32frombits(le.Uint32(buf[off:]))),
				Y: float64(math.Float32frombits(le.Uint32(buf[off+4:]))),
				Z: float64(math.Float32frombits(le.Uint32(buf[off+8:]))),
			}
		}
		m.Facets = append(m.Facets, f)
	}
	return m, nil
}

// Encode writes the mesh in the binary format. Vertex coordinates are
// stored at single precision, as the format requires; each record carries
// the facet's unit face normal and a zero attribute field.
func Encode(w io.Writer, m *Mesh) error {
	var header [80]byte
	copy(header[:], m.Name)
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("stl: writing header: %w", err)
	}
	if err := binary.Write(w, le, uint32(len(m.Facets))); err != nil {
		return fmt.Errorf("stl: writing facet count: %w", err)
	}

	var buf [recordSize]byte
	for i, f := range m.Facets {
		n := faceNormal(f)
		putVec(buf[0:], n[0], n[1], n[2])
		for v := 0; v < 3; v++ {
			putVec(buf[12+12*v:], f[v].X, f[v].Y, f[v].Z)
		}
		buf[48], buf[49] = 0, 0
		if _, err := w.Write(buf[:]); err != nil {
			return fmt.Errorf("stl: writing facet %d: %w", i, err)
		}
	}
	return nil
}

// putVec stores three float64s as little-endian float32s.
func putVec(b []byte, x, y, z float64) {
	le.PutUint32(b[0:], math.Float32bits(float32(x)))
	le.PutUint32(b[4:], math.Float32bits(float32(y)))
	le.PutUint32(b[8:], math.Float32bits(float32(z)))
}

// faceNormal returns the unit normal of the facet, or the zero vector for
// a degenerate triangle.
func faceNormal(f geom.Facet) [3]float64 {
	ux, uy, uz := f[1].X-f[0].X, f[1].Y-f[0].Y, f[1].Z-f[0].Z
	vx, vy, vz := f[2].X-f[0].X, f[2].Y-f[0].Y, f[2].Z-f[0].Z
	nx := uy*vz - uz*vy
	ny := uz*vx - ux*vz
	nz := ux*vy - uy*vx
	mag := math.Sqrt(nx*nx + ny*ny + nz*nz)
	if mag == 0 {
		return [3]float64{}
	}
	return [3]float64{nx / mag, ny / mag, nz / mag}
}
