package stl

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/lkorpas/bslice/pkg/geom"
)

// textParser scans a text format mesh line by line, tracking the current
// line number for error reporting.
type textParser struct {
	s    *bufio.Scanner
	line int
}

// next returns the next line, trimmed. ok is false at end of stream.
func (p *textParser) next() (text string, ok bool) {
	if !p.s.Scan() {
		p.line++
		return "", false
	}
	p.line++
	return strings.TrimSpace(p.s.Text()), true
}

// fail builds a MalformedMeshError for the current line.
func (p *textParser) fail(expected, found string) error {
	return &MalformedMeshError{Line: p.line, Expected: expected, Found: found}
}

// decodeText parses the text grammar:
//
//	solid <name>
//	facet ...
//	  outer loop
//	    vertex x y z   (exactly three)
//	  endloop
//	endfacet
//	...
//	endsolid <name>
//
// The closing name must match the opening name exactly.
func decodeText(r io.Reader) (*Mesh, error) {
	p := &textParser{s: bufio.NewScanner(r)}

	header, ok := p.next()
	fields := strings.Fields(header)
	if !ok || len(fields) == 0 || fields[0] != "solid" {
		return nil, p.fail("solid <name>", header)
	}
	name := strings.Join(fields[1:], " ")

	m := &Mesh{Name: name}
	trailer := "endsolid " + name
	for {
		line, ok := p.next()
		if !ok {
			return nil, p.fail(trailer, "")
		}
		if strings.HasPrefix(line, "facet") {
			f, err := p.readFacet()
			if err != nil {
				return nil, err
			}
			m.Facets = append(m.Facets, f)
			continue
		}
		if line != trailer {
			return nil, p.fail(trailer, line)
		}
		return m, nil
	}
}

// readFacet consumes one facet block after its "facet ..." line.
func (p *textParser) readFacet() (geom.Facet, error) {
	var f geom.Facet

	line, ok := p.next()
	if !ok || line != "outer loop" {
		return f, p.fail("outer loop", line)
	}

	n := 0
	for {
		line, ok = p.next()
		if !ok {
			return f, p.fail("endloop", line)
		}
		if line == "endloop" {
			break
		}
		v, err := p.parseVertex(line)
		if err != nil {
			return f, err
		}
		if n == 3 {
			return f, p.fail("endloop", line)
		}
		f[n] = v
		n++
	}
	if n != 3 {
		return f, p.fail("vertex x y z", line)
	}

	line, ok = p.next()
	if !ok || line != "endfacet" {
		return f, p.fail("endfacet", line)
	}
	return f, nil
}

// parseVertex parses a "vertex x y z" line.
func (p *textParser) parseVertex(line string) (geom.Point3, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 || fields[0] != "vertex" {
		return geom.Point3{}, p.fail("vertex x y z", line)
	}
	var coords [3]float64
	for i, s := range fields[1:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return geom.Point3{}, p.fail("vertex x y z", line)
		}
		coords[i] = v
	}
	return geom.Point3{X: coords[0], Y: coords[1], Z: coords[2]}, nil
}
