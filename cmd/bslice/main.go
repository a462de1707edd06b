// Command bslice slices a 3D model into stacked 2D layer outlines.
//
// The model comes from either an STL file (-in) or a Lisp model script
// (-script); the layer outlines go to an SVG, DXF, or PostScript file.
//
//	bslice -in part.stl -thickness 0.5 -out part.svg
//	bslice -script bracket.lisp -format dxf -thickness 1
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/lkorpas/bslice/pkg/engine"
	"github.com/lkorpas/bslice/pkg/geom"
	"github.com/lkorpas/bslice/pkg/kernel/sdfx"
	"github.com/lkorpas/bslice/pkg/slicer"
	"github.com/lkorpas/bslice/pkg/stl"
	"github.com/lkorpas/bslice/pkg/writer"
)

func main() {
	var (
		inPath     = flag.String("in", "", "STL file to slice")
		scriptPath = flag.String("script", "", "Lisp model script to slice")
		outPath    = flag.String("out", "", "output file (default: input name with the format's extension)")
		formatName = flag.String("format", "", "output format: svg, dxf, or ps (default: from -out extension, else svg)")
		thickness  = flag.Float64("thickness", 1.0, "layer thickness")
		width      = flag.Float64("width", 200, "target draw area width")
		height     = flag.Float64("height", 200, "target draw area height")
		scale      = flag.Float64("scale", 0, "fixed scale factor (overrides -width/-height fitting)")
		verbose    = flag.Bool("v", false, "log per-layer progress")
		quiet      = flag.Bool("q", false, "suppress all output except errors")
	)
	flag.Parse()

	if err := run(*inPath, *scriptPath, *outPath, *formatName,
		*thickness, *width, *height, *scale, *verbose, *quiet); err != nil {
		fmt.Fprintf(os.Stderr, "bslice: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, scriptPath, outPath, formatName string,
	thickness, width, height, scale float64, verbose, quiet bool) error {

	if (inPath == "") == (scriptPath == "") {
		return fmt.Errorf("exactly one of -in or -script is required")
	}

	logger := newLogger(quiet)

	format, outPath, err := resolveOutput(inPath, scriptPath, outPath, formatName)
	if err != nil {
		return err
	}

	var facets []geom.Facet
	if inPath != "" {
		facets, err = loadSTL(inPath, logger)
	} else {
		facets, err = loadScript(scriptPath, logger)
	}
	if err != nil {
		return err
	}

	w, err := writer.New(format)
	if err != nil {
		return err
	}

	cfg := slicer.Config{
		OutPath:   outPath,
		Thickness: thickness,
		Width:     width,
		Height:    height,
		Scale:     scale,
	}
	if verbose {
		cfg.Logger = logger
	}
	if err := slicer.Run(cfg, facets, w); err != nil {
		return err
	}
	logger.Printf("sliced to %s", outPath)
	return nil
}

// newLogger maps the verbosity flags to a logger sink. Quiet wins.
func newLogger(quiet bool) *log.Logger {
	if quiet {
		return log.New(io.Discard, "", 0)
	}
	return log.New(os.Stderr, "", 0)
}

// resolveOutput settles the output format and path from whichever of -out
// and -format the user gave. The format falls back to the -out extension,
// then to SVG; the path falls back to the input name with the format's
// extension.
func resolveOutput(inPath, scriptPath, outPath, formatName string) (writer.Format, string, error) {
	var format writer.Format
	switch {
	case formatName != "":
		f, err := writer.ParseFormat(formatName)
		if err != nil {
			return "", "", err
		}
		format = f
	case outPath != "":
		ext := strings.TrimPrefix(filepath.Ext(outPath), ".")
		f, err := writer.ParseFormat(strings.ToLower(ext))
		if err != nil {
			return "", "", fmt.Errorf("cannot infer format from %q: %w", outPath, err)
		}
		format = f
	default:
		format = writer.SVG
	}

	if outPath == "" {
		src := inPath
		if src == "" {
			src = scriptPath
		}
		base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		outPath = base + format.Ext()
	}
	return format, outPath, nil
}

// loadSTL reads and decodes an STL mesh file.
func loadSTL(path string, logger *log.Logger) ([]geom.Facet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mesh, err := stl.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	logger.Printf("loaded %q: %d facets", mesh.Name, len(mesh.Facets))
	return mesh.Facets, nil
}

// loadScript evaluates a Lisp model script and tessellates the resulting
// solid.
func loadScript(path string, logger *log.Logger) ([]geom.Facet, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	k := sdfx.New()
	eng := engine.NewEngine(k)
	solid, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		return nil, fmt.Errorf("evaluating %s: %w", path, err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			logger.Printf("%s: %s", path, e.Error())
		}
		return nil, fmt.Errorf("%s: %d script error(s)", path, len(evalErrs))
	}

	facets, err := k.ToFacets(solid)
	if err != nil {
		return nil, fmt.Errorf("tessellating %s: %w", path, err)
	}
	logger.Printf("evaluated %s: %d facets", path, len(facets))
	return facets, nil
}
