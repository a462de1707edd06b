package main

import (
	"testing"

	"github.com/lkorpas/bslice/pkg/writer"
)

func TestResolveOutput(t *testing.T) {
	tests := []struct {
		name       string
		in, script string
		out        string
		format     string
		wantFmt    writer.Format
		wantPath   string
		wantErr    bool
	}{
		{
			name:     "defaults to svg named after input",
			in:       "parts/widget.stl",
			wantFmt:  writer.SVG,
			wantPath: "widget.svg",
		},
		{
			name:     "format inferred from out extension",
			in:       "widget.stl",
			out:      "widget.dxf",
			wantFmt:  writer.DXF,
			wantPath: "widget.dxf",
		},
		{
			name:     "explicit format wins",
			in:       "widget.stl",
			format:   "ps",
			wantFmt:  writer.PS,
			wantPath: "widget.ps",
		},
		{
			name:     "script name used when no input file",
			script:   "models/bracket.lisp",
			wantFmt:  writer.SVG,
			wantPath: "bracket.svg",
		},
		{
			name:    "unknown extension rejected",
			in:      "widget.stl",
			out:     "widget.pdf",
			wantErr: true,
		},
		{
			name:    "unknown format rejected",
			in:      "widget.stl",
			format:  "pdf",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, path, err := resolveOutput(tt.in, tt.script, tt.out, tt.format)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f != tt.wantFmt {
				t.Errorf("format = %q, want %q", f, tt.wantFmt)
			}
			if path != tt.wantPath {
				t.Errorf("path = %q, want %q", path, tt.wantPath)
			}
		})
	}
}
