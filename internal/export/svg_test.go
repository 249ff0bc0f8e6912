package export

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/BoxPack/internal/model"
)

func TestWriteSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, buildTestResult()); err != nil {
		t.Fatalf("WriteSVG returned error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Fatal("output is not an SVG document")
	}
	// One floor per container plus one rectangle per item
	if got := strings.Count(out, "<rect"); got != 2+4 {
		t.Errorf("expected 6 rectangles, got %d", got)
	}
	if !strings.Contains(out, "Container 2") {
		t.Error("expected a title for the second container")
	}
	if !strings.Contains(out, ">Crate<") {
		t.Error("expected the large item to carry its label")
	}
}

func TestExportSVG_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.svg")
	if err := ExportSVG(path, buildTestResult()); err != nil {
		t.Fatalf("ExportSVG returned error: %v", err)
	}
	assertNonEmptyFile(t, path)
}

func TestWriteSVG_EmptyResult(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, model.PackResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}
