package export

import (
	"path/filepath"
	"testing"

	"github.com/piwi3910/BoxPack/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

func TestExportDXF_Wireframe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "load.dxf")
	result := buildTestResult()

	if err := ExportDXF(path, result); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot reopen DXF: %v", err)
	}

	lines := 0
	maxX := 0.0
	for _, e := range drawing.Entities() {
		l, ok := e.(*entity.Line)
		if !ok {
			continue
		}
		lines++
		maxX = max(maxX, l.Start[0], l.End[0])
	}

	// 2 containers + 4 items, 12 edges each
	if lines != 6*12 {
		t.Errorf("expected %d lines, got %d", 6*12, lines)
	}
	// Second container starts at 1.1 x width
	if want := 110.0 + 100.0; maxX < want-1e-9 || maxX > want+1e-9 {
		t.Errorf("expected drawing extent %g, got %g", want, maxX)
	}
}

func TestExportDXF_EmptyResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")
	if err := ExportDXF(path, model.PackResult{}); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestWireBoxDrawsTwelveEdges(t *testing.T) {
	d := dxf.NewDrawing()
	pos := model.Position{X: 1, Y: 2, Z: 3}
	if err := wireBox(d, 10, pos, model.Dims(4, 5, 6)); err != nil {
		t.Fatalf("wireBox returned error: %v", err)
	}

	lines := 0
	for _, e := range d.Entities() {
		l, ok := e.(*entity.Line)
		if !ok {
			continue
		}
		lines++
		for _, p := range [][]float64{l.Start, l.End} {
			// drawing X = offset + X, drawing Y = depth axis, drawing Z = height axis
			if p[0] < 11 || p[0] > 15 || p[1] < 3 || p[1] > 9 || p[2] < 2 || p[2] > 7 {
				t.Errorf("edge point %v outside the box", p)
			}
		}
	}
	if lines != 12 {
		t.Errorf("expected 12 lines, got %d", lines)
	}
}
