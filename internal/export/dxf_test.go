package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportDXF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutting_list.dxf")

	if err := ExportDXF(path, buildBaseResult(t)); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "CUTLIST") {
		t.Error("DXF does not declare the CUTLIST layer")
	}
	if !strings.Contains(content, "CUTTING LIST -") {
		t.Error("DXF does not contain the title text")
	}
	if !strings.Contains(content, "=== GABLE ===") {
		t.Error("DXF does not contain the GABLE group header")
	}
}

func TestExportDXF_OnePolylinePerPiece(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cutting_list.dxf")

	result := buildBaseResult(t)
	if err := ExportDXF(path, result); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}

	// 7 physical pieces for a base cabinet, one outline each
	got := strings.Count(string(data), "LWPOLYLINE")
	if got != result.Summary.TotalPieces {
		t.Errorf("expected %d outlines, got %d", result.Summary.TotalPieces, got)
	}

	// Dimension labels use width x span
	if !strings.Contains(string(data), "560x720") {
		t.Error("DXF does not contain the gable dimension label")
	}
	if !strings.Contains(string(data), "864x500") {
		t.Error("DXF does not contain the top panel dimension label")
	}
}

func TestExportDXF_Empty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.dxf")

	if err := ExportDXF(path, emptyResult()); err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}
