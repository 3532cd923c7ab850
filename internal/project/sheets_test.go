package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/cabplan/internal/costing"
)

func TestDefaultSheetsPath(t *testing.T) {
	path, err := DefaultSheetsPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path == "" {
		t.Fatal("expected non-empty path")
	}
	if filepath.Base(path) != "sheets.json" {
		t.Errorf("expected filename sheets.json, got %s", filepath.Base(path))
	}
	if filepath.Base(filepath.Dir(path)) != "cabplan" {
		t.Errorf("expected parent dir cabplan, got %s", filepath.Base(filepath.Dir(path)))
	}
}

func TestSaveAndLoadSheets(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "test_sheets.json")

	sheets := []costing.SheetSpec{
		{
			Name:          "Test MFC",
			Material:      "MFC",
			Thickness:     18,
			Width:         2800,
			Height:        2070,
			PricePerSheet: decimal.RequireFromString("51.25"),
		},
	}

	// Save
	if err := SaveSheets(path, sheets); err != nil {
		t.Fatalf("SaveSheets failed: %v", err)
	}

	// Verify file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("sheets file was not created")
	}

	// Load
	loaded, err := LoadSheets(path)
	if err != nil {
		t.Fatalf("LoadSheets failed: %v", err)
	}

	if len(loaded) != 1 {
		t.Fatalf("expected 1 sheet, got %d", len(loaded))
	}
	if loaded[0].Name != "Test MFC" {
		t.Errorf("expected sheet name 'Test MFC', got %q", loaded[0].Name)
	}
	if loaded[0].Width != 2800 {
		t.Errorf("expected width 2800, got %f", loaded[0].Width)
	}
	if !loaded[0].PricePerSheet.Equal(decimal.RequireFromString("51.25")) {
		t.Errorf("expected price 51.25, got %s", loaded[0].PricePerSheet)
	}
}

func TestLoadSheetsCreatesDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nonexistent", "sheets.json")

	sheets, err := LoadSheets(path)
	if err != nil {
		t.Fatalf("LoadSheets failed: %v", err)
	}

	// Should have created defaults
	if len(sheets) == 0 {
		t.Error("expected default sheets, got none")
	}

	// Should have written the file
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatal("expected default sheets file to be created")
	}
}

func TestLoadSheetsInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "bad.json")

	if err := os.WriteFile(path, []byte("not valid json"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSheets(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestLoadSheetsEmptyFileFallsBack(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "empty.json")

	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	sheets, err := LoadSheets(path)
	if err != nil {
		t.Fatalf("LoadSheets failed: %v", err)
	}
	if len(sheets) == 0 {
		t.Error("expected fallback to default sheets for an empty catalog")
	}
}
