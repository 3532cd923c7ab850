package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/cabplan/internal/costing"
)

// DefaultSheetsPath returns the default file path for the sheet catalog.
func DefaultSheetsPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "cabplan", "sheets.json"), nil
}

// SaveSheets writes the sheet catalog to the specified JSON file.
// It creates parent directories if they do not exist.
func SaveSheets(path string, sheets []costing.SheetSpec) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sheets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSheets reads the sheet catalog from the specified JSON file. If the
// file does not exist, it writes the default catalog first so the user has a
// file to edit board prices in.
func LoadSheets(path string) ([]costing.SheetSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			sheets := costing.DefaultSheets()
			if saveErr := SaveSheets(path, sheets); saveErr != nil {
				return sheets, saveErr
			}
			return sheets, nil
		}
		return nil, err
	}

	var sheets []costing.SheetSpec
	if err := json.Unmarshal(data, &sheets); err != nil {
		return nil, err
	}
	if len(sheets) == 0 {
		return costing.DefaultSheets(), nil
	}
	return sheets, nil
}

// LoadOrCreateSheets loads the sheet catalog from the default path, creating
// it with the default entries when missing.
func LoadOrCreateSheets() ([]costing.SheetSpec, string, error) {
	path, err := DefaultSheetsPath()
	if err != nil {
		return costing.DefaultSheets(), "", err
	}
	sheets, err := LoadSheets(path)
	return sheets, path, err
}
