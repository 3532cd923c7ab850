// Package importer reads cabinet schedules from CSV and Excel files. It
// supports automatic delimiter detection, flexible column mapping, and
// case-insensitive header recognition. Imported rows come out as raw
// cabinets: intake normalization still applies downstream.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/cabplan/internal/intake"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Cabinets []intake.RawCabinet
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A value of -1 means the column is absent.
type ColumnMapping struct {
	ID       int
	Type     int
	Width    int
	Height   int
	Depth    int
	Shelves  int
	Drawers  int
	Doors    int
	Quantity int
	Notes    int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"id":       {"id", "cabinet id", "cabinet_id", "cab id", "ref", "reference", "unit", "mark"},
	"type":     {"type", "cabinet type", "cabinet_type", "kind", "category"},
	"width":    {"width", "w", "x"},
	"height":   {"height", "h", "y"},
	"depth":    {"depth", "d", "z"},
	// Singular forms are left out on purpose: "drawer" and "filler" turn up
	// as type values in headerless schedules.
	"shelves":  {"shelves", "shelf count"},
	"drawers":  {"drawers", "drawer count"},
	"doors":    {"doors", "door count"},
	"quantity": {"quantity", "qty", "count", "num", "pcs", "off"},
	"notes":    {"notes", "note", "comments", "comment", "remarks"},
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row
		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		ID:       -1,
		Type:     -1,
		Width:    -1,
		Height:   -1,
		Depth:    -1,
		Shelves:  -1,
		Drawers:  -1,
		Doors:    -1,
		Quantity: -1,
		Notes:    -1,
	}

	assign := map[string]*int{
		"id":       &mapping.ID,
		"type":     &mapping.Type,
		"width":    &mapping.Width,
		"height":   &mapping.Height,
		"depth":    &mapping.Depth,
		"shelves":  &mapping.Shelves,
		"drawers":  &mapping.Drawers,
		"doors":    &mapping.Doors,
		"quantity": &mapping.Quantity,
		"notes":    &mapping.Notes,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if target := assign[role]; *target == -1 {
						*target = i
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: ID, Type, Width, Height, Depth
		return ColumnMapping{
			ID:       0,
			Type:     1,
			Width:    2,
			Height:   3,
			Depth:    4,
			Shelves:  -1,
			Drawers:  -1,
			Doors:    -1,
			Quantity: -1,
			Notes:    -1,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a raw cabinet from a row using the given column mapping.
// Returns the cabinet, any error message, and any warning messages.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (intake.RawCabinet, string, []string) {
	var warnings []string

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return intake.RawCabinet{}, fmt.Sprintf("%s: Missing width value", rowLabel), nil
	}
	width, err := strconv.ParseFloat(widthStr, 64)
	if err != nil {
		return intake.RawCabinet{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), nil
	}
	if width <= 0 {
		return intake.RawCabinet{}, fmt.Sprintf("%s: Width must be positive", rowLabel), nil
	}

	raw := intake.RawCabinet{
		CabinetID: getCell(row, mapping.ID),
		Type:      getCell(row, mapping.Type),
		Width:     width,
	}
	raw.Features.Notes = getCell(row, mapping.Notes)

	if heightStr := getCell(row, mapping.Height); heightStr != "" {
		height, err := strconv.ParseFloat(heightStr, 64)
		if err != nil {
			return intake.RawCabinet{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), nil
		}
		raw.Height = &height
	}
	if depthStr := getCell(row, mapping.Depth); depthStr != "" {
		depth, err := strconv.ParseFloat(depthStr, 64)
		if err != nil {
			return intake.RawCabinet{}, fmt.Sprintf("%s: Invalid depth '%s'", rowLabel, depthStr), nil
		}
		raw.Depth = &depth
	}

	raw.Features.Shelves, warnings = parseOptionalCount(row, mapping.Shelves, "shelves", rowLabel, warnings)
	raw.Features.Drawers, warnings = parseOptionalCount(row, mapping.Drawers, "drawers", rowLabel, warnings)
	raw.Features.Doors, warnings = parseOptionalCount(row, mapping.Doors, "doors", rowLabel, warnings)

	return raw, "", warnings
}

// parseOptionalCount reads an optional integer cell. Unparseable values are
// reported as warnings and treated as absent.
func parseOptionalCount(row []string, idx int, name, rowLabel string, warnings []string) (*int, []string) {
	s := getCell(row, idx)
	if s == "" {
		return nil, warnings
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, append(warnings, fmt.Sprintf("%s: Invalid %s '%s', ignored", rowLabel, name, s))
	}
	return &v, warnings
}

// parseQuantity reads the optional schedule quantity for a row. Anything
// missing or unparseable counts as a single cabinet.
func parseQuantity(row []string, mapping ColumnMapping, rowLabel string) (int, string) {
	s := getCell(row, mapping.Quantity)
	if s == "" {
		return 1, ""
	}
	qty, err := strconv.Atoi(s)
	if err != nil || qty <= 0 {
		return 1, fmt.Sprintf("%s: Invalid quantity '%s', importing one", rowLabel, s)
	}
	return qty, ""
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports cabinets from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports cabinets from a CSV reader with a specific
// delimiter. This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports cabinets from an Excel (.xlsx, .xls) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into cabinets. A row
// with a schedule quantity above one expands into that many cabinets with
// numbered id suffixes.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		if mapping.Width == -1 {
			result.Errors = append(result.Errors, "Required column not found in header: Width")
			return result
		}
		if mapping.Height == -1 {
			result.Warnings = append(result.Warnings, "No height column, defaults will apply")
		}
		if mapping.Depth == -1 {
			result.Warnings = append(result.Warnings, "No depth column, defaults will apply")
		}
	} else {
		// No header: check whether the width position is numeric. If not,
		// the first row is an unrecognized header worth skipping.
		if len(rows[0]) >= 3 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][2]), 64); err != nil {
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		raw, errMsg, warnings := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)

		qty, qtyWarning := parseQuantity(row, mapping, rowLabel)
		if qtyWarning != "" {
			result.Warnings = append(result.Warnings, qtyWarning)
		}

		result.Cabinets = append(result.Cabinets, expand(raw, qty)...)
	}

	return result
}

// expand clones a cabinet for its schedule quantity. Ids get numbered
// suffixes so every physical unit stays traceable; blank ids stay blank for
// intake to fill.
func expand(raw intake.RawCabinet, qty int) []intake.RawCabinet {
	if qty <= 1 {
		return []intake.RawCabinet{raw}
	}

	out := make([]intake.RawCabinet, 0, qty)
	for i := 1; i <= qty; i++ {
		clone := raw
		if raw.CabinetID != "" {
			clone.CabinetID = fmt.Sprintf("%s-%d", raw.CabinetID, i)
		}
		out = append(out, clone)
	}
	return out
}
