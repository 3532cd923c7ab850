package cutlist

import (
	"strconv"

	"github.com/piwi3910/cabplan/internal/model"
)

// TableColumns is the column order of the flat cutting-list table, shared by
// the CSV, spreadsheet, and PDF exports.
var TableColumns = []string{
	"Cabinet ID",
	"Component Type",
	"Part Name",
	"Width (mm)",
	"Height (mm)",
	"Depth (mm)",
	"Quantity",
	"Thickness (mm)",
	"Edge Banding",
	"Formula",
}

// TableRows projects components into rows matching TableColumns. Horizontal
// panels print their depth in the height column so every row shows the two
// saw dimensions side by side.
func TableRows(components []model.Component) [][]string {
	rows := make([][]string, 0, len(components))
	for _, c := range components {
		rows = append(rows, []string{
			c.CabinetID,
			string(c.Type),
			c.PartName,
			formatMM(c.Width),
			formatMM(c.SpanMM()),
			formatMM(c.Depth),
			strconv.Itoa(c.Quantity),
			formatMM(c.Thickness),
			c.EdgeBanding,
			c.Formula,
		})
	}
	return rows
}

// SummaryRows projects a summary into label/value pairs for report footers.
func SummaryRows(s model.Summary) [][]string {
	rows := [][]string{
		{"Total Cabinets", strconv.Itoa(s.TotalCabinets)},
		{"Total Components", strconv.Itoa(s.TotalComponents)},
		{"Total Pieces", strconv.Itoa(s.TotalPieces)},
		{"Total Area (m²)", strconv.FormatFloat(s.TotalAreaM2, 'f', 2, 64)},
	}
	for _, t := range model.ComponentTypeOrder {
		if qty, ok := s.ComponentBreakdown[t]; ok {
			rows = append(rows, []string{string(t), strconv.Itoa(qty)})
		}
	}
	return rows
}

func formatMM(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
