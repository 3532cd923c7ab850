package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/cabplan/internal/cutlist"
	"github.com/piwi3910/cabplan/internal/model"
)

const (
	listSheet    = "Cutting List"
	summarySheet = "Summary"
)

// ExportExcel writes the cutting list as a workbook: one sheet with the flat
// component table and one with the summary and construction settings.
func ExportExcel(path string, result cutlist.Result) error {
	if len(result.Components) == 0 {
		return fmt.Errorf("no components to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", listSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeListSheet(f, result); err != nil {
		return err
	}
	if err := writeSummarySheet(f, result); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func writeListSheet(f *excelize.File, result cutlist.Result) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}

	for col, name := range cutlist.TableColumns {
		ref, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(listSheet, ref, name); err != nil {
			return err
		}
	}
	lastCol, _ := excelize.CoordinatesToCellName(len(cutlist.TableColumns), 1)
	if err := f.SetCellStyle(listSheet, "A1", lastCol, headerStyle); err != nil {
		return err
	}

	for i, c := range result.Components {
		row := i + 2
		values := []interface{}{
			c.CabinetID,
			string(c.Type),
			c.PartName,
			c.Width,
			c.SpanMM(),
			nil,
			c.Quantity,
			c.Thickness,
			c.EdgeBanding,
			c.Formula,
		}
		if c.Depth > 0 {
			values[5] = c.Depth
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(listSheet, ref, v); err != nil {
				return err
			}
		}
	}

	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "B", 14},
		{"C", "C", 28},
		{"D", "H", 12},
		{"I", "I", 18},
		{"J", "J", 16},
	}
	for _, w := range widths {
		if err := f.SetColWidth(listSheet, w.from, w.to, w.width); err != nil {
			return err
		}
	}
	return nil
}

func writeSummarySheet(f *excelize.File, result cutlist.Result) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	if err != nil {
		return err
	}

	row := 1
	setTitle := func(text string) error {
		ref, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetCellValue(summarySheet, ref, text); err != nil {
			return err
		}
		if err := f.SetCellStyle(summarySheet, ref, ref, titleStyle); err != nil {
			return err
		}
		row += 2
		return nil
	}
	setPair := func(label string, value interface{}) error {
		labelRef, _ := excelize.CoordinatesToCellName(1, row)
		valueRef, _ := excelize.CoordinatesToCellName(2, row)
		if err := f.SetCellValue(summarySheet, labelRef, label); err != nil {
			return err
		}
		if err := f.SetCellValue(summarySheet, valueRef, value); err != nil {
			return err
		}
		row++
		return nil
	}

	if err := setTitle("Cutting List Summary"); err != nil {
		return err
	}

	s := result.Summary
	pairs := []struct {
		label string
		value interface{}
	}{
		{"Total Cabinets", s.TotalCabinets},
		{"Total Components", s.TotalComponents},
		{"Total Pieces", s.TotalPieces},
		{"Total Area (m²)", s.TotalAreaM2},
	}
	for _, p := range pairs {
		if err := setPair(p.label, p.value); err != nil {
			return err
		}
	}

	row++
	if err := setTitle("Component Breakdown"); err != nil {
		return err
	}
	for _, t := range model.ComponentTypeOrder {
		if qty, ok := s.ComponentBreakdown[t]; ok {
			if err := setPair(string(t), qty); err != nil {
				return err
			}
		}
	}

	row++
	if err := setTitle("Construction"); err != nil {
		return err
	}
	style := result.Style
	construction := []struct {
		label string
		value interface{}
	}{
		{"Material Thickness (mm)", style.MaterialThickness},
		{"Back Thickness (mm)", style.BackThickness},
		{"Back Mode", string(style.BackMode)},
		{"Toe Kick Height (mm)", style.ToeKickHeight},
	}
	for _, p := range construction {
		if err := setPair(p.label, p.value); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(summarySheet, "A", "A", 26); err != nil {
		return err
	}
	return f.SetColWidth(summarySheet, "B", "B", 16)
}
