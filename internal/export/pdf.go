package export

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/cabplan/internal/cutlist"
	"github.com/piwi3910/cabplan/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	rowHeight    = 6.0
	bandingWaste = 10.0 // percent allowance on edge banding length
)

// Component table column widths in mm. Part Name gets the slack.
var tableColWidths = []float64{78, 24, 24, 24, 16, 24, 32, 26}

var tableHeaders = []string{
	"Part Name",
	"Width (mm)",
	"Height (mm)",
	"Depth (mm)",
	"Qty",
	"Thickness",
	"Edge Banding",
	"Material",
}

// ExportPDF generates the cutting-list document: a header with the
// construction settings, one table per cabinet, and a closing summary block
// with totals, the per-type breakdown, and material requirements.
func ExportPDF(path string, result cutlist.Result) error {
	if len(result.Components) == 0 {
		return fmt.Errorf("no components to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.AddPage()

	y := renderDocumentHeader(pdf, result.Style)

	ids, groups := groupByCabinet(result.Components)
	for _, id := range ids {
		y = renderCabinetTable(pdf, id, groups[id], y)
	}

	renderSummaryBlock(pdf, result, y)
	renderFooter(pdf)

	return pdf.OutputFileAndClose(path)
}

// groupByCabinet splits components per cabinet, keeping first-seen order.
func groupByCabinet(components []model.Component) ([]string, map[string][]model.Component) {
	var ids []string
	groups := make(map[string][]model.Component)
	for _, c := range components {
		if _, seen := groups[c.CabinetID]; !seen {
			ids = append(ids, c.CabinetID)
		}
		groups[c.CabinetID] = append(groups[c.CabinetID], c)
	}
	return ids, groups
}

// ensureRoom starts a new page when fewer than needed mm remain below y.
func ensureRoom(pdf *fpdf.Fpdf, y, needed float64) float64 {
	if y+needed > pageHeight-marginBottom {
		pdf.AddPage()
		return marginTop
	}
	return y
}

func renderDocumentHeader(pdf *fpdf.Fpdf, style model.ConstructionStyle) float64 {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, "Cutting List", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	meta := fmt.Sprintf("Generated: %s  |  Material: %.0fmm MFC, back %.0fmm MDF  |  Back fitting: %s",
		time.Now().Format("2006-01-02 15:04"),
		style.MaterialThickness, style.BackThickness, style.BackMode)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, meta, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+headerHeight+7, pageWidth-marginRight, marginTop+headerHeight+7)

	return marginTop + headerHeight + 12
}

// renderCabinetTable draws one cabinet's components and returns the next y.
func renderCabinetTable(pdf *fpdf.Fpdf, cabinetID string, components []model.Component, y float64) float64 {
	// Keep the heading and at least two rows together
	y = ensureRoom(pdf, y, 8+3*rowHeight)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, fmt.Sprintf("Cabinet %s", cabinetID), "", 0, "L", false, 0, "")
	y += 8

	y = renderTableHeader(pdf, y)

	pdf.SetFont("Helvetica", "", 9)
	for i, c := range components {
		if y+rowHeight > pageHeight-marginBottom {
			pdf.AddPage()
			y = renderTableHeader(pdf, marginTop)
			pdf.SetFont("Helvetica", "", 9)
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		depth := ""
		if c.Depth > 0 {
			depth = fmt.Sprintf("%.0f", c.Depth)
		}
		cells := []string{
			c.PartName,
			fmt.Sprintf("%.0f", c.Width),
			fmt.Sprintf("%.0f", c.SpanMM()),
			depth,
			fmt.Sprintf("%d", c.Quantity),
			fmt.Sprintf("%.0f mm", c.Thickness),
			c.EdgeBanding,
			model.MaterialName(c.Type, c.Thickness),
		}

		x := marginLeft
		for j, cell := range cells {
			align := "C"
			if j == 0 {
				align = "L"
			}
			pdf.SetXY(x, y)
			pdf.CellFormat(tableColWidths[j], rowHeight, cell, "1", 0, align, true, 0, "")
			x += tableColWidths[j]
		}
		y += rowHeight
	}

	return y + 6
}

func renderTableHeader(pdf *fpdf.Fpdf, y float64) float64 {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	x := marginLeft
	for i, header := range tableHeaders {
		pdf.SetXY(x, y)
		pdf.CellFormat(tableColWidths[i], rowHeight, header, "1", 0, "C", true, 0, "")
		x += tableColWidths[i]
	}
	return y + rowHeight
}

// renderSummaryBlock draws the totals, the per-type piece counts, and the
// material and edge banding requirements.
func renderSummaryBlock(pdf *fpdf.Fpdf, result cutlist.Result, y float64) {
	s := result.Summary

	y = ensureRoom(pdf, y, 70)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Summary", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Total Cabinets", fmt.Sprintf("%d", s.TotalCabinets)},
		{"Total Components", fmt.Sprintf("%d", s.TotalComponents)},
		{"Total Pieces", fmt.Sprintf("%d", s.TotalPieces)},
		{"Total Area", fmt.Sprintf("%.2f m²", s.TotalAreaM2)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	banding := model.CalculateEdgeBanding(result.Components, bandingWaste)
	if banding.EdgeCount > 0 {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 6, "Edge Banding:", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, fmt.Sprintf("%.1f m (%.1f m with %.0f%% waste)",
			banding.TotalLinearM, banding.TotalWithWasteM, bandingWaste), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 3
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 6, "Pieces by Type", "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range model.ComponentTypeOrder {
		qty, ok := s.ComponentBreakdown[t]
		if !ok {
			continue
		}
		y = ensureRoom(pdf, y, 5)
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(40, 5, string(t), "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 5, fmt.Sprintf("%d", qty), "", 0, "L", false, 0, "")
		y += 5
	}
}

func renderFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by CabPlan - Cabinet Cutting List Calculator", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}
