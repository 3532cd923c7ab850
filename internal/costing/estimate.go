// Package costing turns a cutting list into a sheet-material purchase
// estimate: how many boards of each stock material to buy, and what they
// will cost.
package costing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/piwi3910/cabplan/internal/model"
)

// Sensible defaults for a panel saw.
const (
	DefaultKerfWidth    = 3.0  // mm, typical blade width
	DefaultWastePercent = 15.0 // offcut allowance
)

// SheetSpec describes a purchasable stock board.
type SheetSpec struct {
	Name          string          `json:"name"`
	Material      string          `json:"material"`  // board type, e.g. "MFC"
	Thickness     float64         `json:"thickness"` // mm
	Width         float64         `json:"width"`     // mm
	Height        float64         `json:"height"`    // mm
	PricePerSheet decimal.Decimal `json:"price_per_sheet"`
}

// Label returns the material key components are grouped under, e.g. "18mm MFC".
func (s SheetSpec) Label() string {
	return fmt.Sprintf("%gmm %s", s.Thickness, s.Material)
}

// Area returns the face area of one sheet in square millimeters.
func (s SheetSpec) Area() float64 {
	return s.Width * s.Height
}

// DefaultSheets returns the boards a cabinet shop typically stocks.
func DefaultSheets() []SheetSpec {
	return []SheetSpec{
		{Name: "MFC 2800x2070 18mm", Material: "MFC", Thickness: 18, Width: 2800, Height: 2070, PricePerSheet: decimal.NewFromFloat(46.50)},
		{Name: "MFC 2440x1220 25mm", Material: "MFC", Thickness: 25, Width: 2440, Height: 1220, PricePerSheet: decimal.NewFromFloat(58.00)},
		{Name: "MDF 2440x1220 6mm", Material: "MDF", Thickness: 6, Width: 2440, Height: 1220, PricePerSheet: decimal.NewFromFloat(14.90)},
		{Name: "MDF 2440x1220 3mm", Material: "MDF", Thickness: 3, Width: 2440, Height: 1220, PricePerSheet: decimal.NewFromFloat(9.80)},
	}
}

// MaterialEstimate holds the purchasing numbers for one material group.
type MaterialEstimate struct {
	Material          string          `json:"material"`            // group key, e.g. "18mm MFC"
	SheetName         string          `json:"sheet_name"`          // matched stock board, empty if none stocked
	PieceCount        int             `json:"piece_count"`         // physical pieces in the group
	TotalPartArea     float64         `json:"total_part_area"`     // part area including kerf allowance (sq mm)
	SheetArea         float64         `json:"sheet_area"`          // area of one sheet (sq mm)
	SheetsNeededExact float64         `json:"sheets_needed_exact"` // exact fractional number of sheets
	SheetsNeededMin   int             `json:"sheets_needed_min"`   // minimum sheets (ceiling of exact)
	SheetsWithWaste   int             `json:"sheets_with_waste"`   // recommended sheets including waste factor
	WastePercent      float64         `json:"waste_percent"`       // waste factor applied (e.g. 15 for 15%)
	KerfWidth         float64         `json:"kerf_width"`          // kerf width used in calculation
	PricePerSheet     decimal.Decimal `json:"price_per_sheet"`
	EstimatedCost     decimal.Decimal `json:"estimated_cost"`
}

// Estimate is the full purchase estimate for a cutting list, one line per
// material plus the grand total.
type Estimate struct {
	Materials []MaterialEstimate `json:"materials"`
	TotalCost decimal.Decimal    `json:"total_cost"`
}

type materialGroup struct {
	area   float64
	pieces int
}

// CalculatePurchase computes how many sheets of each stock material to buy
// for a cutting list. Components are grouped by material label and every
// piece carries a kerf allowance on both dimensions; the waste percentage
// inflates the sheet count to cover offcuts that cannot be reused.
func CalculatePurchase(components []model.Component, sheets []SheetSpec, kerfWidth, wastePercent float64) Estimate {
	groups := make(map[string]*materialGroup)
	var order []string

	for _, c := range components {
		label := model.MaterialName(c.Type, c.Thickness)
		g, ok := groups[label]
		if !ok {
			g = &materialGroup{}
			groups[label] = g
			order = append(order, label)
		}
		pieceW := c.Width + kerfWidth
		pieceH := c.SpanMM() + kerfWidth
		g.area += pieceW * pieceH * float64(c.Quantity)
		g.pieces += c.Quantity
	}

	est := Estimate{Materials: make([]MaterialEstimate, 0, len(order))}
	for _, label := range order {
		g := groups[label]
		line := estimateMaterial(label, g.area, g.pieces, findSheet(sheets, label), kerfWidth, wastePercent)
		est.TotalCost = est.TotalCost.Add(line.EstimatedCost)
		est.Materials = append(est.Materials, line)
	}
	return est
}

// estimateMaterial computes the sheet count and cost for one material group.
func estimateMaterial(label string, partArea float64, pieces int, sheet *SheetSpec, kerfWidth, wastePercent float64) MaterialEstimate {
	line := MaterialEstimate{
		Material:      label,
		PieceCount:    pieces,
		TotalPartArea: partArea,
		WastePercent:  wastePercent,
		KerfWidth:     kerfWidth,
	}
	if sheet == nil || sheet.Area() <= 0 {
		return line
	}

	line.SheetName = sheet.Name
	line.SheetArea = sheet.Area()
	line.SheetsNeededExact = partArea / line.SheetArea
	line.SheetsNeededMin = int(math.Ceil(line.SheetsNeededExact))

	// Apply waste factor
	wasteFactor := 1.0 + (wastePercent / 100.0)
	line.SheetsWithWaste = int(math.Ceil(line.SheetsNeededExact * wasteFactor))
	if line.SheetsWithWaste < line.SheetsNeededMin {
		line.SheetsWithWaste = line.SheetsNeededMin
	}

	line.PricePerSheet = sheet.PricePerSheet
	line.EstimatedCost = sheet.PricePerSheet.Mul(decimal.NewFromInt(int64(line.SheetsWithWaste)))
	return line
}

// findSheet returns the first stocked board matching the material label.
func findSheet(sheets []SheetSpec, label string) *SheetSpec {
	for i := range sheets {
		if sheets[i].Label() == label {
			return &sheets[i]
		}
	}
	return nil
}
