package model

import "math"

// bandingEdges returns the banded-edge count and linear banding length per
// piece for a component. Carcass panels get banding on the front edge only:
// for a gable that edge runs the panel height, for horizontal panels it runs
// the width. Doors and drawer fronts are banded all round. Backs and braces
// are hidden and get none.
func bandingEdges(c Component) (edges int, lengthMM float64) {
	switch c.Type {
	case ComponentGable:
		return 1, c.Height
	case ComponentTopBottom, ComponentShelf, ComponentDrawerDivider:
		return 1, c.Width
	case ComponentDoor, ComponentDrawerFront:
		return 4, 2 * (c.Width + c.Height)
	case ComponentFiller:
		return 3, 2*c.Height + c.Width
	default:
		return 0, 0
	}
}

// EdgeBandingSummary holds the edge banding requirements for a cutting list.
type EdgeBandingSummary struct {
	TotalLinearMM    float64 `json:"total_linear_mm"`     // Total banding length in mm (no waste)
	TotalLinearM     float64 `json:"total_linear_m"`      // Total banding length in meters (no waste)
	WastePercent     float64 `json:"waste_percent"`       // Waste percentage applied
	TotalWithWasteMM float64 `json:"total_with_waste_mm"` // Total with waste in mm
	TotalWithWasteM  float64 `json:"total_with_waste_m"`  // Total with waste in meters
	PieceCount       int     `json:"piece_count"`         // Number of individual pieces needing banding
	EdgeCount        int     `json:"edge_count"`          // Total number of edges needing banding
}

// CalculateEdgeBanding computes the total edge banding needed for a
// component list. wastePercent is the additional percentage to add for
// waste (e.g., 10 for 10%).
func CalculateEdgeBanding(components []Component, wastePercent float64) EdgeBandingSummary {
	var totalMM float64
	var pieceCount, edgeCount int

	for _, c := range components {
		edges, length := bandingEdges(c)
		if edges == 0 {
			continue
		}
		totalMM += length * float64(c.Quantity)
		pieceCount += c.Quantity
		edgeCount += edges * c.Quantity
	}

	wasteFactor := 1.0 + (wastePercent / 100.0)
	totalWithWaste := math.Ceil(totalMM * wasteFactor)

	return EdgeBandingSummary{
		TotalLinearMM:    totalMM,
		TotalLinearM:     totalMM / 1000.0,
		WastePercent:     wastePercent,
		TotalWithWasteMM: totalWithWaste,
		TotalWithWasteM:  totalWithWaste / 1000.0,
		PieceCount:       pieceCount,
		EdgeCount:        edgeCount,
	}
}
