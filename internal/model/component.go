package model

import (
	"encoding/json"
	"math"
)

// Family is the resolved cabinet family that selects a formula set. Unlike
// CabinetType it is a closed set: every cabinet resolves to exactly one of
// these four before any geometry is calculated.
type Family int

const (
	FamilyBase Family = iota
	FamilyWall
	FamilyTall
	FamilyWardrobe
)

func (f Family) String() string {
	switch f {
	case FamilyWall:
		return "wall"
	case FamilyTall:
		return "tall"
	case FamilyWardrobe:
		return "wardrobe"
	default:
		return "base"
	}
}

// ComponentType identifies the kind of panel a cutting-list line item is.
type ComponentType string

const (
	ComponentGable         ComponentType = "GABLE"
	ComponentTopBottom     ComponentType = "T/B"
	ComponentShelf         ComponentType = "S/H"
	ComponentBack          ComponentType = "BACKS"
	ComponentBrace         ComponentType = "BRACES"
	ComponentFiller        ComponentType = "FILLER"
	ComponentDrawerFront   ComponentType = "DRAWER_FRONT"
	ComponentDrawerDivider ComponentType = "DRAWER_DIVIDER"
	ComponentDoor          ComponentType = "DOOR"
)

// ComponentTypeOrder is the display order for per-type breakdowns in
// summaries and reports.
var ComponentTypeOrder = []ComponentType{
	ComponentGable,
	ComponentTopBottom,
	ComponentShelf,
	ComponentBack,
	ComponentBrace,
	ComponentFiller,
	ComponentDoor,
	ComponentDrawerFront,
	ComponentDrawerDivider,
}

// PanelSpec is one panel group inside a cabinet breakdown: the dimensions,
// thickness, and count of a single kind of panel. Vertical panels carry
// Height; horizontal panels (tops, bottoms, shelves) carry Depth instead.
type PanelSpec struct {
	Type      ComponentType `json:"component_type"`
	Width     float64       `json:"width"`            // mm
	Height    float64       `json:"height,omitempty"` // mm, vertical panels
	Depth     float64       `json:"depth,omitempty"`  // mm, horizontal panels
	Thickness float64       `json:"thickness"`        // mm
	Quantity  int           `json:"quantity"`
	Notes     string        `json:"notes,omitempty"`
}

// OverallDims summarizes a cabinet's envelope and usable interior.
type OverallDims struct {
	Width         float64 `json:"width"`          // mm
	Height        float64 `json:"height"`         // mm
	Depth         float64 `json:"depth"`          // mm, including door allowance
	InternalWidth float64 `json:"internal_width"` // mm, width minus both gables
	InternalDepth float64 `json:"internal_depth"` // mm, carcass depth
}

// Breakdown is the complete geometric breakdown of one cabinet: every panel
// group the carcass requires, plus optional front panels (doors, drawer
// fronts, dividers) when front calculation is enabled.
type Breakdown struct {
	Family    Family      `json:"family"`
	Overall   OverallDims `json:"overall"`
	Gables    PanelSpec   `json:"gables"`
	TopBottom PanelSpec   `json:"top_bottom"`
	Shelves   PanelSpec   `json:"shelves"`
	Back      PanelSpec   `json:"back"`
	Braces    PanelSpec   `json:"braces"`
	Fronts    []PanelSpec `json:"fronts,omitempty"`
}

// Component is one cutting-list line item.
type Component struct {
	Type        ComponentType `json:"component_type"`
	PartName    string        `json:"part_name"`
	CabinetID   string        `json:"cabinet_id"`
	Width       float64       `json:"width"`            // mm
	Height      float64       `json:"height,omitempty"` // mm, vertical panels
	Depth       float64       `json:"depth,omitempty"`  // mm, horizontal panels
	Quantity    int           `json:"quantity"`
	Thickness   float64       `json:"material_thickness"` // mm
	EdgeBanding string        `json:"edge_banding_notes"`
	Formula     string        `json:"formula,omitempty"`
	Notes       string        `json:"notes,omitempty"`
}

// MarshalJSON adds the derived area so serialized components carry the full
// output contract without storing the value anywhere.
func (c Component) MarshalJSON() ([]byte, error) {
	type alias Component
	return json.Marshal(struct {
		alias
		AreaM2 float64 `json:"area_m2"`
	}{alias(c), c.AreaM2()})
}

// SpanMM returns the component's second dimension: height for vertical
// panels, depth for horizontal ones.
func (c Component) SpanMM() float64 {
	if c.Height > 0 {
		return c.Height
	}
	return c.Depth
}

// AreaM2 returns the component's total face area in square meters, rounded
// to two decimals. It is always derived from the stored dimensions so the
// value can never drift from its inputs.
func (c Component) AreaM2() float64 {
	return round2(c.Width * c.SpanMM() * float64(c.Quantity) / 1_000_000)
}

// rawAreaM2 is the unrounded area, used for summary accumulation.
func (c Component) rawAreaM2() float64 {
	return c.Width * c.SpanMM() * float64(c.Quantity) / 1_000_000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Summary holds the aggregate statistics of one cutting list.
type Summary struct {
	TotalCabinets      int                   `json:"total_cabinets"`
	TotalComponents    int                   `json:"total_components"`
	TotalPieces        int                   `json:"total_pieces"`
	TotalAreaM2        float64               `json:"total_area_m2"`
	ComponentBreakdown map[ComponentType]int `json:"component_breakdown"`
}

// Summarize computes the aggregate statistics for a flattened component
// list. totalCabinets is the number of cabinets attempted, including ones
// that were rejected or served by the filler shortcut.
func Summarize(components []Component, totalCabinets int) Summary {
	s := Summary{
		TotalCabinets:      totalCabinets,
		TotalComponents:    len(components),
		ComponentBreakdown: map[ComponentType]int{},
	}

	var area float64
	for _, c := range components {
		s.TotalPieces += c.Quantity
		area += c.rawAreaM2()
		s.ComponentBreakdown[c.Type] += c.Quantity
	}
	s.TotalAreaM2 = round2(area)
	return s
}
