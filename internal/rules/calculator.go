package rules

import (
	"fmt"
	"math"

	"github.com/piwi3910/cabplan/internal/model"
)

// Fixed carcass dimensions per family, in mm. Base and tall cabinets share
// the kitchen-standard 560mm internal depth with 500mm of usable panel depth
// after the back and service gap; wall cabinets are shallower with a 20mm
// back gap.
const (
	baseGableHeight = 720
	baseGableDepth  = 560
	basePanelDepth  = 500

	wallGableDepth = 300
	wallPanelDepth = 280

	tallGableDepth = 560
	tallPanelDepth = 500

	braceHeight = 100
)

// detectionRule pairs a geometry predicate with the family it selects.
type detectionRule struct {
	family model.Family
	match  func(w, h, d float64) bool
}

// detectionRules is the one place the auto-detection priority lives. Rules
// are evaluated in order and the first match wins. The wardrobe rule can
// never fire as ordered here: the tall rule above it already claims every
// cabinet over 1500mm. The original threshold order is kept so revisiting
// the priority is a one-line swap.
var detectionRules = []detectionRule{
	{model.FamilyTall, func(w, h, d float64) bool { return h > 1500 }},
	{model.FamilyWall, func(w, h, d float64) bool { return h <= 900 && d <= 400 }},
	{model.FamilyWardrobe, func(w, h, d float64) bool { return d >= 560 && h > 1500 }},
}

// DetectFamily classifies a cabinet family from its geometry. Cabinets that
// match no rule are base units.
func DetectFamily(width, height, depth float64) model.Family {
	for _, r := range detectionRules {
		if r.match(width, height, depth) {
			return r.family
		}
	}
	return model.FamilyBase
}

// ResolveFamily maps a cabinet's declared type to its formula family,
// running geometry detection for auto. Corner, filler, and drawer units are
// cut as base carcasses.
func ResolveFamily(cab model.Cabinet) model.Family {
	switch cab.Type {
	case model.TypeAuto:
		return DetectFamily(cab.Width, cab.Height, cab.Depth)
	case model.TypeWall:
		return model.FamilyWall
	case model.TypeTall:
		return model.FamilyTall
	case model.TypeWardrobe:
		return model.FamilyWardrobe
	default:
		return model.FamilyBase
	}
}

// Calculator derives panel breakdowns from cabinet dimensions using a fixed
// construction style. It holds no mutable state: the same input always
// produces the same breakdown, and one instance is safe to share across
// goroutines.
type Calculator struct {
	style model.ConstructionStyle
}

func NewCalculator(style model.ConstructionStyle) *Calculator {
	return &Calculator{style: style}
}

// Calculate returns the carcass breakdown for one cabinet, dispatched by
// resolved family. It fails with a ValidationError when the cabinet is too
// narrow for two gables, and with a plain error when a formula produces a
// non-positive panel; the latter is a defect and must surface, never be
// clamped.
func (c *Calculator) Calculate(cab model.Cabinet) (model.Breakdown, error) {
	var bd model.Breakdown
	var err error

	switch ResolveFamily(cab) {
	case model.FamilyWall:
		bd, err = c.wallCabinet(cab)
	case model.FamilyTall:
		bd, err = c.tallCabinet(cab)
	case model.FamilyWardrobe:
		bd, err = c.wardrobe(cab)
	default:
		bd, err = c.baseCabinet(cab)
	}
	if err != nil {
		return model.Breakdown{}, err
	}

	if err := checkCarcass(cab.ID, bd); err != nil {
		return model.Breakdown{}, err
	}
	return bd, nil
}

// CalculateWithFronts returns the carcass breakdown plus door, drawer front,
// and drawer divider panels derived from the cabinet's feature counts.
func (c *Calculator) CalculateWithFronts(cab model.Cabinet) (model.Breakdown, error) {
	bd, err := c.Calculate(cab)
	if err != nil {
		return model.Breakdown{}, err
	}

	fronts, err := c.fronts(cab, bd)
	if err != nil {
		return model.Breakdown{}, err
	}
	for _, f := range fronts {
		if err := checkPanel(cab.ID, f); err != nil {
			return model.Breakdown{}, err
		}
	}
	bd.Fronts = fronts
	return bd, nil
}

// internalWidth computes and validates the usable interior span.
func (c *Calculator) internalWidth(cab model.Cabinet) (float64, error) {
	iw := math.Round(c.style.InternalWidth(cab.Width))
	if iw <= 0 {
		return 0, &model.ValidationError{
			CabinetID: cab.ID,
			Field:     "width",
			Value:     cab.Width,
			Reason: fmt.Sprintf("width %gmm leaves no internal width after two %gmm gables",
				cab.Width, c.style.MaterialThickness),
		}
	}
	return iw, nil
}

// baseCabinet cuts the kitchen floor unit. Base cabinets are built to the
// workshop-standard carcass regardless of the measured height and depth:
// every base unit in a run shares the 720mm gable on a 560mm internal depth.
// Only the caller's width drives the panel sizes.
func (c *Calculator) baseCabinet(cab model.Cabinet) (model.Breakdown, error) {
	iw, err := c.internalWidth(cab)
	if err != nil {
		return model.Breakdown{}, err
	}
	t := c.style.MaterialThickness
	panelDepth := c.style.PanelDepth(basePanelDepth)

	return model.Breakdown{
		Family: model.FamilyBase,
		Overall: model.OverallDims{
			Width:         math.Round(cab.Width),
			Height:        baseGableHeight,
			Depth:         600, // carcass plus door allowance
			InternalWidth: iw,
			InternalDepth: baseGableDepth,
		},
		Gables: model.PanelSpec{
			Type:      model.ComponentGable,
			Width:     baseGableDepth,
			Height:    baseGableHeight,
			Thickness: t,
			Quantity:  2,
		},
		TopBottom: model.PanelSpec{
			Type:      model.ComponentTopBottom,
			Width:     iw,
			Depth:     panelDepth,
			Thickness: t,
			Quantity:  2,
		},
		Shelves: model.PanelSpec{
			Type:      model.ComponentShelf,
			Width:     iw,
			Depth:     panelDepth,
			Thickness: t,
			Quantity:  1,
		},
		Back: model.PanelSpec{
			Type:      model.ComponentBack,
			Width:     iw,
			Height:    baseGableHeight,
			Thickness: c.style.BackThickness,
			Quantity:  1,
		},
		Braces: model.PanelSpec{
			Type:      model.ComponentBrace,
			Width:     iw,
			Height:    braceHeight,
			Thickness: t,
			Quantity:  1,
			Notes:     "Top only - hollow basis",
		},
	}, nil
}

// wallCabinet cuts the wall-mounted unit. Wall cabinets keep the caller's
// height and get a second shelf above 700mm. Unlike base units they are
// braced top and bottom, because they hang from the wall.
func (c *Calculator) wallCabinet(cab model.Cabinet) (model.Breakdown, error) {
	iw, err := c.internalWidth(cab)
	if err != nil {
		return model.Breakdown{}, err
	}
	t := c.style.MaterialThickness
	height := math.Round(cab.Height)
	panelDepth := c.style.PanelDepth(wallPanelDepth)

	shelfQty := 1
	if height > 700 {
		shelfQty = 2
	}

	return model.Breakdown{
		Family: model.FamilyWall,
		Overall: model.OverallDims{
			Width:         math.Round(cab.Width),
			Height:        height,
			Depth:         320, // carcass plus door allowance
			InternalWidth: iw,
			InternalDepth: wallGableDepth,
		},
		Gables: model.PanelSpec{
			Type:      model.ComponentGable,
			Width:     wallGableDepth,
			Height:    height,
			Thickness: t,
			Quantity:  2,
		},
		TopBottom: model.PanelSpec{
			Type:      model.ComponentTopBottom,
			Width:     iw,
			Depth:     panelDepth,
			Thickness: t,
			Quantity:  2,
		},
		Shelves: model.PanelSpec{
			Type:      model.ComponentShelf,
			Width:     iw,
			Depth:     panelDepth,
			Thickness: t,
			Quantity:  shelfQty,
		},
		Back: model.PanelSpec{
			Type:      model.ComponentBack,
			Width:     iw,
			Height:    height,
			Thickness: c.style.BackThickness,
			Quantity:  1,
		},
		Braces: model.PanelSpec{
			Type:      model.ComponentBrace,
			Width:     iw,
			Height:    braceHeight,
			Thickness: t,
			Quantity:  2,
			Notes:     "Top and bottom for wall mounting",
		},
	}, nil
}

// tallCabinet cuts the pantry or oven housing. Shelving scales with height,
// roughly one shelf per 400mm of usable space, never fewer than two.
func (c *Calculator) tallCabinet(cab model.Cabinet) (model.Breakdown, error) {
	iw, err := c.internalWidth(cab)
	if err != nil {
		return model.Breakdown{}, err
	}
	t := c.style.MaterialThickness
	height := math.Round(cab.Height)
	panelDepth := c.style.PanelDepth(tallPanelDepth)

	return model.Breakdown{
		Family: model.FamilyTall,
		Overall: model.OverallDims{
			Width:         math.Round(cab.Width),
			Height:        height,
			Depth:         600,
			InternalWidth: iw,
			InternalDepth: tallGableDepth,
		},
		Gables: model.PanelSpec{
			Type:      model.ComponentGable,
			Width:     tallGableDepth,
			Height:    height,
			Thickness: t,
			Quantity:  2,
		},
		TopBottom: model.PanelSpec{
			Type:      model.ComponentTopBottom,
			Width:     iw,
			Depth:     panelDepth,
			Thickness: t,
			Quantity:  2,
		},
		Shelves: model.PanelSpec{
			Type:      model.ComponentShelf,
			Width:     iw,
			Depth:     panelDepth,
			Thickness: t,
			Quantity:  shelfCount(height, 400),
		},
		Back: model.PanelSpec{
			Type:      model.ComponentBack,
			Width:     iw,
			Height:    height,
			Thickness: c.style.BackThickness,
			Quantity:  1,
		},
		Braces: model.PanelSpec{
			Type:      model.ComponentBrace,
			Width:     iw,
			Height:    braceHeight,
			Thickness: t,
			Quantity:  2,
			Notes:     "Top and bottom",
		},
	}, nil
}

// wardrobe cuts the bedroom fitted unit. Wardrobes are the only family that
// keeps the caller's depth: tops and bottoms sit 30mm short of it and
// shelves 40mm, leaving a 20mm wall gap plus back allowance. Shelving is
// sparser than tall units, one shelf per 500mm.
func (c *Calculator) wardrobe(cab model.Cabinet) (model.Breakdown, error) {
	iw, err := c.internalWidth(cab)
	if err != nil {
		return model.Breakdown{}, err
	}
	t := c.style.MaterialThickness
	height := math.Round(cab.Height)
	depth := math.Round(cab.Depth)

	return model.Breakdown{
		Family: model.FamilyWardrobe,
		Overall: model.OverallDims{
			Width:         math.Round(cab.Width),
			Height:        height,
			Depth:         depth + 40,
			InternalWidth: iw,
			InternalDepth: depth,
		},
		Gables: model.PanelSpec{
			Type:      model.ComponentGable,
			Width:     depth,
			Height:    height,
			Thickness: t,
			Quantity:  2,
		},
		TopBottom: model.PanelSpec{
			Type:      model.ComponentTopBottom,
			Width:     iw,
			Depth:     c.style.PanelDepth(depth - 30),
			Thickness: t,
			Quantity:  2,
		},
		Shelves: model.PanelSpec{
			Type:      model.ComponentShelf,
			Width:     iw,
			Depth:     c.style.PanelDepth(depth - 40),
			Thickness: t,
			Quantity:  shelfCount(height, 500),
		},
		Back: model.PanelSpec{
			Type:      model.ComponentBack,
			Width:     iw,
			Height:    height,
			Thickness: c.style.BackThickness,
			Quantity:  1,
			Notes:     "20mm from wall edge",
		},
		Braces: model.PanelSpec{
			Type:      model.ComponentBrace,
			Width:     iw,
			Height:    braceHeight,
			Thickness: t,
			Quantity:  2,
		},
	}, nil
}

// shelfCount scales shelving with height: one shelf per pitch mm of usable
// space above the 200mm margin, never fewer than two.
func shelfCount(height, pitch float64) int {
	n := int((height - 200) / pitch)
	if n < 2 {
		return 2
	}
	return n
}

// checkCarcass verifies every carcass panel has manufacturable dimensions.
// A failure here is a formula defect, not bad input: the caller validated
// the cabinet before dispatch.
func checkCarcass(cabinetID string, bd model.Breakdown) error {
	for _, p := range []model.PanelSpec{bd.Gables, bd.TopBottom, bd.Shelves, bd.Back, bd.Braces} {
		if err := checkPanel(cabinetID, p); err != nil {
			return err
		}
	}
	return nil
}

func checkPanel(cabinetID string, p model.PanelSpec) error {
	span := p.Height
	if span == 0 {
		span = p.Depth
	}
	if p.Width <= 0 || span <= 0 {
		return fmt.Errorf("cabinet %s: %s panel calculated as %g x %g mm, formula defect",
			cabinetID, p.Type, p.Width, span)
	}
	if p.Quantity < 1 {
		return fmt.Errorf("cabinet %s: %s panel calculated with quantity %d, formula defect",
			cabinetID, p.Type, p.Quantity)
	}
	return nil
}
