package rules

import (
	"fmt"
	"math"

	"github.com/piwi3910/cabplan/internal/model"
)

// doorHeightTolerance is the clearance taken off a door or drawer front
// height so the panel clears the carcass, in mm.
const doorHeightTolerance = 5

// fronts derives the door and drawer panels for a cabinet from its feature
// counts. A drawer stack replaces doors. Stacks are only cut for base-family
// carcasses; other families keep their doors and ignore the drawer count.
func (c *Calculator) fronts(cab model.Cabinet, bd model.Breakdown) ([]model.PanelSpec, error) {
	if bd.Family == model.FamilyBase && cab.Drawers > 0 {
		return c.drawerStack(cab, bd)
	}
	return c.doors(cab, bd)
}

// doors splits the front between the cabinet's door count: door height
// clears the carcass by 5mm and the widths share the internal span. A
// two-door base unit gets the classic (W-36)/2 pair; a single door spans
// the full internal width.
func (c *Calculator) doors(cab model.Cabinet, bd model.Breakdown) ([]model.PanelSpec, error) {
	if cab.Doors == 0 {
		return nil, nil
	}

	height := bd.Overall.Height - doorHeightTolerance
	width := math.Floor(bd.Overall.InternalWidth / float64(cab.Doors))
	if width <= 0 || height <= 0 {
		return nil, &model.ValidationError{
			CabinetID: cab.ID,
			Field:     "doors",
			Value:     float64(cab.Doors),
			Reason:    fmt.Sprintf("%d doors leave a %g x %g mm door panel", cab.Doors, width, height),
		}
	}

	return []model.PanelSpec{{
		Type:      model.ComponentDoor,
		Width:     width,
		Height:    height,
		Thickness: c.style.MaterialThickness,
		Quantity:  cab.Doors,
	}}, nil
}

// drawerStack cuts one front per drawer plus the dividers between them. The
// stack shares the carcass height above the toe kick, less one divider
// thickness per gap.
func (c *Calculator) drawerStack(cab model.Cabinet, bd model.Breakdown) ([]model.PanelSpec, error) {
	n := cab.Drawers
	t := c.style.MaterialThickness

	available := bd.Overall.Height - c.style.ToeKickHeight
	perDrawer := math.Floor((available - float64(n-1)*t) / float64(n))
	frontHeight := perDrawer - doorHeightTolerance
	if frontHeight <= 0 {
		return nil, &model.ValidationError{
			CabinetID: cab.ID,
			Field:     "drawers",
			Value:     float64(n),
			Reason:    fmt.Sprintf("%d drawers leave a %gmm drawer front height", n, frontHeight),
		}
	}

	specs := make([]model.PanelSpec, 0, 2*n-1)
	for i := 0; i < n; i++ {
		specs = append(specs, model.PanelSpec{
			Type:      model.ComponentDrawerFront,
			Width:     bd.Overall.InternalWidth,
			Height:    frontHeight,
			Thickness: t,
			Quantity:  1,
		})
	}
	for i := 0; i < n-1; i++ {
		specs = append(specs, model.PanelSpec{
			Type:      model.ComponentDrawerDivider,
			Width:     bd.Overall.InternalWidth,
			Depth:     bd.Shelves.Depth,
			Thickness: t,
			Quantity:  1,
		})
	}
	return specs, nil
}
