package export

import (
	"fmt"
	"time"

	"github.com/yofu/dxf"

	"github.com/piwi3910/cabplan/internal/cutlist"
	"github.com/piwi3910/cabplan/internal/model"
)

// DXF layout constants in mm. Panels pack left to right into rows below the
// origin, wrapping at the row limit.
const (
	dxfMargin      = 50.0
	dxfRowLimit    = 2000.0
	dxfTitleHeight = 25.0
	dxfGroupHeight = 20.0
	dxfDimHeight   = 12.0
)

// ExportDXF writes every piece as a closed rectangle outline with a
// dimension label, grouped by component type, on a CUTLIST layer. The
// outlines are meant for CAD checks and nesting software, not for direct
// machining.
func ExportDXF(path string, result cutlist.Result) error {
	if len(result.Components) == 0 {
		return fmt.Errorf("no components to export")
	}

	d := dxf.NewDrawing()
	if _, err := d.AddLayer("CUTLIST", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}

	title := fmt.Sprintf("CUTTING LIST - %s", time.Now().Format("2006-01-02"))
	if _, err := d.Text(title, 10, -30, 0, dxfTitleHeight); err != nil {
		return fmt.Errorf("draw title: %w", err)
	}
	yOffset := -80.0

	byType := make(map[model.ComponentType][]model.Component)
	for _, c := range result.Components {
		byType[c.Type] = append(byType[c.Type], c)
	}

	for _, t := range model.ComponentTypeOrder {
		items := byType[t]
		if len(items) == 0 {
			continue
		}

		if _, err := d.Text(fmt.Sprintf("=== %s ===", t), 0, yOffset, 0, dxfGroupHeight); err != nil {
			return fmt.Errorf("draw group header: %w", err)
		}
		yOffset -= 40

		xOffset := 0.0
		rowMax := 0.0
		for _, c := range items {
			w := c.Width
			h := c.SpanMM()

			for piece := 0; piece < c.Quantity; piece++ {
				if xOffset+w+dxfMargin > dxfRowLimit {
					xOffset = 0
					yOffset -= rowMax + dxfMargin
					rowMax = 0
				}

				if _, err := d.LwPolyline(true,
					[]float64{xOffset, yOffset},
					[]float64{xOffset + w, yOffset},
					[]float64{xOffset + w, yOffset - h},
					[]float64{xOffset, yOffset - h},
				); err != nil {
					return fmt.Errorf("draw outline: %w", err)
				}
				if _, err := d.Text(fmt.Sprintf("%gx%g", w, h), xOffset+5, yOffset-15, 0, dxfDimHeight); err != nil {
					return fmt.Errorf("draw dimension: %w", err)
				}

				if h > rowMax {
					rowMax = h
				}
				xOffset += w + dxfMargin
			}
		}

		yOffset -= rowMax + dxfMargin
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save drawing: %w", err)
	}
	return nil
}
