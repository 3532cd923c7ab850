package model

import "strings"

// BackMode selects how the back panel fits the carcass.
type BackMode string

const (
	BackOverlay BackMode = "overlay" // Back fixed to the rear face, full internal depth
	BackInset   BackMode = "inset"   // Back sits between the gables, reduces panel depth
)

// ParseBackMode normalizes a caller-supplied mode string.
// Unknown or empty values fall back to overlay.
func ParseBackMode(s string) (BackMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(BackOverlay):
		return BackOverlay, true
	case string(BackInset):
		return BackInset, true
	}
	return BackOverlay, false
}

// ConstructionStyle holds the material and clearance parameters that drive
// every panel formula. It is a value object: construct it once per request
// and pass it by value, never mutate a shared instance.
type ConstructionStyle struct {
	MaterialThickness float64     `json:"material_thickness"` // mm, structural panels
	BackThickness     float64     `json:"back_thickness"`     // mm, back panels
	CabinetType       CabinetType `json:"cabinet_type"`       // default family when not auto-detected
	ToeKickHeight     float64     `json:"toe_kick_height"`    // mm, kitchen base units
	WardrobeToeKick   float64     `json:"wardrobe_toe_kick"`  // mm, bedroom wardrobes
	DoorGap           float64     `json:"door_gap"`           // mm, clearance reserved around doors
	BackMode          BackMode    `json:"back_construction_mode"`
}

// DefaultStyle returns the standard kitchen construction style.
func DefaultStyle() ConstructionStyle {
	return ConstructionStyle{
		MaterialThickness: 18,
		BackThickness:     6,
		CabinetType:       TypeBase,
		ToeKickHeight:     150,
		WardrobeToeKick:   100,
		DoorGap:           2,
		BackMode:          BackOverlay,
	}
}

// PanelDepth returns the usable depth for horizontal panels given the
// family's nominal panel depth. An inset back consumes part of the carcass
// depth; an overlay back does not.
func (s ConstructionStyle) PanelDepth(nominal float64) float64 {
	if s.BackMode == BackInset {
		return nominal - s.BackThickness
	}
	return nominal
}

// InternalWidth returns the usable interior span: cabinet width minus both
// gables' material thickness.
func (s ConstructionStyle) InternalWidth(width float64) float64 {
	return width - 2*s.MaterialThickness
}

// BackModeInfo describes one back construction mode for catalogs and CLI help.
type BackModeInfo struct {
	Value       BackMode `json:"value"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
}

// BackModes lists the available back construction modes.
var BackModes = []BackModeInfo{
	{
		Value:       BackOverlay,
		Label:       "Overlay (Back nailed to rear, full internal depth)",
		Description: "Back panel attached to the back of carcass. Does not reduce internal depth.",
	},
	{
		Value:       BackInset,
		Label:       "Inset (Back fits inside, reduces internal depth)",
		Description: "Back panel fits inside carcass. Reduces internal depth by back thickness.",
	},
}

// NamedStyle is a ConstructionStyle saved under a reusable name.
type NamedStyle struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Style       ConstructionStyle `json:"style"`
	IsBuiltIn   bool              `json:"is_built_in,omitempty"`
}

// Built-in construction styles
var BuiltInStyles = []NamedStyle{
	{
		Name:        "Standard Overlay",
		Description: "18mm carcass, 6mm overlay back, kitchen toe kick",
		Style:       DefaultStyle(),
		IsBuiltIn:   true,
	},
	{
		Name:        "Inset Back",
		Description: "18mm carcass, 6mm back set inside the gables",
		Style:       insetStyle(),
		IsBuiltIn:   true,
	},
}

func insetStyle() ConstructionStyle {
	s := DefaultStyle()
	s.BackMode = BackInset
	return s
}

// GetBuiltInStyle returns a built-in style by name, or Standard Overlay if
// not found.
func GetBuiltInStyle(name string) NamedStyle {
	for _, s := range BuiltInStyles {
		if s.Name == name {
			return s
		}
	}
	return BuiltInStyles[0] // Return Standard Overlay (first one)
}

// BuiltInStyleNames returns a list of all built-in style names.
func BuiltInStyleNames() []string {
	var names []string
	for _, s := range BuiltInStyles {
		names = append(names, s.Name)
	}
	return names
}
