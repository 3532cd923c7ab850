package model

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// CabinetType identifies the requested cabinet family as supplied by the
// caller. TypeAuto defers the family decision to geometry detection.
type CabinetType string

const (
	TypeBase     CabinetType = "base"
	TypeWall     CabinetType = "wall"
	TypeTall     CabinetType = "tall"
	TypeWardrobe CabinetType = "wardrobe"
	TypeCorner   CabinetType = "corner"
	TypeFiller   CabinetType = "filler"
	TypeDrawer   CabinetType = "drawer"
	TypeAuto     CabinetType = "auto"
)

// ParseCabinetType normalizes a caller-supplied type string. Unknown values
// fall back to base: upstream extraction confidence is uncertain, so a bad
// type must not reject the cabinet. The second return reports whether the
// value was recognized; empty input counts as recognized (it simply means
// the caller did not specify a type).
func ParseCabinetType(s string) (CabinetType, bool) {
	switch CabinetType(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return TypeBase, true
	case TypeBase:
		return TypeBase, true
	case TypeWall:
		return TypeWall, true
	case TypeTall:
		return TypeTall, true
	case TypeWardrobe:
		return TypeWardrobe, true
	case TypeCorner:
		return TypeCorner, true
	case TypeFiller:
		return TypeFiller, true
	case TypeDrawer:
		return TypeDrawer, true
	case TypeAuto:
		return TypeAuto, true
	}
	return TypeBase, false
}

// CabinetTypeInfo describes one cabinet type for catalogs and CLI help.
type CabinetTypeInfo struct {
	Value        CabinetType `json:"value"`
	Label        string      `json:"label"`
	Description  string      `json:"description"`
	TypicalWidth string      `json:"typical_width"`
}

// CabinetTypes lists the accepted cabinet types. This slice is the single
// source of truth for the type taxonomy.
var CabinetTypes = []CabinetTypeInfo{
	{TypeBase, "Base Cabinet", "Standard floor cabinet (fixed 720mm carcass, 560mm deep)", "400-1000mm"},
	{TypeWall, "Wall Cabinet", "Wall-mounted cabinet above the counter (300mm deep)", "300-900mm"},
	{TypeTall, "Tall Cabinet", "Floor-to-ceiling pantry or oven housing", "450-700mm"},
	{TypeWardrobe, "Wardrobe", "Bedroom fitted unit, full height and depth", "500-1200mm"},
	{TypeCorner, "Corner Cabinet", "Corner unit, cut as a standard base carcass", "900mm+"},
	{TypeFiller, "Filler Panel", "Decorative filler piece, no carcass", "< 200mm"},
	{TypeDrawer, "Drawer Base", "Base cabinet with a drawer stack", "400-600mm"},
	{TypeAuto, "Auto-detect", "Family inferred from the measured geometry", "Variable"},
}

// CabinetRecord is one raw cabinet entry as delivered by the upstream
// extraction step or an imported schedule. Values are untrusted; the builder
// validates every record before any geometry is calculated.
type CabinetRecord struct {
	CabinetID   string  `json:"cabinet_id"`
	Width       float64 `json:"width"`  // mm
	Height      float64 `json:"height"` // mm
	Depth       float64 `json:"depth"`  // mm
	CabinetType string  `json:"cabinet_type"`
	Shelves     int     `json:"shelves"`
	Drawers     int     `json:"drawers"`
	Doors       int     `json:"doors"`
	Notes       string  `json:"notes"`
}

// Cabinet is one validated cabinet unit to be manufactured. It is built
// fresh per request and never mutated afterwards.
type Cabinet struct {
	ID      string
	Width   float64 // mm
	Height  float64 // mm
	Depth   float64 // mm
	Type    CabinetType
	Shelves int
	Drawers int
	Doors   int
	Notes   string
}

// NewCabinet validates a raw record into a Cabinet. A blank id gets a
// generated one; non-positive dimensions are rejected with a ValidationError
// naming the offending field.
func NewCabinet(rec CabinetRecord) (Cabinet, error) {
	id := strings.TrimSpace(rec.CabinetID)
	if id == "" {
		id = "CAB-" + uuid.New().String()[:8]
	}

	dims := []struct {
		field string
		value float64
	}{
		{"width", rec.Width},
		{"height", rec.Height},
		{"depth", rec.Depth},
	}
	for _, d := range dims {
		if d.value <= 0 {
			return Cabinet{}, &ValidationError{CabinetID: id, Field: d.field, Value: d.value}
		}
	}

	typ, _ := ParseCabinetType(rec.CabinetType)

	return Cabinet{
		ID:      id,
		Width:   rec.Width,
		Height:  rec.Height,
		Depth:   rec.Depth,
		Type:    typ,
		Shelves: clampCount(rec.Shelves),
		Drawers: clampCount(rec.Drawers),
		Doors:   clampCount(rec.Doors),
		Notes:   rec.Notes,
	}, nil
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ValidationError reports an input dimension that makes a cabinet
// unmanufacturable.
type ValidationError struct {
	CabinetID string
	Field     string
	Value     float64
	Reason    string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cabinet %s: %s", e.CabinetID, e.Reason)
	}
	return fmt.Sprintf("cabinet %s: %s must be positive, got %g", e.CabinetID, e.Field, e.Value)
}
