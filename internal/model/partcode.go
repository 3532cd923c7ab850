package model

import "fmt"

// componentCodes maps component types to short part-code prefixes.
var componentCodes = map[ComponentType]string{
	ComponentGable:         "GABLE",
	ComponentTopBottom:     "TB",
	ComponentShelf:         "SHELF",
	ComponentBack:          "BACK",
	ComponentBrace:         "BRACE",
	ComponentFiller:        "FILLER",
	ComponentDoor:          "DOOR",
	ComponentDrawerFront:   "DRAW",
	ComponentDrawerDivider: "DIVIDER",
}

// PartCode builds a workshop part code such as "GABLE-01". The index is
// threaded by the caller; numbering state is never stored on a shared
// object, so concurrent builds cannot bleed into each other.
func PartCode(t ComponentType, index int) string {
	code, ok := componentCodes[t]
	if !ok {
		code = "COMP"
	}
	return fmt.Sprintf("%s-%02d", code, index)
}

// PartCodes assigns sequential part codes to a component list, numbering
// within each component type in list order.
func PartCodes(components []Component) []string {
	counts := make(map[ComponentType]int, len(componentCodes))
	codes := make([]string, len(components))
	for i, c := range components {
		counts[c.Type]++
		codes[i] = PartCode(c.Type, counts[c.Type])
	}
	return codes
}

// MaterialName returns the stock material label for a component, e.g.
// "18mm MFC" for structural panels or "6mm MDF" for backs.
func MaterialName(t ComponentType, thickness float64) string {
	if t == ComponentBack {
		return fmt.Sprintf("%gmm MDF", thickness)
	}
	return fmt.Sprintf("%gmm MFC", thickness)
}
