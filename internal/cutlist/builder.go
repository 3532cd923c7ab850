package cutlist

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/piwi3910/cabplan/internal/model"
	"github.com/piwi3910/cabplan/internal/rules"
)

// fillerMaxWidth is the width below which a filler-typed record is cut as a
// plain strip instead of a full carcass, in mm.
const fillerMaxWidth = 200

// Result is one complete cutting list: the flattened line items, the
// aggregate summary, and the style the list was cut for.
type Result struct {
	Components []model.Component       `json:"components"`
	Summary    model.Summary           `json:"summary"`
	Style      model.ConstructionStyle `json:"construction_style"`
}

// Builder turns raw cabinet records into a cutting list. One Builder per
// style; Build itself is pure computation and safe to call concurrently.
type Builder struct {
	style  model.ConstructionStyle
	calc   *rules.Calculator
	fronts bool
	log    *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithFronts enables door, drawer front, and drawer divider panels in the
// output. The default cutting list covers the carcass only.
func WithFronts(enabled bool) Option {
	return func(b *Builder) { b.fronts = enabled }
}

// WithLogger replaces the process-global logger.
func WithLogger(log *zap.Logger) Option {
	return func(b *Builder) { b.log = log }
}

func New(style model.ConstructionStyle, opts ...Option) *Builder {
	b := &Builder{
		style: style,
		calc:  rules.NewCalculator(style),
		log:   zap.L(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build generates the cutting list for a batch of cabinet records. An empty
// batch returns a well-formed empty result. Records that fail validation are
// logged with their cabinet id and skipped, so one malformed cabinet never
// takes down the batch. A formula defect does abort with an error: wrong
// geometry must never reach the workshop looking plausible.
func (b *Builder) Build(records []model.CabinetRecord) (Result, error) {
	b.log.Info("building cutting list",
		zap.Int("cabinets", len(records)),
		zap.String("back_mode", string(b.style.BackMode)))

	if len(records) == 0 {
		b.log.Warn("no cabinets provided")
		return b.emptyResult(), nil
	}

	var components []model.Component
	for _, rec := range records {
		comps, err := b.cabinetComponents(rec)
		if err != nil {
			var verr *model.ValidationError
			if errors.As(err, &verr) {
				b.log.Warn("skipping cabinet",
					zap.String("cabinet_id", verr.CabinetID),
					zap.Error(err))
				continue
			}
			return Result{}, err
		}
		components = append(components, comps...)
	}

	if len(components) == 0 {
		b.log.Error("no components generated")
		return b.emptyResult(), nil
	}

	result := Result{
		Components: components,
		Summary:    model.Summarize(components, len(records)),
		Style:      b.style,
	}
	b.log.Info("cutting list complete",
		zap.Int("components", result.Summary.TotalComponents),
		zap.Int("pieces", result.Summary.TotalPieces),
		zap.Float64("area_m2", result.Summary.TotalAreaM2))
	return result, nil
}

func (b *Builder) emptyResult() Result {
	return Result{
		Components: []model.Component{},
		Summary:    model.Summarize(nil, 0),
		Style:      b.style,
	}
}

// cabinetComponents validates one record and produces its line items.
// Narrow filler strips bypass the family calculator entirely.
func (b *Builder) cabinetComponents(rec model.CabinetRecord) ([]model.Component, error) {
	if _, known := model.ParseCabinetType(rec.CabinetType); !known {
		b.log.Info("unknown cabinet type, using base",
			zap.String("cabinet_id", rec.CabinetID),
			zap.String("cabinet_type", rec.CabinetType))
	}

	cab, err := model.NewCabinet(rec)
	if err != nil {
		return nil, err
	}

	if cab.Type == model.TypeFiller && cab.Width < fillerMaxWidth {
		return []model.Component{fillerPanel(cab, b.style)}, nil
	}

	bd, err := b.breakdown(cab)
	if err != nil {
		return nil, err
	}
	return flatten(cab.ID, bd), nil
}

func (b *Builder) breakdown(cab model.Cabinet) (model.Breakdown, error) {
	if b.fronts {
		return b.calc.CalculateWithFronts(cab)
	}
	return b.calc.Calculate(cab)
}

// fillerPanel cuts a narrow filler as a single strip: the measured depth
// becomes the strip width and the height is kept.
func fillerPanel(cab model.Cabinet, style model.ConstructionStyle) model.Component {
	height := math.Round(cab.Height)
	depth := math.Round(cab.Depth)
	return model.Component{
		Type:        model.ComponentFiller,
		PartName:    fmt.Sprintf("Filler Panel (%s)", cab.ID),
		CabinetID:   cab.ID,
		Width:       depth,
		Height:      height,
		Quantity:    1,
		Thickness:   style.MaterialThickness,
		EdgeBanding: "All visible edges",
		Formula:     fmt.Sprintf("%g × %g", height, depth),
	}
}

// bandingNotes maps a panel kind to its banding note: carcass panels are
// banded on the exposed front edge, fronts all round, hidden panels not at
// all.
func bandingNotes(t model.ComponentType) string {
	switch t {
	case model.ComponentGable, model.ComponentTopBottom, model.ComponentShelf, model.ComponentDrawerDivider:
		return "Front edge"
	case model.ComponentDoor, model.ComponentDrawerFront:
		return "All edges"
	default:
		return "None"
	}
}

// flatten expands a breakdown into cutting-list line items. Tops and bottoms
// split into two named records and shelves into one numbered record per
// shelf, each quantity 1; gables, backs, and braces stay single records
// carrying their own quantity.
func flatten(cabinetID string, bd model.Breakdown) []model.Component {
	out := make([]model.Component, 0, 6+bd.Shelves.Quantity+len(bd.Fronts))

	out = append(out, model.Component{
		Type:        model.ComponentGable,
		PartName:    fmt.Sprintf("Gable (%s)", cabinetID),
		CabinetID:   cabinetID,
		Width:       bd.Gables.Width,
		Height:      bd.Gables.Height,
		Quantity:    bd.Gables.Quantity,
		Thickness:   bd.Gables.Thickness,
		EdgeBanding: bandingNotes(model.ComponentGable),
	})

	for _, name := range []string{"Top Panel", "Bottom Panel"} {
		out = append(out, model.Component{
			Type:        model.ComponentTopBottom,
			PartName:    fmt.Sprintf("%s (%s)", name, cabinetID),
			CabinetID:   cabinetID,
			Width:       bd.TopBottom.Width,
			Depth:       bd.TopBottom.Depth,
			Quantity:    1,
			Thickness:   bd.TopBottom.Thickness,
			EdgeBanding: bandingNotes(model.ComponentTopBottom),
		})
	}

	for i := 1; i <= bd.Shelves.Quantity; i++ {
		out = append(out, model.Component{
			Type:        model.ComponentShelf,
			PartName:    fmt.Sprintf("Shelf %d (%s)", i, cabinetID),
			CabinetID:   cabinetID,
			Width:       bd.Shelves.Width,
			Depth:       bd.Shelves.Depth,
			Quantity:    1,
			Thickness:   bd.Shelves.Thickness,
			EdgeBanding: bandingNotes(model.ComponentShelf),
		})
	}

	out = append(out, model.Component{
		Type:        model.ComponentBack,
		PartName:    fmt.Sprintf("Back Panel (%s)", cabinetID),
		CabinetID:   cabinetID,
		Width:       bd.Back.Width,
		Height:      bd.Back.Height,
		Quantity:    bd.Back.Quantity,
		Thickness:   bd.Back.Thickness,
		EdgeBanding: bandingNotes(model.ComponentBack),
		Notes:       bd.Back.Notes,
	})

	out = append(out, model.Component{
		Type:        model.ComponentBrace,
		PartName:    fmt.Sprintf("Rail (%s)", cabinetID),
		CabinetID:   cabinetID,
		Width:       bd.Braces.Width,
		Height:      bd.Braces.Height,
		Quantity:    bd.Braces.Quantity,
		Thickness:   bd.Braces.Thickness,
		EdgeBanding: bandingNotes(model.ComponentBrace),
		Notes:       bd.Braces.Notes,
	})

	return append(out, flattenFronts(cabinetID, bd.Fronts)...)
}

// flattenFronts names drawer fronts and dividers with a running index per
// type; door records keep their own quantity like gables do.
func flattenFronts(cabinetID string, fronts []model.PanelSpec) []model.Component {
	var out []model.Component
	counts := map[model.ComponentType]int{}

	for _, f := range fronts {
		counts[f.Type]++
		var name string
		switch f.Type {
		case model.ComponentDoor:
			name = fmt.Sprintf("Door (%s)", cabinetID)
		case model.ComponentDrawerFront:
			name = fmt.Sprintf("Drawer Front %d (%s)", counts[f.Type], cabinetID)
		case model.ComponentDrawerDivider:
			name = fmt.Sprintf("Drawer Divider %d (%s)", counts[f.Type], cabinetID)
		default:
			name = fmt.Sprintf("%s (%s)", f.Type, cabinetID)
		}

		out = append(out, model.Component{
			Type:        f.Type,
			PartName:    name,
			CabinetID:   cabinetID,
			Width:       f.Width,
			Height:      f.Height,
			Depth:       f.Depth,
			Quantity:    f.Quantity,
			Thickness:   f.Thickness,
			EdgeBanding: bandingNotes(f.Type),
			Notes:       f.Notes,
		})
	}
	return out
}
