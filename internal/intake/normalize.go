// Package intake normalizes cabinet records coming from upstream extractors.
// Extracted drawings are uncertain input: fields go missing and types arrive
// as free text. Intake fills documented defaults and reports
// anything suspicious as warnings, then hands clean records to the cutting
// list builder, which does the hard validation.
package intake

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/piwi3910/cabplan/internal/model"
)

// Default dimensions applied when the extractor omitted a field, in mm.
const (
	DefaultHeight = 720
	DefaultDepth  = 560
)

// Features carries the optional per-cabinet extras an extractor may detect.
// Pointers distinguish "absent" from an explicit zero.
type Features struct {
	Shelves *int   `json:"shelves,omitempty"`
	Drawers *int   `json:"drawers,omitempty"`
	Doors   *int   `json:"doors,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// RawCabinet mirrors the upstream extraction payload for one cabinet.
type RawCabinet struct {
	CabinetID string   `json:"cabinet_id"`
	Type      string   `json:"type"`
	Width     float64  `json:"width"`  // mm
	Height    *float64 `json:"height"` // mm, defaulted when absent
	Depth     *float64 `json:"depth"`  // mm, defaulted when absent
	Features  Features `json:"features"`
}

// typeAliases maps trade names onto the canonical cabinet types before
// parsing. Anything still unknown after this falls back to base.
var typeAliases = map[string]string{
	"pantry": "tall",
	"larder": "tall",
}

// Normalizer turns raw extraction records into builder-ready cabinet records.
type Normalizer struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.L()
	}
	return &Normalizer{log: log}
}

// Normalize fills defaults, resolves type aliases, and generates ids for
// blank records. It returns the normalized records together with a list of
// human-readable warnings; records always pass through regardless of
// warnings.
func (n *Normalizer) Normalize(raw []RawCabinet) ([]model.CabinetRecord, []string) {
	if len(raw) == 0 {
		n.log.Warn("no cabinets to normalize")
		return []model.CabinetRecord{}, nil
	}

	n.log.Info("normalizing cabinets", zap.Int("count", len(raw)))

	records := make([]model.CabinetRecord, 0, len(raw))
	var warnings []string
	for _, rc := range raw {
		rec, w := n.normalizeOne(rc)
		records = append(records, rec)
		warnings = append(warnings, w...)

		n.log.Debug("normalized cabinet",
			zap.String("cabinet_id", rec.CabinetID),
			zap.String("cabinet_type", rec.CabinetType),
			zap.Float64("width", rec.Width),
			zap.Float64("height", rec.Height),
			zap.Float64("depth", rec.Depth))
	}
	return records, warnings
}

func (n *Normalizer) normalizeOne(rc RawCabinet) (model.CabinetRecord, []string) {
	var warnings []string

	id := strings.TrimSpace(rc.CabinetID)
	if id == "" {
		id = "CAB-" + uuid.New().String()[:8]
		warnings = append(warnings, fmt.Sprintf("cabinet without id assigned %s", id))
	}

	typ, warn := n.normalizeType(id, rc.Type)
	if warn != "" {
		warnings = append(warnings, warn)
	}

	rec := model.CabinetRecord{
		CabinetID:   id,
		CabinetType: typ,
		Width:       rc.Width,
		Height:      DefaultHeight,
		Depth:       DefaultDepth,
		Shelves:     1,
		Drawers:     0,
		Doors:       1,
		Notes:       rc.Features.Notes,
	}
	if rc.Height != nil {
		rec.Height = *rc.Height
	} else {
		warnings = append(warnings, fmt.Sprintf("cabinet %s: height missing, defaulted to %dmm", id, DefaultHeight))
	}
	if rc.Depth != nil {
		rec.Depth = *rc.Depth
	} else {
		warnings = append(warnings, fmt.Sprintf("cabinet %s: depth missing, defaulted to %dmm", id, DefaultDepth))
	}
	if rc.Features.Shelves != nil {
		rec.Shelves = *rc.Features.Shelves
	}
	if rc.Features.Drawers != nil {
		rec.Drawers = *rc.Features.Drawers
	}
	if rc.Features.Doors != nil {
		rec.Doors = *rc.Features.Doors
	}

	warnings = append(warnings, n.rangeWarnings(rec)...)
	return rec, warnings
}

// normalizeType resolves aliases and reports unknown types. The returned
// string is always a canonical type name.
func (n *Normalizer) normalizeType(id, raw string) (string, string) {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if alias, ok := typeAliases[cleaned]; ok {
		n.log.Debug("normalized cabinet type",
			zap.String("cabinet_id", id),
			zap.String("from", cleaned),
			zap.String("to", alias))
		cleaned = alias
	}

	typ, known := model.ParseCabinetType(cleaned)
	if !known {
		n.log.Info("unknown cabinet type, using base",
			zap.String("cabinet_id", id),
			zap.String("cabinet_type", raw))
		return string(typ), fmt.Sprintf("cabinet %s: unknown type %q, using base", id, raw)
	}
	return string(typ), ""
}

// rangeWarnings flags dimensions outside plausible joinery ranges. One
// warning covers the basic envelope; per-type typical ranges are logged at
// debug only, since they are advisory.
func (n *Normalizer) rangeWarnings(rec model.CabinetRecord) []string {
	var warnings []string

	if rec.Width < 100 || rec.Width > 2000 ||
		rec.Height < 200 || rec.Height > 3000 ||
		rec.Depth < 200 || rec.Depth > 1000 {
		warnings = append(warnings, fmt.Sprintf("cabinet %s: unusual dimensions %g×%g×%gmm",
			rec.CabinetID, rec.Width, rec.Height, rec.Depth))
		n.log.Warn("unusual dimensions",
			zap.String("cabinet_id", rec.CabinetID),
			zap.Float64("width", rec.Width),
			zap.Float64("height", rec.Height),
			zap.Float64("depth", rec.Depth))
	}

	switch rec.CabinetType {
	case string(model.TypeBase):
		if rec.Height < 600 || rec.Height > 900 {
			n.log.Debug("base height outside typical range (600-900mm)",
				zap.String("cabinet_id", rec.CabinetID), zap.Float64("height", rec.Height))
		}
		if rec.Depth < 500 || rec.Depth > 650 {
			n.log.Debug("base depth outside typical range (500-650mm)",
				zap.String("cabinet_id", rec.CabinetID), zap.Float64("depth", rec.Depth))
		}
	case string(model.TypeWall):
		if rec.Height < 500 || rec.Height > 900 {
			n.log.Debug("wall height outside typical range (500-900mm)",
				zap.String("cabinet_id", rec.CabinetID), zap.Float64("height", rec.Height))
		}
		if rec.Depth < 300 || rec.Depth > 400 {
			n.log.Debug("wall depth outside typical range (300-400mm)",
				zap.String("cabinet_id", rec.CabinetID), zap.Float64("depth", rec.Depth))
		}
	case string(model.TypeTall):
		if rec.Height < 1500 || rec.Height > 2500 {
			n.log.Debug("tall height outside typical range (1500-2500mm)",
				zap.String("cabinet_id", rec.CabinetID), zap.Float64("height", rec.Height))
		}
	case string(model.TypeFiller):
		if rec.Width >= 200 {
			n.log.Debug("filler width at or above 200mm, will be cut as a carcass",
				zap.String("cabinet_id", rec.CabinetID), zap.Float64("width", rec.Width))
		}
	}
	return warnings
}
