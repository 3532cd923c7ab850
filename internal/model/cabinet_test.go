package model

import (
	"errors"
	"testing"
)

func TestParseCabinetType(t *testing.T) {
	cases := []struct {
		in    string
		want  CabinetType
		known bool
	}{
		{"base", TypeBase, true},
		{"wall", TypeWall, true},
		{"tall", TypeTall, true},
		{"wardrobe", TypeWardrobe, true},
		{"corner", TypeCorner, true},
		{"filler", TypeFiller, true},
		{"drawer", TypeDrawer, true},
		{"auto", TypeAuto, true},
		{"  Wall  ", TypeWall, true},
		{"TALL", TypeTall, true},
		{"", TypeBase, true},
		{"cupboard", TypeBase, false},
		{"vanity", TypeBase, false},
	}
	for _, tc := range cases {
		got, known := ParseCabinetType(tc.in)
		if got != tc.want || known != tc.known {
			t.Errorf("ParseCabinetType(%q) = %s, %v; want %s, %v", tc.in, got, known, tc.want, tc.known)
		}
	}
}

func TestNewCabinet(t *testing.T) {
	cab, err := NewCabinet(CabinetRecord{
		CabinetID:   "CAB-01",
		Width:       900,
		Height:      720,
		Depth:       560,
		CabinetType: "base",
		Shelves:     2,
		Doors:       2,
		Notes:       "under sink",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cab.ID != "CAB-01" {
		t.Errorf("expected id CAB-01, got %q", cab.ID)
	}
	if cab.Type != TypeBase {
		t.Errorf("expected type base, got %s", cab.Type)
	}
	if cab.Shelves != 2 || cab.Doors != 2 || cab.Drawers != 0 {
		t.Errorf("unexpected feature counts: %d shelves, %d doors, %d drawers",
			cab.Shelves, cab.Doors, cab.Drawers)
	}
	if cab.Notes != "under sink" {
		t.Errorf("notes not passed through, got %q", cab.Notes)
	}
}

func TestNewCabinetGeneratesID(t *testing.T) {
	cab, err := NewCabinet(CabinetRecord{Width: 600, Height: 720, Depth: 560})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cab.ID == "" {
		t.Error("expected generated id for blank cabinet_id")
	}
}

func TestNewCabinetRejectsNonPositiveDimensions(t *testing.T) {
	cases := []struct {
		name  string
		rec   CabinetRecord
		field string
	}{
		{"zero width", CabinetRecord{CabinetID: "C1", Width: 0, Height: 720, Depth: 560}, "width"},
		{"negative width", CabinetRecord{CabinetID: "C2", Width: -50, Height: 720, Depth: 560}, "width"},
		{"zero height", CabinetRecord{CabinetID: "C3", Width: 600, Height: 0, Depth: 560}, "height"},
		{"zero depth", CabinetRecord{CabinetID: "C4", Width: 600, Height: 720, Depth: 0}, "depth"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewCabinet(tc.rec)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %T", err)
			}
			if verr.Field != tc.field {
				t.Errorf("expected field %q, got %q", tc.field, verr.Field)
			}
			if verr.CabinetID != tc.rec.CabinetID {
				t.Errorf("expected cabinet id %q in error, got %q", tc.rec.CabinetID, verr.CabinetID)
			}
		})
	}
}

func TestNewCabinetClampsNegativeCounts(t *testing.T) {
	cab, err := NewCabinet(CabinetRecord{
		CabinetID: "C5", Width: 600, Height: 720, Depth: 560,
		Shelves: -1, Drawers: -2, Doors: -3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cab.Shelves != 0 || cab.Drawers != 0 || cab.Doors != 0 {
		t.Errorf("expected negative counts clamped to zero, got %d/%d/%d",
			cab.Shelves, cab.Drawers, cab.Doors)
	}
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{CabinetID: "C9", Field: "width", Value: -10}
	msg := err.Error()
	if msg != "cabinet C9: width must be positive, got -10" {
		t.Errorf("unexpected message: %q", msg)
	}

	err = &ValidationError{CabinetID: "C9", Reason: "internal width -36 is not manufacturable"}
	if err.Error() != "cabinet C9: internal width -36 is not manufacturable" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestCabinetTypesCatalogCoversAllTypes(t *testing.T) {
	seen := map[CabinetType]bool{}
	for _, info := range CabinetTypes {
		seen[info.Value] = true
	}
	for _, typ := range []CabinetType{
		TypeBase, TypeWall, TypeTall, TypeWardrobe,
		TypeCorner, TypeFiller, TypeDrawer, TypeAuto,
	} {
		if !seen[typ] {
			t.Errorf("catalog missing type %s", typ)
		}
	}
}
