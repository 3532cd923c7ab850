package rules

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cabplan/internal/model"
)

func testCabinet(id string, w, h, d float64, typ model.CabinetType) model.Cabinet {
	return model.Cabinet{ID: id, Width: w, Height: h, Depth: d, Type: typ, Shelves: 1, Doors: 1}
}

func TestDetectFamily(t *testing.T) {
	cases := []struct {
		name    string
		w, h, d float64
		want    model.Family
	}{
		{"tall wins above 1500", 600, 2000, 560, model.FamilyTall},
		{"boundary 1500 is not tall", 600, 1500, 560, model.FamilyBase},
		{"shallow and low is wall", 600, 720, 300, model.FamilyWall},
		{"wall boundary height 900", 600, 900, 400, model.FamilyWall},
		{"too deep for wall", 600, 720, 450, model.FamilyBase},
		{"deep tall unit stays tall", 1000, 2200, 560, model.FamilyTall},
		{"default is base", 900, 720, 560, model.FamilyBase},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectFamily(tc.w, tc.h, tc.d))
		})
	}
}

func TestResolveFamily(t *testing.T) {
	cases := []struct {
		typ  model.CabinetType
		want model.Family
	}{
		{model.TypeBase, model.FamilyBase},
		{model.TypeWall, model.FamilyWall},
		{model.TypeTall, model.FamilyTall},
		{model.TypeWardrobe, model.FamilyWardrobe},
		{model.TypeCorner, model.FamilyBase},
		{model.TypeFiller, model.FamilyBase},
		{model.TypeDrawer, model.FamilyBase},
	}
	for _, tc := range cases {
		cab := testCabinet("C", 600, 720, 560, tc.typ)
		assert.Equal(t, tc.want, ResolveFamily(cab), "type %s", tc.typ)
	}
}

func TestResolveFamily_AutoUsesGeometry(t *testing.T) {
	cab := testCabinet("C", 600, 2000, 560, model.TypeAuto)
	assert.Equal(t, model.FamilyTall, ResolveFamily(cab))
}

func TestCalculate_BaseCabinet(t *testing.T) {
	// The 900mm base unit: internal width 864, standard 720/560 carcass.
	calc := NewCalculator(model.DefaultStyle())
	cab := testCabinet("B1", 900, 720, 560, model.TypeBase)

	bd, err := calc.Calculate(cab)
	require.NoError(t, err)

	assert.Equal(t, model.FamilyBase, bd.Family)
	assert.Equal(t, 864.0, bd.Overall.InternalWidth)

	assert.Equal(t, 560.0, bd.Gables.Width)
	assert.Equal(t, 720.0, bd.Gables.Height)
	assert.Equal(t, 2, bd.Gables.Quantity)

	assert.Equal(t, 864.0, bd.TopBottom.Width)
	assert.Equal(t, 500.0, bd.TopBottom.Depth)
	assert.Equal(t, 2, bd.TopBottom.Quantity)

	assert.Equal(t, 864.0, bd.Shelves.Width)
	assert.Equal(t, 500.0, bd.Shelves.Depth)
	assert.Equal(t, 1, bd.Shelves.Quantity)

	assert.Equal(t, 864.0, bd.Back.Width)
	assert.Equal(t, 720.0, bd.Back.Height)
	assert.Equal(t, 6.0, bd.Back.Thickness, "back uses the thin stock")

	assert.Equal(t, 864.0, bd.Braces.Width)
	assert.Equal(t, 100.0, bd.Braces.Height)
	assert.Equal(t, 1, bd.Braces.Quantity, "base units are braced on top only")
	assert.Equal(t, "Top only - hollow basis", bd.Braces.Notes)
}

func TestCalculate_BaseCabinetIgnoresCallerHeightAndDepth(t *testing.T) {
	// Base units are cut to the workshop standard regardless of what was
	// measured off the drawing.
	calc := NewCalculator(model.DefaultStyle())

	a, err := calc.Calculate(testCabinet("A", 900, 850, 640, model.TypeBase))
	require.NoError(t, err)
	b, err := calc.Calculate(testCabinet("B", 900, 720, 560, model.TypeBase))
	require.NoError(t, err)

	assert.Equal(t, b.Gables, a.Gables)
	assert.Equal(t, b.TopBottom, a.TopBottom)
	assert.Equal(t, b.Back, a.Back)
}

func TestCalculate_WallCabinet(t *testing.T) {
	// 600x900 wall unit: internal width 564, two shelves above 700mm,
	// braced top and bottom.
	calc := NewCalculator(model.DefaultStyle())
	cab := testCabinet("W1", 600, 900, 300, model.TypeWall)

	bd, err := calc.Calculate(cab)
	require.NoError(t, err)

	assert.Equal(t, 564.0, bd.Overall.InternalWidth)
	assert.Equal(t, 300.0, bd.Gables.Width)
	assert.Equal(t, 900.0, bd.Gables.Height)
	assert.Equal(t, 280.0, bd.TopBottom.Depth)
	assert.Equal(t, 2, bd.Shelves.Quantity, "900mm wall unit gets a second shelf")
	assert.Equal(t, 900.0, bd.Back.Height, "wall backs use the caller's height")
	assert.Equal(t, 2, bd.Braces.Quantity)
	assert.Equal(t, "Top and bottom for wall mounting", bd.Braces.Notes)
}

func TestCalculate_WallCabinetShelfBoundary(t *testing.T) {
	calc := NewCalculator(model.DefaultStyle())

	low, err := calc.Calculate(testCabinet("W", 600, 700, 300, model.TypeWall))
	require.NoError(t, err)
	assert.Equal(t, 1, low.Shelves.Quantity, "700mm is still a single-shelf unit")

	high, err := calc.Calculate(testCabinet("W", 600, 701, 300, model.TypeWall))
	require.NoError(t, err)
	assert.Equal(t, 2, high.Shelves.Quantity)
}

func TestCalculate_TallCabinet(t *testing.T) {
	calc := NewCalculator(model.DefaultStyle())
	cab := testCabinet("T1", 600, 2100, 560, model.TypeTall)

	bd, err := calc.Calculate(cab)
	require.NoError(t, err)

	assert.Equal(t, 560.0, bd.Gables.Width)
	assert.Equal(t, 2100.0, bd.Gables.Height)
	assert.Equal(t, 500.0, bd.TopBottom.Depth)
	// (2100-200)/400 = 4.75 -> 4 shelves
	assert.Equal(t, 4, bd.Shelves.Quantity)
	assert.Equal(t, 2, bd.Braces.Quantity)
}

func TestCalculate_TallCabinetShelfMinimum(t *testing.T) {
	calc := NewCalculator(model.DefaultStyle())

	bd, err := calc.Calculate(testCabinet("T2", 600, 1600, 560, model.TypeTall))
	require.NoError(t, err)
	// (1600-200)/400 = 3.5 -> 3 shelves
	assert.Equal(t, 3, bd.Shelves.Quantity)

	bd, err = calc.Calculate(testCabinet("T3", 600, 1501, 560, model.TypeTall))
	require.NoError(t, err)
	// (1501-200)/400 rounds down to 3
	assert.Equal(t, 3, bd.Shelves.Quantity)
}

func TestCalculate_Wardrobe(t *testing.T) {
	// 1000x2200x560 wardrobe: internal width 964, four shelves, tops 30mm
	// and shelves 40mm short of the carcass depth.
	calc := NewCalculator(model.DefaultStyle())
	cab := testCabinet("WR1", 1000, 2200, 560, model.TypeWardrobe)

	bd, err := calc.Calculate(cab)
	require.NoError(t, err)

	assert.Equal(t, 964.0, bd.Overall.InternalWidth)
	assert.Equal(t, 560.0, bd.Gables.Width, "wardrobe gables run the full depth")
	assert.Equal(t, 2200.0, bd.Gables.Height)
	assert.Equal(t, 530.0, bd.TopBottom.Depth)
	assert.Equal(t, 520.0, bd.Shelves.Depth)
	// (2200-200)/500 = 4 shelves
	assert.Equal(t, 4, bd.Shelves.Quantity)
	assert.Equal(t, "20mm from wall edge", bd.Back.Notes)
	assert.Equal(t, 2, bd.Braces.Quantity)
}

func TestCalculate_WardrobeShelfMinimum(t *testing.T) {
	calc := NewCalculator(model.DefaultStyle())

	bd, err := calc.Calculate(testCabinet("WR2", 1000, 1600, 560, model.TypeWardrobe))
	require.NoError(t, err)
	// (1600-200)/500 = 2.8 -> 2 shelves, the floor of the formula
	assert.Equal(t, 2, bd.Shelves.Quantity)
}

func TestCalculate_InsetBackReducesPanelDepth(t *testing.T) {
	style := model.DefaultStyle()
	style.BackMode = model.BackInset
	calc := NewCalculator(style)

	bd, err := calc.Calculate(testCabinet("B1", 900, 720, 560, model.TypeBase))
	require.NoError(t, err)
	assert.Equal(t, 494.0, bd.TopBottom.Depth, "inset back takes 6mm off the panel depth")
	assert.Equal(t, 494.0, bd.Shelves.Depth)
	assert.Equal(t, 560.0, bd.Gables.Width, "gables are not affected by the back mode")
	assert.Equal(t, 720.0, bd.Back.Height, "the back panel itself is not affected")

	wr, err := calc.Calculate(testCabinet("WR", 1000, 2200, 560, model.TypeWardrobe))
	require.NoError(t, err)
	assert.Equal(t, 524.0, wr.TopBottom.Depth)
	assert.Equal(t, 514.0, wr.Shelves.Depth)
}

func TestCalculate_RejectsTooNarrowCabinet(t *testing.T) {
	calc := NewCalculator(model.DefaultStyle())

	// 36mm wide leaves exactly zero internal width; 30mm goes negative.
	for _, width := range []float64{36, 30} {
		_, err := calc.Calculate(testCabinet("N1", width, 720, 560, model.TypeBase))
		require.Error(t, err)

		var verr *model.ValidationError
		require.True(t, errors.As(err, &verr), "want ValidationError, got %T", err)
		assert.Equal(t, "N1", verr.CabinetID)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	calc := NewCalculator(model.DefaultStyle())
	cab := testCabinet("D1", 800, 2100, 560, model.TypeAuto)

	first, err := calc.Calculate(cab)
	require.NoError(t, err)
	second, err := calc.Calculate(cab)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must produce identical output")
}

func TestCalculate_AllFamiliesPositivePanels(t *testing.T) {
	// Every family must emit strictly positive panel dimensions for valid
	// input across a spread of sizes.
	calc := NewCalculator(model.DefaultStyle())

	cabinets := []model.Cabinet{
		testCabinet("P1", 400, 720, 560, model.TypeBase),
		testCabinet("P2", 1000, 720, 560, model.TypeBase),
		testCabinet("P3", 300, 600, 300, model.TypeWall),
		testCabinet("P4", 900, 900, 350, model.TypeWall),
		testCabinet("P5", 450, 1800, 560, model.TypeTall),
		testCabinet("P6", 700, 2400, 560, model.TypeTall),
		testCabinet("P7", 500, 1800, 560, model.TypeWardrobe),
		testCabinet("P8", 1200, 2800, 600, model.TypeWardrobe),
	}

	for _, cab := range cabinets {
		bd, err := calc.Calculate(cab)
		require.NoError(t, err, "cabinet %s", cab.ID)

		for _, p := range []model.PanelSpec{bd.Gables, bd.TopBottom, bd.Shelves, bd.Back, bd.Braces} {
			assert.Greater(t, p.Width, 0.0, "cabinet %s %s width", cab.ID, p.Type)
			span := p.Height
			if span == 0 {
				span = p.Depth
			}
			assert.Greater(t, span, 0.0, "cabinet %s %s span", cab.ID, p.Type)
			assert.GreaterOrEqual(t, p.Quantity, 1, "cabinet %s %s quantity", cab.ID, p.Type)
		}
	}
}

func TestCalculate_RoundsFractionalInput(t *testing.T) {
	calc := NewCalculator(model.DefaultStyle())

	bd, err := calc.Calculate(testCabinet("F1", 900.4, 720, 560, model.TypeBase))
	require.NoError(t, err)
	assert.Equal(t, 864.0, bd.TopBottom.Width, "internal width is rounded to whole mm")
}
