package cutlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/cabplan/internal/model"
)

func TestTableRows(t *testing.T) {
	b := newTestBuilder()
	result, err := b.Build([]model.CabinetRecord{record("B1", "base", 900, 720, 560)})
	require.NoError(t, err)

	rows := TableRows(result.Components)
	require.Len(t, rows, len(result.Components))
	for _, row := range rows {
		assert.Len(t, row, len(TableColumns))
	}

	assert.Equal(t, []string{
		"B1", "GABLE", "Gable (B1)", "560", "720", "", "2", "18", "Front edge", "",
	}, rows[0])

	// Horizontal panels repeat their depth in the height column so both saw
	// dimensions sit side by side.
	assert.Equal(t, []string{
		"B1", "T/B", "Top Panel (B1)", "864", "500", "500", "1", "18", "Front edge", "",
	}, rows[1])

	assert.Equal(t, []string{
		"B1", "BACKS", "Back Panel (B1)", "864", "720", "", "1", "6", "None", "",
	}, rows[4])
}

func TestTableRows_Filler(t *testing.T) {
	b := newTestBuilder()
	result, err := b.Build([]model.CabinetRecord{record("F1", "filler", 100, 720, 560)})
	require.NoError(t, err)

	rows := TableRows(result.Components)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{
		"F1", "FILLER", "Filler Panel (F1)", "560", "720", "", "1", "18", "All visible edges", "720 × 560",
	}, rows[0])
}

func TestSummaryRows(t *testing.T) {
	b := newTestBuilder()
	result, err := b.Build([]model.CabinetRecord{record("B1", "base", 900, 720, 560)})
	require.NoError(t, err)

	rows := SummaryRows(result.Summary)
	assert.Equal(t, [][]string{
		{"Total Cabinets", "1"},
		{"Total Components", "6"},
		{"Total Pieces", "7"},
		{"Total Area (m²)", "2.81"},
		{"GABLE", "2"},
		{"T/B", "2"},
		{"S/H", "1"},
		{"BACKS", "1"},
		{"BRACES", "1"},
	}, rows)
}
