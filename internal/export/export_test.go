package export

import (
	"testing"

	"go.uber.org/zap"

	"github.com/piwi3910/cabplan/internal/cutlist"
	"github.com/piwi3910/cabplan/internal/model"
)

// buildTestResult produces a small mixed cutting list: a base cabinet, a
// wall cabinet, and a narrow filler strip.
func buildTestResult(t *testing.T) cutlist.Result {
	t.Helper()

	b := cutlist.New(model.DefaultStyle(), cutlist.WithLogger(zap.NewNop()))
	result, err := b.Build([]model.CabinetRecord{
		{CabinetID: "B1", CabinetType: "base", Width: 900, Height: 720, Depth: 560},
		{CabinetID: "W1", CabinetType: "wall", Width: 600, Height: 900, Depth: 300},
		{CabinetID: "F1", CabinetType: "filler", Width: 100, Height: 720, Depth: 560},
	})
	if err != nil {
		t.Fatalf("failed to build test cutting list: %v", err)
	}
	return result
}

// buildBaseResult produces a single-cabinet cutting list.
func buildBaseResult(t *testing.T) cutlist.Result {
	t.Helper()

	b := cutlist.New(model.DefaultStyle(), cutlist.WithLogger(zap.NewNop()))
	result, err := b.Build([]model.CabinetRecord{
		{CabinetID: "B1", CabinetType: "base", Width: 900, Height: 720, Depth: 560},
	})
	if err != nil {
		t.Fatalf("failed to build test cutting list: %v", err)
	}
	return result
}

func emptyResult() cutlist.Result {
	return cutlist.Result{Style: model.DefaultStyle()}
}
