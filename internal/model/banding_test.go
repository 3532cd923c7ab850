package model

import "testing"

func TestCalculateEdgeBanding(t *testing.T) {
	components := []Component{
		{Type: ComponentGable, Width: 560, Height: 720, Quantity: 2},    // 2 × 720mm front edges
		{Type: ComponentShelf, Width: 864, Depth: 500, Quantity: 1},     // 1 × 864mm front edge
		{Type: ComponentBack, Width: 864, Height: 720, Quantity: 1},     // no banding
		{Type: ComponentBrace, Width: 864, Height: 100, Quantity: 2},    // no banding
		{Type: ComponentDoor, Width: 432, Height: 715, Quantity: 2},     // all round
	}

	summary := CalculateEdgeBanding(components, 10)

	wantMM := 2*720.0 + 864.0 + 2*2*(432.0+715.0)
	if summary.TotalLinearMM != wantMM {
		t.Errorf("expected %g mm banding, got %g", wantMM, summary.TotalLinearMM)
	}
	if summary.PieceCount != 5 {
		t.Errorf("expected 5 banded pieces, got %d", summary.PieceCount)
	}
	if summary.EdgeCount != 2+1+8 {
		t.Errorf("expected 11 banded edges, got %d", summary.EdgeCount)
	}
	if summary.TotalWithWasteMM < summary.TotalLinearMM {
		t.Error("waste total must not be below raw total")
	}
	if summary.TotalLinearM != summary.TotalLinearMM/1000 {
		t.Errorf("meter conversion mismatch: %g vs %g mm", summary.TotalLinearM, summary.TotalLinearMM)
	}
}

func TestCalculateEdgeBandingEmpty(t *testing.T) {
	summary := CalculateEdgeBanding(nil, 10)
	if summary.TotalLinearMM != 0 || summary.PieceCount != 0 || summary.EdgeCount != 0 {
		t.Errorf("expected zero summary, got %+v", summary)
	}
}
