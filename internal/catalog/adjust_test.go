package catalog

import (
	"testing"

	"github.com/Lucifer-cyber007/MINI-ERP/internal/domain"
)

func TestMergeAdjustments(t *testing.T) {
	t.Run("sorts distinct products by id", func(t *testing.T) {
		merged := MergeAdjustments([]domain.StockAdjustment{
			{ProductID: "b", Delta: -2},
			{ProductID: "a", Delta: -1},
		})

		if len(merged) != 2 {
			t.Fatalf("expected 2 adjustments, got %d", len(merged))
		}
		if merged[0].ProductID != "a" || merged[0].Delta != -1 {
			t.Errorf("unexpected first adjustment: %+v", merged[0])
		}
		if merged[1].ProductID != "b" || merged[1].Delta != -2 {
			t.Errorf("unexpected second adjustment: %+v", merged[1])
		}
	})

	t.Run("sums deltas for repeated products", func(t *testing.T) {
		merged := MergeAdjustments([]domain.StockAdjustment{
			{ProductID: "a", Delta: -2},
			{ProductID: "b", Delta: 3},
			{ProductID: "a", Delta: -1},
		})

		if len(merged) != 2 {
			t.Fatalf("expected 2 adjustments, got %d", len(merged))
		}
		if merged[0].ProductID != "a" || merged[0].Delta != -3 {
			t.Errorf("unexpected merged adjustment: %+v", merged[0])
		}
		if merged[1].ProductID != "b" || merged[1].Delta != 3 {
			t.Errorf("unexpected second adjustment: %+v", merged[1])
		}
	})

	t.Run("opposite input orders lock in the same order", func(t *testing.T) {
		first := MergeAdjustments([]domain.StockAdjustment{
			{ProductID: "a", Delta: -1},
			{ProductID: "b", Delta: -1},
		})
		second := MergeAdjustments([]domain.StockAdjustment{
			{ProductID: "b", Delta: -1},
			{ProductID: "a", Delta: -1},
		})

		if len(first) != 2 || len(second) != 2 {
			t.Fatalf("expected 2 adjustments each, got %d and %d", len(first), len(second))
		}
		for i := range first {
			if first[i].ProductID != second[i].ProductID {
				t.Errorf("position %d: lock order differs: %s vs %s",
					i, first[i].ProductID, second[i].ProductID)
			}
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		if merged := MergeAdjustments(nil); len(merged) != 0 {
			t.Errorf("expected empty result, got %+v", merged)
		}
	})
}
