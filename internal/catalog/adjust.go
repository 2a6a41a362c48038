package catalog

import (
	"sort"

	"github.com/Lucifer-cyber007/MINI-ERP/internal/domain"
)

// MergeAdjustments sums deltas for repeated product ids and returns
// the result sorted by product id. Deduplication means an order with
// two lines for the same product locks its row exactly once, and the
// sorted order gives every transaction the same lock acquisition
// order, so concurrent confirmations over shared products cannot
// deadlock. Application order is unobservable: either the whole batch
// commits or none of it does.
func MergeAdjustments(adjustments []domain.StockAdjustment) []domain.StockAdjustment {
	index := make(map[string]int, len(adjustments))
	merged := make([]domain.StockAdjustment, 0, len(adjustments))

	for _, adj := range adjustments {
		if i, ok := index[adj.ProductID]; ok {
			merged[i].Delta += adj.Delta
			continue
		}
		index[adj.ProductID] = len(merged)
		merged = append(merged, adj)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].ProductID < merged[j].ProductID
	})
	return merged
}
