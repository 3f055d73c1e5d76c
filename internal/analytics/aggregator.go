// Package analytics computes portfolio-level statistics over a record set.
// Reports are pure projections with no lifecycle of their own; they are
// recomputed wholesale whenever the record set changes.
package analytics

import (
	"sort"

	"github.com/targetjit/inventory-backend/internal/domain"
)

const (
	slowTurnoverThreshold = 0.3
	highValueThreshold    = 10000
	topReorderLimit       = 10
)

// stockRangeBounds define the fixed buckets of the stock distribution.
var stockRangeBounds = []struct {
	label string
	max   int // inclusive upper bound, -1 for unbounded
}{
	{"0-50", 50},
	{"51-100", 100},
	{"101-200", 200},
	{"201-500", 500},
	{"500+", -1},
}

// BuildReport derives the full analysis report from the current record set.
func BuildReport(records []domain.InventoryRecord) *domain.AnalysisReport {
	report := &domain.AnalysisReport{
		Summary:           buildSummary(records),
		ABC:               buildABC(records),
		RiskDistribution:  buildRiskDistribution(records),
		CategoryRollup:    buildCategoryRollup(records),
		StockDistribution: buildStockDistribution(records),
		TopReorderItems:   buildTopReorderItems(records),
		Recommendations:   buildRecommendations(records),
	}

	return report
}

func buildSummary(records []domain.InventoryRecord) domain.Summary {
	s := domain.Summary{TotalItems: len(records)}

	var turnoverSum float64
	for _, rec := range records {
		s.TotalStock += rec.CurrentStock
		s.TotalValue += rec.Value
		turnoverSum += rec.TurnoverRate
		if rec.CurrentStock < rec.ReorderPoint {
			s.ItemsBelowReorder++
		}
		if rec.StockoutRisk == domain.RiskHigh {
			s.HighRiskItems++
		}
	}
	if len(records) > 0 {
		s.AverageTurnover = turnoverSum / float64(len(records))
	}

	return s
}

// buildABC sorts records by stock value descending and partitions them by
// count: A is the top 20%, B the next 30%, C the remaining 50%, using
// floor-based index cuts. Every record lands in exactly one bucket.
func buildABC(records []domain.InventoryRecord) domain.ABCBuckets {
	n := len(records)
	if n == 0 {
		return domain.ABCBuckets{}
	}

	values := make([]float64, n)
	order := make([]int, n)
	for i, rec := range records {
		values[i] = float64(rec.CurrentStock) * rec.Rate
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})

	aCut := n * 20 / 100
	bCut := n * 50 / 100

	var buckets domain.ABCBuckets
	for pos, idx := range order {
		switch {
		case pos < aCut:
			buckets.A.Count++
			buckets.A.Value += values[idx]
		case pos < bCut:
			buckets.B.Count++
			buckets.B.Value += values[idx]
		default:
			buckets.C.Count++
			buckets.C.Value += values[idx]
		}
	}

	return buckets
}

func buildRiskDistribution(records []domain.InventoryRecord) map[domain.RiskTier]int {
	dist := make(map[domain.RiskTier]int, len(domain.RiskTiers))
	for _, tier := range domain.RiskTiers {
		dist[tier] = 0
	}
	for _, rec := range records {
		dist[rec.StockoutRisk]++
	}
	return dist
}

func buildCategoryRollup(records []domain.InventoryRecord) []domain.CategoryStats {
	byCategory := make(map[domain.Category]*domain.CategoryStats)
	for _, rec := range records {
		stats, ok := byCategory[rec.Category]
		if !ok {
			stats = &domain.CategoryStats{Category: rec.Category}
			byCategory[rec.Category] = stats
		}
		stats.Count++
		stats.TotalStock += rec.CurrentStock
		stats.TotalValue += rec.Value
		stats.AvgTurnover += rec.TurnoverRate
		if rec.StockoutRisk == domain.RiskHigh {
			stats.HighRiskCount++
		}
	}

	// fixed category order keeps the rollup stable across runs
	rollup := make([]domain.CategoryStats, 0, len(byCategory))
	for _, cat := range domain.Categories {
		if stats, ok := byCategory[cat]; ok {
			stats.AvgTurnover /= float64(stats.Count)
			rollup = append(rollup, *stats)
		}
	}

	return rollup
}

func buildStockDistribution(records []domain.InventoryRecord) []domain.StockRange {
	dist := make([]domain.StockRange, len(stockRangeBounds))
	for i, bound := range stockRangeBounds {
		dist[i].Label = bound.label
	}

	for _, rec := range records {
		for i, bound := range stockRangeBounds {
			if bound.max < 0 || rec.CurrentStock <= bound.max {
				dist[i].Count++
				break
			}
		}
	}

	return dist
}

func buildTopReorderItems(records []domain.InventoryRecord) []domain.ReorderItem {
	var items []domain.ReorderItem
	for _, rec := range records {
		if rec.CurrentStock >= rec.ReorderPoint {
			continue
		}
		items = append(items, domain.ReorderItem{
			SKUID:        rec.SKUID,
			Name:         rec.Name,
			Category:     rec.Category,
			CurrentStock: rec.CurrentStock,
			ReorderPoint: rec.ReorderPoint,
			Shortage:     rec.ReorderPoint - rec.CurrentStock,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Shortage > items[j].Shortage
	})

	if len(items) > topReorderLimit {
		items = items[:topReorderLimit]
	}

	return items
}

// buildRecommendations emits at most one entry per trigger, ordered by
// priority, no matter how many records fire it.
func buildRecommendations(records []domain.InventoryRecord) []domain.Recommendation {
	var critical, slowMoving, highValue bool
	for _, rec := range records {
		if float64(rec.CurrentStock) < float64(rec.ReorderPoint)*0.5 {
			critical = true
		}
		if rec.TurnoverRate < slowTurnoverThreshold && rec.CurrentStock > rec.ReorderPoint*2 {
			slowMoving = true
		}
		if rec.Value > highValueThreshold {
			highValue = true
		}
	}

	var recs []domain.Recommendation
	if critical {
		recs = append(recs, domain.Recommendation{
			Priority: domain.PriorityHigh,
			Message:  "High priority: immediate restocking required for critically low items",
		})
	}
	if slowMoving {
		recs = append(recs, domain.Recommendation{
			Priority: domain.PriorityMedium,
			Message:  "Medium priority: optimize slow-moving inventory",
		})
	}
	if highValue {
		recs = append(recs, domain.Recommendation{
			Priority: domain.PriorityLow,
			Message:  "Low priority: monitor high-value items",
		})
	}

	return recs
}
