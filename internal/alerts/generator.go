// Package alerts derives typed notifications from a record set. Alerts are
// pure projections: nothing here mutates records, and the full alert list
// is regenerated on every import or edit.
package alerts

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/targetjit/inventory-backend/internal/domain"
)

const highValueThreshold = 10000

// Generate evaluates every record against the four alert rules. A record
// may contribute up to four alerts. The result is stably sorted by priority
// descending; ties keep their insertion order.
func Generate(records []domain.InventoryRecord) []domain.Alert {
	now := time.Now()
	out := make([]domain.Alert, 0)

	for _, rec := range records {
		out = append(out, evaluate(rec, now)...)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() > out[j].Priority.Rank()
	})

	return out
}

func evaluate(rec domain.InventoryRecord, now time.Time) []domain.Alert {
	var result []domain.Alert

	// 1. Critical stock: on-hand strictly below the reorder threshold.
	if rec.CurrentStock < rec.ReorderPoint {
		priority := domain.PriorityMedium
		if float64(rec.CurrentStock) < float64(rec.ReorderPoint)*0.5 {
			priority = domain.PriorityHigh
		}
		orderQty := int(math.Ceil(float64(rec.ReorderPoint) * 1.5))
		result = append(result, domain.Alert{
			ID:                uuid.NewString(),
			Type:              domain.AlertCriticalStock,
			SKUID:             rec.SKUID,
			Priority:          priority,
			RiskLevel:         rec.StockoutRisk,
			Message:           fmt.Sprintf("Current stock (%d) is below reorder point (%d)", rec.CurrentStock, rec.ReorderPoint),
			RecommendedAction: fmt.Sprintf("Order %d units immediately", orderQty),
			Timestamp:         now,
		})
	}

	// 2. Lead time risk: remaining days of cover inside the lead time window.
	demand := rec.AverageDemand
	if demand < 1 {
		demand = 1
	}
	daysOfStock := rec.CurrentStock / demand
	if daysOfStock <= rec.LeadTime && rec.CurrentStock > 0 {
		result = append(result, domain.Alert{
			ID:                uuid.NewString(),
			Type:              domain.AlertLeadTimeRisk,
			SKUID:             rec.SKUID,
			Priority:          domain.PriorityMedium,
			RiskLevel:         domain.RiskHigh,
			Message:           fmt.Sprintf("Only %d days of stock left against a %d day lead time", daysOfStock, rec.LeadTime),
			RecommendedAction: "Expedite the pending replenishment order",
			Timestamp:         now,
		})
	}

	// 3. High value at risk: expensive stock already flagged high risk.
	valueAtRisk := float64(rec.CurrentStock) * rec.Rate
	if valueAtRisk > highValueThreshold && rec.StockoutRisk == domain.RiskHigh {
		result = append(result, domain.Alert{
			ID:                uuid.NewString(),
			Type:              domain.AlertHighValueAtRisk,
			SKUID:             rec.SKUID,
			Priority:          domain.PriorityHigh,
			RiskLevel:         domain.RiskHigh,
			Message:           fmt.Sprintf("Stock worth %.2f is at high stockout risk", valueAtRisk),
			RecommendedAction: "Prioritize replenishment for this high-value item",
			Timestamp:         now,
		})
	}

	// 4. Slow moving stock: low turnover sitting well above the threshold.
	if rec.TurnoverRate < 0.3 && rec.CurrentStock > rec.ReorderPoint*2 {
		result = append(result, domain.Alert{
			ID:                uuid.NewString(),
			Type:              domain.AlertSlowMoving,
			SKUID:             rec.SKUID,
			Priority:          domain.PriorityLow,
			RiskLevel:         rec.StockoutRisk,
			Message:           fmt.Sprintf("Turnover rate %.2f with %d units on hand", rec.TurnoverRate, rec.CurrentStock),
			RecommendedAction: "Review pricing or run a promotion to move excess stock",
			Timestamp:         now,
		})
	}

	return result
}
