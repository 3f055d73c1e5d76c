package ingest

import "github.com/targetjit/inventory-backend/internal/domain"

// AssessRisk derives the stockout risk tier from current stock relative to
// the reorder point. The tier is monotonic non-increasing in the ratio:
//
//	ratio <= 0.5  -> High
//	ratio <= 1.0  -> Medium
//	ratio <= 1.5  -> Low
//	ratio >  1.5  -> Very Low
//
// The ratio is undefined when either input is zero, which defaults to Low.
func AssessRisk(currentStock, reorderPoint int) domain.RiskTier {
	if currentStock == 0 || reorderPoint == 0 {
		return domain.RiskLow
	}

	ratio := float64(currentStock) / float64(reorderPoint)
	switch {
	case ratio <= 0.5:
		return domain.RiskHigh
	case ratio <= 1.0:
		return domain.RiskMedium
	case ratio <= 1.5:
		return domain.RiskLow
	default:
		return domain.RiskVeryLow
	}
}
