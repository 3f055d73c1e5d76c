package ingest

import (
	"math"

	"github.com/targetjit/inventory-backend/internal/domain"
)

// reorderParams holds the per-category reorder threshold parameters.
type reorderParams struct {
	multiplier float64
	minimum    int
}

var reorderTable = map[domain.Category]reorderParams{
	domain.CategoryElectronics:    {multiplier: 0.15, minimum: 5},
	domain.CategoryFood:           {multiplier: 0.30, minimum: 20},
	domain.CategoryOfficeSupplies: {multiplier: 0.25, minimum: 15},
	domain.CategoryClothing:       {multiplier: 0.20, minimum: 12},
	domain.CategoryHomeGoods:      {multiplier: 0.18, minimum: 8},
}

var defaultReorderParams = reorderParams{multiplier: 0.20, minimum: 10}

const fallbackReorderPoint = 10

// ReorderPoint computes the reorder threshold for a quantity and category:
// max(floor(quantity*multiplier), categoryMinimum). Non-positive quantities
// short-circuit to the fallback threshold. Always positive, always at least
// the category minimum, and strictly a function of its inputs.
func ReorderPoint(quantity int, category domain.Category) int {
	if quantity <= 0 {
		return fallbackReorderPoint
	}

	params, ok := reorderTable[category]
	if !ok {
		params = defaultReorderParams
	}

	point := int(math.Floor(float64(quantity) * params.multiplier))
	if point < params.minimum {
		return params.minimum
	}
	return point
}

// CategoryMinimum exposes the floor of the reorder table for a category.
func CategoryMinimum(category domain.Category) int {
	if params, ok := reorderTable[category]; ok {
		return params.minimum
	}
	return defaultReorderParams.minimum
}
