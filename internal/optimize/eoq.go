// Package optimize computes deterministic order-quantity parameters
// (EOQ, safety stock, reorder point) per record from its demand signals.
package optimize

import (
	"math"

	"github.com/targetjit/inventory-backend/internal/domain"
)

// Params tune the cost model shared by all records in one run.
type Params struct {
	OrderingCost    float64 // fixed cost per purchase order
	HoldingCostRate float64 // annual holding cost as a fraction of unit cost
	ServiceLevel    float64 // target in-stock probability, (0,1)
	DemandStdDev    float64 // daily demand standard deviation as a fraction of mean
}

// DefaultParams mirror the cost assumptions of the reference model.
func DefaultParams() Params {
	return Params{
		OrderingCost:    50,
		HoldingCostRate: 0.2,
		ServiceLevel:    0.95,
		DemandStdDev:    0.25,
	}
}

// Optimize computes EOQ, safety stock and reorder point for every record.
// Records with no demand or no unit cost are skipped; there is nothing to
// optimize for them.
func Optimize(records []domain.InventoryRecord, params Params) []domain.OptimizedItem {
	z := normalQuantile(params.ServiceLevel)

	items := make([]domain.OptimizedItem, 0, len(records))
	for _, rec := range records {
		if rec.AverageDemand <= 0 || rec.Rate <= 0 {
			continue
		}

		annualDemand := float64(rec.AverageDemand) * 365
		holdingCost := params.HoldingCostRate * rec.Rate

		eoq := math.Sqrt(2 * annualDemand * params.OrderingCost / holdingCost)

		leadTime := float64(rec.LeadTime)
		if leadTime < 1 {
			leadTime = 1
		}
		sigma := params.DemandStdDev * float64(rec.AverageDemand)
		safetyStock := z * sigma * math.Sqrt(leadTime)
		reorderPoint := float64(rec.AverageDemand)*leadTime + safetyStock

		orderingCost := annualDemand / eoq * params.OrderingCost
		holdingTotal := (eoq/2 + safetyStock) * holdingCost

		items = append(items, domain.OptimizedItem{
			SKUID:              rec.SKUID,
			EOQ:                math.Ceil(eoq),
			SafetyStock:        math.Ceil(safetyStock),
			ReorderPoint:       math.Ceil(reorderPoint),
			AnnualHoldingCost:  holdingTotal,
			AnnualOrderingCost: orderingCost,
			TotalAnnualCost:    holdingTotal + orderingCost,
		})
	}

	return items
}

// normalQuantile approximates the standard normal inverse CDF using the
// Beasley-Springer-Moro rational polynomial. Accurate to roughly 1e-9 over
// the central region, which is far more than the cost model needs.
func normalQuantile(p float64) float64 {
	if p <= 0 {
		return math.Inf(-1)
	}
	if p >= 1 {
		return math.Inf(1)
	}

	a := [4]float64{2.50662823884, -18.61500062529, 41.39119773534, -25.44106049637}
	b := [4]float64{-8.47351093090, 23.08336743743, -21.06224101826, 3.13082909833}
	c := [9]float64{
		0.3374754822726147, 0.9761690190917186, 0.1607979714918209,
		0.0276438810333863, 0.0038405729373609, 0.0003951896511919,
		0.0000321767881768, 0.0000002888167364, 0.0000003960315187,
	}

	y := p - 0.5
	if math.Abs(y) < 0.42 {
		r := y * y
		num := y * (((a[3]*r+a[2])*r+a[1])*r + a[0])
		den := (((b[3]*r+b[2])*r+b[1])*r+b[0])*r + 1
		return num / den
	}

	r := p
	if y > 0 {
		r = 1 - p
	}
	r = math.Log(-math.Log(r))
	x := c[0]
	for i, pow := 1, r; i < len(c); i, pow = i+1, pow*r {
		x += c[i] * pow
	}
	if y < 0 {
		x = -x
	}
	return x
}
