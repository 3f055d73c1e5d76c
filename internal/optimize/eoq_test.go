package optimize

import (
	"math"
	"testing"

	"github.com/targetjit/inventory-backend/internal/domain"
)

func TestNormalQuantile(t *testing.T) {
	tests := []struct {
		p    float64
		want float64
	}{
		{0.5, 0},
		{0.95, 1.6449},
		{0.975, 1.9600},
		{0.05, -1.6449},
		{0.99, 2.3263},
	}

	for _, tt := range tests {
		got := normalQuantile(tt.p)
		if math.Abs(got-tt.want) > 1e-3 {
			t.Errorf("normalQuantile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if !math.IsInf(normalQuantile(0), -1) || !math.IsInf(normalQuantile(1), 1) {
		t.Error("quantile at the bounds should be infinite")
	}
}

func TestOptimize(t *testing.T) {
	records := []domain.InventoryRecord{{
		SKUID:         "SKU-0001",
		Rate:          20,
		AverageDemand: 10,
		LeadTime:      7,
	}}

	items := Optimize(records, DefaultParams())
	if len(items) != 1 {
		t.Fatalf("got %d items, want 1", len(items))
	}

	item := items[0]
	// annual demand 3650, ordering cost 50, holding cost 0.2*20=4:
	// EOQ = sqrt(2*3650*50/4) = 302.07..., rounded up
	if item.EOQ != 303 {
		t.Errorf("EOQ = %v, want 303", item.EOQ)
	}
	// z(0.95)*0.25*10*sqrt(7) = 10.88, rounded up
	if item.SafetyStock != 11 {
		t.Errorf("SafetyStock = %v, want 11", item.SafetyStock)
	}
	// 10*7 + 10.88, rounded up
	if item.ReorderPoint != 81 {
		t.Errorf("ReorderPoint = %v, want 81", item.ReorderPoint)
	}
	if item.TotalAnnualCost != item.AnnualHoldingCost+item.AnnualOrderingCost {
		t.Errorf("total cost %v != holding %v + ordering %v",
			item.TotalAnnualCost, item.AnnualHoldingCost, item.AnnualOrderingCost)
	}
	if item.AnnualOrderingCost <= 0 || item.AnnualHoldingCost <= 0 {
		t.Errorf("costs must be positive: %+v", item)
	}
}

func TestOptimizeSkipsUnusableRecords(t *testing.T) {
	records := []domain.InventoryRecord{
		{SKUID: "SKU-0001", Rate: 0, AverageDemand: 10, LeadTime: 7},
		{SKUID: "SKU-0002", Rate: 20, AverageDemand: 0, LeadTime: 7},
		{SKUID: "SKU-0003", Rate: 20, AverageDemand: 10, LeadTime: 7},
	}

	items := Optimize(records, DefaultParams())
	if len(items) != 1 || items[0].SKUID != "SKU-0003" {
		t.Errorf("items = %+v, want only SKU-0003", items)
	}
}

func TestOptimizeIsDeterministic(t *testing.T) {
	records := []domain.InventoryRecord{
		{SKUID: "SKU-0001", Rate: 45.5, AverageDemand: 3, LeadTime: 5},
		{SKUID: "SKU-0002", Rate: 1200, AverageDemand: 12, LeadTime: 14},
	}

	first := Optimize(records, DefaultParams())
	second := Optimize(records, DefaultParams())
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("item %d differs between runs", i)
		}
	}
}
