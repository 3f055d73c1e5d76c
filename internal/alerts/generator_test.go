package alerts

import (
	"strings"
	"testing"

	"github.com/targetjit/inventory-backend/internal/domain"
)

func record(mod func(*domain.InventoryRecord)) domain.InventoryRecord {
	rec := domain.InventoryRecord{
		SKUID:         "SKU-0001",
		Name:          "Widget",
		Category:      domain.CategoryGeneral,
		CurrentStock:  100,
		Rate:          10,
		Value:         1000,
		ReorderPoint:  20,
		TurnoverRate:  0.5,
		LeadTime:      7,
		AverageDemand: 3,
		StockoutRisk:  domain.RiskVeryLow,
	}
	if mod != nil {
		mod(&rec)
	}
	return rec
}

func alertsOfType(alerts []domain.Alert, typ domain.AlertType) []domain.Alert {
	var out []domain.Alert
	for _, a := range alerts {
		if a.Type == typ {
			out = append(out, a)
		}
	}
	return out
}

func TestGenerateHealthyRecordNoAlerts(t *testing.T) {
	got := Generate([]domain.InventoryRecord{record(nil)})
	if len(got) != 0 {
		t.Errorf("Generate() produced %d alerts for a healthy record: %v", len(got), got)
	}
}

func TestGenerateCriticalStock(t *testing.T) {
	tests := []struct {
		name         string
		stock        int
		wantPriority domain.AlertPriority
	}{
		{"below reorder point", 15, domain.PriorityMedium},
		{"below half of reorder point", 9, domain.PriorityHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record(func(r *domain.InventoryRecord) {
				r.CurrentStock = tt.stock
				r.AverageDemand = 1
				r.LeadTime = 1
				r.StockoutRisk = domain.RiskMedium
			})

			got := alertsOfType(Generate([]domain.InventoryRecord{rec}), domain.AlertCriticalStock)
			if len(got) != 1 {
				t.Fatalf("got %d critical stock alerts, want 1", len(got))
			}

			a := got[0]
			if a.Priority != tt.wantPriority {
				t.Errorf("priority = %q, want %q", a.Priority, tt.wantPriority)
			}
			if a.RiskLevel != domain.RiskMedium {
				t.Errorf("risk level = %q, want record's risk", a.RiskLevel)
			}
			// ceil(20 * 1.5) = 30
			if a.RecommendedAction != "Order 30 units immediately" {
				t.Errorf("action = %q", a.RecommendedAction)
			}
			if !strings.Contains(a.Message, "below reorder point (20)") {
				t.Errorf("message = %q", a.Message)
			}
		})
	}
}

func TestGenerateStockAtReorderPointDoesNotAlert(t *testing.T) {
	rec := record(func(r *domain.InventoryRecord) {
		r.CurrentStock = 20 // exactly at the threshold
	})
	got := alertsOfType(Generate([]domain.InventoryRecord{rec}), domain.AlertCriticalStock)
	if len(got) != 0 {
		t.Errorf("got %d critical stock alerts at the boundary, want 0", len(got))
	}
}

func TestGenerateLeadTimeRisk(t *testing.T) {
	rec := record(func(r *domain.InventoryRecord) {
		r.CurrentStock = 20
		r.AverageDemand = 3 // 6 days of stock
		r.LeadTime = 7
	})

	got := alertsOfType(Generate([]domain.InventoryRecord{rec}), domain.AlertLeadTimeRisk)
	if len(got) != 1 {
		t.Fatalf("got %d lead time alerts, want 1", len(got))
	}
	if got[0].Priority != domain.PriorityMedium || got[0].RiskLevel != domain.RiskHigh {
		t.Errorf("priority/risk = %q/%q", got[0].Priority, got[0].RiskLevel)
	}

	// zero stock never fires this rule, critical stock covers it
	empty := record(func(r *domain.InventoryRecord) { r.CurrentStock = 0 })
	if got := alertsOfType(Generate([]domain.InventoryRecord{empty}), domain.AlertLeadTimeRisk); len(got) != 0 {
		t.Errorf("lead time alert fired for zero stock")
	}
}

func TestGenerateHighValueAtRisk(t *testing.T) {
	rec := record(func(r *domain.InventoryRecord) {
		r.CurrentStock = 9
		r.Rate = 2000 // value at risk 18000
		r.StockoutRisk = domain.RiskHigh
	})

	got := alertsOfType(Generate([]domain.InventoryRecord{rec}), domain.AlertHighValueAtRisk)
	if len(got) != 1 {
		t.Fatalf("got %d high value alerts, want 1", len(got))
	}
	if got[0].Priority != domain.PriorityHigh {
		t.Errorf("priority = %q, want High", got[0].Priority)
	}

	// same value but not high risk: no alert
	calm := record(func(r *domain.InventoryRecord) {
		r.CurrentStock = 9
		r.Rate = 2000
		r.StockoutRisk = domain.RiskMedium
	})
	if got := alertsOfType(Generate([]domain.InventoryRecord{calm}), domain.AlertHighValueAtRisk); len(got) != 0 {
		t.Errorf("high value alert fired without high risk")
	}
}

func TestGenerateSlowMoving(t *testing.T) {
	rec := record(func(r *domain.InventoryRecord) {
		r.CurrentStock = 50
		r.ReorderPoint = 20
		r.TurnoverRate = 0.1
		r.AverageDemand = 10 // keeps lead time rule quiet
		r.LeadTime = 1
	})

	got := alertsOfType(Generate([]domain.InventoryRecord{rec}), domain.AlertSlowMoving)
	if len(got) != 1 {
		t.Fatalf("got %d slow moving alerts, want 1", len(got))
	}
	if got[0].Priority != domain.PriorityLow {
		t.Errorf("priority = %q, want Low", got[0].Priority)
	}

	// stock at exactly 2x the reorder point does not qualify
	boundary := record(func(r *domain.InventoryRecord) {
		r.CurrentStock = 40
		r.ReorderPoint = 20
		r.TurnoverRate = 0.1
		r.AverageDemand = 10
		r.LeadTime = 1
	})
	if got := alertsOfType(Generate([]domain.InventoryRecord{boundary}), domain.AlertSlowMoving); len(got) != 0 {
		t.Errorf("slow moving alert fired at the 2x boundary")
	}
}

func TestGeneratePriorityOrdering(t *testing.T) {
	records := []domain.InventoryRecord{
		// slow moving only: Low
		record(func(r *domain.InventoryRecord) {
			r.SKUID = "SKU-0001"
			r.TurnoverRate = 0.1
			r.AverageDemand = 20
			r.LeadTime = 1
		}),
		// below reorder point but above half: Medium critical stock
		record(func(r *domain.InventoryRecord) {
			r.SKUID = "SKU-0002"
			r.CurrentStock = 15
			r.AverageDemand = 7
			r.LeadTime = 1
			r.TurnoverRate = 0.9
		}),
		// deep below half: High critical stock
		record(func(r *domain.InventoryRecord) {
			r.SKUID = "SKU-0003"
			r.CurrentStock = 5
			r.AverageDemand = 2
			r.LeadTime = 1
			r.TurnoverRate = 0.9
		}),
	}

	got := Generate(records)
	if len(got) != 3 {
		t.Fatalf("got %d alerts, want 3: %v", len(got), got)
	}

	wantOrder := []domain.AlertPriority{domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow}
	for i, want := range wantOrder {
		if got[i].Priority != want {
			t.Errorf("alert %d priority = %q, want %q", i, got[i].Priority, want)
		}
	}
	if got[0].SKUID != "SKU-0003" {
		t.Errorf("highest priority alert from %q, want SKU-0003", got[0].SKUID)
	}
}
