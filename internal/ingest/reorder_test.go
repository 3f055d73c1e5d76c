package ingest

import (
	"testing"

	"github.com/targetjit/inventory-backend/internal/domain"
)

func TestReorderPoint(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		category domain.Category
		want     int
	}{
		{"electronics above minimum", 150, domain.CategoryElectronics, 22},
		{"electronics at minimum", 10, domain.CategoryElectronics, 5},
		{"food multiplier", 100, domain.CategoryFood, 30},
		{"food minimum floor", 30, domain.CategoryFood, 20},
		{"office supplies", 100, domain.CategoryOfficeSupplies, 25},
		{"clothing", 100, domain.CategoryClothing, 20},
		{"home goods", 100, domain.CategoryHomeGoods, 18},
		{"general uses defaults", 100, domain.CategoryGeneral, 20},
		{"small general quantity hits minimum", 10, domain.CategoryGeneral, 10},
		{"zero quantity falls back", 0, domain.CategoryGeneral, 10},
		{"negative quantity falls back", -5, domain.CategoryElectronics, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReorderPoint(tt.quantity, tt.category); got != tt.want {
				t.Errorf("ReorderPoint(%d, %q) = %d, want %d", tt.quantity, tt.category, got, tt.want)
			}
		})
	}
}

func TestReorderPointNeverBelowMinimum(t *testing.T) {
	for _, cat := range domain.Categories {
		min := CategoryMinimum(cat)
		for qty := 1; qty <= 200; qty++ {
			if got := ReorderPoint(qty, cat); got < min {
				t.Fatalf("ReorderPoint(%d, %q) = %d below minimum %d", qty, cat, got, min)
			}
		}
	}
}

func TestReorderPointMonotonic(t *testing.T) {
	prev := 0
	for qty := 1; qty <= 1000; qty++ {
		got := ReorderPoint(qty, domain.CategoryFood)
		if got < prev {
			t.Fatalf("ReorderPoint decreased at qty %d: %d -> %d", qty, prev, got)
		}
		prev = got
	}
}
