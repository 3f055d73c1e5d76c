package ingest

import (
	"strings"

	"github.com/targetjit/inventory-backend/internal/domain"
)

// categoryKeywords are checked in order; the first group containing a
// substring of the lowercased item name wins.
var categoryKeywords = []struct {
	category domain.Category
	keywords []string
}{
	{domain.CategoryElectronics, []string{
		"laptop", "phone", "mobile", "computer", "tablet", "monitor",
		"tv", "television", "camera", "headphone", "speaker", "charger",
		"cable", "printer", "router", "electronic",
	}},
	{domain.CategoryClothing, []string{
		"shirt", "trouser", "pant", "jean", "jacket", "dress", "saree",
		"kurta", "sock", "shoe", "apparel", "cloth", "wear",
	}},
	{domain.CategoryFood, []string{
		"rice", "wheat", "flour", "sugar", "salt", "oil", "tea", "coffee",
		"biscuit", "snack", "juice", "milk", "spice", "food", "beverage",
	}},
	{domain.CategoryHomeGoods, []string{
		"chair", "sofa", "bed", "mattress", "curtain", "lamp", "utensil",
		"cookware", "furniture", "kitchen", "home", "decor",
	}},
	{domain.CategoryOfficeSupplies, []string{
		"pen", "pencil", "paper", "notebook", "stapler", "folder", "file",
		"ink", "marker", "envelope", "office", "stationery",
	}},
}

// Classify assigns a category from the item name via ordered keyword rules.
// Names matching no group fall back to General. Pure and deterministic.
func Classify(name string) domain.Category {
	lowered := strings.ToLower(name)
	for _, group := range categoryKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(lowered, kw) {
				return group.category
			}
		}
	}
	return domain.CategoryGeneral
}
