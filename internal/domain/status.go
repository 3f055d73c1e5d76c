package domain

import "strings"

// Category is the fixed product category enumeration assigned by the classifier.
type Category string

const (
	CategoryElectronics    Category = "Electronics"
	CategoryClothing       Category = "Clothing"
	CategoryFood           Category = "Food"
	CategoryHomeGoods      Category = "Home Goods"
	CategoryOfficeSupplies Category = "Office Supplies"
	CategoryGeneral        Category = "General"
)

// Categories lists every known category in classifier priority order.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryFood,
	CategoryHomeGoods,
	CategoryOfficeSupplies,
	CategoryGeneral,
}

var categoryByLabel = map[string]Category{
	"electronics":     CategoryElectronics,
	"clothing":        CategoryClothing,
	"food":            CategoryFood,
	"home goods":      CategoryHomeGoods,
	"office supplies": CategoryOfficeSupplies,
	"general":         CategoryGeneral,
}

// ParseCategory returns the category for a given label (case-insensitive).
func ParseCategory(label string) (Category, bool) {
	c, ok := categoryByLabel[strings.ToLower(strings.TrimSpace(label))]

	return c, ok
}

// RiskTier is the stockout risk level derived from current stock vs. reorder point.
type RiskTier string

const (
	RiskHigh    RiskTier = "High"
	RiskMedium  RiskTier = "Medium"
	RiskLow     RiskTier = "Low"
	RiskVeryLow RiskTier = "Very Low"
)

// RiskTiers lists every tier from most to least severe.
var RiskTiers = []RiskTier{RiskHigh, RiskMedium, RiskLow, RiskVeryLow}

// AlertPriority ranks generated alerts.
type AlertPriority string

const (
	PriorityHigh   AlertPriority = "High"
	PriorityMedium AlertPriority = "Medium"
	PriorityLow    AlertPriority = "Low"
)

var priorityRank = map[AlertPriority]int{
	PriorityHigh:   3,
	PriorityMedium: 2,
	PriorityLow:    1,
}

// Rank returns the numeric weight used for ordering (High=3, Medium=2, Low=1).
func (p AlertPriority) Rank() int {
	return priorityRank[p]
}

// AlertType identifies which rule produced an alert.
type AlertType string

const (
	AlertCriticalStock   AlertType = "critical_stock"
	AlertLeadTimeRisk    AlertType = "lead_time_risk"
	AlertHighValueAtRisk AlertType = "high_value_at_risk"
	AlertSlowMoving      AlertType = "slow_moving"
)
