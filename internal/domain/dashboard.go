package domain

// Summary holds the headline metrics shown on the dashboard.
type Summary struct {
	TotalItems        int     `json:"total_items"`
	TotalStock        int     `json:"total_stock"`
	TotalValue        float64 `json:"total_value"`
	ItemsBelowReorder int     `json:"items_below_reorder"`
	AverageTurnover   float64 `json:"average_turnover"`
	HighRiskItems     int     `json:"high_risk_items"`
}

// ABCBucket is one tier of the ABC value classification.
type ABCBucket struct {
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

// ABCBuckets partitions the record set into the three value tiers.
// count(A)+count(B)+count(C) always equals the total record count.
type ABCBuckets struct {
	A ABCBucket `json:"a"`
	B ABCBucket `json:"b"`
	C ABCBucket `json:"c"`
}

// CategoryStats is the per-category rollup.
type CategoryStats struct {
	Category      Category `json:"category"`
	Count         int      `json:"count"`
	TotalStock    int      `json:"total_stock"`
	TotalValue    float64  `json:"total_value"`
	AvgTurnover   float64  `json:"avg_turnover"`
	HighRiskCount int      `json:"high_risk_count"`
}

// Recommendation is one textual guidance entry. Each appears at most once
// per report regardless of how many records triggered it.
type Recommendation struct {
	Priority AlertPriority `json:"priority"`
	Message  string        `json:"message"`
}

// ReorderItem is one entry of the "Top Items Needing Reorder" table.
type ReorderItem struct {
	SKUID        string   `json:"sku_id"`
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	CurrentStock int      `json:"current_stock"`
	ReorderPoint int      `json:"reorder_point"`
	Shortage     int      `json:"shortage"`
}

// StockRange is one bucket of the stock level distribution.
type StockRange struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AnalysisReport aggregates portfolio-level statistics over the current
// record set. It has no lifecycle of its own; it is recomputed wholesale
// whenever the record set changes.
type AnalysisReport struct {
	Summary           Summary          `json:"summary"`
	ABC               ABCBuckets       `json:"abc"`
	RiskDistribution  map[RiskTier]int `json:"risk_distribution"`
	CategoryRollup    []CategoryStats  `json:"category_rollup"`
	StockDistribution []StockRange     `json:"stock_distribution"`
	TopReorderItems   []ReorderItem    `json:"top_reorder_items"`
	Recommendations   []Recommendation `json:"recommendations"`
}

// OptimizedItem carries the deterministic EOQ / safety-stock parameters
// computed for one record by the optimizer.
type OptimizedItem struct {
	SKUID              string  `json:"sku_id"`
	EOQ                float64 `json:"eoq"`
	SafetyStock        float64 `json:"safety_stock"`
	ReorderPoint       float64 `json:"reorder_point"`
	AnnualHoldingCost  float64 `json:"annual_holding_cost"`
	AnnualOrderingCost float64 `json:"annual_ordering_cost"`
	TotalAnnualCost    float64 `json:"total_annual_cost"`
}
