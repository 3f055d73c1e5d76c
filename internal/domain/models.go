// internal/domain/models.go
package domain

import "time"

// InventoryRecord is one normalized inventory item built from an imported row.
// Records are immutable once built; edits replace the record wholesale.
type InventoryRecord struct {
	SKUID         string   `json:"sku_id" db:"sku_id"`
	Name          string   `json:"name" db:"name"`
	Category      Category `json:"category" db:"category"`
	CurrentStock  int      `json:"current_stock" db:"current_stock"`
	Rate          float64  `json:"rate" db:"rate"`
	Value         float64  `json:"value" db:"value"`
	ReorderPoint  int      `json:"reorder_point" db:"reorder_point"`
	TurnoverRate  float64  `json:"turnover_rate" db:"turnover_rate"`
	LeadTime      int      `json:"lead_time" db:"lead_time"`
	AverageDemand int      `json:"average_demand" db:"average_demand"`
	StockoutRisk  RiskTier `json:"stockout_risk" db:"stockout_risk"`
}

// RowError describes a data row that was skipped or degraded during import.
// Row errors are warnings; they never abort the import.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// Alert is a derived notification for a single record. Alerts are never
// persisted; they are regenerated in full on every import or edit.
type Alert struct {
	ID                string        `json:"id"`
	Type              AlertType     `json:"type"`
	SKUID             string        `json:"sku_id"`
	Priority          AlertPriority `json:"priority"`
	RiskLevel         RiskTier      `json:"risk_level"`
	Message           string        `json:"message"`
	RecommendedAction string        `json:"recommended_action"`
	Timestamp         time.Time     `json:"timestamp"`
}

// UploadedFile represents an uploaded file pending import.
type UploadedFile struct {
	Filename string
	Path     string
	Size     int64
}

// ImportPreview is the full result of running the import pipeline on one
// file: the surviving records plus all derived projections. The record set
// is not committed until the caller confirms.
type ImportPreview struct {
	ImportID  string            `json:"import_id"`
	Filename  string            `json:"filename"`
	Records   []InventoryRecord `json:"records"`
	RowErrors []RowError        `json:"row_errors"`
	Alerts    []Alert           `json:"alerts"`
	Report    *AnalysisReport   `json:"report"`
	CreatedAt time.Time         `json:"created_at"`
}
