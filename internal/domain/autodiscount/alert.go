package autodiscount

import "github.com/google/uuid"

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Alert is the dead-stock signal produced by the external inventory monitor.
// This core only reads it.
type Alert struct {
	ID                uuid.UUID
	StoreID           uuid.UUID
	SKUID             uuid.UUID
	SKU               string
	ProductID         uuid.UUID
	DaysSinceLastSale int
	StockLevel        int
	StockValue        float64
	Severity          Severity
	Status            string
}
