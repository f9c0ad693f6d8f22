package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// EntryType classifies a yard entry as dealer stock or a sold customer van.
type EntryType string

const (
	EntryTypeStock    EntryType = "Stock"
	EntryTypeCustomer EntryType = "Customer"
)

// ClassifyEntryType is the single, total mapping from a customer field to an
// entry type. A missing customer or one flagged as stock ("Acme Stock",
// "STOCK ORDER") is dealer stock; everything else is a customer van.
func ClassifyEntryType(customer string) EntryType {
	c := strings.ToLower(strings.TrimSpace(customer))
	if c == "" || strings.Contains(c, "stock") {
		return EntryTypeStock
	}
	return EntryTypeCustomer
}

// YardStockEntry is a vehicle currently sitting in a dealer's yard, stored
// under yardstock/{dealerSlug}/{chassis}. Days-in-yard is never persisted;
// it is recomputed against wall clock at read time.
type YardStockEntry struct {
	Chassis        string           `json:"chassis"`
	DealerSlug     string           `json:"dealerSlug"`
	ReceivedAt     string           `json:"receivedAt"` // RFC3339
	Model          string           `json:"model"`
	Customer       string           `json:"customer,omitempty"`
	Type           EntryType        `json:"type"`
	WholesalePrice *decimal.Decimal `json:"wholesalePrice,omitempty"`
}

// ModelSpec is one row of the modelanalysis reference table: the
// classification facets joined onto yard entries by model name.
type ModelSpec struct {
	Model      string `json:"model"`
	ModelRange string `json:"modelRange,omitempty"`
	Function   string `json:"function,omitempty"`
	Layout     string `json:"layout,omitempty"`
	Axle       string `json:"axle,omitempty"`
	Length     string `json:"length,omitempty"`
	Height     string `json:"height,omitempty"`
}

// UnknownClassification is the sentinel for any classification facet the
// reference table cannot resolve.
const UnknownClassification = "Unknown"
