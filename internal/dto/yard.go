package dto

import "github.com/roamerv/dealer-backend/internal/models"

// Days-in-yard bucket labels, in display order. Boundaries are inclusive as
// written: 0–30, 31–90, 91–180, 180+.
const (
	BucketUnder30 = "0-30"
	Bucket31To90  = "31-90"
	Bucket91To180 = "91-180"
	BucketOver180 = "180+"
)

var DaysBucketOrder = []string{BucketUnder30, Bucket31To90, Bucket91To180, BucketOver180}

// YardRow is a yard entry with its derived age and joined classification.
type YardRow struct {
	models.YardStockEntry
	DaysInYard     int    `json:"daysInYard"`
	DaysBucket     string `json:"daysBucket"`
	ModelRange     string `json:"modelRange"`
	Function       string `json:"function"`
	Layout         string `json:"layout"`
	Axle           string `json:"axle"`
	Length         string `json:"length"`
	Height         string `json:"height"`
}

// YardFilters are the facet filters for the yard view. Empty or "all"
// skips a facet; DaysBucket matches one of DaysBucketOrder.
type YardFilters struct {
	ModelRange string `json:"modelRange,omitempty"`
	Function   string `json:"function,omitempty"`
	Type       string `json:"type,omitempty"` // Stock | Customer
	DaysBucket string `json:"daysBucket,omitempty"`
	Search     string `json:"search,omitempty"`
}

type YardResult struct {
	Dealer       string         `json:"dealer"`
	Rows         []YardRow      `json:"rows"`
	Split        YardSplit      `json:"split"`
	BucketCounts map[string]int `json:"bucketCounts"`
}

// BulkImportResult reports a bulk yard upload: rows written plus per-row
// failures that were skipped rather than aborting the batch.
type BulkImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}
