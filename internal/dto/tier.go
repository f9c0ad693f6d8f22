package dto

// Tier stocking status relative to {minimum, ceiling} policy.
const (
	TierUnderStock = "under"
	TierOnTarget   = "ok"
	TierOverStock  = "over"
)

// TierComparison is one tier's target-versus-actual line.
type TierComparison struct {
	TierCode    string `json:"tierCode"`
	Name        string `json:"name,omitempty"`
	TargetCount int    `json:"targetCount"`
	Minimum     int    `json:"minimum"`
	Ceiling     *int   `json:"ceiling,omitempty"`
	Actual      int    `json:"actual"`
	Status      string `json:"status"`
}

type TierResult struct {
	Dealer     string           `json:"dealer"`
	Baseline   int              `json:"baseline"`
	Tiers      []TierComparison `json:"tiers"`
	Unassigned int              `json:"unassigned"` // yard entries matching no tier
}
