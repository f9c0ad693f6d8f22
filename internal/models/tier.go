package models

// TierTarget is the stocking policy for one tier: how many units of it
// should be sitting in a dealer's yard.
type TierTarget struct {
	TierCode     string  `json:"tierCode"`
	Label        string  `json:"label,omitempty"`
	Role         string  `json:"role,omitempty"`
	MinimumCount int     `json:"minimumCount"`
	CeilingCount *int    `json:"ceilingCount,omitempty"`
	TargetShare  float64 `json:"targetShare,omitempty"` // 0–1 fraction of the yard baseline
}

// TierSlot is one entry of a dealer's tier layout: which models count
// toward the tier and where it sorts in the display.
type TierSlot struct {
	TierCode       string   `json:"tierCode"`
	Name           string   `json:"name,omitempty"`
	Description    string   `json:"description,omitempty"`
	AssignedModels []string `json:"assignedModels,omitempty"`
	SortOrder      int      `json:"sortOrder"`
}

// YardSettings is the yardsize record: the minimum-volume baseline that
// tier target counts are computed against.
type YardSettings struct {
	BaselineVolume int `json:"baselineVolume"`
}
