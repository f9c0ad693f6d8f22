package dto

type CreateDealerRequest struct {
	Name                string   `json:"name"`
	PowerBIURL          string   `json:"powerbiUrl,omitempty"`
	IsGroup             bool     `json:"isGroup,omitempty"`
	IncludedDealerSlugs []string `json:"includedDealerSlugs,omitempty"`
}

type UpdateDealerRequest struct {
	Name                *string  `json:"name,omitempty"`
	PowerBIURL          *string  `json:"powerbiUrl,omitempty"`
	IsActive            *bool    `json:"isActive,omitempty"`
	IncludedDealerSlugs []string `json:"includedDealerSlugs,omitempty"`
}

type VerifyAccessRequest struct {
	AccessCode string `json:"accessCode"`
}

// VerifyAccessResult tells the portal whether a slug+code pair resolves to
// an active dealer or group, and which member dealers it may select.
type VerifyAccessResult struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	IsGroup     bool     `json:"isGroup"`
	MemberSlugs []string `json:"memberSlugs"`
	PowerBIURL  string   `json:"powerbiUrl,omitempty"`
}

type RotateCodeResult struct {
	Slug       string `json:"slug"`
	AccessCode string `json:"accessCode"`
	AccessURL  string `json:"accessUrl"` // {slug}-{code}
}
