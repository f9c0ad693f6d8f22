package models

// DealerConfig is the portal-access record for one dealer, or for a dealer
// group when IsGroup is set. The access code is an obscurity token only.
type DealerConfig struct {
	Slug                string   `json:"slug"`
	Name                string   `json:"name"`
	AccessCode          string   `json:"accessCode"`
	IsActive            bool     `json:"isActive"`
	PowerBIURL          string   `json:"powerbiUrl,omitempty"`
	IsGroup             bool     `json:"isGroup,omitempty"`
	IncludedDealerSlugs []string `json:"includedDealerSlugs,omitempty"`
}

// MemberSlugs resolves the dealer slugs this config grants access to. A
// plain dealer is its own single member; a group lists its members in
// configured order.
func (c *DealerConfig) MemberSlugs() []string {
	if c.IsGroup && len(c.IncludedDealerSlugs) > 0 {
		return c.IncludedDealerSlugs
	}
	return []string{c.Slug}
}
