package dto

import "github.com/roamerv/dealer-backend/internal/models"

// FacetAll is the sentinel facet value meaning "do not filter on this facet".
const FacetAll = "all"

// OrderFilters is the facet set applied to a scoped order list. Empty or
// FacetAll values skip that facet; Search is a case-insensitive substring
// match across the service's searchable field list.
type OrderFilters struct {
	ModelRange       string `json:"modelRange,omitempty"` // prefix match on model
	Colour           string `json:"colour,omitempty"`
	Decals           string `json:"decals,omitempty"`
	ExteriorColour   string `json:"exteriorColour,omitempty"`
	ProductionStatus string `json:"productionStatus,omitempty"`
	Search           string `json:"search,omitempty"`
}

// OrderFlags are the risk markers computed per order at evaluation time.
// They are derived against "now" and never persisted.
type OrderFlags struct {
	Unsigned        bool `json:"unsigned"`
	RedSlotUnsigned bool `json:"redSlotUnsigned"`
	EmptySlot       bool `json:"emptySlot"`
	RedSlotEmpty    bool `json:"redSlotEmpty"`
	OnRoadSoon      bool `json:"onRoadSoon"`
	DaysToForecast  *int `json:"daysToForecast,omitempty"`
}

type OrderRow struct {
	models.Order
	Flags OrderFlags `json:"flags"`
}

type OrdersResult struct {
	Dealer string     `json:"dealer"`
	Rows   []OrderRow `json:"rows"`
	Total  int        `json:"total"`
}

// ModelGroup is one bucket of the orders-by-model view.
type ModelGroup struct {
	Model string     `json:"model"`
	Count int        `json:"count"`
	Rows  []OrderRow `json:"rows,omitempty"`
}

// UnsignedResult is the unsigned/red-slot view: all unsigned orders for the
// dealer plus the subset inside the red window.
type UnsignedResult struct {
	Dealer   string     `json:"dealer"`
	Rows     []OrderRow `json:"rows"`
	RedCount int        `json:"redCount"`
}

// EmptySlotsResult lists allocated production slots with no chassis yet.
type EmptySlotsResult struct {
	Dealer   string     `json:"dealer"`
	Rows     []OrderRow `json:"rows"`
	RedCount int        `json:"redCount"`
}
