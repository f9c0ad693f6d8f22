package dto

import "time"

// Window presets accepted by the KPI and on-the-road endpoints. The two
// views hold independent window state; nothing here is shared between them.
const (
	WindowLast7   = "7d"
	WindowLast30  = "30d"
	WindowLast90  = "90d"
	WindowCustom  = "custom"
	WindowDefault = WindowLast7
)

// WindowArgs selects a date window: a preset, or custom From/To (inclusive,
// To normalized to end of day).
type WindowArgs struct {
	Preset string `json:"preset,omitempty"`
	From   string `json:"from,omitempty"` // yyyy-mm-dd
	To     string `json:"to,omitempty"`   // yyyy-mm-dd
}

// YardSplit is the current yard count by entry type. It is deliberately not
// date-windowed: it reads "right now", unlike its sibling KPIs.
type YardSplit struct {
	Stock    int `json:"stock"`
	Customer int `json:"customer"`
	Total    int `json:"total"`
}

type KPISummary struct {
	From          string    `json:"from"`
	To            string    `json:"to"`
	PGICount      int       `json:"pgiCount"`
	ReceivedCount int       `json:"receivedCount"`
	HandoverCount int       `json:"handoverCount"`
	CurrentYard   YardSplit `json:"currentYard"`
}

type MonthBucket struct {
	MonthKey string `json:"monthKey"` // YYYY-MM
	Label    string `json:"label"`
	Count    int    `json:"count"`
}

// WeekPoint is one week of the trailing stock trend. StockLevel is the
// back-computed level at the start of that week.
type WeekPoint struct {
	WeekStart  time.Time `json:"weekStart"`
	Received   int       `json:"received"`
	Handovers  int       `json:"handovers"`
	Net        int       `json:"net"`
	StockLevel int       `json:"stockLevel"`
}

type StockTrendResult struct {
	Dealer       string      `json:"dealer"`
	CurrentTotal int         `json:"currentTotal"`
	Weeks        []WeekPoint `json:"weeks"`
}

// OnRoadRow is one in-transit vehicle with its transit age.
type OnRoadRow struct {
	Chassis      string `json:"chassis"`
	PGIDate      string `json:"pgiDate"`
	Dealer       string `json:"dealer"`
	Model        string `json:"model,omitempty"`
	Customer     string `json:"customer,omitempty"`
	DaysSincePGI *int   `json:"daysSincePgi,omitempty"`
}

type OnRoadResult struct {
	From string      `json:"from"`
	To   string      `json:"to"`
	Rows []OnRoadRow `json:"rows"`
}
