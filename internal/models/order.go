package models

// Order is one schedule-feed row: a production slot for a single vehicle,
// keyed by chassis number. Empty-slot rows (dealer allocated, no chassis
// assigned yet) have HasChassis == false.
type Order struct {
	Chassis                string `json:"chassis"`
	HasChassis             bool   `json:"hasChassis"`
	Customer               string `json:"customer"`
	Dealer                 string `json:"dealer"`
	Model                  string `json:"model"`
	ModelYear              string `json:"modelYear,omitempty"`
	ForecastProductionDate string `json:"forecastProductionDate,omitempty"`
	ProductionStatus       string `json:"productionStatus,omitempty"`
	RequestedDeliveryDate  string `json:"requestedDeliveryDate,omitempty"`
	SignedPlansReceived    string `json:"signedPlansReceived,omitempty"`
	OrderReceivedDate      string `json:"orderReceivedDate,omitempty"`
	Colour                 string `json:"colour,omitempty"`
	Decals                 string `json:"decals,omitempty"`
	ExteriorColour         string `json:"exteriorColour,omitempty"`
	SortIndex1             string `json:"sortIndex1,omitempty"`
	SortRank1              string `json:"sortRank1,omitempty"`
	SortRank2              string `json:"sortRank2,omitempty"`
}
