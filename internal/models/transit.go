package models

// PGIRecord is a vehicle that has left the factory (post goods issue) but
// has not yet been received into a dealer yard. Stored under
// pgirecord/{chassis}; History hides a record without deleting it.
type PGIRecord struct {
	Chassis  string `json:"chassis"`
	PGIDate  string `json:"pgiDate"` // dd/mm/yyyy
	Dealer   string `json:"dealer"`
	Model    string `json:"model,omitempty"`
	Customer string `json:"customer,omitempty"`
	History  bool   `json:"history,omitempty"`
}

// HandoverRecord marks a yard entry handed to its customer; creating one
// removes the corresponding YardStockEntry. Stored under
// handover/{dealerSlug}/{chassis}.
type HandoverRecord struct {
	Chassis    string `json:"chassis"`
	HandoverAt string `json:"handoverAt"` // RFC3339
	DealerSlug string `json:"dealerSlug"`
	DealerName string `json:"dealerName,omitempty"`
	Model      string `json:"model,omitempty"`
	Customer   string `json:"customer,omitempty"`
}
