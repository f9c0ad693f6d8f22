package models

import "time"

// ShowOrder is an order taken at a caravan show, tracked separately from
// the production schedule until it is injected into the factory feed.
type ShowOrder struct {
	OrderID   string    `json:"orderId"`
	ShowName  string    `json:"showName"`
	Customer  string    `json:"customer"`
	Dealer    string    `json:"dealer"`
	Model     string    `json:"model"`
	Deposit   float64   `json:"deposit,omitempty"`
	Status    string    `json:"status"` // e.g. "pending", "confirmed", "cancelled"
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ShowTask is a logistics task on the show board.
type ShowTask struct {
	TaskID    string    `json:"taskId"`
	ShowName  string    `json:"showName"`
	Title     string    `json:"title"`
	Assignee  string    `json:"assignee,omitempty"`
	Status    string    `json:"status"` // "todo", "doing", "done"
	DueDate   string    `json:"dueDate,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
