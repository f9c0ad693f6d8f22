package dto

import "github.com/roamerv/dealer-backend/internal/models"

type CreateShowOrderRequest struct {
	ShowName string  `json:"showName"`
	Customer string  `json:"customer"`
	Dealer   string  `json:"dealer"`
	Model    string  `json:"model"`
	Deposit  float64 `json:"deposit,omitempty"`
}

type UpdateShowOrderRequest struct {
	Status  *string  `json:"status,omitempty"`
	Deposit *float64 `json:"deposit,omitempty"`
}

type CreateShowTaskRequest struct {
	ShowName string `json:"showName"`
	Title    string `json:"title"`
	Assignee string `json:"assignee,omitempty"`
	DueDate  string `json:"dueDate,omitempty"`
}

type UpdateShowTaskRequest struct {
	Status   *string `json:"status,omitempty"`
	Assignee *string `json:"assignee,omitempty"`
	DueDate  *string `json:"dueDate,omitempty"`
}

// TaskBoard groups show tasks by status column.
type TaskBoard struct {
	Todo  []models.ShowTask `json:"todo"`
	Doing []models.ShowTask `json:"doing"`
	Done  []models.ShowTask `json:"done"`
}
