package dto

// VertexGenerateRequest is the adapter-level shape for a Gemini call.
type VertexGenerateRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature *float32
	MaxTokens   *int32
}

type VertexGenerateResponse struct {
	Text string
}

type InsightsRequest struct {
	Question string `json:"question,omitempty"`
}

type InsightsResult struct {
	Dealer  string `json:"dealer"`
	Summary string `json:"summary"`
}
