package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/metrics"
	"github.com/roamerv/dealer-backend/internal/middleware"
	"github.com/roamerv/dealer-backend/internal/response"
)

type InsightsService interface {
	Summarize(ctx context.Context, dealerSlug, dealerName string, req dto.InsightsRequest) (dto.InsightsResult, error)
}

type insightsHandlers struct {
	ResponseHandler response.ResponseHandler
	InsightsSvc     InsightsService
}

func NewInsightsHandlers(deps *Deps) *insightsHandlers {
	return &insightsHandlers{
		ResponseHandler: deps.ResponseHandler,
		InsightsSvc:     deps.InsightsSvc,
	}
}

func (h *insightsHandlers) Summarize(w http.ResponseWriter, r *http.Request) {
	var req dto.InsightsRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
	}

	ctx := r.Context()
	dealerName := ""
	if cfg := middleware.Dealer(ctx); cfg != nil {
		dealerName = cfg.Name
	}

	result, err := h.InsightsSvc.Summarize(ctx, middleware.MemberSlug(ctx), dealerName, req)
	if err != nil {
		metrics.InsightRequestsTotal.WithLabelValues("error").Inc()
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	metrics.InsightRequestsTotal.WithLabelValues("ok").Inc()
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}
