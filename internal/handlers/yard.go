package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/middleware"
	"github.com/roamerv/dealer-backend/internal/models"
	"github.com/roamerv/dealer-backend/internal/response"
)

type YardService interface {
	List(ctx context.Context, dealerSlug string, filters dto.YardFilters) (dto.YardResult, error)
	Receive(ctx context.Context, dealerSlug, chassis string) (*models.YardStockEntry, error)
	Dispatch(ctx context.Context, dealerSlug, chassis string) error
	Handover(ctx context.Context, dealerSlug, dealerName, chassis string) (*models.HandoverRecord, error)
}

type KPIService interface {
	Summary(ctx context.Context, dealerSlug string, args dto.WindowArgs) (dto.KPISummary, error)
	OnRoad(ctx context.Context, dealerSlug string, args dto.WindowArgs) (dto.OnRoadResult, error)
	MonthlyReceived(ctx context.Context, dealerSlug string, args dto.WindowArgs) ([]dto.MonthBucket, error)
	StockTrend(ctx context.Context, dealerSlug string) (dto.StockTrendResult, error)
}

type TierService interface {
	Compare(ctx context.Context, dealerSlug string) (dto.TierResult, error)
}

type yardHandlers struct {
	ResponseHandler response.ResponseHandler
	YardSvc         YardService
	KPISvc          KPIService
	TierSvc         TierService
}

func NewYardHandlers(deps *Deps) *yardHandlers {
	return &yardHandlers{
		ResponseHandler: deps.ResponseHandler,
		YardSvc:         deps.YardSvc,
		KPISvc:          deps.KPISvc,
		TierSvc:         deps.TierSvc,
	}
}

func (h *yardHandlers) YardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListYard)
	r.Get("/kpis", h.KPIs)
	r.Get("/monthly", h.MonthlyReceived)
	r.Get("/trend", h.StockTrend)
	r.Post("/{chassis}/receive", h.Receive)
	r.Post("/{chassis}/handover", h.Handover)
	r.Post("/{chassis}/dispatch", h.Dispatch)
	return r
}

func (h *yardHandlers) ListYard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filters := dto.YardFilters{
		ModelRange: q.Get("modelRange"),
		Function:   q.Get("function"),
		Type:       q.Get("type"),
		DaysBucket: q.Get("daysBucket"),
		Search:     q.Get("search"),
	}
	result, err := h.YardSvc.List(r.Context(), middleware.MemberSlug(r.Context()), filters)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *yardHandlers) KPIs(w http.ResponseWriter, r *http.Request) {
	summary, err := h.KPISvc.Summary(r.Context(), middleware.MemberSlug(r.Context()), windowArgsFromQuery(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, summary)
}

func (h *yardHandlers) MonthlyReceived(w http.ResponseWriter, r *http.Request) {
	buckets, err := h.KPISvc.MonthlyReceived(r.Context(), middleware.MemberSlug(r.Context()), windowArgsFromQuery(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, buckets)
}

func (h *yardHandlers) StockTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.KPISvc.StockTrend(r.Context(), middleware.MemberSlug(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, trend)
}

// OnRoad lives beside the yard routes but holds its own window state,
// independent of the KPI cards.
func (h *yardHandlers) OnRoad(w http.ResponseWriter, r *http.Request) {
	result, err := h.KPISvc.OnRoad(r.Context(), middleware.MemberSlug(r.Context()), windowArgsFromQuery(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *yardHandlers) Tiers(w http.ResponseWriter, r *http.Request) {
	result, err := h.TierSvc.Compare(r.Context(), middleware.MemberSlug(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *yardHandlers) Receive(w http.ResponseWriter, r *http.Request) {
	entry, err := h.YardSvc.Receive(r.Context(), middleware.MemberSlug(r.Context()), chi.URLParam(r, "chassis"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, entry)
}

func (h *yardHandlers) Handover(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dealerName := ""
	if cfg := middleware.Dealer(ctx); cfg != nil {
		dealerName = cfg.Name
	}
	record, err := h.YardSvc.Handover(ctx, middleware.MemberSlug(ctx), dealerName, chi.URLParam(r, "chassis"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, record)
}

func (h *yardHandlers) Dispatch(w http.ResponseWriter, r *http.Request) {
	if err := h.YardSvc.Dispatch(r.Context(), middleware.MemberSlug(r.Context()), chi.URLParam(r, "chassis")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}
