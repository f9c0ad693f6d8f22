package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/middleware"
	"github.com/roamerv/dealer-backend/internal/response"
)

type ScheduleService interface {
	Orders(ctx context.Context, dealerSlug string, filters dto.OrderFilters) (dto.OrdersResult, error)
	ByModel(ctx context.Context, dealerSlug string, filters dto.OrderFilters) ([]dto.ModelGroup, error)
	Unsigned(ctx context.Context, dealerSlug string) (dto.UnsignedResult, error)
	EmptySlots(ctx context.Context, dealerSlug string) (dto.EmptySlotsResult, error)
}

type DealerService interface {
	VerifyAccess(ctx context.Context, accessURL string) (dto.VerifyAccessResult, error)
}

type orderHandlers struct {
	ResponseHandler response.ResponseHandler
	ScheduleSvc     ScheduleService
	DealerSvc       DealerService
}

func NewOrderHandlers(deps *Deps) *orderHandlers {
	return &orderHandlers{
		ResponseHandler: deps.ResponseHandler,
		ScheduleSvc:     deps.ScheduleSvc,
		DealerSvc:       deps.DealerSvc,
	}
}

// OrderRoutes takes the confirmation handler so the document download can
// live under /orders without this package importing the export handlers.
func (h *orderHandlers) OrderRoutes(confirmation http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListOrders)
	r.Get("/by-model", h.OrdersByModel)
	r.Get("/unsigned", h.Unsigned)
	r.Get("/{chassis}/confirmation.pdf", confirmation)
	return r
}

// VerifyAccess sits outside the access-guarded subtree: it is the call the
// portal makes to find out whether a link works at all.
func (h *orderHandlers) VerifyAccess(w http.ResponseWriter, r *http.Request) {
	result, err := h.DealerSvc.VerifyAccess(r.Context(), chi.URLParam(r, "access"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *orderHandlers) ListOrders(w http.ResponseWriter, r *http.Request) {
	result, err := h.ScheduleSvc.Orders(r.Context(), middleware.MemberSlug(r.Context()), orderFiltersFromQuery(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *orderHandlers) OrdersByModel(w http.ResponseWriter, r *http.Request) {
	groups, err := h.ScheduleSvc.ByModel(r.Context(), middleware.MemberSlug(r.Context()), orderFiltersFromQuery(r))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, groups)
}

func (h *orderHandlers) Unsigned(w http.ResponseWriter, r *http.Request) {
	result, err := h.ScheduleSvc.Unsigned(r.Context(), middleware.MemberSlug(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func (h *orderHandlers) EmptySlots(w http.ResponseWriter, r *http.Request) {
	result, err := h.ScheduleSvc.EmptySlots(r.Context(), middleware.MemberSlug(r.Context()))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

func orderFiltersFromQuery(r *http.Request) dto.OrderFilters {
	q := r.URL.Query()
	return dto.OrderFilters{
		ModelRange:       q.Get("modelRange"),
		Colour:           q.Get("colour"),
		Decals:           q.Get("decals"),
		ExteriorColour:   q.Get("exteriorColour"),
		ProductionStatus: q.Get("productionStatus"),
		Search:           q.Get("search"),
	}
}

func windowArgsFromQuery(r *http.Request) dto.WindowArgs {
	q := r.URL.Query()
	return dto.WindowArgs{
		Preset: q.Get("window"),
		From:   q.Get("from"),
		To:     q.Get("to"),
	}
}
