package handlers

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roamerv/dealer-backend/internal/document"
	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/metrics"
	"github.com/roamerv/dealer-backend/internal/middleware"
	"github.com/roamerv/dealer-backend/internal/response"
)

type ExportService interface {
	Export(ctx context.Context, w io.Writer, dealerSlug, dealerName, entity, format string) (filename, contentType string, err error)
}

// OrderLookup finds a single scoped order; used for confirmation documents.
type OrderLookup interface {
	Order(ctx context.Context, dealerSlug, chassis string) (dto.OrderRow, error)
}

type exportHandlers struct {
	ResponseHandler response.ResponseHandler
	ExportSvc       ExportService
	Orders          OrderLookup
}

func NewExportHandlers(deps *Deps, orders OrderLookup) *exportHandlers {
	return &exportHandlers{
		ResponseHandler: deps.ResponseHandler,
		ExportSvc:       deps.ExportSvc,
		Orders:          orders,
	}
}

// Export streams a CSV or XLSX download. The file is built in memory
// first so a late failure still produces a clean JSON error instead of a
// truncated download.
func (h *exportHandlers) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dealerName := ""
	if cfg := middleware.Dealer(ctx); cfg != nil {
		dealerName = cfg.Name
	}
	entity := chi.URLParam(r, "entity")
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "csv"
	}

	var buf bytes.Buffer
	filename, contentType, err := h.ExportSvc.Export(ctx, &buf, middleware.MemberSlug(ctx), dealerName, entity, format)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	metrics.ExportsTotal.WithLabelValues(entity, format).Inc()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// Confirmation renders the order confirmation PDF for one chassis.
func (h *exportHandlers) Confirmation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	dealerName := ""
	if cfg := middleware.Dealer(ctx); cfg != nil {
		dealerName = cfg.Name
	}

	order, err := h.Orders.Order(ctx, middleware.MemberSlug(ctx), chi.URLParam(r, "chassis"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := document.WriteConfirmation(&buf, order, dealerName); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	metrics.ConfirmationsTotal.Inc()

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="confirmation_`+order.Chassis+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
