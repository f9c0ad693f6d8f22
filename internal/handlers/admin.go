package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/errs"
	"github.com/roamerv/dealer-backend/internal/models"
	"github.com/roamerv/dealer-backend/internal/response"
)

// AdminDealerService is the dealer management surface behind admin auth.
type AdminDealerService interface {
	List(ctx context.Context) ([]models.DealerConfig, error)
	Get(ctx context.Context, slug string) (*models.DealerConfig, error)
	Create(ctx context.Context, req dto.CreateDealerRequest) (*models.DealerConfig, error)
	Update(ctx context.Context, slug string, req dto.UpdateDealerRequest) (*models.DealerConfig, error)
	Delete(ctx context.Context, slug string) error
	RotateCode(ctx context.Context, slug string) (dto.RotateCodeResult, error)
}

// AdminYardService covers the yard operations only administrators run.
type AdminYardService interface {
	BulkImport(ctx context.Context, dealerSlug string, r io.Reader) (dto.BulkImportResult, error)
	HidePGI(ctx context.Context, chassis string) error
}

type AdminTierService interface {
	SetTarget(ctx context.Context, t models.TierTarget) (models.TierTarget, error)
}

type adminHandlers struct {
	ResponseHandler response.ResponseHandler
	DealerSvc       AdminDealerService
	YardSvc         AdminYardService
	TierSvc         AdminTierService
}

func NewAdminHandlers(deps *Deps) *adminHandlers {
	return &adminHandlers{
		ResponseHandler: deps.ResponseHandler,
		DealerSvc:       deps.DealerAdminSvc,
		YardSvc:         deps.YardAdminSvc,
		TierSvc:         deps.TierAdminSvc,
	}
}

func (h *adminHandlers) AdminRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/dealers", h.ListDealers)
	r.Post("/dealers", h.CreateDealer)
	r.Get("/dealers/{slug}", h.GetDealer)
	r.Put("/dealers/{slug}", h.UpdateDealer)
	r.Delete("/dealers/{slug}", h.DeleteDealer)
	r.Post("/dealers/{slug}/rotate-code", h.RotateCode)
	r.Post("/yard/import", h.BulkImportYard)
	r.Post("/pgi/{chassis}/hide", h.HidePGI)
	r.Put("/tiers/{code}", h.SetTierTarget)
	return r
}

func (h *adminHandlers) ListDealers(w http.ResponseWriter, r *http.Request) {
	dealers, err := h.DealerSvc.List(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dealers)
}

func (h *adminHandlers) GetDealer(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.DealerSvc.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, cfg)
}

func (h *adminHandlers) CreateDealer(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDealerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	cfg, err := h.DealerSvc.Create(r.Context(), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusCreated, cfg)
}

func (h *adminHandlers) UpdateDealer(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateDealerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	cfg, err := h.DealerSvc.Update(r.Context(), chi.URLParam(r, "slug"), req)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, cfg)
}

func (h *adminHandlers) DeleteDealer(w http.ResponseWriter, r *http.Request) {
	if err := h.DealerSvc.Delete(r.Context(), chi.URLParam(r, "slug")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

func (h *adminHandlers) RotateCode(w http.ResponseWriter, r *http.Request) {
	result, err := h.DealerSvc.RotateCode(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

// BulkImportYard loads a CSV of yard entries into one dealer's yard. The
// target dealer comes from the ?dealer= query parameter and the upload is
// the request body (text/csv) or a multipart "file" part.
func (h *adminHandlers) BulkImportYard(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("dealer")
	if slug == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("dealer query parameter is required"))
		return
	}
	if _, err := h.DealerSvc.Get(r.Context(), slug); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	body := r.Body
	if file, _, err := r.FormFile("file"); err == nil {
		defer file.Close()
		body = file
	}
	if body == nil {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("missing CSV upload"))
		return
	}

	result, err := h.YardSvc.BulkImport(r.Context(), slug, body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, result)
}

// HidePGI flags an in-transit record as history instead of deleting it.
func (h *adminHandlers) HidePGI(w http.ResponseWriter, r *http.Request) {
	if err := h.YardSvc.HidePGI(r.Context(), chi.URLParam(r, "chassis")); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, nil)
}

// SetTierTarget upserts the stocking policy for the tier code in the URL;
// a code in the body is overridden by it.
func (h *adminHandlers) SetTierTarget(w http.ResponseWriter, r *http.Request) {
	var target models.TierTarget
	if err := json.NewDecoder(r.Body).Decode(&target); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	target.TierCode = chi.URLParam(r, "code")
	saved, err := h.TierSvc.SetTarget(r.Context(), target)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, saved)
}
