package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/middleware"
	"github.com/roamerv/dealer-backend/internal/models"
)

// --- Stub response handler ---

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error

	writeErrorCalled bool
	writeErrorStatus int
	writeErrorCode   string
	writeErrorMsg    string
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"success":true}`))
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, code, message string) {
	s.writeErrorCalled = true
	s.writeErrorStatus = status
	s.writeErrorCode = code
	s.writeErrorMsg = message
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

// --- Stub services ---

type stubScheduleService struct {
	ordersResult dto.OrdersResult
	ordersErr    error
	lastSlug     string
	lastFilters  dto.OrderFilters
}

func (s *stubScheduleService) Orders(_ context.Context, dealerSlug string, filters dto.OrderFilters) (dto.OrdersResult, error) {
	s.lastSlug = dealerSlug
	s.lastFilters = filters
	return s.ordersResult, s.ordersErr
}

func (s *stubScheduleService) ByModel(_ context.Context, dealerSlug string, filters dto.OrderFilters) ([]dto.ModelGroup, error) {
	s.lastSlug = dealerSlug
	s.lastFilters = filters
	return nil, nil
}

func (s *stubScheduleService) Unsigned(_ context.Context, dealerSlug string) (dto.UnsignedResult, error) {
	s.lastSlug = dealerSlug
	return dto.UnsignedResult{}, nil
}

func (s *stubScheduleService) EmptySlots(_ context.Context, dealerSlug string) (dto.EmptySlotsResult, error) {
	s.lastSlug = dealerSlug
	return dto.EmptySlotsResult{}, nil
}

type stubDealerService struct {
	verifyResult dto.VerifyAccessResult
	verifyErr    error
	lastAccess   string
}

func (s *stubDealerService) VerifyAccess(_ context.Context, accessURL string) (dto.VerifyAccessResult, error) {
	s.lastAccess = accessURL
	return s.verifyResult, s.verifyErr
}

// withAccess scopes a request to a resolved dealer the way the access
// middleware would.
func withAccess(r *http.Request, cfg *models.DealerConfig, member string) *http.Request {
	return r.WithContext(middleware.WithAccess(r.Context(), cfg, member))
}

// withChiParam injects a chi URL parameter into the request context.
func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	ctx := context.WithValue(r.Context(), chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// --- Tests ---

func TestListOrders_OK(t *testing.T) {
	svc := &stubScheduleService{ordersResult: dto.OrdersResult{Dealer: "acme-rv", Total: 2}}
	resp := &stubResponseHandler{}
	h := NewOrderHandlers(&Deps{ResponseHandler: resp, ScheduleSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/orders?modelRange=Summit&search=smith", nil)
	req = withAccess(req, &models.DealerConfig{Slug: "acme-rv", Name: "Acme RV"}, "acme-rv")
	rr := httptest.NewRecorder()
	h.ListOrders(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess with 200, got called=%v status=%d", resp.writeSuccessCalled, resp.writeSuccessStatus)
	}
	if svc.lastSlug != "acme-rv" {
		t.Fatalf("expected scoped slug acme-rv, got %q", svc.lastSlug)
	}
	if svc.lastFilters.ModelRange != "Summit" || svc.lastFilters.Search != "smith" {
		t.Fatalf("query filters not passed through: %+v", svc.lastFilters)
	}
}

func TestListOrders_ServiceError(t *testing.T) {
	svc := &stubScheduleService{ordersErr: errors.New("feed failure")}
	resp := &stubResponseHandler{}
	h := NewOrderHandlers(&Deps{ResponseHandler: resp, ScheduleSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req = withAccess(req, &models.DealerConfig{Slug: "acme-rv"}, "acme-rv")
	rr := httptest.NewRecorder()
	h.ListOrders(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError to be called")
	}
}

func TestVerifyAccess_PassesAccessURL(t *testing.T) {
	svc := &stubDealerService{verifyResult: dto.VerifyAccessResult{Slug: "acme-rv", Name: "Acme RV"}}
	resp := &stubResponseHandler{}
	h := NewOrderHandlers(&Deps{ResponseHandler: resp, DealerSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/dealers/acme-rv-a1b2c3/verify", nil)
	req = withChiParam(req, "access", "acme-rv-a1b2c3")
	rr := httptest.NewRecorder()
	h.VerifyAccess(rr, req)

	if !resp.writeSuccessCalled {
		t.Fatal("expected WriteSuccess to be called")
	}
	if svc.lastAccess != "acme-rv-a1b2c3" {
		t.Fatalf("expected access URL forwarded, got %q", svc.lastAccess)
	}
}

func TestUnsigned_UsesMemberScope(t *testing.T) {
	svc := &stubScheduleService{}
	resp := &stubResponseHandler{}
	h := NewOrderHandlers(&Deps{ResponseHandler: resp, ScheduleSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/orders/unsigned", nil)
	req = withAccess(req, &models.DealerConfig{Slug: "group-east"}, "acme-rv")
	rr := httptest.NewRecorder()
	h.Unsigned(rr, req)

	if svc.lastSlug != "acme-rv" {
		t.Fatalf("expected member slug, got %q", svc.lastSlug)
	}
}
