package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/roamerv/dealer-backend/internal/dto"
	"github.com/roamerv/dealer-backend/internal/models"
)

type stubYardService struct {
	receiveEntry  *models.YardStockEntry
	receiveErr    error
	handoverRec   *models.HandoverRecord
	importResult  dto.BulkImportResult
	lastSlug      string
	lastName      string
	lastChassis   string
	lastImportCSV string
}

func (s *stubYardService) List(_ context.Context, dealerSlug string, _ dto.YardFilters) (dto.YardResult, error) {
	s.lastSlug = dealerSlug
	return dto.YardResult{}, nil
}

func (s *stubYardService) Receive(_ context.Context, dealerSlug, chassis string) (*models.YardStockEntry, error) {
	s.lastSlug = dealerSlug
	s.lastChassis = chassis
	return s.receiveEntry, s.receiveErr
}

func (s *stubYardService) Dispatch(_ context.Context, dealerSlug, chassis string) error {
	s.lastSlug = dealerSlug
	s.lastChassis = chassis
	return nil
}

func (s *stubYardService) Handover(_ context.Context, dealerSlug, dealerName, chassis string) (*models.HandoverRecord, error) {
	s.lastSlug = dealerSlug
	s.lastName = dealerName
	s.lastChassis = chassis
	return s.handoverRec, nil
}

func (s *stubYardService) BulkImport(_ context.Context, dealerSlug string, r io.Reader) (dto.BulkImportResult, error) {
	s.lastSlug = dealerSlug
	body, _ := io.ReadAll(r)
	s.lastImportCSV = string(body)
	return s.importResult, nil
}

func (s *stubYardService) HidePGI(_ context.Context, chassis string) error {
	s.lastChassis = chassis
	return nil
}

type stubAdminDealerService struct {
	cfg *models.DealerConfig
	err error
}

func (s *stubAdminDealerService) List(_ context.Context) ([]models.DealerConfig, error) {
	return nil, s.err
}

func (s *stubAdminDealerService) Get(_ context.Context, _ string) (*models.DealerConfig, error) {
	return s.cfg, s.err
}

func (s *stubAdminDealerService) Create(_ context.Context, _ dto.CreateDealerRequest) (*models.DealerConfig, error) {
	return s.cfg, s.err
}

func (s *stubAdminDealerService) Update(_ context.Context, _ string, _ dto.UpdateDealerRequest) (*models.DealerConfig, error) {
	return s.cfg, s.err
}

func (s *stubAdminDealerService) Delete(_ context.Context, _ string) error {
	return s.err
}

func (s *stubAdminDealerService) RotateCode(_ context.Context, _ string) (dto.RotateCodeResult, error) {
	return dto.RotateCodeResult{}, s.err
}

func TestReceive_ScopesToMember(t *testing.T) {
	svc := &stubYardService{receiveEntry: &models.YardStockEntry{Chassis: "ABC123"}}
	resp := &stubResponseHandler{}
	h := NewYardHandlers(&Deps{ResponseHandler: resp, YardSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/yard/ABC123/receive", nil)
	req = withAccess(req, &models.DealerConfig{Slug: "acme-rv", Name: "Acme RV"}, "acme-rv")
	req = withChiParam(req, "chassis", "ABC123")
	rr := httptest.NewRecorder()
	h.Receive(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusCreated {
		t.Fatalf("expected WriteSuccess with 201, got called=%v status=%d", resp.writeSuccessCalled, resp.writeSuccessStatus)
	}
	if svc.lastSlug != "acme-rv" || svc.lastChassis != "ABC123" {
		t.Fatalf("wrong scope: slug=%q chassis=%q", svc.lastSlug, svc.lastChassis)
	}
}

func TestHandover_PassesDealerName(t *testing.T) {
	svc := &stubYardService{handoverRec: &models.HandoverRecord{Chassis: "ABC123"}}
	resp := &stubResponseHandler{}
	h := NewYardHandlers(&Deps{ResponseHandler: resp, YardSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/yard/ABC123/handover", nil)
	req = withAccess(req, &models.DealerConfig{Slug: "acme-rv", Name: "Acme RV"}, "acme-rv")
	req = withChiParam(req, "chassis", "ABC123")
	rr := httptest.NewRecorder()
	h.Handover(rr, req)

	if !resp.writeSuccessCalled {
		t.Fatal("expected WriteSuccess to be called")
	}
	if svc.lastName != "Acme RV" {
		t.Fatalf("expected display name on handover record, got %q", svc.lastName)
	}
}

func TestBulkImportYard_RequiresDealer(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewAdminHandlers(&Deps{
		ResponseHandler: resp,
		DealerAdminSvc:  &stubAdminDealerService{cfg: &models.DealerConfig{Slug: "acme-rv"}},
		YardAdminSvc:    &stubYardService{},
	})

	req := httptest.NewRequest(http.MethodPost, "/yard/import", strings.NewReader("chassis\nABC123\n"))
	rr := httptest.NewRecorder()
	h.BulkImportYard(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected missing dealer parameter to be rejected")
	}
}

func TestBulkImportYard_ForwardsBody(t *testing.T) {
	yards := &stubYardService{importResult: dto.BulkImportResult{Imported: 1}}
	resp := &stubResponseHandler{}
	h := NewAdminHandlers(&Deps{
		ResponseHandler: resp,
		DealerAdminSvc:  &stubAdminDealerService{cfg: &models.DealerConfig{Slug: "acme-rv"}},
		YardAdminSvc:    yards,
	})

	csv := "chassis,model\nABC123,Summit 19\n"
	req := httptest.NewRequest(http.MethodPost, "/yard/import?dealer=acme-rv", strings.NewReader(csv))
	req.Header.Set("Content-Type", "text/csv")
	rr := httptest.NewRecorder()
	h.BulkImportYard(rr, req)

	if !resp.writeSuccessCalled {
		t.Fatalf("expected WriteSuccess, error=%v", resp.handleError)
	}
	if yards.lastSlug != "acme-rv" || yards.lastImportCSV != csv {
		t.Fatalf("import not forwarded: slug=%q body=%q", yards.lastSlug, yards.lastImportCSV)
	}
}
