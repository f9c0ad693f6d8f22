package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/roamerv/dealer-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	Firebase        *auth.Client

	ScheduleSvc    ScheduleService
	YardSvc        YardService
	KPISvc         KPIService
	TierSvc        TierService
	DealerSvc      DealerService
	DealerAdminSvc AdminDealerService
	YardAdminSvc   AdminYardService
	TierAdminSvc   AdminTierService
	ShowSvc        ShowService
	ExportSvc      ExportService
	InsightsSvc    InsightsService
}
