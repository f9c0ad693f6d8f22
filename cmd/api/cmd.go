package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/roamerv/dealer-backend/internal/bootstrap"
	"github.com/roamerv/dealer-backend/internal/config"
	"github.com/roamerv/dealer-backend/internal/feed"
	"github.com/roamerv/dealer-backend/internal/handlers"
	"github.com/roamerv/dealer-backend/internal/metrics"
	"github.com/roamerv/dealer-backend/internal/response"
	"github.com/roamerv/dealer-backend/internal/router"
	"github.com/roamerv/dealer-backend/internal/services"
	"github.com/roamerv/dealer-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// feed watcher
	client := store.NewClient(bs.Database)
	watcher, err := feed.New(client, bs.Log, cfg.FeedPollSpec, metrics.ObserveFeedRefresh)
	exitOnError("feed watcher failed", err, bs.Log)
	watcher.Start(context.Background())
	defer watcher.Stop()

	// stores
	dstore := store.NewDealerStore(bs.Database)
	ystore := store.NewYardStore(bs.Database)
	pstore := store.NewPGIStore(bs.Database)
	hstore := store.NewHandoverStore(bs.Database)
	tstore := store.NewTierStore(bs.Database)
	sstore := store.NewShowStore(bs.Database)

	// services
	schserv := services.NewScheduleService(watcher)
	kpiserv := services.NewKPIService(watcher)
	yserv := services.NewYardService(watcher, ystore, pstore, hstore)
	tserv := services.NewTierService(watcher, tstore)
	dserv := services.NewDealerService(dstore)
	shserv := services.NewShowService(sstore)
	exserv := services.NewExportService(schserv, yserv, kpiserv)
	inserv := services.NewInsightsService(nil, kpiserv, tserv)
	if bs.VertexAdapter != nil {
		inserv = services.NewInsightsService(bs.VertexAdapter, kpiserv, tserv)
	}

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.ScheduleSvc = schserv
	deps.YardSvc = yserv
	deps.KPISvc = kpiserv
	deps.TierSvc = tserv
	deps.DealerSvc = dserv
	deps.DealerAdminSvc = dserv
	deps.YardAdminSvc = yserv
	deps.TierAdminSvc = tserv
	deps.ShowSvc = shserv
	deps.ExportSvc = exserv
	deps.InsightsSvc = inserv

	// router
	r := router.NewRouter(deps, dserv, schserv, cfg.AdminAllowlist)
	err = http.ListenAndServe(":8080", r)
	exitOnError("server start failed", err, bs.Log)
}
