package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roamerv/dealer-backend/internal/handlers"
	"github.com/roamerv/dealer-backend/internal/middleware"
)

// NewRouter builds the full route tree. The resolver backs the dealer access
// guard and orders backs the confirmation PDF lookup; both are the concrete
// services behind deps, passed separately because the handler-facing
// interfaces in deps are narrower.
func NewRouter(deps *handlers.Deps, resolver middleware.AccessResolver, orders handlers.OrderLookup, adminEmails []string) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(middleware.Metrics)

	oh := handlers.NewOrderHandlers(deps)
	yh := handlers.NewYardHandlers(deps)
	eh := handlers.NewExportHandlers(deps, orders)
	ih := handlers.NewInsightsHandlers(deps)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/dealers/{access}/verify", oh.VerifyAccess)

	access := middleware.NewAccessMiddleware(resolver, deps.ResponseHandler)
	r.Route("/dealers/{access}", func(r chi.Router) {
		r.Use(access.DealerAccess)
		r.Mount("/orders", oh.OrderRoutes(eh.Confirmation))
		r.Get("/slots/empty", oh.EmptySlots)
		r.Mount("/yard", yh.YardRoutes())
		r.Get("/ontheroad", yh.OnRoad)
		r.Get("/tiers", yh.Tiers)
		r.Get("/export/{entity}", eh.Export)
		r.Post("/insights", ih.Summarize)
	})

	admin := middleware.NewAdminMiddleware(deps.Firebase, adminEmails)
	ah := handlers.NewAdminHandlers(deps)
	sh := handlers.NewShowHandlers(deps)
	r.Route("/admin", func(r chi.Router) {
		r.Use(admin.AdminAuth)
		r.Mount("/", ah.AdminRoutes())
		r.Mount("/shows", sh.ShowRoutes())
	})

	return r
}
