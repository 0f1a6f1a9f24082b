package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rss-it/visitreport-backend/api/controllers"
	"github.com/rss-it/visitreport-backend/api/middleware"
	"github.com/rss-it/visitreport-backend/internal/inventory"
	"github.com/rss-it/visitreport-backend/internal/issues"
	"github.com/rss-it/visitreport-backend/internal/recycling"
	"github.com/rss-it/visitreport-backend/internal/reports"
	"github.com/rss-it/visitreport-backend/internal/storage"
	"github.com/rss-it/visitreport-backend/pkg/config"
	"github.com/rss-it/visitreport-backend/pkg/db"
	"github.com/rss-it/visitreport-backend/pkg/logger"
	"github.com/rss-it/visitreport-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	httpMetrics *metrics.HTTPMetrics,
	dbP db.Pinger,
	redisP db.Pinger,
	reportService reports.Service,
	inventoryService inventory.Service,
	storageService storage.Service,
	issueService issues.Service,
	recyclingService recycling.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisP))
	})

	r.Method(http.MethodGet, "/metrics", httpMetrics.Handler())

	r.Route("/api/v1/reports", func(r chi.Router) {
		r.Get("/", controllers.ReportList(reportService, logg))
		r.Post("/", controllers.ReportCreate(reportService, logg))

		r.Route("/{reportId}", func(r chi.Router) {
			r.Get("/", controllers.ReportGet(reportService, logg))
			r.Patch("/", controllers.ReportUpdate(reportService, logg))
			r.Delete("/", controllers.ReportDelete(reportService, logg))

			r.Route("/inventory", func(r chi.Router) {
				r.Get("/", controllers.InventoryList(inventoryService, logg))
				r.Post("/", controllers.InventoryAdd(inventoryService, logg))
				r.Get("/summary", controllers.InventorySummary(inventoryService, logg))
				r.Post("/import", controllers.InventoryImport(inventoryService, logg))
				r.Patch("/{rowId}", controllers.InventoryUpdate(inventoryService, logg))
				r.Delete("/{rowId}", controllers.InventoryDelete(inventoryService, logg))
			})

			r.Route("/racks", func(r chi.Router) {
				r.Get("/", controllers.RackList(storageService, logg))
				r.Post("/", controllers.RackCreate(storageService, logg))
			})

			r.Route("/issues", func(r chi.Router) {
				r.Get("/", controllers.IssueList(issueService, logg))
				r.Post("/", controllers.IssueCreate(issueService, logg))
			})

			r.Route("/recycling", func(r chi.Router) {
				r.Get("/", controllers.RecyclingList(recyclingService, logg))
				r.Post("/", controllers.RecyclingCreate(recyclingService, logg))
				r.Get("/totals", controllers.RecyclingTotals(recyclingService, logg))
			})
		})
	})

	r.Route("/api/v1/racks/{rackId}", func(r chi.Router) {
		r.Patch("/", controllers.RackUpdate(storageService, logg))
		r.Delete("/", controllers.RackDelete(storageService, logg))
		r.Get("/layout", controllers.RackLayout(storageService, logg))
		r.Post("/devices", controllers.DeviceAdd(storageService, logg))
	})

	r.Delete("/api/v1/devices/{deviceId}", controllers.DeviceRemove(storageService, logg))

	r.Route("/api/v1/issues/{issueId}", func(r chi.Router) {
		r.Patch("/", controllers.IssueUpdate(issueService, logg))
		r.Delete("/", controllers.IssueDelete(issueService, logg))
		r.Post("/status", controllers.IssueTransition(issueService, logg))
	})

	r.Route("/api/v1/recycling/{entryId}", func(r chi.Router) {
		r.Patch("/", controllers.RecyclingUpdate(recyclingService, logg))
		r.Delete("/", controllers.RecyclingDelete(recyclingService, logg))
	})

	return r
}
