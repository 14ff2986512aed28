package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhyudyayatech/procure-backend/api/controllers"
	pocontrollers "github.com/abhyudyayatech/procure-backend/api/controllers/po"
	"github.com/abhyudyayatech/procure-backend/api/middleware"
	"github.com/abhyudyayatech/procure-backend/internal/export"
	"github.com/abhyudyayatech/procure-backend/internal/pdfrender"
	"github.com/abhyudyayatech/procure-backend/internal/purchaseorders"
	"github.com/abhyudyayatech/procure-backend/pkg/config"
	"github.com/abhyudyayatech/procure-backend/pkg/db"
	"github.com/abhyudyayatech/procure-backend/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	poService purchaseorders.Service,
	renderer pdfrender.Renderer,
	promRegistry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	company := export.CompanyFromConfig(cfg.Company)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if promRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/po", func(r chi.Router) {
		r.Use(middleware.Actor(logg))

		r.Post("/save", pocontrollers.Save(poService, logg))
		r.Get("/list", pocontrollers.List(poService, logg))
		r.Get("/list/all", pocontrollers.ListAll(poService, logg))
		r.Get("/{poID}", pocontrollers.Get(poService, logg))
		r.Delete("/{poID}", pocontrollers.Delete(poService, logg))

		r.Post("/generate", pocontrollers.Generate(renderer, logg))
		r.Route("/export", func(r chi.Router) {
			r.Post("/csv", pocontrollers.ExportCSV(company, logg))
			r.Post("/quotation", pocontrollers.ExportQuotation(company, logg))
			r.Post("/estimate", pocontrollers.ExportEstimate(company, logg))
		})
	})

	return r
}
