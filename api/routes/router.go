package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danisworo/inventory-backoffice/api/controllers"
	"github.com/danisworo/inventory-backoffice/api/middleware"
	catalogsvc "github.com/danisworo/inventory-backoffice/internal/catalog"
	pricingsvc "github.com/danisworo/inventory-backoffice/internal/pricing"
	"github.com/danisworo/inventory-backoffice/pkg/config"
	pkgdb "github.com/danisworo/inventory-backoffice/pkg/db"
	"github.com/danisworo/inventory-backoffice/pkg/logger"
	pkgredis "github.com/danisworo/inventory-backoffice/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config  *config.Config
	Logger  *logger.Logger
	DB      pkgdb.Pinger
	Redis   *pkgredis.Client
	Metrics prometheus.Gatherer

	PricingService pricingsvc.Service
	CatalogService catalogsvc.Service
	WriteGuard     controllers.WriteGuard
}

// NewRouter builds the HTTP surface of the back office.
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	var redisPinger pkgredis.Pinger
	if deps.Redis != nil {
		redisPinger = deps.Redis
	}

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, redisPinger))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{}))
	}

	var idempotencyStore pkgredis.IdempotencyStore
	if deps.Redis != nil {
		idempotencyStore = deps.Redis
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/inventory-price", func(r chi.Router) {
			r.Get("/{product_id}", controllers.GetInventoryPrice(deps.PricingService, logg))
			r.With(middleware.Idempotency(idempotencyStore, cfg.Pricing.IdempotencyTTL, logg)).
				Put("/{product_id}", controllers.UpdateInventoryPrice(deps.PricingService, deps.WriteGuard, logg))
		})

		r.Get("/price-categories", controllers.ListPriceCategories(deps.CatalogService, logg))
		r.Get("/taxes", controllers.ListTaxes(deps.CatalogService, logg))
		r.Get("/products/{product_id}/variants", controllers.ListProductVariants(deps.CatalogService, logg))
	})

	return r
}
