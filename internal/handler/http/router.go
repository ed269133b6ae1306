package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bloodwraith8851/gocart/internal/service"
	"github.com/bloodwraith8851/gocart/pkg/health"
	"github.com/bloodwraith8851/gocart/pkg/middleware"
)

// NewRouter creates a chi router with all seller service routes registered.
func NewRouter(
	sellerService *service.SellerService,
	catalogService *service.CatalogService,
	dashboardService *service.DashboardService,
	adminService *service.AdminService,
	tokenValidator middleware.TokenValidator,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
	pprofCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("seller"))
	r.Use(middleware.Tracing("seller"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	storeHandler := NewStoreHandler(sellerService, logger)
	catalogHandler := NewCatalogHandler(catalogService, logger)
	dashboardHandler := NewDashboardHandler(dashboardService, logger)

	// Seller API endpoints. Apply and AddProduct take multipart bodies, so
	// the JSON content-type guard is applied per route, not on the group.
	r.Route("/api/v1/store", func(r chi.Router) {
		r.Use(middleware.Auth(tokenValidator))

		r.Post("/", storeHandler.Apply)
		r.Get("/", storeHandler.Status)
		r.Get("/is-seller", storeHandler.IsSeller)

		r.Post("/products", catalogHandler.AddProduct)
		r.Get("/products", catalogHandler.ListProducts)
		r.With(ContentTypeJSON).Post("/stock-toggle", catalogHandler.ToggleStock)

		r.Get("/dashboard", dashboardHandler.Dashboard)
	})

	// Admin endpoints (role-gated)
	adminHandler := NewAdminHandler(adminService, logger)

	r.Route("/api/v1/admin/stores", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))
		r.Use(middleware.RequireRole("admin"))

		r.Post("/{id}/approval", adminHandler.Decide)
	})

	return r
}
