package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jordanvega/seoforge-backend/api/controllers"
	"github.com/jordanvega/seoforge-backend/api/middleware"
	contentsvc "github.com/jordanvega/seoforge-backend/internal/content"
	products "github.com/jordanvega/seoforge-backend/internal/products"
	"github.com/jordanvega/seoforge-backend/pkg/config"
	"github.com/jordanvega/seoforge-backend/pkg/db"
	"github.com/jordanvega/seoforge-backend/pkg/logger"
	"github.com/jordanvega/seoforge-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	productService products.Service,
	contentService contentsvc.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.ShopAuth(cfg, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(productService, logg))
			r.Get("/{id}", controllers.GetProduct(productService, logg))
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/", controllers.GetContent(contentService, logg))
			r.Post("/generate", controllers.GenerateContent(contentService, logg))
		})
	})

	return r
}
