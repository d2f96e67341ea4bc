package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zenskecarape/storefront-api/api/controllers"
	"github.com/zenskecarape/storefront-api/api/middleware"
	cartsvc "github.com/zenskecarape/storefront-api/internal/cart"
	catalogsvc "github.com/zenskecarape/storefront-api/internal/catalog"
	contactsvc "github.com/zenskecarape/storefront-api/internal/contact"
	ordersvc "github.com/zenskecarape/storefront-api/internal/orders"
	revalidatesvc "github.com/zenskecarape/storefront-api/internal/revalidate"
	"github.com/zenskecarape/storefront-api/pkg/config"
	"github.com/zenskecarape/storefront-api/pkg/logger"
	"github.com/zenskecarape/storefront-api/pkg/metrics"
	"github.com/zenskecarape/storefront-api/pkg/redis"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Redis       *redis.Client
	HTTPMetrics *metrics.HTTPMetrics
	Registry    *prometheus.Registry

	HealthChecks map[string]controllers.Pinger

	Catalog    *catalogsvc.Service
	Cart       *cartsvc.Service
	Contact    contactsvc.Service
	Orders     ordersvc.Service
	Revalidate *revalidatesvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Metrics(deps.HTTPMetrics),
	)

	submitPolicy := middleware.NewSubmitRateLimitPolicy(
		"submit",
		cfg.RateLimit.SubmitWindow,
		cfg.RateLimit.SubmitIPLimit,
		cfg.RateLimit.SubmitEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.HealthChecks))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", controllers.ListProducts(deps.Catalog, logg))
		r.Get("/products/{slug}", controllers.GetProduct(deps.Catalog, logg))
		r.Get("/categories", controllers.ListCategories(deps.Catalog, logg))
		r.Get("/categories/{slug}", controllers.GetCategory(deps.Catalog, logg))
		r.Get("/homepage", controllers.GetHomepage(deps.Catalog, logg))
		r.Get("/facets", controllers.GetFacets(deps.Catalog))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(deps.Cart, logg))
			r.Delete("/", controllers.ClearCart(deps.Cart, logg))
			r.Post("/items", controllers.AddCartItem(deps.Cart, logg))
			r.Patch("/items", controllers.UpdateCartQuantity(deps.Cart, logg))
			r.Delete("/items", controllers.RemoveCartItem(deps.Cart, logg))
		})

		throttled := r
		if deps.Redis != nil {
			throttled = r.With(middleware.SubmitRateLimit(submitPolicy, deps.Redis, logg))
		}
		throttled.Post("/contact", controllers.SubmitContact(deps.Contact, logg))
		throttled.Post("/orders", controllers.SubmitOrder(deps.Orders, logg))

		r.Post("/webhooks/revalidate", controllers.Revalidate(deps.Revalidate, logg))
	})

	return r
}
