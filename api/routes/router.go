package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/hanbit-commerce/storefront/api/controllers"
	"github.com/hanbit-commerce/storefront/api/middleware"
	"github.com/hanbit-commerce/storefront/internal/shop"
	"github.com/hanbit-commerce/storefront/pkg/config"
	"github.com/hanbit-commerce/storefront/pkg/db"
	"github.com/hanbit-commerce/storefront/pkg/logger"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	shopSvc *shop.Shop,
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(shopSvc, logg))
			r.Get("/{productID}", controllers.GetProduct(shopSvc, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(shopSvc, logg))
			r.Post("/items", controllers.AddCartItem(shopSvc, logg))
			r.Patch("/items/{productID}", controllers.UpdateCartItem(shopSvc, logg))
			r.Delete("/items/{productID}", controllers.RemoveCartItem(shopSvc, logg))
			r.Post("/coupon", controllers.ApplyCoupon(shopSvc, logg))
			r.Delete("/coupon", controllers.ClearCoupon(shopSvc, logg))
			r.Post("/complete", controllers.CompleteOrder(shopSvc, logg))
		})

		r.Get("/coupons", controllers.ListCoupons(shopSvc, logg))

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(shopSvc, logg))
			r.Delete("/{notificationID}", controllers.DismissNotification(shopSvc, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Post("/auth/login", controllers.AdminLogin(cfg, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminOnly(cfg.JWT, logg))

			r.Route("/products", func(r chi.Router) {
				r.Post("/", controllers.CreateProduct(shopSvc, logg))
				r.Patch("/{productID}", controllers.UpdateProduct(shopSvc, logg))
				r.Delete("/{productID}", controllers.DeleteProduct(shopSvc, logg))
			})

			r.Route("/coupons", func(r chi.Router) {
				r.Post("/", controllers.CreateCoupon(shopSvc, logg))
				r.Delete("/{code}", controllers.DeleteCoupon(shopSvc, logg))
			})
		})
	})

	return r
}
