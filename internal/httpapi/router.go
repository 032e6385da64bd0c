// Package httpapi exposes the storefront over JSON routes.
package httpapi

import (
	"net/http"

	"storefront-be/internal/address"
	"storefront-be/internal/apilog"
	"storefront-be/internal/assistant"
	"storefront-be/internal/category"
	"storefront-be/internal/checkout"
	"storefront-be/internal/logger"
	"storefront-be/internal/middleware"
	"storefront-be/internal/order"
	"storefront-be/internal/product"
	"storefront-be/internal/session"
	"storefront-be/internal/user"
	"storefront-be/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the routes call into. Addresses, Hub, Gatherer and
// Limiter are optional.
type Deps struct {
	Users      user.Service
	Sessions   *session.Manager
	Products   product.Service
	Categories category.Service
	Addresses  address.Service
	Orders     order.Service
	Checkout   *checkout.Sequencer
	Assistant  *assistant.Assistant
	APILog     *apilog.Log
	Limiter    *middleware.RateLimiter
	Hub        *websocket.Hub
	Gatherer   prometheus.Gatherer

	AllowedOrigin string
	SecureCookies bool
}

type Handler struct {
	users      user.Service
	sessions   *session.Manager
	products   product.Service
	categories category.Service
	addresses  address.Service
	orders     order.Service
	checkout   *checkout.Sequencer
	assistant  *assistant.Assistant
	apiLog     *apilog.Log
	secure     bool
}

func NewRouter(d Deps) http.Handler {
	h := &Handler{
		users:      d.Users,
		sessions:   d.Sessions,
		products:   d.Products,
		categories: d.Categories,
		addresses:  d.Addresses,
		orders:     d.Orders,
		checkout:   d.Checkout,
		assistant:  d.Assistant,
		apiLog:     d.APILog,
		secure:     d.SecureCookies,
	}

	r := chi.NewRouter()
	r.Use(
		logger.RequestIDMiddleware,
		logger.LoggingMiddleware,
		middleware.CORS(d.AllowedOrigin),
	)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}
	if d.Hub != nil {
		r.Get("/ws/orders", d.Hub.HandleWebSocket)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(d.Users, d.Sessions))
		if d.Limiter != nil {
			r.Use(d.Limiter.Middleware)
		}
		if d.APILog != nil {
			r.Use(d.APILog.Middleware)
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
			r.With(middleware.RequireUser).Get("/me", h.Me)
		})

		r.Get("/couriers", h.ListCouriers)
		r.Get("/categories", h.ListCategories)
		r.Post("/assistant/ask", h.Ask)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Get("/{productID}", h.GetProduct)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin, middleware.AdminAudit)
				r.Post("/", h.CreateProduct)
				r.Put("/{productID}", h.UpdateProduct)
				r.Delete("/{productID}", h.DeleteProduct)
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Delete("/", h.ClearCart)
			r.Post("/items", h.AddCartItem)
			r.Patch("/items/{productID}", h.UpdateCartItem)
			r.Delete("/items/{productID}", h.RemoveCartItem)
			r.Post("/buy-now", h.BuyNow)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/quote", h.Quote)
			r.Get("/phase", h.CheckoutPhase)
			r.Post("/", h.SubmitCheckout)
		})

		r.Get("/payment-methods", h.ListPaymentMethods)

		r.Route("/orders", func(r chi.Router) {
			r.Use(middleware.RequireUser)
			r.Get("/", h.MyOrders)
			r.Get("/{orderID}/payment", h.PaymentInstructions)
		})

		if d.Addresses != nil {
			r.Route("/addresses", func(r chi.Router) {
				r.Use(middleware.RequireUser)
				r.Get("/", h.ListAddresses)
				r.Put("/{addressID}/default", h.SetDefaultAddress)
				r.Delete("/{addressID}", h.DeleteAddress)
			})
		}

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin, middleware.AdminAudit)
			r.Get("/orders", h.AdminListOrders)
			r.Get("/orders/stats", h.AdminOrderStats)
			r.Put("/orders/{orderID}/status", h.AdminUpdateStatus)
			r.Post("/orders/{orderID}/courier-sync", h.AdminCourierSync)
			r.Get("/logs", h.AdminLogs)
			r.Put("/logs/tech", h.AdminSetTech)
		})
	})

	return r
}
