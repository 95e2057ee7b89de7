package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	custommiddleware "github.com/mmeshcher/pos-system/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware кассового сервиса.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.GzipMiddleware)
	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/logout", h.Logout)

		r.Group(func(r chi.Router) {
			r.Use(h.authMiddleware.Middleware)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", h.ListProducts)
				r.Post("/", h.CreateProduct)
				r.Put("/{id}", h.UpdateProduct)
				r.Delete("/{id}", h.DeleteProduct)
			})

			r.Route("/brands", func(r chi.Router) {
				r.Get("/", h.ListBrands)
				r.Post("/", h.CreateBrand)
				r.Put("/{id}", h.UpdateBrand)
				r.Delete("/{id}", h.DeleteBrand)
			})

			r.Route("/units", func(r chi.Router) {
				r.Get("/", h.ListUnits)
				r.Post("/", h.CreateUnit)
				r.Put("/{id}", h.UpdateUnit)
				r.Delete("/{id}", h.DeleteUnit)
			})

			r.Route("/customers", func(r chi.Router) {
				r.Get("/", h.ListCustomers)
				r.Post("/", h.CreateCustomer)
				r.Put("/{id}", h.UpdateCustomer)
				r.Delete("/{id}", h.DeleteCustomer)
			})

			r.Route("/cashier/sessions", func(r chi.Router) {
				r.Post("/", h.CreateSession)
				r.Get("/{sessionID}", h.GetSession)
				r.Delete("/{sessionID}", h.CloseSession)
				r.Post("/{sessionID}/lines", h.AddLine)
				r.Patch("/{sessionID}/lines/{lineID}", h.UpdateLineQuantity)
				r.Delete("/{sessionID}/lines/{lineID}", h.RemoveLine)
				r.Put("/{sessionID}/adjustment", h.SetAdjustment)
				r.Post("/{sessionID}/checkout", h.Checkout)
			})

			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", h.ListInvoices)
				r.Get("/{invoiceID}", h.GetInvoice)
				r.Post("/{invoiceID}/status", h.UpdateInvoiceStatus)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	})

	return r
}
