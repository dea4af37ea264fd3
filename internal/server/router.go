package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"optica-store/internal/logger"
	"optica-store/internal/metrics"
	"optica-store/internal/middleware"
)

type Deps struct {
	Cart      *CartHandler
	Checkout  *CheckoutHandler
	Catalog   *CatalogHandler
	Admin     *AdminHandler
	Upload    *UploadHandler
	JWTSecret string
	StaticDir string
}

// NewRouter assembles the kiosk surface: storefront endpoints are
// public, back-office and upload endpoints sit behind the admin JWT,
// uploaded assets are served statically.
func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.NewRateLimiter().Middleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{
			"status":  "ok",
			"metrics": metrics.Snapshot(),
		})
	})

	r.Route("/api", func(r chi.Router) {
		// storefront
		r.Get("/categorias", d.Catalog.Categories)
		r.Get("/productos", d.Catalog.Products)
		r.Get("/productos/categoria/{id}", d.Catalog.ProductsByCategory)

		r.Route("/carrito", func(r chi.Router) {
			r.Get("/", d.Cart.Get)
			r.Delete("/", d.Cart.Clear)
			r.Post("/items", d.Cart.AddItem)
			r.Patch("/items", d.Cart.UpdateQuantity)
			r.Delete("/items", d.Cart.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", d.Checkout.Submit)
			r.Get("/", d.Checkout.GetDraft)
			r.Delete("/", d.Checkout.Abandon)
			r.Post("/comprobante", d.Checkout.UploadComprobante)
		})

		// back-office, admin token required
		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(d.JWTSecret))

			r.Get("/admin/pedidos", d.Admin.Pedidos)
			r.Patch("/admin/pedidos/{id}/confirmar-pago", d.Admin.ConfirmarPago)

			r.Post("/upload/producto", d.Upload.SaveImage("producto"))
			r.Post("/upload/categoria", d.Upload.SaveImage("categoria"))
			r.Post("/upload/delete", d.Upload.Delete)

			r.Post("/qr/upload", d.Upload.UploadQR)
			r.Get("/qr", d.Upload.QRStatus)
			r.Delete("/qr", d.Upload.DeleteQR)
		})
	})

	if d.StaticDir != "" {
		fs := http.StripPrefix("/static/", http.FileServer(http.Dir(d.StaticDir)))
		r.Get("/static/*", fs.ServeHTTP)
	}

	return r
}
