package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"optica-store/internal/catalog"
)

// CatalogAPI is the read-only catalog surface the storefront proxies.
type CatalogAPI interface {
	Categories(ctx context.Context) ([]catalog.Categoria, error)
	Products(ctx context.Context) ([]catalog.Producto, error)
	ProductsByCategory(ctx context.Context, categoryID int) ([]catalog.Producto, error)
}

type CatalogHandler struct {
	catalog CatalogAPI
}

func NewCatalogHandler(api CatalogAPI) *CatalogHandler {
	return &CatalogHandler{catalog: api}
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.catalog.Categories(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cats)
}

func (h *CatalogHandler) Products(w http.ResponseWriter, r *http.Request) {
	prods, err := h.catalog.Products(r.Context())
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prods)
}

func (h *CatalogHandler) ProductsByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "id de categoría inválido")
		return
	}

	prods, err := h.catalog.ProductsByCategory(r.Context(), id)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, prods)
}
