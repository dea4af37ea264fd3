package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"optica-store/internal/catalog"
)

func productsByCategoryRequest(id string) *http.Request {
	req := httptest.NewRequest("GET", "/api/productos/categoria/"+id, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCatalogHandler_Products(t *testing.T) {
	t.Run("ProxiesBackend", func(t *testing.T) {
		api := new(MockCatalogAPI)
		api.On("Products", mock.Anything).Return([]catalog.Producto{{ID: 3, Name: "Montura acetato"}}, nil)
		h := NewCatalogHandler(api)

		w := httptest.NewRecorder()
		h.Products(w, httptest.NewRequest("GET", "/api/productos", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Montura acetato")
	})

	t.Run("BackendDown", func(t *testing.T) {
		api := new(MockCatalogAPI)
		api.On("Products", mock.Anything).Return(nil, assert.AnError)
		h := NewCatalogHandler(api)

		w := httptest.NewRecorder()
		h.Products(w, httptest.NewRequest("GET", "/api/productos", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestCatalogHandler_ProductsByCategory(t *testing.T) {
	t.Run("ValidID", func(t *testing.T) {
		api := new(MockCatalogAPI)
		api.On("ProductsByCategory", mock.Anything, 4).Return([]catalog.Producto{}, nil)
		h := NewCatalogHandler(api)

		w := httptest.NewRecorder()
		h.ProductsByCategory(w, productsByCategoryRequest("4"))

		assert.Equal(t, http.StatusOK, w.Code)
		api.AssertExpectations(t)
	})

	t.Run("BadID", func(t *testing.T) {
		h := NewCatalogHandler(new(MockCatalogAPI))

		w := httptest.NewRecorder()
		h.ProductsByCategory(w, productsByCategoryRequest("cuatro"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
