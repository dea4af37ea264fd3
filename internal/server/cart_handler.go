package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"optica-store/internal/cart"
	"optica-store/internal/catalog"
)

type CartHandler struct {
	cart *cart.Store
}

func NewCartHandler(cartStore *cart.Store) *CartHandler {
	return &CartHandler{cart: cartStore}
}

type addItemRequest struct {
	Producto      *catalog.Producto `json:"producto"`
	SelectedColor string            `json:"selectedColor"`
}

type updateQuantityRequest struct {
	ProductoID    int    `json:"productoId"`
	SelectedColor string `json:"selectedColor"`
	Quantity      int    `json:"quantity"`
}

type removeItemRequest struct {
	ProductoID    int    `json:"productoId"`
	SelectedColor string `json:"selectedColor"`
}

type cartResponse struct {
	Items     []cart.Line `json:"items"`
	Total     float64     `json:"total"`
	ItemCount int         `json:"itemCount"`
}

func (h *CartHandler) snapshot() cartResponse {
	return cartResponse{
		Items:     h.cart.Lines(),
		Total:     h.cart.Total(),
		ItemCount: h.cart.ItemCount(),
	}
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return
	}

	if err := h.cart.AddItem(req.Producto, req.SelectedColor); err != nil {
		switch {
		case errors.Is(err, cart.ErrNilProduct):
			respondError(w, http.StatusBadRequest, "producto requerido")
		case errors.Is(err, cart.ErrColorRequired), errors.Is(err, cart.ErrUnknownColor):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "no se pudo añadir al carrito")
		}
		return
	}

	respondJSON(w, http.StatusCreated, h.snapshot())
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return
	}

	h.cart.UpdateQuantity(req.ProductoID, req.SelectedColor, req.Quantity)
	respondJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	var req removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return
	}

	h.cart.RemoveItem(req.ProductoID, req.SelectedColor)
	respondJSON(w, http.StatusOK, h.snapshot())
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	respondJSON(w, http.StatusOK, h.snapshot())
}
