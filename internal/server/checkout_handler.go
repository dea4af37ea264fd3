package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"optica-store/internal/checkout"
)

// ComprobanteUploader is the slice of the order client the payment
// step needs.
type ComprobanteUploader interface {
	UploadComprobante(ctx context.Context, id int, filename string, r io.Reader) error
}

type CheckoutHandler struct {
	checkout *checkout.Service
	orders   ComprobanteUploader
}

func NewCheckoutHandler(svc *checkout.Service, orders ComprobanteUploader) *CheckoutHandler {
	return &CheckoutHandler{checkout: svc, orders: orders}
}

type submitRequest struct {
	checkout.Form
	ShippingType checkout.ShippingType `json:"shipping_type"`
}

func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return
	}
	if req.ShippingType == "" {
		req.ShippingType = checkout.ShippingEnvio
	}

	draft, err := h.checkout.Submit(r.Context(), req.Form, req.ShippingType)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart),
			errors.Is(err, checkout.ErrMissingField),
			errors.Is(err, checkout.ErrMissingLocation),
			errors.Is(err, checkout.ErrInvalidShippingType):
			respondError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			respondUpstreamError(w, err)
		}
		return
	}

	respondJSON(w, http.StatusCreated, draft)
}

func (h *CheckoutHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.checkout.LoadDraft()
	if err != nil {
		respondError(w, http.StatusNotFound, "no hay pedido pendiente de pago")
		return
	}
	respondJSON(w, http.StatusOK, draft)
}

// Abandon drops the pending draft without sending a proof.
func (h *CheckoutHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	h.checkout.ClearDraft()
	respondJSON(w, http.StatusNoContent, nil)
}

// UploadComprobante forwards the payment receipt to the order service
// for the pending draft and consumes the draft on success.
func (h *CheckoutHandler) UploadComprobante(w http.ResponseWriter, r *http.Request) {
	draft, err := h.checkout.LoadDraft()
	if err != nil {
		respondError(w, http.StatusNotFound, "no hay pedido pendiente de pago")
		return
	}

	if err := r.ParseMultipartForm(8 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "formulario multipart inválido")
		return
	}

	file, header, err := r.FormFile("comprobante")
	if err != nil {
		respondError(w, http.StatusBadRequest, "comprobante requerido")
		return
	}
	defer file.Close()

	if err := h.orders.UploadComprobante(r.Context(), draft.PedidoID, header.Filename, file); err != nil {
		respondUpstreamError(w, err)
		return
	}

	h.checkout.ClearDraft()
	respondJSON(w, http.StatusOK, map[string]string{
		"message": "Tu pago está en proceso de verificación",
	})
}
