package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"optica-store/internal/order"
)

// OrderAPI is the slice of the order service the back-office needs.
type OrderAPI interface {
	List(ctx context.Context) ([]order.Pedido, error)
	ListByDay(ctx context.Context, fecha string) ([]order.Pedido, error)
	ListByWeek(ctx context.Context, fecha string) ([]order.Pedido, error)
	ListByMonth(ctx context.Context, year, month int) ([]order.Pedido, error)
	ConfirmPayment(ctx context.Context, id int, estado order.PagoEstado, observacion string) (*order.Pedido, error)
}

type AdminHandler struct {
	orders OrderAPI
	now    func() time.Time
}

func NewAdminHandler(orders OrderAPI) *AdminHandler {
	return &AdminHandler{orders: orders, now: time.Now}
}

type pedidosResponse struct {
	Pedidos []order.Pedido `json:"pedidos"`
	Stats   order.Resumen  `json:"stats"`
}

// Pedidos lists orders for the requested period (filtro=all|dia|semana|mes)
// together with the payment-status projection over that batch.
func (h *AdminHandler) Pedidos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	now := h.now()
	today := now.Format("2006-01-02")

	var (
		pedidos []order.Pedido
		err     error
	)
	switch r.URL.Query().Get("filtro") {
	case "dia":
		if fecha := r.URL.Query().Get("fecha"); fecha != "" {
			today = fecha
		}
		pedidos, err = h.orders.ListByDay(ctx, today)
	case "semana":
		if fecha := r.URL.Query().Get("fecha"); fecha != "" {
			today = fecha
		}
		pedidos, err = h.orders.ListByWeek(ctx, today)
	case "mes":
		year, month := now.Year(), int(now.Month())
		if y, convErr := strconv.Atoi(r.URL.Query().Get("year")); convErr == nil {
			year = y
		}
		if m, convErr := strconv.Atoi(r.URL.Query().Get("month")); convErr == nil {
			month = m
		}
		pedidos, err = h.orders.ListByMonth(ctx, year, month)
	default:
		pedidos, err = h.orders.List(ctx)
	}
	if err != nil {
		respondUpstreamError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, pedidosResponse{
		Pedidos: pedidos,
		Stats:   order.Summarize(pedidos),
	})
}

type confirmRequest struct {
	PagoEstado  order.PagoEstado `json:"pago_estado"`
	Observacion string           `json:"observacion"`
}

func (h *AdminHandler) ConfirmarPago(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "id de pedido inválido")
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "cuerpo JSON inválido")
		return
	}
	if req.PagoEstado != order.PagoPagado && req.PagoEstado != order.PagoRechazado {
		respondError(w, http.StatusUnprocessableEntity, "pago_estado debe ser pagado o rechazado")
		return
	}

	pedido, err := h.orders.ConfirmPayment(r.Context(), id, req.PagoEstado, req.Observacion)
	if err != nil {
		respondUpstreamError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pedido)
}
