package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"optica-store/internal/order"
)

type MockOrderAPI struct {
	mock.Mock
}

func (m *MockOrderAPI) List(ctx context.Context) ([]order.Pedido, error) {
	args := m.Called(ctx)
	if pedidos, ok := args.Get(0).([]order.Pedido); ok {
		return pedidos, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderAPI) ListByDay(ctx context.Context, fecha string) ([]order.Pedido, error) {
	args := m.Called(ctx, fecha)
	if pedidos, ok := args.Get(0).([]order.Pedido); ok {
		return pedidos, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderAPI) ListByWeek(ctx context.Context, fecha string) ([]order.Pedido, error) {
	args := m.Called(ctx, fecha)
	if pedidos, ok := args.Get(0).([]order.Pedido); ok {
		return pedidos, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderAPI) ListByMonth(ctx context.Context, year, month int) ([]order.Pedido, error) {
	args := m.Called(ctx, year, month)
	if pedidos, ok := args.Get(0).([]order.Pedido); ok {
		return pedidos, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderAPI) ConfirmPayment(ctx context.Context, id int, estado order.PagoEstado, observacion string) (*order.Pedido, error) {
	args := m.Called(ctx, id, estado, observacion)
	if pedido, ok := args.Get(0).(*order.Pedido); ok {
		return pedido, args.Error(1)
	}
	return nil, args.Error(1)
}

func fixedAdminHandler(orders OrderAPI) *AdminHandler {
	h := NewAdminHandler(orders)
	h.now = func() time.Time {
		return time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)
	}
	return h
}

func TestAdminHandler_Pedidos(t *testing.T) {
	batch := []order.Pedido{
		{ID: 1, PagoEstado: order.PagoPagado, Total: 100},
		{ID: 2, PagoEstado: order.PagoPendiente, Total: 50},
	}

	t.Run("All", func(t *testing.T) {
		orders := new(MockOrderAPI)
		orders.On("List", mock.Anything).Return(batch, nil)
		h := fixedAdminHandler(orders)

		w := httptest.NewRecorder()
		h.Pedidos(w, httptest.NewRequest("GET", "/admin/pedidos", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp pedidosResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Len(t, resp.Pedidos, 2)
		assert.Equal(t, 2, resp.Stats.Total)
		assert.Equal(t, 1, resp.Stats.Pagados)
		assert.InDelta(t, 100, resp.Stats.TotalVentas, 1e-9)
	})

	t.Run("DiaDefaultsToToday", func(t *testing.T) {
		orders := new(MockOrderAPI)
		orders.On("ListByDay", mock.Anything, "2024-03-15").Return([]order.Pedido{}, nil)
		h := fixedAdminHandler(orders)

		w := httptest.NewRecorder()
		h.Pedidos(w, httptest.NewRequest("GET", "/admin/pedidos?filtro=dia", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		orders.AssertExpectations(t)
	})

	t.Run("SemanaWithExplicitFecha", func(t *testing.T) {
		orders := new(MockOrderAPI)
		orders.On("ListByWeek", mock.Anything, "2024-01-02").Return([]order.Pedido{}, nil)
		h := fixedAdminHandler(orders)

		w := httptest.NewRecorder()
		h.Pedidos(w, httptest.NewRequest("GET", "/admin/pedidos?filtro=semana&fecha=2024-01-02", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		orders.AssertExpectations(t)
	})

	t.Run("MesWithExplicitYearMonth", func(t *testing.T) {
		orders := new(MockOrderAPI)
		orders.On("ListByMonth", mock.Anything, 2023, 12).Return(batch, nil)
		h := fixedAdminHandler(orders)

		w := httptest.NewRecorder()
		h.Pedidos(w, httptest.NewRequest("GET", "/admin/pedidos?filtro=mes&year=2023&month=12", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		orders.AssertExpectations(t)
	})

	t.Run("UpstreamDown", func(t *testing.T) {
		orders := new(MockOrderAPI)
		orders.On("List", mock.Anything).Return(nil, assert.AnError)
		h := fixedAdminHandler(orders)

		w := httptest.NewRecorder()
		h.Pedidos(w, httptest.NewRequest("GET", "/admin/pedidos", nil))

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func confirmRequestWithID(id, body string) *http.Request {
	req := httptest.NewRequest("PATCH", "/admin/pedidos/"+id+"/confirmar-pago", strings.NewReader(body))
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAdminHandler_ConfirmarPago(t *testing.T) {
	t.Run("Pagado", func(t *testing.T) {
		orders := new(MockOrderAPI)
		orders.On("ConfirmPayment", mock.Anything, 12, order.PagoPagado, "recibo legible").
			Return(&order.Pedido{ID: 12, PagoEstado: order.PagoPagado}, nil)
		h := fixedAdminHandler(orders)

		w := httptest.NewRecorder()
		h.ConfirmarPago(w, confirmRequestWithID("12", `{"pago_estado":"pagado","observacion":"recibo legible"}`))

		require.Equal(t, http.StatusOK, w.Code)
		var pedido order.Pedido
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pedido))
		assert.Equal(t, order.PagoPagado, pedido.PagoEstado)
		orders.AssertExpectations(t)
	})

	t.Run("RejectsNonVerdictEstado", func(t *testing.T) {
		h := fixedAdminHandler(new(MockOrderAPI))

		w := httptest.NewRecorder()
		h.ConfirmarPago(w, confirmRequestWithID("12", `{"pago_estado":"pendiente"}`))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("BadID", func(t *testing.T) {
		h := fixedAdminHandler(new(MockOrderAPI))

		w := httptest.NewRecorder()
		h.ConfirmarPago(w, confirmRequestWithID("doce", `{"pago_estado":"pagado"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
