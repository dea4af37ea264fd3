package order

import (
	"context"
	"fmt"
	"io"

	"optica-store/internal/httpapi"
)

// Client talks to the remote order service.
type Client struct {
	api *httpapi.Client
}

func NewClient(api *httpapi.Client) *Client {
	return &Client{api: api}
}

// Create submits a new pedido and returns its id. Nothing is persisted
// locally here; the checkout handshake owns that.
func (c *Client) Create(ctx context.Context, req CreatePedido) (*Created, error) {
	var out Created
	if err := c.api.Post(ctx, "/pedidos", req, &out); err != nil {
		return nil, fmt.Errorf("create pedido: %w", err)
	}
	return &out, nil
}

func (c *Client) List(ctx context.Context) ([]Pedido, error) {
	var out []Pedido
	if err := c.api.Get(ctx, "/pedidos", &out); err != nil {
		return nil, fmt.Errorf("list pedidos: %w", err)
	}
	return out, nil
}

// ListByDay returns the pedidos of one day; fecha is YYYY-MM-DD.
func (c *Client) ListByDay(ctx context.Context, fecha string) ([]Pedido, error) {
	var out []Pedido
	if err := c.api.Get(ctx, "/pedidos/dia?fecha="+fecha, &out); err != nil {
		return nil, fmt.Errorf("list pedidos by day: %w", err)
	}
	return out, nil
}

// ListByWeek returns the pedidos of the week containing fecha.
func (c *Client) ListByWeek(ctx context.Context, fecha string) ([]Pedido, error) {
	var out []Pedido
	if err := c.api.Get(ctx, "/pedidos/semana?fecha="+fecha, &out); err != nil {
		return nil, fmt.Errorf("list pedidos by week: %w", err)
	}
	return out, nil
}

func (c *Client) ListByMonth(ctx context.Context, year, month int) ([]Pedido, error) {
	var out []Pedido
	path := fmt.Sprintf("/pedidos/mes?year=%d&month=%d", year, month)
	if err := c.api.Get(ctx, path, &out); err != nil {
		return nil, fmt.Errorf("list pedidos by month: %w", err)
	}
	return out, nil
}

// ConfirmPayment records the admin verdict on a payment proof. Estado
// must be pagado or rechazado.
func (c *Client) ConfirmPayment(ctx context.Context, id int, estado PagoEstado, observacion string) (*Pedido, error) {
	if estado != PagoPagado && estado != PagoRechazado {
		return nil, fmt.Errorf("confirm payment: estado %q is not a verdict", estado)
	}

	body := map[string]string{"pago_estado": string(estado)}
	if observacion != "" {
		body["observacion"] = observacion
	}

	var out Pedido
	path := fmt.Sprintf("/pedidos/%d/confirmar-pago", id)
	if err := c.api.Patch(ctx, path, body, &out); err != nil {
		return nil, fmt.Errorf("confirm payment: %w", err)
	}
	return &out, nil
}

// UploadComprobante attaches a payment receipt to the pedido as a
// multipart upload under the comprobante field.
func (c *Client) UploadComprobante(ctx context.Context, id int, filename string, r io.Reader) error {
	path := fmt.Sprintf("/pedidos/%d/comprobante", id)
	if err := c.api.PostMultipart(ctx, path, "comprobante", filename, r, nil); err != nil {
		return fmt.Errorf("upload comprobante: %w", err)
	}
	return nil
}
