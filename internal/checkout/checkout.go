// Package checkout bridges the cart to the order service. It submits
// the order, hands the draft context to the payment step and clears
// the cart, in that order, and only after the service accepted the
// order.
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"optica-store/internal/cart"
	"optica-store/internal/kv"
	"optica-store/internal/logger"
	"optica-store/internal/notify"
	"optica-store/internal/order"
)

// Persistence-surface keys owned by the checkout handshake.
const (
	keyPedidoID = "current_pedido_id"
	keyData     = "checkout_data"
	keyTotal    = "checkout_total"
	keyShipping = "shipping_type"
)

// PedidoCreator is the slice of the order service the handshake needs.
type PedidoCreator interface {
	Create(ctx context.Context, req order.CreatePedido) (*order.Created, error)
}

type Service struct {
	orders PedidoCreator
	cart   *cart.Store
	kv     kv.Store
	bus    *notify.Bus
}

// NewService wires the handshake. bus may be nil when nothing listens.
func NewService(orders PedidoCreator, cartStore *cart.Store, surface kv.Store, bus *notify.Bus) *Service {
	return &Service{orders: orders, cart: cartStore, kv: surface, bus: bus}
}

// Submit runs the handshake. Validation and order-service failures
// leave the cart and the surface untouched; once the service returns
// an id, the draft is persisted, the cart cleared and the draft
// returned for the payment step.
func (s *Service) Submit(ctx context.Context, form Form, shipping ShippingType) (*Draft, error) {
	if err := validate(form, shipping); err != nil {
		return nil, err
	}

	lines := s.cart.Lines()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	req := order.CreatePedido{
		Items:              make([]order.Item, 0, len(lines)),
		EnvioPais:          form.EnvioPais,
		EnvioEstado:        form.EnvioEstado,
		Direccion:          form.Direccion,
		NombreDestinatario: form.NombreDestinatario,
		NumeroCelular:      form.NumeroCelular,
		RecojoSucursal:     shipping == ShippingRecojo,
	}
	for _, l := range lines {
		req.Items = append(req.Items, order.Item{
			ProductoID: l.Producto.ID,
			Cantidad:   l.Quantity,
		})
	}

	switch {
	case shipping == ShippingRecojo:
		req.GoogleMapsLink = BranchMapsURL
	case form.hasLocation():
		req.GoogleMapsLink = mapsLink(form.Latitude, form.Longitude)
	}

	created, err := s.orders.Create(ctx, req)
	if err != nil {
		s.toast(notify.Toast{
			Title:       "Error",
			Description: "No se pudo crear el pedido. Intenta de nuevo.",
			Variant:     notify.VariantDestructive,
		})
		return nil, fmt.Errorf("submit pedido: %w", err)
	}

	draft := &Draft{
		PedidoID:     created.ID,
		Form:         form,
		Total:        s.cart.Total(),
		ShippingType: shipping,
	}
	s.persistDraft(ctx, draft)

	s.cart.Clear()

	s.toast(notify.Toast{
		Title:       "Pedido creado",
		Description: "Procede a realizar el pago",
		Variant:     notify.VariantSuccess,
	})
	return draft, nil
}

// LoadDraft restores the pending draft, if any.
func (s *Service) LoadDraft() (*Draft, error) {
	rawID, err := s.kv.Get(keyPedidoID)
	if err != nil {
		return nil, ErrNoDraft
	}
	id, err := strconv.Atoi(rawID)
	if err != nil {
		return nil, ErrNoDraft
	}

	draft := &Draft{PedidoID: id}

	if raw, err := s.kv.Get(keyData); err == nil {
		_ = json.Unmarshal([]byte(raw), &draft.Form)
	}
	if raw, err := s.kv.Get(keyTotal); err == nil {
		draft.Total, _ = strconv.ParseFloat(raw, 64)
	}
	if raw, err := s.kv.Get(keyShipping); err == nil {
		draft.ShippingType = ShippingType(raw)
	}

	return draft, nil
}

// ClearDraft drops the pending draft. The payment step calls it after
// the proof is submitted, or when the customer abandons the flow.
func (s *Service) ClearDraft() {
	for _, key := range []string{keyPedidoID, keyData, keyTotal, keyShipping} {
		if err := s.kv.Delete(key); err != nil {
			logger.L().Warn("draft key delete failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// persistDraft mirrors the draft to the surface. Write failures only
// degrade durability, never the handshake.
func (s *Service) persistDraft(ctx context.Context, d *Draft) {
	log := logger.FromCtx(ctx)

	set := func(key, value string) {
		if err := s.kv.Set(key, value); err != nil {
			log.Error("draft write failed", zap.String("key", key), zap.Error(err))
		}
	}

	set(keyPedidoID, strconv.Itoa(d.PedidoID))

	if data, err := json.Marshal(d.Form); err == nil {
		set(keyData, string(data))
	}
	set(keyTotal, strconv.FormatFloat(d.Total, 'f', 2, 64))
	set(keyShipping, string(d.ShippingType))
}

func (s *Service) toast(t notify.Toast) {
	if s.bus != nil {
		s.bus.Publish(t)
	}
}

func validate(form Form, shipping ShippingType) error {
	if shipping != ShippingRecojo && shipping != ShippingEnvio {
		return fmt.Errorf("%w: %q", ErrInvalidShippingType, shipping)
	}

	required := map[string]string{
		"nombre_destinatario": form.NombreDestinatario,
		"numero_celular":      form.NumeroCelular,
		"envio_pais":          form.EnvioPais,
		"envio_estado":        form.EnvioEstado,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, name)
		}
	}

	if shipping == ShippingEnvio && form.Direccion == "" && !form.hasLocation() {
		return ErrMissingLocation
	}
	return nil
}
