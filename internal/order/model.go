package order

import "optica-store/internal/catalog"

// PagoEstado is the four-state payment label the order service
// attaches to a pedido. The service owns all transitions.
type PagoEstado string

const (
	PagoPendiente  PagoEstado = "pendiente"
	PagoEnRevision PagoEstado = "en_revision"
	PagoPagado     PagoEstado = "pagado"
	PagoRechazado  PagoEstado = "rechazado"
)

// Normalize maps missing or unrecognized values to pendiente. Unknown
// states are never dropped from projections.
func (e PagoEstado) Normalize() PagoEstado {
	switch e {
	case PagoEnRevision, PagoPagado, PagoRechazado:
		return e
	default:
		return PagoPendiente
	}
}

type Detalle struct {
	ID             int              `json:"id"`
	Producto       catalog.Producto `json:"producto"`
	Cantidad       int              `json:"cantidad"`
	PrecioUnitario catalog.Money    `json:"precio_unitario"`
	Subtotal       catalog.Money    `json:"subtotal"`
}

type Pedido struct {
	ID                 int           `json:"id"`
	Fecha              string        `json:"fecha"`
	EnvioPais          string        `json:"envio_pais"`
	EnvioEstado        string        `json:"envio_estado"`
	Direccion          string        `json:"direccion"`
	NombreDestinatario string        `json:"nombre_destinatario"`
	NumeroCelular      string        `json:"numero_celular"`
	RecojoSucursal     bool          `json:"recojo_sucursal"`
	GoogleMapsLink     string        `json:"google_maps_link,omitempty"`
	PagoEstado         PagoEstado    `json:"pago_estado"`
	ComprobanteURL     string        `json:"comprobante_url,omitempty"`
	Observacion        string        `json:"observacion,omitempty"`
	Detalles           []Detalle     `json:"detalles"`
	Total              catalog.Money `json:"total"`
}

// Item is one line of an order-creation request. Prices are
// intentionally absent: the order service prices at order time.
type Item struct {
	ProductoID int `json:"productoId"`
	Cantidad   int `json:"cantidad"`
}

type CreatePedido struct {
	Items              []Item `json:"items"`
	EnvioPais          string `json:"envio_pais"`
	EnvioEstado        string `json:"envio_estado"`
	Direccion          string `json:"direccion"`
	NombreDestinatario string `json:"nombre_destinatario"`
	NumeroCelular      string `json:"numero_celular"`
	RecojoSucursal     bool   `json:"recojo_sucursal"`
	GoogleMapsLink     string `json:"google_maps_link,omitempty"`
}

type Created struct {
	ID int `json:"id"`
}
