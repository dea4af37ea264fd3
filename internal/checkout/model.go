package checkout

import "fmt"

// ShippingType selects branch pickup or home delivery. Shipping cost
// is never computed on this side; the order service prices it.
type ShippingType string

const (
	ShippingRecojo ShippingType = "recojo"
	ShippingEnvio  ShippingType = "envio"
)

// Branch location of the store, used when the customer picks up in
// person.
const (
	BranchMapsURL = "https://maps.app.goo.gl/HU3CQ43wn6vEWZGi8"
	BranchLat     = -17.3928454
	BranchLng     = -66.1548083
)

// Form carries the shipping/recipient values the customer filled in.
type Form struct {
	NombreDestinatario string  `json:"nombre_destinatario"`
	NumeroCelular      string  `json:"numero_celular"`
	EnvioPais          string  `json:"envio_pais"`
	CodigoTelefonico   string  `json:"codigo_telefonico"`
	EnvioEstado        string  `json:"envio_estado"`
	Direccion          string  `json:"direccion"`
	Latitude           float64 `json:"latitude,omitempty"`
	Longitude          float64 `json:"longitude,omitempty"`
}

func (f Form) hasLocation() bool {
	return f.Latitude != 0 || f.Longitude != 0
}

// mapsLink renders the chosen coordinates as a shareable link.
func mapsLink(lat, lng float64) string {
	return fmt.Sprintf("https://www.google.com/maps?q=%f,%f", lat, lng)
}

// Draft bridges order creation and the payment step: the pending
// pedido id, the form snapshot and the total computed at creation
// time. The payment page consumes and deletes it.
type Draft struct {
	PedidoID     int          `json:"pedido_id"`
	Form         Form         `json:"form"`
	Total        float64      `json:"total"`
	ShippingType ShippingType `json:"shipping_type"`
}
