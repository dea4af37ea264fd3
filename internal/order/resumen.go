package order

// Resumen aggregates a batch of pedidos for the back-office views:
// counts per payment status and the sales total over paid orders.
type Resumen struct {
	Total       int     `json:"total"`
	Pendientes  int     `json:"pendientes"`
	EnRevision  int     `json:"enRevision"`
	Pagados     int     `json:"pagados"`
	Rechazados  int     `json:"rechazados"`
	TotalVentas float64 `json:"totalVentas"`
}

// Summarize is a pure fold over the given pedidos. Missing or unknown
// payment states count as pendiente; TotalVentas sums only pagado
// records.
func Summarize(pedidos []Pedido) Resumen {
	r := Resumen{Total: len(pedidos)}

	for _, p := range pedidos {
		switch p.PagoEstado.Normalize() {
		case PagoEnRevision:
			r.EnRevision++
		case PagoPagado:
			r.Pagados++
			r.TotalVentas += float64(p.Total)
		case PagoRechazado:
			r.Rechazados++
		default:
			r.Pendientes++
		}
	}

	return r
}
