package cart

import (
	"math"

	"optica-store/internal/catalog"
)

// Line is one product+color entry in the cart. The product is a
// snapshot taken at add-time and is never re-fetched; the captured
// price is the one totals are computed from.
type Line struct {
	Producto      catalog.Producto `json:"producto"`
	SelectedColor string           `json:"selectedColor"`
	Quantity      int              `json:"quantity"`
}

// matches reports whether the line carries the given identity key.
func (l Line) matches(productID int, selectedColor string) bool {
	return l.Producto.ID == productID && l.SelectedColor == selectedColor
}

// Subtotal is the captured unit price times quantity. A corrupted
// stored price counts as zero rather than poisoning the total.
func (l Line) Subtotal() float64 {
	price := float64(l.Producto.Price)
	if math.IsNaN(price) || math.IsInf(price, 0) {
		price = 0
	}
	return price * float64(l.Quantity)
}
