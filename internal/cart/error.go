package cart

import "errors"

var (
	// -- Programmer errors --
	ErrNilProduct = errors.New("cart: nil product")

	// -- Invalid selection --
	ErrColorRequired = errors.New("cart: product requires a color selection")
	ErrUnknownColor  = errors.New("cart: color not offered by this product")
)
