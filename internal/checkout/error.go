package checkout

import "errors"

var (
	// -- Validation --
	ErrEmptyCart           = errors.New("checkout: cart is empty")
	ErrMissingField        = errors.New("checkout: required field missing")
	ErrMissingLocation     = errors.New("checkout: delivery needs an address or a map location")
	ErrInvalidShippingType = errors.New("checkout: invalid shipping type")

	// -- Draft context --
	ErrNoDraft = errors.New("checkout: no draft pedido pending")
)
