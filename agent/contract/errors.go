package contract

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrAmbiguous       = errors.New("ambiguous reference")
	ErrInvalidState    = errors.New("invalid state transition")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrEmptyCart       = errors.New("cart is empty")
	ErrNotInCart       = errors.New("item not in cart")
	ErrPersistence     = errors.New("persistence failure")
	ErrValidation      = errors.New("validation failed")
)
