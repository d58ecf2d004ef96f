package product

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrNotOwner          = errors.New("product belongs to another seller")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrInvalidStock      = errors.New("stock must not be negative")
	ErrInsufficientStock = errors.New("insufficient stock")
)
