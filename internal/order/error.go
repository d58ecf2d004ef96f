package order

import (
	"errors"
	"fmt"

	"cartmart-be/internal/product"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated   = errors.New("not authenticated")
	ErrForbidden         = errors.New("cannot access others' orders")
	ErrOrderNotFound     = errors.New("order not found")
	ErrIncompleteAddress = errors.New("shipping address is incomplete")
	ErrPriceMismatch     = errors.New("client total does not match server-computed total")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("illegal status transition")
)

// InsufficientStockError carries per-line detail for a failed conditional
// stock decrement. It unwraps to product.ErrInsufficientStock so callers can
// match with errors.Is.
type InsufficientStockError struct {
	ProductID uuid.UUID
	Quantity  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested %d)", e.ProductID, e.Quantity)
}

func (e *InsufficientStockError) Unwrap() error {
	return product.ErrInsufficientStock
}
