// Package cart models the buyer's cart as an explicit value passed into
// checkout. The cart lives client-side; the server only ever sees a snapshot
// of it at order time.
package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line is one (product, quantity, captured price) triple the buyer intends
// to purchase. UnitPrice is the price at the moment the line was added, not
// the live catalog price.
type Line struct {
	ProductID uuid.UUID       `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"price"`
}

type Snapshot []Line

// Validate enforces the checkout preconditions: at least one line, every
// quantity >= 1, no negative prices.
func (s Snapshot) Validate() error {
	if len(s) == 0 {
		return ErrEmptyCart
	}
	for _, line := range s {
		if line.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if line.UnitPrice.IsNegative() {
			return ErrInvalidPrice
		}
	}
	return nil
}

// Total sums unit price times quantity over all lines.
func (s Snapshot) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range s {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}
