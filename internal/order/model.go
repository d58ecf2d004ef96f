package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// transitions is the legal forward-only state machine: pending -> shipped ->
// delivered, with cancellation possible from pending or shipped. Delivered
// and cancelled are terminal.
var transitions = map[Status][]Status{
	StatusPending: {StatusShipped, StatusCancelled},
	StatusShipped: {StatusDelivered, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Address is the free-form structured shipping address. All fields are
// required; no country or postal-code format validation beyond presence.
type Address struct {
	FullName   string `json:"fullName"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

func (a Address) Validate() error {
	if a.FullName == "" || a.Street == "" || a.City == "" || a.PostalCode == "" || a.Country == "" {
		return ErrIncompleteAddress
	}
	return nil
}

// OrderItem captures one cart line at purchase time. PriceAtPurchase is
// frozen so later catalog price edits never rewrite order history.
type OrderItem struct {
	ID              int64           `json:"id"`
	OrderID         uuid.UUID       `json:"orderId"`
	ProductID       uuid.UUID       `json:"productId"`
	ProductName     string          `json:"productName,omitempty"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"priceAtPurchase"`
}

type Order struct {
	ID              uuid.UUID       `json:"id"`
	BuyerID         int64           `json:"userId"`
	CustomerName    string          `json:"customerName"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	Status          Status          `json:"status"`
	ShippingAddress Address         `json:"shippingAddress"`
	CreatedAt       time.Time       `json:"createdAt"`
	Items           []OrderItem     `json:"items"`
}

type Filter struct {
	Status   *Status
	Search   *string
	DateFrom *time.Time
	DateTo   *time.Time
}
