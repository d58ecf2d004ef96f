package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusDisabled = "disabled"
)

type Variant struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"productId"`
	Size      *string   `json:"size,omitempty"`
	Color     *string   `json:"color,omitempty"`
	Stock     int       `json:"stock"`
}

type Product struct {
	ID          uuid.UUID       `json:"id"`
	SellerID    int64           `json:"sellerId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	ImageURL    *string         `json:"imageUrl,omitempty"`
	Stock       int             `json:"stock"`
	IsFeatured  bool            `json:"isFeatured"`
	IsPopular   bool            `json:"isPopular"`
	Status      string          `json:"status"`
	Variants    []Variant       `json:"variants,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// VariantStockSum returns the aggregate stock across variants. When a product
// carries variants, the row-level stock column must equal this sum.
func (p *Product) VariantStockSum() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

type SortOrder string

const (
	SortPriceAsc  SortOrder = "price_asc"
	SortPriceDesc SortOrder = "price_desc"
	SortNewest    SortOrder = "newest"
)

type Filter struct {
	Search     *string
	Category   *string
	Brand      *string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	IsFeatured *bool
	IsPopular  *bool
	SellerID   *int64
	Sort       SortOrder
}
