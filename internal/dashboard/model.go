package dashboard

import (
	"github.com/shopspring/decimal"
)

// Stats is the storefront-wide admin summary. TotalRevenue excludes cancelled
// orders.
type Stats struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalOrders   int64           `json:"totalOrders"`
	TotalProducts int64           `json:"totalProducts"`
	TotalUsers    int64           `json:"totalUsers"`
}

// SellerStats aggregates over order lines that reference the seller's
// products, again excluding cancelled orders.
type SellerStats struct {
	Revenue      decimal.Decimal `json:"revenue"`
	UnitsSold    int64           `json:"unitsSold"`
	OrderCount   int64           `json:"orderCount"`
	ProductCount int64           `json:"productCount"`
}
