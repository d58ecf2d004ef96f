package dashboard

import (
	"context"
	"database/sql"

	"cartmart-be/internal/logger"
	"cartmart-be/internal/order"

	"go.uber.org/zap"
)

type Repository interface {
	Stats(ctx context.Context) (*Stats, error)
	SellerStats(ctx context.Context, sellerID int64) (*SellerStats, error)

	// RecentOrders returns the newest orders, optionally scoped to those
	// containing the given seller's products.
	RecentOrders(ctx context.Context, sellerID *int64, limit int32) ([]order.Order, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Stats(ctx context.Context) (*Stats, error) {
	log := logger.FromCtx(ctx).With(zap.String("method", "Stats"))

	var s Stats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE((SELECT SUM(total_price) FROM orders WHERE status <> 'cancelled'), 0),
			(SELECT COUNT(*) FROM orders),
			(SELECT COUNT(*) FROM products WHERE status = 'active'),
			(SELECT COUNT(*) FROM users)
	`).Scan(&s.TotalRevenue, &s.TotalOrders, &s.TotalProducts, &s.TotalUsers)
	if err != nil {
		log.Error("failed to aggregate stats", zap.Error(err))
		return nil, err
	}

	return &s, nil
}

func (r *repository) SellerStats(ctx context.Context, sellerID int64) (*SellerStats, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("method", "SellerStats"),
		zap.Int64("seller_id", sellerID),
	)

	var s SellerStats
	err := r.db.QueryRowContext(ctx, `
		SELECT
			COALESCE(SUM(oi.quantity * oi.price_at_purchase), 0),
			COALESCE(SUM(oi.quantity), 0),
			COUNT(DISTINCT o.id)
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		JOIN orders o ON o.id = oi.order_id
		WHERE p.seller_id = $1 AND o.status <> 'cancelled'
	`, sellerID).Scan(&s.Revenue, &s.UnitsSold, &s.OrderCount)
	if err != nil {
		log.Error("failed to aggregate seller sales", zap.Error(err))
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM products WHERE seller_id = $1 AND status = 'active'
	`, sellerID).Scan(&s.ProductCount)
	if err != nil {
		log.Error("failed to count seller products", zap.Error(err))
		return nil, err
	}

	return &s, nil
}

func (r *repository) RecentOrders(ctx context.Context, sellerID *int64, limit int32) ([]order.Order, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	query := `
		SELECT
			o.id, o.user_id, o.customer_name, o.total_price, o.status, o.created_at
		FROM orders o
	`
	args := []any{}

	if sellerID != nil {
		query += `
		WHERE EXISTS (
			SELECT 1 FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = o.id AND p.seller_id = $1
		)`
		args = append(args, *sellerID)
		query += " ORDER BY o.created_at DESC LIMIT $2"
	} else {
		query += " ORDER BY o.created_at DESC LIMIT $1"
	}
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to query recent orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []order.Order
	for rows.Next() {
		var o order.Order
		if err := rows.Scan(
			&o.ID, &o.BuyerID, &o.CustomerName, &o.TotalPrice, &o.Status, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}
