package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cartmart-be/internal/logger"
	"cartmart-be/internal/product"
	"cartmart-be/internal/user"
	"cartmart-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	// CreateOrderTx persists the order, its items, and the per-line stock
	// decrements as one atomic unit of work. On any failure nothing is
	// visible to readers: no order row, no items, no stock change.
	CreateOrderTx(ctx context.Context, o *Order) error

	// FetchOrders is role-scoped: buyers see their own orders, sellers see
	// orders containing their products, admins see everything.
	FetchOrders(ctx context.Context, filter *Filter, limit, page *int32) ([]Order, error)

	GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*Order, error)

	// UpdateStatusFrom sets the status only while the row still holds the
	// expected current status, so concurrent transitions cannot race past
	// the state machine.
	UpdateStatusFrom(ctx context.Context, orderID uuid.UUID, from, to Status) error
}

type repository struct {
	db      *sql.DB
	catalog product.Repository
}

func NewRepository(db *sql.DB, catalog product.Repository) Repository {
	return &repository{db: db, catalog: catalog}
}

func (r *repository) CreateOrderTx(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrderTx"),
		zap.String("order_id", o.ID.String()),
		zap.Int("item_count", len(o.Items)),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, user_id, customer_name, total_price, status,
			ship_full_name, ship_street, ship_city, ship_postal_code, ship_country,
			created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		o.ID, o.BuyerID, o.CustomerName, o.TotalPrice.String(), o.Status,
		o.ShippingAddress.FullName, o.ShippingAddress.Street, o.ShippingAddress.City,
		o.ShippingAddress.PostalCode, o.ShippingAddress.Country,
		o.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, price_at_purchase)
			VALUES ($1,$2,$3,$4)
			RETURNING id
		`,
			item.OrderID, item.ProductID, item.Quantity, item.PriceAtPurchase.String(),
		).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.Int("item_index", i),
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err),
			)
			return fmt.Errorf("failed to insert order item: %w", err)
		}

		if err := r.catalog.DecrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, product.ErrInsufficientStock) {
				log.Warn("insufficient stock, aborting order",
					zap.String("product_id", item.ProductID.String()),
					zap.Int("quantity", item.Quantity),
				)
				return &InsufficientStockError{ProductID: item.ProductID, Quantity: item.Quantity}
			}
			log.Error("failed to decrement stock", zap.Error(err))
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return fmt.Errorf("failed to commit order transaction: %w", err)
	}

	committed = true
	log.Info("order transaction committed")
	return nil
}

func (r *repository) FetchOrders(ctx context.Context, filter *Filter, limit, page *int32) ([]Order, error) {
	callerID, _ := utils.GetUserIDFromContext(ctx)
	role := utils.GetUserRoleFromContext(ctx)

	finalLimit := int32(20)
	finalPage := int32(1)

	if limit != nil && *limit > 0 {
		finalLimit = *limit
	}
	if page != nil && *page > 0 {
		finalPage = *page
	}
	if finalLimit > 100 {
		finalLimit = 100
	}

	offset := (finalPage - 1) * finalLimit

	log := logger.FromCtx(ctx).With(
		zap.String("method", "FetchOrders"),
		zap.String("role", role),
		zap.Int32("limit", finalLimit),
		zap.Int32("page", finalPage),
	)

	query := `
		SELECT
			o.id, o.user_id, o.customer_name, o.total_price, o.status,
			o.ship_full_name, o.ship_street, o.ship_city, o.ship_postal_code, o.ship_country,
			o.created_at
		FROM orders o
		WHERE 1=1
	`

	args := []any{}
	argIndex := 1

	switch role {
	case string(user.RoleAdmin):
		// admins see everything
	case string(user.RoleSeller):
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM order_items oi
			JOIN products p ON p.id = oi.product_id
			WHERE oi.order_id = o.id AND p.seller_id = $%d
		)`, argIndex)
		args = append(args, callerID)
		argIndex++
	default:
		query += fmt.Sprintf(" AND o.user_id = $%d", argIndex)
		args = append(args, callerID)
		argIndex++
	}

	if filter != nil {
		if filter.Search != nil && *filter.Search != "" {
			query += fmt.Sprintf(
				" AND (o.id::text ILIKE $%d OR o.customer_name ILIKE $%d)",
				argIndex, argIndex,
			)
			args = append(args, "%"+*filter.Search+"%")
			argIndex++
		}

		if filter.Status != nil && *filter.Status != "" {
			query += fmt.Sprintf(" AND o.status = $%d", argIndex)
			args = append(args, *filter.Status)
			argIndex++
		}

		if filter.DateFrom != nil {
			query += fmt.Sprintf(" AND o.created_at >= $%d", argIndex)
			args = append(args, *filter.DateFrom)
			argIndex++
		}

		if filter.DateTo != nil {
			query += fmt.Sprintf(" AND o.created_at <= $%d", argIndex)
			args = append(args, *filter.DateTo)
			argIndex++
		}
	}

	query += " ORDER BY o.created_at DESC"
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.BuyerID, &o.CustomerName, &o.TotalPrice, &o.Status,
			&o.ShippingAddress.FullName, &o.ShippingAddress.Street, &o.ShippingAddress.City,
			&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
			&o.CreatedAt,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Info("orders fetched", zap.Int("count", len(orders)))
	return orders, nil
}

func (r *repository) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT
			id, user_id, customer_name, total_price, status,
			ship_full_name, ship_street, ship_city, ship_postal_code, ship_country,
			created_at
		FROM orders
		WHERE id = $1
	`, orderID).Scan(
		&o.ID, &o.BuyerID, &o.CustomerName, &o.TotalPrice, &o.Status,
		&o.ShippingAddress.FullName, &o.ShippingAddress.Street, &o.ShippingAddress.City,
		&o.ShippingAddress.PostalCode, &o.ShippingAddress.Country,
		&o.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.product_id, oi.quantity, oi.price_at_purchase, p.name
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		WHERE oi.order_id = $1
		ORDER BY oi.id
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item OrderItem
		item.OrderID = o.ID
		if err := rows.Scan(&item.ID, &item.ProductID, &item.Quantity, &item.PriceAtPurchase, &item.ProductName); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, item)
	}

	return &o, rows.Err()
}

func (r *repository) UpdateStatusFrom(ctx context.Context, orderID uuid.UUID, from, to Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1 WHERE id = $2 AND status = $3
	`, to, orderID, from)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrInvalidTransition
	}
	return nil
}
