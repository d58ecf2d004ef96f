package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"cartmart-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, filter *Filter, limit, page *int32) ([]Product, error)
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Disable(ctx context.Context, id uuid.UUID) error

	// DecrementStock applies a conditional decrement inside a caller-owned
	// transaction: stock = stock - qty only while stock >= qty. Zero affected
	// rows means the product is missing or short on stock; callers must treat
	// that as ErrInsufficientStock and abort the surrounding transaction.
	DecrementStock(ctx context.Context, tx *sql.Tx, id uuid.UUID, qty int) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context, filter *Filter, limit, page *int32) ([]Product, error) {
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
		zap.String("method", "List"),
		zap.Int32("limit", finalLimit),
		zap.Int32("page", finalPage),
	)

	query := `
		SELECT
			p.id, p.seller_id, p.name, p.description, p.price,
			p.category, p.brand, p.image_url, p.stock,
			p.is_featured, p.is_popular, p.status,
			p.created_at, p.updated_at
		FROM products p
		WHERE p.status = 'active'
	`

	args := []any{}
	argIndex := 1

	if filter != nil {
		if filter.Search != nil && *filter.Search != "" {
			query += fmt.Sprintf(
				" AND (p.name ILIKE $%d OR p.description ILIKE $%d)",
				argIndex, argIndex,
			)
			args = append(args, "%"+*filter.Search+"%")
			argIndex++
		}

		if filter.Category != nil && *filter.Category != "" {
			query += fmt.Sprintf(" AND p.category = $%d", argIndex)
			args = append(args, *filter.Category)
			argIndex++
		}

		if filter.Brand != nil && *filter.Brand != "" {
			query += fmt.Sprintf(" AND p.brand = $%d", argIndex)
			args = append(args, *filter.Brand)
			argIndex++
		}

		if filter.MinPrice != nil {
			query += fmt.Sprintf(" AND p.price >= $%d", argIndex)
			args = append(args, filter.MinPrice.String())
			argIndex++
		}

		if filter.MaxPrice != nil {
			query += fmt.Sprintf(" AND p.price <= $%d", argIndex)
			args = append(args, filter.MaxPrice.String())
			argIndex++
		}

		if filter.IsFeatured != nil {
			query += fmt.Sprintf(" AND p.is_featured = $%d", argIndex)
			args = append(args, *filter.IsFeatured)
			argIndex++
		}

		if filter.IsPopular != nil {
			query += fmt.Sprintf(" AND p.is_popular = $%d", argIndex)
			args = append(args, *filter.IsPopular)
			argIndex++
		}

		if filter.SellerID != nil {
			query += fmt.Sprintf(" AND p.seller_id = $%d", argIndex)
			args = append(args, *filter.SellerID)
			argIndex++
		}
	}

	orderBy := "p.created_at DESC"
	if filter != nil {
		switch filter.Sort {
		case SortPriceAsc:
			orderBy = "p.price ASC"
		case SortPriceDesc:
			orderBy = "p.price DESC"
		case SortNewest:
			orderBy = "p.created_at DESC"
		}
	}

	query += " ORDER BY " + orderBy
	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
	args = append(args, finalLimit, offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price,
			&p.Category, &p.Brand, &p.ImageURL, &p.Stock,
			&p.IsFeatured, &p.IsPopular, &p.Status,
			&p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			log.Error("failed to scan product row", zap.Error(err))
			return nil, err
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.Debug("products listed", zap.Int("count", len(products)))
	return products, nil
}

func (r *repository) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	var p Product
	err := r.db.QueryRowContext(ctx, `
		SELECT
			id, seller_id, name, description, price,
			category, brand, image_url, stock,
			is_featured, is_popular, status,
			created_at, updated_at
		FROM products
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.SellerID, &p.Name, &p.Description, &p.Price,
		&p.Category, &p.Brand, &p.ImageURL, &p.Stock,
		&p.IsFeatured, &p.IsPopular, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, product_id, size, color, stock
		FROM product_variants
		WHERE product_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var v Variant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Size, &v.Color, &v.Stock); err != nil {
			return nil, err
		}
		p.Variants = append(p.Variants, v)
	}

	return &p, rows.Err()
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO products (
			id, seller_id, name, description, price,
			category, brand, image_url, stock,
			is_featured, is_popular, status
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		RETURNING created_at, updated_at
	`,
		p.ID, p.SellerID, p.Name, p.Description, p.Price.String(),
		p.Category, p.Brand, p.ImageURL, p.Stock,
		p.IsFeatured, p.IsPopular, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	for i := range p.Variants {
		v := &p.Variants[i]
		v.ProductID = p.ID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO product_variants (id, product_id, size, color, stock)
			VALUES ($1,$2,$3,$4,$5)
		`, v.ID, v.ProductID, v.Size, v.Color, v.Stock)
		if err != nil {
			return fmt.Errorf("failed to insert variant: %w", err)
		}
	}

	return tx.Commit()
}

func (r *repository) Update(ctx context.Context, p *Product) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, category = $4,
			brand = $5, image_url = $6, stock = $7,
			is_featured = $8, is_popular = $9, status = $10,
			updated_at = NOW()
		WHERE id = $11
	`,
		p.Name, p.Description, p.Price.String(), p.Category,
		p.Brand, p.ImageURL, p.Stock,
		p.IsFeatured, p.IsPopular, p.Status,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}

	// Variants are replaced wholesale on update.
	if _, err := tx.ExecContext(ctx, `DELETE FROM product_variants WHERE product_id = $1`, p.ID); err != nil {
		return fmt.Errorf("failed to clear variants: %w", err)
	}

	for i := range p.Variants {
		v := &p.Variants[i]
		v.ProductID = p.ID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO product_variants (id, product_id, size, color, stock)
			VALUES ($1,$2,$3,$4,$5)
		`, v.ID, v.ProductID, v.Size, v.Color, v.Stock)
		if err != nil {
			return fmt.Errorf("failed to insert variant: %w", err)
		}
	}

	return tx.Commit()
}

// Disable soft-deletes a product so historical order items keep a valid
// reference.
func (r *repository) Disable(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE products SET status = 'disabled', updated_at = NOW() WHERE id = $1
	`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *repository) DecrementStock(ctx context.Context, tx *sql.Tx, id uuid.UUID, qty int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`, qty, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrInsufficientStock
	}
	return nil
}
