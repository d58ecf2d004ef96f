package product

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func productColumns() []string {
	return []string{
		"id", "seller_id", "name", "description", "price",
		"category", "brand", "image_url", "stock",
		"is_featured", "is_popular", "status",
		"created_at", "updated_at",
	}
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	t.Run("NoFilter", func(t *testing.T) {
		rows := sqlmock.NewRows(productColumns()).AddRow(
			uuid.New(), 1, "Sneakers", "Comfy", "59.90",
			"shoes", "Nike", nil, 10,
			false, true, "active", time.Now(), time.Now(),
		)

		mock.ExpectQuery(`SELECT .* FROM products p WHERE p.status = 'active' ORDER BY p.created_at DESC LIMIT \$1 OFFSET \$2`).
			WithArgs(int32(20), int32(0)).
			WillReturnRows(rows)

		products, err := repo.List(ctx, nil, nil, nil)
		assert.NoError(t, err)
		assert.Len(t, products, 1)
		assert.Equal(t, "Sneakers", products[0].Name)
		assert.True(t, products[0].Price.Equal(decimal.RequireFromString("59.90")))
	})

	t.Run("SearchCategoryAndPriceRange", func(t *testing.T) {
		search := "shoe"
		category := "shoes"
		minPrice := decimal.RequireFromString("10")
		maxPrice := decimal.RequireFromString("100")
		filter := &Filter{
			Search:   &search,
			Category: &category,
			MinPrice: &minPrice,
			MaxPrice: &maxPrice,
			Sort:     SortPriceAsc,
		}

		mock.ExpectQuery(`SELECT .* FROM products p WHERE p.status = 'active' AND \(p.name ILIKE \$1 OR p.description ILIKE \$1\) AND p.category = \$2 AND p.price >= \$3 AND p.price <= \$4 ORDER BY p.price ASC LIMIT \$5 OFFSET \$6`).
			WithArgs("%shoe%", "shoes", "10", "100", int32(20), int32(0)).
			WillReturnRows(sqlmock.NewRows(productColumns()))

		_, err := repo.List(ctx, filter, nil, nil)
		assert.NoError(t, err)
	})

	t.Run("SellerScoped", func(t *testing.T) {
		sellerID := int64(7)
		filter := &Filter{SellerID: &sellerID}
		limit := int32(5)
		page := int32(2)

		mock.ExpectQuery(`SELECT .* FROM products p WHERE p.status = 'active' AND p.seller_id = \$1 ORDER BY p.created_at DESC LIMIT \$2 OFFSET \$3`).
			WithArgs(sellerID, limit, int32(5)).
			WillReturnRows(sqlmock.NewRows(productColumns()))

		_, err := repo.List(ctx, filter, &limit, &page)
		assert.NoError(t, err)
	})

	t.Run("DBError", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM products`).
			WillReturnError(errors.New("db error"))

		_, err := repo.List(ctx, nil, nil, nil)
		assert.Error(t, err)
	})
}

func TestRepository_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	id := uuid.New()

	t.Run("SuccessWithVariants", func(t *testing.T) {
		rows := sqlmock.NewRows(productColumns()).AddRow(
			id, 1, "T-Shirt", "Plain", "19.99",
			"apparel", "Acme", nil, 12,
			false, false, "active", time.Now(), time.Now(),
		)

		variantRows := sqlmock.NewRows([]string{"id", "product_id", "size", "color", "stock"}).
			AddRow(uuid.New(), id, "M", "blue", 5).
			AddRow(uuid.New(), id, "L", "blue", 7)

		mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(rows)
		mock.ExpectQuery(`SELECT .* FROM product_variants WHERE product_id = \$1`).
			WithArgs(id).
			WillReturnRows(variantRows)

		p, err := repo.Get(ctx, id)
		assert.NoError(t, err)
		assert.Len(t, p.Variants, 2)
		assert.Equal(t, 12, p.VariantStockSum())
		assert.Equal(t, p.Stock, p.VariantStockSum())
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT .* FROM products WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, id)
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()

	size := "M"
	p := &Product{
		ID:       uuid.New(),
		SellerID: 3,
		Name:     "Hat",
		Price:    decimal.RequireFromString("15.00"),
		Category: "accessories",
		Brand:    "Acme",
		Stock:    4,
		Status:   StatusActive,
		Variants: []Variant{{ID: uuid.New(), Size: &size, Stock: 4}},
	}

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO products`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))
		mock.ExpectExec(`INSERT INTO product_variants`).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		assert.NoError(t, repo.Create(ctx, p))
	})

	t.Run("RollbackOnVariantError", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO products`).
			WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).
				AddRow(time.Now(), time.Now()))
		mock.ExpectExec(`INSERT INTO product_variants`).
			WillReturnError(errors.New("insert error"))
		mock.ExpectRollback()

		assert.Error(t, repo.Create(ctx, p))
	})
}

func TestRepository_Disable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec(`UPDATE products SET status = 'disabled'`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Disable(ctx, id))
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec(`UPDATE products SET status = 'disabled'`).
			WithArgs(id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Disable(ctx, id), ErrProductNotFound)
	})
}

func TestRepository_DecrementStock(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewRepository(db)
	ctx := context.Background()
	id := uuid.New()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE products\s+SET stock = stock - \$1.*WHERE id = \$2 AND stock >= \$1`).
			WithArgs(2, id).
			WillReturnResult(sqlmock.NewResult(0, 1))

		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)

		assert.NoError(t, repo.DecrementStock(ctx, tx, id, 2))
	})

	t.Run("InsufficientStock", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE products\s+SET stock = stock - \$1.*WHERE id = \$2 AND stock >= \$1`).
			WithArgs(5, id).
			WillReturnResult(sqlmock.NewResult(0, 0))

		tx, err := db.BeginTx(ctx, nil)
		require.NoError(t, err)

		assert.ErrorIs(t, repo.DecrementStock(ctx, tx, id, 5), ErrInsufficientStock)
	})
}
