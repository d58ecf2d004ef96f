package product

import (
	"context"
	"database/sql"
	"testing"

	"cartmart-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) List(ctx context.Context, filter *Filter, limit, page *int32) ([]Product, error) {
	args := m.Called(ctx, filter, limit, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Product), args.Error(1)
}

func (m *MockRepository) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Product), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, p *Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Disable(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) DecrementStock(ctx context.Context, tx *sql.Tx, id uuid.UUID, qty int) error {
	args := m.Called(ctx, tx, id, qty)
	return args.Error(0)
}

func sellerCtx(id int64) context.Context {
	return utils.SetUserContext(context.Background(), id, "seller@example.com", "seller")
}

func TestService_Create(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil)

		p, err := svc.Create(sellerCtx(3), CreateInput{
			Name:  "Hat",
			Price: decimal.RequireFromString("15.00"),
			Stock: 4,
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), p.SellerID)
		assert.Equal(t, StatusActive, p.Status)
		assert.NotEqual(t, uuid.Nil, p.ID)
		repo.AssertExpectations(t)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(context.Background(), CreateInput{Name: "Hat"})
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("NegativePrice", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.Create(sellerCtx(3), CreateInput{
			Name:  "Hat",
			Price: decimal.RequireFromString("-1"),
		})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("VariantStockAggregates", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Create", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil)

		size := "M"
		p, err := svc.Create(sellerCtx(3), CreateInput{
			Name:  "Shirt",
			Price: decimal.RequireFromString("20.00"),
			Stock: 999, // ignored: variants are authoritative
			Variants: []VariantInput{
				{Size: &size, Stock: 2},
				{Size: utils.StrPtr("L"), Stock: 3},
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, 5, p.Stock)
	})
}

func TestService_Update(t *testing.T) {
	id := uuid.New()
	existing := func() *Product {
		return &Product{
			ID:       id,
			SellerID: 3,
			Name:     "Hat",
			Price:    decimal.RequireFromString("15.00"),
			Stock:    4,
			Status:   StatusActive,
		}
	}

	t.Run("OwnerUpdatesPrice", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Get", mock.Anything, id).Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil)

		newPrice := decimal.RequireFromString("18.50")
		p, err := svc.Update(sellerCtx(3), id, UpdateInput{Price: &newPrice})
		assert.NoError(t, err)
		assert.True(t, p.Price.Equal(newPrice))
		assert.Equal(t, "Hat", p.Name)
	})

	t.Run("NonOwnerRejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Get", mock.Anything, id).Return(existing(), nil)

		_, err := svc.Update(sellerCtx(99), id, UpdateInput{})
		assert.ErrorIs(t, err, ErrNotOwner)
		repo.AssertNotCalled(t, "Update")
	})

	t.Run("AdminMayUpdateAnything", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("Get", mock.Anything, id).Return(existing(), nil)
		repo.On("Update", mock.Anything, mock.AnythingOfType("*product.Product")).Return(nil)

		ctx := utils.SetUserContext(context.Background(), 1, "admin@example.com", "admin")
		name := "Fancy Hat"
		p, err := svc.Update(ctx, id, UpdateInput{Name: &name})
		assert.NoError(t, err)
		assert.Equal(t, "Fancy Hat", p.Name)
	})
}

func TestService_Disable(t *testing.T) {
	id := uuid.New()
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("Get", mock.Anything, id).Return(&Product{ID: id, SellerID: 3}, nil)
	repo.On("Disable", mock.Anything, id).Return(nil)

	assert.NoError(t, svc.Disable(sellerCtx(3), id))
	repo.AssertExpectations(t)
}
