package dashboard

import (
	"context"
	"testing"

	"cartmart-be/internal/order"
	"cartmart-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Stats(ctx context.Context) (*Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Stats), args.Error(1)
}

func (m *MockRepository) SellerStats(ctx context.Context, sellerID int64) (*SellerStats, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*SellerStats), args.Error(1)
}

func (m *MockRepository) RecentOrders(ctx context.Context, sellerID *int64, limit int32) ([]order.Order, error) {
	args := m.Called(ctx, sellerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func ctxWithRole(id int64, role string) context.Context {
	return utils.SetUserContext(context.Background(), id, "someone@example.com", role)
}

func TestService_AdminStats(t *testing.T) {
	t.Run("AdminAllowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		expected := &Stats{TotalRevenue: decimal.RequireFromString("99.00"), TotalOrders: 3}
		repo.On("Stats", mock.Anything).Return(expected, nil)

		s, err := svc.AdminStats(ctxWithRole(9, "admin"))
		require.NoError(t, err)
		assert.Equal(t, expected, s)
	})

	t.Run("SellerForbidden", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.AdminStats(ctxWithRole(7, "seller"))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("BuyerForbidden", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.AdminStats(ctxWithRole(1, "user"))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, err := svc.AdminStats(context.Background())
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}

func TestService_SellerOverview(t *testing.T) {
	t.Run("SellerAllowed", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		sellerID := int64(7)
		stats := &SellerStats{Revenue: decimal.RequireFromString("320.00"), UnitsSold: 16}
		recent := []order.Order{{ID: uuid.New()}}

		repo.On("SellerStats", mock.Anything, sellerID).Return(stats, nil)
		repo.On("RecentOrders", mock.Anything, &sellerID, int32(10)).Return(recent, nil)

		gotStats, gotRecent, err := svc.SellerOverview(ctxWithRole(sellerID, "seller"))
		require.NoError(t, err)
		assert.Equal(t, stats, gotStats)
		assert.Equal(t, recent, gotRecent)
		repo.AssertExpectations(t)
	})

	t.Run("BuyerForbidden", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, _, err := svc.SellerOverview(ctxWithRole(1, "user"))
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		svc := NewService(new(MockRepository))

		_, _, err := svc.SellerOverview(context.Background())
		assert.ErrorIs(t, err, ErrUnauthenticated)
	})
}
