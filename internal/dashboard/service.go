package dashboard

import (
	"context"
	"errors"

	"cartmart-be/internal/order"
	"cartmart-be/internal/user"
	"cartmart-be/internal/utils"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("dashboard access denied")
)

type Service interface {
	// AdminStats is admin-only.
	AdminStats(ctx context.Context) (*Stats, error)

	// SellerOverview reports the calling seller's sales figures together with
	// their most recent orders. Admins may pass through as well.
	SellerOverview(ctx context.Context) (*SellerStats, []order.Order, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) AdminStats(ctx context.Context) (*Stats, error) {
	if _, ok := utils.GetUserIDFromContext(ctx); !ok {
		return nil, ErrUnauthenticated
	}
	if utils.GetUserRoleFromContext(ctx) != string(user.RoleAdmin) {
		return nil, ErrForbidden
	}
	return s.repo.Stats(ctx)
}

func (s *service) SellerOverview(ctx context.Context) (*SellerStats, []order.Order, error) {
	callerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, nil, ErrUnauthenticated
	}

	role := utils.GetUserRoleFromContext(ctx)
	if role != string(user.RoleSeller) && role != string(user.RoleAdmin) {
		return nil, nil, ErrForbidden
	}

	stats, err := s.repo.SellerStats(ctx, callerID)
	if err != nil {
		return nil, nil, err
	}

	recent, err := s.repo.RecentOrders(ctx, &callerID, 10)
	if err != nil {
		return nil, nil, err
	}

	return stats, recent, nil
}
