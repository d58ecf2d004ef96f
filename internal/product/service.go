package product

import (
	"context"
	"errors"

	"cartmart-be/internal/logger"
	"cartmart-be/internal/user"
	"cartmart-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var ErrUnauthenticated = errors.New("not authenticated")

type VariantInput struct {
	Size  *string `json:"size"`
	Color *string `json:"color"`
	Stock int     `json:"stock"`
}

type CreateInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand"`
	ImageURL    *string         `json:"imageUrl"`
	Stock       int             `json:"stock"`
	IsFeatured  bool            `json:"isFeatured"`
	IsPopular   bool            `json:"isPopular"`
	Variants    []VariantInput  `json:"variants"`
}

type UpdateInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Category    *string          `json:"category"`
	Brand       *string          `json:"brand"`
	ImageURL    *string          `json:"imageUrl"`
	Stock       *int             `json:"stock"`
	IsFeatured  *bool            `json:"isFeatured"`
	IsPopular   *bool            `json:"isPopular"`
	Variants    []VariantInput   `json:"variants"`
}

type Service interface {
	List(ctx context.Context, filter *Filter, limit, page *int32) ([]Product, error)
	Get(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, input CreateInput) (*Product, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Product, error)
	Disable(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context, filter *Filter, limit, page *int32) ([]Product, error) {
	return s.repo.List(ctx, filter, limit, page)
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.Get(ctx, id)
}

func (s *service) Create(ctx context.Context, input CreateInput) (*Product, error) {
	sellerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if input.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	if input.Stock < 0 {
		return nil, ErrInvalidStock
	}

	p := &Product{
		ID:          uuid.New(),
		SellerID:    sellerID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Category:    input.Category,
		Brand:       input.Brand,
		ImageURL:    input.ImageURL,
		Stock:       input.Stock,
		IsFeatured:  input.IsFeatured,
		IsPopular:   input.IsPopular,
		Status:      StatusActive,
	}

	for _, v := range input.Variants {
		if v.Stock < 0 {
			return nil, ErrInvalidStock
		}
		p.Variants = append(p.Variants, Variant{
			ID:    uuid.New(),
			Size:  v.Size,
			Color: v.Color,
			Stock: v.Stock,
		})
	}

	// With variants present the row stock is the variant sum.
	if len(p.Variants) > 0 {
		p.Stock = p.VariantStockSum()
	}

	if err := s.repo.Create(ctx, p); err != nil {
		logger.FromCtx(ctx).Error("failed to create product",
			zap.String("name", input.Name),
			zap.Error(err),
		)
		return nil, err
	}

	return p, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*Product, error) {
	p, err := s.authorize(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		p.Name = *input.Name
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, ErrInvalidPrice
		}
		p.Price = *input.Price
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.Brand != nil {
		p.Brand = *input.Brand
	}
	if input.ImageURL != nil {
		p.ImageURL = input.ImageURL
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return nil, ErrInvalidStock
		}
		p.Stock = *input.Stock
	}
	if input.IsFeatured != nil {
		p.IsFeatured = *input.IsFeatured
	}
	if input.IsPopular != nil {
		p.IsPopular = *input.IsPopular
	}

	if input.Variants != nil {
		p.Variants = nil
		for _, v := range input.Variants {
			if v.Stock < 0 {
				return nil, ErrInvalidStock
			}
			p.Variants = append(p.Variants, Variant{
				ID:    uuid.New(),
				Size:  v.Size,
				Color: v.Color,
				Stock: v.Stock,
			})
		}
	}

	if len(p.Variants) > 0 {
		p.Stock = p.VariantStockSum()
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) Disable(ctx context.Context, id uuid.UUID) error {
	if _, err := s.authorize(ctx, id); err != nil {
		return err
	}
	return s.repo.Disable(ctx, id)
}

// authorize loads the product and verifies the caller owns it or is an admin.
func (s *service) authorize(ctx context.Context, id uuid.UUID) (*Product, error) {
	callerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	role := utils.GetUserRoleFromContext(ctx)
	if p.SellerID != callerID && role != string(user.RoleAdmin) {
		return nil, ErrNotOwner
	}

	return p, nil
}
