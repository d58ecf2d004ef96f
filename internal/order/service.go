package order

import (
	"context"
	"time"

	"cartmart-be/internal/cart"
	"cartmart-be/internal/logger"
	"cartmart-be/internal/payment"
	"cartmart-be/internal/user"
	"cartmart-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// paymentTimeout bounds the wait on the payment gateway. The gateway runs
// after the order transaction committed, so a slow gateway can never hold
// database locks.
const paymentTimeout = 10 * time.Second

type PlaceOrderInput struct {
	Lines           cart.Snapshot       `json:"items"`
	ShippingAddress Address             `json:"shippingAddress"`
	ClientTotal     decimal.Decimal     `json:"totalPrice"`
	CustomerName    string              `json:"customerName"`
	Card            payment.CardDetails `json:"payment"`
}

type PlacedOrder struct {
	Order   *Order           `json:"order"`
	Payment *payment.Payment `json:"payment"`
}

type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlacedOrder, error)
	GetOrders(ctx context.Context, filter *Filter, limit, page *int32) ([]Order, error)
	GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status Status) error
}

type service struct {
	repo        Repository
	paymentRepo payment.Repository
	gateway     payment.Gateway
}

func NewService(repo Repository, paymentRepo payment.Repository, gateway payment.Gateway) Service {
	return &service{
		repo:        repo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
	}
}

// PlaceOrder turns a cart snapshot into a durable order: validate, recompute
// the total server-side, write order + items + stock decrements atomically,
// then authorize and record the payment.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*PlacedOrder, error) {
	buyerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PlaceOrder"),
		zap.Int64("buyer_id", buyerID),
		zap.Int("line_count", len(input.Lines)),
	)

	if err := input.Lines.Validate(); err != nil {
		log.Warn("invalid cart snapshot", zap.Error(err))
		return nil, err
	}

	if err := input.ShippingAddress.Validate(); err != nil {
		return nil, err
	}

	// The total is always recomputed from the captured line prices; the
	// client figure is only accepted when it agrees exactly.
	total := input.Lines.Total()
	if !input.ClientTotal.Equal(total) {
		log.Warn("price mismatch",
			zap.String("client_total", input.ClientTotal.String()),
			zap.String("server_total", total.String()),
		)
		return nil, ErrPriceMismatch
	}

	customerName := input.CustomerName
	if customerName == "" {
		customerName = input.ShippingAddress.FullName
	}

	o := &Order{
		ID:              uuid.New(),
		BuyerID:         buyerID,
		CustomerName:    customerName,
		TotalPrice:      total,
		Status:          StatusPending,
		ShippingAddress: input.ShippingAddress,
		CreatedAt:       time.Now().UTC(),
	}

	for _, line := range input.Lines {
		o.Items = append(o.Items, OrderItem{
			ProductID:       line.ProductID,
			Quantity:        line.Quantity,
			PriceAtPurchase: line.UnitPrice,
		})
	}

	if err := s.repo.CreateOrderTx(ctx, o); err != nil {
		return nil, err
	}

	p := s.settlePayment(ctx, o, input.Card)

	log.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("total", total.String()),
		zap.String("payment_status", string(p.Status)),
	)

	return &PlacedOrder{Order: o, Payment: p}, nil
}

// settlePayment authorizes the payment with a bounded wait and records the
// outcome. The order already committed; a gateway failure marks the payment
// failed instead of voiding the order.
func (s *service) settlePayment(ctx context.Context, o *Order, card payment.CardDetails) *payment.Payment {
	log := logger.FromCtx(ctx).With(zap.String("order_id", o.ID.String()))

	payCtx, cancel := context.WithTimeout(ctx, paymentTimeout)
	defer cancel()

	p := &payment.Payment{
		ID:      uuid.New(),
		OrderID: o.ID,
		UserID:  o.BuyerID,
		Amount:  o.TotalPrice,
		Method:  "card",
	}

	result, err := s.gateway.Authorize(payCtx, payment.AuthorizeRequest{
		OrderID: o.ID,
		UserID:  o.BuyerID,
		Amount:  o.TotalPrice,
		Card:    card,
	})
	if err != nil {
		log.Error("payment authorization failed", zap.Error(err))
		p.Status = payment.StatusFailed
		p.TransactionID = ""
	} else {
		p.TransactionID = result.TransactionID
		p.Method = result.Method
		switch result.Status {
		case payment.ResultCompleted:
			p.Status = payment.StatusCompleted
		case payment.ResultPending:
			p.Status = payment.StatusPending
		default:
			p.Status = payment.StatusFailed
		}
	}

	if err := s.paymentRepo.Save(ctx, p); err != nil {
		log.Error("failed to record payment, retrying", zap.Error(err))
		if err := s.paymentRepo.Save(ctx, p); err != nil {
			log.Error("failed to record payment", zap.Error(err))
			// The order is committed but the payment row is not. Report the
			// payment as pending so the response never claims a settled
			// payment that storage does not hold.
			if p.Status == payment.StatusCompleted {
				p.Status = payment.StatusPending
			}
		}
	}

	return p
}

func (s *service) GetOrders(ctx context.Context, filter *Filter, limit, page *int32) ([]Order, error) {
	if _, ok := utils.GetUserIDFromContext(ctx); !ok {
		return nil, ErrUnauthenticated
	}
	return s.repo.FetchOrders(ctx, filter, limit, page)
}

func (s *service) GetOrderDetail(ctx context.Context, orderID uuid.UUID) (*Order, error) {
	callerID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}

	role := utils.GetUserRoleFromContext(ctx)
	if o.BuyerID != callerID && role != string(user.RoleAdmin) {
		return nil, ErrForbidden
	}

	return o, nil
}

// UpdateStatus applies the forward-only state machine. The compare-and-set
// in the repository keeps concurrent transitions honest.
func (s *service) UpdateStatus(ctx context.Context, orderID uuid.UUID, status Status) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	o, err := s.repo.GetOrderDetail(ctx, orderID)
	if err != nil {
		return err
	}

	if !CanTransition(o.Status, status) {
		return ErrInvalidTransition
	}

	return s.repo.UpdateStatusFrom(ctx, orderID, o.Status, status)
}
