package payment

import (
	"context"

	"cartmart-be/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ResultStatus string

const (
	ResultCompleted ResultStatus = "COMPLETED"
	ResultDeclined  ResultStatus = "DECLINED"
	ResultPending   ResultStatus = "PENDING"
)

type AuthorizeRequest struct {
	OrderID uuid.UUID
	UserID  int64
	Amount  decimal.Decimal
	Card    CardDetails
}

type AuthorizeResult struct {
	Status        ResultStatus
	TransactionID string
	Method        string
}

// Gateway authorizes a payment for an order. Implementations are expected to
// honor ctx cancellation; callers bound the wait with a timeout.
type Gateway interface {
	Authorize(ctx context.Context, req AuthorizeRequest) (*AuthorizeResult, error)
}

// stubGateway approves everything. There is no processor round-trip in this
// system; the seam exists so a real gateway can slot in later.
type stubGateway struct{}

func NewStubGateway() Gateway {
	return &stubGateway{}
}

func (g *stubGateway) Authorize(ctx context.Context, req AuthorizeRequest) (*AuthorizeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	method := "card"
	if req.Card.Number == "" {
		method = "manual"
	}

	return &AuthorizeResult{
		Status:        ResultCompleted,
		TransactionID: utils.GenerateTransactionID(),
		Method:        method,
	}, nil
}
