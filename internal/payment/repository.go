package payment

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

var ErrPaymentNotFound = errors.New("payment not found")

type Repository interface {
	Save(ctx context.Context, p *Payment) error
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Save(ctx context.Context, p *Payment) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO payments (id, order_id, user_id, amount, status, payment_method, transaction_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`,
		p.ID, p.OrderID, p.UserID, p.Amount.String(), p.Status, p.Method, p.TransactionID,
	).Scan(&p.CreatedAt)
}

func (r *repository) GetByOrder(ctx context.Context, orderID uuid.UUID) (*Payment, error) {
	var p Payment
	err := r.db.QueryRowContext(ctx, `
		SELECT id, order_id, user_id, amount, status, payment_method, transaction_id, created_at
		FROM payments
		WHERE order_id = $1
	`, orderID).Scan(
		&p.ID, &p.OrderID, &p.UserID, &p.Amount, &p.Status, &p.Method, &p.TransactionID, &p.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = $1 WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}
