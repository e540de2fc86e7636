package repository

import (
    "context"

    "github.com/jmoiron/sqlx"

    "github.com/iliyamo/property-booking/internal/model"
)

// PaymentRepo stores mock payment records in the 'payments' table.
type PaymentRepo struct{ db *sqlx.DB }

func NewPaymentRepo(db *sqlx.DB) *PaymentRepo { return &PaymentRepo{db: db} }

func (r *PaymentRepo) Create(ctx context.Context, p *model.Payment) error {
    _, err := r.db.NamedExecContext(ctx,
        `INSERT INTO payments (id, booking_id, amount, currency, card_last4, status, created_at)
         VALUES (:id, :booking_id, :amount, :currency, :card_last4, :status, :created_at)`, p)
    return err
}
