package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("order not found")

type Repo struct {
	DB *pgxpool.Pool
}

// CreatePending inserts the order row and all its line items in one
// transaction and returns the assigned id. The row starts as pending; the
// caller flips it to completed only after the charge succeeds.
func (r *Repo) CreatePending(ctx context.Context, o Order, items []LineItem) (int64, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var orderID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO orders (customer_name, customer_email, total_price, status,
		                    address, city, state, zip, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`,
		o.CustomerName, o.CustomerEmail, o.TotalCents, StatusPending,
		o.Address, o.City, o.State, o.Zip, o.Country,
	).Scan(&orderID)
	if err != nil {
		return 0, err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_line_items (order_id, product_slug, quantity, price_at_purchase)
			VALUES ($1, $2, $3, $4)`,
			orderID, it.Slug, it.Quantity, it.PriceCents,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return orderID, nil
}

// MarkCompleted flips a pending order to completed and attaches the
// processor's charge id. It refuses to touch rows in any other state.
func (r *Repo) MarkCompleted(ctx context.Context, orderID int64, chargeID string) error {
	ct, err := r.DB.Exec(ctx, `
		UPDATE orders SET status = $2, charge_id = $3
		WHERE id = $1 AND status = $4`,
		orderID, StatusCompleted, chargeID, StatusPending)
	if err != nil {
		return err
	}
	if ct.RowsAffected() != 1 {
		return fmt.Errorf("order %d not pending", orderID)
	}
	return nil
}

func (r *Repo) MarkFailed(ctx context.Context, orderID int64) error {
	_, err := r.DB.Exec(ctx, `
		UPDATE orders SET status = $2
		WHERE id = $1 AND status = $3`,
		orderID, StatusFailed, StatusPending)
	return err
}

func (r *Repo) GetOrder(ctx context.Context, orderID int64) (Order, error) {
	var o Order
	var chargeID sql.NullString
	err := r.DB.QueryRow(ctx, `
		SELECT id, customer_name, customer_email, total_price, status,
		       address, city, state, zip, country, charge_id, created_at
		FROM orders WHERE id = $1`, orderID,
	).Scan(&o.ID, &o.CustomerName, &o.CustomerEmail, &o.TotalCents, &o.Status,
		&o.Address, &o.City, &o.State, &o.Zip, &o.Country, &chargeID, &o.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	o.ChargeID = chargeID.String
	return o, nil
}

func (r *Repo) GetLineItems(ctx context.Context, orderID int64) ([]LineItem, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT order_id, product_slug, quantity, price_at_purchase
		FROM order_line_items WHERE order_id = $1
		ORDER BY product_slug`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LineItem
	for rows.Next() {
		var it LineItem
		if err := rows.Scan(&it.OrderID, &it.Slug, &it.Quantity, &it.PriceCents); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *Repo) RecordReconciliation(ctx context.Context, rec Reconciliation) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO payment_reconciliation (order_id, charge_id, amount_cents, note)
		VALUES ($1, $2, $3, $4)`,
		rec.OrderID, rec.ChargeID, rec.AmountCents, rec.Note)
	return err
}
