// Package order provides order submission and administration over
// PostgreSQL. Submission is the one place in this service where two tables
// must be written atomically, so it runs on a single pooled connection with
// an explicit transaction.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound = errors.New("order not found")
)

type Repository interface {
	Place(ctx context.Context, o *Order, items []Item) (int64, error)
	ListRows(ctx context.Context) ([]Row, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Confirm(ctx context.Context, id int64) error
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

// Place inserts the order header and all of its line items as one atomic
// unit. The connection is acquired for the whole transaction and released on
// every exit path; the deferred rollback is a no-op once Commit succeeds.
// Line items go in as a single CopyFrom batch, so concurrent readers never
// see an order with only part of its items.
func (r *PGRepo) Place(ctx context.Context, o *Order, items []Item) (int64, error) {
	conn, err := r.db.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	tx, err := conn.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO orders (customer_name, address, phone_number, email, total_amount, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW())
		RETURNING id
	`, o.CustomerName, o.Address, o.PhoneNumber, o.Email, o.TotalAmount, o.Status).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}

	rows, err := copyRows(id, items)
	if err != nil {
		return 0, fmt.Errorf("insert order items: %w", err)
	}
	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"order_items"},
		[]string{"order_id", "product_id", "quantity", "price"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		return 0, fmt.Errorf("insert order items: %w", err)
	}
	if copied != int64(len(items)) {
		return 0, fmt.Errorf("insert order items: copied %d of %d", copied, len(items))
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	o.ID = id
	return id, nil
}

// copyRows converts line items into COPY rows. COPY sends every column in
// binary format, and a plain string has no binary encode plan for NUMERIC,
// so the price goes through pgtype.Numeric.
func copyRows(orderID int64, items []Item) ([][]any, error) {
	rows := make([][]any, 0, len(items))
	for _, it := range items {
		var price pgtype.Numeric
		if err := price.Scan(it.Price); err != nil {
			return nil, fmt.Errorf("price %q: %w", it.Price, err)
		}
		rows = append(rows, []any{orderID, it.ProductID, it.Quantity, price})
	}
	return rows, nil
}

// ListRows returns the flattened orders × line-items × item-name join, one
// row per line item. No ordering clause; callers get whatever the database
// yields.
func (r *PGRepo) ListRows(ctx context.Context) ([]Row, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT o.id, o.customer_name, o.address, o.phone_number, o.email,
		       o.total_amount::text, o.status, o.created_at,
		       oi.product_id, oi.quantity, i.name AS item_name
		FROM orders o
		LEFT JOIN order_items oi ON o.id = oi.order_id
		LEFT JOIN items i ON oi.product_id = i.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.ID, &row.CustomerName, &row.Address, &row.PhoneNumber, &row.Email,
			&row.TotalAmount, &row.Status, &row.CreatedAt,
			&row.ProductID, &row.Quantity, &row.ItemName); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Delete removes the line items and then the header inside one transaction,
// satisfying the foreign key. Returns false when the order does not exist.
func (r *PGRepo) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, id); err != nil {
		return false, err
	}
	cmd, err := tx.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PGRepo) Confirm(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cmd, err := r.db.Exec(ctx, `
		UPDATE orders SET status = $2 WHERE id = $1
	`, id, StatusConfirmed)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
