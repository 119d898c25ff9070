package cart

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	ListLines(ctx context.Context, customerID int64) ([]Line, error)
	ListBag(ctx context.Context, customerID int64) ([]BagRow, error)
	Sync(ctx context.Context, customerID int64, items []SyncItem, now time.Time) error
	Remove(ctx context.Context, customerID, productID int64) error
	Count(ctx context.Context, customerID int64) (int, error)
	Clear(ctx context.Context, customerID int64) (int64, error)
	DeleteExpired(ctx context.Context, cutoff time.Time, limit int) (int64, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListLines(ctx context.Context, customerID int64) ([]Line, error) {
	query := r.db.Rebind(`
		SELECT id, customer_id, product_id, quantity, created_at
		FROM carts WHERE customer_id = ? ORDER BY id`)

	var lines []Line
	if err := r.db.SelectContext(ctx, &lines, query, customerID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCartRows, err)
	}
	return lines, nil
}

func (r *repository) ListBag(ctx context.Context, customerID int64) ([]BagRow, error) {
	query := r.db.Rebind(`
		SELECT c.product_id, c.quantity, p.name, p.slug, p.inr_price, p.usd_price, p.quantity AS stock
		FROM carts c
		JOIN products p ON p.id = c.product_id
		WHERE c.customer_id = ?
		ORDER BY c.id`)

	var rows []BagRow
	if err := r.db.SelectContext(ctx, &rows, query, customerID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCartRows, err)
	}
	return rows, nil
}

// Sync replaces the customer's lines with items inside one transaction, so
// readers see either the old bag or the new one.
func (r *repository) Sync(ctx context.Context, customerID int64, items []SyncItem, now time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSyncCart, err)
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM carts WHERE customer_id = ?`), customerID); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSyncCart, err)
	}

	insert := tx.Rebind(`INSERT INTO carts (customer_id, product_id, quantity, created_at) VALUES (?, ?, ?, ?)`)
	for _, it := range items {
		if _, err = tx.ExecContext(ctx, insert, customerID, it.ProductID, it.Quantity, now); err != nil {
			return fmt.Errorf("%w: %v", ErrFailedSyncCart, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedSyncCart, err)
	}
	committed = true
	return nil
}

func (r *repository) Remove(ctx context.Context, customerID, productID int64) error {
	res, err := r.db.ExecContext(ctx,
		r.db.Rebind(`DELETE FROM carts WHERE customer_id = ? AND product_id = ?`),
		customerID, productID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedRemoveCart, err)
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedRemoveCart, err)
	}
	if rowsAffected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

func (r *repository) Count(ctx context.Context, customerID int64) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM carts WHERE customer_id = ?`), customerID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFailedGetCartRows, err)
	}
	return n, nil
}

// Clear deletes every line for the customer. An already empty bag is not an error.
func (r *repository) Clear(ctx context.Context, customerID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM carts WHERE customer_id = ?`), customerID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFailedClearCart, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFailedClearCart, err)
	}
	return n, nil
}

// DeleteExpired removes up to limit lines created before cutoff.
func (r *repository) DeleteExpired(ctx context.Context, cutoff time.Time, limit int) (int64, error) {
	query := r.db.Rebind(`
		DELETE FROM carts WHERE id IN (
			SELECT id FROM carts WHERE created_at < ? ORDER BY id LIMIT ?
		)`)
	res, err := r.db.ExecContext(ctx, query, cutoff, limit)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFailedSweepCart, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFailedSweepCart, err)
	}
	return n, nil
}
