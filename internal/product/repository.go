package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wallfleur-be/internal/logger"
	"wallfleur-be/internal/pricing"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const productColumns = `id, name, slug, inr_price, usd_price, quantity, max_quantity,
	category_id, sub_category_id, show_on_website, show_on_homepage, preorder, coming_soon`

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Product, error)
	Reduce(ctx context.Context, id int64, qty int) error
	Restore(ctx context.Context, id int64, qty int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Product, error) {
	var p Product
	query := r.db.Rebind(`SELECT ` + productColumns + ` FROM products WHERE id = ?`)
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		logger.FromCtx(ctx).Error("failed to get product", zap.Int64("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
	}
	return &p, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []int64) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+productColumns+` FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}

	var products []Product
	if err := r.db.SelectContext(ctx, &products, r.db.Rebind(query), args...); err != nil {
		logger.FromCtx(ctx).Error("failed to get products", zap.Int64s("product_ids", ids), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrFailedGetProduct, err)
	}
	return products, nil
}

// Reduce decrements stock only if enough is available. The check and the write
// are one statement, so concurrent reductions cannot oversell.
func (r *repository) Reduce(ctx context.Context, id int64, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Reduce"),
		zap.Int64("product_id", id),
		zap.Int("quantity", qty),
	)

	query := r.db.Rebind(`UPDATE products SET quantity = quantity - ? WHERE id = ? AND quantity >= ?`)
	res, err := r.db.ExecContext(ctx, query, qty, id, qty)
	if err != nil {
		log.Error("failed to reduce stock", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedUpdateStock, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedUpdateStock, err)
	}
	if affected == 1 {
		return nil
	}

	// Nothing updated: the product is missing or short on stock.
	p, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	log.Warn("insufficient stock", zap.Int("available", p.Quantity))
	return &pricing.InsufficientStockError{ProductID: id, Available: p.Quantity, Requested: qty}
}

// Restore adds stock back. A positive max_quantity caps the result without
// ever lowering the current quantity.
func (r *repository) Restore(ctx context.Context, id int64, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}

	query := r.db.Rebind(`
		UPDATE products SET quantity = CASE
			WHEN max_quantity > 0 AND quantity + ? > max_quantity THEN
				CASE WHEN quantity > max_quantity THEN quantity ELSE max_quantity END
			ELSE quantity + ?
		END
		WHERE id = ?`)
	res, err := r.db.ExecContext(ctx, query, qty, qty, id)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to restore stock",
			zap.Int64("product_id", id), zap.Int("quantity", qty), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedUpdateStock, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFailedUpdateStock, err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	return nil
}
