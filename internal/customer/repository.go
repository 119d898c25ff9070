package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wallfleur-be/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	GetByID(ctx context.Context, id int64) (*Customer, error)
	FindActiveByEmail(ctx context.Context, email string) (*Customer, error)
	FindActiveByID(ctx context.Context, id int64) (*Customer, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const customerColumns = `id, name, email, phone, dial_code, password_hash, status, is_verified`

func (r *repository) GetByID(ctx context.Context, id int64) (*Customer, error) {
	query := r.db.Rebind(`SELECT ` + customerColumns + ` FROM customers WHERE id = ?`)
	return r.getOne(ctx, "GetByID", query, id)
}

func (r *repository) FindActiveByEmail(ctx context.Context, email string) (*Customer, error) {
	query := r.db.Rebind(`SELECT ` + customerColumns + `
		FROM customers WHERE email = ? AND status = 1 AND is_verified = TRUE`)
	return r.getOne(ctx, "FindActiveByEmail", query, email)
}

func (r *repository) FindActiveByID(ctx context.Context, id int64) (*Customer, error) {
	query := r.db.Rebind(`SELECT ` + customerColumns + `
		FROM customers WHERE id = ? AND status = 1 AND is_verified = TRUE`)
	return r.getOne(ctx, "FindActiveByID", query, id)
}

func (r *repository) getOne(ctx context.Context, method, query string, arg any) (*Customer, error) {
	var c Customer
	err := r.db.GetContext(ctx, &c, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		logger.FromCtx(ctx).Error("db: failed to load customer",
			zap.String("layer", "repository"),
			zap.String("method", method),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: %v", ErrFailedGetCustomer, err)
	}
	return &c, nil
}
