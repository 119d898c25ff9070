package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"wallfleur-be/internal/db"
	"wallfleur-be/internal/logger"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type Repository interface {
	CreateProvisional(ctx context.Context, o *Order) error
	FindByProviderOrderIDAndCustomer(ctx context.Context, providerOrderID string, customerID int64) (*Order, error)
	GetByID(ctx context.Context, id int64) (*Order, error)
	// UpdateStatus applies upd only while the order is still settleable and
	// reports whether a row changed.
	UpdateStatus(ctx context.Context, id int64, upd StatusUpdate) (bool, error)
	CountByCustomer(ctx context.Context, customerID int64) (int, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]Order, error)
	List(ctx context.Context, filter ListFilter) ([]Order, int64, error)
	// Save inserts o when o.ID is zero and otherwise overwrites the row and
	// its line items.
	Save(ctx context.Context, o *Order) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(conn *sqlx.DB) Repository {
	return &repository{db: conn}
}

const orderColumns = `id, customer_id, customer_name, email, mobile, dial_code, address, city, state,
	country, postal_code, amount, delivery_fee, currency, provider, receipt, provider_order_id,
	payment_id, signature, status, invoice_id, tracking_id, ordered_date, updated_date`

func (r *repository) CreateProvisional(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateProvisional"),
		zap.String("provider_order_id", o.ProviderOrderID),
	)

	if err := r.insert(ctx, o); err != nil {
		if db.IsUniqueViolation(err) {
			log.Warn("duplicate provider order id")
			return ErrDuplicateProviderOrderID
		}
		log.Error("failed to insert order", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedCreateOrder, err)
	}

	log.Info("provisional order stored", zap.Int64("order_id", o.ID))
	return nil
}

func (r *repository) insert(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	query := tx.Rebind(`
		INSERT INTO orders (
			customer_id, customer_name, email, mobile, dial_code, address, city, state,
			country, postal_code, amount, delivery_fee, currency, provider, receipt, provider_order_id,
			payment_id, signature, status, invoice_id, tracking_id, ordered_date, updated_date
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`)

	err = tx.QueryRowxContext(ctx, query,
		o.CustomerID, o.CustomerName, o.Email, o.Mobile, o.DialCode, o.Address, o.City, o.State,
		o.Country, o.PostalCode, o.Amount, o.DeliveryFee, o.Currency, o.Provider, o.Receipt, o.ProviderOrderID,
		o.PaymentID, o.Signature, o.Status, o.InvoiceID, o.TrackingID, o.OrderedDate, o.UpdatedDate,
	).Scan(&o.ID)
	if err != nil {
		return err
	}

	if err = insertItems(ctx, tx, o.ID, o.LineItems); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func insertItems(ctx context.Context, tx *sqlx.Tx, orderID int64, items []LineItem) error {
	query := tx.Rebind(`INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES (?, ?, ?, ?)`)
	for i := range items {
		items[i].OrderID = orderID
		if _, err := tx.ExecContext(ctx, query, orderID, items[i].ProductID, items[i].Quantity, items[i].UnitPrice); err != nil {
			return err
		}
	}
	return nil
}

func (r *repository) FindByProviderOrderIDAndCustomer(ctx context.Context, providerOrderID string, customerID int64) (*Order, error) {
	query := r.db.Rebind(`SELECT ` + orderColumns + `
		FROM orders WHERE provider_order_id = ? AND customer_id = ?`)
	return r.getOne(ctx, query, providerOrderID, customerID)
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Order, error) {
	query := r.db.Rebind(`SELECT ` + orderColumns + ` FROM orders WHERE id = ?`)
	return r.getOne(ctx, query, id)
}

func (r *repository) getOne(ctx context.Context, query string, args ...any) (*Order, error) {
	var o Order
	if err := r.db.GetContext(ctx, &o, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
	}

	items, err := r.loadItems(ctx, []int64{o.ID})
	if err != nil {
		return nil, err
	}
	o.LineItems = items[o.ID]
	return &o, nil
}

func (r *repository) loadItems(ctx context.Context, orderIDs []int64) (map[int64][]LineItem, error) {
	out := make(map[int64][]LineItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}

	query, args, err := sqlx.In(`
		SELECT order_id, product_id, quantity, unit_price
		FROM order_items WHERE order_id IN (?) ORDER BY id`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
	}

	var items []LineItem
	if err := r.db.SelectContext(ctx, &items, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
	}
	for _, it := range items {
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	return out, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, upd StatusUpdate) (bool, error) {
	query := r.db.Rebind(`
		UPDATE orders
		SET status = ?, payment_id = ?, signature = ?, updated_date = ?
		WHERE id = ? AND (status IN (?, ?, ?) OR (status = ? AND payment_id = ''))`)

	res, err := r.db.ExecContext(ctx, query,
		upd.Status, upd.PaymentID, upd.Signature, upd.UpdatedAt,
		id, StatusCreated, StatusFailed, StatusPending, StatusDelayed,
	)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrFailedUpdateOrder, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrFailedUpdateOrder, err)
	}
	return n == 1, nil
}

func (r *repository) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM orders WHERE customer_id = ?`), customerID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
	}
	return n, nil
}

func (r *repository) ListByCustomer(ctx context.Context, customerID int64) ([]Order, error) {
	query := r.db.Rebind(`SELECT ` + orderColumns + `
		FROM orders WHERE customer_id = ? ORDER BY ordered_date DESC, id DESC`)

	var orders []Order
	if err := r.db.SelectContext(ctx, &orders, query, customerID); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
	}
	return r.attachItems(ctx, orders)
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]Order, int64, error) {
	filter = filter.normalized()

	var (
		conds []string
		args  []any
	)
	if filter.Currency != "" {
		conds = append(conds, "currency = ?")
		args = append(args, filter.Currency)
	}
	if filter.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, filter.Status)
	}
	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	var total int64
	if err := r.db.GetContext(ctx, &total, r.db.Rebind(`SELECT COUNT(*) FROM orders`+where), args...); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
	}

	query := r.db.Rebind(`SELECT ` + orderColumns + ` FROM orders` + where +
		` ORDER BY ordered_date DESC, id DESC LIMIT ? OFFSET ?`)
	pageArgs := append(append([]any{}, args...), filter.Limit, (filter.Page-1)*filter.Limit)

	var orders []Order
	if err := r.db.SelectContext(ctx, &orders, query, pageArgs...); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrFailedGetOrder, err)
	}

	orders, err := r.attachItems(ctx, orders)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *repository) attachItems(ctx context.Context, orders []Order) ([]Order, error) {
	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].LineItems = items[orders[i].ID]
	}
	return orders, nil
}

func (r *repository) Save(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Save"),
		zap.Int64("order_id", o.ID),
	)

	if o.ID == 0 {
		if err := r.insert(ctx, o); err != nil {
			log.Error("failed to insert order", zap.Error(err))
			return fmt.Errorf("%w: %v", ErrFailedCreateOrder, err)
		}
		return nil
	}

	if err := r.update(ctx, o); err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return err
		}
		log.Error("failed to update order", zap.Error(err))
		return fmt.Errorf("%w: %v", ErrFailedUpdateOrder, err)
	}
	return nil
}

func (r *repository) update(ctx context.Context, o *Order) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	query := tx.Rebind(`
		UPDATE orders SET
			customer_name = ?, email = ?, mobile = ?, dial_code = ?, address = ?, city = ?,
			state = ?, country = ?, postal_code = ?, amount = ?, delivery_fee = ?, currency = ?,
			payment_id = ?, signature = ?, status = ?, tracking_id = ?, updated_date = ?
		WHERE id = ?`)

	res, err := tx.ExecContext(ctx, query,
		o.CustomerName, o.Email, o.Mobile, o.DialCode, o.Address, o.City,
		o.State, o.Country, o.PostalCode, o.Amount, o.DeliveryFee, o.Currency,
		o.PaymentID, o.Signature, o.Status, o.TrackingID, o.UpdatedDate,
		o.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrOrderNotFound
	}

	if _, err = tx.ExecContext(ctx, tx.Rebind(`DELETE FROM order_items WHERE order_id = ?`), o.ID); err != nil {
		return err
	}
	if err = insertItems(ctx, tx, o.ID, o.LineItems); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
