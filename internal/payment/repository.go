package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository keeps an audit trail of settlement attempts.
type Repository interface {
	// RecordEvent stores the event once per (provider, order, payment, outcome).
	// A replayed event reports isDuplicate=true and is not stored again.
	RecordEvent(ctx context.Context, ev *Event) (id int64, isDuplicate bool, err error)
	ListEvents(ctx context.Context, providerOrderID string) ([]Event, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) RecordEvent(ctx context.Context, ev *Event) (int64, bool, error) {
	payload := ev.Payload
	if len(payload) == 0 {
		payload = []byte("{}")
	}

	query := r.db.Rebind(`
		INSERT INTO payment_events (provider, provider_order_id, payment_id, outcome, reason, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (provider, provider_order_id, payment_id, outcome) DO NOTHING
		RETURNING id`)

	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		ev.Provider, ev.ProviderOrderID, ev.PaymentID, ev.Outcome, ev.Reason, string(payload),
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%w: %v", ErrFailedRecordEvent, err)
	}
	return id, false, nil
}

func (r *repository) ListEvents(ctx context.Context, providerOrderID string) ([]Event, error) {
	query := r.db.Rebind(`
		SELECT id, provider, provider_order_id, payment_id, outcome, reason, payload, created_at
		FROM payment_events WHERE provider_order_id = ? ORDER BY created_at ASC`)

	var events []Event
	if err := r.db.SelectContext(ctx, &events, query, providerOrderID); err != nil {
		return nil, err
	}
	return events, nil
}
