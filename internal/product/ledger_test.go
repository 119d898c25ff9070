package product

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE products (
	id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	slug TEXT NOT NULL,
	inr_price INTEGER NOT NULL,
	usd_price INTEGER NOT NULL,
	quantity INTEGER NOT NULL CHECK (quantity >= 0),
	max_quantity INTEGER NOT NULL DEFAULT 0,
	category_id INTEGER NOT NULL DEFAULT 0,
	sub_category_id INTEGER NOT NULL DEFAULT 0,
	show_on_website INTEGER NOT NULL DEFAULT 1,
	show_on_homepage INTEGER NOT NULL DEFAULT 0,
	preorder INTEGER NOT NULL DEFAULT 0,
	coming_soon INTEGER NOT NULL DEFAULT 0
);`

func newSQLiteRepo(t *testing.T) (Repository, *sqlx.DB) {
	t.Helper()
	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(sqliteSchema)
	require.NoError(t, err)
	return NewRepository(db), db
}

func seedProduct(t *testing.T, db *sqlx.DB, id int64, qty, maxQty int) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO products (id, name, slug, inr_price, usd_price, quantity, max_quantity)
		VALUES (?, ?, ?, ?, ?, ?, ?)`, id, "Bookmark", "bookmark", 19900, 299, qty, maxQty)
	require.NoError(t, err)
}

func stockOf(t *testing.T, db *sqlx.DB, id int64) int {
	t.Helper()
	var qty int
	require.NoError(t, db.Get(&qty, `SELECT quantity FROM products WHERE id = ?`, id))
	return qty
}

func TestLedger_ConcurrentReduceNeverOversells(t *testing.T) {
	const n = 25
	repo, db := newSQLiteRepo(t)
	seedProduct(t, db, 1, n-1, 0)

	results := make([]error, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			results[i] = repo.Reduce(context.Background(), 1, 1)
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var ok, short int
	for _, err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrInsufficientStock):
			short++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, n-1, ok)
	assert.Equal(t, 1, short)
	assert.Equal(t, 0, stockOf(t, db, 1))
}

func TestLedger_RestoreClampsToMaxQuantity(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	ctx := context.Background()

	seedProduct(t, db, 1, 8, 10)
	require.NoError(t, repo.Restore(ctx, 1, 5))
	assert.Equal(t, 10, stockOf(t, db, 1))

	seedProduct(t, db, 2, 3, 0)
	require.NoError(t, repo.Restore(ctx, 2, 5))
	assert.Equal(t, 8, stockOf(t, db, 2), "no cap without max_quantity")

	seedProduct(t, db, 3, 12, 10)
	require.NoError(t, repo.Restore(ctx, 3, 1))
	assert.Equal(t, 12, stockOf(t, db, 3), "restore never lowers stock")

	assert.ErrorIs(t, repo.Restore(ctx, 99, 1), ErrProductNotFound)
}

func TestLedger_ReduceThenRestoreRoundTrip(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	ctx := context.Background()
	seedProduct(t, db, 1, 4, 0)

	require.NoError(t, repo.Reduce(ctx, 1, 4))
	assert.ErrorIs(t, repo.Reduce(ctx, 1, 1), ErrInsufficientStock)
	require.NoError(t, repo.Restore(ctx, 1, 2))
	assert.Equal(t, 2, stockOf(t, db, 1))

	p, err := repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(19900), p.INRPrice)
	assert.True(t, p.ShowOnWebsite)
}
