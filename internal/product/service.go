package product

import (
	"context"
	"errors"

	"wallfleur-be/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// batchConcurrency bounds how many stock updates a batch runs at once.
const batchConcurrency = 4

type Service interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Product, error)
	Reduce(ctx context.Context, id int64, qty int) error
	Restore(ctx context.Context, id int64, qty int) error
	ReduceBatch(ctx context.Context, items []StockAdjustment) ([]AdjustmentResult, error)
	RestoreBatch(ctx context.Context, items []StockAdjustment) ([]AdjustmentResult, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id int64) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByIDs(ctx context.Context, ids []int64) ([]Product, error) {
	return s.repo.GetByIDs(ctx, uniqueIDs(ids))
}

func (s *service) Reduce(ctx context.Context, id int64, qty int) error {
	return s.repo.Reduce(ctx, id, qty)
}

func (s *service) Restore(ctx context.Context, id int64, qty int) error {
	return s.repo.Restore(ctx, id, qty)
}

// ReduceBatch applies each reduction independently; one item failing on stock
// does not stop the others. Only storage failures abort the batch.
func (s *service) ReduceBatch(ctx context.Context, items []StockAdjustment) ([]AdjustmentResult, error) {
	return s.runBatch(ctx, "ReduceBatch", items, s.repo.Reduce, MsgReduced)
}

func (s *service) RestoreBatch(ctx context.Context, items []StockAdjustment) ([]AdjustmentResult, error) {
	return s.runBatch(ctx, "RestoreBatch", items, s.repo.Restore, MsgRestored)
}

func (s *service) runBatch(
	ctx context.Context,
	method string,
	items []StockAdjustment,
	apply func(context.Context, int64, int) error,
	okMsg string,
) ([]AdjustmentResult, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", method),
		zap.Int("items", len(items)),
	)

	results := make([]AdjustmentResult, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i, item := range items {
		i, item := i, item
		g.Go(func() error {
			results[i] = AdjustmentResult{ProductID: item.ProductID}

			err := apply(gctx, item.ProductID, item.Quantity)
			switch {
			case err == nil:
				results[i].Message = okMsg
			case errors.Is(err, ErrProductNotFound):
				results[i].Message = MsgProductNotFound
			case errors.Is(err, ErrInsufficientStock):
				results[i].Message = MsgInsufficientStock
			case errors.Is(err, ErrInvalidQuantity):
				results[i].Message = MsgInvalidQuantity
			default:
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("stock batch failed", zap.Error(err))
		return nil, err
	}

	log.Info("stock batch applied")
	return results, nil
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
