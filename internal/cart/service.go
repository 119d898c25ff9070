package cart

import (
	"context"
	"time"

	"wallfleur-be/internal/logger"
	"wallfleur-be/internal/money"
	"wallfleur-be/internal/pricing"

	"go.uber.org/zap"
)

// Service defines the business logic for carts.
type Service interface {
	GetBag(ctx context.Context, customerID int64, region pricing.Region) ([]BagItem, error)
	Lines(ctx context.Context, customerID int64) ([]Line, error)
	Sync(ctx context.Context, customerID int64, items []SyncItem) error
	Remove(ctx context.Context, customerID, productID int64) error
	Count(ctx context.Context, customerID int64) (int, error)
	Clear(ctx context.Context, customerID int64) error
	SweepExpired(ctx context.Context, ttl time.Duration, batchSize int) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) Service {
	return &service{repo: repo, now: time.Now}
}

func (s *service) GetBag(ctx context.Context, customerID int64, region pricing.Region) ([]BagItem, error) {
	if customerID <= 0 {
		return nil, ErrInvalidCustomerID
	}

	rows, err := s.repo.ListBag(ctx, customerID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to load bag", zap.Int64("customer_id", customerID), zap.Error(err))
		return nil, err
	}

	items := make([]BagItem, 0, len(rows))
	for _, r := range rows {
		price := r.INRPrice
		if region == pricing.International {
			price = r.USDPrice
		}
		items = append(items, BagItem{
			ProductID: r.ProductID,
			Name:      r.Name,
			Slug:      r.Slug,
			Price:     money.ToMajor(price),
			Currency:  string(region.Currency()),
			Quantity:  r.Quantity,
			Available: r.Stock,
		})
	}
	return items, nil
}

func (s *service) Lines(ctx context.Context, customerID int64) ([]Line, error) {
	if customerID <= 0 {
		return nil, ErrInvalidCustomerID
	}
	return s.repo.ListLines(ctx, customerID)
}

// Sync replaces the bag. Repeated products are merged by summing quantities.
func (s *service) Sync(ctx context.Context, customerID int64, items []SyncItem) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Sync"),
		zap.Int64("customer_id", customerID),
	)

	if customerID <= 0 {
		return ErrInvalidCustomerID
	}

	merged := make([]SyncItem, 0, len(items))
	index := make(map[int64]int, len(items))
	for _, it := range items {
		if it.Quantity <= 0 || it.ProductID <= 0 {
			log.Warn("invalid cart item", zap.Int64("product_id", it.ProductID), zap.Int("quantity", it.Quantity))
			return ErrInvalidQuantity
		}
		if i, ok := index[it.ProductID]; ok {
			merged[i].Quantity += it.Quantity
			continue
		}
		index[it.ProductID] = len(merged)
		merged = append(merged, it)
	}

	if err := s.repo.Sync(ctx, customerID, merged, s.now().UTC()); err != nil {
		log.Error("failed to sync cart", zap.Error(err))
		return err
	}

	log.Info("cart synced", zap.Int("lines", len(merged)))
	return nil
}

func (s *service) Remove(ctx context.Context, customerID, productID int64) error {
	if customerID <= 0 {
		return ErrInvalidCustomerID
	}
	return s.repo.Remove(ctx, customerID, productID)
}

func (s *service) Count(ctx context.Context, customerID int64) (int, error) {
	if customerID <= 0 {
		return 0, ErrInvalidCustomerID
	}
	return s.repo.Count(ctx, customerID)
}

func (s *service) Clear(ctx context.Context, customerID int64) error {
	n, err := s.repo.Clear(ctx, customerID)
	if err != nil {
		logger.FromCtx(ctx).Error("failed to clear cart", zap.Int64("customer_id", customerID), zap.Error(err))
		return err
	}
	logger.FromCtx(ctx).Info("cart cleared", zap.Int64("customer_id", customerID), zap.Int64("lines", n))
	return nil
}

// SweepExpired deletes lines older than ttl in batches until a short batch.
func (s *service) SweepExpired(ctx context.Context, ttl time.Duration, batchSize int) (int64, error) {
	if batchSize <= 0 {
		batchSize = 100
	}
	cutoff := s.now().UTC().Add(-ttl)

	var total int64
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := s.repo.DeleteExpired(ctx, cutoff, batchSize)
		if err != nil {
			return total, err
		}
		total += n
		if n < int64(batchSize) {
			return total, nil
		}
	}
}
