package transport

import (
	"context"
	"time"

	"wallfleur-be/internal/cart"
	"wallfleur-be/internal/customer"
	"wallfleur-be/internal/order"
	"wallfleur-be/internal/pricing"
	"wallfleur-be/internal/product"

	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, in order.CreateOrderInput) (*order.CreateOrderResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.CreateOrderResult), args.Error(1)
}

func (m *MockOrderService) SettlePayment(ctx context.Context, in order.SettleInput) (*order.SettleResult, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SettleResult), args.Error(1)
}

func (m *MockOrderService) AdminUpdateOrder(ctx context.Context, patch order.AdminPatch) (*order.Order, error) {
	args := m.Called(ctx, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) ListOrders(ctx context.Context, filter order.ListFilter) ([]order.Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]order.Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockOrderService) CustomerOrders(ctx context.Context, customerID int64) ([]order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*product.Product), args.Error(1)
}

func (m *MockProductService) GetByIDs(ctx context.Context, ids []int64) ([]product.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.Product), args.Error(1)
}

func (m *MockProductService) Reduce(ctx context.Context, id int64, qty int) error {
	return m.Called(ctx, id, qty).Error(0)
}

func (m *MockProductService) Restore(ctx context.Context, id int64, qty int) error {
	return m.Called(ctx, id, qty).Error(0)
}

func (m *MockProductService) ReduceBatch(ctx context.Context, items []product.StockAdjustment) ([]product.AdjustmentResult, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.AdjustmentResult), args.Error(1)
}

func (m *MockProductService) RestoreBatch(ctx context.Context, items []product.StockAdjustment) ([]product.AdjustmentResult, error) {
	args := m.Called(ctx, items)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]product.AdjustmentResult), args.Error(1)
}

type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) GetBag(ctx context.Context, customerID int64, region pricing.Region) ([]cart.BagItem, error) {
	args := m.Called(ctx, customerID, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.BagItem), args.Error(1)
}

func (m *MockCartService) Lines(ctx context.Context, customerID int64) ([]cart.Line, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.Line), args.Error(1)
}

func (m *MockCartService) Sync(ctx context.Context, customerID int64, items []cart.SyncItem) error {
	return m.Called(ctx, customerID, items).Error(0)
}

func (m *MockCartService) Remove(ctx context.Context, customerID, productID int64) error {
	return m.Called(ctx, customerID, productID).Error(0)
}

func (m *MockCartService) Count(ctx context.Context, customerID int64) (int, error) {
	args := m.Called(ctx, customerID)
	return args.Int(0), args.Error(1)
}

func (m *MockCartService) Clear(ctx context.Context, customerID int64) error {
	return m.Called(ctx, customerID).Error(0)
}

func (m *MockCartService) SweepExpired(ctx context.Context, ttl time.Duration, batchSize int) (int64, error) {
	args := m.Called(ctx, ttl, batchSize)
	return args.Get(0).(int64), args.Error(1)
}

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) Login(ctx context.Context, email, password string) (string, *customer.Customer, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return "", nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*customer.Customer), args.Error(2)
}

func (m *MockCustomerService) FindVerified(ctx context.Context, id int64) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerService) GetByID(ctx context.Context, id int64) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) PingContext(context.Context) error {
	return p.err
}
