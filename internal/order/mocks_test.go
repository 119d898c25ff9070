package order

import (
	"context"
	"time"

	"wallfleur-be/internal/cart"
	"wallfleur-be/internal/customer"
	"wallfleur-be/internal/notification"
	"wallfleur-be/internal/payment"
	"wallfleur-be/internal/pricing"
	"wallfleur-be/internal/product"

	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateProvisional(ctx context.Context, o *Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockRepository) FindByProviderOrderIDAndCustomer(ctx context.Context, providerOrderID string, customerID int64) (*Order, error) {
	args := m.Called(ctx, providerOrderID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int64, upd StatusUpdate) (bool, error) {
	args := m.Called(ctx, id, upd)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) CountByCustomer(ctx context.Context, customerID int64) (int, error) {
	args := m.Called(ctx, customerID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) ListByCustomer(ctx context.Context, customerID int64) ([]Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context, filter ListFilter) ([]Order, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Order), args.Get(1).(int64), args.Error(2)
}

func (m *MockRepository) Save(ctx context.Context, o *Order) error {
	return m.Called(ctx, o).Error(0)
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

type MockGateway struct {
	mock.Mock
	provider payment.Provider
}

func (m *MockGateway) Provider() payment.Provider {
	return m.provider
}

func (m *MockGateway) CreateRemoteOrder(ctx context.Context, req payment.CreateRequest) (*payment.RemoteOrder, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.RemoteOrder), args.Error(1)
}

func (m *MockGateway) Settle(ctx context.Context, req payment.SettleRequest) (*payment.Settlement, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Settlement), args.Error(1)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) RecordEvent(ctx context.Context, ev *payment.Event) (int64, bool, error) {
	args := m.Called(ctx, ev)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockEventRepository) ListEvents(ctx context.Context, providerOrderID string) ([]payment.Event, error) {
	args := m.Called(ctx, providerOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payment.Event), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) OrderConfirmed(ctx context.Context, mail notification.Mail) error {
	return m.Called(ctx, mail).Error(0)
}

func (m *MockNotifier) OrderStatusChanged(ctx context.Context, mail notification.Mail) error {
	return m.Called(ctx, mail).Error(0)
}
