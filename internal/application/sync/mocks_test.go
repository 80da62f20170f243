package sync

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/integration"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/notification"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/order"
	"github.com/varelaprogramador/plusdelivery-backend/internal/domain/partner"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindBySourceID(ctx context.Context, sourceID string) (*order.Order, error) {
	args := m.Called(ctx, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ExistingSourceIDs(ctx context.Context, sourceIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, sourceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockOrderRepository) FindAll(ctx context.Context, filter order.Filter) ([]order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindUnsent(ctx context.Context) ([]order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) SaveBatch(ctx context.Context, orders []*order.Order) error {
	args := m.Called(ctx, orders)
	return args.Error(0)
}

func (m *MockOrderRepository) Count(ctx context.Context, filter order.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) Stats(ctx context.Context) (*order.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Stats), args.Error(1)
}

var _ order.Repository = (*MockOrderRepository)(nil)

// MockLinkFinder is a mock implementation of integration.ProductLinkFinder
type MockLinkFinder struct {
	mock.Mock
}

func (m *MockLinkFinder) FindBySourceID(ctx context.Context, sourceID string) (*integration.ProductLink, error) {
	args := m.Called(ctx, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.ProductLink), args.Error(1)
}

func (m *MockLinkFinder) FindBySourceNameContains(ctx context.Context, fragment string) ([]integration.ProductLink, error) {
	args := m.Called(ctx, fragment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.ProductLink), args.Error(1)
}

var _ integration.ProductLinkFinder = (*MockLinkFinder)(nil)

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByNormalizedPhone(ctx context.Context, normalized string) (*partner.Client, error) {
	args := m.Called(ctx, normalized)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAll(ctx context.Context) ([]partner.Client, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ partner.ClientRepository = (*MockClientRepository)(nil)

// MockNotificationRepository is a mock implementation of notification.Repository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindAll(ctx context.Context, onlyUnread bool, limit int) ([]notification.Notification, error) {
	args := m.Called(ctx, onlyUnread, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ notification.Repository = (*MockNotificationRepository)(nil)

// MockSourcePlatform is a mock implementation of integration.SourcePlatform
type MockSourcePlatform struct {
	mock.Mock
}

func (m *MockSourcePlatform) Code() integration.PlatformCode {
	return integration.PlatformPlus
}

func (m *MockSourcePlatform) FetchOrders(ctx context.Context) ([]*order.Order, []integration.ParseWarning, error) {
	args := m.Called(ctx)
	var orders []*order.Order
	if args.Get(0) != nil {
		orders = args.Get(0).([]*order.Order)
	}
	var warnings []integration.ParseWarning
	if args.Get(1) != nil {
		warnings = args.Get(1).([]integration.ParseWarning)
	}
	return orders, warnings, args.Error(2)
}

func (m *MockSourcePlatform) FetchProducts(ctx context.Context) ([]integration.SourceProduct, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.SourceProduct), args.Error(1)
}

var _ integration.SourcePlatform = (*MockSourcePlatform)(nil)

// MockTargetPlatform is a mock implementation of integration.TargetPlatform
type MockTargetPlatform struct {
	mock.Mock
}

func (m *MockTargetPlatform) Code() integration.PlatformCode {
	return integration.PlatformSaboritte
}

func (m *MockTargetPlatform) SendOrder(ctx context.Context, o integration.OutboundOrder) (*integration.SendResult, error) {
	args := m.Called(ctx, o)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*integration.SendResult), args.Error(1)
}

func (m *MockTargetPlatform) FetchProducts(ctx context.Context) ([]integration.TargetProduct, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]integration.TargetProduct), args.Error(1)
}

var _ integration.TargetPlatform = (*MockTargetPlatform)(nil)

// stubGate is an in-test Gate that can be preset as busy
type stubGate struct {
	busy     bool
	started  []SyncTask
	finished int
}

func (g *stubGate) StartSync(task SyncTask) bool {
	if g.busy {
		return false
	}
	g.busy = true
	g.started = append(g.started, task)
	return true
}

func (g *stubGate) FinishSync() *SyncTask {
	g.busy = false
	g.finished++
	return nil
}

var _ Gate = (*stubGate)(nil)
