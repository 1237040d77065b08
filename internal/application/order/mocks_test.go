package order

import (
	"context"

	"github.com/a7delivery/backend/internal/domain/order"
	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderRepository) ExistsBySourceOrder(ctx context.Context, tenantID uuid.UUID, sourceOrderID string) (bool, error) {
	args := m.Called(ctx, tenantID, sourceOrderID)
	return args.Bool(0), args.Error(1)
}

func (m *mockOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *mockOrderRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]order.Order, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *mockOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter order.Filter) ([]order.Order, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Order), args.Error(1)
}

func (m *mockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *mockOrderRepository) MarkSentBatch(ctx context.Context, tenantID uuid.UUID, orders []order.Order) error {
	return m.Called(ctx, tenantID, orders).Error(0)
}

func (m *mockOrderRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID) (*order.Stats, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Stats), args.Error(1)
}

func (m *mockOrderRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	return m.Called(ctx, tenantID).Error(0)
}

type mockSettingsRepository struct {
	mock.Mock
}

func (m *mockSettingsRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*settings.Credentials, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*settings.Credentials), args.Error(1)
}

func (m *mockSettingsRepository) Save(ctx context.Context, creds *settings.Credentials) error {
	return m.Called(ctx, creds).Error(0)
}

func (m *mockSettingsRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	return m.Called(ctx, tenantID).Error(0)
}

type mockSourcePlatform struct {
	mock.Mock
}

func (m *mockSourcePlatform) FetchOrders(ctx context.Context, creds settings.SourceCredentials) ([]order.SourceOrder, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.SourceOrder), args.Error(1)
}

func (m *mockSourcePlatform) ProbeShop(ctx context.Context, creds settings.SourceCredentials) (*order.ShopInfo, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.ShopInfo), args.Error(1)
}

type mockDeliveryGateway struct {
	mock.Mock
}

func (m *mockDeliveryGateway) SendShipments(ctx context.Context, creds settings.DeliveryCredentials, shipments []order.Shipment) (*order.DeliveryResult, error) {
	args := m.Called(ctx, creds, shipments)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.DeliveryResult), args.Error(1)
}

func (m *mockDeliveryGateway) Probe(ctx context.Context, creds settings.DeliveryCredentials) error {
	return m.Called(ctx, creds).Error(0)
}
