package order

import (
	"context"
	"testing"
	"time"

	"github.com/a7delivery/backend/internal/domain/order"
	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pendingOrder(tenantID uuid.UUID, sourceID string) order.Order {
	now := time.Now().UTC()
	return order.Order{
		ID:            uuid.New(),
		TenantID:      tenantID,
		SourceOrderID: sourceID,
		CustomerName:  "Amina Benali",
		CustomerPhone: "0550123456",
		ShippingAddress: order.ShippingAddress{
			Address1: "12 Rue Didouche Mourad",
			City:     "Alger Centre",
		},
		TotalPrice:      decimal.RequireFromString("2500.00"),
		Status:          order.StatusPending,
		SourceCreatedAt: now,
		SourceUpdatedAt: now,
		SyncedAt:        now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestDispatchService_DispatchOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("sends selected orders and marks them sent after acceptance", func(t *testing.T) {
		tenantID := uuid.New()
		o1 := pendingOrder(tenantID, "5001")
		o2 := pendingOrder(tenantID, "5002")
		ids := []uuid.UUID{o1.ID, o2.ID}

		orders := new(mockOrderRepository)
		settingsRepo := new(mockSettingsRepository)
		gateway := new(mockDeliveryGateway)

		settingsRepo.On("FindByTenant", ctx, tenantID).Return(configuredCredentials(tenantID), nil)
		orders.On("FindByIDsForTenant", ctx, tenantID, ids).Return([]order.Order{o1, o2}, nil)
		gateway.On("SendShipments", ctx, mock.Anything, mock.MatchedBy(func(shipments []order.Shipment) bool {
			return len(shipments) == 2 &&
				shipments[0].TotalCents == "250000" &&
				shipments[0].RegionCode == "16" &&
				shipments[0].Source == "A7delivery"
		})).Return(&order.DeliveryResult{Submitted: 2}, nil)
		orders.On("MarkSentBatch", ctx, tenantID, mock.MatchedBy(func(sent []order.Order) bool {
			for _, o := range sent {
				if o.Status != order.StatusSent || o.TrackingNumber == "" || o.SentAt == nil {
					return false
				}
			}
			return len(sent) == 2
		})).Return(nil)

		svc := NewDispatchService(orders, settingsRepo, gateway, zap.NewNop())
		result, err := svc.DispatchOrders(ctx, tenantID, ids)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Sent)
		assert.Len(t, result.TrackingNumbers, 2)
		orders.AssertExpectations(t)
		gateway.AssertExpectations(t)
	})

	t.Run("missing delivery credentials block the dispatch", func(t *testing.T) {
		tenantID := uuid.New()
		settingsRepo := new(mockSettingsRepository)
		creds := configuredCredentials(tenantID)
		creds.Delivery = settings.DeliveryCredentials{}
		settingsRepo.On("FindByTenant", ctx, tenantID).Return(creds, nil)

		svc := NewDispatchService(new(mockOrderRepository), settingsRepo, new(mockDeliveryGateway), zap.NewNop())
		_, err := svc.DispatchOrders(ctx, tenantID, nil)

		assert.ErrorIs(t, err, order.ErrCredentialsMissing)
	})

	t.Run("empty selection fails with no orders found", func(t *testing.T) {
		tenantID := uuid.New()
		orders := new(mockOrderRepository)
		settingsRepo := new(mockSettingsRepository)

		settingsRepo.On("FindByTenant", ctx, tenantID).Return(configuredCredentials(tenantID), nil)
		orders.On("FindByIDsForTenant", ctx, tenantID, mock.Anything).Return([]order.Order{}, nil)

		svc := NewDispatchService(orders, settingsRepo, new(mockDeliveryGateway), zap.NewNop())
		_, err := svc.DispatchOrders(ctx, tenantID, []uuid.UUID{uuid.New()})

		assert.ErrorIs(t, err, order.ErrNoOrdersFound)
	})

	t.Run("no ids dispatches every pending order", func(t *testing.T) {
		tenantID := uuid.New()
		o := pendingOrder(tenantID, "5001")

		orders := new(mockOrderRepository)
		settingsRepo := new(mockSettingsRepository)
		gateway := new(mockDeliveryGateway)

		settingsRepo.On("FindByTenant", ctx, tenantID).Return(configuredCredentials(tenantID), nil)
		orders.On("FindAllForTenant", ctx, tenantID, mock.MatchedBy(func(f order.Filter) bool {
			return f.Status != nil && *f.Status == order.StatusPending
		})).Return([]order.Order{o}, nil)
		gateway.On("SendShipments", ctx, mock.Anything, mock.Anything).
			Return(&order.DeliveryResult{Submitted: 1}, nil)
		orders.On("MarkSentBatch", ctx, tenantID, mock.Anything).Return(nil)

		svc := NewDispatchService(orders, settingsRepo, gateway, zap.NewNop())
		result, err := svc.DispatchOrders(ctx, tenantID, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Sent)
	})

	t.Run("upstream rejection leaves orders untouched", func(t *testing.T) {
		tenantID := uuid.New()
		o := pendingOrder(tenantID, "5001")

		orders := new(mockOrderRepository)
		settingsRepo := new(mockSettingsRepository)
		gateway := new(mockDeliveryGateway)

		settingsRepo.On("FindByTenant", ctx, tenantID).Return(configuredCredentials(tenantID), nil)
		orders.On("FindByIDsForTenant", ctx, tenantID, mock.Anything).Return([]order.Order{o}, nil)
		gateway.On("SendShipments", ctx, mock.Anything, mock.Anything).
			Return(nil, order.ErrUpstreamRejected)

		svc := NewDispatchService(orders, settingsRepo, gateway, zap.NewNop())
		_, err := svc.DispatchOrders(ctx, tenantID, []uuid.UUID{o.ID})

		assert.ErrorIs(t, err, order.ErrUpstreamRejected)
		orders.AssertNotCalled(t, "MarkSentBatch", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("negative total aborts before any upstream call", func(t *testing.T) {
		tenantID := uuid.New()
		o := pendingOrder(tenantID, "5001")
		o.TotalPrice = decimal.RequireFromString("-10.00")

		orders := new(mockOrderRepository)
		settingsRepo := new(mockSettingsRepository)
		gateway := new(mockDeliveryGateway)

		settingsRepo.On("FindByTenant", ctx, tenantID).Return(configuredCredentials(tenantID), nil)
		orders.On("FindByIDsForTenant", ctx, tenantID, mock.Anything).Return([]order.Order{o}, nil)

		svc := NewDispatchService(orders, settingsRepo, gateway, zap.NewNop())
		_, err := svc.DispatchOrders(ctx, tenantID, []uuid.UUID{o.ID})

		assert.ErrorIs(t, err, order.ErrInvalidAmount)
		gateway.AssertNotCalled(t, "SendShipments", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("redispatch reuses an assigned tracking code", func(t *testing.T) {
		tenantID := uuid.New()
		o := pendingOrder(tenantID, "5001")
		o.TrackingNumber = "A7DEL-EXISTING-0101"

		orders := new(mockOrderRepository)
		settingsRepo := new(mockSettingsRepository)
		gateway := new(mockDeliveryGateway)

		settingsRepo.On("FindByTenant", ctx, tenantID).Return(configuredCredentials(tenantID), nil)
		orders.On("FindByIDsForTenant", ctx, tenantID, mock.Anything).Return([]order.Order{o}, nil)
		gateway.On("SendShipments", ctx, mock.Anything, mock.MatchedBy(func(shipments []order.Shipment) bool {
			return len(shipments) == 1 && shipments[0].TrackingCode == "A7DEL-EXISTING-0101"
		})).Return(&order.DeliveryResult{Submitted: 1}, nil)
		orders.On("MarkSentBatch", ctx, tenantID, mock.Anything).Return(nil)

		svc := NewDispatchService(orders, settingsRepo, gateway, zap.NewNop())
		result, err := svc.DispatchOrders(ctx, tenantID, []uuid.UUID{o.ID})

		require.NoError(t, err)
		assert.Equal(t, []string{"A7DEL-EXISTING-0101"}, result.TrackingNumbers)
	})
}
