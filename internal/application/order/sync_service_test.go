package order

import (
	"context"
	"errors"
	"testing"

	"github.com/a7delivery/backend/internal/domain/order"
	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/a7delivery/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func configuredCredentials(tenantID uuid.UUID) *settings.Credentials {
	return &settings.Credentials{
		TenantID: tenantID,
		Source: settings.SourceCredentials{
			StoreURL:    "boutique-amina",
			AccessToken: "shpat_test",
		},
		Delivery: settings.DeliveryCredentials{
			Token: "tok",
			Key:   "key",
		},
	}
}

func sourceOrderFixture(id string) order.SourceOrder {
	return order.SourceOrder{
		ID:          id,
		OrderNumber: "#" + id,
		Customer:    order.SourceCustomer{FirstName: "Amina", LastName: "Benali", Phone: "0550123456"},
		TotalPrice:  "2500.00",
		CreatedAt:   "2024-03-01T10:00:00Z",
		UpdatedAt:   "2024-03-01T10:00:00Z",
	}
}

func TestSyncService_SyncOrders(t *testing.T) {
	ctx := context.Background()

	t.Run("imports unknown orders and skips known ones", func(t *testing.T) {
		tenantID := uuid.New()
		orders := new(mockOrderRepository)
		settingsRepo := new(mockSettingsRepository)
		source := new(mockSourcePlatform)

		settingsRepo.On("FindByTenant", ctx, tenantID).Return(configuredCredentials(tenantID), nil)
		source.On("FetchOrders", ctx, mock.Anything).Return([]order.SourceOrder{
			sourceOrderFixture("5001"),
			sourceOrderFixture("5002"),
		}, nil)
		orders.On("ExistsBySourceOrder", ctx, tenantID, "5001").Return(true, nil)
		orders.On("ExistsBySourceOrder", ctx, tenantID, "5002").Return(false, nil)
		orders.On("Create", ctx, mock.MatchedBy(func(o *order.Order) bool {
			return o.SourceOrderID == "5002" && o.TenantID == tenantID && o.Status == order.StatusPending
		})).Return(nil)

		svc := NewSyncService(orders, settingsRepo, source, zap.NewNop())
		result, err := svc.SyncOrders(ctx, tenantID)

		require.NoError(t, err)
		assert.Equal(t, 2, result.Fetched)
		assert.Equal(t, 1, result.Imported)
		assert.Equal(t, 1, result.Skipped)
		orders.AssertExpectations(t)
	})

	t.Run("missing credentials block the sync", func(t *testing.T) {
		tenantID := uuid.New()
		settingsRepo := new(mockSettingsRepository)
		settingsRepo.On("FindByTenant", ctx, tenantID).
			Return(&settings.Credentials{TenantID: tenantID}, nil)

		svc := NewSyncService(new(mockOrderRepository), settingsRepo, new(mockSourcePlatform), zap.NewNop())
		_, err := svc.SyncOrders(ctx, tenantID)

		assert.ErrorIs(t, err, order.ErrCredentialsMissing)
	})

	t.Run("fetch failure imports nothing", func(t *testing.T) {
		tenantID := uuid.New()
		orders := new(mockOrderRepository)
		settingsRepo := new(mockSettingsRepository)
		source := new(mockSourcePlatform)

		settingsRepo.On("FindByTenant", ctx, tenantID).Return(configuredCredentials(tenantID), nil)
		source.On("FetchOrders", ctx, mock.Anything).Return(nil, order.ErrUpstreamUnreachable)

		svc := NewSyncService(orders, settingsRepo, source, zap.NewNop())
		_, err := svc.SyncOrders(ctx, tenantID)

		assert.ErrorIs(t, err, order.ErrUpstreamUnreachable)
		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("malformed order aborts the run", func(t *testing.T) {
		tenantID := uuid.New()
		orders := new(mockOrderRepository)
		settingsRepo := new(mockSettingsRepository)
		source := new(mockSourcePlatform)

		malformed := sourceOrderFixture("5003")
		malformed.CreatedAt = "not-a-timestamp"

		settingsRepo.On("FindByTenant", ctx, tenantID).Return(configuredCredentials(tenantID), nil)
		source.On("FetchOrders", ctx, mock.Anything).Return([]order.SourceOrder{malformed}, nil)
		orders.On("ExistsBySourceOrder", ctx, tenantID, "5003").Return(false, nil)

		svc := NewSyncService(orders, settingsRepo, source, zap.NewNop())
		_, err := svc.SyncOrders(ctx, tenantID)

		assert.ErrorIs(t, err, order.ErrMalformedSourceData)
		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("lost insert race counts as skipped", func(t *testing.T) {
		tenantID := uuid.New()
		orders := new(mockOrderRepository)
		settingsRepo := new(mockSettingsRepository)
		source := new(mockSourcePlatform)

		settingsRepo.On("FindByTenant", ctx, tenantID).Return(configuredCredentials(tenantID), nil)
		source.On("FetchOrders", ctx, mock.Anything).Return([]order.SourceOrder{sourceOrderFixture("5004")}, nil)
		orders.On("ExistsBySourceOrder", ctx, tenantID, "5004").Return(false, nil)
		orders.On("Create", ctx, mock.Anything).Return(shared.ErrAlreadyExists)

		svc := NewSyncService(orders, settingsRepo, source, zap.NewNop())
		result, err := svc.SyncOrders(ctx, tenantID)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Imported)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("order without source id is imported without dedup check", func(t *testing.T) {
		tenantID := uuid.New()
		orders := new(mockOrderRepository)
		settingsRepo := new(mockSettingsRepository)
		source := new(mockSourcePlatform)

		anonymous := sourceOrderFixture("")

		settingsRepo.On("FindByTenant", ctx, tenantID).Return(configuredCredentials(tenantID), nil)
		source.On("FetchOrders", ctx, mock.Anything).Return([]order.SourceOrder{anonymous}, nil)
		orders.On("Create", ctx, mock.Anything).Return(nil)

		svc := NewSyncService(orders, settingsRepo, source, zap.NewNop())
		result, err := svc.SyncOrders(ctx, tenantID)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		orders.AssertNotCalled(t, "ExistsBySourceOrder", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("settings lookup failure propagates", func(t *testing.T) {
		tenantID := uuid.New()
		settingsRepo := new(mockSettingsRepository)
		settingsRepo.On("FindByTenant", ctx, tenantID).Return(nil, errors.New("db down"))

		svc := NewSyncService(new(mockOrderRepository), settingsRepo, new(mockSourcePlatform), zap.NewNop())
		_, err := svc.SyncOrders(ctx, tenantID)

		assert.Error(t, err)
	})
}
