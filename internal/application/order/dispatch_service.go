package order

import (
	"context"
	"fmt"
	"time"

	"github.com/a7delivery/backend/internal/domain/order"
	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DispatchService submits orders to the delivery API. The batch is
// all-or-nothing at request granularity: orders advance to sent only after
// the delivery API accepted the whole submission.
type DispatchService struct {
	orders   order.Repository
	settings settings.Repository
	gateway  order.DeliveryGateway
	logger   *zap.Logger
}

// NewDispatchService creates a new DispatchService
func NewDispatchService(orders order.Repository, settingsRepo settings.Repository, gateway order.DeliveryGateway, logger *zap.Logger) *DispatchService {
	return &DispatchService{
		orders:   orders,
		settings: settingsRepo,
		gateway:  gateway,
		logger:   logger,
	}
}

// DispatchOrders sends the selected orders to the delivery API. An empty id
// list selects every pending order. Ids the tenant does not own are silently
// excluded; a selection resolving to zero orders fails with ErrNoOrdersFound.
func (s *DispatchService) DispatchOrders(ctx context.Context, tenantID uuid.UUID, orderIDs []uuid.UUID) (*DispatchResultResponse, error) {
	creds, err := s.settings.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !creds.Delivery.IsConfigured() {
		return nil, fmt.Errorf("%w: delivery API credentials", order.ErrCredentialsMissing)
	}

	selected, err := s.resolveOrders(ctx, tenantID, orderIDs)
	if err != nil {
		return nil, err
	}
	if len(selected) == 0 {
		return nil, order.ErrNoOrdersFound
	}

	now := time.Now().UTC()
	shipments := make([]order.Shipment, len(selected))
	for i := range selected {
		shipment, err := order.BuildShipment(&selected[i], now)
		if err != nil {
			return nil, err
		}
		shipments[i] = shipment
	}

	if _, err := s.gateway.SendShipments(ctx, creds.Delivery, shipments); err != nil {
		return nil, err
	}

	// The upstream accepted the batch; only now do the orders advance.
	tracking := make([]string, len(selected))
	for i := range selected {
		selected[i].MarkSent(shipments[i].TrackingCode, now)
		tracking[i] = shipments[i].TrackingCode
	}
	if err := s.orders.MarkSentBatch(ctx, tenantID, selected); err != nil {
		// The parcels exist upstream but the local status write failed.
		// Surface the error; a later dispatch of the same orders reuses
		// their tracking codes instead of minting new ones.
		return nil, err
	}

	s.logger.Info("order dispatch completed",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("sent", len(selected)))

	return &DispatchResultResponse{
		Sent:            len(selected),
		TrackingNumbers: tracking,
	}, nil
}

// resolveOrders loads the dispatch selection. Explicit ids resolve to the
// tenant-owned subset; no ids means every pending order.
func (s *DispatchService) resolveOrders(ctx context.Context, tenantID uuid.UUID, orderIDs []uuid.UUID) ([]order.Order, error) {
	if len(orderIDs) > 0 {
		return s.orders.FindByIDsForTenant(ctx, tenantID, orderIDs)
	}
	pending := order.StatusPending
	return s.orders.FindAllForTenant(ctx, tenantID, order.Filter{Status: &pending})
}
