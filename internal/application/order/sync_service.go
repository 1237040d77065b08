package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/a7delivery/backend/internal/domain/order"
	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/a7delivery/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SyncService ingests orders from the tenant's source platform. Ingestion
// is idempotent: an order already imported for the tenant is skipped, never
// updated in place. Resyncing does not propagate upstream edits.
type SyncService struct {
	orders   order.Repository
	settings settings.Repository
	source   order.SourcePlatform
	logger   *zap.Logger
}

// NewSyncService creates a new SyncService
func NewSyncService(orders order.Repository, settingsRepo settings.Repository, source order.SourcePlatform, logger *zap.Logger) *SyncService {
	return &SyncService{
		orders:   orders,
		settings: settingsRepo,
		source:   source,
		logger:   logger,
	}
}

// SyncOrders pulls the tenant's current source order list and imports every
// order not yet known. A fetch or decode failure imports nothing; a
// malformed order aborts the run before any of its successors are written.
func (s *SyncService) SyncOrders(ctx context.Context, tenantID uuid.UUID) (*SyncResultResponse, error) {
	creds, err := s.settings.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !creds.Source.IsConfigured() {
		return nil, fmt.Errorf("%w: source platform credentials", order.ErrCredentialsMissing)
	}

	sourceOrders, err := s.source.FetchOrders(ctx, creds.Source)
	if err != nil {
		return nil, err
	}

	result := &SyncResultResponse{Fetched: len(sourceOrders)}
	now := time.Now().UTC()

	for _, src := range sourceOrders {
		if src.ID != "" {
			exists, err := s.orders.ExistsBySourceOrder(ctx, tenantID, src.ID)
			if err != nil {
				return nil, err
			}
			if exists {
				result.Skipped++
				continue
			}
		}

		normalized, err := order.NormalizeSourceOrder(src, tenantID, uuid.New(), now)
		if err != nil {
			return nil, err
		}

		if err := s.orders.Create(ctx, normalized); err != nil {
			// A concurrent sync can win the insert race; the unique index
			// settles it and the loser counts the order as skipped.
			if errors.Is(err, shared.ErrAlreadyExists) {
				result.Skipped++
				continue
			}
			return nil, err
		}
		result.Imported++
	}

	s.logger.Info("order sync completed",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("fetched", result.Fetched),
		zap.Int("imported", result.Imported),
		zap.Int("skipped", result.Skipped))

	return result, nil
}
