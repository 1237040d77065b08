package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/a7delivery/backend/internal/domain/order"
	"github.com/a7delivery/backend/internal/domain/shared"
	"github.com/a7delivery/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultOrderListLimit = 250

// GormOrderRepository implements order.Repository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// isDuplicateKey detects unique constraint violations. Covers the postgres
// and sqlite wordings since tests run against sqlite.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// Create inserts a new order. The partial unique index on
// (tenant_id, source_order_id) is the dedup guard; a violation surfaces as
// shared.ErrAlreadyExists.
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	model, err := models.OrderModelFromDomain(o)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateKey(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// ExistsBySourceOrder reports whether the tenant already ingested the source order
func (r *GormOrderRepository) ExistsBySourceOrder(ctx context.Context, tenantID uuid.UUID, sourceOrderID string) (bool, error) {
	if sourceOrderID == "" {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("tenant_id = ? AND source_order_id = ?", tenantID, sourceOrderID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindByIDForTenant finds one order owned by the tenant
func (r *GormOrderRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, err
	}
	return model.ToDomain()
}

// FindByIDsForTenant resolves the subset of ids owned by the tenant.
// Unknown or foreign ids are silently omitted.
func (r *GormOrderRepository) FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]order.Order, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.OrderModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDomainOrders(rows)
}

// FindAllForTenant lists the tenant's orders, newest source order first
func (r *GormOrderRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter order.Filter) ([]order.Order, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultOrderListLimit
	}

	query := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("source_created_at DESC").
		Limit(limit)
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}

	var rows []models.OrderModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(rows)
}

// Update persists field edits to an order
func (r *GormOrderRepository) Update(ctx context.Context, o *order.Order) error {
	model, err := models.OrderModelFromDomain(o)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Where("tenant_id = ?", o.TenantID).
		Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// MarkSentBatch advances the given tenant-owned orders to sent in one
// transaction, stamping tracking numbers and sent_at
func (r *GormOrderRepository) MarkSentBatch(ctx context.Context, tenantID uuid.UUID, orders []order.Order) error {
	if len(orders) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range orders {
			o := &orders[i]
			err := tx.Model(&models.OrderModel{}).
				Where("tenant_id = ? AND id = ?", tenantID, o.ID).
				Updates(map[string]interface{}{
					"status":          order.StatusSent.String(),
					"tracking_number": o.TrackingNumber,
					"sent_at":         o.SentAt,
					"updated_at":      o.UpdatedAt,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// CountByStatus returns the tenant's aggregate counts. The total spans all
// of the tenant's orders; delivered orders count toward it but have no
// bucket of their own.
func (r *GormOrderRepository) CountByStatus(ctx context.Context, tenantID uuid.UUID) (*order.Stats, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	err := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Select("status, COUNT(*) AS count").
		Where("tenant_id = ?", tenantID).
		Group("status").
		Find(&counts).Error
	if err != nil {
		return nil, err
	}

	stats := &order.Stats{}
	for _, c := range counts {
		stats.Total += c.Count
		switch order.Status(c.Status) {
		case order.StatusPending:
			stats.Pending = c.Count
		case order.StatusProcessing:
			stats.Processing = c.Count
		case order.StatusSent:
			stats.Sent = c.Count
		}
	}
	return stats, nil
}

// DeleteByTenant removes all orders of a tenant
func (r *GormOrderRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&models.OrderModel{}).Error
}

func toDomainOrders(rows []models.OrderModel) ([]order.Order, error) {
	orders := make([]order.Order, 0, len(rows))
	for i := range rows {
		o, err := rows[i].ToDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, nil
}

var _ order.Repository = (*GormOrderRepository)(nil)
