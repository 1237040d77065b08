package order

import (
	"context"

	"github.com/google/uuid"
)

// Stats holds aggregate order counts for one tenant. The total covers every
// order; delivered orders have no bucket of their own.
type Stats struct {
	Total      int64 `json:"total"`
	Pending    int64 `json:"pending"`
	Processing int64 `json:"processing"`
	Sent       int64 `json:"sent"`
}

// Filter defines list criteria for a tenant's orders
type Filter struct {
	// Status filters by dispatch status (optional)
	Status *Status
	// Limit caps the number of returned orders; 0 means the repository default
	Limit int
}

// Repository defines the persistence interface for normalized orders.
// Every method is scoped by tenant id; no call can cross tenants.
type Repository interface {
	// Create inserts a new order. The storage layer enforces uniqueness of
	// (tenant_id, source_order_id) and reports a duplicate as
	// shared.ErrAlreadyExists.
	Create(ctx context.Context, o *Order) error

	// ExistsBySourceOrder reports whether the tenant already ingested the
	// source order
	ExistsBySourceOrder(ctx context.Context, tenantID uuid.UUID, sourceOrderID string) (bool, error)

	// FindByIDForTenant finds one order owned by the tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Order, error)

	// FindByIDsForTenant resolves the subset of ids owned by the tenant.
	// Unknown or foreign ids are omitted, not reported.
	FindByIDsForTenant(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]Order, error)

	// FindAllForTenant lists the tenant's orders, newest source order first
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter Filter) ([]Order, error)

	// Update persists field edits to an order
	Update(ctx context.Context, o *Order) error

	// MarkSentBatch advances the given tenant-owned orders to sent in one
	// write, stamping tracking numbers and sent_at
	MarkSentBatch(ctx context.Context, tenantID uuid.UUID, orders []Order) error

	// CountByStatus returns the tenant's aggregate counts
	CountByStatus(ctx context.Context, tenantID uuid.UUID) (*Stats, error)

	// DeleteByTenant removes all orders of a tenant (tenant removal cascade)
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error
}
