package order

import (
	"context"
	"fmt"
	"time"

	"github.com/a7delivery/backend/internal/domain/order"
	"github.com/a7delivery/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderService serves the tenant-facing order surface: listing, single
// lookup, field edits and aggregate counts.
type OrderService struct {
	orders order.Repository
}

// NewOrderService creates a new OrderService
func NewOrderService(orders order.Repository) *OrderService {
	return &OrderService{orders: orders}
}

// ListOrders lists the tenant's orders, optionally filtered by status
func (s *OrderService) ListOrders(ctx context.Context, tenantID uuid.UUID, status string, limit int) ([]OrderResponse, error) {
	filter := order.Filter{Limit: limit}
	if status != "" {
		st := order.Status(status)
		if !st.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown order status %q", status))
		}
		filter.Status = &st
	}

	orders, err := s.orders.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// GetOrder returns one tenant-owned order
func (s *OrderService) GetOrder(ctx context.Context, tenantID, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToOrderResponse(o)
	return &resp, nil
}

// UpdateOrder applies a partial edit to a tenant-owned order. A status in
// the request overwrites the stored one after a validity check only; the
// edit surface performs no transition check, so an operator can move an
// order backwards to redo a step.
func (s *OrderService) UpdateOrder(ctx context.Context, tenantID, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orders.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		o.CustomerName = *req.CustomerName
	}
	if req.CustomerPhone != nil {
		o.CustomerPhone = *req.CustomerPhone
	}
	if req.Address1 != nil {
		o.ShippingAddress.Address1 = *req.Address1
	}
	if req.Address2 != nil {
		o.ShippingAddress.Address2 = *req.Address2
	}
	if req.City != nil {
		o.ShippingAddress.City = *req.City
	}
	if req.RegionCode != nil {
		o.RegionCode = *req.RegionCode
	}
	if req.Notes != nil {
		o.Notes = *req.Notes
	}
	if req.Status != nil {
		st := order.Status(*req.Status)
		if !st.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown order status %q", *req.Status))
		}
		o.Status = st
	}
	o.UpdatedAt = time.Now().UTC()

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, err
	}

	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetStats returns the tenant's order counts. The total covers every order
// the tenant owns; only the per-status buckets skip delivered.
func (s *OrderService) GetStats(ctx context.Context, tenantID uuid.UUID) (*order.Stats, error) {
	return s.orders.CountByStatus(ctx, tenantID)
}
