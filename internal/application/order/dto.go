package order

import (
	"time"

	"github.com/a7delivery/backend/internal/domain/order"
	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                uuid.UUID          `json:"id"`
	SourceOrderID     string             `json:"source_order_id,omitempty"`
	OrderNumber       string             `json:"order_number,omitempty"`
	CustomerName      string             `json:"customer_name"`
	CustomerPhone     string             `json:"customer_phone"`
	CustomerEmail     string             `json:"customer_email,omitempty"`
	Address           AddressResponse    `json:"address"`
	LineItems         []LineItemResponse `json:"line_items"`
	TotalPrice        string             `json:"total_price"`
	FinancialStatus   string             `json:"financial_status,omitempty"`
	FulfillmentStatus string             `json:"fulfillment_status,omitempty"`
	Status            string             `json:"status"`
	TrackingNumber    string             `json:"tracking_number,omitempty"`
	RegionCode        string             `json:"region_code,omitempty"`
	Notes             string             `json:"notes,omitempty"`
	SourceCreatedAt   time.Time          `json:"source_created_at"`
	SyncedAt          time.Time          `json:"synced_at"`
	SentAt            *time.Time         `json:"sent_at,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// AddressResponse represents a shipping address in API responses
type AddressResponse struct {
	Address1 string `json:"address1,omitempty"`
	Address2 string `json:"address2,omitempty"`
	City     string `json:"city,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// SyncResultResponse summarizes one ingestion run
type SyncResultResponse struct {
	Fetched  int `json:"fetched"`
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// DispatchResultResponse summarizes one dispatch run
type DispatchResultResponse struct {
	Sent            int      `json:"sent"`
	TrackingNumbers []string `json:"tracking_numbers"`
}

// ToOrderResponse converts a domain order to its API representation
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]LineItemResponse, len(o.LineItems))
	for i, li := range o.LineItems {
		items[i] = LineItemResponse{
			Title:     li.Title,
			Quantity:  li.Quantity,
			UnitPrice: li.UnitPrice.StringFixed(2),
		}
	}
	return OrderResponse{
		ID:            o.ID,
		SourceOrderID: o.SourceOrderID,
		OrderNumber:   o.OrderNumber,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		CustomerEmail: o.CustomerEmail,
		Address: AddressResponse{
			Address1: o.ShippingAddress.Address1,
			Address2: o.ShippingAddress.Address2,
			City:     o.ShippingAddress.City,
			Phone:    o.ShippingAddress.Phone,
		},
		LineItems:         items,
		TotalPrice:        o.TotalPrice.StringFixed(2),
		FinancialStatus:   o.FinancialStatus,
		FulfillmentStatus: o.FulfillmentStatus,
		Status:            o.Status.String(),
		TrackingNumber:    o.TrackingNumber,
		RegionCode:        o.RegionCode,
		Notes:             o.Notes,
		SourceCreatedAt:   o.SourceCreatedAt,
		SyncedAt:          o.SyncedAt,
		SentAt:            o.SentAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}
}

// ToOrderResponses converts a slice of domain orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// UpdateOrderRequest carries the editable fields of an order. Nil means
// leave unchanged. Status accepts any valid value without a transition
// check; the edit surface trusts the operator.
type UpdateOrderRequest struct {
	CustomerName  *string `json:"customer_name"`
	CustomerPhone *string `json:"customer_phone"`
	Address1      *string `json:"address1"`
	Address2      *string `json:"address2"`
	City          *string `json:"city"`
	RegionCode    *string `json:"region_code"`
	Notes         *string `json:"notes"`
	Status        *string `json:"status"`
}

// DispatchRequest selects the orders to submit. An empty id list means
// every pending order of the tenant.
type DispatchRequest struct {
	OrderIDs []uuid.UUID `json:"order_ids"`
}
