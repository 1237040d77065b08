package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Errors
// ---------------------------------------------------------------------------

var (
	// ErrCredentialsMissing indicates the tenant has not configured the
	// credentials required for the attempted operation
	ErrCredentialsMissing = errors.New("order: required credentials not configured")
	// ErrUpstreamUnreachable indicates a network/timeout failure talking to an upstream
	ErrUpstreamUnreachable = errors.New("order: upstream unreachable")
	// ErrUpstreamRejected indicates a non-2xx response from an upstream
	ErrUpstreamRejected = errors.New("order: upstream rejected request")
	// ErrMalformedSourceData indicates the source order could not be parsed
	ErrMalformedSourceData = errors.New("order: malformed source order data")
	// ErrInvalidAmount indicates a non-numeric or negative total price
	ErrInvalidAmount = errors.New("order: invalid order amount")
	// ErrNoOrdersFound indicates dispatch resolved zero orders for the tenant
	ErrNoOrdersFound = errors.New("order: no orders found for dispatch")
	// ErrOrderNotFound indicates the order does not exist or is not owned by the caller
	ErrOrderNotFound = errors.New("order: order not found")
)

// ---------------------------------------------------------------------------
// Status
// ---------------------------------------------------------------------------

// Status represents the internal dispatch status of an order
type Status string

const (
	// StatusPending indicates the order was ingested and awaits handling
	StatusPending Status = "pending"
	// StatusProcessing indicates the tenant marked the order as being prepared
	StatusProcessing Status = "processing"
	// StatusSent indicates the order was submitted to the delivery API
	StatusSent Status = "sent"
	// StatusDelivered indicates the parcel reached the customer
	StatusDelivered Status = "delivered"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusSent, StatusDelivered:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The generic order-edit surface deliberately bypasses this check; it gates
// only the dispatch path and documents the intended lifecycle.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusSent
	case StatusProcessing:
		return target == StatusSent
	case StatusSent:
		return target == StatusDelivered
	case StatusDelivered:
		return false
	}
	return false
}

// ---------------------------------------------------------------------------
// Order
// ---------------------------------------------------------------------------

// LineItem represents a single product line of an order
type LineItem struct {
	Title     string
	Quantity  int
	UnitPrice decimal.Decimal
}

// ShippingAddress holds the delivery address captured from the source order
type ShippingAddress struct {
	Address1 string
	Address2 string
	City     string
	Phone    string
}

// Order is the normalized order record owned by exactly one tenant.
// (TenantID, SourceOrderID) is the dedup key: unique whenever SourceOrderID
// is present, enforced by the storage layer.
type Order struct {
	ID                uuid.UUID
	TenantID          uuid.UUID
	SourceOrderID     string
	OrderNumber       string
	CustomerName      string
	CustomerPhone     string
	CustomerEmail     string
	ShippingAddress   ShippingAddress
	LineItems         []LineItem
	TotalPrice        decimal.Decimal
	FinancialStatus   string
	FulfillmentStatus string
	Status            Status
	TrackingNumber    string
	RegionCode        string
	Notes             string
	SourceCreatedAt   time.Time
	SourceUpdatedAt   time.Time
	SyncedAt          time.Time
	SentAt            *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// MarkSent records a successful dispatch: status, tracking number and sent_at.
// Called only after the delivery API accepted the batch.
func (o *Order) MarkSent(trackingNumber string, at time.Time) {
	o.Status = StatusSent
	o.TrackingNumber = trackingNumber
	o.SentAt = &at
	o.UpdatedAt = at
}

// ProductSummary joins line item titles with ", ". An empty item list
// yields an empty string.
func (o *Order) ProductSummary() string {
	if len(o.LineItems) == 0 {
		return ""
	}
	summary := o.LineItems[0].Title
	for _, item := range o.LineItems[1:] {
		summary += ", " + item.Title
	}
	return summary
}

// ExternalID returns the identifier reported to the delivery API:
// the source order id when present, the internal id otherwise.
func (o *Order) ExternalID() string {
	if o.SourceOrderID != "" {
		return o.SourceOrderID
	}
	return o.ID.String()
}
