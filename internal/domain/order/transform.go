package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultRegionCode is the fallback delivery region when an order carries
// no explicit region. Region codes are never geocoded from free-text city.
const DefaultRegionCode = "16"

// trackingPrefix is the prefix for synthesized tracking codes
const trackingPrefix = "A7DEL"

// sourceTag identifies this system to the delivery API
const sourceTag = "A7delivery"

// NormalizeSourceOrder converts a source order into a normalized Order owned
// by the given tenant. It is pure and deterministic given its input; the
// caller supplies the internal id and clock so ingestion stays testable.
func NormalizeSourceOrder(src SourceOrder, tenantID uuid.UUID, id uuid.UUID, now time.Time) (*Order, error) {
	createdAt, err := parseSourceTime(src.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: created_at %q: %v", ErrMalformedSourceData, src.CreatedAt, err)
	}
	updatedAt, err := parseSourceTime(src.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: updated_at %q: %v", ErrMalformedSourceData, src.UpdatedAt, err)
	}

	total := decimal.Zero
	if src.TotalPrice != "" {
		total, err = decimal.NewFromString(src.TotalPrice)
		if err != nil {
			return nil, fmt.Errorf("%w: total_price %q", ErrMalformedSourceData, src.TotalPrice)
		}
	}

	// Prefer the order-level customer phone, fall back to the shipping
	// address phone.
	phone := src.Customer.Phone
	if phone == "" {
		phone = src.ShippingAddress.Phone
	}

	items := make([]LineItem, 0, len(src.LineItems))
	for _, li := range src.LineItems {
		price := decimal.Zero
		if li.Price != "" {
			price, err = decimal.NewFromString(li.Price)
			if err != nil {
				return nil, fmt.Errorf("%w: line item price %q", ErrMalformedSourceData, li.Price)
			}
		}
		items = append(items, LineItem{
			Title:     li.Title,
			Quantity:  li.Quantity,
			UnitPrice: price,
		})
	}

	return &Order{
		ID:            id,
		TenantID:      tenantID,
		SourceOrderID: src.ID,
		OrderNumber:   src.OrderNumber,
		CustomerName:  joinNonEmpty(" ", src.Customer.FirstName, src.Customer.LastName),
		CustomerPhone: phone,
		CustomerEmail: src.Customer.Email,
		ShippingAddress: ShippingAddress{
			Address1: src.ShippingAddress.Address1,
			Address2: src.ShippingAddress.Address2,
			City:     src.ShippingAddress.City,
			Phone:    src.ShippingAddress.Phone,
		},
		LineItems:         items,
		TotalPrice:        total,
		FinancialStatus:   src.FinancialStatus,
		FulfillmentStatus: src.FulfillmentStatus,
		Status:            StatusPending,
		Notes:             src.Note,
		SourceCreatedAt:   createdAt,
		SourceUpdatedAt:   updatedAt,
		SyncedAt:          now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

// Shipment is the parcel-creation record derived from an Order for one
// dispatch call. It is built fresh on every dispatch and never persisted.
type Shipment struct {
	TrackingCode    string
	HomeDelivery    bool
	ExchangeParcel  bool
	PreConfirmed    bool
	RecipientName   string
	RecipientPhone  string
	SecondaryPhone  string
	Address         string
	RegionCode      string
	Commune         string
	TotalCents      string
	Note            string
	ProductSummary  string
	ExternalID      string
	Source          string
}

// BuildShipment derives the delivery-API shipment record for an order.
// The total is converted to the delivery API's minor unit, rounded to the
// nearest integer cent. now drives tracking-code synthesis only.
func BuildShipment(o *Order, now time.Time) (Shipment, error) {
	if o.TotalPrice.IsNegative() {
		return Shipment{}, fmt.Errorf("%w: total price %s is negative", ErrInvalidAmount, o.TotalPrice)
	}

	region := o.RegionCode
	if region == "" {
		region = DefaultRegionCode
	}

	return Shipment{
		TrackingCode:   trackingCode(o, now),
		HomeDelivery:   true,
		RecipientName:  o.CustomerName,
		RecipientPhone: o.CustomerPhone,
		Address:        joinNonEmpty(" ", o.ShippingAddress.Address1, o.ShippingAddress.Address2),
		RegionCode:     region,
		Commune:        o.ShippingAddress.City,
		TotalCents:     o.TotalPrice.Mul(decimal.NewFromInt(100)).Round(0).String(),
		Note:           o.Notes,
		ProductSummary: o.ProductSummary(),
		ExternalID:     o.ExternalID(),
		Source:         sourceTag,
	}, nil
}

// trackingCode reuses an assigned tracking number, or synthesizes one from
// the fixed prefix, a truncated order id suffix and the current month/day.
// Uniqueness is best-effort; the delivery API rejects true duplicates.
func trackingCode(o *Order, now time.Time) string {
	if o.TrackingNumber != "" {
		return o.TrackingNumber
	}
	id := strings.ReplaceAll(o.ID.String(), "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return fmt.Sprintf("%s-%s-%s", trackingPrefix, strings.ToUpper(id), now.Format("0102"))
}

// parseSourceTime parses an ISO-8601 timestamp with a literal Z suffix into UTC
func parseSourceTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}

// joinNonEmpty joins the trimmed non-empty parts with sep. All-empty parts
// collapse to an empty string rather than a padded one.
func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
