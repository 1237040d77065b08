package models

import (
	"encoding/json"
	"time"

	"github.com/a7delivery/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order domain entity. Line
// items are stored as a JSON document; they are read and written as a unit
// and never queried individually.
//
// The migrations create a partial unique index on (tenant_id, source_order_id)
// where source_order_id <> ''. That index, not application code, is the
// authoritative dedup guard for ingestion.
type OrderModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key"`
	TenantID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	SourceOrderID     string          `gorm:"type:varchar(64);not null;default:''"`
	OrderNumber       string          `gorm:"type:varchar(64)"`
	CustomerName      string          `gorm:"type:varchar(200)"`
	CustomerPhone     string          `gorm:"type:varchar(50)"`
	CustomerEmail     string          `gorm:"type:varchar(200)"`
	AddressLine1      string          `gorm:"type:varchar(300)"`
	AddressLine2      string          `gorm:"type:varchar(300)"`
	City              string          `gorm:"type:varchar(120)"`
	AddressPhone      string          `gorm:"type:varchar(50)"`
	LineItems         string          `gorm:"type:jsonb;not null;default:'[]'"`
	TotalPrice        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	FinancialStatus   string          `gorm:"type:varchar(32)"`
	FulfillmentStatus string          `gorm:"type:varchar(32)"`
	Status            string          `gorm:"type:varchar(20);not null;default:'pending';index"`
	TrackingNumber    string          `gorm:"type:varchar(64)"`
	RegionCode        string          `gorm:"type:varchar(8)"`
	Notes             string          `gorm:"type:text"`
	SourceCreatedAt   time.Time       `gorm:"not null"`
	SourceUpdatedAt   time.Time       `gorm:"not null"`
	SyncedAt          time.Time       `gorm:"not null"`
	SentAt            *time.Time
	CreatedAt         time.Time `gorm:"not null"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

type lineItemDoc struct {
	Title     string          `json:"title"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// ToDomain converts the persistence model to a domain Order
func (m *OrderModel) ToDomain() (*order.Order, error) {
	var docs []lineItemDoc
	if m.LineItems != "" {
		if err := json.Unmarshal([]byte(m.LineItems), &docs); err != nil {
			return nil, err
		}
	}
	items := make([]order.LineItem, len(docs))
	for i, d := range docs {
		items[i] = order.LineItem{Title: d.Title, Quantity: d.Quantity, UnitPrice: d.UnitPrice}
	}

	return &order.Order{
		ID:            m.ID,
		TenantID:      m.TenantID,
		SourceOrderID: m.SourceOrderID,
		OrderNumber:   m.OrderNumber,
		CustomerName:  m.CustomerName,
		CustomerPhone: m.CustomerPhone,
		CustomerEmail: m.CustomerEmail,
		ShippingAddress: order.ShippingAddress{
			Address1: m.AddressLine1,
			Address2: m.AddressLine2,
			City:     m.City,
			Phone:    m.AddressPhone,
		},
		LineItems:         items,
		TotalPrice:        m.TotalPrice,
		FinancialStatus:   m.FinancialStatus,
		FulfillmentStatus: m.FulfillmentStatus,
		Status:            order.Status(m.Status),
		TrackingNumber:    m.TrackingNumber,
		RegionCode:        m.RegionCode,
		Notes:             m.Notes,
		SourceCreatedAt:   m.SourceCreatedAt,
		SourceUpdatedAt:   m.SourceUpdatedAt,
		SyncedAt:          m.SyncedAt,
		SentAt:            m.SentAt,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}, nil
}

// OrderModelFromDomain builds a persistence model from a domain Order
func OrderModelFromDomain(o *order.Order) (*OrderModel, error) {
	docs := make([]lineItemDoc, len(o.LineItems))
	for i, item := range o.LineItems {
		docs[i] = lineItemDoc{Title: item.Title, Quantity: item.Quantity, UnitPrice: item.UnitPrice}
	}
	raw, err := json.Marshal(docs)
	if err != nil {
		return nil, err
	}

	return &OrderModel{
		ID:                o.ID,
		TenantID:          o.TenantID,
		SourceOrderID:     o.SourceOrderID,
		OrderNumber:       o.OrderNumber,
		CustomerName:      o.CustomerName,
		CustomerPhone:     o.CustomerPhone,
		CustomerEmail:     o.CustomerEmail,
		AddressLine1:      o.ShippingAddress.Address1,
		AddressLine2:      o.ShippingAddress.Address2,
		City:              o.ShippingAddress.City,
		AddressPhone:      o.ShippingAddress.Phone,
		LineItems:         string(raw),
		TotalPrice:        o.TotalPrice,
		FinancialStatus:   o.FinancialStatus,
		FulfillmentStatus: o.FulfillmentStatus,
		Status:            o.Status.String(),
		TrackingNumber:    o.TrackingNumber,
		RegionCode:        o.RegionCode,
		Notes:             o.Notes,
		SourceCreatedAt:   o.SourceCreatedAt,
		SourceUpdatedAt:   o.SourceUpdatedAt,
		SyncedAt:          o.SyncedAt,
		SentAt:            o.SentAt,
		CreatedAt:         o.CreatedAt,
		UpdatedAt:         o.UpdatedAt,
	}, nil
}
