package models

import (
	"time"

	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/google/uuid"
)

// TenantSettingsModel is the persistence model for a tenant's upstream API
// credentials. One row per tenant.
type TenantSettingsModel struct {
	TenantID          uuid.UUID `gorm:"type:uuid;primary_key"`
	SourceStoreURL    string    `gorm:"type:varchar(300);not null;default:''"`
	SourceAccessToken string    `gorm:"type:varchar(300);not null;default:''"`
	DeliveryToken     string    `gorm:"type:varchar(300);not null;default:''"`
	DeliveryKey       string    `gorm:"type:varchar(300);not null;default:''"`
	UpdatedAt         time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (TenantSettingsModel) TableName() string {
	return "tenant_settings"
}

// ToDomain converts the persistence model to domain Credentials
func (m *TenantSettingsModel) ToDomain() *settings.Credentials {
	return &settings.Credentials{
		TenantID: m.TenantID,
		Source: settings.SourceCredentials{
			StoreURL:    m.SourceStoreURL,
			AccessToken: m.SourceAccessToken,
		},
		Delivery: settings.DeliveryCredentials{
			Token: m.DeliveryToken,
			Key:   m.DeliveryKey,
		},
		UpdatedAt: m.UpdatedAt,
	}
}

// TenantSettingsModelFromDomain builds a persistence model from domain Credentials
func TenantSettingsModelFromDomain(c *settings.Credentials) *TenantSettingsModel {
	return &TenantSettingsModel{
		TenantID:          c.TenantID,
		SourceStoreURL:    c.Source.StoreURL,
		SourceAccessToken: c.Source.AccessToken,
		DeliveryToken:     c.Delivery.Token,
		DeliveryKey:       c.Delivery.Key,
		UpdatedAt:         c.UpdatedAt,
	}
}
