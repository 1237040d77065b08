package settings

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SourceCredentials is the credential pair for the source order platform
type SourceCredentials struct {
	StoreURL    string
	AccessToken string
}

// IsConfigured reports whether both parts of the pair are present
func (c SourceCredentials) IsConfigured() bool {
	return c.StoreURL != "" && c.AccessToken != ""
}

// DeliveryCredentials is the credential pair for the delivery dispatch API
type DeliveryCredentials struct {
	Token string
	Key   string
}

// IsConfigured reports whether both parts of the pair are present
func (c DeliveryCredentials) IsConfigured() bool {
	return c.Token != "" && c.Key != ""
}

// Credentials holds one tenant's third-party API credentials. Created lazily
// with empty values on first read, mutated only by the owning tenant, and
// removed only when the tenant is removed.
type Credentials struct {
	TenantID  uuid.UUID
	Source    SourceCredentials
	Delivery  DeliveryCredentials
	UpdatedAt time.Time
}

// Repository defines the persistence interface for tenant credentials
type Repository interface {
	// FindByTenant returns the tenant's credentials, or an empty record if
	// the tenant never saved any
	FindByTenant(ctx context.Context, tenantID uuid.UUID) (*Credentials, error)

	// Save upserts the tenant's credentials
	Save(ctx context.Context, creds *Credentials) error

	// DeleteByTenant removes the tenant's credentials (tenant removal cascade)
	DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error
}
