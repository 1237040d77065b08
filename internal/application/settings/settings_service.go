package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/a7delivery/backend/internal/domain/order"
	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SettingsService manages a tenant's upstream API credentials and the
// connectivity probes against both upstreams.
type SettingsService struct {
	settings settings.Repository
	source   order.SourcePlatform
	gateway  order.DeliveryGateway
	logger   *zap.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo settings.Repository, source order.SourcePlatform, gateway order.DeliveryGateway, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settings: settingsRepo,
		source:   source,
		gateway:  gateway,
		logger:   logger,
	}
}

// SettingsResponse represents a tenant's credentials in API responses.
// Secrets travel back to their owner in full; the settings page is a
// single-operator surface, not a shared one.
type SettingsResponse struct {
	SourceStoreURL     string    `json:"source_store_url"`
	SourceAccessToken  string    `json:"source_access_token"`
	DeliveryToken      string    `json:"delivery_token"`
	DeliveryKey        string    `json:"delivery_key"`
	SourceConfigured   bool      `json:"source_configured"`
	DeliveryConfigured bool      `json:"delivery_configured"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// UpdateSettingsRequest carries a full credential replacement. Saving empty
// strings clears a credential pair.
type UpdateSettingsRequest struct {
	SourceStoreURL    string `json:"source_store_url"`
	SourceAccessToken string `json:"source_access_token"`
	DeliveryToken     string `json:"delivery_token"`
	DeliveryKey       string `json:"delivery_key"`
}

// ProbeResponse reports the outcome of a connectivity probe
type ProbeResponse struct {
	Connected  bool   `json:"connected"`
	ShopName   string `json:"shop_name,omitempty"`
	ShopDomain string `json:"shop_domain,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

func toSettingsResponse(c *settings.Credentials) *SettingsResponse {
	return &SettingsResponse{
		SourceStoreURL:     c.Source.StoreURL,
		SourceAccessToken:  c.Source.AccessToken,
		DeliveryToken:      c.Delivery.Token,
		DeliveryKey:        c.Delivery.Key,
		SourceConfigured:   c.Source.IsConfigured(),
		DeliveryConfigured: c.Delivery.IsConfigured(),
		UpdatedAt:          c.UpdatedAt,
	}
}

// GetSettings returns the tenant's credentials, an empty record when none
// were ever saved
func (s *SettingsService) GetSettings(ctx context.Context, tenantID uuid.UUID) (*SettingsResponse, error) {
	creds, err := s.settings.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return toSettingsResponse(creds), nil
}

// UpdateSettings replaces the tenant's credentials
func (s *SettingsService) UpdateSettings(ctx context.Context, tenantID uuid.UUID, req UpdateSettingsRequest) (*SettingsResponse, error) {
	creds := &settings.Credentials{
		TenantID: tenantID,
		Source: settings.SourceCredentials{
			StoreURL:    req.SourceStoreURL,
			AccessToken: req.SourceAccessToken,
		},
		Delivery: settings.DeliveryCredentials{
			Token: req.DeliveryToken,
			Key:   req.DeliveryKey,
		},
	}
	if err := s.settings.Save(ctx, creds); err != nil {
		return nil, err
	}

	s.logger.Info("tenant settings updated", zap.String("tenant_id", tenantID.String()))
	return toSettingsResponse(creds), nil
}

// TestSourceConnection probes the source platform with the tenant's stored
// credentials and returns the shop metadata on success
func (s *SettingsService) TestSourceConnection(ctx context.Context, tenantID uuid.UUID) (*ProbeResponse, error) {
	creds, err := s.settings.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !creds.Source.IsConfigured() {
		return nil, fmt.Errorf("%w: source platform credentials", order.ErrCredentialsMissing)
	}

	info, err := s.source.ProbeShop(ctx, creds.Source)
	if err != nil {
		return nil, err
	}
	return &ProbeResponse{
		Connected:  true,
		ShopName:   info.Name,
		ShopDomain: info.Domain,
	}, nil
}

// TestDeliveryConnection probes the delivery API with the tenant's stored
// credentials
func (s *SettingsService) TestDeliveryConnection(ctx context.Context, tenantID uuid.UUID) (*ProbeResponse, error) {
	creds, err := s.settings.FindByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !creds.Delivery.IsConfigured() {
		return nil, fmt.Errorf("%w: delivery API credentials", order.ErrCredentialsMissing)
	}

	if err := s.gateway.Probe(ctx, creds.Delivery); err != nil {
		return nil, err
	}
	return &ProbeResponse{Connected: true}, nil
}
