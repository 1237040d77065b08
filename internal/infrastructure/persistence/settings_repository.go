package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/a7delivery/backend/internal/domain/settings"
	"github.com/a7delivery/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingsRepository implements settings.Repository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindByTenant returns the tenant's credentials. A tenant that never saved
// any gets an empty record, not an error.
func (r *GormSettingsRepository) FindByTenant(ctx context.Context, tenantID uuid.UUID) (*settings.Credentials, error) {
	var model models.TenantSettingsModel
	err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &settings.Credentials{TenantID: tenantID}, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save upserts the tenant's credentials
func (r *GormSettingsRepository) Save(ctx context.Context, creds *settings.Credentials) error {
	creds.UpdatedAt = time.Now().UTC()
	model := models.TenantSettingsModelFromDomain(creds)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "tenant_id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// DeleteByTenant removes the tenant's credentials
func (r *GormSettingsRepository) DeleteByTenant(ctx context.Context, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Delete(&models.TenantSettingsModel{}).Error
}

var _ settings.Repository = (*GormSettingsRepository)(nil)
