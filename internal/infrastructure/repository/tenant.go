package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/epalau/patrimonio/internal/domain"
	"github.com/epalau/patrimonio/internal/infrastructure/database/models"
)

// TenantRepository persists tenants. Placement-changing writes (create with
// a unit link, delete) also flip the unit's occupancy inside the same
// transaction, so a tenant and their unit never disagree.
type TenantRepository struct {
	db *gorm.DB
}

func NewTenantRepository(db *gorm.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

func (r *TenantRepository) GetAll(ctx context.Context) ([]domain.Tenant, error) {
	var rows []models.Tenant
	if err := r.db.WithContext(ctx).Order("full_name").Find(&rows).Error; err != nil {
		return nil, err
	}

	tenants := make([]domain.Tenant, 0, len(rows))
	for _, row := range rows {
		tenants = append(tenants, row.ToDomain())
	}
	return tenants, nil
}

func (r *TenantRepository) GetByID(ctx context.Context, id string) (domain.Tenant, error) {
	var row models.Tenant
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Tenant{}, domain.NotFoundError{Resource: "tenant"}
		}
		return domain.Tenant{}, err
	}
	return row.ToDomain(), nil
}

// CreateWithPlacement creates the tenant and, when a unit link is present,
// marks that unit occupied in the same transaction.
func (r *TenantRepository) CreateWithPlacement(ctx context.Context, tenant domain.Tenant) error {
	row := models.TenantFromDomain(tenant)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if tenant.Property != nil {
			return setOccupancy(tx, *tenant.Property, true, &row.ID)
		}
		return nil
	})
}

// Update issues an explicit keyed update; Save is avoided because it falls
// back to an insert when the row is missing.
func (r *TenantRepository) Update(ctx context.Context, tenant domain.Tenant) error {
	row := models.TenantFromDomain(tenant)
	result := r.db.WithContext(ctx).Model(&models.Tenant{}).
		Where("id = ?", row.ID).Select("*").Omit("id", "created_at").Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "tenant"}
	}
	return nil
}

// DeleteWithVacate removes the tenant and vacates their unit in the same
// transaction. The removed tenant is returned for event publishing.
func (r *TenantRepository) DeleteWithVacate(ctx context.Context, id string) (domain.Tenant, error) {
	var row models.Tenant
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundError{Resource: "tenant"}
			}
			return err
		}
		if err := tx.Delete(&models.Tenant{}, "id = ?", id).Error; err != nil {
			return err
		}
		tenant := row.ToDomain()
		if tenant.Property != nil {
			return setOccupancy(tx, *tenant.Property, false, nil)
		}
		return nil
	})
	if err != nil {
		return domain.Tenant{}, err
	}
	return row.ToDomain(), nil
}

// setOccupancy flips the occupancy of the unit a PropertyRef points at.
// A building ref addresses one of its apartments; land has no occupancy.
func setOccupancy(tx *gorm.DB, ref domain.PropertyRef, occupied bool, tenantID *string) error {
	values := map[string]any{
		"occupied":          occupied,
		"current_tenant_id": tenantID,
	}
	switch ref.PropertyType {
	case domain.PropertyTypeBuilding:
		return tx.Model(&models.Apartment{}).Where("id = ?", ref.PropertyID).Updates(values).Error
	case domain.PropertyTypeFlat:
		return tx.Model(&models.Flat{}).Where("id = ?", ref.PropertyID).Updates(values).Error
	default:
		return nil
	}
}
