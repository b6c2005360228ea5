package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/epalau/patrimonio"
	"github.com/epalau/patrimonio/internal/domain"
)

type TenantUsecase struct {
	repo      TenantRepository
	publisher EventPublisher
}

func NewTenantUsecase(repo TenantRepository, publisher EventPublisher) *TenantUsecase {
	return &TenantUsecase{repo: repo, publisher: publisher}
}

// GetAll lists tenants, optionally narrowed to those whose agreement ends
// within the given window.
func (uc *TenantUsecase) GetAll(ctx context.Context, expiringWithin time.Duration) ([]domain.Tenant, error) {
	tenants, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if expiringWithin <= 0 {
		return tenants, nil
	}
	return FilterExpiring(tenants, time.Now().UTC(), expiringWithin), nil
}

func (uc *TenantUsecase) GetByID(ctx context.Context, id string) (domain.Tenant, error) {
	return uc.repo.GetByID(ctx, id)
}

// Create stores the tenant; a unit link marks the unit occupied in the same
// write. Both changes are announced to subscribers.
func (uc *TenantUsecase) Create(ctx context.Context, tenant domain.Tenant) (domain.Tenant, error) {
	if err := tenant.Validate(); err != nil {
		return domain.Tenant{}, err
	}
	if tenant.ID == "" {
		tenant.ID = uuid.NewString()
	}
	if err := uc.repo.CreateWithPlacement(ctx, tenant); err != nil {
		return domain.Tenant{}, err
	}
	publish(ctx, uc.publisher, patrimonio.TableTenants, patrimonio.ActionInsert, tenant.ID)
	uc.publishUnitChange(ctx, tenant.Property)
	return tenant, nil
}

func (uc *TenantUsecase) Update(ctx context.Context, tenant domain.Tenant) (domain.Tenant, error) {
	if err := tenant.Validate(); err != nil {
		return domain.Tenant{}, err
	}
	if err := uc.repo.Update(ctx, tenant); err != nil {
		return domain.Tenant{}, err
	}
	publish(ctx, uc.publisher, patrimonio.TableTenants, patrimonio.ActionUpdate, tenant.ID)
	return tenant, nil
}

// Delete removes the tenant and vacates their unit.
func (uc *TenantUsecase) Delete(ctx context.Context, id string) error {
	tenant, err := uc.repo.DeleteWithVacate(ctx, id)
	if err != nil {
		return err
	}
	publish(ctx, uc.publisher, patrimonio.TableTenants, patrimonio.ActionDelete, id)
	uc.publishUnitChange(ctx, tenant.Property)
	return nil
}

func (uc *TenantUsecase) publishUnitChange(ctx context.Context, ref *domain.PropertyRef) {
	if ref == nil {
		return
	}
	switch ref.PropertyType {
	case domain.PropertyTypeBuilding:
		publish(ctx, uc.publisher, patrimonio.TableApartments, patrimonio.ActionUpdate, ref.PropertyID)
	case domain.PropertyTypeFlat:
		publish(ctx, uc.publisher, patrimonio.TableFlats, patrimonio.ActionUpdate, ref.PropertyID)
	}
}

// FilterExpiring returns the tenants whose agreement ends after now but no
// later than now+window.
func FilterExpiring(tenants []domain.Tenant, now time.Time, window time.Duration) []domain.Tenant {
	result := make([]domain.Tenant, 0, len(tenants))
	for _, t := range tenants {
		if t.AgreementExpiresWithin(now, window) {
			result = append(result, t)
		}
	}
	return result
}
