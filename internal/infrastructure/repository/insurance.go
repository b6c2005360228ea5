package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/epalau/patrimonio/internal/domain"
	"github.com/epalau/patrimonio/internal/infrastructure/database/models"
)

type InsurancePolicyRepository struct {
	db *gorm.DB
}

func NewInsurancePolicyRepository(db *gorm.DB) *InsurancePolicyRepository {
	return &InsurancePolicyRepository{db: db}
}

func (r *InsurancePolicyRepository) GetAll(ctx context.Context) ([]domain.InsurancePolicy, error) {
	var rows []models.InsurancePolicy
	if err := r.db.WithContext(ctx).Order("renewal_date").Find(&rows).Error; err != nil {
		return nil, err
	}

	policies := make([]domain.InsurancePolicy, 0, len(rows))
	for _, row := range rows {
		policies = append(policies, row.ToDomain())
	}
	return policies, nil
}

func (r *InsurancePolicyRepository) GetByID(ctx context.Context, id string) (domain.InsurancePolicy, error) {
	var row models.InsurancePolicy
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.InsurancePolicy{}, domain.NotFoundError{Resource: "insurance policy"}
		}
		return domain.InsurancePolicy{}, err
	}
	return row.ToDomain(), nil
}

func (r *InsurancePolicyRepository) Create(ctx context.Context, policy domain.InsurancePolicy) error {
	row := models.InsurancePolicyFromDomain(policy)
	return r.db.WithContext(ctx).Create(&row).Error
}

// Update issues an explicit keyed update; Save is avoided because it falls
// back to an insert when the row is missing.
func (r *InsurancePolicyRepository) Update(ctx context.Context, policy domain.InsurancePolicy) error {
	row := models.InsurancePolicyFromDomain(policy)
	result := r.db.WithContext(ctx).Model(&models.InsurancePolicy{}).
		Where("id = ?", row.ID).Select("*").Omit("id", "created_at").Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "insurance policy"}
	}
	return nil
}

func (r *InsurancePolicyRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.InsurancePolicy{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "insurance policy"}
	}
	return nil
}
