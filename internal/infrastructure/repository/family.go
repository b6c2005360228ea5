package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/epalau/patrimonio/internal/domain"
	"github.com/epalau/patrimonio/internal/infrastructure/database/models"
)

type FamilyMemberRepository struct {
	db *gorm.DB
}

func NewFamilyMemberRepository(db *gorm.DB) *FamilyMemberRepository {
	return &FamilyMemberRepository{db: db}
}

func (r *FamilyMemberRepository) GetAll(ctx context.Context) ([]domain.FamilyMember, error) {
	var rows []models.FamilyMember
	if err := r.db.WithContext(ctx).Order("full_name").Find(&rows).Error; err != nil {
		return nil, err
	}

	members := make([]domain.FamilyMember, 0, len(rows))
	for _, row := range rows {
		members = append(members, row.ToDomain())
	}
	return members, nil
}

func (r *FamilyMemberRepository) GetByID(ctx context.Context, id string) (domain.FamilyMember, error) {
	var row models.FamilyMember
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FamilyMember{}, domain.NotFoundError{Resource: "family member"}
		}
		return domain.FamilyMember{}, err
	}
	return row.ToDomain(), nil
}

func (r *FamilyMemberRepository) Create(ctx context.Context, member domain.FamilyMember) error {
	row := models.FamilyMemberFromDomain(member)
	return r.db.WithContext(ctx).Create(&row).Error
}

// Update issues an explicit keyed update; Save is avoided because it falls
// back to an insert when the row is missing.
func (r *FamilyMemberRepository) Update(ctx context.Context, member domain.FamilyMember) error {
	row := models.FamilyMemberFromDomain(member)
	result := r.db.WithContext(ctx).Model(&models.FamilyMember{}).
		Where("id = ?", row.ID).Select("*").Omit("id", "created_at").Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "family member"}
	}
	return nil
}

func (r *FamilyMemberRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.FamilyMember{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "family member"}
	}
	return nil
}
