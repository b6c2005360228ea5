package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/epalau/patrimonio/internal/domain"
	"github.com/epalau/patrimonio/internal/infrastructure/database/models"
)

type RentPaymentRepository struct {
	db *gorm.DB
}

func NewRentPaymentRepository(db *gorm.DB) *RentPaymentRepository {
	return &RentPaymentRepository{db: db}
}

func (r *RentPaymentRepository) GetAll(ctx context.Context) ([]domain.RentPayment, error) {
	var rows []models.RentPayment
	if err := r.db.WithContext(ctx).Order("due_date desc").Find(&rows).Error; err != nil {
		return nil, err
	}

	payments := make([]domain.RentPayment, 0, len(rows))
	for _, row := range rows {
		payments = append(payments, row.ToDomain())
	}
	return payments, nil
}

func (r *RentPaymentRepository) GetByID(ctx context.Context, id string) (domain.RentPayment, error) {
	var row models.RentPayment
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RentPayment{}, domain.NotFoundError{Resource: "rent payment"}
		}
		return domain.RentPayment{}, err
	}
	return row.ToDomain(), nil
}

func (r *RentPaymentRepository) Create(ctx context.Context, payment domain.RentPayment) error {
	row := models.RentPaymentFromDomain(payment)
	return r.db.WithContext(ctx).Create(&row).Error
}

// Update issues an explicit keyed update; Save is avoided because it falls
// back to an insert when the row is missing.
func (r *RentPaymentRepository) Update(ctx context.Context, payment domain.RentPayment) error {
	row := models.RentPaymentFromDomain(payment)
	result := r.db.WithContext(ctx).Model(&models.RentPayment{}).
		Where("id = ?", row.ID).Select("*").Omit("id", "created_at").Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "rent payment"}
	}
	return nil
}

func (r *RentPaymentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.RentPayment{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "rent payment"}
	}
	return nil
}
