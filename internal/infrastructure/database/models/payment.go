package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/epalau/patrimonio/internal/domain"
)

// RentPayment is the row shape of the rent_payments table.
type RentPayment struct {
	ID           string          `json:"id" gorm:"type:text;primaryKey"`
	TenantID     string          `json:"tenant_id" gorm:"type:text;not null;index"`
	PropertyID   *string         `json:"property_id" gorm:"type:text"`
	PropertyType *string         `json:"property_type" gorm:"type:text"`
	BuildingID   *string         `json:"building_id" gorm:"type:text"`
	Amount       decimal.Decimal `json:"amount" gorm:"type:decimal(12,2);not null"`
	AmountPaid   decimal.Decimal `json:"amount_paid" gorm:"type:decimal(12,2)"`
	DueDate      time.Time       `json:"due_date"`
	PaidDate     *time.Time      `json:"paid_date"`
	Status       string          `json:"status" gorm:"type:text;not null;default:pending"`
	Notes        string          `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// ToDomain converts the row into the nested view-model shape.
func (m RentPayment) ToDomain() domain.RentPayment {
	p := domain.RentPayment{
		ID:         m.ID,
		TenantID:   m.TenantID,
		Amount:     m.Amount,
		AmountPaid: m.AmountPaid,
		DueDate:    m.DueDate,
		PaidDate:   m.PaidDate,
		Status:     domain.PaymentStatus(m.Status),
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.PropertyID != nil && m.PropertyType != nil {
		p.Property = &domain.PropertyRef{
			PropertyID:   *m.PropertyID,
			PropertyType: domain.PropertyType(*m.PropertyType),
			BuildingID:   m.BuildingID,
		}
	}
	return p
}

// RentPaymentFromDomain flattens the view-model into the row shape.
func RentPaymentFromDomain(d domain.RentPayment) RentPayment {
	m := RentPayment{
		ID:         d.ID,
		TenantID:   d.TenantID,
		Amount:     d.Amount,
		AmountPaid: d.AmountPaid,
		DueDate:    d.DueDate,
		PaidDate:   d.PaidDate,
		Status:     string(d.Status),
		Notes:      d.Notes,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
	if d.Property != nil {
		propertyType := string(d.Property.PropertyType)
		m.PropertyID = &d.Property.PropertyID
		m.PropertyType = &propertyType
		m.BuildingID = d.Property.BuildingID
	}
	return m
}
