package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/epalau/patrimonio/internal/domain"
)

// Tenant is the row shape of the tenants table. The rental agreement and
// the property link are stored flat and reassembled into nested objects by
// the conversion functions.
type Tenant struct {
	ID                 string          `json:"id" gorm:"type:text;primaryKey"`
	FullName           string          `json:"full_name" gorm:"type:text;not null"`
	Email              string          `json:"email" gorm:"type:text"`
	Phone              string          `json:"phone" gorm:"type:text"`
	Address            string          `json:"address" gorm:"type:text"`
	IDNumber           string          `json:"id_number" gorm:"type:text"`
	AgreementStartDate time.Time       `json:"agreement_start_date"`
	AgreementEndDate   time.Time       `json:"agreement_end_date"`
	MonthlyRent        decimal.Decimal `json:"monthly_rent" gorm:"type:decimal(12,2)"`
	Deposit            decimal.Decimal `json:"deposit" gorm:"type:decimal(12,2)"`
	PropertyID         *string         `json:"property_id" gorm:"type:text;index"`
	PropertyType       *string         `json:"property_type" gorm:"type:text"`
	BuildingID         *string         `json:"building_id" gorm:"type:text"`
	Notes              string          `json:"notes" gorm:"type:text"`
	CreatedAt          time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// ToDomain converts the row into the nested view-model shape.
func (m Tenant) ToDomain() domain.Tenant {
	t := domain.Tenant{
		ID:       m.ID,
		FullName: m.FullName,
		Contact: domain.Contact{
			Email:   m.Email,
			Phone:   m.Phone,
			Address: m.Address,
		},
		IDNumber: m.IDNumber,
		Agreement: domain.RentalAgreement{
			StartDate:   m.AgreementStartDate,
			EndDate:     m.AgreementEndDate,
			MonthlyRent: m.MonthlyRent,
			Deposit:     m.Deposit,
		},
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.PropertyID != nil && m.PropertyType != nil {
		t.Property = &domain.PropertyRef{
			PropertyID:   *m.PropertyID,
			PropertyType: domain.PropertyType(*m.PropertyType),
			BuildingID:   m.BuildingID,
		}
	}
	return t
}

// TenantFromDomain flattens the view-model into the row shape.
func TenantFromDomain(d domain.Tenant) Tenant {
	m := Tenant{
		ID:                 d.ID,
		FullName:           d.FullName,
		Email:              d.Contact.Email,
		Phone:              d.Contact.Phone,
		Address:            d.Contact.Address,
		IDNumber:           d.IDNumber,
		AgreementStartDate: d.Agreement.StartDate,
		AgreementEndDate:   d.Agreement.EndDate,
		MonthlyRent:        d.Agreement.MonthlyRent,
		Deposit:            d.Agreement.Deposit,
		Notes:              d.Notes,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
	if d.Property != nil {
		propertyType := string(d.Property.PropertyType)
		m.PropertyID = &d.Property.PropertyID
		m.PropertyType = &propertyType
		m.BuildingID = d.Property.BuildingID
	}
	return m
}
