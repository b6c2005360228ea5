package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/epalau/patrimonio/internal/domain"
)

// InsurancePolicy is the row shape of the insurance_policies table.
type InsurancePolicy struct {
	ID             string          `json:"id" gorm:"type:text;primaryKey"`
	FamilyMemberID string          `json:"family_member_id" gorm:"type:text;not null;index"`
	Provider       string          `json:"provider" gorm:"type:text;not null"`
	PolicyNumber   string          `json:"policy_number" gorm:"type:text;not null"`
	PolicyType     string          `json:"policy_type" gorm:"type:text"`
	Premium        decimal.Decimal `json:"premium" gorm:"type:decimal(12,2)"`
	Coverage       decimal.Decimal `json:"coverage" gorm:"type:decimal(14,2)"`
	StartDate      time.Time       `json:"start_date"`
	RenewalDate    time.Time       `json:"renewal_date"`
	Notes          string          `json:"notes" gorm:"type:text"`
	CreatedAt      time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// ToDomain converts the row into the view-model shape.
func (m InsurancePolicy) ToDomain() domain.InsurancePolicy {
	return domain.InsurancePolicy{
		ID:             m.ID,
		FamilyMemberID: m.FamilyMemberID,
		Provider:       m.Provider,
		PolicyNumber:   m.PolicyNumber,
		PolicyType:     m.PolicyType,
		Premium:        m.Premium,
		Coverage:       m.Coverage,
		StartDate:      m.StartDate,
		RenewalDate:    m.RenewalDate,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// InsurancePolicyFromDomain flattens the view-model into the row shape.
func InsurancePolicyFromDomain(d domain.InsurancePolicy) InsurancePolicy {
	return InsurancePolicy{
		ID:             d.ID,
		FamilyMemberID: d.FamilyMemberID,
		Provider:       d.Provider,
		PolicyNumber:   d.PolicyNumber,
		PolicyType:     d.PolicyType,
		Premium:        d.Premium,
		Coverage:       d.Coverage,
		StartDate:      d.StartDate,
		RenewalDate:    d.RenewalDate,
		Notes:          d.Notes,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
