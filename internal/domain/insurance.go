package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InsurancePolicy belongs to exactly one family member.
type InsurancePolicy struct {
	ID             string          `json:"id"`
	FamilyMemberID string          `json:"familyMemberId"`
	Provider       string          `json:"provider"`
	PolicyNumber   string          `json:"policyNumber"`
	PolicyType     string          `json:"policyType,omitempty"`
	Premium        decimal.Decimal `json:"premium"`
	Coverage       decimal.Decimal `json:"coverage"`
	StartDate      time.Time       `json:"startDate"`
	RenewalDate    time.Time       `json:"renewalDate"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Validate checks the required fields for create/update.
func (p InsurancePolicy) Validate() error {
	if p.FamilyMemberID == "" {
		return ValidationError{Field: "familyMemberId", Reason: "must not be empty"}
	}
	if p.Provider == "" {
		return ValidationError{Field: "provider", Reason: "must not be empty"}
	}
	if p.PolicyNumber == "" {
		return ValidationError{Field: "policyNumber", Reason: "must not be empty"}
	}
	return nil
}

// RenewsWithin reports whether the policy renews after now but no later
// than now+window.
func (p InsurancePolicy) RenewsWithin(now time.Time, window time.Duration) bool {
	return p.RenewalDate.After(now) && !p.RenewalDate.After(now.Add(window))
}
