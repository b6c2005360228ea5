package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RentalAgreement holds the terms of a tenancy.
type RentalAgreement struct {
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	MonthlyRent decimal.Decimal `json:"monthlyRent"`
	Deposit     decimal.Decimal `json:"deposit"`
}

// PropertyRef links a tenant or payment to a unit. BuildingID is set only
// when the unit is an apartment inside a building.
type PropertyRef struct {
	PropertyID   string       `json:"propertyId"`
	PropertyType PropertyType `json:"propertyType"`
	BuildingID   *string      `json:"buildingId,omitempty"`
}

// Tenant rents at most one unit at a time.
type Tenant struct {
	ID        string          `json:"id"`
	FullName  string          `json:"fullName"`
	Contact   Contact         `json:"contact"`
	IDNumber  string          `json:"idNumber,omitempty"`
	Agreement RentalAgreement `json:"agreement"`
	Property  *PropertyRef    `json:"property,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Validate checks the required fields for create/update.
func (t Tenant) Validate() error {
	if t.FullName == "" {
		return ValidationError{Field: "fullName", Reason: "must not be empty"}
	}
	if t.Contact.Phone == "" {
		return ValidationError{Field: "contact.phone", Reason: "must not be empty"}
	}
	if t.Property != nil {
		if t.Property.PropertyID == "" {
			return ValidationError{Field: "property.propertyId", Reason: "must not be empty"}
		}
		if !t.Property.PropertyType.Valid() {
			return ValidationError{Field: "property.propertyType", Reason: "must be building, flat or land"}
		}
	}
	return nil
}

// AgreementExpiresWithin reports whether the agreement ends after now but
// no later than now+window.
func (t Tenant) AgreementExpiresWithin(now time.Time, window time.Duration) bool {
	end := t.Agreement.EndDate
	return end.After(now) && !end.After(now.Add(window))
}
