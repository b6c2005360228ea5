package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PropertyType discriminates the Property variant.
type PropertyType string

const (
	PropertyTypeBuilding PropertyType = "building"
	PropertyTypeFlat     PropertyType = "flat"
	PropertyTypeLand     PropertyType = "land"
)

// Valid reports whether t is a known property type.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeBuilding, PropertyTypeFlat, PropertyTypeLand:
		return true
	}
	return false
}

// Apartment is a rentable unit inside a Building.
type Apartment struct {
	ID              string          `json:"id"`
	BuildingID      string          `json:"buildingId"`
	UnitNumber      string          `json:"unitNumber"`
	Floor           int             `json:"floor"`
	Bedrooms        int             `json:"bedrooms"`
	SizeSqm         float64         `json:"sizeSqm"`
	MonthlyRent     decimal.Decimal `json:"monthlyRent"`
	Occupied        bool            `json:"occupied"`
	CurrentTenantID *string         `json:"currentTenantId,omitempty"`
}

// Building owns a collection of apartments.
type Building struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Address    string      `json:"address"`
	YearBuilt  int         `json:"yearBuilt,omitempty"`
	Notes      string      `json:"notes,omitempty"`
	Apartments []Apartment `json:"apartments"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Flat is a standalone rentable unit.
type Flat struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Address         string          `json:"address"`
	Bedrooms        int             `json:"bedrooms"`
	SizeSqm         float64         `json:"sizeSqm"`
	MonthlyRent     decimal.Decimal `json:"monthlyRent"`
	Occupied        bool            `json:"occupied"`
	CurrentTenantID *string         `json:"currentTenantId,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// Land is a plot without rentable units.
type Land struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	AreaSqm   float64   `json:"areaSqm"`
	Zoning    string    `json:"zoning,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Property is the tagged variant over Building, Flat, and Land.
// Exactly one of the pointers matching Type is set.
type Property struct {
	Type     PropertyType `json:"type"`
	Building *Building    `json:"building,omitempty"`
	Flat     *Flat        `json:"flat,omitempty"`
	Land     *Land        `json:"land,omitempty"`
}

// ID returns the identifier of the underlying variant.
func (p Property) ID() string {
	switch p.Type {
	case PropertyTypeBuilding:
		if p.Building != nil {
			return p.Building.ID
		}
	case PropertyTypeFlat:
		if p.Flat != nil {
			return p.Flat.ID
		}
	case PropertyTypeLand:
		if p.Land != nil {
			return p.Land.ID
		}
	}
	return ""
}

// Validate checks the variant tag and the required fields of the active variant.
func (p Property) Validate() error {
	switch p.Type {
	case PropertyTypeBuilding:
		if p.Building == nil {
			return ValidationError{Field: "building", Reason: "must be set for type building"}
		}
		if p.Building.Name == "" {
			return ValidationError{Field: "building.name", Reason: "must not be empty"}
		}
	case PropertyTypeFlat:
		if p.Flat == nil {
			return ValidationError{Field: "flat", Reason: "must be set for type flat"}
		}
		if p.Flat.Name == "" {
			return ValidationError{Field: "flat.name", Reason: "must not be empty"}
		}
	case PropertyTypeLand:
		if p.Land == nil {
			return ValidationError{Field: "land", Reason: "must be set for type land"}
		}
		if p.Land.Name == "" {
			return ValidationError{Field: "land.name", Reason: "must not be empty"}
		}
	default:
		return ValidationError{Field: "type", Reason: "must be building, flat or land"}
	}
	return nil
}
