package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/epalau/patrimonio/internal/domain"
)

// Building is the row shape of the buildings table.
type Building struct {
	ID        string    `json:"id" gorm:"type:text;primaryKey"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Address   string    `json:"address" gorm:"type:text"`
	YearBuilt int       `json:"year_built"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Apartments []Apartment `json:"apartments,omitempty" gorm:"foreignKey:BuildingID"`
}

// Apartment is the row shape of the apartments table.
type Apartment struct {
	ID              string          `json:"id" gorm:"type:text;primaryKey"`
	BuildingID      string          `json:"building_id" gorm:"type:text;not null;index"`
	UnitNumber      string          `json:"unit_number" gorm:"type:text;not null"`
	Floor           int             `json:"floor"`
	Bedrooms        int             `json:"bedrooms"`
	SizeSqm         float64         `json:"size_sqm"`
	MonthlyRent     decimal.Decimal `json:"monthly_rent" gorm:"type:decimal(12,2)"`
	Occupied        bool            `json:"occupied" gorm:"not null;default:false"`
	CurrentTenantID *string         `json:"current_tenant_id" gorm:"type:text"`
}

// Flat is the row shape of the flats table.
type Flat struct {
	ID              string          `json:"id" gorm:"type:text;primaryKey"`
	Name            string          `json:"name" gorm:"type:text;not null"`
	Address         string          `json:"address" gorm:"type:text"`
	Bedrooms        int             `json:"bedrooms"`
	SizeSqm         float64         `json:"size_sqm"`
	MonthlyRent     decimal.Decimal `json:"monthly_rent" gorm:"type:decimal(12,2)"`
	Occupied        bool            `json:"occupied" gorm:"not null;default:false"`
	CurrentTenantID *string         `json:"current_tenant_id" gorm:"type:text"`
	Notes           string          `json:"notes" gorm:"type:text"`
	CreatedAt       time.Time       `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `json:"updated_at" gorm:"autoUpdateTime"`
}

// Land is the row shape of the lands table.
type Land struct {
	ID        string    `json:"id" gorm:"type:text;primaryKey"`
	Name      string    `json:"name" gorm:"type:text;not null"`
	Address   string    `json:"address" gorm:"type:text"`
	AreaSqm   float64   `json:"area_sqm"`
	Zoning    string    `json:"zoning" gorm:"type:text"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// ToDomain converts the row and its preloaded apartments into the view-model.
func (m Building) ToDomain() domain.Building {
	apartments := make([]domain.Apartment, 0, len(m.Apartments))
	for _, a := range m.Apartments {
		apartments = append(apartments, a.ToDomain())
	}
	return domain.Building{
		ID:         m.ID,
		Name:       m.Name,
		Address:    m.Address,
		YearBuilt:  m.YearBuilt,
		Notes:      m.Notes,
		Apartments: apartments,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

// BuildingFromDomain flattens the view-model into rows. Apartment rows are
// carried along for callers that persist them together.
func BuildingFromDomain(d domain.Building) Building {
	apartments := make([]Apartment, 0, len(d.Apartments))
	for _, a := range d.Apartments {
		apartments = append(apartments, ApartmentFromDomain(a))
	}
	return Building{
		ID:         d.ID,
		Name:       d.Name,
		Address:    d.Address,
		YearBuilt:  d.YearBuilt,
		Notes:      d.Notes,
		Apartments: apartments,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func (m Apartment) ToDomain() domain.Apartment {
	return domain.Apartment{
		ID:              m.ID,
		BuildingID:      m.BuildingID,
		UnitNumber:      m.UnitNumber,
		Floor:           m.Floor,
		Bedrooms:        m.Bedrooms,
		SizeSqm:         m.SizeSqm,
		MonthlyRent:     m.MonthlyRent,
		Occupied:        m.Occupied,
		CurrentTenantID: m.CurrentTenantID,
	}
}

func ApartmentFromDomain(d domain.Apartment) Apartment {
	return Apartment{
		ID:              d.ID,
		BuildingID:      d.BuildingID,
		UnitNumber:      d.UnitNumber,
		Floor:           d.Floor,
		Bedrooms:        d.Bedrooms,
		SizeSqm:         d.SizeSqm,
		MonthlyRent:     d.MonthlyRent,
		Occupied:        d.Occupied,
		CurrentTenantID: d.CurrentTenantID,
	}
}

func (m Flat) ToDomain() domain.Flat {
	return domain.Flat{
		ID:              m.ID,
		Name:            m.Name,
		Address:         m.Address,
		Bedrooms:        m.Bedrooms,
		SizeSqm:         m.SizeSqm,
		MonthlyRent:     m.MonthlyRent,
		Occupied:        m.Occupied,
		CurrentTenantID: m.CurrentTenantID,
		Notes:           m.Notes,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func FlatFromDomain(d domain.Flat) Flat {
	return Flat{
		ID:              d.ID,
		Name:            d.Name,
		Address:         d.Address,
		Bedrooms:        d.Bedrooms,
		SizeSqm:         d.SizeSqm,
		MonthlyRent:     d.MonthlyRent,
		Occupied:        d.Occupied,
		CurrentTenantID: d.CurrentTenantID,
		Notes:           d.Notes,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

func (m Land) ToDomain() domain.Land {
	return domain.Land{
		ID:        m.ID,
		Name:      m.Name,
		Address:   m.Address,
		AreaSqm:   m.AreaSqm,
		Zoning:    m.Zoning,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func LandFromDomain(d domain.Land) Land {
	return Land{
		ID:        d.ID,
		Name:      d.Name,
		Address:   d.Address,
		AreaSqm:   d.AreaSqm,
		Zoning:    d.Zoning,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
