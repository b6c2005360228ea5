package models

import (
	"time"

	"github.com/epalau/patrimonio/internal/domain"
)

// FamilyMember is the row shape of the family_members table.
type FamilyMember struct {
	ID        string     `json:"id" gorm:"type:text;primaryKey"`
	FullName  string     `json:"full_name" gorm:"type:text;not null"`
	Email     string     `json:"email" gorm:"type:text"`
	Phone     string     `json:"phone" gorm:"type:text"`
	Address   string     `json:"address" gorm:"type:text"`
	BirthDate *time.Time `json:"birth_date"`
	Role      string     `json:"role" gorm:"type:text"`
	Notes     string     `json:"notes" gorm:"type:text"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// ToDomain converts the row into the nested view-model shape.
func (m FamilyMember) ToDomain() domain.FamilyMember {
	return domain.FamilyMember{
		ID:       m.ID,
		FullName: m.FullName,
		Contact: domain.Contact{
			Email:   m.Email,
			Phone:   m.Phone,
			Address: m.Address,
		},
		BirthDate: m.BirthDate,
		Role:      m.Role,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FamilyMemberFromDomain flattens the view-model into the row shape.
func FamilyMemberFromDomain(d domain.FamilyMember) FamilyMember {
	return FamilyMember{
		ID:        d.ID,
		FullName:  d.FullName,
		Email:     d.Contact.Email,
		Phone:     d.Contact.Phone,
		Address:   d.Contact.Address,
		BirthDate: d.BirthDate,
		Role:      d.Role,
		Notes:     d.Notes,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
