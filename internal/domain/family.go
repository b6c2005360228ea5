package domain

import "time"

// Contact groups the reachability fields shared by family members and tenants.
type Contact struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Address string `json:"address,omitempty"`
}

// FamilyMember is a member of the family who can own documents and
// insurance policies.
type FamilyMember struct {
	ID        string     `json:"id"`
	FullName  string     `json:"fullName"`
	Contact   Contact    `json:"contact"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Role      string     `json:"role,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Validate checks the required fields for create/update.
func (m FamilyMember) Validate() error {
	if m.FullName == "" {
		return ValidationError{Field: "fullName", Reason: "must not be empty"}
	}
	if m.Contact.Phone == "" {
		return ValidationError{Field: "contact.phone", Reason: "must not be empty"}
	}
	return nil
}
