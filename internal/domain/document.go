package domain

import "time"

// Document is a base64-encoded file blob with metadata. A document can be
// linked to a family member, a property, or an insurance policy.
type Document struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Category       string     `json:"category,omitempty"`
	Content        string     `json:"content"` // base64
	ContentType    string     `json:"contentType,omitempty"`
	SizeBytes      int64      `json:"sizeBytes"`
	Checksum       string     `json:"checksum,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	ExpiryDate     *time.Time `json:"expiryDate,omitempty"`
	FamilyMemberID *string    `json:"familyMemberId,omitempty"`
	PropertyID     *string    `json:"propertyId,omitempty"`
	PolicyID       *string    `json:"policyId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// Validate checks the required fields for create/update.
func (d Document) Validate() error {
	if d.Name == "" {
		return ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if d.Content == "" {
		return ValidationError{Field: "content", Reason: "must not be empty"}
	}
	return nil
}
