package models

import (
	"time"

	"github.com/epalau/patrimonio/internal/domain"
)

// Document is the row shape of the documents table. Content is the base64
// encoding of the file body.
type Document struct {
	ID             string     `json:"id" gorm:"type:text;primaryKey"`
	Name           string     `json:"name" gorm:"type:text;not null"`
	Category       string     `json:"category" gorm:"type:text"`
	Content        string     `json:"content" gorm:"type:text;not null"`
	ContentType    string     `json:"content_type" gorm:"type:text"`
	SizeBytes      int64      `json:"size_bytes"`
	Checksum       string     `json:"checksum" gorm:"type:text"`
	Tags           []string   `json:"tags" gorm:"serializer:json"`
	ExpiryDate     *time.Time `json:"expiry_date"`
	FamilyMemberID *string    `json:"family_member_id" gorm:"type:text;index"`
	PropertyID     *string    `json:"property_id" gorm:"type:text;index"`
	PolicyID       *string    `json:"policy_id" gorm:"type:text;index"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// ToDomain converts the row into the view-model shape.
func (m Document) ToDomain() domain.Document {
	return domain.Document{
		ID:             m.ID,
		Name:           m.Name,
		Category:       m.Category,
		Content:        m.Content,
		ContentType:    m.ContentType,
		SizeBytes:      m.SizeBytes,
		Checksum:       m.Checksum,
		Tags:           m.Tags,
		ExpiryDate:     m.ExpiryDate,
		FamilyMemberID: m.FamilyMemberID,
		PropertyID:     m.PropertyID,
		PolicyID:       m.PolicyID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// DocumentFromDomain flattens the view-model into the row shape.
func DocumentFromDomain(d domain.Document) Document {
	return Document{
		ID:             d.ID,
		Name:           d.Name,
		Category:       d.Category,
		Content:        d.Content,
		ContentType:    d.ContentType,
		SizeBytes:      d.SizeBytes,
		Checksum:       d.Checksum,
		Tags:           d.Tags,
		ExpiryDate:     d.ExpiryDate,
		FamilyMemberID: d.FamilyMemberID,
		PropertyID:     d.PropertyID,
		PolicyID:       d.PolicyID,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
