package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bradfitz/gomemcache/memcache"
	"gorm.io/gorm"

	"github.com/epalau/patrimonio/internal/domain"
	"github.com/epalau/patrimonio/internal/infrastructure/database/models"
)

// DocumentRepository persists document blobs in the row store and keeps a
// memcached look-aside for single-document reads. Listing omits the blob
// body; only GetByID returns content.
type DocumentRepository struct {
	db *gorm.DB
	mc *memcache.Client
}

func NewDocumentRepository(db *gorm.DB, mc *memcache.Client) *DocumentRepository {
	return &DocumentRepository{db: db, mc: mc}
}

func documentCacheKey(id string) string {
	return "document:" + id
}

func (r *DocumentRepository) GetAll(ctx context.Context) ([]domain.Document, error) {
	var rows []models.Document
	if err := r.db.WithContext(ctx).Omit("content").Order("name").Find(&rows).Error; err != nil {
		return nil, err
	}

	documents := make([]domain.Document, 0, len(rows))
	for _, row := range rows {
		documents = append(documents, row.ToDomain())
	}
	return documents, nil
}

func (r *DocumentRepository) GetByID(ctx context.Context, id string) (domain.Document, error) {
	if r.mc != nil {
		if item, err := r.mc.Get(documentCacheKey(id)); err == nil {
			var row models.Document
			if err := json.Unmarshal(item.Value, &row); err == nil {
				return row.ToDomain(), nil
			}
		}
	}

	var row models.Document
	err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Document{}, domain.NotFoundError{Resource: "document"}
		}
		return domain.Document{}, err
	}

	if r.mc != nil {
		if value, err := json.Marshal(row); err == nil {
			// cache write failures only cost the next read a db round trip
			_ = r.mc.Set(&memcache.Item{Key: documentCacheKey(id), Value: value})
		}
	}
	return row.ToDomain(), nil
}

func (r *DocumentRepository) Create(ctx context.Context, document domain.Document) error {
	row := models.DocumentFromDomain(document)
	return r.db.WithContext(ctx).Create(&row).Error
}

// Update issues an explicit keyed update; Save is avoided because it falls
// back to an insert when the row is missing.
func (r *DocumentRepository) Update(ctx context.Context, document domain.Document) error {
	row := models.DocumentFromDomain(document)
	result := r.db.WithContext(ctx).Model(&models.Document{}).
		Where("id = ?", row.ID).Select("*").Omit("id", "created_at").Updates(&row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "document"}
	}
	r.invalidate(document.ID)
	return nil
}

func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.Document{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "document"}
	}
	r.invalidate(id)
	return nil
}

func (r *DocumentRepository) invalidate(id string) {
	if r.mc == nil {
		return
	}
	// best effort; a failed delete leaves the old body cached until the next write
	_ = r.mc.Delete(documentCacheKey(id))
}
