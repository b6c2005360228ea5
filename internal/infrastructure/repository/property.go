package repository

import (
	"context"
	"errors"
	"time"

	"github.com/patrickmn/go-cache"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/epalau/patrimonio/internal/domain"
	"github.com/epalau/patrimonio/internal/infrastructure/database/models"
)

const propertyListKey = "properties:all"

// PropertyRepository persists the three property variants across their own
// tables and assembles them into the tagged view-model. Full-list reads are
// cached briefly; any mutation flushes the cache.
type PropertyRepository struct {
	db   *gorm.DB
	list *cache.Cache
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{
		db:   db,
		list: cache.New(30*time.Second, time.Minute),
	}
}

func (r *PropertyRepository) GetAll(ctx context.Context) ([]domain.Property, error) {
	if cached, found := r.list.Get(propertyListKey); found {
		return cached.([]domain.Property), nil
	}

	var buildings []models.Building
	if err := r.db.WithContext(ctx).Preload("Apartments").Order("name").Find(&buildings).Error; err != nil {
		return nil, err
	}
	var flats []models.Flat
	if err := r.db.WithContext(ctx).Order("name").Find(&flats).Error; err != nil {
		return nil, err
	}
	var lands []models.Land
	if err := r.db.WithContext(ctx).Order("name").Find(&lands).Error; err != nil {
		return nil, err
	}

	properties := make([]domain.Property, 0, len(buildings)+len(flats)+len(lands))
	for _, row := range buildings {
		building := row.ToDomain()
		properties = append(properties, domain.Property{Type: domain.PropertyTypeBuilding, Building: &building})
	}
	for _, row := range flats {
		flat := row.ToDomain()
		properties = append(properties, domain.Property{Type: domain.PropertyTypeFlat, Flat: &flat})
	}
	for _, row := range lands {
		land := row.ToDomain()
		properties = append(properties, domain.Property{Type: domain.PropertyTypeLand, Land: &land})
	}

	r.list.Set(propertyListKey, properties, cache.DefaultExpiration)
	return properties, nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id string) (domain.Property, error) {
	var buildingRow models.Building
	err := r.db.WithContext(ctx).Preload("Apartments").First(&buildingRow, "id = ?", id).Error
	if err == nil {
		building := buildingRow.ToDomain()
		return domain.Property{Type: domain.PropertyTypeBuilding, Building: &building}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Property{}, err
	}

	var flatRow models.Flat
	err = r.db.WithContext(ctx).First(&flatRow, "id = ?", id).Error
	if err == nil {
		flat := flatRow.ToDomain()
		return domain.Property{Type: domain.PropertyTypeFlat, Flat: &flat}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Property{}, err
	}

	var landRow models.Land
	err = r.db.WithContext(ctx).First(&landRow, "id = ?", id).Error
	if err == nil {
		land := landRow.ToDomain()
		return domain.Property{Type: domain.PropertyTypeLand, Land: &land}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Property{}, err
	}

	return domain.Property{}, domain.NotFoundError{Resource: "property"}
}

func (r *PropertyRepository) Create(ctx context.Context, property domain.Property) error {
	defer r.list.Flush()

	switch property.Type {
	case domain.PropertyTypeBuilding:
		row := models.BuildingFromDomain(*property.Building)
		return r.db.WithContext(ctx).Create(&row).Error
	case domain.PropertyTypeFlat:
		row := models.FlatFromDomain(*property.Flat)
		return r.db.WithContext(ctx).Create(&row).Error
	case domain.PropertyTypeLand:
		row := models.LandFromDomain(*property.Land)
		return r.db.WithContext(ctx).Create(&row).Error
	}
	return domain.ValidationError{Field: "type", Reason: "must be building, flat or land"}
}

func (r *PropertyRepository) Update(ctx context.Context, property domain.Property) error {
	defer r.list.Flush()

	switch property.Type {
	case domain.PropertyTypeBuilding:
		return r.updateBuilding(ctx, *property.Building)
	case domain.PropertyTypeFlat:
		row := models.FlatFromDomain(*property.Flat)
		return keyedUpdate(r.db.WithContext(ctx), &models.Flat{}, row.ID, &row)
	case domain.PropertyTypeLand:
		row := models.LandFromDomain(*property.Land)
		return keyedUpdate(r.db.WithContext(ctx), &models.Land{}, row.ID, &row)
	}
	return domain.ValidationError{Field: "type", Reason: "must be building, flat or land"}
}

// keyedUpdate issues an explicit update against one row; Save is avoided
// because it falls back to an insert when the row is missing.
func keyedUpdate(db *gorm.DB, model any, id string, row any) error {
	result := db.Model(model).Where("id = ?", id).
		Select("*").Omit("id", "created_at").Updates(row)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "property"}
	}
	return nil
}

// updateBuilding replaces the building row and reconciles its apartment rows:
// incoming units are upserted, missing ones are removed.
func (r *PropertyRepository) updateBuilding(ctx context.Context, building domain.Building) error {
	row := models.BuildingFromDomain(building)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apartments := row.Apartments
		row.Apartments = nil
		if err := keyedUpdate(tx, &models.Building{}, row.ID, &row); err != nil {
			return err
		}

		keep := make([]string, 0, len(apartments))
		for i := range apartments {
			apartments[i].BuildingID = row.ID
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{"unit_number", "floor", "bedrooms", "size_sqm", "monthly_rent", "occupied", "current_tenant_id"}),
			}).Create(&apartments[i]).Error; err != nil {
				return err
			}
			keep = append(keep, apartments[i].ID)
		}

		stale := tx.Where("building_id = ?", row.ID)
		if len(keep) > 0 {
			stale = stale.Where("id NOT IN ?", keep)
		}
		return stale.Delete(&models.Apartment{}).Error
	})
}

func (r *PropertyRepository) Delete(ctx context.Context, id string) error {
	defer r.list.Flush()

	property, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch property.Type {
	case domain.PropertyTypeBuilding:
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("building_id = ?", id).Delete(&models.Apartment{}).Error; err != nil {
				return err
			}
			return tx.Delete(&models.Building{}, "id = ?", id).Error
		})
	case domain.PropertyTypeFlat:
		return r.db.WithContext(ctx).Delete(&models.Flat{}, "id = ?", id).Error
	default:
		return r.db.WithContext(ctx).Delete(&models.Land{}, "id = ?", id).Error
	}
}
