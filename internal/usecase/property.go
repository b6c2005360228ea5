package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/epalau/patrimonio"
	"github.com/epalau/patrimonio/internal/domain"
)

// OccupancyFilter narrows property listings to occupied or vacant units.
type OccupancyFilter string

const (
	OccupancyAny      OccupancyFilter = ""
	OccupancyOccupied OccupancyFilter = "occupied"
	OccupancyVacant   OccupancyFilter = "vacant"
)

type PropertyUsecase struct {
	repo      PropertyRepository
	publisher EventPublisher
}

func NewPropertyUsecase(repo PropertyRepository, publisher EventPublisher) *PropertyUsecase {
	return &PropertyUsecase{repo: repo, publisher: publisher}
}

func (uc *PropertyUsecase) GetAll(ctx context.Context, occupancy OccupancyFilter) ([]domain.Property, error) {
	properties, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterByOccupancy(properties, occupancy), nil
}

func (uc *PropertyUsecase) GetByID(ctx context.Context, id string) (domain.Property, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *PropertyUsecase) Create(ctx context.Context, property domain.Property) (domain.Property, error) {
	if err := property.Validate(); err != nil {
		return domain.Property{}, err
	}
	assignPropertyIDs(&property)
	if err := uc.repo.Create(ctx, property); err != nil {
		return domain.Property{}, err
	}
	publish(ctx, uc.publisher, tableForProperty(property.Type), patrimonio.ActionInsert, property.ID())
	return property, nil
}

func (uc *PropertyUsecase) Update(ctx context.Context, property domain.Property) (domain.Property, error) {
	if err := property.Validate(); err != nil {
		return domain.Property{}, err
	}
	assignPropertyIDs(&property)
	if err := uc.repo.Update(ctx, property); err != nil {
		return domain.Property{}, err
	}
	publish(ctx, uc.publisher, tableForProperty(property.Type), patrimonio.ActionUpdate, property.ID())
	return property, nil
}

func (uc *PropertyUsecase) Delete(ctx context.Context, id string) error {
	property, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, uc.publisher, tableForProperty(property.Type), patrimonio.ActionDelete, id)
	return nil
}

func tableForProperty(t domain.PropertyType) string {
	switch t {
	case domain.PropertyTypeBuilding:
		return patrimonio.TableBuildings
	case domain.PropertyTypeFlat:
		return patrimonio.TableFlats
	default:
		return patrimonio.TableLands
	}
}

// assignPropertyIDs fills missing identifiers on the variant and, for
// buildings, on each apartment.
func assignPropertyIDs(p *domain.Property) {
	switch p.Type {
	case domain.PropertyTypeBuilding:
		if p.Building.ID == "" {
			p.Building.ID = uuid.NewString()
		}
		for i := range p.Building.Apartments {
			if p.Building.Apartments[i].ID == "" {
				p.Building.Apartments[i].ID = uuid.NewString()
			}
			p.Building.Apartments[i].BuildingID = p.Building.ID
		}
	case domain.PropertyTypeFlat:
		if p.Flat.ID == "" {
			p.Flat.ID = uuid.NewString()
		}
	case domain.PropertyTypeLand:
		if p.Land.ID == "" {
			p.Land.ID = uuid.NewString()
		}
	}
}

// FilterByOccupancy keeps flats matching the filter and narrows buildings to
// their matching apartments. Land carries no occupancy and is dropped by any
// non-empty filter. Buildings with no matching apartment are dropped too.
func FilterByOccupancy(properties []domain.Property, filter OccupancyFilter) []domain.Property {
	if filter == OccupancyAny {
		return properties
	}
	wantOccupied := filter == OccupancyOccupied

	result := make([]domain.Property, 0, len(properties))
	for _, p := range properties {
		switch p.Type {
		case domain.PropertyTypeFlat:
			if p.Flat != nil && p.Flat.Occupied == wantOccupied {
				result = append(result, p)
			}
		case domain.PropertyTypeBuilding:
			if p.Building == nil {
				continue
			}
			matching := make([]domain.Apartment, 0, len(p.Building.Apartments))
			for _, a := range p.Building.Apartments {
				if a.Occupied == wantOccupied {
					matching = append(matching, a)
				}
			}
			if len(matching) == 0 {
				continue
			}
			narrowed := *p.Building
			narrowed.Apartments = matching
			result = append(result, domain.Property{Type: domain.PropertyTypeBuilding, Building: &narrowed})
		}
	}
	return result
}
