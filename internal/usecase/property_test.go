package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/epalau/patrimonio/internal/domain"
)

type mockPropertyRepo struct {
	properties []domain.Property
	created    *domain.Property
	deleted    string
}

func (m *mockPropertyRepo) GetAll(ctx context.Context) ([]domain.Property, error) {
	return m.properties, nil
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, id string) (domain.Property, error) {
	for _, p := range m.properties {
		if p.ID() == id {
			return p, nil
		}
	}
	return domain.Property{}, domain.NotFoundError{Resource: "property"}
}

func (m *mockPropertyRepo) Create(ctx context.Context, property domain.Property) error {
	m.created = &property
	return nil
}

func (m *mockPropertyRepo) Update(ctx context.Context, property domain.Property) error { return nil }

func (m *mockPropertyRepo) Delete(ctx context.Context, id string) error {
	m.deleted = id
	return nil
}

func sampleProperties() []domain.Property {
	return []domain.Property{
		{Type: domain.PropertyTypeBuilding, Building: &domain.Building{
			ID:   "b-1",
			Name: "Carrer Major 12",
			Apartments: []domain.Apartment{
				{ID: "apt-1", BuildingID: "b-1", UnitNumber: "1A", Occupied: true},
				{ID: "apt-2", BuildingID: "b-1", UnitNumber: "1B", Occupied: false},
			},
		}},
		{Type: domain.PropertyTypeFlat, Flat: &domain.Flat{ID: "f-1", Name: "Passeig 3", Occupied: true}},
		{Type: domain.PropertyTypeFlat, Flat: &domain.Flat{ID: "f-2", Name: "Ronda 8", Occupied: false}},
		{Type: domain.PropertyTypeLand, Land: &domain.Land{ID: "l-1", Name: "Finca nord"}},
	}
}

func TestFilterByOccupancyAny(t *testing.T) {
	got := FilterByOccupancy(sampleProperties(), OccupancyAny)
	if len(got) != 4 {
		t.Fatalf("expected all 4 properties got %d", len(got))
	}
}

func TestFilterByOccupancyOccupied(t *testing.T) {
	got := FilterByOccupancy(sampleProperties(), OccupancyOccupied)

	// land is dropped, vacant flat is dropped, building narrowed to apt-1
	if len(got) != 2 {
		t.Fatalf("expected 2 properties got %d", len(got))
	}
	building := got[0]
	if building.Type != domain.PropertyTypeBuilding || len(building.Building.Apartments) != 1 {
		t.Fatalf("expected building narrowed to 1 apartment, got %+v", building)
	}
	if building.Building.Apartments[0].ID != "apt-1" {
		t.Fatalf("expected apt-1 got %s", building.Building.Apartments[0].ID)
	}
	if got[1].Type != domain.PropertyTypeFlat || got[1].Flat.ID != "f-1" {
		t.Fatalf("expected occupied flat f-1, got %+v", got[1])
	}
}

func TestFilterByOccupancyVacant(t *testing.T) {
	got := FilterByOccupancy(sampleProperties(), OccupancyVacant)

	if len(got) != 2 {
		t.Fatalf("expected 2 properties got %d", len(got))
	}
	if got[0].Building.Apartments[0].ID != "apt-2" {
		t.Fatalf("expected apt-2 got %s", got[0].Building.Apartments[0].ID)
	}
	if got[1].Flat.ID != "f-2" {
		t.Fatalf("expected f-2 got %s", got[1].Flat.ID)
	}
}

func TestFilterByOccupancyDoesNotMutateInput(t *testing.T) {
	properties := sampleProperties()
	FilterByOccupancy(properties, OccupancyOccupied)

	if len(properties[0].Building.Apartments) != 2 {
		t.Fatalf("input building was mutated")
	}
}

func TestPropertyCreateAssignsIDs(t *testing.T) {
	repo := &mockPropertyRepo{}
	uc := NewPropertyUsecase(repo, &mockPublisher{})

	created, err := uc.Create(context.Background(), domain.Property{
		Type: domain.PropertyTypeBuilding,
		Building: &domain.Building{
			Name:       "Carrer Nou 5",
			Address:    "Carrer Nou 5",
			Apartments: []domain.Apartment{{UnitNumber: "2A"}},
		},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Building.ID == "" {
		t.Fatalf("expected building id to be assigned")
	}
	apt := created.Building.Apartments[0]
	if apt.ID == "" || apt.BuildingID != created.Building.ID {
		t.Fatalf("expected apartment linked to building, got %+v", apt)
	}
}

func TestPropertyCreateRejectsUnknownType(t *testing.T) {
	uc := NewPropertyUsecase(&mockPropertyRepo{}, &mockPublisher{})

	_, err := uc.Create(context.Background(), domain.Property{Type: "castle"})
	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected validation error got %v", err)
	}
}
