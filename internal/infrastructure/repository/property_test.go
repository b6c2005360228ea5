package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/epalau/patrimonio/internal/domain"
	"github.com/epalau/patrimonio/internal/infrastructure/database/models"
)

func TestPropertyGetAllAssemblesVariants(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Building{ID: "b-1", Name: "Carrer Major 12"}).Error)
	require.NoError(t, db.Create(&models.Apartment{ID: "apt-1", BuildingID: "b-1", UnitNumber: "1A"}).Error)
	require.NoError(t, db.Create(&models.Flat{ID: "f-1", Name: "Passeig 3"}).Error)
	require.NoError(t, db.Create(&models.Land{ID: "l-1", Name: "Finca nord"}).Error)

	repo := NewPropertyRepository(db)
	properties, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, properties, 3)

	require.Equal(t, domain.PropertyTypeBuilding, properties[0].Type)
	require.Len(t, properties[0].Building.Apartments, 1)
	require.Equal(t, domain.PropertyTypeFlat, properties[1].Type)
	require.Equal(t, domain.PropertyTypeLand, properties[2].Type)
}

func TestPropertyUpdateReconcilesApartments(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	repo := NewPropertyRepository(db)
	require.NoError(t, repo.Create(ctx, domain.Property{
		Type: domain.PropertyTypeBuilding,
		Building: &domain.Building{
			ID:   "b-1",
			Name: "Carrer Major 12",
			Apartments: []domain.Apartment{
				{ID: "apt-1", BuildingID: "b-1", UnitNumber: "1A"},
				{ID: "apt-2", BuildingID: "b-1", UnitNumber: "1B"},
			},
		},
	}))

	// drop apt-2, rename apt-1, add apt-3
	require.NoError(t, repo.Update(ctx, domain.Property{
		Type: domain.PropertyTypeBuilding,
		Building: &domain.Building{
			ID:   "b-1",
			Name: "Carrer Major 12",
			Apartments: []domain.Apartment{
				{ID: "apt-1", BuildingID: "b-1", UnitNumber: "1A bis"},
				{ID: "apt-3", BuildingID: "b-1", UnitNumber: "2A"},
			},
		},
	}))

	var rows []models.Apartment
	require.NoError(t, db.Order("id").Find(&rows).Error)
	require.Len(t, rows, 2)
	require.Equal(t, "apt-1", rows[0].ID)
	require.Equal(t, "1A bis", rows[0].UnitNumber)
	require.Equal(t, "apt-3", rows[1].ID)
}

func TestPropertyDeleteBuildingRemovesApartments(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Building{ID: "b-1", Name: "Carrer Major 12"}).Error)
	require.NoError(t, db.Create(&models.Apartment{ID: "apt-1", BuildingID: "b-1", UnitNumber: "1A"}).Error)

	repo := NewPropertyRepository(db)
	require.NoError(t, repo.Delete(ctx, "b-1"))

	var count int64
	require.NoError(t, db.Model(&models.Apartment{}).Count(&count).Error)
	require.Zero(t, count)

	_, err := repo.GetByID(ctx, "b-1")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPropertyListCacheFlushedOnWrite(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	repo := NewPropertyRepository(db)

	properties, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Empty(t, properties)

	require.NoError(t, repo.Create(ctx, domain.Property{
		Type: domain.PropertyTypeLand,
		Land: &domain.Land{ID: "l-1", Name: "Finca nord"},
	}))

	properties, err = repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, properties, 1)
}
