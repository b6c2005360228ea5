package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/epalau/patrimonio/internal/domain"
	"github.com/epalau/patrimonio/internal/infrastructure/database/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.FamilyMember{},
		&models.Building{},
		&models.Apartment{},
		&models.Flat{},
		&models.Land{},
		&models.Tenant{},
		&models.RentPayment{},
		&models.InsurancePolicy{},
		&models.Document{},
	))
	return db
}

func TestCreateWithPlacementOccupiesFlat(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Flat{ID: "f-1", Name: "Passeig 3"}).Error)

	repo := NewTenantRepository(db)
	err := repo.CreateWithPlacement(ctx, domain.Tenant{
		ID:       "t-1",
		FullName: "Joan Serra",
		Contact:  domain.Contact{Phone: "600000000"},
		Agreement: domain.RentalAgreement{
			MonthlyRent: decimal.NewFromInt(850),
		},
		Property: &domain.PropertyRef{
			PropertyID:   "f-1",
			PropertyType: domain.PropertyTypeFlat,
		},
	})
	require.NoError(t, err)

	var flat models.Flat
	require.NoError(t, db.First(&flat, "id = ?", "f-1").Error)
	require.True(t, flat.Occupied)
	require.NotNil(t, flat.CurrentTenantID)
	require.Equal(t, "t-1", *flat.CurrentTenantID)
}

func TestCreateWithPlacementOccupiesApartment(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Building{ID: "b-1", Name: "Carrer Major 12"}).Error)
	require.NoError(t, db.Create(&models.Apartment{ID: "apt-1", BuildingID: "b-1", UnitNumber: "1A"}).Error)

	buildingID := "b-1"
	repo := NewTenantRepository(db)
	err := repo.CreateWithPlacement(ctx, domain.Tenant{
		ID:       "t-1",
		FullName: "Marta Puig",
		Contact:  domain.Contact{Phone: "611111111"},
		Property: &domain.PropertyRef{
			PropertyID:   "apt-1",
			PropertyType: domain.PropertyTypeBuilding,
			BuildingID:   &buildingID,
		},
	})
	require.NoError(t, err)

	var apt models.Apartment
	require.NoError(t, db.First(&apt, "id = ?", "apt-1").Error)
	require.True(t, apt.Occupied)
}

func TestDeleteWithVacateFreesUnit(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Flat{ID: "f-1", Name: "Passeig 3"}).Error)

	repo := NewTenantRepository(db)
	require.NoError(t, repo.CreateWithPlacement(ctx, domain.Tenant{
		ID:       "t-1",
		FullName: "Joan Serra",
		Contact:  domain.Contact{Phone: "600000000"},
		Property: &domain.PropertyRef{
			PropertyID:   "f-1",
			PropertyType: domain.PropertyTypeFlat,
		},
	}))

	deleted, err := repo.DeleteWithVacate(ctx, "t-1")
	require.NoError(t, err)
	require.Equal(t, "Joan Serra", deleted.FullName)

	var flat models.Flat
	require.NoError(t, db.First(&flat, "id = ?", "f-1").Error)
	require.False(t, flat.Occupied)
	require.Nil(t, flat.CurrentTenantID)

	_, err = repo.GetByID(ctx, "t-1")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteWithVacateMissingTenant(t *testing.T) {
	db := openTestDB(t)

	repo := NewTenantRepository(db)
	_, err := repo.DeleteWithVacate(context.Background(), "nope")
	require.True(t, errors.Is(err, domain.ErrNotFound))
}
