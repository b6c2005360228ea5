package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/epalau/patrimonio/internal/domain"
	"github.com/epalau/patrimonio/internal/infrastructure/database/models"
)

func TestUpdateMissingTenantReturnsNotFound(t *testing.T) {
	db := openTestDB(t)

	repo := NewTenantRepository(db)
	err := repo.Update(context.Background(), domain.Tenant{
		ID:       "ghost",
		FullName: "Nobody",
		Contact:  domain.Contact{Phone: "600000000"},
	})
	require.True(t, errors.Is(err, domain.ErrNotFound))

	var count int64
	require.NoError(t, db.Model(&models.Tenant{}).Where("id = ?", "ghost").Count(&count).Error)
	require.Zero(t, count, "update must not insert a row for a missing id")
}

func TestUpdateMissingFamilyMemberReturnsNotFound(t *testing.T) {
	db := openTestDB(t)

	repo := NewFamilyMemberRepository(db)
	err := repo.Update(context.Background(), domain.FamilyMember{
		ID:       "ghost",
		FullName: "Nobody",
		Contact:  domain.Contact{Phone: "600000000"},
	})
	require.True(t, errors.Is(err, domain.ErrNotFound))

	var count int64
	require.NoError(t, db.Model(&models.FamilyMember{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateMissingPaymentReturnsNotFound(t *testing.T) {
	db := openTestDB(t)

	repo := NewRentPaymentRepository(db)
	err := repo.Update(context.Background(), domain.RentPayment{
		ID:       "ghost",
		TenantID: "t-1",
		Amount:   decimal.NewFromInt(850),
		DueDate:  time.Now(),
		Status:   domain.PaymentPending,
	})
	require.True(t, errors.Is(err, domain.ErrNotFound))

	var count int64
	require.NoError(t, db.Model(&models.RentPayment{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateMissingPolicyReturnsNotFound(t *testing.T) {
	db := openTestDB(t)

	repo := NewInsurancePolicyRepository(db)
	err := repo.Update(context.Background(), domain.InsurancePolicy{
		ID:             "ghost",
		FamilyMemberID: "fm-1",
		Provider:       "Assegurances SA",
		PolicyNumber:   "POL-1",
	})
	require.True(t, errors.Is(err, domain.ErrNotFound))

	var count int64
	require.NoError(t, db.Model(&models.InsurancePolicy{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateMissingDocumentReturnsNotFound(t *testing.T) {
	db := openTestDB(t)

	repo := NewDocumentRepository(db, nil)
	err := repo.Update(context.Background(), domain.Document{
		ID:      "ghost",
		Name:    "Escriptura",
		Content: "aGVsbG8=",
	})
	require.True(t, errors.Is(err, domain.ErrNotFound))

	var count int64
	require.NoError(t, db.Model(&models.Document{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateMissingFlatReturnsNotFound(t *testing.T) {
	db := openTestDB(t)

	repo := NewPropertyRepository(db)
	err := repo.Update(context.Background(), domain.Property{
		Type: domain.PropertyTypeFlat,
		Flat: &domain.Flat{ID: "ghost", Name: "Passeig 3"},
	})
	require.True(t, errors.Is(err, domain.ErrNotFound))

	var count int64
	require.NoError(t, db.Model(&models.Flat{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestUpdateExistingFamilyMemberPersists(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	repo := NewFamilyMemberRepository(db)
	require.NoError(t, repo.Create(ctx, domain.FamilyMember{
		ID:       "fm-1",
		FullName: "Maria Palau",
		Contact:  domain.Contact{Phone: "600000000"},
	}))

	require.NoError(t, repo.Update(ctx, domain.FamilyMember{
		ID:       "fm-1",
		FullName: "Maria Palau i Roca",
		Contact:  domain.Contact{Phone: "611111111"},
	}))

	got, err := repo.GetByID(ctx, "fm-1")
	require.NoError(t, err)
	require.Equal(t, "Maria Palau i Roca", got.FullName)
	require.Equal(t, "611111111", got.Contact.Phone)
}
