package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/epalau/patrimonio/internal/domain"
)

type mockPaymentRepo struct {
	payments []domain.RentPayment
	created  *domain.RentPayment
}

func (m *mockPaymentRepo) GetAll(ctx context.Context) ([]domain.RentPayment, error) {
	return m.payments, nil
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id string) (domain.RentPayment, error) {
	for _, p := range m.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.RentPayment{}, domain.NotFoundError{Resource: "rent payment"}
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment domain.RentPayment) error {
	m.created = &payment
	return nil
}

func (m *mockPaymentRepo) Update(ctx context.Context, payment domain.RentPayment) error { return nil }
func (m *mockPaymentRepo) Delete(ctx context.Context, id string) error                  { return nil }

func TestFilterPaymentsDerivesOverdue(t *testing.T) {
	now := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)

	payments := []domain.RentPayment{
		{ID: "late", TenantID: "t-1", Status: domain.PaymentPending, DueDate: now.Add(-48 * time.Hour)},
		{ID: "current", TenantID: "t-1", Status: domain.PaymentPending, DueDate: now.Add(48 * time.Hour)},
		{ID: "settled", TenantID: "t-2", Status: domain.PaymentPaid, DueDate: now.Add(-48 * time.Hour)},
	}

	overdue := FilterPayments(payments, domain.PaymentOverdue, "", now)
	if len(overdue) != 1 || overdue[0].ID != "late" {
		t.Fatalf("expected only the late payment, got %v", overdue)
	}
	if overdue[0].Status != domain.PaymentOverdue {
		t.Fatalf("expected derived overdue status got %s", overdue[0].Status)
	}

	pending := FilterPayments(payments, domain.PaymentPending, "", now)
	if len(pending) != 1 || pending[0].ID != "current" {
		t.Fatalf("expected only the current payment, got %v", pending)
	}
}

func TestFilterPaymentsByTenant(t *testing.T) {
	now := time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC)

	payments := []domain.RentPayment{
		{ID: "p-1", TenantID: "t-1", Status: domain.PaymentPaid, DueDate: now},
		{ID: "p-2", TenantID: "t-2", Status: domain.PaymentPaid, DueDate: now},
	}

	got := FilterPayments(payments, "", "t-2", now)
	if len(got) != 1 || got[0].ID != "p-2" {
		t.Fatalf("expected only t-2 payments, got %v", got)
	}
}

func TestPaymentCreateDefaultsToPending(t *testing.T) {
	repo := &mockPaymentRepo{}
	uc := NewRentPaymentUsecase(repo, &mockPublisher{})

	created, err := uc.Create(context.Background(), domain.RentPayment{
		TenantID: "t-1",
		Amount:   decimal.NewFromInt(850),
		DueDate:  time.Now().Add(30 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != domain.PaymentPending {
		t.Fatalf("expected pending got %s", created.Status)
	}
	if repo.created == nil || repo.created.ID == "" {
		t.Fatalf("expected stored payment with an id")
	}
}

func TestPaymentCreateRejectsNonPositiveAmount(t *testing.T) {
	uc := NewRentPaymentUsecase(&mockPaymentRepo{}, &mockPublisher{})

	_, err := uc.Create(context.Background(), domain.RentPayment{
		TenantID: "t-1",
		Amount:   decimal.Zero,
		DueDate:  time.Now(),
	})
	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected validation error got %v", err)
	}
}
