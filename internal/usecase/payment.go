package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/epalau/patrimonio"
	"github.com/epalau/patrimonio/internal/domain"
)

type RentPaymentUsecase struct {
	repo      RentPaymentRepository
	publisher EventPublisher
}

func NewRentPaymentUsecase(repo RentPaymentRepository, publisher EventPublisher) *RentPaymentUsecase {
	return &RentPaymentUsecase{repo: repo, publisher: publisher}
}

// GetAll lists payments with overdue derived from the due date, optionally
// narrowed by status and tenant.
func (uc *RentPaymentUsecase) GetAll(ctx context.Context, status domain.PaymentStatus, tenantID string) ([]domain.RentPayment, error) {
	payments, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterPayments(payments, status, tenantID, time.Now().UTC()), nil
}

func (uc *RentPaymentUsecase) GetByID(ctx context.Context, id string) (domain.RentPayment, error) {
	payment, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.RentPayment{}, err
	}
	payment.Status = payment.EffectiveStatus(time.Now().UTC())
	return payment, nil
}

func (uc *RentPaymentUsecase) Create(ctx context.Context, payment domain.RentPayment) (domain.RentPayment, error) {
	if payment.Status == "" {
		payment.Status = domain.PaymentPending
	}
	if err := payment.Validate(); err != nil {
		return domain.RentPayment{}, err
	}
	if payment.ID == "" {
		payment.ID = uuid.NewString()
	}
	if err := uc.repo.Create(ctx, payment); err != nil {
		return domain.RentPayment{}, err
	}
	publish(ctx, uc.publisher, patrimonio.TableRentPayments, patrimonio.ActionInsert, payment.ID)
	return payment, nil
}

func (uc *RentPaymentUsecase) Update(ctx context.Context, payment domain.RentPayment) (domain.RentPayment, error) {
	if err := payment.Validate(); err != nil {
		return domain.RentPayment{}, err
	}
	if err := uc.repo.Update(ctx, payment); err != nil {
		return domain.RentPayment{}, err
	}
	publish(ctx, uc.publisher, patrimonio.TableRentPayments, patrimonio.ActionUpdate, payment.ID)
	return payment, nil
}

func (uc *RentPaymentUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, uc.publisher, patrimonio.TableRentPayments, patrimonio.ActionDelete, id)
	return nil
}

// FilterPayments derives each payment's effective status at the given
// instant, then keeps the ones matching the status and tenant filters.
func FilterPayments(payments []domain.RentPayment, status domain.PaymentStatus, tenantID string, now time.Time) []domain.RentPayment {
	result := make([]domain.RentPayment, 0, len(payments))
	for _, p := range payments {
		p.Status = p.EffectiveStatus(now)
		if status != "" && p.Status != status {
			continue
		}
		if tenantID != "" && p.TenantID != tenantID {
			continue
		}
		result = append(result, p)
	}
	return result
}
