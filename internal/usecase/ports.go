package usecase

import (
	"context"

	"github.com/epalau/patrimonio"
	"github.com/epalau/patrimonio/internal/domain"
)

// EventPublisher fans a row change out to realtime subscribers.
type EventPublisher interface {
	Publish(ctx context.Context, event patrimonio.Event) error
}

// FamilyMemberRepository defines persistence for family members.
type FamilyMemberRepository interface {
	GetAll(ctx context.Context) ([]domain.FamilyMember, error)
	GetByID(ctx context.Context, id string) (domain.FamilyMember, error)
	Create(ctx context.Context, member domain.FamilyMember) error
	Update(ctx context.Context, member domain.FamilyMember) error
	Delete(ctx context.Context, id string) error
}

// PropertyRepository defines persistence for the property variants.
type PropertyRepository interface {
	GetAll(ctx context.Context) ([]domain.Property, error)
	GetByID(ctx context.Context, id string) (domain.Property, error)
	Create(ctx context.Context, property domain.Property) error
	Update(ctx context.Context, property domain.Property) error
	Delete(ctx context.Context, id string) error
}

// TenantRepository defines persistence for tenants, including the
// occupancy-coupled create and delete.
type TenantRepository interface {
	GetAll(ctx context.Context) ([]domain.Tenant, error)
	GetByID(ctx context.Context, id string) (domain.Tenant, error)
	CreateWithPlacement(ctx context.Context, tenant domain.Tenant) error
	Update(ctx context.Context, tenant domain.Tenant) error
	DeleteWithVacate(ctx context.Context, id string) (domain.Tenant, error)
}

// RentPaymentRepository defines persistence for rent payments.
type RentPaymentRepository interface {
	GetAll(ctx context.Context) ([]domain.RentPayment, error)
	GetByID(ctx context.Context, id string) (domain.RentPayment, error)
	Create(ctx context.Context, payment domain.RentPayment) error
	Update(ctx context.Context, payment domain.RentPayment) error
	Delete(ctx context.Context, id string) error
}

// InsurancePolicyRepository defines persistence for insurance policies.
type InsurancePolicyRepository interface {
	GetAll(ctx context.Context) ([]domain.InsurancePolicy, error)
	GetByID(ctx context.Context, id string) (domain.InsurancePolicy, error)
	Create(ctx context.Context, policy domain.InsurancePolicy) error
	Update(ctx context.Context, policy domain.InsurancePolicy) error
	Delete(ctx context.Context, id string) error
}

// DocumentRepository defines persistence for documents.
type DocumentRepository interface {
	GetAll(ctx context.Context) ([]domain.Document, error)
	GetByID(ctx context.Context, id string) (domain.Document, error)
	Create(ctx context.Context, document domain.Document) error
	Update(ctx context.Context, document domain.Document) error
	Delete(ctx context.Context, id string) error
}
