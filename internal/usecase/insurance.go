package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/epalau/patrimonio"
	"github.com/epalau/patrimonio/internal/domain"
)

type InsurancePolicyUsecase struct {
	repo      InsurancePolicyRepository
	publisher EventPublisher
}

func NewInsurancePolicyUsecase(repo InsurancePolicyRepository, publisher EventPublisher) *InsurancePolicyUsecase {
	return &InsurancePolicyUsecase{repo: repo, publisher: publisher}
}

// GetAll lists policies, optionally narrowed to a family member and to
// policies renewing within the given window.
func (uc *InsurancePolicyUsecase) GetAll(ctx context.Context, familyMemberID string, renewingWithin time.Duration) ([]domain.InsurancePolicy, error) {
	policies, err := uc.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := make([]domain.InsurancePolicy, 0, len(policies))
	for _, p := range policies {
		if familyMemberID != "" && p.FamilyMemberID != familyMemberID {
			continue
		}
		if renewingWithin > 0 && !p.RenewsWithin(now, renewingWithin) {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

func (uc *InsurancePolicyUsecase) GetByID(ctx context.Context, id string) (domain.InsurancePolicy, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *InsurancePolicyUsecase) Create(ctx context.Context, policy domain.InsurancePolicy) (domain.InsurancePolicy, error) {
	if err := policy.Validate(); err != nil {
		return domain.InsurancePolicy{}, err
	}
	if policy.ID == "" {
		policy.ID = uuid.NewString()
	}
	if err := uc.repo.Create(ctx, policy); err != nil {
		return domain.InsurancePolicy{}, err
	}
	publish(ctx, uc.publisher, patrimonio.TablePolicies, patrimonio.ActionInsert, policy.ID)
	return policy, nil
}

func (uc *InsurancePolicyUsecase) Update(ctx context.Context, policy domain.InsurancePolicy) (domain.InsurancePolicy, error) {
	if err := policy.Validate(); err != nil {
		return domain.InsurancePolicy{}, err
	}
	if err := uc.repo.Update(ctx, policy); err != nil {
		return domain.InsurancePolicy{}, err
	}
	publish(ctx, uc.publisher, patrimonio.TablePolicies, patrimonio.ActionUpdate, policy.ID)
	return policy, nil
}

func (uc *InsurancePolicyUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, uc.publisher, patrimonio.TablePolicies, patrimonio.ActionDelete, id)
	return nil
}
