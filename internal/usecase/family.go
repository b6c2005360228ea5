package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/epalau/patrimonio"
	"github.com/epalau/patrimonio/internal/domain"
)

type FamilyMemberUsecase struct {
	repo      FamilyMemberRepository
	publisher EventPublisher
}

func NewFamilyMemberUsecase(repo FamilyMemberRepository, publisher EventPublisher) *FamilyMemberUsecase {
	return &FamilyMemberUsecase{repo: repo, publisher: publisher}
}

func (uc *FamilyMemberUsecase) GetAll(ctx context.Context) ([]domain.FamilyMember, error) {
	return uc.repo.GetAll(ctx)
}

func (uc *FamilyMemberUsecase) GetByID(ctx context.Context, id string) (domain.FamilyMember, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *FamilyMemberUsecase) Create(ctx context.Context, member domain.FamilyMember) (domain.FamilyMember, error) {
	if err := member.Validate(); err != nil {
		return domain.FamilyMember{}, err
	}
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	if err := uc.repo.Create(ctx, member); err != nil {
		return domain.FamilyMember{}, err
	}
	publish(ctx, uc.publisher, patrimonio.TableFamilyMembers, patrimonio.ActionInsert, member.ID)
	return member, nil
}

func (uc *FamilyMemberUsecase) Update(ctx context.Context, member domain.FamilyMember) (domain.FamilyMember, error) {
	if err := member.Validate(); err != nil {
		return domain.FamilyMember{}, err
	}
	if err := uc.repo.Update(ctx, member); err != nil {
		return domain.FamilyMember{}, err
	}
	publish(ctx, uc.publisher, patrimonio.TableFamilyMembers, patrimonio.ActionUpdate, member.ID)
	return member, nil
}

func (uc *FamilyMemberUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, uc.publisher, patrimonio.TableFamilyMembers, patrimonio.ActionDelete, id)
	return nil
}
