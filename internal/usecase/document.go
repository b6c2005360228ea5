package usecase

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/google/uuid"
	"github.com/zeebo/xxh3"

	"github.com/epalau/patrimonio"
	"github.com/epalau/patrimonio/internal/domain"
)

type DocumentUsecase struct {
	repo      DocumentRepository
	publisher EventPublisher
}

func NewDocumentUsecase(repo DocumentRepository, publisher EventPublisher) *DocumentUsecase {
	return &DocumentUsecase{repo: repo, publisher: publisher}
}

func (uc *DocumentUsecase) GetAll(ctx context.Context) ([]domain.Document, error) {
	return uc.repo.GetAll(ctx)
}

func (uc *DocumentUsecase) GetByID(ctx context.Context, id string) (domain.Document, error) {
	return uc.repo.GetByID(ctx, id)
}

func (uc *DocumentUsecase) Create(ctx context.Context, document domain.Document) (domain.Document, error) {
	if err := document.Validate(); err != nil {
		return domain.Document{}, err
	}
	if err := fingerprint(&document); err != nil {
		return domain.Document{}, err
	}
	if document.ID == "" {
		document.ID = uuid.NewString()
	}
	if err := uc.repo.Create(ctx, document); err != nil {
		return domain.Document{}, err
	}
	publish(ctx, uc.publisher, patrimonio.TableDocuments, patrimonio.ActionInsert, document.ID)
	return document, nil
}

func (uc *DocumentUsecase) Update(ctx context.Context, document domain.Document) (domain.Document, error) {
	if err := document.Validate(); err != nil {
		return domain.Document{}, err
	}
	if err := fingerprint(&document); err != nil {
		return domain.Document{}, err
	}
	if err := uc.repo.Update(ctx, document); err != nil {
		return domain.Document{}, err
	}
	publish(ctx, uc.publisher, patrimonio.TableDocuments, patrimonio.ActionUpdate, document.ID)
	return document, nil
}

func (uc *DocumentUsecase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	publish(ctx, uc.publisher, patrimonio.TableDocuments, patrimonio.ActionDelete, id)
	return nil
}

// fingerprint decodes the base64 body to set size and checksum. The stored
// checksum lets clients detect blob changes without downloading the body.
func fingerprint(document *domain.Document) error {
	raw, err := base64.StdEncoding.DecodeString(document.Content)
	if err != nil {
		return domain.ValidationError{Field: "content", Reason: "must be valid base64"}
	}
	document.SizeBytes = int64(len(raw))
	document.Checksum = fmt.Sprintf("%016x", xxh3.Hash(raw))
	return nil
}
