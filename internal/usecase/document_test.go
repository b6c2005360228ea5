package usecase

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/epalau/patrimonio/internal/domain"
)

type mockDocumentRepo struct {
	created *domain.Document
}

func (m *mockDocumentRepo) GetAll(ctx context.Context) ([]domain.Document, error) { return nil, nil }
func (m *mockDocumentRepo) GetByID(ctx context.Context, id string) (domain.Document, error) {
	return domain.Document{}, domain.NotFoundError{Resource: "document"}
}
func (m *mockDocumentRepo) Create(ctx context.Context, document domain.Document) error {
	m.created = &document
	return nil
}
func (m *mockDocumentRepo) Update(ctx context.Context, document domain.Document) error { return nil }
func (m *mockDocumentRepo) Delete(ctx context.Context, id string) error                { return nil }

func TestDocumentCreateComputesFingerprint(t *testing.T) {
	repo := &mockDocumentRepo{}
	uc := NewDocumentUsecase(repo, &mockPublisher{})

	payload := []byte("escriptura de la finca")
	created, err := uc.Create(context.Background(), domain.Document{
		Name:        "Escriptura",
		Category:    "legal",
		Content:     base64.StdEncoding.EncodeToString(payload),
		ContentType: "application/pdf",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.SizeBytes != int64(len(payload)) {
		t.Fatalf("expected size %d got %d", len(payload), created.SizeBytes)
	}
	if len(created.Checksum) != 16 {
		t.Fatalf("expected 16 hex chars got %q", created.Checksum)
	}
	if repo.created == nil || repo.created.Checksum != created.Checksum {
		t.Fatalf("expected checksum to be persisted")
	}
}

func TestDocumentCreateRejectsBadBase64(t *testing.T) {
	uc := NewDocumentUsecase(&mockDocumentRepo{}, &mockPublisher{})

	_, err := uc.Create(context.Background(), domain.Document{
		Name:    "broken",
		Content: "not-base64!!",
	})
	if !errors.Is(err, domain.ErrInvalid) {
		t.Fatalf("expected validation error got %v", err)
	}
}
