package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/epalau/patrimonio"
	"github.com/epalau/patrimonio/internal/config"
	"github.com/epalau/patrimonio/internal/domain"
	"github.com/epalau/patrimonio/internal/service"
	"github.com/epalau/patrimonio/internal/usecase"
)

// --- mocks ---

type mockPublisher struct{}

func (m *mockPublisher) Publish(ctx context.Context, event patrimonio.Event) error { return nil }

type mockFamilyRepo struct {
	members []domain.FamilyMember
}

func (m *mockFamilyRepo) GetAll(ctx context.Context) ([]domain.FamilyMember, error) {
	return m.members, nil
}

func (m *mockFamilyRepo) GetByID(ctx context.Context, id string) (domain.FamilyMember, error) {
	for _, member := range m.members {
		if member.ID == id {
			return member, nil
		}
	}
	return domain.FamilyMember{}, domain.NotFoundError{Resource: "family member"}
}

func (m *mockFamilyRepo) Create(ctx context.Context, member domain.FamilyMember) error {
	m.members = append(m.members, member)
	return nil
}

func (m *mockFamilyRepo) Update(ctx context.Context, member domain.FamilyMember) error { return nil }
func (m *mockFamilyRepo) Delete(ctx context.Context, id string) error                  { return nil }

type mockPropertyRepo struct {
	properties []domain.Property
}

func (m *mockPropertyRepo) GetAll(ctx context.Context) ([]domain.Property, error) {
	return m.properties, nil
}

func (m *mockPropertyRepo) GetByID(ctx context.Context, id string) (domain.Property, error) {
	for _, p := range m.properties {
		if p.ID() == id {
			return p, nil
		}
	}
	return domain.Property{}, domain.NotFoundError{Resource: "property"}
}

func (m *mockPropertyRepo) Create(ctx context.Context, property domain.Property) error { return nil }
func (m *mockPropertyRepo) Update(ctx context.Context, property domain.Property) error { return nil }
func (m *mockPropertyRepo) Delete(ctx context.Context, id string) error                { return nil }

func newTestHandler(familyRepo *mockFamilyRepo, propertyRepo *mockPropertyRepo) *Handler {
	auth := service.NewAuthService(nil, config.Session{
		Secret:         "test-secret",
		TTLMinutes:     30,
		WarningMinutes: 5,
	}, nil)
	health := service.NewHealthService(nil, nil)

	pub := &mockPublisher{}
	return NewHandler(
		auth, nil, health,
		usecase.NewFamilyMemberUsecase(familyRepo, pub),
		usecase.NewPropertyUsecase(propertyRepo, pub),
		nil, nil, nil, nil,
	)
}

func newTestContext(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

// --- tests ---

func TestHandleFamilyMemberCreate(t *testing.T) {
	repo := &mockFamilyRepo{}
	h := newTestHandler(repo, &mockPropertyRepo{})
	e := echo.New()

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/family-members",
		`{"fullName":"Maria Palau","contact":{"phone":"600000000"}}`)

	if err := h.handleFamilyMemberCreate(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}

	var created domain.FamilyMember
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected an id to be assigned")
	}
	if len(repo.members) != 1 {
		t.Fatalf("expected member to be stored")
	}
}

func TestHandleFamilyMemberCreateRejectsEmptyName(t *testing.T) {
	h := newTestHandler(&mockFamilyRepo{}, &mockPropertyRepo{})
	e := echo.New()

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/family-members",
		`{"contact":{"phone":"600000000"}}`)

	if err := h.handleFamilyMemberCreate(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestHandleFamilyMemberGetNotFound(t *testing.T) {
	h := newTestHandler(&mockFamilyRepo{}, &mockPropertyRepo{})
	e := echo.New()

	c, rec := newTestContext(e, http.MethodGet, "/api/v1/family-members/nope", "")
	c.SetParamNames("id")
	c.SetParamValues("nope")

	if err := h.handleFamilyMemberGet(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestHandlePropertyListRejectsBadOccupancy(t *testing.T) {
	h := newTestHandler(&mockFamilyRepo{}, &mockPropertyRepo{})
	e := echo.New()

	c, rec := newTestContext(e, http.MethodGet, "/api/v1/properties?occupancy=sometimes", "")

	if err := h.handlePropertyList(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestHandlePropertyListFiltersVacant(t *testing.T) {
	repo := &mockPropertyRepo{properties: []domain.Property{
		{Type: domain.PropertyTypeFlat, Flat: &domain.Flat{ID: "f-1", Name: "Passeig 3", Occupied: true}},
		{Type: domain.PropertyTypeFlat, Flat: &domain.Flat{ID: "f-2", Name: "Ronda 8", Occupied: false}},
	}}
	h := newTestHandler(&mockFamilyRepo{}, repo)
	e := echo.New()

	c, rec := newTestContext(e, http.MethodGet, "/api/v1/properties?occupancy=vacant", "")

	if err := h.handlePropertyList(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var got []domain.Property
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(got) != 1 || got[0].Flat.ID != "f-2" {
		t.Fatalf("expected only f-2, got %v", got)
	}
}

func TestHandleSessionReportsWarningPhase(t *testing.T) {
	h := newTestHandler(&mockFamilyRepo{}, &mockPropertyRepo{})
	e := echo.New()

	c, rec := newTestContext(e, http.MethodGet, "/api/v1/auth/session", "")

	now := time.Now().UTC()
	session := domain.Session{
		ID:        "s-1",
		Username:  "alice",
		IssuedAt:  now.Add(-28 * time.Minute),
		ExpiresAt: now.Add(2 * time.Minute),
	}
	ctx := context.WithValue(c.Request().Context(), domain.SessionCtxKey, session)
	c.SetRequest(c.Request().WithContext(ctx))

	if err := h.handleSession(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}

	var got sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if got.Phase != domain.SessionWarning {
		t.Fatalf("expected warning phase got %s", got.Phase)
	}
	if got.RemainingSeconds <= 0 || got.RemainingSeconds > 120 {
		t.Fatalf("unexpected remaining seconds %d", got.RemainingSeconds)
	}
}

func TestHandleSessionWithoutSession(t *testing.T) {
	h := newTestHandler(&mockFamilyRepo{}, &mockPropertyRepo{})
	e := echo.New()

	c, rec := newTestContext(e, http.MethodGet, "/api/v1/auth/session", "")

	if err := h.handleSession(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestHandleLoginRejectsUnknownAccount(t *testing.T) {
	h := newTestHandler(&mockFamilyRepo{}, &mockPropertyRepo{})
	e := echo.New()

	c, rec := newTestContext(e, http.MethodPost, "/api/v1/auth/login",
		`{"username":"nobody","password":"wrong"}`)

	if err := h.handleLogin(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}
