package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/epalau/patrimonio"
	"github.com/epalau/patrimonio/internal/domain"
	"github.com/epalau/patrimonio/internal/present/rest/middleware"
	"github.com/epalau/patrimonio/internal/present/rest/presenter"
	"github.com/epalau/patrimonio/internal/service"
	"github.com/epalau/patrimonio/internal/usecase"
)

type Handler struct {
	auth      *service.AuthService
	signal    *service.SignalService
	health    *service.HealthService
	family    *usecase.FamilyMemberUsecase
	property  *usecase.PropertyUsecase
	tenant    *usecase.TenantUsecase
	payment   *usecase.RentPaymentUsecase
	insurance *usecase.InsurancePolicyUsecase
	document  *usecase.DocumentUsecase
}

func NewHandler(
	auth *service.AuthService,
	signal *service.SignalService,
	health *service.HealthService,
	family *usecase.FamilyMemberUsecase,
	property *usecase.PropertyUsecase,
	tenant *usecase.TenantUsecase,
	payment *usecase.RentPaymentUsecase,
	insurance *usecase.InsurancePolicyUsecase,
	document *usecase.DocumentUsecase,
) *Handler {
	return &Handler{
		auth:      auth,
		signal:    signal,
		health:    health,
		family:    family,
		property:  property,
		tenant:    tenant,
		payment:   payment,
		insurance: insurance,
		document:  document,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, authmw *middleware.AuthMiddleware) {
	e.GET("/health", h.handleHealth)
	e.POST("/api/v1/auth/login", h.handleLogin)
	e.GET("/realtime", h.handleRealtime)

	api := e.Group("/api/v1", authmw.RequireSession)

	api.GET("/auth/session", h.handleSession)
	api.POST("/auth/extend", h.handleExtend)
	api.POST("/auth/logout", h.handleLogout)

	api.GET("/family-members", h.handleFamilyMemberList)
	api.GET("/family-members/:id", h.handleFamilyMemberGet)
	api.POST("/family-members", h.handleFamilyMemberCreate)
	api.PUT("/family-members/:id", h.handleFamilyMemberUpdate)
	api.DELETE("/family-members/:id", h.handleFamilyMemberDelete)

	api.GET("/properties", h.handlePropertyList)
	api.GET("/properties/:id", h.handlePropertyGet)
	api.POST("/properties", h.handlePropertyCreate)
	api.PUT("/properties/:id", h.handlePropertyUpdate)
	api.DELETE("/properties/:id", h.handlePropertyDelete)

	api.GET("/tenants", h.handleTenantList)
	api.GET("/tenants/:id", h.handleTenantGet)
	api.POST("/tenants", h.handleTenantCreate)
	api.PUT("/tenants/:id", h.handleTenantUpdate)
	api.DELETE("/tenants/:id", h.handleTenantDelete)

	api.GET("/payments", h.handlePaymentList)
	api.GET("/payments/:id", h.handlePaymentGet)
	api.POST("/payments", h.handlePaymentCreate)
	api.PUT("/payments/:id", h.handlePaymentUpdate)
	api.DELETE("/payments/:id", h.handlePaymentDelete)

	api.GET("/policies", h.handlePolicyList)
	api.GET("/policies/:id", h.handlePolicyGet)
	api.POST("/policies", h.handlePolicyCreate)
	api.PUT("/policies/:id", h.handlePolicyUpdate)
	api.DELETE("/policies/:id", h.handlePolicyDelete)

	api.GET("/documents", h.handleDocumentList)
	api.GET("/documents/:id", h.handleDocumentGet)
	api.POST("/documents", h.handleDocumentCreate)
	api.PUT("/documents/:id", h.handleDocumentUpdate)
	api.DELETE("/documents/:id", h.handleDocumentDelete)
}

// fail maps domain errors onto HTTP statuses. Every failure is surfaced to
// the caller; none are retried server-side.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalid):
		return presenter.BadRequest(c, err)
	case errors.Is(err, domain.ErrNotFound):
		return presenter.NotFound(c, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		return presenter.Unauthorized(c, err.Error())
	default:
		return presenter.InternalError(c, err)
	}
}

func sessionFrom(c echo.Context) (domain.Session, bool) {
	session, ok := c.Request().Context().Value(domain.SessionCtxKey).(domain.Session)
	return session, ok
}

// --- health ---

func (h *Handler) handleHealth(c echo.Context) error {
	return presenter.OK(c, h.health.Check(c.Request().Context()))
}

// --- auth ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Name      string    `json:"name,omitempty"`
}

func (h *Handler) handleLogin(c echo.Context) error {
	ctx := c.Request().Context()

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return presenter.BadRequest(c, err)
	}
	if req.Username == "" || req.Password == "" {
		return presenter.BadRequestMessage(c, "username and password are required")
	}

	token, session, err := h.auth.Login(ctx, req.Username, req.Password)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, loginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Name:      session.DisplayName,
	})
}

type sessionResponse struct {
	Phase            domain.SessionPhase `json:"phase"`
	RemainingSeconds int64               `json:"remainingSeconds"`
	ExpiresAt        time.Time           `json:"expiresAt"`
}

func (h *Handler) handleSession(c echo.Context) error {
	session, ok := sessionFrom(c)
	if !ok {
		return presenter.Unauthorized(c, "no session")
	}

	now := time.Now().UTC()
	remaining := session.Remaining(now)
	if remaining < 0 {
		remaining = 0
	}
	return presenter.OK(c, sessionResponse{
		Phase:            session.Phase(now, h.auth.WarningWindow()),
		RemainingSeconds: int64(remaining.Seconds()),
		ExpiresAt:        session.ExpiresAt,
	})
}

func (h *Handler) handleExtend(c echo.Context) error {
	ctx := c.Request().Context()
	session, ok := sessionFrom(c)
	if !ok {
		return presenter.Unauthorized(c, "no session")
	}

	extended, err := h.auth.Extend(ctx, session.ID)
	if err != nil {
		return fail(c, err)
	}

	now := time.Now().UTC()
	return presenter.OK(c, sessionResponse{
		Phase:            extended.Phase(now, h.auth.WarningWindow()),
		RemainingSeconds: int64(extended.Remaining(now).Seconds()),
		ExpiresAt:        extended.ExpiresAt,
	})
}

func (h *Handler) handleLogout(c echo.Context) error {
	ctx := c.Request().Context()
	session, ok := sessionFrom(c)
	if !ok {
		return presenter.Unauthorized(c, "no session")
	}

	if err := h.auth.Logout(ctx, session.ID); err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- family members ---

func (h *Handler) handleFamilyMemberList(c echo.Context) error {
	members, err := h.family.GetAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, members)
}

func (h *Handler) handleFamilyMemberGet(c echo.Context) error {
	member, err := h.family.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, member)
}

func (h *Handler) handleFamilyMemberCreate(c echo.Context) error {
	var member domain.FamilyMember
	if err := c.Bind(&member); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.family.Create(c.Request().Context(), member)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, created)
}

func (h *Handler) handleFamilyMemberUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	member, err := h.family.GetByID(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	// binding onto the stored record gives partial-patch semantics
	if err := c.Bind(&member); err != nil {
		return presenter.BadRequest(c, err)
	}
	member.ID = c.Param("id")

	updated, err := h.family.Update(ctx, member)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, updated)
}

func (h *Handler) handleFamilyMemberDelete(c echo.Context) error {
	if err := h.family.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- properties ---

func (h *Handler) handlePropertyList(c echo.Context) error {
	occupancy := usecase.OccupancyFilter(c.QueryParam("occupancy"))
	switch occupancy {
	case usecase.OccupancyAny, usecase.OccupancyOccupied, usecase.OccupancyVacant:
	default:
		return presenter.BadRequestMessage(c, "invalid occupancy parameter")
	}

	properties, err := h.property.GetAll(c.Request().Context(), occupancy)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, properties)
}

func (h *Handler) handlePropertyGet(c echo.Context) error {
	property, err := h.property.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, property)
}

func (h *Handler) handlePropertyCreate(c echo.Context) error {
	var property domain.Property
	if err := c.Bind(&property); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.property.Create(c.Request().Context(), property)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, created)
}

func (h *Handler) handlePropertyUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	property, err := h.property.GetByID(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if err := c.Bind(&property); err != nil {
		return presenter.BadRequest(c, err)
	}

	updated, err := h.property.Update(ctx, property)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, updated)
}

func (h *Handler) handlePropertyDelete(c echo.Context) error {
	if err := h.property.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- tenants ---

func (h *Handler) handleTenantList(c echo.Context) error {
	var expiringWithin time.Duration
	if days := c.QueryParam("expiringWithinDays"); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return presenter.BadRequestMessage(c, "invalid expiringWithinDays parameter")
		}
		expiringWithin = time.Duration(n) * 24 * time.Hour
	}

	tenants, err := h.tenant.GetAll(c.Request().Context(), expiringWithin)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, tenants)
}

func (h *Handler) handleTenantGet(c echo.Context) error {
	tenant, err := h.tenant.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, tenant)
}

func (h *Handler) handleTenantCreate(c echo.Context) error {
	var tenant domain.Tenant
	if err := c.Bind(&tenant); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.tenant.Create(c.Request().Context(), tenant)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, created)
}

func (h *Handler) handleTenantUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	tenant, err := h.tenant.GetByID(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if err := c.Bind(&tenant); err != nil {
		return presenter.BadRequest(c, err)
	}
	tenant.ID = c.Param("id")

	updated, err := h.tenant.Update(ctx, tenant)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, updated)
}

func (h *Handler) handleTenantDelete(c echo.Context) error {
	if err := h.tenant.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- rent payments ---

func (h *Handler) handlePaymentList(c echo.Context) error {
	status := domain.PaymentStatus(c.QueryParam("status"))
	if status != "" && !status.Valid() {
		return presenter.BadRequestMessage(c, "invalid status parameter")
	}

	payments, err := h.payment.GetAll(c.Request().Context(), status, c.QueryParam("tenantId"))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, payments)
}

func (h *Handler) handlePaymentGet(c echo.Context) error {
	payment, err := h.payment.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, payment)
}

func (h *Handler) handlePaymentCreate(c echo.Context) error {
	var payment domain.RentPayment
	if err := c.Bind(&payment); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.payment.Create(c.Request().Context(), payment)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, created)
}

func (h *Handler) handlePaymentUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	payment, err := h.payment.GetByID(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if err := c.Bind(&payment); err != nil {
		return presenter.BadRequest(c, err)
	}
	payment.ID = c.Param("id")

	updated, err := h.payment.Update(ctx, payment)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, updated)
}

func (h *Handler) handlePaymentDelete(c echo.Context) error {
	if err := h.payment.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- insurance policies ---

func (h *Handler) handlePolicyList(c echo.Context) error {
	var renewingWithin time.Duration
	if days := c.QueryParam("renewingWithinDays"); days != "" {
		n, err := strconv.Atoi(days)
		if err != nil || n < 0 {
			return presenter.BadRequestMessage(c, "invalid renewingWithinDays parameter")
		}
		renewingWithin = time.Duration(n) * 24 * time.Hour
	}

	policies, err := h.insurance.GetAll(c.Request().Context(), c.QueryParam("familyMemberId"), renewingWithin)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, policies)
}

func (h *Handler) handlePolicyGet(c echo.Context) error {
	policy, err := h.insurance.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, policy)
}

func (h *Handler) handlePolicyCreate(c echo.Context) error {
	var policy domain.InsurancePolicy
	if err := c.Bind(&policy); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.insurance.Create(c.Request().Context(), policy)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, created)
}

func (h *Handler) handlePolicyUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	policy, err := h.insurance.GetByID(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if err := c.Bind(&policy); err != nil {
		return presenter.BadRequest(c, err)
	}
	policy.ID = c.Param("id")

	updated, err := h.insurance.Update(ctx, policy)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, updated)
}

func (h *Handler) handlePolicyDelete(c echo.Context) error {
	if err := h.insurance.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- documents ---

func (h *Handler) handleDocumentList(c echo.Context) error {
	documents, err := h.document.GetAll(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, documents)
}

func (h *Handler) handleDocumentGet(c echo.Context) error {
	document, err := h.document.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, document)
}

func (h *Handler) handleDocumentCreate(c echo.Context) error {
	var document domain.Document
	if err := c.Bind(&document); err != nil {
		return presenter.BadRequest(c, err)
	}
	created, err := h.document.Create(c.Request().Context(), document)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, created)
}

func (h *Handler) handleDocumentUpdate(c echo.Context) error {
	ctx := c.Request().Context()

	document, err := h.document.GetByID(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	if err := c.Bind(&document); err != nil {
		return presenter.BadRequest(c, err)
	}
	document.ID = c.Param("id")

	updated, err := h.document.Update(ctx, document)
	if err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, updated)
}

func (h *Handler) handleDocumentDelete(c echo.Context) error {
	if err := h.document.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return fail(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- realtime bridge ---

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type   string   `json:"type"`
	Tables []string `json:"tables"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer func() {
		ws.Close()
	}()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	input := make(chan []string)
	output := make(chan patrimonio.Event)

	go h.signal.Realtime(ctx, input, output)

	quit := make(chan struct{}, 1)

	go func() {
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {

				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				quit <- struct{}{}
				break
			}

			switch req.Type {
			case "listen":
				select {
				case input <- req.Tables:
				case <-ctx.Done():
					return
				}
				slog.DebugContext(
					ctx, fmt.Sprintf("Socket subscribe: %s", req.Tables),
					slog.String("module", "socket"),
				)
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case event := <-output:
			err := ws.WriteJSON(event)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}
