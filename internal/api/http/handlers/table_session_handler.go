package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/sigma-platform/authentication/internal/api/dto"
	"github.com/sigma-platform/authentication/internal/auth"
	"github.com/sigma-platform/authentication/internal/domain"
	"github.com/sigma-platform/authentication/internal/observability"
	"github.com/sigma-platform/authentication/internal/service"
	apperrors "github.com/sigma-platform/authentication/pkg/util/errorutil"
)

// TableSessionHandler exposes table-session endpoints.
type TableSessionHandler struct {
	sessions *service.TableSessionService
	tokens   *auth.TokenManager
	metrics  *observability.Metrics
}

// NewTableSessionHandler constructs handler.
func NewTableSessionHandler(sessions *service.TableSessionService, tokens *auth.TokenManager, metrics *observability.Metrics) *TableSessionHandler {
	return &TableSessionHandler{sessions: sessions, tokens: tokens, metrics: metrics}
}

// Create handles POST /table-sessions. The response carries a token scoped to the
// new session for the guest device.
func (h *TableSessionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTableSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if problems := req.Validate(); problems != nil {
		return apperrors.NewValidationError("validation failed", problems)
	}

	session, err := h.sessions.CreateSession(c.UserContext(), req.TableID, req.OrderID)
	if err != nil {
		return err
	}
	h.metrics.RecordSessionCreated()

	token, exp, err := h.tokens.CreateToken(session.ID.String(), domain.SubjectTypeTableSession)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.CreateTableSessionResponse{
		Session: dto.NewTableSessionResponse(session),
		Auth:    dto.AuthResponse{Token: token, ExpiresAt: exp},
	}})
}

// Get handles GET /table-sessions/:id.
func (h *TableSessionHandler) Get(c *fiber.Ctx) error {
	id, err := h.authorizedSessionID(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.FindByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	if session == nil {
		return apperrors.NewNotFound("table session", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": dto.NewTableSessionResponse(session)})
}

// Deactivate handles POST /table-sessions/:id/deactivate.
func (h *TableSessionHandler) Deactivate(c *fiber.Ctx) error {
	id, err := h.authorizedSessionID(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.DeactivateSession(c.UserContext(), id)
	if err != nil {
		return err
	}
	if session == nil {
		return apperrors.NewNotFound("table session", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": dto.NewTableSessionResponse(session)})
}

// SetCheckout handles PUT /table-sessions/:id/checkout.
func (h *TableSessionHandler) SetCheckout(c *fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}

	var req dto.SetCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	session, err := h.sessions.SetCheckoutID(c.UserContext(), id, req.CheckoutID)
	if err != nil {
		return err
	}
	if session == nil {
		return apperrors.NewNotFound("table session", map[string]any{"id": id})
	}
	return c.JSON(fiber.Map{"data": dto.NewTableSessionResponse(session)})
}

// Current handles GET /table-sessions/current for a session token.
func (h *TableSessionHandler) Current(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.Session == nil {
		return apperrors.NewUnauthorized("unauthenticated")
	}
	return c.JSON(fiber.Map{"data": dto.NewTableSessionResponse(principal.Session)})
}

// authorizedSessionID lets admins address any session and session tokens only their own.
func (h *TableSessionHandler) authorizedSessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := parseSessionID(c)
	if err != nil {
		return uuid.Nil, err
	}
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return uuid.Nil, apperrors.NewUnauthorized("unauthenticated")
	}
	if principal.Kind == domain.SubjectTypeTableSession && principal.Session.ID != id {
		return uuid.Nil, apperrors.NewForbidden("token is scoped to another table session")
	}
	return id, nil
}

func parseSessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewValidationError("invalid table session id", map[string]any{"id": c.Params("id")})
	}
	return id, nil
}
