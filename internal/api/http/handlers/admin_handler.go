package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/sigma-platform/authentication/internal/api/dto"
	"github.com/sigma-platform/authentication/internal/auth"
	"github.com/sigma-platform/authentication/internal/domain"
	"github.com/sigma-platform/authentication/internal/observability"
	"github.com/sigma-platform/authentication/internal/service"
	apperrors "github.com/sigma-platform/authentication/pkg/util/errorutil"
)

// AdminHandler exposes admin account and login endpoints.
type AdminHandler struct {
	admins        *service.AdminService
	authenticator *auth.Authenticator
	tokens        *auth.TokenManager
	metrics       *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(admins *service.AdminService, authenticator *auth.Authenticator, tokens *auth.TokenManager, metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{admins: admins, authenticator: authenticator, tokens: tokens, metrics: metrics}
}

// Login handles POST /admins/login.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req dto.AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	subject, err := h.authenticator.Authenticate(c.UserContext(), req.Credentials())
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			h.metrics.RecordLogin(observability.LoginFailed)
		}
		return err
	}

	token, exp, err := h.tokens.CreateToken(subject, domain.SubjectTypeAdmin)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	h.metrics.RecordLogin(observability.LoginSucceeded)

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: exp},
	})
}

// Create handles POST /admins.
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if problems := req.Validate(); problems != nil {
		return apperrors.NewValidationError("validation failed", problems)
	}

	existing, err := h.admins.FindOne(c.UserContext(), req.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.NewConflict("email already exists", nil)
	}

	admin, err := h.admins.RegisterAdmin(c.UserContext(), req.Email, req.Name, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewAdminResponse(admin)})
}

// Read handles GET /admins for the signed-in admin.
func (h *AdminHandler) Read(c *fiber.Ctx) error {
	admin, err := auth.AdminFromContext(c)
	if err != nil {
		return apperrors.NewUnauthorized("unauthenticated")
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminResponse(admin)})
}

// Update handles PUT /admins.
func (h *AdminHandler) Update(c *fiber.Ctx) error {
	admin, err := auth.AdminFromContext(c)
	if err != nil {
		return apperrors.NewUnauthorized("unauthenticated")
	}

	var req dto.UpdateAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if problems := req.Validate(); problems != nil {
		return apperrors.NewValidationError("validation failed", problems)
	}

	updated, err := h.admins.UpdateOne(c.UserContext(), admin.Email, req.NewName)
	if err != nil {
		return err
	}
	if updated == nil {
		return apperrors.NewNotFound("admin", nil)
	}
	return c.JSON(fiber.Map{"data": dto.NewAdminResponse(updated)})
}

// Delete handles DELETE /admins. Tokens issued to the admin stop resolving.
func (h *AdminHandler) Delete(c *fiber.Ctx) error {
	admin, err := auth.AdminFromContext(c)
	if err != nil {
		return apperrors.NewUnauthorized("unauthenticated")
	}
	if err := h.admins.DeleteOne(c.UserContext(), admin.Email); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
