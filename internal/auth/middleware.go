package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sigma-platform/authentication/internal/domain"
	apperrors "github.com/sigma-platform/authentication/pkg/util/errorutil"
)

const principalKey = "auth_principal"

// AdminFinder resolves admin token subjects.
type AdminFinder interface {
	FindOne(ctx context.Context, email string) (*domain.Admin, error)
}

// SessionFinder resolves table-session token subjects.
type SessionFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.TableSession, error)
}

// Principal represents the authenticated caller.
type Principal struct {
	Kind    domain.SubjectType
	Admin   *domain.Admin
	Session *domain.TableSession
}

// AuthMiddleware validates bearer tokens and loads principals.
type AuthMiddleware struct {
	tokens   *TokenManager
	admins   AdminFinder
	sessions SessionFinder
	logger   *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, admins AdminFinder, sessions SessionFinder, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{tokens: tokens, admins: admins, sessions: sessions, logger: logger}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.VerifyToken(strings.TrimSpace(parts[1]))
	if err != nil {
		m.logger.Debug("token rejected", zap.Error(err))
		return apperrors.NewUnauthorized("unauthenticated")
	}

	principal := &Principal{Kind: claims.Kind}
	ctx := c.UserContext()

	switch claims.Kind {
	case domain.SubjectTypeAdmin:
		admin, err := m.admins.FindOne(ctx, claims.Subject)
		if err != nil {
			return err
		}
		if admin == nil {
			return apperrors.NewUnauthorized("unauthenticated")
		}
		principal.Admin = admin
	case domain.SubjectTypeTableSession:
		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			return apperrors.NewUnauthorized("unauthenticated")
		}
		session, err := m.sessions.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if session == nil || !session.IsActive {
			return apperrors.NewUnauthorized("session ended")
		}
		principal.Session = session
	default:
		return apperrors.NewUnauthorized("unknown subject")
	}

	c.Locals(principalKey, principal)
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated entity.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	principal, ok := c.Locals(principalKey).(*Principal)
	return principal, ok && principal != nil
}

var errNoPrincipal = errors.New("no principal")

// AdminFromContext returns the authenticated admin.
func AdminFromContext(c *fiber.Ctx) (*domain.Admin, error) {
	principal, ok := PrincipalFromContext(c)
	if !ok || principal.Admin == nil {
		return nil, errNoPrincipal
	}
	return principal.Admin, nil
}
