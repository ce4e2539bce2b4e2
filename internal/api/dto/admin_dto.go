package dto

import (
	"time"

	"github.com/sigma-platform/authentication/internal/domain"
)

// AdminLoginRequest payload. Strategy defaults to password.
type AdminLoginRequest struct {
	Strategy string `json:"strategy"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

// Credentials converts the payload for the strategy dispatcher.
func (r AdminLoginRequest) Credentials() domain.Credentials {
	return domain.Credentials{
		Strategy: domain.StrategyKind(r.Strategy),
		Email:    r.Email,
		Password: r.Password,
		Token:    r.Token,
	}
}

// CreateAdminRequest payload for new admins.
type CreateAdminRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

// Validate returns per-field problems, or nil.
func (r CreateAdminRequest) Validate() map[string]any {
	problems := map[string]any{}
	if msg := validateEmail(r.Email); msg != "" {
		problems["email"] = msg
	}
	if msg := validateName(r.Name); msg != "" {
		problems["name"] = msg
	}
	if msg := validatePassword(r.Password); msg != "" {
		problems["password"] = msg
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// UpdateAdminRequest payload for renaming the signed-in admin.
type UpdateAdminRequest struct {
	NewName string `json:"new_name"`
}

// Validate returns per-field problems, or nil.
func (r UpdateAdminRequest) Validate() map[string]any {
	if msg := validateName(r.NewName); msg != "" {
		return map[string]any{"new_name": msg}
	}
	return nil
}

// AdminResponse is the public view of an admin. The password hash never leaves the service.
type AdminResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// NewAdminResponse maps the domain value.
func NewAdminResponse(admin *domain.Admin) AdminResponse {
	return AdminResponse{Email: admin.Email, Name: admin.Name}
}

// AuthResponse standard response for token-issuing endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
