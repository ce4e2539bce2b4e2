package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/sigma-platform/authentication/internal/domain"
)

// CreateTableSessionRequest payload.
type CreateTableSessionRequest struct {
	TableID uuid.UUID `json:"table_id"`
	OrderID uuid.UUID `json:"order_id"`
}

// Validate returns per-field problems, or nil.
func (r CreateTableSessionRequest) Validate() map[string]any {
	problems := map[string]any{}
	if r.TableID == uuid.Nil {
		problems["table_id"] = "table_id is required"
	}
	if r.OrderID == uuid.Nil {
		problems["order_id"] = "order_id is required"
	}
	if len(problems) == 0 {
		return nil
	}
	return problems
}

// SetCheckoutRequest payload. A null checkout_id detaches the checkout.
type SetCheckoutRequest struct {
	CheckoutID *uuid.UUID `json:"checkout_id"`
}

// TableSessionResponse is the public view of a table session.
type TableSessionResponse struct {
	ID         uuid.UUID  `json:"id"`
	TableID    uuid.UUID  `json:"table_id"`
	OrderID    uuid.UUID  `json:"order_id"`
	CheckoutID *uuid.UUID `json:"checkout_id"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

// NewTableSessionResponse maps the domain value.
func NewTableSessionResponse(s *domain.TableSession) TableSessionResponse {
	return TableSessionResponse{
		ID:         s.ID,
		TableID:    s.TableID,
		OrderID:    s.OrderID,
		CheckoutID: s.CheckoutID,
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt,
	}
}

// CreateTableSessionResponse carries the new session and the token scoped to it.
type CreateTableSessionResponse struct {
	Session TableSessionResponse `json:"session"`
	Auth    AuthResponse         `json:"auth"`
}
