package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/sigma-platform/authentication/internal/domain"
	"github.com/sigma-platform/authentication/internal/events"
	"github.com/sigma-platform/authentication/internal/repository"
)

// TableSessionService holds the table-session state machine. Activity moves
// Active -> Inactive only; checkout toggles independently of activity.
type TableSessionService struct {
	sessions       repository.TableSessionRepository
	dispatcher     events.Dispatcher
	exclusiveTable bool
}

// TableSessionDependencies bundles requirements for the table-session service.
type TableSessionDependencies struct {
	SessionRepo repository.TableSessionRepository
	Dispatcher  events.Dispatcher
	// ExclusiveTable rejects a second active session on the same table.
	ExclusiveTable bool
}

// NewTableSessionService constructs the service.
func NewTableSessionService(deps TableSessionDependencies) *TableSessionService {
	return &TableSessionService{
		sessions:       deps.SessionRepo,
		dispatcher:     deps.Dispatcher,
		exclusiveTable: deps.ExclusiveTable,
	}
}

// CreateSession opens a session for a table and order.
func (s *TableSessionService) CreateSession(ctx context.Context, tableID, orderID uuid.UUID) (*domain.TableSession, error) {
	if s.exclusiveTable {
		// Best effort: two concurrent creates can both pass this check.
		occupied, err := s.sessions.FindActiveByTable(ctx, tableID)
		if err != nil {
			return nil, err
		}
		if occupied != nil {
			return nil, domain.ErrTableOccupied
		}
	}

	session, err := s.sessions.Create(ctx, tableID, orderID)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.NewEvent(events.EventTableSessionCreated, session.ID.String(),
		events.TableSessionCreatedPayload{TableID: session.TableID, OrderID: session.OrderID}))
	return session, nil
}

// FindByID returns the session, or nil when there is none.
func (s *TableSessionService) FindByID(ctx context.Context, id uuid.UUID) (*domain.TableSession, error) {
	return s.sessions.FindByID(ctx, id)
}

// DeactivateSession ends a session. Deactivating twice is a no-op that returns the
// same inactive record; an unknown id returns nil.
func (s *TableSessionService) DeactivateSession(ctx context.Context, id uuid.UUID) (*domain.TableSession, error) {
	session, err := s.sessions.Deactivate(ctx, id)
	if err != nil || session == nil {
		return session, err
	}

	publish(ctx, s.dispatcher, events.NewEvent(events.EventTableSessionDeactivated, session.ID.String(), nil))
	return session, nil
}

// SetCheckoutID attaches checkoutID, or detaches the checkout when it is nil.
func (s *TableSessionService) SetCheckoutID(ctx context.Context, id uuid.UUID, checkoutID *uuid.UUID) (*domain.TableSession, error) {
	session, err := s.sessions.SetCheckoutID(ctx, id, checkoutID)
	if err != nil || session == nil {
		return session, err
	}

	publish(ctx, s.dispatcher, events.NewEvent(events.EventTableSessionCheckoutChanged, session.ID.String(),
		events.CheckoutChangedPayload{CheckoutID: session.CheckoutID, IsActive: session.IsActive}))
	return session, nil
}
