package service_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/sigma-platform/authentication/internal/auth"
	"github.com/sigma-platform/authentication/internal/domain"
	"github.com/sigma-platform/authentication/internal/events"
)

type MockAdminRepository struct {
	mock.Mock
}

func (m *MockAdminRepository) Create(ctx context.Context, email, name, password string) (*domain.Admin, error) {
	args := m.Called(ctx, email, name, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *MockAdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *MockAdminRepository) Rename(ctx context.Context, email, newName string) (*domain.Admin, error) {
	args := m.Called(ctx, email, newName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Admin), args.Error(1)
}

func (m *MockAdminRepository) Delete(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type MockTableSessionRepository struct {
	mock.Mock
}

func (m *MockTableSessionRepository) Create(ctx context.Context, tableID, orderID uuid.UUID) (*domain.TableSession, error) {
	args := m.Called(ctx, tableID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TableSession), args.Error(1)
}

func (m *MockTableSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TableSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TableSession), args.Error(1)
}

func (m *MockTableSessionRepository) FindActiveByTable(ctx context.Context, tableID uuid.UUID) (*domain.TableSession, error) {
	args := m.Called(ctx, tableID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TableSession), args.Error(1)
}

func (m *MockTableSessionRepository) Deactivate(ctx context.Context, id uuid.UUID) (*domain.TableSession, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TableSession), args.Error(1)
}

func (m *MockTableSessionRepository) SetCheckoutID(ctx context.Context, id uuid.UUID, checkoutID *uuid.UUID) (*domain.TableSession, error) {
	args := m.Called(ctx, id, checkoutID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TableSession), args.Error(1)
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) types() []events.EventType {
	out := make([]events.EventType, 0, len(d.events))
	for _, e := range d.events {
		out = append(out, e.Type)
	}
	return out
}

func testHasher() *auth.PasswordHasher {
	return auth.NewPasswordHasher(auth.Argon2idParams{MemoryKiB: 1024, Iterations: 1, Parallelism: 1})
}

type MockPasswordVerifier struct {
	mock.Mock
}

func (m *MockPasswordVerifier) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordVerifier) Compare(hash, password string) error {
	args := m.Called(hash, password)
	return args.Error(0)
}
