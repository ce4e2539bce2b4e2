package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sigma-platform/authentication/internal/domain"
)

// MemoryAdminRepository is a dev-only fallback when no database is configured.
// It enforces email uniqueness the same way the admins table does.
type MemoryAdminRepository struct {
	mu     sync.RWMutex
	hasher PasswordHasher
	admins map[string]domain.Admin
}

// NewMemoryAdminRepository constructs an in-memory AdminRepository.
func NewMemoryAdminRepository(hasher PasswordHasher) *MemoryAdminRepository {
	return &MemoryAdminRepository{hasher: hasher, admins: make(map[string]domain.Admin)}
}

func (r *MemoryAdminRepository) Create(ctx context.Context, email, name, password string) (*domain.Admin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.admins[email]; exists {
		return nil, fmt.Errorf("create admin: %w", domain.ErrAdminExists)
	}
	admin := domain.Admin{Email: email, Name: name, PasswordHash: hash}
	r.admins[email] = admin
	return &admin, nil
}

func (r *MemoryAdminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	admin, ok := r.admins[email]
	if !ok {
		return nil, nil
	}
	return &admin, nil
}

func (r *MemoryAdminRepository) Rename(ctx context.Context, email, newName string) (*domain.Admin, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[email]
	if !ok {
		return nil, nil
	}
	admin.Name = newName
	r.admins[email] = admin
	return &admin, nil
}

func (r *MemoryAdminRepository) Delete(ctx context.Context, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.admins, email)
	return nil
}

// MemoryTableSessionRepository is a dev-only fallback when no database is configured.
type MemoryTableSessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]domain.TableSession
	now      func() time.Time
}

// NewMemoryTableSessionRepository constructs an in-memory TableSessionRepository.
func NewMemoryTableSessionRepository() *MemoryTableSessionRepository {
	return &MemoryTableSessionRepository{
		sessions: make(map[uuid.UUID]domain.TableSession),
		now:      time.Now,
	}
}

func (r *MemoryTableSessionRepository) Create(ctx context.Context, tableID, orderID uuid.UUID) (*domain.TableSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	session := domain.TableSession{
		ID:        uuid.New(),
		TableID:   tableID,
		OrderID:   orderID,
		IsActive:  true,
		CreatedAt: r.now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return copySession(session), nil
}

func (r *MemoryTableSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TableSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	return copySession(session), nil
}

func (r *MemoryTableSessionRepository) FindActiveByTable(ctx context.Context, tableID uuid.UUID) (*domain.TableSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *domain.TableSession
	for _, session := range r.sessions {
		if session.TableID != tableID || !session.IsActive {
			continue
		}
		if latest == nil || session.CreatedAt.After(latest.CreatedAt) {
			latest = copySession(session)
		}
	}
	return latest, nil
}

func (r *MemoryTableSessionRepository) Deactivate(ctx context.Context, id uuid.UUID) (*domain.TableSession, error) {
	return r.update(ctx, id, func(s *domain.TableSession) { s.IsActive = false })
}

func (r *MemoryTableSessionRepository) SetCheckoutID(ctx context.Context, id uuid.UUID, checkoutID *uuid.UUID) (*domain.TableSession, error) {
	return r.update(ctx, id, func(s *domain.TableSession) {
		if checkoutID == nil {
			s.CheckoutID = nil
			return
		}
		c := *checkoutID
		s.CheckoutID = &c
	})
}

func (r *MemoryTableSessionRepository) update(ctx context.Context, id uuid.UUID, apply func(*domain.TableSession)) (*domain.TableSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	apply(&session)
	r.sessions[id] = session
	return copySession(session), nil
}

// copySession detaches the checkout pointer from the stored row.
func copySession(s domain.TableSession) *domain.TableSession {
	if s.CheckoutID != nil {
		c := *s.CheckoutID
		s.CheckoutID = &c
	}
	return &s
}
