package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sigma-platform/authentication/internal/domain"
	"github.com/sigma-platform/authentication/internal/events"
	"github.com/sigma-platform/authentication/internal/repository"
)

// PasswordVerifier checks a plaintext password against a stored hash. Compare
// returns domain.ErrInvalidCredentials on a mismatch.
type PasswordVerifier interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// absentAccountPassword is hashed once and compared against when an email is not
// registered, so unknown emails cost the same key derivation as wrong passwords.
const absentAccountPassword = "absent-account-placeholder"

// AdminService holds the business rules for admin accounts. It keeps no state of
// its own; concurrent calls are safe as long as the repository is.
type AdminService struct {
	admins     repository.AdminRepository
	verifier   PasswordVerifier
	dispatcher events.Dispatcher

	dummyOnce sync.Once
	dummyHash string
}

// AdminDependencies encapsulates requirements for the admin service.
type AdminDependencies struct {
	AdminRepo  repository.AdminRepository
	Verifier   PasswordVerifier
	Dispatcher events.Dispatcher
}

// NewAdminService builds the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	return &AdminService{
		admins:     deps.AdminRepo,
		verifier:   deps.Verifier,
		dispatcher: deps.Dispatcher,
	}
}

// RegisterAdmin creates a new admin. The lookup only produces an early, friendly
// ErrAdminExists; the repository's uniqueness check is authoritative and a
// concurrent insert still surfaces as ErrAdminExists.
func (s *AdminService) RegisterAdmin(ctx context.Context, email, name, password string) (*domain.Admin, error) {
	existing, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAdminExists
	}

	admin, err := s.admins.Create(ctx, email, name, password)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.dispatcher, events.NewEvent(events.EventAdminRegistered, admin.Email, events.AdminPayload{Name: admin.Name}))
	return admin, nil
}

// FindOne returns the admin for email, or nil when there is none.
func (s *AdminService) FindOne(ctx context.Context, email string) (*domain.Admin, error) {
	return s.admins.FindByEmail(ctx, email)
}

// Authenticate verifies an email/password pair. Unknown email and wrong password
// both return domain.ErrInvalidCredentials.
func (s *AdminService) Authenticate(ctx context.Context, email, password string) error {
	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if admin == nil {
		s.compareAbsent(password)
		return domain.ErrInvalidCredentials
	}

	if err := s.verifier.Compare(admin.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return domain.ErrInvalidCredentials
		}
		return fmt.Errorf("verify password: %w", err)
	}
	return nil
}

// compareAbsent burns one verification against a hash made with the same
// parameters as real accounts. Its result is discarded.
func (s *AdminService) compareAbsent(password string) {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.verifier.Hash(absentAccountPassword)
	})
	if s.dummyHash == "" {
		return
	}
	_ = s.verifier.Compare(s.dummyHash, password)
}

// UpdateOne renames an admin. It returns nil when the admin does not exist.
func (s *AdminService) UpdateOne(ctx context.Context, email, newName string) (*domain.Admin, error) {
	return s.admins.Rename(ctx, email, newName)
}

// DeleteOne permanently removes an admin.
func (s *AdminService) DeleteOne(ctx context.Context, email string) error {
	if err := s.admins.Delete(ctx, email); err != nil {
		return err
	}
	publish(ctx, s.dispatcher, events.NewEvent(events.EventAdminDeleted, email, nil))
	return nil
}

// publish is best effort: the store write already happened.
func publish(ctx context.Context, dispatcher events.Dispatcher, event events.Event) {
	if dispatcher == nil {
		return
	}
	_ = dispatcher.Publish(ctx, event)
}
