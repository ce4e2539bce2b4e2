package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sigma-platform/authentication/internal/domain"
	"github.com/sigma-platform/authentication/internal/events"
	"github.com/sigma-platform/authentication/internal/repository"
	"github.com/sigma-platform/authentication/internal/service"
)

const (
	testEmail    = "a@x.com"
	testName     = "asdf"
	testPassword = "Secr3t!2"
)

func newMemoryAdminService(t *testing.T) (*service.AdminService, *recordingDispatcher) {
	t.Helper()
	hasher := testHasher()
	dispatcher := &recordingDispatcher{}
	svc := service.NewAdminService(service.AdminDependencies{
		AdminRepo:  repository.NewMemoryAdminRepository(hasher),
		Verifier:   hasher,
		Dispatcher: dispatcher,
	})
	return svc, dispatcher
}

func TestAdminService_RegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	svc, dispatcher := newMemoryAdminService(t)

	admin, err := svc.RegisterAdmin(ctx, testEmail, testName, testPassword)
	require.NoError(t, err)
	assert.Equal(t, testEmail, admin.Email)

	found, err := svc.FindOne(ctx, testEmail)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.NotEqual(t, testPassword, found.PasswordHash)

	assert.NoError(t, svc.Authenticate(ctx, testEmail, testPassword))
	assert.ErrorIs(t, svc.Authenticate(ctx, testEmail, "wrong"), domain.ErrInvalidCredentials)
	assert.Equal(t, []events.EventType{events.EventAdminRegistered}, dispatcher.types())
}

func TestAdminService_AuthenticateDoesNotRevealAbsence(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryAdminService(t)
	_, err := svc.RegisterAdmin(ctx, testEmail, testName, testPassword)
	require.NoError(t, err)

	wrongPassword := svc.Authenticate(ctx, testEmail, "wrong")
	unknownEmail := svc.Authenticate(ctx, "nobody@x.com", testPassword)

	assert.ErrorIs(t, wrongPassword, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, domain.ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAdminService_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryAdminService(t)

	_, err := svc.RegisterAdmin(ctx, testEmail, testName, testPassword)
	require.NoError(t, err)

	_, err = svc.RegisterAdmin(ctx, testEmail, "someone else", "An0ther!pass")
	assert.ErrorIs(t, err, domain.ErrAdminExists)
}

func TestAdminService_RegisterConcurrentDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, _ := newMemoryAdminService(t)

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.RegisterAdmin(ctx, testEmail, fmt.Sprintf("name-%d", i), testPassword)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrAdminExists)
	}
	assert.Equal(t, 1, succeeded)
}

func TestAdminService_RegisterLateUniqueViolation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	svc := service.NewAdminService(service.AdminDependencies{AdminRepo: repo, Verifier: testHasher()})

	// The pre-check sees nothing, a concurrent insert wins, the store rejects ours.
	repo.On("FindByEmail", ctx, testEmail).Return(nil, nil)
	repo.On("Create", ctx, testEmail, testName, testPassword).
		Return(nil, fmt.Errorf("create admin: %w", domain.ErrAdminExists))

	_, err := svc.RegisterAdmin(ctx, testEmail, testName, testPassword)
	assert.ErrorIs(t, err, domain.ErrAdminExists)
	repo.AssertExpectations(t)
}

func TestAdminService_RegisterHashingFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	svc := service.NewAdminService(service.AdminDependencies{AdminRepo: repo, Verifier: testHasher()})

	repo.On("FindByEmail", ctx, testEmail).Return(nil, nil)
	repo.On("Create", ctx, testEmail, testName, testPassword).
		Return(nil, fmt.Errorf("%w: salt: entropy exhausted", domain.ErrHashing))

	_, err := svc.RegisterAdmin(ctx, testEmail, testName, testPassword)
	assert.ErrorIs(t, err, domain.ErrHashing)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestAdminService_RepositoryErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	dbErr := errors.New("connection refused")
	repo := new(MockAdminRepository)
	svc := service.NewAdminService(service.AdminDependencies{AdminRepo: repo, Verifier: testHasher()})

	repo.On("FindByEmail", ctx, mock.Anything).Return(nil, dbErr)
	repo.On("Rename", ctx, testEmail, "new").Return(nil, dbErr)
	repo.On("Delete", ctx, testEmail).Return(dbErr)

	_, err := svc.RegisterAdmin(ctx, testEmail, testName, testPassword)
	assert.ErrorIs(t, err, dbErr)

	err = svc.Authenticate(ctx, testEmail, testPassword)
	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.FindOne(ctx, testEmail)
	assert.ErrorIs(t, err, dbErr)

	_, err = svc.UpdateOne(ctx, testEmail, "new")
	assert.ErrorIs(t, err, dbErr)

	assert.ErrorIs(t, svc.DeleteOne(ctx, testEmail), dbErr)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAdminService_AuthenticateCorruptHash(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	svc := service.NewAdminService(service.AdminDependencies{AdminRepo: repo, Verifier: testHasher()})

	repo.On("FindByEmail", ctx, testEmail).Return(&domain.Admin{Email: testEmail, PasswordHash: "not-a-hash"}, nil)

	err := svc.Authenticate(ctx, testEmail, testPassword)
	assert.ErrorIs(t, err, domain.ErrInvalidHash)
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAdminService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, dispatcher := newMemoryAdminService(t)

	_, err := svc.RegisterAdmin(ctx, testEmail, testName, testPassword)
	require.NoError(t, err)

	updated, err := svc.UpdateOne(ctx, testEmail, "renamed")
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "renamed", updated.Name)

	missing, err := svc.UpdateOne(ctx, "nobody@x.com", "renamed")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, svc.DeleteOne(ctx, testEmail))
	found, err := svc.FindOne(ctx, testEmail)
	require.NoError(t, err)
	assert.Nil(t, found)
	assert.ErrorIs(t, svc.Authenticate(ctx, testEmail, testPassword), domain.ErrInvalidCredentials)

	// Deletion is permanent; the email can be registered again.
	_, err = svc.RegisterAdmin(ctx, testEmail, testName, testPassword)
	assert.NoError(t, err)

	assert.Equal(t, []events.EventType{
		events.EventAdminRegistered,
		events.EventAdminDeleted,
		events.EventAdminRegistered,
	}, dispatcher.types())
}

func TestAdminService_AuthenticateUnknownEmailStillVerifies(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	verifier := new(MockPasswordVerifier)
	svc := service.NewAdminService(service.AdminDependencies{AdminRepo: repo, Verifier: verifier})

	repo.On("FindByEmail", ctx, "nobody@x.com").Return(nil, nil)
	verifier.On("Hash", mock.Anything).Return("$argon2id$placeholder", nil).Once()
	verifier.On("Compare", "$argon2id$placeholder", testPassword).Return(domain.ErrInvalidCredentials).Twice()

	assert.ErrorIs(t, svc.Authenticate(ctx, "nobody@x.com", testPassword), domain.ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Authenticate(ctx, "nobody@x.com", testPassword), domain.ErrInvalidCredentials)

	// The placeholder hash is derived once and reused.
	verifier.AssertNumberOfCalls(t, "Hash", 1)
	verifier.AssertNumberOfCalls(t, "Compare", 2)
}

func TestAdminService_AuthenticateUnknownEmailIgnoresPlaceholderResult(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	verifier := new(MockPasswordVerifier)
	svc := service.NewAdminService(service.AdminDependencies{AdminRepo: repo, Verifier: verifier})

	repo.On("FindByEmail", ctx, "nobody@x.com").Return(nil, nil)
	verifier.On("Hash", mock.Anything).Return("$argon2id$placeholder", nil)
	// Even a "match" against the placeholder must not authenticate an absent account.
	verifier.On("Compare", mock.Anything, mock.Anything).Return(nil)

	assert.ErrorIs(t, svc.Authenticate(ctx, "nobody@x.com", "absent-account-placeholder"), domain.ErrInvalidCredentials)
}

func TestAdminService_AuthenticateUnknownEmailHashFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockAdminRepository)
	verifier := new(MockPasswordVerifier)
	svc := service.NewAdminService(service.AdminDependencies{AdminRepo: repo, Verifier: verifier})

	repo.On("FindByEmail", ctx, "nobody@x.com").Return(nil, nil)
	verifier.On("Hash", mock.Anything).Return("", domain.ErrHashing)

	assert.ErrorIs(t, svc.Authenticate(ctx, "nobody@x.com", testPassword), domain.ErrInvalidCredentials)
	verifier.AssertNotCalled(t, "Compare", mock.Anything, mock.Anything)
}
