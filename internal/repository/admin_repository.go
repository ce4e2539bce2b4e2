package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sigma-platform/authentication/internal/domain"
)

// PasswordHasher turns a plaintext password into a storable hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// AdminRepository persists admin accounts. Absent rows are reported as a nil
// admin with a nil error.
type AdminRepository interface {
	Create(ctx context.Context, email, name, password string) (*domain.Admin, error)
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	Rename(ctx context.Context, email, newName string) (*domain.Admin, error)
	Delete(ctx context.Context, email string) error
}

type adminRepository struct {
	pool   *pgxpool.Pool
	hasher PasswordHasher
}

// NewAdminRepository returns a Postgres-backed implementation.
func NewAdminRepository(pool *pgxpool.Pool, hasher PasswordHasher) AdminRepository {
	return &adminRepository{pool: pool, hasher: hasher}
}

func (r *adminRepository) Create(ctx context.Context, email, name, password string) (*domain.Admin, error) {
	hash, err := r.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	const query = `
        INSERT INTO admins (email, name, password_hash)
        VALUES ($1, $2, $3)
        RETURNING email, name, password_hash`

	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, email, name, hash).Scan(
		&admin.Email,
		&admin.Name,
		&admin.PasswordHash,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create admin: %w", domain.ErrAdminExists)
		}
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return &admin, nil
}

func (r *adminRepository) FindByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	const query = `
        SELECT email, name, password_hash
        FROM admins WHERE email=$1`

	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&admin.Email,
		&admin.Name,
		&admin.PasswordHash,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	return &admin, nil
}

func (r *adminRepository) Rename(ctx context.Context, email, newName string) (*domain.Admin, error) {
	const query = `
        UPDATE admins SET name=$1
        WHERE email=$2
        RETURNING email, name, password_hash`

	var admin domain.Admin
	if err := r.pool.QueryRow(ctx, query, newName, email).Scan(
		&admin.Email,
		&admin.Name,
		&admin.PasswordHash,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("rename admin: %w", err)
	}
	return &admin, nil
}

func (r *adminRepository) Delete(ctx context.Context, email string) error {
	const query = `DELETE FROM admins WHERE email=$1`
	if _, err := r.pool.Exec(ctx, query, email); err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	return nil
}
