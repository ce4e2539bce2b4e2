package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sigma-platform/authentication/internal/domain"
)

// TableSessionRepository persists table sessions. Updates addressed at an unknown
// id return a nil session with a nil error.
type TableSessionRepository interface {
	Create(ctx context.Context, tableID, orderID uuid.UUID) (*domain.TableSession, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.TableSession, error)
	FindActiveByTable(ctx context.Context, tableID uuid.UUID) (*domain.TableSession, error)
	Deactivate(ctx context.Context, id uuid.UUID) (*domain.TableSession, error)
	SetCheckoutID(ctx context.Context, id uuid.UUID, checkoutID *uuid.UUID) (*domain.TableSession, error)
}

const tableSessionColumns = `id, table_id, order_id, checkout_id, is_active, created_at`

type tableSessionRepository struct {
	pool *pgxpool.Pool
}

// NewTableSessionRepository returns a Postgres-backed implementation.
func NewTableSessionRepository(pool *pgxpool.Pool) TableSessionRepository {
	return &tableSessionRepository{pool: pool}
}

func (r *tableSessionRepository) Create(ctx context.Context, tableID, orderID uuid.UUID) (*domain.TableSession, error) {
	query := `
        INSERT INTO table_sessions (table_id, order_id)
        VALUES ($1, $2)
        RETURNING ` + tableSessionColumns

	session, err := scanTableSession(r.pool.QueryRow(ctx, query, tableID, orderID))
	if err != nil {
		return nil, fmt.Errorf("create table session: %w", err)
	}
	return session, nil
}

func (r *tableSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.TableSession, error) {
	query := `SELECT ` + tableSessionColumns + ` FROM table_sessions WHERE id=$1`
	return r.queryOptional(ctx, "find table session", query, id)
}

func (r *tableSessionRepository) FindActiveByTable(ctx context.Context, tableID uuid.UUID) (*domain.TableSession, error) {
	query := `
        SELECT ` + tableSessionColumns + `
        FROM table_sessions
        WHERE table_id=$1 AND is_active
        ORDER BY created_at DESC
        LIMIT 1`
	return r.queryOptional(ctx, "find active table session", query, tableID)
}

func (r *tableSessionRepository) Deactivate(ctx context.Context, id uuid.UUID) (*domain.TableSession, error) {
	query := `
        UPDATE table_sessions SET is_active=FALSE
        WHERE id=$1
        RETURNING ` + tableSessionColumns
	return r.queryOptional(ctx, "deactivate table session", query, id)
}

func (r *tableSessionRepository) SetCheckoutID(ctx context.Context, id uuid.UUID, checkoutID *uuid.UUID) (*domain.TableSession, error) {
	query := `
        UPDATE table_sessions SET checkout_id=$1
        WHERE id=$2
        RETURNING ` + tableSessionColumns
	return r.queryOptional(ctx, "set checkout id", query, checkoutID, id)
}

func (r *tableSessionRepository) queryOptional(ctx context.Context, op, query string, args ...any) (*domain.TableSession, error) {
	session, err := scanTableSession(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return session, nil
}

func scanTableSession(row pgx.Row) (*domain.TableSession, error) {
	var session domain.TableSession
	if err := row.Scan(
		&session.ID,
		&session.TableID,
		&session.OrderID,
		&session.CheckoutID,
		&session.IsActive,
		&session.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &session, nil
}
