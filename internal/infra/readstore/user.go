package readstore

import (
	"context"
	"strings"

	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/pgconv"
	"innkeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserReadStore struct {
	pool *pgxpool.Pool
}

func NewUserReadStore(pool *pgxpool.Pool) queries.UserReadStore {
	return &UserReadStore{pool: pool}
}

func (s *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	const q = `
		SELECT id, email, role, is_active, created_at
		FROM users
		WHERE id = $1`

	var (
		userID    pgtype.UUID
		createdAt pgtype.Timestamptz
		view      queries.UserView
	)
	err := s.pool.QueryRow(ctx, q, pgconv.UUIDToPgtype(id)).Scan(
		&userID, &view.Email, &view.Role, &view.IsActive, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user", err)
	}

	view.ID = uuid.UUID(userID.Bytes)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, nil
}

func (s *UserReadStore) FindCredentialsByEmail(ctx context.Context, email string) (*queries.CredentialsView, error) {
	const q = `
		SELECT id, email, role, is_active, password_hash
		FROM users
		WHERE email = $1`

	var (
		userID pgtype.UUID
		view   queries.CredentialsView
	)
	err := s.pool.QueryRow(ctx, q, strings.TrimSpace(strings.ToLower(email))).Scan(
		&userID, &view.Email, &view.Role, &view.IsActive, &view.PasswordHash,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user credentials", err)
	}

	view.ID = uuid.UUID(userID.Bytes)
	return &view, nil
}
