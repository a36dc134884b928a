package repository

import (
	"context"

	"innkeeper/internal/domain/user"
	"innkeeper/internal/infra"
	"innkeeper/internal/infra/db"
	"innkeeper/internal/pkg/pgconv"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserRepository struct{}

func NewUserRepository() shared.UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error) {
	const q = `
		INSERT INTO users (id, email, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id pgtype.UUID
	err := tx.QueryRow(ctx, q,
		pgconv.UUIDToPgtype(u.ID()),
		u.Email().String(),
		u.PasswordHash(),
		u.Role().String(),
		u.IsActive(),
		pgconv.TimeToPgtype(u.CreatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}
	return uuid.UUID(id.Bytes), nil
}
