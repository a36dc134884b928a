package repository

import (
	"context"
	"time"

	"innkeeper/internal/domain/review"
	"innkeeper/internal/infra"
	"innkeeper/internal/infra/db"
	"innkeeper/internal/pkg/pgconv"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReviewRepository struct{}

func NewReviewRepository() shared.ReviewRepository {
	return &ReviewRepository{}
}

func (r *ReviewRepository) Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error) {
	const q = `
		INSERT INTO reviews (
			id, reservation_id, room_id, author_id,
			rating, comment, images, status,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	var id pgtype.UUID
	err := tx.QueryRow(ctx, q,
		pgconv.UUIDToPgtype(rev.ID()),
		pgconv.UUIDToPgtype(rev.ReservationID()),
		pgconv.UUIDToPgtype(rev.RoomID()),
		pgconv.UUIDToPgtype(rev.AuthorID()),
		rev.Rating().Value(),
		rev.Comment().String(),
		rev.Images(),
		string(rev.Status()),
		pgconv.TimeToPgtype(rev.CreatedAt()),
		pgconv.TimeToPgtype(rev.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create review", err)
	}
	return uuid.UUID(id.Bytes), nil
}

func (r *ReviewRepository) UpdateModeration(ctx context.Context, tx db.DBTX, id uuid.UUID, status review.ModerationStatus, updatedAt time.Time) error {
	const q = `
		UPDATE reviews
		SET status = $2, updated_at = $3
		WHERE id = $1`

	tag, err := tx.Exec(ctx, q, pgconv.UUIDToPgtype(id), string(status), pgconv.TimeToPgtype(updatedAt))
	if err != nil {
		return infra.WrapRepoErr("failed to update review moderation", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ReviewRepository) ExistsForReservation(ctx context.Context, tx db.DBTX, reservationID uuid.UUID) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM reviews WHERE reservation_id = $1)`

	var exists bool
	if err := tx.QueryRow(ctx, q, pgconv.UUIDToPgtype(reservationID)).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check review existence", err)
	}
	return exists, nil
}
