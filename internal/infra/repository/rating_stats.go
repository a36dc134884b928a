package repository

import (
	"context"

	"innkeeper/internal/infra"
	"innkeeper/internal/infra/db"
	"innkeeper/internal/pkg/pgconv"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type RatingStatsRepository struct{}

func NewRatingStatsRepository() shared.RatingStatsRepository {
	return &RatingStatsRepository{}
}

// RecalcRoomRatingStats rebuilds the aggregate from approved reviews only.
// Rebuilding instead of adjusting means a rejected re-moderation cannot leave
// a stale rating behind.
func (r *RatingStatsRepository) RecalcRoomRatingStats(ctx context.Context, tx db.DBTX, roomID uuid.UUID) error {
	const q = `
		INSERT INTO room_rating_stats (room_id, review_count, average_rating, rating_counts, updated_at)
		SELECT $1, COUNT(*), COALESCE(AVG(rating), 0),
		       ARRAY[
		           COUNT(*) FILTER (WHERE rating = 1),
		           COUNT(*) FILTER (WHERE rating = 2),
		           COUNT(*) FILTER (WHERE rating = 3),
		           COUNT(*) FILTER (WHERE rating = 4),
		           COUNT(*) FILTER (WHERE rating = 5)
		       ],
		       now()
		FROM reviews
		WHERE room_id = $1 AND status = 'approved'
		ON CONFLICT (room_id) DO UPDATE
		SET review_count   = EXCLUDED.review_count,
		    average_rating = EXCLUDED.average_rating,
		    rating_counts  = EXCLUDED.rating_counts,
		    updated_at     = EXCLUDED.updated_at`

	if _, err := tx.Exec(ctx, q, pgconv.UUIDToPgtype(roomID)); err != nil {
		return infra.WrapRepoErr("failed to recalculate rating stats", err)
	}
	return nil
}
