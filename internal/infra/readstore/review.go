package readstore

import (
	"context"
	"time"

	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/pgconv"
	"innkeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewReadStore struct {
	pool *pgxpool.Pool
}

func NewReviewReadStore(pool *pgxpool.Pool) queries.ReviewReadStore {
	return &ReviewReadStore{pool: pool}
}

func (s *ReviewReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	const q = `
		SELECT rev.id, rev.author_id, rev.room_id, r.number, rev.reservation_id,
		       rev.rating, rev.comment, rev.images, rev.status,
		       rev.created_at, rev.updated_at
		FROM reviews rev
		JOIN rooms r ON r.id = rev.room_id
		WHERE rev.id = $1`

	view, err := scanReviewView(s.pool.QueryRow(ctx, q, pgconv.UUIDToPgtype(id)))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, err
	}
	return view, nil
}

// The public feed only ever selects approved reviews; pending and rejected
// rows are invisible no matter what the caller asks for.
func (s *ReviewReadStore) ListApprovedByRoomFirstPage(ctx context.Context, roomID uuid.UUID, limit int) ([]*queries.ReviewListItem, error) {
	const q = `
		SELECT rev.id, res.guest_name, rev.rating, rev.comment, rev.images, rev.created_at
		FROM reviews rev
		JOIN reservations res ON res.id = rev.reservation_id
		WHERE rev.room_id = $1 AND rev.status = 'approved'
		ORDER BY rev.created_at DESC, rev.id DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, q, pgconv.UUIDToPgtype(roomID), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	return scanReviewItems(rows)
}

func (s *ReviewReadStore) ListApprovedByRoomKeyset(ctx context.Context, roomID uuid.UUID, limit int, afterCreatedAt time.Time, afterID uuid.UUID) ([]*queries.ReviewListItem, error) {
	const q = `
		SELECT rev.id, res.guest_name, rev.rating, rev.comment, rev.images, rev.created_at
		FROM reviews rev
		JOIN reservations res ON res.id = rev.reservation_id
		WHERE rev.room_id = $1 AND rev.status = 'approved'
		  AND (rev.created_at, rev.id) < ($2, $3)
		ORDER BY rev.created_at DESC, rev.id DESC
		LIMIT $4`

	rows, err := s.pool.Query(ctx, q,
		pgconv.UUIDToPgtype(roomID),
		pgconv.TimeToPgtype(afterCreatedAt),
		pgconv.UUIDToPgtype(afterID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reviews", err)
	}
	return scanReviewItems(rows)
}

// ListPending is the moderation queue, oldest submissions first.
func (s *ReviewReadStore) ListPending(ctx context.Context, limit int) ([]*queries.ReviewView, error) {
	const q = `
		SELECT rev.id, rev.author_id, rev.room_id, r.number, rev.reservation_id,
		       rev.rating, rev.comment, rev.images, rev.status,
		       rev.created_at, rev.updated_at
		FROM reviews rev
		JOIN rooms r ON r.id = rev.room_id
		WHERE rev.status = 'pending'
		ORDER BY rev.created_at, rev.id
		LIMIT $1`

	rows, err := s.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending reviews", err)
	}
	defer rows.Close()

	var views []*queries.ReviewView
	for rows.Next() {
		view, err := scanReviewView(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate review rows", err)
	}
	return views, nil
}

func (s *ReviewReadStore) GetRoomRatingStats(ctx context.Context, roomID uuid.UUID) (*queries.RoomRatingStatsView, error) {
	const q = `
		SELECT room_id, review_count, average_rating, rating_counts
		FROM room_rating_stats
		WHERE room_id = $1`

	var (
		id    pgtype.UUID
		stats queries.RoomRatingStatsView
	)
	err := s.pool.QueryRow(ctx, q, pgconv.UUIDToPgtype(roomID)).Scan(&id, &stats.ReviewCount, &stats.AverageRating, &stats.RatingCounts)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rating stats not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read rating stats", err)
	}
	stats.RoomID = uuid.UUID(id.Bytes)
	return &stats, nil
}

func scanReviewView(row pgx.Row) (*queries.ReviewView, error) {
	var (
		reviewID      pgtype.UUID
		authorID      pgtype.UUID
		roomID        pgtype.UUID
		reservationID pgtype.UUID
		createdAt     pgtype.Timestamptz
		updatedAt     pgtype.Timestamptz
		view          queries.ReviewView
	)
	err := row.Scan(
		&reviewID, &authorID, &roomID, &view.RoomNumber, &reservationID,
		&view.Rating, &view.Comment, &view.Images, &view.Status,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan review row", err)
	}

	view.ID = uuid.UUID(reviewID.Bytes)
	view.AuthorID = uuid.UUID(authorID.Bytes)
	view.RoomID = uuid.UUID(roomID.Bytes)
	view.ReservationID = uuid.UUID(reservationID.Bytes)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

func scanReviewItems(rows pgx.Rows) ([]*queries.ReviewListItem, error) {
	defer rows.Close()

	var items []*queries.ReviewListItem
	for rows.Next() {
		var (
			reviewID  pgtype.UUID
			createdAt pgtype.Timestamptz
			item      queries.ReviewListItem
		)
		if err := rows.Scan(&reviewID, &item.AuthorName, &item.Rating, &item.Comment, &item.Images, &createdAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan review row", err)
		}
		item.ID = uuid.UUID(reviewID.Bytes)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate review rows", err)
	}
	return items, nil
}
