package queries

import (
	"context"
	"time"

	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

type ReviewView struct {
	ID            uuid.UUID `json:"id"`
	AuthorID      uuid.UUID `json:"author_id"`
	RoomID        uuid.UUID `json:"room_id"`
	RoomNumber    string    `json:"room_number"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	Images        []string  `json:"images"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ReviewListItem struct {
	ID         uuid.UUID `json:"id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Images     []string  `json:"images"`
	CreatedAt  time.Time `json:"created_at"`
}

// RoomRatingStatsView is the precomputed aggregate, rebuilt on every
// moderation decision from approved reviews only.
type RoomRatingStatsView struct {
	RoomID        uuid.UUID `json:"room_id"`
	ReviewCount   int64     `json:"review_count"`
	AverageRating float64   `json:"average_rating"`
	// RatingCounts holds per-star counts, index 0 = one star.
	RatingCounts []int64 `json:"rating_counts"`
}

type ReviewReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	ListApprovedByRoomFirstPage(ctx context.Context, roomID uuid.UUID, limit int) ([]*ReviewListItem, error)
	ListApprovedByRoomKeyset(ctx context.Context, roomID uuid.UUID, limit int, afterCreatedAt time.Time, afterID uuid.UUID) ([]*ReviewListItem, error)
	// ListPending is the moderation queue, oldest first.
	ListPending(ctx context.Context, limit int) ([]*ReviewView, error)
	GetRoomRatingStats(ctx context.Context, roomID uuid.UUID) (*RoomRatingStatsView, error)
}

type ReviewQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error)
	// ListApprovedByRoom is the public review feed: only approved reviews
	// ever leave this method.
	ListApprovedByRoom(ctx context.Context, roomID uuid.UUID, limit int, cursor *Cursor) ([]*ReviewListItem, *Cursor, error)
	ListPending(ctx context.Context, limit int) ([]*ReviewView, error)
	GetRoomRatingStats(ctx context.Context, roomID uuid.UUID) (*RoomRatingStatsView, error)
}

type reviewQueriesImpl struct {
	store ReviewReadStore
}

func NewReviewQueries(store ReviewReadStore) ReviewQueries {
	return &reviewQueriesImpl{store: store}
}

func (q *reviewQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReviewView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReviewNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *reviewQueriesImpl) ListApprovedByRoom(ctx context.Context, roomID uuid.UUID, limit int, cursor *Cursor) ([]*ReviewListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var items []*ReviewListItem
	var err error
	if cursor == nil || cursor.After == "" {
		items, err = q.store.ListApprovedByRoomFirstPage(ctx, roomID, limit+1)
	} else {
		afterCreatedAt, afterID, decodeErr := DecodeAfterCursor(cursor.After)
		if decodeErr != nil {
			return nil, nil, errs.Mark(decodeErr, errs.ErrValidation)
		}
		items, err = q.store.ListApprovedByRoomKeyset(ctx, roomID, limit+1, afterCreatedAt, afterID)
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return items, next, nil
}

func (q *reviewQueriesImpl) ListPending(ctx context.Context, limit int) ([]*ReviewView, error) {
	return q.store.ListPending(ctx, ValidateLimit(limit))
}

func (q *reviewQueriesImpl) GetRoomRatingStats(ctx context.Context, roomID uuid.UUID) (*RoomRatingStatsView, error) {
	stats, err := q.store.GetRoomRatingStats(ctx, roomID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// A room with no approved reviews has no stats row yet.
			return &RoomRatingStatsView{RoomID: roomID, RatingCounts: make([]int64, 5)}, nil
		}
		return nil, err
	}
	return stats, nil
}
