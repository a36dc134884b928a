//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReviewStore struct {
	views map[uuid.UUID]*queries.ReviewView
	stats map[uuid.UUID]*queries.RoomRatingStatsView

	approved []*queries.ReviewListItem
}

func (f *fakeReviewStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ReviewView, error) {
	if v, ok := f.views[id]; ok {
		return v, nil
	}
	return nil, infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
}

func (f *fakeReviewStore) ListApprovedByRoomFirstPage(_ context.Context, _ uuid.UUID, limit int) ([]*queries.ReviewListItem, error) {
	if len(f.approved) > limit {
		return f.approved[:limit], nil
	}
	return f.approved, nil
}

func (f *fakeReviewStore) ListApprovedByRoomKeyset(_ context.Context, _ uuid.UUID, limit int, _ time.Time, _ uuid.UUID) ([]*queries.ReviewListItem, error) {
	if len(f.approved) > limit {
		return f.approved[:limit], nil
	}
	return f.approved, nil
}

func (f *fakeReviewStore) ListPending(_ context.Context, _ int) ([]*queries.ReviewView, error) {
	return nil, nil
}

func (f *fakeReviewStore) GetRoomRatingStats(_ context.Context, roomID uuid.UUID) (*queries.RoomRatingStatsView, error) {
	if s, ok := f.stats[roomID]; ok {
		return s, nil
	}
	return nil, infra.WrapRepoErr("stats not found", nil, infra.KindNotFound)
}

func TestReviewGetByID(t *testing.T) {
	view := &queries.ReviewView{ID: uuid.New(), Rating: 4}
	q := queries.NewReviewQueries(&fakeReviewStore{views: map[uuid.UUID]*queries.ReviewView{view.ID: view}})

	t.Run("found", func(t *testing.T) {
		got, err := q.GetByID(context.Background(), view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := q.GetByID(context.Background(), uuid.New())
		assert.ErrorIs(t, err, errs.ErrReviewNotFound)
	})
}

func TestListApprovedByRoom(t *testing.T) {
	approved := func(n int) []*queries.ReviewListItem {
		base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
		items := make([]*queries.ReviewListItem, n)
		for i := range items {
			items[i] = &queries.ReviewListItem{
				ID:        uuid.New(),
				Rating:    5,
				Comment:   "Spotless room and a great view.",
				CreatedAt: base.Add(-time.Duration(i) * time.Hour),
			}
		}
		return items
	}

	t.Run("full page yields a next cursor", func(t *testing.T) {
		q := queries.NewReviewQueries(&fakeReviewStore{approved: approved(4)})

		items, next, err := q.ListApprovedByRoom(context.Background(), uuid.New(), 3, nil)
		require.NoError(t, err)
		assert.Len(t, items, 3)
		assert.NotNil(t, next)
	})

	t.Run("short page means no more results", func(t *testing.T) {
		q := queries.NewReviewQueries(&fakeReviewStore{approved: approved(2)})

		items, next, err := q.ListApprovedByRoom(context.Background(), uuid.New(), 3, nil)
		require.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Nil(t, next)
	})

	t.Run("garbage cursor", func(t *testing.T) {
		q := queries.NewReviewQueries(&fakeReviewStore{})

		_, _, err := q.ListApprovedByRoom(context.Background(), uuid.New(), 3, &queries.Cursor{After: "garbage"})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestRoomRatingStats(t *testing.T) {
	roomID := uuid.New()
	stats := &queries.RoomRatingStatsView{
		RoomID:        roomID,
		ReviewCount:   12,
		AverageRating: 4.25,
		RatingCounts:  []int64{0, 1, 2, 2, 7},
	}
	q := queries.NewReviewQueries(&fakeReviewStore{stats: map[uuid.UUID]*queries.RoomRatingStatsView{roomID: stats}})

	t.Run("existing aggregate", func(t *testing.T) {
		got, err := q.GetRoomRatingStats(context.Background(), roomID)
		require.NoError(t, err)
		assert.Equal(t, int64(12), got.ReviewCount)
		assert.InDelta(t, 4.25, got.AverageRating, 0.001)
		assert.Equal(t, []int64{0, 1, 2, 2, 7}, got.RatingCounts)
	})

	t.Run("room without approved reviews reads as zero", func(t *testing.T) {
		other := uuid.New()
		got, err := q.GetRoomRatingStats(context.Background(), other)
		require.NoError(t, err)
		assert.Equal(t, other, got.RoomID)
		assert.Equal(t, int64(0), got.ReviewCount)
		assert.Zero(t, got.AverageRating)
		assert.Equal(t, []int64{0, 0, 0, 0, 0}, got.RatingCounts)
	})
}
