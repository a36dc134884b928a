//go:build unit

package review_test

import (
	"strings"
	"testing"
	"time"

	"innkeeper/internal/domain/review"
	"innkeeper/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ReviewBuilder)
	errIs  error
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := builder.NewReviewBuilder()
			if tc.mutate != nil {
				tc.mutate(b)
			}
			actual, err := b.BuildDomain()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				assert.Nil(t, actual)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, actual)
		})
	}
}

func TestReview(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewReviewBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, review.ModerationPending, actual.Status())
		assert.False(t, actual.IsApproved())
		assert.Equal(t, 5, actual.Rating().Value())
		assert.Equal(t, "Spotless room and a great view.", actual.Comment().String())
	})

	t.Run("rating validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "below minimum rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(0) },
				errIs:  review.ErrInvalidRating,
			},
			{
				name:   "minimum valid rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(1) },
			},
			{
				name:   "maximum valid rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(5) },
			},
			{
				name:   "above maximum rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(6) },
				errIs:  review.ErrInvalidRating,
			},
		})
	})

	t.Run("comment validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "minimum length comment",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment("Ok!") },
			},
			{
				name: "maximum length comment",
				mutate: func(b *builder.ReviewBuilder) {
					b.WithComment(strings.Repeat("a", review.MaxCommentLength))
				},
			},
			{
				name:   "too short after trimming",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment("  a  ") },
				errIs:  review.ErrCommentTooShort,
			},
			{
				name: "over maximum length",
				mutate: func(b *builder.ReviewBuilder) {
					b.WithComment(strings.Repeat("a", review.MaxCommentLength+1))
				},
				errIs: review.ErrCommentTooLong,
			},
		})
	})

	t.Run("image validation", func(t *testing.T) {
		urls := make([]string, review.MaxImages+1)
		for i := range urls {
			urls[i] = "https://img.example.com/x.jpg"
		}
		runCases(t, []testCase{
			{
				name:   "maximum image count",
				mutate: func(b *builder.ReviewBuilder) { b.WithImages(urls[:review.MaxImages]) },
			},
			{
				name:   "too many images",
				mutate: func(b *builder.ReviewBuilder) { b.WithImages(urls) },
				errIs:  review.ErrTooManyImages,
			},
		})
	})
}

func TestModerate(t *testing.T) {
	now := time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)

	t.Run("approve", func(t *testing.T) {
		rev, err := builder.NewReviewBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, rev.Moderate(review.DecisionApprove, now))
		assert.Equal(t, review.ModerationApproved, rev.Status())
		assert.True(t, rev.IsApproved())
		assert.Equal(t, now, rev.UpdatedAt())
	})

	t.Run("reject", func(t *testing.T) {
		rev, err := builder.NewReviewBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, rev.Moderate(review.DecisionReject, now))
		assert.Equal(t, review.ModerationRejected, rev.Status())
	})

	t.Run("decision can be reversed", func(t *testing.T) {
		rev, err := builder.NewReviewBuilder().BuildDomain()
		require.NoError(t, err)

		require.NoError(t, rev.Moderate(review.DecisionApprove, now))
		require.NoError(t, rev.Moderate(review.DecisionReject, now.Add(time.Hour)))
		assert.Equal(t, review.ModerationRejected, rev.Status())
	})

	t.Run("invalid decision", func(t *testing.T) {
		rev, err := builder.NewReviewBuilder().BuildDomain()
		require.NoError(t, err)

		err = rev.Moderate(review.Decision("escalate"), now)
		assert.ErrorIs(t, err, review.ErrInvalidDecision)
		assert.Equal(t, review.ModerationPending, rev.Status())
	})
}
