//go:build unit || e2e

package builder

import (
	"time"

	domreview "innkeeper/internal/domain/review"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	AuthorID      uuid.UUID
	RoomID        uuid.UUID
	ReservationID uuid.UUID
	Rating        int
	Comment       string
	Images        []string
	CreatedAt     time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		AuthorID:      uuid.New(),
		RoomID:        uuid.New(),
		ReservationID: uuid.New(),
		Rating:        5,
		Comment:       "Spotless room and a great view.",
		CreatedAt:     time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
	}
}

func (b *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(b)
	return b
}

func (b *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	b.Rating = rating
	return b
}

func (b *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	b.Comment = comment
	return b
}

func (b *ReviewBuilder) WithImages(images []string) *ReviewBuilder {
	b.Images = images
	return b
}

func (b *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	return domreview.NewReview(uuid.Nil, b.AuthorID, b.RoomID, b.ReservationID, b.Rating, b.Comment, b.Images, b.CreatedAt)
}
