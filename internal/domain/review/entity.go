package review

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrCommentTooShort = errors.New("comment is too short")
	ErrCommentTooLong  = errors.New("comment exceeds maximum length")
	ErrTooManyImages   = errors.New("too many attached images")
	ErrInvalidDecision = errors.New("invalid moderation decision")
)

type Review struct {
	id            uuid.UUID
	authorID      uuid.UUID
	roomID        uuid.UUID
	reservationID uuid.UUID
	rating        Rating
	comment       Comment
	images        []string
	status        ModerationStatus
	createdAt     time.Time
	updatedAt     time.Time
}

// NewReview creates a submission awaiting moderation. Eligibility (completed
// stay, owning guest, no duplicate) is checked by the usecase before this is
// called.
func NewReview(id, authorID, roomID, reservationID uuid.UUID, ratingValue int, commentText string, images []string, now time.Time) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	if len(images) > MaxImages {
		return nil, ErrTooManyImages
	}

	if id == uuid.Nil {
		id = uuid.New()
	}

	return &Review{
		id:            id,
		authorID:      authorID,
		roomID:        roomID,
		reservationID: reservationID,
		rating:        rating,
		comment:       comment,
		images:        images,
		status:        ModerationPending,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func ReconstructReview(id, authorID, roomID, reservationID uuid.UUID, rating Rating, comment Comment, images []string, status ModerationStatus, createdAt, updatedAt time.Time) *Review {
	return &Review{
		id:            id,
		authorID:      authorID,
		roomID:        roomID,
		reservationID: reservationID,
		rating:        rating,
		comment:       comment,
		images:        images,
		status:        status,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// Moderate applies an admin decision. Re-moderating is allowed (approve after
// reject and vice versa); only the admin side ever mutates a review after
// submission.
func (r *Review) Moderate(decision Decision, now time.Time) error {
	if !decision.IsValid() {
		return ErrInvalidDecision
	}
	r.status = decision.Status()
	r.updatedAt = now
	return nil
}

func (r *Review) IsApproved() bool {
	return r.status == ModerationApproved
}

func (r *Review) ID() uuid.UUID            { return r.id }
func (r *Review) AuthorID() uuid.UUID      { return r.authorID }
func (r *Review) RoomID() uuid.UUID        { return r.roomID }
func (r *Review) ReservationID() uuid.UUID { return r.reservationID }
func (r *Review) Rating() Rating           { return r.rating }
func (r *Review) Comment() Comment         { return r.comment }
func (r *Review) Images() []string         { return r.images }
func (r *Review) Status() ModerationStatus { return r.status }
func (r *Review) CreatedAt() time.Time     { return r.createdAt }
func (r *Review) UpdatedAt() time.Time     { return r.updatedAt }
