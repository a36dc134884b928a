package commands

import (
	"context"

	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/domain/review"
	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type SubmitReviewInput struct {
	ReservationID uuid.UUID
	Rating        int
	Comment       string
	Images        []string
}

type ModerateReviewInput struct {
	ReviewID uuid.UUID
	Decision string
}

type ReviewCommands interface {
	// Submit accepts a review from the guest who completed the stay. The
	// review starts in pending moderation and is invisible publicly until
	// approved.
	Submit(ctx context.Context, actor shared.Actor, in SubmitReviewInput) (uuid.UUID, error)
	// Moderate applies an approve/reject decision and rebuilds the room's
	// rating aggregate in the same transaction.
	Moderate(ctx context.Context, actor shared.Actor, in ModerateReviewInput) error
}

type reviewCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewReviewCommands(uow shared.UnitOfWork, clk clock.Clock) ReviewCommands {
	return &reviewCommandsImpl{uow: uow, clock: clk}
}

func (c *reviewCommandsImpl) Submit(ctx context.Context, actor shared.Actor, in SubmitReviewInput) (uuid.UUID, error) {
	var reviewID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		resSnap, err := tx.Reads().ReservationByID(ctx, in.ReservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrReservationNotFound)
			}
			return err
		}

		// Only the guest who stayed may review; walk-in reservations have no
		// account to review from.
		if resSnap.UserID == nil || *resSnap.UserID != actor.ID {
			return errs.Mark(errs.New("reservation belongs to another guest"), errs.ErrForbidden)
		}
		if reservation.Status(resSnap.Status) != reservation.StatusCompleted {
			return errs.Mark(errs.New("stay has not been completed"), errs.ErrReviewNotEligible)
		}

		exists, err := tx.Reviews().ExistsForReservation(ctx, tx.DB(), in.ReservationID)
		if err != nil {
			return err
		}
		if exists {
			return errs.Mark(errs.New("reservation already reviewed"), errs.ErrDuplicateReview)
		}

		rev, err := review.NewReview(
			uuid.Nil, actor.ID, resSnap.RoomID, in.ReservationID,
			in.Rating, in.Comment, in.Images, c.clock.Now(),
		)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		id, err := tx.Reviews().Create(ctx, tx.DB(), rev)
		if err != nil {
			// The unique index on reservation_id closes the race between the
			// existence check and the insert.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrDuplicateReview)
			}
			return err
		}
		reviewID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return reviewID, nil
}

func (c *reviewCommandsImpl) Moderate(ctx context.Context, actor shared.Actor, in ModerateReviewInput) error {
	if !actor.IsAdmin() {
		return errs.Mark(errs.New("moderation is staff only"), errs.ErrForbidden)
	}

	decision := review.Decision(in.Decision)
	if !decision.IsValid() {
		return errs.Mark(review.ErrInvalidDecision, errs.ErrValidation)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReviewByID(ctx, in.ReviewID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrReviewNotFound)
			}
			return err
		}

		now := c.clock.Now()
		if err := tx.Reviews().UpdateModeration(ctx, tx.DB(), snap.ID, decision.Status(), now); err != nil {
			return err
		}

		// The aggregate is always rebuilt from approved reviews, so rejecting
		// a previously approved review pulls its rating back out.
		return tx.RatingStats().RecalcRoomRatingStats(ctx, tx.DB(), snap.RoomID)
	})
}
