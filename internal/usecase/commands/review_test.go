//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"innkeeper/internal/domain/review"
	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/commands"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewTime = time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC)

func newReviewCommands(uow *fakeUoW) commands.ReviewCommands {
	return commands.NewReviewCommands(uow, clock.NewMockClock(reviewTime))
}

func completedStay(owner *uuid.UUID) *shared.ReservationSnapshot {
	snap := storedReservation(owner, "completed")
	return snap
}

func validSubmitInput(reservationID uuid.UUID) commands.SubmitReviewInput {
	return commands.SubmitReviewInput{
		ReservationID: reservationID,
		Rating:        4,
		Comment:       "Comfortable bed, slow elevator.",
	}
}

func TestSubmitReview(t *testing.T) {
	t.Run("guest reviews a completed stay", func(t *testing.T) {
		actor := guestActor()
		uow := newFakeUoW()
		stored := completedStay(&actor.ID)
		uow.tx.reads.reservations[stored.ID] = stored
		cmds := newReviewCommands(uow)

		id, err := cmds.Submit(context.Background(), actor, validSubmitInput(stored.ID))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, id)

		require.Len(t, uow.tx.reviews.created, 1)
		created := uow.tx.reviews.created[0]
		assert.Equal(t, review.ModerationPending, created.Status())
		assert.Equal(t, stored.RoomID, created.RoomID())
		assert.Equal(t, actor.ID, created.AuthorID())
	})

	t.Run("unknown reservation", func(t *testing.T) {
		cmds := newReviewCommands(newFakeUoW())

		_, err := cmds.Submit(context.Background(), guestActor(), validSubmitInput(uuid.New()))
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})

	t.Run("only the guest who stayed may review", func(t *testing.T) {
		owner := uuid.New()
		uow := newFakeUoW()
		stored := completedStay(&owner)
		uow.tx.reads.reservations[stored.ID] = stored
		cmds := newReviewCommands(uow)

		_, err := cmds.Submit(context.Background(), guestActor(), validSubmitInput(stored.ID))
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("walk-in stays cannot be reviewed", func(t *testing.T) {
		uow := newFakeUoW()
		stored := completedStay(nil)
		uow.tx.reads.reservations[stored.ID] = stored
		cmds := newReviewCommands(uow)

		_, err := cmds.Submit(context.Background(), guestActor(), validSubmitInput(stored.ID))
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("stay must be completed", func(t *testing.T) {
		for _, status := range []string{"pending", "confirmed", "cancelled"} {
			actor := guestActor()
			uow := newFakeUoW()
			stored := storedReservation(&actor.ID, status)
			uow.tx.reads.reservations[stored.ID] = stored
			cmds := newReviewCommands(uow)

			_, err := cmds.Submit(context.Background(), actor, validSubmitInput(stored.ID))
			assert.ErrorIs(t, err, errs.ErrReviewNotEligible, status)
		}
	})

	t.Run("one review per stay", func(t *testing.T) {
		actor := guestActor()
		uow := newFakeUoW()
		stored := completedStay(&actor.ID)
		uow.tx.reads.reservations[stored.ID] = stored
		uow.tx.reviews.exists = true
		cmds := newReviewCommands(uow)

		_, err := cmds.Submit(context.Background(), actor, validSubmitInput(stored.ID))
		assert.ErrorIs(t, err, errs.ErrDuplicateReview)
	})

	t.Run("duplicate key on insert maps to duplicate review", func(t *testing.T) {
		actor := guestActor()
		uow := newFakeUoW()
		stored := completedStay(&actor.ID)
		uow.tx.reads.reservations[stored.ID] = stored
		uow.tx.reviews.createErr = infra.WrapRepoErr("duplicate", nil, infra.KindDuplicateKey)
		cmds := newReviewCommands(uow)

		_, err := cmds.Submit(context.Background(), actor, validSubmitInput(stored.ID))
		assert.ErrorIs(t, err, errs.ErrDuplicateReview)
	})

	t.Run("invalid rating", func(t *testing.T) {
		actor := guestActor()
		uow := newFakeUoW()
		stored := completedStay(&actor.ID)
		uow.tx.reads.reservations[stored.ID] = stored
		cmds := newReviewCommands(uow)

		in := validSubmitInput(stored.ID)
		in.Rating = 6
		_, err := cmds.Submit(context.Background(), actor, in)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})
}

func TestModerateReview(t *testing.T) {
	storedReview := func() *shared.ReviewSnapshot {
		return &shared.ReviewSnapshot{
			ID:            uuid.New(),
			AuthorID:      uuid.New(),
			RoomID:        uuid.New(),
			ReservationID: uuid.New(),
			Rating:        4,
			Comment:       "Comfortable bed, slow elevator.",
			Status:        "pending",
		}
	}

	t.Run("approve rebuilds the room aggregate", func(t *testing.T) {
		uow := newFakeUoW()
		stored := storedReview()
		uow.tx.reads.reviews[stored.ID] = stored
		cmds := newReviewCommands(uow)

		err := cmds.Moderate(context.Background(), adminActor(), commands.ModerateReviewInput{
			ReviewID: stored.ID,
			Decision: "approve",
		})
		require.NoError(t, err)
		assert.Equal(t, []review.ModerationStatus{review.ModerationApproved}, uow.tx.reviews.moderations)
		assert.Equal(t, []uuid.UUID{stored.RoomID}, uow.tx.stats.recalced)
	})

	t.Run("reject", func(t *testing.T) {
		uow := newFakeUoW()
		stored := storedReview()
		uow.tx.reads.reviews[stored.ID] = stored
		cmds := newReviewCommands(uow)

		err := cmds.Moderate(context.Background(), adminActor(), commands.ModerateReviewInput{
			ReviewID: stored.ID,
			Decision: "reject",
		})
		require.NoError(t, err)
		assert.Equal(t, []review.ModerationStatus{review.ModerationRejected}, uow.tx.reviews.moderations)
		assert.Len(t, uow.tx.stats.recalced, 1)
	})

	t.Run("moderation is staff only", func(t *testing.T) {
		cmds := newReviewCommands(newFakeUoW())

		err := cmds.Moderate(context.Background(), guestActor(), commands.ModerateReviewInput{
			ReviewID: uuid.New(),
			Decision: "approve",
		})
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("invalid decision", func(t *testing.T) {
		cmds := newReviewCommands(newFakeUoW())

		err := cmds.Moderate(context.Background(), adminActor(), commands.ModerateReviewInput{
			ReviewID: uuid.New(),
			Decision: "escalate",
		})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("unknown review", func(t *testing.T) {
		cmds := newReviewCommands(newFakeUoW())

		err := cmds.Moderate(context.Background(), adminActor(), commands.ModerateReviewInput{
			ReviewID: uuid.New(),
			Decision: "approve",
		})
		assert.ErrorIs(t, err, errs.ErrReviewNotFound)
	})
}
