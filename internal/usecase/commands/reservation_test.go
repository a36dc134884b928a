//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/commands"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookingTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func newReservationCommands(uow *fakeUoW, notifier *fakeNotifier) commands.ReservationCommands {
	return commands.NewReservationCommands(
		uow,
		clock.NewMockClock(bookingTime),
		reservation.NewNightlyPriceCalculator(),
		notifier,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func availableRoom(id uuid.UUID) *shared.RoomSnapshot {
	return &shared.RoomSnapshot{
		ID:            id,
		Number:        "204",
		Floor:         2,
		RoomTypeID:    uuid.New(),
		Status:        "available",
		Capacity:      2,
		BaseRateCents: 12000,
	}
}

func validCreateInput(roomID uuid.UUID) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		RoomID:     roomID,
		Arrival:    bookingTime.AddDate(0, 0, 7),
		Departure:  bookingTime.AddDate(0, 0, 10),
		GuestName:  "Jamie Harper",
		GuestEmail: "jamie@example.com",
		GuestPhone: "+1-555-0100",
	}
}

func TestCreateReservation(t *testing.T) {
	t.Run("books the room and freezes the price", func(t *testing.T) {
		roomID := uuid.New()
		uow := newFakeUoW()
		uow.tx.rooms.snapshot = availableRoom(roomID)
		notifier := &fakeNotifier{}
		cmds := newReservationCommands(uow, notifier)

		actor := guestActor()
		snap, err := cmds.Create(context.Background(), actor, validCreateInput(roomID))
		require.NoError(t, err)

		assert.Equal(t, "pending", snap.Status)
		assert.Equal(t, int64(36000), snap.TotalCents)
		require.NotNil(t, snap.UserID)
		assert.Equal(t, actor.ID, *snap.UserID)

		require.Len(t, uow.tx.reservations.created, 1)
		assert.Equal(t, 1, uow.tx.rooms.recomputed)
		require.Len(t, notifier.calls, 1)
		assert.Equal(t, "created", notifier.calls[0].kind)
		assert.Equal(t, snap.Reference, notifier.calls[0].reference)
	})

	t.Run("override rate is used when set", func(t *testing.T) {
		roomID := uuid.New()
		uow := newFakeUoW()
		override := int64(20000)
		snap := availableRoom(roomID)
		snap.OverrideRateCents = &override
		uow.tx.rooms.snapshot = snap
		cmds := newReservationCommands(uow, &fakeNotifier{})

		created, err := cmds.Create(context.Background(), guestActor(), validCreateInput(roomID))
		require.NoError(t, err)
		assert.Equal(t, int64(60000), created.TotalCents)
	})

	t.Run("invalid stay dates", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := newReservationCommands(uow, &fakeNotifier{})

		in := validCreateInput(uuid.New())
		in.Departure = in.Arrival
		_, err := cmds.Create(context.Background(), guestActor(), in)
		assert.ErrorIs(t, err, errs.ErrValidation)
		assert.Empty(t, uow.tx.reservations.created)
	})

	t.Run("missing guest contact", func(t *testing.T) {
		cmds := newReservationCommands(newFakeUoW(), &fakeNotifier{})

		in := validCreateInput(uuid.New())
		in.GuestEmail = " "
		_, err := cmds.Create(context.Background(), guestActor(), in)
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("walk-in requires admin", func(t *testing.T) {
		cmds := newReservationCommands(newFakeUoW(), &fakeNotifier{})

		in := validCreateInput(uuid.New())
		in.WalkIn = true
		_, err := cmds.Create(context.Background(), guestActor(), in)
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("admin walk-in has no account attached", func(t *testing.T) {
		roomID := uuid.New()
		uow := newFakeUoW()
		uow.tx.rooms.snapshot = availableRoom(roomID)
		cmds := newReservationCommands(uow, &fakeNotifier{})

		in := validCreateInput(roomID)
		in.WalkIn = true
		snap, err := cmds.Create(context.Background(), adminActor(), in)
		require.NoError(t, err)
		assert.Nil(t, snap.UserID)
	})

	t.Run("unknown room", func(t *testing.T) {
		uow := newFakeUoW()
		cmds := newReservationCommands(uow, &fakeNotifier{})

		_, err := cmds.Create(context.Background(), guestActor(), validCreateInput(uuid.New()))
		assert.ErrorIs(t, err, errs.ErrRoomNotFound)
	})

	t.Run("maintenance room is not bookable", func(t *testing.T) {
		roomID := uuid.New()
		uow := newFakeUoW()
		snap := availableRoom(roomID)
		snap.Status = "maintenance"
		uow.tx.rooms.snapshot = snap
		cmds := newReservationCommands(uow, &fakeNotifier{})

		_, err := cmds.Create(context.Background(), guestActor(), validCreateInput(roomID))
		assert.ErrorIs(t, err, errs.ErrDatesUnavailable)
	})

	t.Run("overlapping dates", func(t *testing.T) {
		roomID := uuid.New()
		uow := newFakeUoW()
		uow.tx.rooms.snapshot = availableRoom(roomID)
		uow.tx.reservations.overlap = true
		notifier := &fakeNotifier{}
		cmds := newReservationCommands(uow, notifier)

		_, err := cmds.Create(context.Background(), guestActor(), validCreateInput(roomID))
		assert.ErrorIs(t, err, errs.ErrDatesUnavailable)
		assert.Empty(t, uow.tx.reservations.created)
		assert.Empty(t, notifier.calls)
	})

	t.Run("exclusion constraint violation maps to unavailable", func(t *testing.T) {
		roomID := uuid.New()
		uow := newFakeUoW()
		uow.tx.rooms.snapshot = availableRoom(roomID)
		uow.tx.reservations.createErr = infra.WrapRepoErr("overlap", nil, infra.KindConflict)
		cmds := newReservationCommands(uow, &fakeNotifier{})

		_, err := cmds.Create(context.Background(), guestActor(), validCreateInput(roomID))
		assert.ErrorIs(t, err, errs.ErrDatesUnavailable)
	})

	t.Run("notification failure does not fail the booking", func(t *testing.T) {
		roomID := uuid.New()
		uow := newFakeUoW()
		uow.tx.rooms.snapshot = availableRoom(roomID)
		cmds := newReservationCommands(uow, &fakeNotifier{failAll: true})

		snap, err := cmds.Create(context.Background(), guestActor(), validCreateInput(roomID))
		require.NoError(t, err)
		assert.NotNil(t, snap)
	})
}

func storedReservation(owner *uuid.UUID, status string) *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:         uuid.New(),
		Reference:  "RSV-7KQX2MWP",
		RoomID:     uuid.New(),
		UserID:     owner,
		Status:     status,
		Arrival:    bookingTime.AddDate(0, 0, 7),
		Departure:  bookingTime.AddDate(0, 0, 10),
		TotalCents: 36000,
		GuestName:  "Jamie Harper",
		GuestEmail: "jamie@example.com",
		GuestPhone: "+1-555-0100",
		CreatedAt:  bookingTime,
		UpdatedAt:  bookingTime,
	}
}

func TestTransitionReservation(t *testing.T) {
	t.Run("admin confirms a pending reservation", func(t *testing.T) {
		uow := newFakeUoW()
		stored := storedReservation(nil, "pending")
		uow.tx.reads.reservations[stored.ID] = stored
		notifier := &fakeNotifier{}
		cmds := newReservationCommands(uow, notifier)

		snap, err := cmds.Transition(context.Background(), adminActor(), commands.TransitionReservationInput{
			ReservationID: stored.ID,
			Target:        reservation.StatusConfirmed,
		})
		require.NoError(t, err)
		assert.Equal(t, "confirmed", snap.Status)
		assert.Equal(t, []reservation.Status{reservation.StatusConfirmed}, uow.tx.reservations.statusUpdates)
		assert.Equal(t, 1, uow.tx.rooms.recomputed)
		require.Len(t, notifier.calls, 1)
		assert.Equal(t, "confirmed", notifier.calls[0].kind)
	})

	t.Run("guest cannot confirm", func(t *testing.T) {
		actor := guestActor()
		uow := newFakeUoW()
		stored := storedReservation(&actor.ID, "pending")
		uow.tx.reads.reservations[stored.ID] = stored
		cmds := newReservationCommands(uow, &fakeNotifier{})

		_, err := cmds.Transition(context.Background(), actor, commands.TransitionReservationInput{
			ReservationID: stored.ID,
			Target:        reservation.StatusConfirmed,
		})
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("owner cancels own reservation", func(t *testing.T) {
		actor := guestActor()
		uow := newFakeUoW()
		stored := storedReservation(&actor.ID, "confirmed")
		uow.tx.reads.reservations[stored.ID] = stored
		notifier := &fakeNotifier{}
		cmds := newReservationCommands(uow, notifier)

		snap, err := cmds.Transition(context.Background(), actor, commands.TransitionReservationInput{
			ReservationID: stored.ID,
			Target:        reservation.StatusCancelled,
		})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", snap.Status)
		require.Len(t, notifier.calls, 1)
		assert.Equal(t, "cancelled", notifier.calls[0].kind)
	})

	t.Run("guest cannot cancel someone else's reservation", func(t *testing.T) {
		owner := uuid.New()
		uow := newFakeUoW()
		stored := storedReservation(&owner, "pending")
		uow.tx.reads.reservations[stored.ID] = stored
		cmds := newReservationCommands(uow, &fakeNotifier{})

		_, err := cmds.Transition(context.Background(), guestActor(), commands.TransitionReservationInput{
			ReservationID: stored.ID,
			Target:        reservation.StatusCancelled,
		})
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("guest cannot cancel a walk-in", func(t *testing.T) {
		uow := newFakeUoW()
		stored := storedReservation(nil, "pending")
		uow.tx.reads.reservations[stored.ID] = stored
		cmds := newReservationCommands(uow, &fakeNotifier{})

		_, err := cmds.Transition(context.Background(), guestActor(), commands.TransitionReservationInput{
			ReservationID: stored.ID,
			Target:        reservation.StatusCancelled,
		})
		assert.ErrorIs(t, err, errs.ErrForbidden)
	})

	t.Run("pending cannot complete", func(t *testing.T) {
		uow := newFakeUoW()
		stored := storedReservation(nil, "pending")
		uow.tx.reads.reservations[stored.ID] = stored
		cmds := newReservationCommands(uow, &fakeNotifier{})

		_, err := cmds.Transition(context.Background(), adminActor(), commands.TransitionReservationInput{
			ReservationID: stored.ID,
			Target:        reservation.StatusCompleted,
		})
		assert.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Empty(t, uow.tx.reservations.statusUpdates)
	})

	t.Run("cancelling twice is idempotent and writes nothing", func(t *testing.T) {
		uow := newFakeUoW()
		stored := storedReservation(nil, "cancelled")
		uow.tx.reads.reservations[stored.ID] = stored
		notifier := &fakeNotifier{}
		cmds := newReservationCommands(uow, notifier)

		snap, err := cmds.Transition(context.Background(), adminActor(), commands.TransitionReservationInput{
			ReservationID: stored.ID,
			Target:        reservation.StatusCancelled,
		})
		require.NoError(t, err)
		assert.Equal(t, "cancelled", snap.Status)
		assert.Empty(t, uow.tx.reservations.statusUpdates)
		assert.Equal(t, 0, uow.tx.rooms.recomputed)
		assert.Empty(t, notifier.calls)
	})

	t.Run("pending is not a valid target", func(t *testing.T) {
		cmds := newReservationCommands(newFakeUoW(), &fakeNotifier{})

		_, err := cmds.Transition(context.Background(), adminActor(), commands.TransitionReservationInput{
			ReservationID: uuid.New(),
			Target:        reservation.StatusPending,
		})
		assert.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		cmds := newReservationCommands(newFakeUoW(), &fakeNotifier{})

		_, err := cmds.Transition(context.Background(), adminActor(), commands.TransitionReservationInput{
			ReservationID: uuid.New(),
			Target:        reservation.StatusConfirmed,
		})
		assert.ErrorIs(t, err, errs.ErrReservationNotFound)
	})
}
