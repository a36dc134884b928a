package commands

import (
	"context"
	"log/slog"
	"time"

	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/domain/room"
	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/pkg/metrics"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationInput struct {
	RoomID     uuid.UUID
	Arrival    time.Time
	Departure  time.Time
	GuestName  string
	GuestEmail string
	GuestPhone string
	// WalkIn detaches the reservation from the acting admin's account; only
	// admins may set it.
	WalkIn bool
}

type TransitionReservationInput struct {
	ReservationID uuid.UUID
	Target        reservation.Status
}

type ReservationCommands interface {
	Create(ctx context.Context, actor shared.Actor, in CreateReservationInput) (*shared.ReservationSnapshot, error)
	Transition(ctx context.Context, actor shared.Actor, in TransitionReservationInput) (*shared.ReservationSnapshot, error)
}

type reservationCommandsImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	pricing  reservation.PriceCalculator
	notifier Notifier
	logger   *slog.Logger
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	clk clock.Clock,
	pricing reservation.PriceCalculator,
	notifier Notifier,
	logger *slog.Logger,
) ReservationCommands {
	return &reservationCommandsImpl{
		uow:      uow,
		clock:    clk,
		pricing:  pricing,
		notifier: notifier,
		logger:   logger,
	}
}

// Create books a room for the requested stay. The room row is locked for the
// duration of the transaction, so two creates for the same room are
// serialized and the in-transaction overlap check is race-free. The exclusion
// constraint on the reservations table backstops writers that never took the
// lock; its violation maps to the same unavailable error as the pre-check.
func (c *reservationCommandsImpl) Create(ctx context.Context, actor shared.Actor, in CreateReservationInput) (*shared.ReservationSnapshot, error) {
	stay, err := reservation.NewStayPeriod(in.Arrival, in.Departure, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	guest, err := reservation.NewGuestContact(in.GuestName, in.GuestEmail, in.GuestPhone)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	if in.WalkIn && !actor.IsAdmin() {
		return nil, errs.Mark(errs.New("walk-in reservations are staff only"), errs.ErrForbidden)
	}
	var userID *uuid.UUID
	if !in.WalkIn {
		id := actor.ID
		userID = &id
	}

	var snapshot *shared.ReservationSnapshot
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		roomSnap, err := tx.Rooms().LockByID(ctx, tx.DB(), in.RoomID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrRoomNotFound)
			}
			return err
		}

		if !room.Status(roomSnap.Status).Bookable() {
			return errs.Mark(errs.New("room is under maintenance"), errs.ErrDatesUnavailable)
		}

		overlap, err := tx.Reservations().HasOverlap(ctx, tx.DB(), in.RoomID, stay.Arrival(), stay.Departure())
		if err != nil {
			return err
		}
		if overlap {
			metrics.IncReservationConflict()
			return errs.Mark(errs.New("dates overlap an active reservation"), errs.ErrDatesUnavailable)
		}

		rate := reservation.RoomRate{
			BaseRateCents:     roomSnap.BaseRateCents,
			OverrideRateCents: roomSnap.OverrideRateCents,
		}
		res, err := reservation.NewReservation(
			&reservation.Services{Clock: c.clock, PriceCalculator: c.pricing},
			in.RoomID, rate, userID, stay, guest,
		)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		if _, err := tx.Reservations().Create(ctx, tx.DB(), res); err != nil {
			if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey) {
				metrics.IncReservationConflict()
				return errs.Mark(err, errs.ErrDatesUnavailable)
			}
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, errs.ErrRoomNotFound)
			}
			return err
		}

		if err := tx.Rooms().RecomputeStatus(ctx, tx.DB(), in.RoomID); err != nil {
			return err
		}

		snapshot = snapshotFromReservation(res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncReservationCreated()
	c.notify(ctx, "reservation_created", snapshot, c.notifier.ReservationCreated)
	return snapshot, nil
}

// Transition drives the lifecycle state machine. Confirm and complete are
// staff actions; cancel is open to the owning guest as well and stays
// idempotent for already-cancelled reservations.
func (c *reservationCommandsImpl) Transition(ctx context.Context, actor shared.Actor, in TransitionReservationInput) (*shared.ReservationSnapshot, error) {
	if !in.Target.IsValid() || in.Target == reservation.StatusPending {
		return nil, errs.Mark(errs.New("unsupported target status"), errs.ErrValidation)
	}
	if in.Target != reservation.StatusCancelled && !actor.IsAdmin() {
		return nil, errs.Mark(errs.New("lifecycle transitions are staff only"), errs.ErrForbidden)
	}

	var snapshot *shared.ReservationSnapshot
	var changed bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, err := tx.Reads().ReservationByID(ctx, in.ReservationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrReservationNotFound)
			}
			return err
		}

		if in.Target == reservation.StatusCancelled && !actor.IsAdmin() {
			if snap.UserID == nil || *snap.UserID != actor.ID {
				return errs.Mark(errs.New("reservation belongs to another guest"), errs.ErrForbidden)
			}
		}

		res, err := reservationFromSnapshot(snap)
		if err != nil {
			return err
		}

		before := res.Status()
		now := c.clock.Now()
		if err := res.TransitionTo(in.Target, now); err != nil {
			return errs.Mark(err, errs.ErrInvalidTransition)
		}
		changed = res.Status() != before

		if changed {
			if err := tx.Reservations().UpdateStatus(ctx, tx.DB(), res.ID(), res.Status(), now); err != nil {
				return err
			}
			// Status changes move reservations in and out of the active set,
			// so the room status is derived again from scratch.
			if err := tx.Rooms().RecomputeStatus(ctx, tx.DB(), snap.RoomID); err != nil {
				return err
			}
		}

		snapshot = snapshotFromReservation(res)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if changed {
		metrics.IncTransition(string(in.Target))
		switch in.Target {
		case reservation.StatusConfirmed:
			c.notify(ctx, "reservation_confirmed", snapshot, c.notifier.ReservationConfirmed)
		case reservation.StatusCancelled:
			c.notify(ctx, "reservation_cancelled", snapshot, c.notifier.ReservationCancelled)
		}
	}
	return snapshot, nil
}

func (c *reservationCommandsImpl) notify(ctx context.Context, kind string, snap *shared.ReservationSnapshot, fn func(context.Context, *shared.ReservationSnapshot) error) {
	if err := fn(ctx, snap); err != nil {
		metrics.IncNotifyFailure(kind)
		c.logger.WarnContext(ctx, "notification failed",
			slog.String("kind", kind),
			slog.String("reference", snap.Reference),
			slog.String("error", err.Error()),
		)
	}
}

func snapshotFromReservation(res *reservation.Reservation) *shared.ReservationSnapshot {
	return &shared.ReservationSnapshot{
		ID:         res.ID(),
		Reference:  res.Reference(),
		RoomID:     res.RoomID(),
		UserID:     res.UserID(),
		Status:     string(res.Status()),
		Arrival:    res.Stay().Arrival(),
		Departure:  res.Stay().Departure(),
		TotalCents: res.Price().Cents(),
		GuestName:  res.Guest().Name(),
		GuestEmail: res.Guest().Email(),
		GuestPhone: res.Guest().Phone(),
		CreatedAt:  res.CreatedAt(),
		UpdatedAt:  res.UpdatedAt(),
	}
}

func reservationFromSnapshot(snap *shared.ReservationSnapshot) (*reservation.Reservation, error) {
	guest, err := reservation.NewGuestContact(snap.GuestName, snap.GuestEmail, snap.GuestPhone)
	if err != nil {
		return nil, errs.Wrap(err, "stored reservation has invalid guest contact")
	}
	return reservation.ReconstructReservation(
		snap.ID,
		snap.Reference,
		snap.RoomID,
		snap.UserID,
		reservation.ReconstructStayPeriod(snap.Arrival, snap.Departure),
		reservation.Status(snap.Status),
		reservation.NewMoney(snap.TotalCents),
		guest,
		snap.CreatedAt, snap.UpdatedAt,
	), nil
}
