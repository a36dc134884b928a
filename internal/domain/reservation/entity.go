package reservation

import (
	"errors"
	"time"

	"innkeeper/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrInvalidStatus     = errors.New("invalid reservation status")
	ErrInvalidTransition = errors.New("invalid state transition")
)

type Services struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

type Reservation struct {
	id        uuid.UUID
	reference string
	roomID    uuid.UUID
	userID    *uuid.UUID
	stay      StayPeriod
	status    Status
	price     Money
	guest     GuestContact
	createdAt time.Time
	updatedAt time.Time
}

// NewReservation builds a pending reservation with the price frozen from the
// room's rate at booking time. Availability is the store's concern; this only
// enforces the intrinsic invariants.
func NewReservation(
	services *Services,
	roomID uuid.UUID,
	rate RoomRate,
	userID *uuid.UUID,
	stay StayPeriod,
	guest GuestContact,
) (*Reservation, error) {
	total := services.PriceCalculator.CalculateTotalCents(rate, stay)
	if total < 0 {
		return nil, ErrNegativePrice
	}

	ref, err := NewReference()
	if err != nil {
		return nil, err
	}

	now := services.Clock.Now()
	return &Reservation{
		id:        uuid.New(),
		reference: ref,
		roomID:    roomID,
		userID:    userID,
		stay:      stay,
		status:    StatusPending,
		price:     NewMoney(total),
		guest:     guest,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructReservation(
	id uuid.UUID,
	reference string,
	roomID uuid.UUID,
	userID *uuid.UUID,
	stay StayPeriod,
	status Status,
	price Money,
	guest GuestContact,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:        id,
		reference: reference,
		roomID:    roomID,
		userID:    userID,
		stay:      stay,
		status:    status,
		price:     price,
		guest:     guest,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// TransitionTo moves the reservation along the lifecycle, rejecting anything
// the state machine does not allow. Cancelling an already cancelled
// reservation is a no-op success so cancellation stays idempotent.
func (r *Reservation) TransitionTo(target Status, now time.Time) error {
	if !target.IsValid() {
		return ErrInvalidStatus
	}
	if r.status == StatusCancelled && target == StatusCancelled {
		return nil
	}
	if !r.status.CanTransitionTo(target) {
		return ErrInvalidTransition
	}
	r.status = target
	r.updatedAt = now
	return nil
}

func (r *Reservation) IsActive() bool {
	return r.status.IsActive()
}

func (r *Reservation) ID() uuid.UUID       { return r.id }
func (r *Reservation) Reference() string   { return r.reference }
func (r *Reservation) RoomID() uuid.UUID   { return r.roomID }
func (r *Reservation) UserID() *uuid.UUID  { return r.userID }
func (r *Reservation) Stay() StayPeriod    { return r.stay }
func (r *Reservation) Status() Status      { return r.status }
func (r *Reservation) Price() Money        { return r.price }
func (r *Reservation) Guest() GuestContact { return r.guest }
func (r *Reservation) CreatedAt() time.Time { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time { return r.updatedAt }
