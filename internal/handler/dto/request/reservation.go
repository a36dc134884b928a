package request

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Dates travel as plain calendar dates; time-of-day is not part of the model.
type CreateReservationRequest struct {
	RoomID     uuid.UUID `json:"room_id" binding:"required"`
	Arrival    string    `json:"arrival" binding:"required,datetime=2006-01-02"`
	Departure  string    `json:"departure" binding:"required,datetime=2006-01-02"`
	GuestName  string    `json:"guest_name" binding:"required"`
	GuestEmail string    `json:"guest_email" binding:"required,email"`
	GuestPhone string    `json:"guest_phone" binding:"required"`
	WalkIn     bool      `json:"walk_in,omitempty"`
}

func (r CreateReservationRequest) ArrivalDate() time.Time {
	t, _ := time.Parse(dateLayout, r.Arrival)
	return t
}

func (r CreateReservationRequest) DepartureDate() time.Time {
	t, _ := time.Parse(dateLayout, r.Departure)
	return t
}

type TransitionReservationRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed cancelled completed"`
}

type LookupReservationRequest struct {
	Reference string `form:"reference" binding:"required"`
	Email     string `form:"email" binding:"required,email"`
}
