package shared

import (
	"time"

	"innkeeper/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller, carried from the auth middleware into
// commands and queries that enforce ownership.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// Write-side snapshots keep the command layer off the read-side view types.

type RoomSnapshot struct {
	ID                uuid.UUID
	Number            string
	Floor             int
	RoomTypeID        uuid.UUID
	Status            string
	Capacity          int
	BaseRateCents     int64
	OverrideRateCents *int64
}

type ReservationSnapshot struct {
	ID         uuid.UUID
	Reference  string
	RoomID     uuid.UUID
	UserID     *uuid.UUID
	Status     string
	Arrival    time.Time
	Departure  time.Time
	TotalCents int64
	GuestName  string
	GuestEmail string
	GuestPhone string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type ReviewSnapshot struct {
	ID            uuid.UUID
	AuthorID      uuid.UUID
	RoomID        uuid.UUID
	ReservationID uuid.UUID
	Rating        int
	Comment       string
	Status        string
}
