//go:build unit || e2e

package builder

import (
	"time"

	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/pkg/clock"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	RoomID            uuid.UUID
	UserID            *uuid.UUID
	Arrival           time.Time
	Departure         time.Time
	BookedAt          time.Time
	BaseRateCents     int64
	OverrideRateCents *int64
	GuestName         string
	GuestEmail        string
	GuestPhone        string
}

func NewReservationBuilder() *ReservationBuilder {
	userID := uuid.New()
	bookedAt := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	return &ReservationBuilder{
		RoomID:        uuid.New(),
		UserID:        &userID,
		Arrival:       bookedAt.AddDate(0, 0, 7),
		Departure:     bookedAt.AddDate(0, 0, 10),
		BookedAt:      bookedAt,
		BaseRateCents: 12000,
		GuestName:     "Jamie Harper",
		GuestEmail:    "jamie@example.com",
		GuestPhone:    "+1-555-0100",
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithStay(arrival, departure time.Time) *ReservationBuilder {
	b.Arrival = arrival
	b.Departure = departure
	return b
}

func (b *ReservationBuilder) WithOverrideRate(cents int64) *ReservationBuilder {
	b.OverrideRateCents = &cents
	return b
}

func (b *ReservationBuilder) WithWalkIn() *ReservationBuilder {
	b.UserID = nil
	return b
}

func (b *ReservationBuilder) BuildStay() (reservation.StayPeriod, error) {
	return reservation.NewStayPeriod(b.Arrival, b.Departure, b.BookedAt)
}

func (b *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	stay, err := b.BuildStay()
	if err != nil {
		return nil, err
	}
	guest, err := reservation.NewGuestContact(b.GuestName, b.GuestEmail, b.GuestPhone)
	if err != nil {
		return nil, err
	}
	services := &reservation.Services{
		Clock:           clock.NewMockClock(b.BookedAt),
		PriceCalculator: reservation.NewNightlyPriceCalculator(),
	}
	rate := reservation.RoomRate{
		BaseRateCents:     b.BaseRateCents,
		OverrideRateCents: b.OverrideRateCents,
	}
	return reservation.NewReservation(services, b.RoomID, rate, b.UserID, stay, guest)
}
