package reservation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStay      = errors.New("departure must be after arrival")
	ErrStayInPast       = errors.New("arrival cannot be before the booking date")
	ErrMissingGuestInfo = errors.New("guest name, email and phone are required")
)

// StayPeriod is a calendar date range [arrival, departure). Time-of-day is not
// modeled; both ends are normalized to UTC midnight.
type StayPeriod struct {
	arrival   time.Time
	departure time.Time
}

func NewStayPeriod(arrival, departure time.Time, now time.Time) (StayPeriod, error) {
	a := truncateToDate(arrival)
	d := truncateToDate(departure)
	if !d.After(a) {
		return StayPeriod{}, ErrInvalidStay
	}
	if a.Before(truncateToDate(now)) {
		return StayPeriod{}, ErrStayInPast
	}
	return StayPeriod{arrival: a, departure: d}, nil
}

// ReconstructStayPeriod rebuilds a period from stored dates without the
// booking-date check; persisted stays may legitimately be in the past.
func ReconstructStayPeriod(arrival, departure time.Time) StayPeriod {
	return StayPeriod{arrival: truncateToDate(arrival), departure: truncateToDate(departure)}
}

func (p StayPeriod) Arrival() time.Time   { return p.arrival }
func (p StayPeriod) Departure() time.Time { return p.departure }

func (p StayPeriod) Nights() int {
	return int(p.departure.Sub(p.arrival).Hours() / 24)
}

func (p StayPeriod) String() string {
	return fmt.Sprintf("%s/%s", p.arrival.Format("2006-01-02"), p.departure.Format("2006-01-02"))
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) Units() float64 {
	return float64(m.cents) / 100.0
}

// GuestContact is the snapshot captured at booking time, independent of any
// user account. Guest checkout reservations have this and nothing else.
type GuestContact struct {
	name  string
	email string
	phone string
}

func NewGuestContact(name, email, phone string) (GuestContact, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)
	if name == "" || email == "" || phone == "" {
		return GuestContact{}, ErrMissingGuestInfo
	}
	return GuestContact{name: name, email: email, phone: phone}, nil
}

func (g GuestContact) Name() string  { return g.name }
func (g GuestContact) Email() string { return g.email }
func (g GuestContact) Phone() string { return g.phone }
