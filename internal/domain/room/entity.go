package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyNumber     = errors.New("room number cannot be empty")
	ErrInvalidCapacity = errors.New("capacity must be at least 1")
	ErrNegativeRate    = errors.New("nightly rate cannot be negative")
	ErrEmptyTypeName   = errors.New("room type name cannot be empty")
	ErrInvalidStatus   = errors.New("invalid room status")
)

// RoomType is immutable reference data; admins create and edit it, nothing
// else ever mutates it.
type RoomType struct {
	id            uuid.UUID
	name          string
	capacity      int
	baseRateCents int64
	description   string
	createdAt     time.Time
	updatedAt     time.Time
}

func NewRoomType(id uuid.UUID, name string, capacity int, baseRateCents int64, description string, now time.Time) (*RoomType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyTypeName
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if baseRateCents < 0 {
		return nil, ErrNegativeRate
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &RoomType{
		id:            id,
		name:          name,
		capacity:      capacity,
		baseRateCents: baseRateCents,
		description:   description,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func (t *RoomType) ID() uuid.UUID        { return t.id }
func (t *RoomType) Name() string         { return t.name }
func (t *RoomType) Capacity() int        { return t.capacity }
func (t *RoomType) BaseRateCents() int64 { return t.baseRateCents }
func (t *RoomType) Description() string  { return t.description }
func (t *RoomType) CreatedAt() time.Time { return t.createdAt }
func (t *RoomType) UpdatedAt() time.Time { return t.updatedAt }

type Room struct {
	id             uuid.UUID
	number         string
	floor          int
	roomTypeID     uuid.UUID
	status         Status
	rateOverride   *int64
	media          []string
	createdAt      time.Time
	updatedAt      time.Time
}

func NewRoom(id uuid.UUID, number string, floor int, roomTypeID uuid.UUID, rateOverrideCents *int64, media []string, now time.Time) (*Room, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, ErrEmptyNumber
	}
	if rateOverrideCents != nil && *rateOverrideCents < 0 {
		return nil, ErrNegativeRate
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Room{
		id:           id,
		number:       number,
		floor:        floor,
		roomTypeID:   roomTypeID,
		status:       StatusAvailable,
		rateOverride: rateOverrideCents,
		media:        media,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructRoom(id uuid.UUID, number string, floor int, roomTypeID uuid.UUID, status Status, rateOverrideCents *int64, media []string, createdAt, updatedAt time.Time) *Room {
	return &Room{
		id:           id,
		number:       number,
		floor:        floor,
		roomTypeID:   roomTypeID,
		status:       status,
		rateOverride: rateOverrideCents,
		media:        media,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (r *Room) ID() uuid.UUID          { return r.id }
func (r *Room) Number() string         { return r.number }
func (r *Room) Floor() int             { return r.floor }
func (r *Room) RoomTypeID() uuid.UUID  { return r.roomTypeID }
func (r *Room) Status() Status         { return r.status }
func (r *Room) RateOverride() *int64   { return r.rateOverride }
func (r *Room) Media() []string        { return r.media }
func (r *Room) CreatedAt() time.Time   { return r.createdAt }
func (r *Room) UpdatedAt() time.Time   { return r.updatedAt }

// EffectiveRateCents resolves the nightly rate: room override when set,
// otherwise the type's base rate.
func (r *Room) EffectiveRateCents(baseRateCents int64) int64 {
	if r.rateOverride != nil {
		return *r.rateOverride
	}
	return baseRateCents
}
