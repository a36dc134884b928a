package queries

import (
	"context"
	"time"

	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrInvalidSearchRange = errs.New("invalid search date range")

// Read models (DTO for read side)
type RoomView struct {
	ID               uuid.UUID `json:"id"`
	Number           string    `json:"number"`
	Floor            int       `json:"floor"`
	Status           string    `json:"status"`
	RoomTypeID       uuid.UUID `json:"room_type_id"`
	RoomTypeName     string    `json:"room_type_name"`
	Capacity         int       `json:"capacity"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	Description      string    `json:"description"`
	Media            []string  `json:"media"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type RoomListItem struct {
	ID               uuid.UUID `json:"id"`
	Number           string    `json:"number"`
	Floor            int       `json:"floor"`
	Status           string    `json:"status"`
	RoomTypeName     string    `json:"room_type_name"`
	Capacity         int       `json:"capacity"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
}

type RoomTypeView struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Capacity      int       `json:"capacity"`
	BaseRateCents int64     `json:"base_rate_cents"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// RoomSearchFilter: with Arrival/Departure unset the search skips date
// filtering and returns all rooms matching type/capacity.
type RoomSearchFilter struct {
	Arrival    *time.Time
	Departure  *time.Time
	RoomTypeID *uuid.UUID
	Capacity   *int
}

func (f RoomSearchFilter) HasDates() bool {
	return f.Arrival != nil && f.Departure != nil
}

type RoomReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	// SearchAvailable excludes maintenance rooms and, when dates are given,
	// rooms with an active reservation overlapping the range.
	SearchAvailable(ctx context.Context, filter RoomSearchFilter) ([]*RoomListItem, error)
	ListTypes(ctx context.Context) ([]*RoomTypeView, error)
}

type RoomQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error)
	// CheckAvailability is the engine's availability search: both dates, or
	// neither.
	CheckAvailability(ctx context.Context, filter RoomSearchFilter) ([]*RoomListItem, error)
	ListTypes(ctx context.Context) ([]*RoomTypeView, error)
}

type roomQueriesImpl struct {
	store RoomReadStore
}

func NewRoomQueries(store RoomReadStore) RoomQueries {
	return &roomQueriesImpl{store: store}
}

func (q *roomQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RoomView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrRoomNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *roomQueriesImpl) CheckAvailability(ctx context.Context, filter RoomSearchFilter) ([]*RoomListItem, error) {
	if (filter.Arrival == nil) != (filter.Departure == nil) {
		return nil, errs.Mark(ErrInvalidSearchRange, errs.ErrValidation)
	}
	if filter.HasDates() && !filter.Departure.After(*filter.Arrival) {
		return nil, errs.Mark(ErrInvalidSearchRange, errs.ErrValidation)
	}
	return q.store.SearchAvailable(ctx, filter)
}

func (q *roomQueriesImpl) ListTypes(ctx context.Context) ([]*RoomTypeView, error) {
	return q.store.ListTypes(ctx)
}
