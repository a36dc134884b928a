package queries

import (
	"context"
	"strings"
	"time"

	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationView struct {
	ID         uuid.UUID  `json:"id"`
	Reference  string     `json:"reference"`
	RoomID     uuid.UUID  `json:"room_id"`
	RoomNumber string     `json:"room_number"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Status     string     `json:"status"`
	Arrival    time.Time  `json:"arrival"`
	Departure  time.Time  `json:"departure"`
	Nights     int        `json:"nights"`
	TotalCents int64      `json:"total_cents"`
	GuestName  string     `json:"guest_name"`
	GuestEmail string     `json:"guest_email"`
	GuestPhone string     `json:"guest_phone"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ReservationListItem struct {
	ID         uuid.UUID `json:"id"`
	Reference  string    `json:"reference"`
	RoomNumber string    `json:"room_number"`
	Status     string    `json:"status"`
	Arrival    time.Time `json:"arrival"`
	Departure  time.Time `json:"departure"`
	TotalCents int64     `json:"total_cents"`
	GuestName  string    `json:"guest_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReservationListFilter struct {
	Status *string
	RoomID *uuid.UUID
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByReference(ctx context.Context, reference string) (*ReservationView, error)
	ListByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int) ([]*ReservationListItem, error)
	ListByUserKeyset(ctx context.Context, userID uuid.UUID, limit int, afterCreatedAt time.Time, afterID uuid.UUID) ([]*ReservationListItem, error)
	ListFirstPage(ctx context.Context, filter ReservationListFilter, limit int) ([]*ReservationListItem, error)
	ListKeyset(ctx context.Context, filter ReservationListFilter, limit int, afterCreatedAt time.Time, afterID uuid.UUID) ([]*ReservationListItem, error)
	// ListForExport returns reservations whose stay intersects [from, to],
	// ordered by arrival. Feeds the spreadsheet export.
	ListForExport(ctx context.Context, from, to time.Time) ([]*ReservationView, error)
}

type ReservationQueries interface {
	// GetByID is restricted to the reservation owner and admins.
	GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error)
	// LookupByReference serves walk-in guests without accounts: the caller
	// must present the guest email the reservation was made with.
	LookupByReference(ctx context.Context, reference, email string) (*ReservationView, error)
	ListMine(ctx context.Context, userID uuid.UUID, limit int, cursor *Cursor) ([]*ReservationListItem, *Cursor, error)
	ListAll(ctx context.Context, filter ReservationListFilter, limit int, cursor *Cursor) ([]*ReservationListItem, *Cursor, error)
	ListForExport(ctx context.Context, from, to time.Time) ([]*ReservationView, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, actor shared.Actor, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, err
	}
	if !actor.IsAdmin() && (view.UserID == nil || *view.UserID != actor.ID) {
		return nil, errs.Mark(errs.New("reservation belongs to another guest"), errs.ErrForbidden)
	}
	return view, nil
}

func (q *reservationQueriesImpl) LookupByReference(ctx context.Context, reference, email string) (*ReservationView, error) {
	view, err := q.store.FindByReference(ctx, strings.ToUpper(strings.TrimSpace(reference)))
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, errs.ErrReservationNotFound)
		}
		return nil, err
	}
	// A wrong email gets the same answer as a missing reference so the
	// endpoint cannot be used to probe which references exist.
	if !strings.EqualFold(strings.TrimSpace(email), view.GuestEmail) {
		return nil, errs.Mark(errs.New("reference lookup mismatch"), errs.ErrReservationNotFound)
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListMine(ctx context.Context, userID uuid.UUID, limit int, cursor *Cursor) ([]*ReservationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var items []*ReservationListItem
	var err error
	if cursor == nil || cursor.After == "" {
		items, err = q.store.ListByUserFirstPage(ctx, userID, limit+1)
	} else {
		afterCreatedAt, afterID, decodeErr := DecodeAfterCursor(cursor.After)
		if decodeErr != nil {
			return nil, nil, errs.Mark(decodeErr, errs.ErrValidation)
		}
		items, err = q.store.ListByUserKeyset(ctx, userID, limit+1, afterCreatedAt, afterID)
	}
	if err != nil {
		return nil, nil, err
	}
	return paginateReservations(items, limit)
}

func (q *reservationQueriesImpl) ListAll(ctx context.Context, filter ReservationListFilter, limit int, cursor *Cursor) ([]*ReservationListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var items []*ReservationListItem
	var err error
	if cursor == nil || cursor.After == "" {
		items, err = q.store.ListFirstPage(ctx, filter, limit+1)
	} else {
		afterCreatedAt, afterID, decodeErr := DecodeAfterCursor(cursor.After)
		if decodeErr != nil {
			return nil, nil, errs.Mark(decodeErr, errs.ErrValidation)
		}
		items, err = q.store.ListKeyset(ctx, filter, limit+1, afterCreatedAt, afterID)
	}
	if err != nil {
		return nil, nil, err
	}
	return paginateReservations(items, limit)
}

func (q *reservationQueriesImpl) ListForExport(ctx context.Context, from, to time.Time) ([]*ReservationView, error) {
	if to.Before(from) {
		return nil, errs.Mark(errs.New("export range end before start"), errs.ErrValidation)
	}
	return q.store.ListForExport(ctx, from, to)
}

// paginateReservations: fetch limit+1 rows; an extra row means another page
// exists and yields the next cursor.
func paginateReservations(items []*ReservationListItem, limit int) ([]*ReservationListItem, *Cursor, error) {
	var next *Cursor
	if len(items) > limit {
		items = items[:limit]
		last := items[len(items)-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
	}
	return items, next, nil
}
