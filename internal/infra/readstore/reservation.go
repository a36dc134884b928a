package readstore

import (
	"context"
	"time"

	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/pgconv"
	"innkeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReservationReadStore struct {
	pool *pgxpool.Pool
}

func NewReservationReadStore(pool *pgxpool.Pool) queries.ReservationReadStore {
	return &ReservationReadStore{pool: pool}
}

const reservationViewColumns = `
	res.id, res.reference, res.room_id, r.number, res.user_id, res.status,
	res.arrival, res.departure, (res.departure - res.arrival) AS nights,
	res.total_cents, res.guest_name, res.guest_email, res.guest_phone,
	res.created_at, res.updated_at`

func (s *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	q := `
		SELECT ` + reservationViewColumns + `
		FROM reservations res
		JOIN rooms r ON r.id = res.room_id
		WHERE res.id = $1`

	return s.scanView(s.pool.QueryRow(ctx, q, pgconv.UUIDToPgtype(id)))
}

func (s *ReservationReadStore) FindByReference(ctx context.Context, reference string) (*queries.ReservationView, error) {
	q := `
		SELECT ` + reservationViewColumns + `
		FROM reservations res
		JOIN rooms r ON r.id = res.room_id
		WHERE res.reference = $1`

	return s.scanView(s.pool.QueryRow(ctx, q, reference))
}

func (s *ReservationReadStore) ListByUserFirstPage(ctx context.Context, userID uuid.UUID, limit int) ([]*queries.ReservationListItem, error) {
	const q = `
		SELECT res.id, res.reference, r.number, res.status,
		       res.arrival, res.departure, res.total_cents, res.guest_name, res.created_at
		FROM reservations res
		JOIN rooms r ON r.id = res.room_id
		WHERE res.user_id = $1
		ORDER BY res.created_at DESC, res.id DESC
		LIMIT $2`

	rows, err := s.pool.Query(ctx, q, pgconv.UUIDToPgtype(userID), limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return scanListItems(rows)
}

func (s *ReservationReadStore) ListByUserKeyset(ctx context.Context, userID uuid.UUID, limit int, afterCreatedAt time.Time, afterID uuid.UUID) ([]*queries.ReservationListItem, error) {
	const q = `
		SELECT res.id, res.reference, r.number, res.status,
		       res.arrival, res.departure, res.total_cents, res.guest_name, res.created_at
		FROM reservations res
		JOIN rooms r ON r.id = res.room_id
		WHERE res.user_id = $1
		  AND (res.created_at, res.id) < ($2, $3)
		ORDER BY res.created_at DESC, res.id DESC
		LIMIT $4`

	rows, err := s.pool.Query(ctx, q,
		pgconv.UUIDToPgtype(userID),
		pgconv.TimeToPgtype(afterCreatedAt),
		pgconv.UUIDToPgtype(afterID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return scanListItems(rows)
}

func (s *ReservationReadStore) ListFirstPage(ctx context.Context, filter queries.ReservationListFilter, limit int) ([]*queries.ReservationListItem, error) {
	const q = `
		SELECT res.id, res.reference, r.number, res.status,
		       res.arrival, res.departure, res.total_cents, res.guest_name, res.created_at
		FROM reservations res
		JOIN rooms r ON r.id = res.room_id
		WHERE ($1::text IS NULL OR res.status = $1)
		  AND ($2::uuid IS NULL OR res.room_id = $2)
		ORDER BY res.created_at DESC, res.id DESC
		LIMIT $3`

	rows, err := s.pool.Query(ctx, q,
		pgconv.StringPtrToPgtype(filter.Status),
		pgconv.UUIDPtrToPgtype(filter.RoomID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return scanListItems(rows)
}

func (s *ReservationReadStore) ListKeyset(ctx context.Context, filter queries.ReservationListFilter, limit int, afterCreatedAt time.Time, afterID uuid.UUID) ([]*queries.ReservationListItem, error) {
	const q = `
		SELECT res.id, res.reference, r.number, res.status,
		       res.arrival, res.departure, res.total_cents, res.guest_name, res.created_at
		FROM reservations res
		JOIN rooms r ON r.id = res.room_id
		WHERE ($1::text IS NULL OR res.status = $1)
		  AND ($2::uuid IS NULL OR res.room_id = $2)
		  AND (res.created_at, res.id) < ($3, $4)
		ORDER BY res.created_at DESC, res.id DESC
		LIMIT $5`

	rows, err := s.pool.Query(ctx, q,
		pgconv.StringPtrToPgtype(filter.Status),
		pgconv.UUIDPtrToPgtype(filter.RoomID),
		pgconv.TimeToPgtype(afterCreatedAt),
		pgconv.UUIDToPgtype(afterID),
		limit,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}
	return scanListItems(rows)
}

func (s *ReservationReadStore) ListForExport(ctx context.Context, from, to time.Time) ([]*queries.ReservationView, error) {
	q := `
		SELECT ` + reservationViewColumns + `
		FROM reservations res
		JOIN rooms r ON r.id = res.room_id
		WHERE res.arrival <= $2 AND res.departure >= $1
		ORDER BY res.arrival, r.number`

	rows, err := s.pool.Query(ctx, q, pgconv.DateToPgtype(from), pgconv.DateToPgtype(to))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations for export", err)
	}
	defer rows.Close()

	var views []*queries.ReservationView
	for rows.Next() {
		view, err := scanViewFromRow(rows)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}
	return views, nil
}

func (s *ReservationReadStore) scanView(row pgx.Row) (*queries.ReservationView, error) {
	view, err := scanViewFromRow(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, err
	}
	return view, nil
}

func scanViewFromRow(row pgx.Row) (*queries.ReservationView, error) {
	var (
		resID     pgtype.UUID
		roomID    pgtype.UUID
		userID    pgtype.UUID
		arrival   pgtype.Date
		departure pgtype.Date
		createdAt pgtype.Timestamptz
		updatedAt pgtype.Timestamptz
		view      queries.ReservationView
	)
	err := row.Scan(
		&resID, &view.Reference, &roomID, &view.RoomNumber, &userID, &view.Status,
		&arrival, &departure, &view.Nights,
		&view.TotalCents, &view.GuestName, &view.GuestEmail, &view.GuestPhone,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan reservation row", err)
	}

	view.ID = uuid.UUID(resID.Bytes)
	view.RoomID = uuid.UUID(roomID.Bytes)
	view.UserID = pgconv.UUIDPtrFromPgtype(userID)
	view.Arrival = pgconv.DateFromPgtype(arrival)
	view.Departure = pgconv.DateFromPgtype(departure)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

func scanListItems(rows pgx.Rows) ([]*queries.ReservationListItem, error) {
	defer rows.Close()

	var items []*queries.ReservationListItem
	for rows.Next() {
		var (
			resID     pgtype.UUID
			arrival   pgtype.Date
			departure pgtype.Date
			createdAt pgtype.Timestamptz
			item      queries.ReservationListItem
		)
		if err := rows.Scan(
			&resID, &item.Reference, &item.RoomNumber, &item.Status,
			&arrival, &departure, &item.TotalCents, &item.GuestName, &createdAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		item.ID = uuid.UUID(resID.Bytes)
		item.Arrival = pgconv.DateFromPgtype(arrival)
		item.Departure = pgconv.DateFromPgtype(departure)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate reservation rows", err)
	}
	return items, nil
}
