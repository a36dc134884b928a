package readstore

import (
	"context"

	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/pgconv"
	"innkeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomReadStore struct {
	pool *pgxpool.Pool
}

func NewRoomReadStore(pool *pgxpool.Pool) queries.RoomReadStore {
	return &RoomReadStore{pool: pool}
}

func (s *RoomReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RoomView, error) {
	const q = `
		SELECT r.id, r.number, r.floor, r.status, r.room_type_id,
		       rt.name, rt.capacity,
		       COALESCE(r.rate_override_cents, rt.base_rate_cents),
		       rt.description, r.media, r.created_at, r.updated_at
		FROM rooms r
		JOIN room_types rt ON rt.id = r.room_type_id
		WHERE r.id = $1`

	var (
		roomID      pgtype.UUID
		view        queries.RoomView
		roomTypeID  pgtype.UUID
		createdAt   pgtype.Timestamptz
		updatedAt   pgtype.Timestamptz
	)
	err := s.pool.QueryRow(ctx, q, pgconv.UUIDToPgtype(id)).Scan(
		&roomID, &view.Number, &view.Floor, &view.Status, &roomTypeID,
		&view.RoomTypeName, &view.Capacity, &view.NightlyRateCents,
		&view.Description, &view.Media, &createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find room", err)
	}

	view.ID = uuid.UUID(roomID.Bytes)
	view.RoomTypeID = uuid.UUID(roomTypeID.Bytes)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	view.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
	return &view, nil
}

// SearchAvailable applies the availability test as a NOT EXISTS over active
// reservations, with the same boundary-inclusive range logic the write side
// uses. Maintenance rooms never appear regardless of dates.
func (s *RoomReadStore) SearchAvailable(ctx context.Context, filter queries.RoomSearchFilter) ([]*queries.RoomListItem, error) {
	const q = `
		SELECT r.id, r.number, r.floor, r.status,
		       rt.name, rt.capacity,
		       COALESCE(r.rate_override_cents, rt.base_rate_cents)
		FROM rooms r
		JOIN room_types rt ON rt.id = r.room_type_id
		WHERE r.status <> 'maintenance'
		  AND ($1::uuid IS NULL OR r.room_type_id = $1)
		  AND ($2::int IS NULL OR rt.capacity >= $2)
		  AND ($3::date IS NULL OR NOT EXISTS (
		        SELECT 1 FROM reservations res
		        WHERE res.room_id = r.id
		          AND res.status IN ('pending', 'confirmed')
		          AND (
		              (res.arrival BETWEEN $3 AND $4)
		              OR (res.departure BETWEEN $3 AND $4)
		              OR (res.arrival < $3 AND res.departure > $4)
		          )
		      ))
		ORDER BY r.number`

	rows, err := s.pool.Query(ctx, q,
		pgconv.UUIDPtrToPgtype(filter.RoomTypeID),
		pgconv.IntPtrToPgtype(filter.Capacity),
		pgconv.DatePtrToPgtype(filter.Arrival),
		pgconv.DatePtrToPgtype(filter.Departure),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search rooms", err)
	}
	defer rows.Close()

	var items []*queries.RoomListItem
	for rows.Next() {
		var (
			roomID pgtype.UUID
			item   queries.RoomListItem
		)
		if err := rows.Scan(
			&roomID, &item.Number, &item.Floor, &item.Status,
			&item.RoomTypeName, &item.Capacity, &item.NightlyRateCents,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room row", err)
		}
		item.ID = uuid.UUID(roomID.Bytes)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room rows", err)
	}
	return items, nil
}

func (s *RoomReadStore) ListTypes(ctx context.Context) ([]*queries.RoomTypeView, error) {
	const q = `
		SELECT id, name, capacity, base_rate_cents, description, created_at, updated_at
		FROM room_types
		ORDER BY name`

	rows, err := s.pool.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list room types", err)
	}
	defer rows.Close()

	var items []*queries.RoomTypeView
	for rows.Next() {
		var (
			typeID    pgtype.UUID
			item      queries.RoomTypeView
			createdAt pgtype.Timestamptz
			updatedAt pgtype.Timestamptz
		)
		if err := rows.Scan(
			&typeID, &item.Name, &item.Capacity, &item.BaseRateCents,
			&item.Description, &createdAt, &updatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan room type row", err)
		}
		item.ID = uuid.UUID(typeID.Bytes)
		item.CreatedAt = pgconv.TimeFromPgtype(createdAt)
		item.UpdatedAt = pgconv.TimeFromPgtype(updatedAt)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate room type rows", err)
	}
	return items, nil
}
