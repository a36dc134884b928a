package repository

import (
	"context"

	"innkeeper/internal/domain/room"
	"innkeeper/internal/infra"
	"innkeeper/internal/infra/db"
	"innkeeper/internal/pkg/pgconv"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type RoomRepository struct{}

func NewRoomRepository() shared.RoomRepository {
	return &RoomRepository{}
}

func (r *RoomRepository) CreateType(ctx context.Context, tx db.DBTX, t *room.RoomType) (uuid.UUID, error) {
	const q = `
		INSERT INTO room_types (id, name, capacity, base_rate_cents, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	var id pgtype.UUID
	err := tx.QueryRow(ctx, q,
		pgconv.UUIDToPgtype(t.ID()),
		t.Name(),
		t.Capacity(),
		t.BaseRateCents(),
		t.Description(),
		pgconv.TimeToPgtype(t.CreatedAt()),
		pgconv.TimeToPgtype(t.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create room type", err)
	}
	return uuid.UUID(id.Bytes), nil
}

func (r *RoomRepository) Create(ctx context.Context, tx db.DBTX, rm *room.Room) (uuid.UUID, error) {
	const q = `
		INSERT INTO rooms (id, number, floor, room_type_id, status, rate_override_cents, media, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	var id pgtype.UUID
	err := tx.QueryRow(ctx, q,
		pgconv.UUIDToPgtype(rm.ID()),
		rm.Number(),
		rm.Floor(),
		pgconv.UUIDToPgtype(rm.RoomTypeID()),
		string(rm.Status()),
		pgconv.Int64PtrToPgtype(rm.RateOverride()),
		rm.Media(),
		pgconv.TimeToPgtype(rm.CreatedAt()),
		pgconv.TimeToPgtype(rm.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create room", err)
	}
	return uuid.UUID(id.Bytes), nil
}

// LockByID acquires a row lock on the room, serializing reservation writes
// for that room until the surrounding transaction ends.
func (r *RoomRepository) LockByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*shared.RoomSnapshot, error) {
	const q = `
		SELECT r.id, r.number, r.floor, r.room_type_id, r.status,
		       rt.capacity, rt.base_rate_cents, r.rate_override_cents
		FROM rooms r
		JOIN room_types rt ON rt.id = r.room_type_id
		WHERE r.id = $1
		FOR UPDATE OF r`

	var (
		roomID       pgtype.UUID
		number       string
		floor        int
		roomTypeID   pgtype.UUID
		status       string
		capacity     int
		baseRate     int64
		rateOverride pgtype.Int8
	)
	err := tx.QueryRow(ctx, q, pgconv.UUIDToPgtype(id)).Scan(
		&roomID, &number, &floor, &roomTypeID, &status, &capacity, &baseRate, &rateOverride,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock room", err)
	}

	return &shared.RoomSnapshot{
		ID:                uuid.UUID(roomID.Bytes),
		Number:            number,
		Floor:             floor,
		RoomTypeID:        uuid.UUID(roomTypeID.Bytes),
		Status:            status,
		Capacity:          capacity,
		BaseRateCents:     baseRate,
		OverrideRateCents: pgconv.Int64PtrFromPgtype(rateOverride),
	}, nil
}

func (r *RoomRepository) SetMaintenance(ctx context.Context, tx db.DBTX, id uuid.UUID, on bool) error {
	const q = `
		UPDATE rooms
		SET status = CASE WHEN $2 THEN 'maintenance' ELSE 'available' END,
		    updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, q, pgconv.UUIDToPgtype(id), on)
	if err != nil {
		return infra.WrapRepoErr("failed to set maintenance", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}

// RecomputeStatus derives rooms.status from scratch: maintenance is sticky,
// otherwise occupied exactly when the room has at least one active
// (pending or confirmed) reservation, regardless of its dates.
// Derivation instead of increment/decrement keeps the column from drifting.
func (r *RoomRepository) RecomputeStatus(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	const q = `
		UPDATE rooms
		SET status = CASE
		        WHEN status = 'maintenance' THEN 'maintenance'
		        WHEN EXISTS (
		            SELECT 1 FROM reservations res
		            WHERE res.room_id = rooms.id
		              AND res.status IN ('pending', 'confirmed')
		        ) THEN 'occupied'
		        ELSE 'available'
		    END,
		    updated_at = now()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, q, pgconv.UUIDToPgtype(id))
	if err != nil {
		return infra.WrapRepoErr("failed to recompute room status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return nil
}
