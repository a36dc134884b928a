package repository

import (
	"context"
	"time"

	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/infra"
	"innkeeper/internal/infra/db"
	"innkeeper/internal/pkg/pgconv"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRepository struct{}

func NewReservationRepository() shared.ReservationRepository {
	return &ReservationRepository{}
}

func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	const q = `
		INSERT INTO reservations (
			id, reference, room_id, user_id, status,
			arrival, departure, total_cents,
			guest_name, guest_email, guest_phone,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`

	var id pgtype.UUID
	err := tx.QueryRow(ctx, q,
		pgconv.UUIDToPgtype(res.ID()),
		res.Reference(),
		pgconv.UUIDToPgtype(res.RoomID()),
		pgconv.UUIDPtrToPgtype(res.UserID()),
		string(res.Status()),
		pgconv.DateToPgtype(res.Stay().Arrival()),
		pgconv.DateToPgtype(res.Stay().Departure()),
		res.Price().Cents(),
		res.Guest().Name(),
		res.Guest().Email(),
		res.Guest().Phone(),
		pgconv.TimeToPgtype(res.CreatedAt()),
		pgconv.TimeToPgtype(res.UpdatedAt()),
	).Scan(&id)
	if err != nil {
		// 23P01 from the no-overlap exclusion constraint classifies as
		// CONFLICT here; the usecase turns it into the unavailable error.
		return uuid.Nil, infra.WrapRepoErr("failed to create reservation", err)
	}
	return uuid.UUID(id.Bytes), nil
}

func (r *ReservationRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status reservation.Status, updatedAt time.Time) error {
	const q = `
		UPDATE reservations
		SET status = $2, updated_at = $3
		WHERE id = $1`

	tag, err := tx.Exec(ctx, q, pgconv.UUIDToPgtype(id), string(status), pgconv.TimeToPgtype(updatedAt))
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
	}
	return nil
}

// HasOverlap runs the boundary-inclusive conflict test against active
// reservations: an existing arrival or departure inside the requested range,
// or an existing stay containing it, is a conflict. Touching dates conflict;
// same-day turnover is not supported.
func (r *ReservationRepository) HasOverlap(ctx context.Context, tx db.DBTX, roomID uuid.UUID, arrival, departure time.Time) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE room_id = $1
			  AND status IN ('pending', 'confirmed')
			  AND (
			      (arrival BETWEEN $2 AND $3)
			      OR (departure BETWEEN $2 AND $3)
			      OR (arrival < $2 AND departure > $3)
			  )
		)`

	var exists bool
	err := tx.QueryRow(ctx, q,
		pgconv.UUIDToPgtype(roomID),
		pgconv.DateToPgtype(arrival),
		pgconv.DateToPgtype(departure),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check reservation overlap", err)
	}
	return exists, nil
}
