package readstore

import (
	"context"

	"innkeeper/internal/infra"
	"innkeeper/internal/infra/db"
	"innkeeper/internal/pkg/pgconv"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// CommandReads serves the snapshot reads commands make inside (and outside)
// transactions. Bound to whatever DBTX the caller is running on.
type CommandReads struct {
	db db.DBTX
}

func NewCommandReads(dbtx db.DBTX) shared.CommandReads {
	return &CommandReads{db: dbtx}
}

func (r *CommandReads) RoomByID(ctx context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	const q = `
		SELECT r.id, r.number, r.floor, r.room_type_id, r.status,
		       rt.capacity, rt.base_rate_cents, r.rate_override_cents
		FROM rooms r
		JOIN room_types rt ON rt.id = r.room_type_id
		WHERE r.id = $1`

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
	err := r.db.QueryRow(ctx, q, pgconv.UUIDToPgtype(id)).Scan(
		&roomID, &number, &floor, &roomTypeID, &status, &capacity, &baseRate, &rateOverride,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("room not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read room", err)
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

func (r *CommandReads) ReservationByID(ctx context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	const q = `
		SELECT id, reference, room_id, user_id, status,
		       arrival, departure, total_cents,
		       guest_name, guest_email, guest_phone,
		       created_at, updated_at
		FROM reservations
		WHERE id = $1`

	var (
		resID      pgtype.UUID
		reference  string
		roomID     pgtype.UUID
		userID     pgtype.UUID
		status     string
		arrival    pgtype.Date
		departure  pgtype.Date
		totalCents int64
		guestName  string
		guestEmail string
		guestPhone string
		createdAt  pgtype.Timestamptz
		updatedAt  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, q, pgconv.UUIDToPgtype(id)).Scan(
		&resID, &reference, &roomID, &userID, &status,
		&arrival, &departure, &totalCents,
		&guestName, &guestEmail, &guestPhone,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read reservation", err)
	}

	return &shared.ReservationSnapshot{
		ID:         uuid.UUID(resID.Bytes),
		Reference:  reference,
		RoomID:     uuid.UUID(roomID.Bytes),
		UserID:     pgconv.UUIDPtrFromPgtype(userID),
		Status:     status,
		Arrival:    pgconv.DateFromPgtype(arrival),
		Departure:  pgconv.DateFromPgtype(departure),
		TotalCents: totalCents,
		GuestName:  guestName,
		GuestEmail: guestEmail,
		GuestPhone: guestPhone,
		CreatedAt:  pgconv.TimeFromPgtype(createdAt),
		UpdatedAt:  pgconv.TimeFromPgtype(updatedAt),
	}, nil
}

func (r *CommandReads) ReviewByID(ctx context.Context, id uuid.UUID) (*shared.ReviewSnapshot, error) {
	const q = `
		SELECT id, author_id, room_id, reservation_id, rating, comment, status
		FROM reviews
		WHERE id = $1`

	var (
		reviewID      pgtype.UUID
		authorID      pgtype.UUID
		roomID        pgtype.UUID
		reservationID pgtype.UUID
		rating        int
		comment       string
		status        string
	)
	err := r.db.QueryRow(ctx, q, pgconv.UUIDToPgtype(id)).Scan(
		&reviewID, &authorID, &roomID, &reservationID, &rating, &comment, &status,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("review not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to read review", err)
	}

	return &shared.ReviewSnapshot{
		ID:            uuid.UUID(reviewID.Bytes),
		AuthorID:      uuid.UUID(authorID.Bytes),
		RoomID:        uuid.UUID(roomID.Bytes),
		ReservationID: uuid.UUID(reservationID.Bytes),
		Rating:        rating,
		Comment:       comment,
		Status:        status,
	}, nil
}
