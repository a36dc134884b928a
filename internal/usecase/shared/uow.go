package shared

import (
	"context"
	"time"

	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/domain/review"
	"innkeeper/internal/domain/room"
	"innkeeper/internal/domain/user"
	"innkeeper/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry on
	// serialization failures and deadlocks.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	// CommandReads: Direct access to command reads outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Rooms() RoomRepository
	Reservations() ReservationRepository
	Reviews() ReviewRepository
	RatingStats() RatingStatsRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	RoomByID(ctx context.Context, id uuid.UUID) (*RoomSnapshot, error)
	ReservationByID(ctx context.Context, id uuid.UUID) (*ReservationSnapshot, error)
	ReviewByID(ctx context.Context, id uuid.UUID) (*ReviewSnapshot, error)
}

type RoomRepository interface {
	CreateType(ctx context.Context, tx db.DBTX, t *room.RoomType) (uuid.UUID, error)
	Create(ctx context.Context, tx db.DBTX, r *room.Room) (uuid.UUID, error)
	// LockByID takes a row-level lock on the room, serializing concurrent
	// reservation creates per room within the surrounding transaction.
	LockByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*RoomSnapshot, error)
	SetMaintenance(ctx context.Context, tx db.DBTX, id uuid.UUID, on bool) error
	// RecomputeStatus rewrites rooms.status from the active reservation set.
	// Always a full recompute, never an increment, so it cannot drift.
	RecomputeStatus(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status reservation.Status, updatedAt time.Time) error
	// HasOverlap runs the three-clause inclusive-boundary conflict test
	// against active reservations of the room.
	HasOverlap(ctx context.Context, tx db.DBTX, roomID uuid.UUID, arrival, departure time.Time) (bool, error)
}

type ReviewRepository interface {
	Create(ctx context.Context, tx db.DBTX, rev *review.Review) (uuid.UUID, error)
	UpdateModeration(ctx context.Context, tx db.DBTX, id uuid.UUID, status review.ModerationStatus, updatedAt time.Time) error
	ExistsForReservation(ctx context.Context, tx db.DBTX, reservationID uuid.UUID) (bool, error)
}

// UserRepository sits outside the Tx surface: account writes never share a
// transaction with the reservation engine.
type UserRepository interface {
	Create(ctx context.Context, tx db.DBTX, u *user.User) (uuid.UUID, error)
}

type RatingStatsRepository interface {
	// RecalcRoomRatingStats rebuilds the per-room aggregate from approved
	// reviews after every moderation decision.
	RecalcRoomRatingStats(ctx context.Context, tx db.DBTX, roomID uuid.UUID) error
}
