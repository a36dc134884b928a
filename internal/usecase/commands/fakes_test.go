//go:build unit

package commands_test

import (
	"context"
	"time"

	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/domain/review"
	"innkeeper/internal/domain/room"
	"innkeeper/internal/domain/user"
	"innkeeper/internal/infra"
	"innkeeper/internal/infra/db"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

// Hand-written fakes over the repository ports. They record calls and replay
// canned results; no transaction semantics are simulated beyond passing the
// same fake set through Within.

type fakeReads struct {
	reservations map[uuid.UUID]*shared.ReservationSnapshot
	reviews      map[uuid.UUID]*shared.ReviewSnapshot
	rooms        map[uuid.UUID]*shared.RoomSnapshot
}

func newFakeReads() *fakeReads {
	return &fakeReads{
		reservations: map[uuid.UUID]*shared.ReservationSnapshot{},
		reviews:      map[uuid.UUID]*shared.ReviewSnapshot{},
		rooms:        map[uuid.UUID]*shared.RoomSnapshot{},
	}
}

func (f *fakeReads) RoomByID(_ context.Context, id uuid.UUID) (*shared.RoomSnapshot, error) {
	if snap, ok := f.rooms[id]; ok {
		return snap, nil
	}
	return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
}

func (f *fakeReads) ReservationByID(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	if snap, ok := f.reservations[id]; ok {
		return snap, nil
	}
	return nil, infra.WrapRepoErr("reservation not found", nil, infra.KindNotFound)
}

func (f *fakeReads) ReviewByID(_ context.Context, id uuid.UUID) (*shared.ReviewSnapshot, error) {
	if snap, ok := f.reviews[id]; ok {
		return snap, nil
	}
	return nil, infra.WrapRepoErr("review not found", nil, infra.KindNotFound)
}

type fakeRoomRepo struct {
	snapshot *shared.RoomSnapshot
	lockErr  error

	createTypeErr error
	createErr     error

	createdTypes []*room.RoomType
	createdRooms []*room.Room
	maintenance  []bool
	recomputed   int
}

func (f *fakeRoomRepo) CreateType(_ context.Context, _ db.DBTX, t *room.RoomType) (uuid.UUID, error) {
	if f.createTypeErr != nil {
		return uuid.Nil, f.createTypeErr
	}
	f.createdTypes = append(f.createdTypes, t)
	return t.ID(), nil
}

func (f *fakeRoomRepo) Create(_ context.Context, _ db.DBTX, r *room.Room) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.createdRooms = append(f.createdRooms, r)
	return r.ID(), nil
}

func (f *fakeRoomRepo) LockByID(_ context.Context, _ db.DBTX, _ uuid.UUID) (*shared.RoomSnapshot, error) {
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	if f.snapshot == nil {
		return nil, infra.WrapRepoErr("room not found", nil, infra.KindNotFound)
	}
	return f.snapshot, nil
}

func (f *fakeRoomRepo) SetMaintenance(_ context.Context, _ db.DBTX, _ uuid.UUID, on bool) error {
	f.maintenance = append(f.maintenance, on)
	return nil
}

func (f *fakeRoomRepo) RecomputeStatus(_ context.Context, _ db.DBTX, _ uuid.UUID) error {
	f.recomputed++
	return nil
}

type fakeReservationRepo struct {
	overlap    bool
	overlapErr error
	createErr  error

	created       []*reservation.Reservation
	statusUpdates []reservation.Status
}

func (f *fakeReservationRepo) Create(_ context.Context, _ db.DBTX, res *reservation.Reservation) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, res)
	return res.ID(), nil
}

func (f *fakeReservationRepo) UpdateStatus(_ context.Context, _ db.DBTX, _ uuid.UUID, status reservation.Status, _ time.Time) error {
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeReservationRepo) HasOverlap(_ context.Context, _ db.DBTX, _ uuid.UUID, _, _ time.Time) (bool, error) {
	if f.overlapErr != nil {
		return false, f.overlapErr
	}
	return f.overlap, nil
}

type fakeReviewRepo struct {
	exists    bool
	createErr error

	created     []*review.Review
	moderations []review.ModerationStatus
}

func (f *fakeReviewRepo) Create(_ context.Context, _ db.DBTX, rev *review.Review) (uuid.UUID, error) {
	if f.createErr != nil {
		return uuid.Nil, f.createErr
	}
	f.created = append(f.created, rev)
	return rev.ID(), nil
}

func (f *fakeReviewRepo) UpdateModeration(_ context.Context, _ db.DBTX, _ uuid.UUID, status review.ModerationStatus, _ time.Time) error {
	f.moderations = append(f.moderations, status)
	return nil
}

func (f *fakeReviewRepo) ExistsForReservation(_ context.Context, _ db.DBTX, _ uuid.UUID) (bool, error) {
	return f.exists, nil
}

type fakeStatsRepo struct {
	recalced []uuid.UUID
}

func (f *fakeStatsRepo) RecalcRoomRatingStats(_ context.Context, _ db.DBTX, roomID uuid.UUID) error {
	f.recalced = append(f.recalced, roomID)
	return nil
}

type fakeTx struct {
	rooms        *fakeRoomRepo
	reservations *fakeReservationRepo
	reviews      *fakeReviewRepo
	stats        *fakeStatsRepo
	reads        *fakeReads
}

func (t *fakeTx) Rooms() shared.RoomRepository               { return t.rooms }
func (t *fakeTx) Reservations() shared.ReservationRepository { return t.reservations }
func (t *fakeTx) Reviews() shared.ReviewRepository           { return t.reviews }
func (t *fakeTx) RatingStats() shared.RatingStatsRepository  { return t.stats }
func (t *fakeTx) Reads() shared.CommandReads                 { return t.reads }
func (t *fakeTx) DB() db.DBTX                                { return nil }

type fakeUoW struct {
	tx *fakeTx
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{tx: &fakeTx{
		rooms:        &fakeRoomRepo{},
		reservations: &fakeReservationRepo{},
		reviews:      &fakeReviewRepo{},
		stats:        &fakeStatsRepo{},
		reads:        newFakeReads(),
	}}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return u.tx.reads
}

type notifierCall struct {
	kind      string
	reference string
}

type fakeNotifier struct {
	failAll bool
	calls   []notifierCall
}

func (n *fakeNotifier) record(kind string, snap *shared.ReservationSnapshot) error {
	if n.failAll {
		return context.DeadlineExceeded
	}
	n.calls = append(n.calls, notifierCall{kind: kind, reference: snap.Reference})
	return nil
}

func (n *fakeNotifier) ReservationCreated(_ context.Context, snap *shared.ReservationSnapshot) error {
	return n.record("created", snap)
}

func (n *fakeNotifier) ReservationConfirmed(_ context.Context, snap *shared.ReservationSnapshot) error {
	return n.record("confirmed", snap)
}

func (n *fakeNotifier) ReservationCancelled(_ context.Context, snap *shared.ReservationSnapshot) error {
	return n.record("cancelled", snap)
}

func guestActor() shared.Actor {
	return shared.Actor{ID: uuid.New(), Role: user.RoleGuest}
}

func adminActor() shared.Actor {
	return shared.Actor{ID: uuid.New(), Role: user.RoleAdmin}
}
