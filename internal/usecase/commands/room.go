package commands

import (
	"context"

	"innkeeper/internal/domain/room"
	"innkeeper/internal/infra"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRoomTypeInput struct {
	Name          string
	Capacity      int
	BaseRateCents int64
	Description   string
}

type CreateRoomInput struct {
	Number            string
	Floor             int
	RoomTypeID        uuid.UUID
	RateOverrideCents *int64
	Media             []string
}

type RoomCommands interface {
	CreateType(ctx context.Context, actor shared.Actor, in CreateRoomTypeInput) (uuid.UUID, error)
	Create(ctx context.Context, actor shared.Actor, in CreateRoomInput) (uuid.UUID, error)
	// SetMaintenance flips a room in or out of maintenance. Coming out of
	// maintenance the status is recomputed from active reservations rather
	// than blindly reset to available.
	SetMaintenance(ctx context.Context, actor shared.Actor, roomID uuid.UUID, on bool) error
}

type roomCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRoomCommands(uow shared.UnitOfWork, clk clock.Clock) RoomCommands {
	return &roomCommandsImpl{uow: uow, clock: clk}
}

func (c *roomCommandsImpl) CreateType(ctx context.Context, actor shared.Actor, in CreateRoomTypeInput) (uuid.UUID, error) {
	if !actor.IsAdmin() {
		return uuid.Nil, errs.Mark(errs.New("room catalog is staff only"), errs.ErrForbidden)
	}

	roomType, err := room.NewRoomType(uuid.Nil, in.Name, in.Capacity, in.BaseRateCents, in.Description, c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, err := tx.Rooms().CreateType(ctx, tx.DB(), roomType)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrValidation)
			}
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (c *roomCommandsImpl) Create(ctx context.Context, actor shared.Actor, in CreateRoomInput) (uuid.UUID, error) {
	if !actor.IsAdmin() {
		return uuid.Nil, errs.Mark(errs.New("room catalog is staff only"), errs.ErrForbidden)
	}

	newRoom, err := room.NewRoom(uuid.Nil, in.Number, in.Floor, in.RoomTypeID, in.RateOverrideCents, in.Media, c.clock.Now())
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	var id uuid.UUID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, err := tx.Rooms().Create(ctx, tx.DB(), newRoom)
		if err != nil {
			if infra.IsKind(err, infra.KindForeignKeyViolated) {
				return errs.Mark(err, errs.ErrRoomTypeNotFound)
			}
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.Mark(err, errs.ErrValidation)
			}
			return err
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

func (c *roomCommandsImpl) SetMaintenance(ctx context.Context, actor shared.Actor, roomID uuid.UUID, on bool) error {
	if !actor.IsAdmin() {
		return errs.Mark(errs.New("maintenance control is staff only"), errs.ErrForbidden)
	}

	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Rooms().LockByID(ctx, tx.DB(), roomID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrRoomNotFound)
			}
			return err
		}

		if on {
			return tx.Rooms().SetMaintenance(ctx, tx.DB(), roomID, true)
		}

		if err := tx.Rooms().SetMaintenance(ctx, tx.DB(), roomID, false); err != nil {
			return err
		}
		return tx.Rooms().RecomputeStatus(ctx, tx.DB(), roomID)
	})
}
