//go:build unit

package room_test

import (
	"testing"
	"time"

	"innkeeper/internal/domain/room"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func TestNewRoomType(t *testing.T) {
	t.Run("valid type", func(t *testing.T) {
		rt, err := room.NewRoomType(uuid.Nil, " Deluxe Double ", 2, 15000, "Sea view", testNow)
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, rt.ID())
		assert.Equal(t, "Deluxe Double", rt.Name())
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := room.NewRoomType(uuid.Nil, "   ", 2, 15000, "", testNow)
		assert.ErrorIs(t, err, room.ErrEmptyTypeName)
	})

	t.Run("zero capacity", func(t *testing.T) {
		_, err := room.NewRoomType(uuid.Nil, "Single", 0, 15000, "", testNow)
		assert.ErrorIs(t, err, room.ErrInvalidCapacity)
	})

	t.Run("negative rate", func(t *testing.T) {
		_, err := room.NewRoomType(uuid.Nil, "Single", 1, -1, "", testNow)
		assert.ErrorIs(t, err, room.ErrNegativeRate)
	})
}

func TestNewRoom(t *testing.T) {
	t.Run("valid room starts available", func(t *testing.T) {
		r, err := room.NewRoom(uuid.Nil, "204", 2, uuid.New(), nil, nil, testNow)
		require.NoError(t, err)
		assert.Equal(t, room.StatusAvailable, r.Status())
	})

	t.Run("empty number", func(t *testing.T) {
		_, err := room.NewRoom(uuid.Nil, " ", 2, uuid.New(), nil, nil, testNow)
		assert.ErrorIs(t, err, room.ErrEmptyNumber)
	})

	t.Run("negative override rate", func(t *testing.T) {
		override := int64(-100)
		_, err := room.NewRoom(uuid.Nil, "204", 2, uuid.New(), &override, nil, testNow)
		assert.ErrorIs(t, err, room.ErrNegativeRate)
	})
}

func TestEffectiveRateCents(t *testing.T) {
	t.Run("falls back to base rate", func(t *testing.T) {
		r, err := room.NewRoom(uuid.Nil, "204", 2, uuid.New(), nil, nil, testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(12000), r.EffectiveRateCents(12000))
	})

	t.Run("override wins", func(t *testing.T) {
		override := int64(18000)
		r, err := room.NewRoom(uuid.Nil, "204", 2, uuid.New(), &override, nil, testNow)
		require.NoError(t, err)
		assert.Equal(t, int64(18000), r.EffectiveRateCents(12000))
	})
}

func TestStatusBookable(t *testing.T) {
	assert.True(t, room.StatusAvailable.Bookable())
	assert.True(t, room.StatusOccupied.Bookable())
	assert.False(t, room.StatusMaintenance.Bookable())
}
