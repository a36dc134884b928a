package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateRoomTypeRequest struct {
	Name          string `json:"name" binding:"required"`
	Capacity      int    `json:"capacity" binding:"required,min=1"`
	BaseRateCents int64  `json:"base_rate_cents" binding:"required,min=0"`
	Description   string `json:"description,omitempty"`
}

type CreateRoomRequest struct {
	Number            string    `json:"number" binding:"required"`
	Floor             int       `json:"floor"`
	RoomTypeID        uuid.UUID `json:"room_type_id" binding:"required"`
	RateOverrideCents *int64    `json:"rate_override_cents,omitempty" binding:"omitempty,min=0"`
	Media             []string  `json:"media,omitempty" binding:"omitempty,dive,url"`
}

// Pointer so binding can tell "false" from "missing".
type SetMaintenanceRequest struct {
	On *bool `json:"on" binding:"required"`
}

type SearchRoomsRequest struct {
	Arrival    string `form:"arrival" binding:"omitempty,datetime=2006-01-02"`
	Departure  string `form:"departure" binding:"omitempty,datetime=2006-01-02"`
	RoomTypeID string `form:"room_type_id" binding:"omitempty,uuid"`
	Capacity   int    `form:"capacity" binding:"omitempty,min=1"`
}

func (r SearchRoomsRequest) ArrivalDate() *time.Time {
	return parseOptionalDate(r.Arrival)
}

func (r SearchRoomsRequest) DepartureDate() *time.Time {
	return parseOptionalDate(r.Departure)
}

func (r SearchRoomsRequest) RoomType() *uuid.UUID {
	if r.RoomTypeID == "" {
		return nil
	}
	id, err := uuid.Parse(r.RoomTypeID)
	if err != nil {
		return nil
	}
	return &id
}

func (r SearchRoomsRequest) CapacityFilter() *int {
	if r.Capacity <= 0 {
		return nil
	}
	c := r.Capacity
	return &c
}

func parseOptionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
