package response

import (
	"time"

	"innkeeper/internal/usecase/queries"
	"innkeeper/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID         uuid.UUID  `json:"id"`
	Reference  string     `json:"reference"`
	RoomID     uuid.UUID  `json:"room_id"`
	RoomNumber string     `json:"room_number,omitempty"`
	UserID     *uuid.UUID `json:"user_id,omitempty"`
	Status     string     `json:"status"`
	Arrival    string     `json:"arrival"`
	Departure  string     `json:"departure"`
	Nights     int        `json:"nights"`
	TotalCents int64      `json:"total_cents"`
	GuestName  string     `json:"guest_name"`
	GuestEmail string     `json:"guest_email"`
	GuestPhone string     `json:"guest_phone"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ReservationListItemResponse struct {
	ID         uuid.UUID `json:"id"`
	Reference  string    `json:"reference"`
	RoomNumber string    `json:"room_number"`
	Status     string    `json:"status"`
	Arrival    string    `json:"arrival"`
	Departure  string    `json:"departure"`
	TotalCents int64     `json:"total_cents"`
	GuestName  string    `json:"guest_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReservationListResponse struct {
	Items      []*ReservationListItemResponse `json:"items"`
	NextCursor string                         `json:"next_cursor,omitempty"`
}

const dateLayout = "2006-01-02"

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, view)
	resp.Arrival = view.Arrival.Format(dateLayout)
	resp.Departure = view.Departure.Format(dateLayout)
	return &resp
}

func FromReservationSnapshot(snap *shared.ReservationSnapshot) *ReservationResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, snap)
	resp.Arrival = snap.Arrival.Format(dateLayout)
	resp.Departure = snap.Departure.Format(dateLayout)
	resp.Nights = int(snap.Departure.Sub(snap.Arrival).Hours() / 24)
	return &resp
}

func FromReservationList(items []*queries.ReservationListItem, next *queries.Cursor) *ReservationListResponse {
	out := &ReservationListResponse{
		Items: make([]*ReservationListItemResponse, len(items)),
	}
	for i, item := range items {
		var resp ReservationListItemResponse
		_ = copier.Copy(&resp, item)
		resp.Arrival = item.Arrival.Format(dateLayout)
		resp.Departure = item.Departure.Format(dateLayout)
		out.Items[i] = &resp
	}
	if next != nil {
		out.NextCursor = next.After
	}
	return out
}
