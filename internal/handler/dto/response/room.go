package response

import (
	"time"

	"innkeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RoomResponse struct {
	ID               uuid.UUID `json:"id"`
	Number           string    `json:"number"`
	Floor            int       `json:"floor"`
	Status           string    `json:"status"`
	RoomTypeID       uuid.UUID `json:"room_type_id"`
	RoomTypeName     string    `json:"room_type_name"`
	Capacity         int       `json:"capacity"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
	Description      string    `json:"description,omitempty"`
	Media            []string  `json:"media,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type RoomListItemResponse struct {
	ID               uuid.UUID `json:"id"`
	Number           string    `json:"number"`
	Floor            int       `json:"floor"`
	Status           string    `json:"status"`
	RoomTypeName     string    `json:"room_type_name"`
	Capacity         int       `json:"capacity"`
	NightlyRateCents int64     `json:"nightly_rate_cents"`
}

type RoomTypeResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Capacity      int       `json:"capacity"`
	BaseRateCents int64     `json:"base_rate_cents"`
	Description   string    `json:"description,omitempty"`
}

// RoomDetailResponse bundles the room with its rating aggregate for the
// public detail page.
type RoomDetailResponse struct {
	Room          *RoomResponse `json:"room"`
	ReviewCount   int64         `json:"review_count"`
	AverageRating float64       `json:"average_rating"`
	RatingCounts  []int64       `json:"rating_counts"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromRoomView(view *queries.RoomView) *RoomResponse {
	var resp RoomResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromRoomList(items []*queries.RoomListItem) []*RoomListItemResponse {
	out := make([]*RoomListItemResponse, len(items))
	for i, item := range items {
		var resp RoomListItemResponse
		_ = copier.Copy(&resp, item)
		out[i] = &resp
	}
	return out
}

func FromRoomTypeViews(views []*queries.RoomTypeView) []*RoomTypeResponse {
	out := make([]*RoomTypeResponse, len(views))
	for i, view := range views {
		var resp RoomTypeResponse
		_ = copier.Copy(&resp, view)
		out[i] = &resp
	}
	return out
}
