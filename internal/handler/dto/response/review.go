package response

import (
	"time"

	"innkeeper/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReviewResponse struct {
	ID            uuid.UUID `json:"id"`
	AuthorID      uuid.UUID `json:"author_id"`
	RoomID        uuid.UUID `json:"room_id"`
	RoomNumber    string    `json:"room_number"`
	ReservationID uuid.UUID `json:"reservation_id"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	Images        []string  `json:"images,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ReviewListItemResponse struct {
	ID         uuid.UUID `json:"id"`
	AuthorName string    `json:"author_name"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Images     []string  `json:"images,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type ReviewListResponse struct {
	Items      []*ReviewListItemResponse `json:"items"`
	NextCursor string                    `json:"next_cursor,omitempty"`
}

func FromReviewView(view *queries.ReviewView) *ReviewResponse {
	var resp ReviewResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromReviewViews(views []*queries.ReviewView) []*ReviewResponse {
	out := make([]*ReviewResponse, len(views))
	for i, view := range views {
		out[i] = FromReviewView(view)
	}
	return out
}

func FromReviewList(items []*queries.ReviewListItem, next *queries.Cursor) *ReviewListResponse {
	out := &ReviewListResponse{
		Items: make([]*ReviewListItemResponse, len(items)),
	}
	for i, item := range items {
		var resp ReviewListItemResponse
		_ = copier.Copy(&resp, item)
		out.Items[i] = &resp
	}
	if next != nil {
		out.NextCursor = next.After
	}
	return out
}
