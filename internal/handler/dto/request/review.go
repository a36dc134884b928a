package request

import (
	"github.com/google/uuid"
)

type SubmitReviewRequest struct {
	ReservationID uuid.UUID `json:"reservation_id" binding:"required"`
	Rating        int       `json:"rating" binding:"required,min=1,max=5"`
	Comment       string    `json:"comment" binding:"required"`
	Images        []string  `json:"images" binding:"omitempty,max=5,dive,url"`
}

type ModerateReviewRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approve reject"`
}
