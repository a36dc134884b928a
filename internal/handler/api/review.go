package api

import (
	"errors"
	"net/http"

	reqdto "innkeeper/internal/handler/dto/request"
	resdto "innkeeper/internal/handler/dto/response"
	"innkeeper/internal/handler/middleware"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/commands"
	"innkeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	reviewCommands commands.ReviewCommands
	reviewQueries  queries.ReviewQueries
}

func NewReviewHandler(reviewCommands commands.ReviewCommands, reviewQueries queries.ReviewQueries) *ReviewHandler {
	return &ReviewHandler{
		reviewCommands: reviewCommands,
		reviewQueries:  reviewQueries,
	}
}

// @Summary Submit review
// @Description Review a completed stay; held for moderation before publishing
// @Tags reviews
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.SubmitReviewRequest true "Review"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.reviewCommands.Submit(c.Request.Context(), actor, commands.SubmitReviewInput{
		ReservationID: req.ReservationID,
		Rating:        req.Rating,
		Comment:       req.Comment,
		Images:        req.Images,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, errs.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only the guest who stayed can review",
			})
		case errors.Is(err, errs.ErrReviewNotEligible):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Stay is not completed",
			})
		case errors.Is(err, errs.ErrDuplicateReview):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation already reviewed",
			})
		case errors.Is(err, errs.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid review data",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary List pending reviews
// @Description Moderation queue, oldest first
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.ReviewResponse
// @Router /admin/reviews/pending [get]
func (h *ReviewHandler) ListPending(c *gin.Context) {
	views, err := h.reviewQueries.ListPending(c.Request.Context(), parseLimit(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromReviewViews(views))
}

// @Summary Moderate review
// @Description Approve or reject a review; the room rating aggregate is rebuilt
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "Review ID"
// @Param request body reqdto.ModerateReviewRequest true "Decision"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/reviews/{id}/moderate [put]
func (h *ReviewHandler) Moderate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid review ID format",
		})
		return
	}

	var req reqdto.ModerateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	err = h.reviewCommands.Moderate(c.Request.Context(), actor, commands.ModerateReviewInput{
		ReviewID: id,
		Decision: req.Decision,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Review not found",
			})
		case errors.Is(err, errs.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
		case errors.Is(err, errs.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid moderation decision",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}
