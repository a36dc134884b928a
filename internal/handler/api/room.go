package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "innkeeper/internal/handler/dto/request"
	resdto "innkeeper/internal/handler/dto/response"
	"innkeeper/internal/handler/middleware"
	"innkeeper/internal/pkg/errs"
	"innkeeper/internal/usecase/commands"
	"innkeeper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	roomCommands commands.RoomCommands
	roomQueries  queries.RoomQueries
	reviews      queries.ReviewQueries
}

func NewRoomHandler(roomCommands commands.RoomCommands, roomQueries queries.RoomQueries, reviews queries.ReviewQueries) *RoomHandler {
	return &RoomHandler{
		roomCommands: roomCommands,
		roomQueries:  roomQueries,
		reviews:      reviews,
	}
}

// @Summary Search rooms
// @Description Search bookable rooms, optionally for a stay date range
// @Tags rooms
// @Produce json
// @Param arrival query string false "Arrival date (2006-01-02)"
// @Param departure query string false "Departure date (2006-01-02)"
// @Param room_type_id query string false "Room type filter"
// @Param capacity query int false "Minimum capacity"
// @Success 200 {array} resdto.RoomListItemResponse
// @Failure 400 {object} map[string]string
// @Router /rooms [get]
func (h *RoomHandler) Search(c *gin.Context) {
	var req reqdto.SearchRoomsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	items, err := h.roomQueries.CheckAvailability(c.Request.Context(), queries.RoomSearchFilter{
		Arrival:    req.ArrivalDate(),
		Departure:  req.DepartureDate(),
		RoomTypeID: req.RoomType(),
		Capacity:   req.CapacityFilter(),
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid date range",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRoomList(items))
}

// @Summary Get room
// @Description Get room details with its rating aggregate
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} resdto.RoomDetailResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rooms/{id} [get]
func (h *RoomHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	view, err := h.roomQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRoomNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Room not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	stats, err := h.reviews.GetRoomRatingStats(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.RoomDetailResponse{
		Room:          resdto.FromRoomView(view),
		ReviewCount:   stats.ReviewCount,
		AverageRating: stats.AverageRating,
		RatingCounts:  stats.RatingCounts,
	})
}

// @Summary List room types
// @Tags rooms
// @Produce json
// @Success 200 {array} resdto.RoomTypeResponse
// @Router /room-types [get]
func (h *RoomHandler) ListTypes(c *gin.Context) {
	views, err := h.roomQueries.ListTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomTypeViews(views))
}

// @Summary List room reviews
// @Description Approved reviews for a room, newest first
// @Tags rooms
// @Produce json
// @Param id path string true "Room ID"
// @Param limit query int false "Page size"
// @Param after query string false "Pagination cursor"
// @Success 200 {object} resdto.ReviewListResponse
// @Failure 400 {object} map[string]string
// @Router /rooms/{id}/reviews [get]
func (h *RoomHandler) ListReviews(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	limit := parseLimit(c)
	cursor := parseCursor(c)

	items, next, err := h.reviews.ListApprovedByRoom(c.Request.Context(), id, limit, cursor)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid pagination cursor",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReviewList(items, next))
}

// @Summary Create room type
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomTypeRequest true "Room type"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/room-types [post]
func (h *RoomHandler) CreateType(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.roomCommands.CreateType(c.Request.Context(), actor, commands.CreateRoomTypeInput{
		Name:          req.Name,
		Capacity:      req.Capacity,
		BaseRateCents: req.BaseRateCents,
		Description:   req.Description,
	})
	if err != nil {
		respondRoomCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Create room
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRoomRequest true "Room"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.roomCommands.Create(c.Request.Context(), actor, commands.CreateRoomInput{
		Number:            req.Number,
		Floor:             req.Floor,
		RoomTypeID:        req.RoomTypeID,
		RateOverrideCents: req.RateOverrideCents,
		Media:             req.Media,
	})
	if err != nil {
		respondRoomCommandError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Set room maintenance
// @Tags admin
// @Accept json
// @Security BearerAuth
// @Param id path string true "Room ID"
// @Param request body reqdto.SetMaintenanceRequest true "Maintenance flag"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/rooms/{id}/maintenance [put]
func (h *RoomHandler) SetMaintenance(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid room ID format",
		})
		return
	}

	var req reqdto.SetMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.roomCommands.SetMaintenance(c.Request.Context(), actor, id, *req.On); err != nil {
		respondRoomCommandError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondRoomCommandError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Insufficient permissions",
		})
	case errors.Is(err, errs.ErrRoomNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Room not found",
		})
	case errors.Is(err, errs.ErrRoomTypeNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Room type not found",
		})
	case errors.Is(err, errs.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request data",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

func parseLimit(c *gin.Context) int {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	return limit
}

func parseCursor(c *gin.Context) *queries.Cursor {
	after := c.Query("after")
	if after == "" {
		return nil
	}
	return &queries.Cursor{After: after}
}
