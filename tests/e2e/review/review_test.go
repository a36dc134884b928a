//go:build e2e

package review_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"innkeeper/internal/domain/user"
	"innkeeper/internal/handler/dto/request"
	"innkeeper/internal/handler/dto/response"
	"innkeeper/tests/common/authtest"
	"innkeeper/tests/common/dbtest"
	"innkeeper/tests/common/httptest"
	"innkeeper/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reviewsURL     = "/api/reviews"
	roomReviewsURL = "/api/rooms/%s/reviews"
	roomDetailURL  = "/api/rooms/%s"
	pendingURL     = "/api/admin/reviews/pending"
	moderateURL    = "/api/admin/reviews/%s/moderate"
)

type ReviewSuite struct {
	e2e.SharedSuite
}

func TestReviewSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(ReviewSuite))
}

// completedStay seeds a room plus a finished reservation owned by userID.
func (s *ReviewSuite) completedStay(userID uuid.UUID) (roomID, reservationID uuid.UUID) {
	typeID := dbtest.CreateTestRoomType(s.T(), s.DB, "Deluxe Double", 2, 12000)
	roomID = dbtest.CreateTestRoom(s.T(), s.DB, "204", 2, typeID)

	arrival := time.Now().UTC().AddDate(0, 0, -10)
	reservationID = dbtest.CreateTestReservation(s.T(), s.DB, roomID, &userID, "completed",
		arrival, arrival.AddDate(0, 0, 3))
	return roomID, reservationID
}

func submitRequest(reservationID uuid.UUID, rating int) request.SubmitReviewRequest {
	return request.SubmitReviewRequest{
		ReservationID: reservationID,
		Rating:        rating,
		Comment:       "Spotless room and a great view.",
	}
}

func (s *ReviewSuite) TestSubmitReview() {
	s.Run("guest reviews a completed stay", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleGuest))
		_, reservationID := s.completedStay(userID)
		token := authtest.LoginUser(t, s.Router, "guest@example.com", dbtest.TestPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL,
			submitRequest(reservationID, 5), token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.CreatedResponse
		httptest.DecodeResponseBody(t, w.Body, &created)
		require.NotEqual(t, uuid.Nil, created.ID)
	})

	s.Run("stay that is not completed cannot be reviewed", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleGuest))
		typeID := dbtest.CreateTestRoomType(t, s.DB, "Deluxe Double", 2, 12000)
		roomID := dbtest.CreateTestRoom(t, s.DB, "204", 2, typeID)
		arrival := time.Now().UTC().AddDate(0, 0, 7)
		reservationID := dbtest.CreateTestReservation(t, s.DB, roomID, &userID, "confirmed",
			arrival, arrival.AddDate(0, 0, 2))

		token := authtest.LoginUser(t, s.Router, "guest@example.com", dbtest.TestPassword)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL,
			submitRequest(reservationID, 5), token)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
	})

	s.Run("second review for the same stay is a conflict", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleGuest))
		_, reservationID := s.completedStay(userID)
		token := authtest.LoginUser(t, s.Router, "guest@example.com", dbtest.TestPassword)

		w1 := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL,
			submitRequest(reservationID, 5), token)
		require.Equal(t, http.StatusCreated, w1.Code, w1.Body.String())

		w2 := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL,
			submitRequest(reservationID, 3), token)
		require.Equal(t, http.StatusConflict, w2.Code, w2.Body.String())
	})

	s.Run("only the guest who stayed may review", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "owner@example.com", string(user.RoleGuest))
		_, reservationID := s.completedStay(ownerID)

		token := authtest.CreateAndLogin(t, s.DB, s.Router, "other@example.com", string(user.RoleGuest))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL,
			submitRequest(reservationID, 5), token)
		require.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	})

	s.Run("unauthenticated submission is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL,
			submitRequest(uuid.New(), 5), "")
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func (s *ReviewSuite) TestModerationFlow() {
	s.Run("approved review reaches the public feed and the rating aggregate", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleGuest))
		roomID, reservationID := s.completedStay(userID)
		guestToken := authtest.LoginUser(t, s.Router, "guest@example.com", dbtest.TestPassword)
		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL,
			submitRequest(reservationID, 4), guestToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var created response.CreatedResponse
		httptest.DecodeResponseBody(t, w.Body, &created)

		// Pending reviews never show up publicly.
		feedURL := fmt.Sprintf(roomReviewsURL, roomID)
		fw := httptest.PerformRequest(t, s.Router, http.MethodGet, feedURL, nil, "")
		require.Equal(t, http.StatusOK, fw.Code)
		var emptyFeed response.ReviewListResponse
		httptest.DecodeResponseBody(t, fw.Body, &emptyFeed)
		require.Empty(t, emptyFeed.Items)

		// The moderation queue shows it.
		pw := httptest.PerformRequest(t, s.Router, http.MethodGet, pendingURL, nil, adminToken)
		require.Equal(t, http.StatusOK, pw.Code, pw.Body.String())
		var pending []*response.ReviewResponse
		httptest.DecodeResponseBody(t, pw.Body, &pending)
		require.Len(t, pending, 1)
		require.Equal(t, created.ID, pending[0].ID)

		mw := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(moderateURL, created.ID),
			request.ModerateReviewRequest{Decision: "approve"}, adminToken)
		require.Equal(t, http.StatusNoContent, mw.Code, mw.Body.String())

		fw2 := httptest.PerformRequest(t, s.Router, http.MethodGet, feedURL, nil, "")
		require.Equal(t, http.StatusOK, fw2.Code)
		var feed response.ReviewListResponse
		httptest.DecodeResponseBody(t, fw2.Body, &feed)
		require.Len(t, feed.Items, 1)
		require.Equal(t, 4, feed.Items[0].Rating)

		dw := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(roomDetailURL, roomID), nil, "")
		require.Equal(t, http.StatusOK, dw.Code)
		var detail response.RoomDetailResponse
		httptest.DecodeResponseBody(t, dw.Body, &detail)
		require.Equal(t, int64(1), detail.ReviewCount)
		require.InDelta(t, 4.0, detail.AverageRating, 0.001)
		require.Equal(t, []int64{0, 0, 0, 1, 0}, detail.RatingCounts)
	})

	s.Run("rejected review stays out of the feed", func() {
		t := s.T()

		userID := dbtest.CreateTestUser(t, s.DB, "guest@example.com", string(user.RoleGuest))
		roomID, reservationID := s.completedStay(userID)
		guestToken := authtest.LoginUser(t, s.Router, "guest@example.com", dbtest.TestPassword)
		adminToken := authtest.CreateAndLogin(t, s.DB, s.Router, "admin@example.com", string(user.RoleAdmin))

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reviewsURL,
			submitRequest(reservationID, 2), guestToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var created response.CreatedResponse
		httptest.DecodeResponseBody(t, w.Body, &created)

		mw := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(moderateURL, created.ID),
			request.ModerateReviewRequest{Decision: "reject"}, adminToken)
		require.Equal(t, http.StatusNoContent, mw.Code, mw.Body.String())

		fw := httptest.PerformRequest(t, s.Router, http.MethodGet, fmt.Sprintf(roomReviewsURL, roomID), nil, "")
		require.Equal(t, http.StatusOK, fw.Code)
		var feed response.ReviewListResponse
		httptest.DecodeResponseBody(t, fw.Body, &feed)
		require.Empty(t, feed.Items)
	})

	s.Run("moderation endpoints are staff only", func() {
		t := s.T()

		guestToken := authtest.CreateAndLogin(t, s.DB, s.Router, "guest@example.com", string(user.RoleGuest))

		pw := httptest.PerformRequest(t, s.Router, http.MethodGet, pendingURL, nil, guestToken)
		require.Equal(t, http.StatusForbidden, pw.Code)

		mw := httptest.PerformRequest(t, s.Router, http.MethodPut, fmt.Sprintf(moderateURL, uuid.New()),
			request.ModerateReviewRequest{Decision: "approve"}, guestToken)
		require.Equal(t, http.StatusForbidden, mw.Code)
	})
}
