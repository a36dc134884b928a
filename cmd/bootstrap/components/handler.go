package components

import (
	"innkeeper/internal/handler"
	"innkeeper/internal/handler/api"
	"innkeeper/internal/handler/middleware"
	"innkeeper/internal/pkg/config"
	"innkeeper/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewRoomHandler,
		api.NewReservationHandler,
		api.NewReviewHandler,
		func(svc *jwt.Service) middleware.TokenValidator { return svc },
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(registerRoutes),
)

func registerRoutes(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	roomHandler *api.RoomHandler,
	reservationHandler *api.ReservationHandler,
	reviewHandler *api.ReviewHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	handler.NewRouter(engine, cfg, handler.Handlers{
		Auth:        authHandler,
		Room:        roomHandler,
		Reservation: reservationHandler,
		Review:      reviewHandler,
	}, authMiddleware)
}
