package components

import (
	"innkeeper/internal/documents"
	"innkeeper/internal/domain/reservation"
	"innkeeper/internal/notify"
	"innkeeper/internal/pkg/clock"
	"innkeeper/internal/pkg/config"
	"innkeeper/internal/usecase/commands"
	"innkeeper/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		reservation.NewNightlyPriceCalculator,
		fx.As(new(reservation.PriceCalculator)),
	),
	notify.New,
	NewInvoiceRenderer,
	NewReservationExporter,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewRoomCommands,
		commands.NewReservationCommands,
		commands.NewReviewCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewUserQueries,
		queries.NewRoomQueries,
		queries.NewReservationQueries,
		queries.NewReviewQueries,
	),
)

func NewInvoiceRenderer(cfg config.Config) (*documents.InvoiceRenderer, error) {
	return documents.NewInvoiceRenderer(cfg.Hotel)
}

func NewReservationExporter(cfg config.Config) *documents.ReservationExporter {
	return documents.NewReservationExporter(cfg.Hotel.Currency)
}
