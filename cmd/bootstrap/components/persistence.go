package components

import (
	"innkeeper/internal/infra/readstore"
	"innkeeper/internal/infra/repository"
	"innkeeper/internal/infra/uow"

	"go.uber.org/fx"
)

// Repositories and readstores already return their port interfaces, so no
// fx.As annotations are needed here. The unit of work builds its own
// transaction-bound repository set internally; only the user repository is
// injected separately because account writes run outside the reservation
// transaction surface.
var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		uow.NewPostgresUoW,
		repository.NewUserRepository,
		readstore.NewRoomReadStore,
		readstore.NewReservationReadStore,
		readstore.NewReviewReadStore,
		readstore.NewUserReadStore,
	),
)
