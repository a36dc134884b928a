package commands

import (
	"context"

	"innkeeper/internal/usecase/shared"
)

// Notifier is the outbound side channel for reservation events. Delivery is
// best-effort: commands log and count failures but never roll back on them.
type Notifier interface {
	ReservationCreated(ctx context.Context, res *shared.ReservationSnapshot) error
	ReservationConfirmed(ctx context.Context, res *shared.ReservationSnapshot) error
	ReservationCancelled(ctx context.Context, res *shared.ReservationSnapshot) error
}
