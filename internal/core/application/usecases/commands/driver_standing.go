package commands

import (
	"context"
	"log/slog"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/ports"
)

// MaxUnpaidDeliveredOrders is the number of delivered orders with
// unconfirmed commission a driver may accumulate before the account is
// deactivated. The policy is one-way: nothing in this subsystem ever sets
// the flag back to active.
const MaxUnpaidDeliveredOrders = 3

// evaluateDriverStanding applies the deactivation policy for one driver
// inside the caller's transaction. Returns whether the driver was
// deactivated by this call.
func evaluateDriverStanding(
	ctx context.Context,
	orders ports.OrderRepository,
	users ports.UserRepository,
	driverID kernel.UUID,
) (bool, error) {
	unpaid, err := orders.CountUnpaidDeliveredByDriver(ctx, driverID)
	if err != nil {
		return false, err
	}
	if unpaid < MaxUnpaidDeliveredOrders {
		return false, nil
	}

	active, err := users.IsActive(ctx, driverID)
	if err != nil {
		return false, err
	}
	if !active {
		// Already deactivated by an earlier evaluation.
		return false, nil
	}

	if err := users.SetActive(ctx, driverID, false); err != nil {
		return false, err
	}
	return true, nil
}

// SweepDriverStandingCommand triggers a full re-evaluation of the
// deactivation policy across all drivers. Carries no data.
type SweepDriverStandingCommand struct{}

// NewSweepDriverStandingCommand creates a command to sweep driver standing.
func NewSweepDriverStandingCommand() SweepDriverStandingCommand {
	return SweepDriverStandingCommand{}
}

// SweepDriverStandingHandler periodically re-applies the unpaid-commission
// deactivation policy. The inline checks after delivery and payment review
// normally keep driver standing current; the sweep catches drivers missed
// by out-of-band data changes.
type SweepDriverStandingHandler struct {
	uowFactory LedgerUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewSweepDriverStandingHandler creates a handler for standing sweeps.
func NewSweepDriverStandingHandler(
	uowFactory LedgerUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) SweepDriverStandingHandler {
	return SweepDriverStandingHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "driver_standing_sweep"),
	}
}

// Handle deactivates every driver at or over the unpaid-delivered cap.
func (h SweepDriverStandingHandler) Handle(ctx context.Context, _ SweepDriverStandingCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orders := uow.OrderRepository()
	users := uow.UserRepository()

	driverIDs, err := orders.ListDriversWithUnpaidDelivered(ctx, MaxUnpaidDeliveredOrders)
	if err != nil {
		return err
	}

	var deactivated []kernel.UUID
	for _, driverID := range driverIDs {
		done, evalErr := evaluateDriverStanding(ctx, orders, users, driverID)
		if evalErr != nil {
			return evalErr
		}
		if done {
			deactivated = append(deactivated, driverID)
		}
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	for _, driverID := range deactivated {
		id := driverID
		h.logger.WarnContext(ctx, "driver deactivated by standing sweep", "driver_id", id.String())
		h.dispatcher.Dispatch(ports.Event{
			Kind:     ports.EventDriverDeactivated,
			DriverID: &id,
		})
	}

	return nil
}
