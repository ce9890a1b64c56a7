package commands

import (
	"context"
	"errors"
	"log/slog"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/domain/model/payment"
	"shipment/internal/core/ports"
	"shipment/internal/pkg/errs"
)

// TransitionOrderResult reports the outcome of a lifecycle transition.
// CommissionWarning carries a failure of the post-delivery commission
// tracking without failing the transition itself: the status change has
// already committed when commission recording runs.
type TransitionOrderResult struct {
	Order             *order.Order
	CommissionWarning error
}

// TransitionOrderCommandHandler drives order lifecycle edges with an
// optimistic conditional write, so concurrent transitions on one order
// resolve to a single winner.
type TransitionOrderCommandHandler struct {
	uowFactory LedgerUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewTransitionOrderCommandHandler creates a handler for order transitions.
func NewTransitionOrderCommandHandler(
	uowFactory LedgerUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "transition_order"),
	}
}

// Handle applies the transition in its own transaction, then runs the
// delivery side effects (commission record and driver standing) in a
// second one. A commission failure after a committed delivery is returned
// as a warning on the result, never as the handler error.
func (h TransitionOrderCommandHandler) Handle(
	ctx context.Context, cmd TransitionOrderCommand,
) (TransitionOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionOrderResult{}, err
	}

	aggregate, previous, driverBefore, err := h.applyTransition(ctx, cmd)
	if err != nil {
		return TransitionOrderResult{}, err
	}

	result := TransitionOrderResult{Order: aggregate}

	if aggregate.Status() == order.StatusDelivered {
		deactivated, commissionErr := h.recordCommission(ctx, aggregate)
		if commissionErr != nil {
			h.logger.WarnContext(ctx, "commission tracking failed after delivery",
				"order_id", aggregate.ID().String(),
				"error", commissionErr)
			result.CommissionWarning = commissionErr
		}
		if deactivated != nil {
			id := *deactivated
			h.dispatcher.Dispatch(ports.Event{
				Kind:     ports.EventDriverDeactivated,
				DriverID: &id,
			})
		}
	}

	h.dispatcher.Dispatch(ports.Event{
		Kind:           ports.EventOrderStatusChanged,
		OrderID:        aggregate.ID(),
		TrackingNumber: aggregate.TrackingNumber(),
		ClientID:       aggregate.Client(),
		DriverID:       driverBefore,
		PreviousStatus: previous,
		NewStatus:      aggregate.Status(),
	})

	return result, nil
}

// applyTransition commits the status change and returns the aggregate,
// its previous status, and the driver assigned before the change.
// Cancellation detaches the driver on the aggregate, so the pre-change
// assignment is captured here for the status-change notification.
func (h TransitionOrderCommandHandler) applyTransition(
	ctx context.Context, cmd TransitionOrderCommand,
) (*order.Order, order.Status, *kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, order.StatusUnknown, nil, err
	}
	defer uow.Rollback(ctx) //nolint:errcheck //ignore err

	orders := uow.OrderRepository()

	aggregate, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, order.StatusUnknown, nil, err
	}

	previous := aggregate.Status()
	var driverBefore *kernel.UUID
	if d := aggregate.Driver(); d != nil {
		id := *d
		driverBefore = &id
	}

	if err := aggregate.TransitionTo(cmd.Target(), cmd.Actor()); err != nil {
		return nil, order.StatusUnknown, nil, err
	}

	if err := orders.UpdateInStatus(ctx, aggregate, previous); err != nil {
		return nil, order.StatusUnknown, nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, order.StatusUnknown, nil, err
	}

	return aggregate, previous, driverBefore, nil
}

// recordCommission creates the commission payment record for a delivered
// order, exactly once, and re-evaluates the driver's standing. Returns
// the driver's ID when this call deactivated them.
func (h TransitionOrderCommandHandler) recordCommission(
	ctx context.Context, aggregate *order.Order,
) (*kernel.UUID, error) {
	driver := aggregate.Driver()
	if driver == nil {
		return nil, errs.NewValueIsRequiredError("driverId")
	}
	driverID := *driver

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx) //nolint:errcheck //ignore err

	payments := uow.PaymentRepository()

	_, err := payments.GetByOrder(ctx, aggregate.ID())
	switch {
	case err == nil:
		// A payment record already exists for this order; nothing to add.
	case errors.Is(err, errs.ErrObjectNotFound):
		record, newErr := payment.NewPayment(
			kernel.NewUUID(), aggregate.ID(), driverID, aggregate.Price())
		if newErr != nil {
			return nil, newErr
		}
		if addErr := payments.Add(ctx, record); addErr != nil {
			return nil, addErr
		}
	default:
		return nil, err
	}

	deactivated, err := evaluateDriverStanding(
		ctx, uow.OrderRepository(), uow.UserRepository(), driverID)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	if deactivated {
		return &driverID, nil
	}
	return nil, nil
}
