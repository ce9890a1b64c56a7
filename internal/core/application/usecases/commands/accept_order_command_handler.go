package commands

import (
	"context"

	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/domain/services"
	"shipment/internal/core/ports"
	"shipment/internal/pkg/errs"
)

// AcceptOrderCommandHandler assigns a pending order to an eligible driver.
type AcceptOrderCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	dispatcher ports.NotificationDispatcher
	guard      services.AssignmentGuard
}

// NewAcceptOrderCommandHandler creates a handler for accepting orders.
func NewAcceptOrderCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	dispatcher ports.NotificationDispatcher,
	guard services.AssignmentGuard,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		guard:      guard,
	}
}

// Handle assigns the order to the driver. Eligibility is checked against
// current counts inside the same transaction as the conditional status
// write, so two drivers racing for one order cannot both win: the loser's
// update matches zero rows and surfaces as a ConflictError.
func (h AcceptOrderCommandHandler) Handle(
	ctx context.Context, cmd AcceptOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx) //nolint:errcheck //ignore err

	orders := uow.OrderRepository()
	payments := uow.PaymentRepository()

	aggregate, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if aggregate.Status() != order.StatusPending {
		return nil, errs.NewConflictError("order", cmd.OrderID().String())
	}

	activeOrders, err := orders.CountActiveByDriver(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}
	unconfirmed, err := payments.CountUnconfirmedByDriver(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}
	if err := h.guard.Check(activeOrders, unconfirmed); err != nil {
		return nil, err
	}

	if err := aggregate.Accept(cmd.DriverID()); err != nil {
		return nil, err
	}

	if err := orders.UpdateInStatus(ctx, aggregate, order.StatusPending); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	driverID := cmd.DriverID()
	h.dispatcher.Dispatch(ports.Event{
		Kind:           ports.EventOrderAssigned,
		OrderID:        aggregate.ID(),
		TrackingNumber: aggregate.TrackingNumber(),
		ClientID:       aggregate.Client(),
		DriverID:       &driverID,
		PreviousStatus: order.StatusPending,
		NewStatus:      aggregate.Status(),
	})

	return aggregate, nil
}
