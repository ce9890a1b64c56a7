package commands

import (
	"context"
	"errors"

	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/ports"
	"shipment/internal/pkg/errs"
)

// trackingNumberAttempts bounds the regenerate-and-retry loop when a
// generated tracking number collides with an existing order.
const trackingNumberAttempts = 3

// CreateOrderCommandHandler handles the business logic for order creation.
// Creates new orders in Pending status with a generated tracking number and
// alerts idle drivers that work is available.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewCreateOrderCommandHandler creates a handler for order creation.
func NewCreateOrderCommandHandler(
	uowFactory OrderUoWFactory,
	dispatcher ports.NotificationDispatcher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle processes the order creation command and returns the created order.
// A unique-key conflict on insert rebuilds the order with a fresh tracking
// number and retries, so a tracking collision never surfaces to the client.
// The new-orders-available notification is dispatched only after the
// transaction commits; its delivery is best effort.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var newOrder *order.Order
	var err error

	for attempt := 0; attempt < trackingNumberAttempts; attempt++ {
		newOrder, err = order.NewOrder(
			cmd.OrderID(),
			cmd.ClientID(),
			cmd.Pickup(),
			cmd.Delivery(),
			cmd.Package(),
			cmd.Price(),
		)
		if err != nil {
			return nil, err
		}

		err = h.persist(ctx, newOrder)
		if err == nil {
			break
		}
		if !errors.Is(err, errs.ErrConflict) {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}

	h.dispatcher.Dispatch(ports.Event{
		Kind:           ports.EventOrderCreated,
		OrderID:        newOrder.ID(),
		TrackingNumber: newOrder.TrackingNumber(),
		ClientID:       newOrder.Client(),
		NewStatus:      newOrder.Status(),
	})

	return newOrder, nil
}

// persist inserts the order in its own transaction. Each retry needs a
// fresh transaction since a unique-key violation aborts the current one.
func (h CreateOrderCommandHandler) persist(ctx context.Context, newOrder *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
