// Package notifications delivers in-app notifications produced by the order
// lifecycle and the payment ledger. Delivery is asynchronous and best-effort:
// the business transaction that raised an event has already committed, so a
// delivery failure is logged and dropped, never surfaced to the caller.
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/notification"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/domain/model/payment"
	"shipment/internal/core/ports"
)

// DefaultBufferSize is the event queue capacity used by NewDispatcher when
// the caller passes a non-positive size.
const DefaultBufferSize = 256

// Dispatcher implements ports.NotificationDispatcher with a single consumer
// goroutine. One consumer means events are persisted in dispatch order, so
// each user's notification list stays chronological.
type Dispatcher struct {
	uowFactory ports.UnitOfWorkFactory
	logger     *slog.Logger

	events    chan ports.Event
	done      chan struct{}
	closeOnce sync.Once
}

// NewDispatcher creates a dispatcher and starts its consumer goroutine.
func NewDispatcher(
	uowFactory ports.UnitOfWorkFactory,
	logger *slog.Logger,
	bufferSize int,
) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	d := &Dispatcher{
		uowFactory: uowFactory,
		logger:     logger.With("component", "notification_dispatcher"),
		events:     make(chan ports.Event, bufferSize),
		done:       make(chan struct{}),
	}

	go d.consume()

	return d
}

// Dispatch enqueues an event for delivery. It never blocks: if the queue is
// full the event is dropped and logged. Calling Dispatch after Close panics.
func (d *Dispatcher) Dispatch(event ports.Event) {
	select {
	case d.events <- event:
	default:
		d.logger.Warn("event queue full, dropping event",
			"kind", int(event.Kind),
			"orderId", event.OrderID.String())
	}
}

// Close stops accepting events, drains the queue, and waits for the consumer
// to finish.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		close(d.events)
	})
	<-d.done
}

func (d *Dispatcher) consume() {
	defer close(d.done)

	for event := range d.events {
		if err := d.deliver(context.Background(), event); err != nil {
			d.logger.Error("failed to deliver notifications",
				"kind", int(event.Kind),
				"orderId", event.OrderID.String(),
				"error", err)
		}
	}
}

// deliver resolves the event's recipients, builds their notifications, and
// appends them in one transaction.
func (d *Dispatcher) deliver(ctx context.Context, event ports.Event) error {
	uow := d.uowFactory.Create()

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	batch, err := d.build(ctx, uow, event)
	if err != nil {
		return err
	}

	store := uow.NotificationRepository()
	for _, n := range batch {
		if err = store.Append(ctx, n); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}

//nolint:cyclop //one arm per event kind
func (d *Dispatcher) build(
	ctx context.Context, uow ports.UnitOfWork, event ports.Event,
) ([]*notification.Notification, error) {
	switch event.Kind {
	case ports.EventOrderCreated:
		return d.buildOrderCreated(ctx, uow, event)
	case ports.EventOrderAssigned:
		return buildFor(event.ClientID,
			"Order accepted",
			fmt.Sprintf("A driver accepted your shipment %s.", event.TrackingNumber),
			notification.TypeOrderAssigned, event)
	case ports.EventOrderStatusChanged:
		return d.buildStatusChanged(event)
	case ports.EventPaymentReviewed:
		return d.buildPaymentReviewed(event)
	case ports.EventPaymentIssueReported:
		return d.buildPaymentIssue(ctx, uow, event)
	case ports.EventDriverDeactivated:
		if event.DriverID == nil {
			return nil, fmt.Errorf("driver deactivation event without driver")
		}
		return buildFor(*event.DriverID,
			"Account deactivated",
			"Your account was deactivated due to unpaid commissions. Contact support to settle outstanding payments.",
			notification.TypeAccountDeactivated, event)
	default:
		return nil, fmt.Errorf("unknown event kind %d", event.Kind)
	}
}

// buildOrderCreated fans a new-order announcement out to every driver who is
// active and has no order in progress.
func (d *Dispatcher) buildOrderCreated(
	ctx context.Context, uow ports.UnitOfWork, event ports.Event,
) ([]*notification.Notification, error) {
	driverIDs, err := uow.UserRepository().GetIdleDriverIDs(ctx)
	if err != nil {
		return nil, err
	}

	batch := make([]*notification.Notification, 0, len(driverIDs))
	for _, driverID := range driverIDs {
		n, buildErr := newNotification(driverID,
			"New order available",
			fmt.Sprintf("Shipment %s is waiting for a driver.", event.TrackingNumber),
			notification.TypeNewOrdersAvailable, event)
		if buildErr != nil {
			return nil, buildErr
		}
		batch = append(batch, n)
	}

	return batch, nil
}

func (d *Dispatcher) buildStatusChanged(event ports.Event) ([]*notification.Notification, error) {
	kind := notification.TypeOrderStatusUpdate
	message := fmt.Sprintf("Shipment %s is now %s.",
		event.TrackingNumber, event.NewStatus.String())
	if event.NewStatus == order.StatusCancelled {
		kind = notification.TypeOrderCancelled
		message = fmt.Sprintf("Shipment %s was cancelled.", event.TrackingNumber)
	}

	batch, err := buildFor(event.ClientID, "Order update", message, kind, event)
	if err != nil {
		return nil, err
	}

	// A cancelled order detaches its driver; they still get told.
	if event.NewStatus == order.StatusCancelled && event.DriverID != nil {
		driverBatch, buildErr := buildFor(*event.DriverID, "Order update", message, kind, event)
		if buildErr != nil {
			return nil, buildErr
		}
		batch = append(batch, driverBatch...)
	}

	return batch, nil
}

func (d *Dispatcher) buildPaymentReviewed(event ports.Event) ([]*notification.Notification, error) {
	if event.DriverID == nil {
		return nil, fmt.Errorf("payment review event without driver")
	}

	message := fmt.Sprintf("Your commission payment for shipment %s was confirmed.",
		event.TrackingNumber)
	if event.PaymentStatus == payment.StatusRejected {
		message = fmt.Sprintf(
			"Your commission payment for shipment %s was rejected. Please resubmit.",
			event.TrackingNumber)
	}

	return buildFor(*event.DriverID, "Payment reviewed", message,
		notification.TypePaymentReviewed, event)
}

// buildPaymentIssue broadcasts a driver-reported payment issue to every admin.
func (d *Dispatcher) buildPaymentIssue(
	ctx context.Context, uow ports.UnitOfWork, event ports.Event,
) ([]*notification.Notification, error) {
	adminIDs, err := uow.UserRepository().GetAdminIDs(ctx)
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("A driver reported an issue with the payment for shipment %s: %s",
		event.TrackingNumber, event.Details)

	batch := make([]*notification.Notification, 0, len(adminIDs))
	for _, adminID := range adminIDs {
		n, buildErr := newNotification(adminID,
			"Payment issue reported", message,
			notification.TypePaymentIssue, event)
		if buildErr != nil {
			return nil, buildErr
		}
		batch = append(batch, n)
	}

	return batch, nil
}

func buildFor(
	userID kernel.UUID, title, message, kind string, event ports.Event,
) ([]*notification.Notification, error) {
	n, err := newNotification(userID, title, message, kind, event)
	if err != nil {
		return nil, err
	}
	return []*notification.Notification{n}, nil
}

func newNotification(
	userID kernel.UUID, title, message, kind string, event ports.Event,
) (*notification.Notification, error) {
	payload := notification.Payload{
		TrackingNumber: event.TrackingNumber,
		Details:        event.Details,
	}
	if !event.OrderID.IsEqual(kernel.UUID{}) {
		payload.OrderID = event.OrderID.String()
	}
	if !event.PaymentID.IsEqual(kernel.UUID{}) {
		payload.PaymentID = event.PaymentID.String()
	}
	if event.PreviousStatus != order.StatusUnknown {
		payload.PreviousStatus = event.PreviousStatus.String()
	}
	if event.NewStatus != order.StatusUnknown {
		payload.NewStatus = event.NewStatus.String()
	}

	return notification.NewNotification(
		kernel.NewUUID(), userID, title, message, kind, payload)
}
