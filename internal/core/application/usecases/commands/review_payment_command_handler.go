package commands

import (
	"context"
	"log/slog"

	"shipment/internal/core/domain/model/payment"
	"shipment/internal/core/ports"
)

// ReviewPaymentCommandHandler applies an admin's verdict to a commission
// payment. Confirmation marks the underlying order's commission paid;
// either verdict re-evaluates the driver's standing.
type ReviewPaymentCommandHandler struct {
	uowFactory LedgerUoWFactory
	dispatcher ports.NotificationDispatcher
	logger     *slog.Logger
}

// NewReviewPaymentCommandHandler creates a handler for payment review.
func NewReviewPaymentCommandHandler(
	uowFactory LedgerUoWFactory,
	dispatcher ports.NotificationDispatcher,
	logger *slog.Logger,
) ReviewPaymentCommandHandler {
	return ReviewPaymentCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     logger.With("component", "review_payment"),
	}
}

// Handle records the verdict, keeps the order's commission flag in sync,
// and re-checks the driver against the deactivation policy in the same
// transaction.
func (h ReviewPaymentCommandHandler) Handle(
	ctx context.Context, cmd ReviewPaymentCommand,
) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx) //nolint:errcheck //ignore err

	payments := uow.PaymentRepository()
	orders := uow.OrderRepository()

	record, err := payments.Get(ctx, cmd.PaymentID())
	if err != nil {
		return nil, err
	}

	if err := record.Review(cmd.Verdict(), cmd.Notes()); err != nil {
		return nil, err
	}

	if err := payments.Update(ctx, record); err != nil {
		return nil, err
	}

	aggregate, err := orders.Get(ctx, record.Order())
	if err != nil {
		return nil, err
	}

	if cmd.Verdict() == payment.StatusConfirmed {
		aggregate.MarkCommissionPaid()
		if updErr := orders.Update(ctx, aggregate); updErr != nil {
			return nil, updErr
		}
	}

	deactivated, err := evaluateDriverStanding(
		ctx, orders, uow.UserRepository(), record.Driver())
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	driverID := record.Driver()
	h.dispatcher.Dispatch(ports.Event{
		Kind:           ports.EventPaymentReviewed,
		OrderID:        record.Order(),
		TrackingNumber: aggregate.TrackingNumber(),
		DriverID:       &driverID,
		PaymentID:      record.ID(),
		PaymentStatus:  record.Status(),
		Details:        cmd.Notes(),
	})

	if deactivated {
		h.logger.WarnContext(ctx, "driver deactivated after payment review",
			"driver_id", driverID.String())
		h.dispatcher.Dispatch(ports.Event{
			Kind:     ports.EventDriverDeactivated,
			DriverID: &driverID,
		})
	}

	return record, nil
}
