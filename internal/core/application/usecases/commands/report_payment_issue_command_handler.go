package commands

import (
	"context"

	"shipment/internal/core/domain/model/payment"
	"shipment/internal/core/ports"
	"shipment/internal/pkg/errs"
)

// ReportPaymentIssueCommandHandler flags a payment as problematic and
// broadcasts the report to all admins.
type ReportPaymentIssueCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
	dispatcher ports.NotificationDispatcher
}

// NewReportPaymentIssueCommandHandler creates a handler for issue reports.
func NewReportPaymentIssueCommandHandler(
	uowFactory OrderPaymentUoWFactory,
	dispatcher ports.NotificationDispatcher,
) ReportPaymentIssueCommandHandler {
	return ReportPaymentIssueCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
	}
}

// Handle marks the issue on the driver's own payment and notifies admins
// once the change is committed. The order is read only for its tracking
// number, which the admin broadcast references.
func (h ReportPaymentIssueCommandHandler) Handle(
	ctx context.Context, cmd ReportPaymentIssueCommand,
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

	record, err := payments.Get(ctx, cmd.PaymentID())
	if err != nil {
		return nil, err
	}

	if !record.BelongsToDriver(cmd.DriverID()) {
		return nil, errs.NewPermissionDeniedError(
			"payment does not belong to the requesting driver")
	}

	aggregate, err := uow.OrderRepository().Get(ctx, record.Order())
	if err != nil {
		return nil, err
	}

	record.ReportIssue(cmd.Details())

	if err := payments.Update(ctx, record); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	driverID := record.Driver()
	h.dispatcher.Dispatch(ports.Event{
		Kind:           ports.EventPaymentIssueReported,
		OrderID:        record.Order(),
		TrackingNumber: aggregate.TrackingNumber(),
		DriverID:       &driverID,
		PaymentID:      record.ID(),
		Details:        record.IssueDetails(),
	})

	return record, nil
}
