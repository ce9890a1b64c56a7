package commands

import (
	"context"
	"errors"
	"fmt"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/domain/model/payment"
	"shipment/internal/pkg/errs"
)

// SubmitPaymentCommandHandler records a driver's commission payment proof.
type SubmitPaymentCommandHandler struct {
	uowFactory OrderPaymentUoWFactory
}

// NewSubmitPaymentCommandHandler creates a handler for payment submission.
func NewSubmitPaymentCommandHandler(uowFactory OrderPaymentUoWFactory) SubmitPaymentCommandHandler {
	return SubmitPaymentCommandHandler{uowFactory: uowFactory}
}

// Handle attaches the proof to the commission record of the driver's own
// delivered order. Submission is only open while the order is Delivered and
// its commission is still unconfirmed; afterwards the record is settled and
// a resubmission would wipe the admin's verdict.
//
// The payment record is created here when missing (delivery-time commission
// tracking can fail without reversing the delivery) and overwritten when
// present. The due amount is recomputed from the order's price at submission
// time, so a stale record never locks in a wrong commission.
func (h SubmitPaymentCommandHandler) Handle(
	ctx context.Context, cmd SubmitPaymentCommand,
) (*payment.Payment, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback(ctx) //nolint:errcheck //ignore err

	aggregate, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	driver := aggregate.Driver()
	if driver == nil || !driver.IsEqual(cmd.DriverID()) {
		return nil, errs.NewPermissionDeniedError(
			"payment does not belong to the requesting driver")
	}

	if aggregate.Status() != order.StatusDelivered {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"orderStatus",
			fmt.Errorf("payment can only be submitted for a delivered order, got %s",
				aggregate.Status()),
		)
	}
	if aggregate.CommissionPaid() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"commissionPaid",
			errors.New("commission for this order is already confirmed"),
		)
	}

	payments := uow.PaymentRepository()

	record, err := payments.GetByOrder(ctx, aggregate.ID())
	switch {
	case err == nil:
		if err := record.Submit(
			aggregate.Price(), cmd.Method(), cmd.Reference(), cmd.Screenshot(),
		); err != nil {
			return nil, err
		}
		if err := payments.Update(ctx, record); err != nil {
			return nil, err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		record, err = payment.NewPayment(
			kernel.NewUUID(), aggregate.ID(), *driver, aggregate.Price())
		if err != nil {
			return nil, err
		}
		if err := record.Submit(
			aggregate.Price(), cmd.Method(), cmd.Reference(), cmd.Screenshot(),
		); err != nil {
			return nil, err
		}
		if err := payments.Add(ctx, record); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
