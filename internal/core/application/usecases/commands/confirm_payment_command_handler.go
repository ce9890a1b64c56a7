package commands

import (
	"context"

	"shipment/internal/core/domain/model/payment"
	"shipment/internal/pkg/errs"
)

// ConfirmPaymentCommandHandler records the driver's side of the
// commission attestation.
type ConfirmPaymentCommandHandler struct {
	uowFactory PaymentUoWFactory
}

// NewConfirmPaymentCommandHandler creates a handler for driver confirmation.
func NewConfirmPaymentCommandHandler(uowFactory PaymentUoWFactory) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{uowFactory: uowFactory}
}

// Handle sets the driver-confirmed flag on the driver's own payment.
func (h ConfirmPaymentCommandHandler) Handle(
	ctx context.Context, cmd ConfirmPaymentCommand,
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

	record.DriverConfirm()

	if err := payments.Update(ctx, record); err != nil {
		return nil, err
	}

	if err := uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}
