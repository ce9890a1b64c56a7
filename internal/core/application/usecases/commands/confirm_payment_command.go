package commands

import (
	"errors"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/guard"
)

var (
	ErrConfirmPaymentCommandIsNotConstructed = errors.New(
		"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
	)
)

// ConfirmPaymentCommand is a driver's attestation that the commission
// transfer was made. It does not change the admin-side review status.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	driverID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a driver-confirmation command.
func NewConfirmPaymentCommand(paymentID, driverID kernel.UUID) (ConfirmPaymentCommand, error) {
	cmd := ConfirmPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setDriverID(driverID),
	); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// PaymentID returns the payment being attested.
func (c ConfirmPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// DriverID returns the attesting driver.
func (c ConfirmPaymentCommand) DriverID() kernel.UUID { return c.driverID }

func (c *ConfirmPaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}
	c.paymentID = paymentID
	return nil
}

func (c *ConfirmPaymentCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}
