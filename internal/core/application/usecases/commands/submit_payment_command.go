package commands

import (
	"errors"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/errs"
	"shipment/internal/pkg/guard"
)

var (
	ErrSubmitPaymentCommandIsNotConstructed = errors.New(
		"SubmitPaymentCommand must be created via NewSubmitPaymentCommand constructor",
	)
)

// SubmitPaymentCommand carries a driver's commission payment proof.
// Resubmission after a rejection reuses the same command.
type SubmitPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	driverID   kernel.UUID
	method     string
	reference  string
	screenshot string

	guard guard.ConstructorGuard
}

// NewSubmitPaymentCommand creates a command to submit payment proof.
// Screenshot is optional.
func NewSubmitPaymentCommand(
	orderID, driverID kernel.UUID, method, reference, screenshot string,
) (SubmitPaymentCommand, error) {
	cmd := SubmitPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setDriverID(driverID),
		cmd.setMethod(method),
		cmd.setReference(reference),
	); err != nil {
		return SubmitPaymentCommand{}, err
	}
	cmd.screenshot = screenshot

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitPaymentCommand) Validate() error {
	return c.guard.Validate(ErrSubmitPaymentCommandIsNotConstructed)
}

// OrderID returns the delivered order whose commission is being paid.
func (c SubmitPaymentCommand) OrderID() kernel.UUID { return c.orderID }

// DriverID returns the submitting driver.
func (c SubmitPaymentCommand) DriverID() kernel.UUID { return c.driverID }

// Method returns how the commission was paid.
func (c SubmitPaymentCommand) Method() string { return c.method }

// Reference returns the external transaction reference.
func (c SubmitPaymentCommand) Reference() string { return c.reference }

// Screenshot returns the optional proof-of-payment image reference.
func (c SubmitPaymentCommand) Screenshot() string { return c.screenshot }

func (c *SubmitPaymentCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *SubmitPaymentCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}

func (c *SubmitPaymentCommand) setMethod(method string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("method")
	}
	c.method = method
	return nil
}

func (c *SubmitPaymentCommand) setReference(reference string) error {
	if reference == "" {
		return errs.NewValueIsRequiredError("reference")
	}
	c.reference = reference
	return nil
}
