package commands

import (
	"errors"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/guard"
)

var (
	ErrReportPaymentIssueCommandIsNotConstructed = errors.New(
		"ReportPaymentIssueCommand must be created via NewReportPaymentIssueCommand constructor",
	)
)

// ReportPaymentIssueCommand flags a problem with a commission payment on
// behalf of its driver.
type ReportPaymentIssueCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	driverID  kernel.UUID
	details   string

	guard guard.ConstructorGuard
}

// NewReportPaymentIssueCommand creates an issue-report command. Details
// are optional; a default description is applied downstream.
func NewReportPaymentIssueCommand(
	paymentID, driverID kernel.UUID, details string,
) (ReportPaymentIssueCommand, error) {
	cmd := ReportPaymentIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setDriverID(driverID),
	); err != nil {
		return ReportPaymentIssueCommand{}, err
	}
	cmd.details = details

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportPaymentIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportPaymentIssueCommandIsNotConstructed)
}

// PaymentID returns the payment with the issue.
func (c ReportPaymentIssueCommand) PaymentID() kernel.UUID { return c.paymentID }

// DriverID returns the reporting driver.
func (c ReportPaymentIssueCommand) DriverID() kernel.UUID { return c.driverID }

// Details returns the driver's description of the issue.
func (c ReportPaymentIssueCommand) Details() string { return c.details }

func (c *ReportPaymentIssueCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}
	c.paymentID = paymentID
	return nil
}

func (c *ReportPaymentIssueCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	c.driverID = driverID
	return nil
}
