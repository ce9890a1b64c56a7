package commands

import (
	"errors"
	"fmt"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/payment"
	"shipment/internal/pkg/errs"
	"shipment/internal/pkg/guard"
)

var (
	ErrReviewPaymentCommandIsNotConstructed = errors.New(
		"ReviewPaymentCommand must be created via NewReviewPaymentCommand constructor",
	)
)

// ReviewPaymentCommand carries an admin's verdict on a submitted
// commission payment.
type ReviewPaymentCommand struct { //nolint:recvcheck //using for validation
	paymentID kernel.UUID
	verdict   payment.Status
	notes     string

	guard guard.ConstructorGuard
}

// NewReviewPaymentCommand creates a command to confirm or reject a
// payment. Verdict must be Confirmed or Rejected; notes are optional.
func NewReviewPaymentCommand(
	paymentID kernel.UUID, verdict payment.Status, notes string,
) (ReviewPaymentCommand, error) {
	cmd := ReviewPaymentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setPaymentID(paymentID),
		cmd.setVerdict(verdict),
	); err != nil {
		return ReviewPaymentCommand{}, err
	}
	cmd.notes = notes

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewPaymentCommand) Validate() error {
	return c.guard.Validate(ErrReviewPaymentCommandIsNotConstructed)
}

// PaymentID returns the payment under review.
func (c ReviewPaymentCommand) PaymentID() kernel.UUID { return c.paymentID }

// Verdict returns the review outcome.
func (c ReviewPaymentCommand) Verdict() payment.Status { return c.verdict }

// Notes returns the reviewer's notes.
func (c ReviewPaymentCommand) Notes() string { return c.notes }

func (c *ReviewPaymentCommand) setPaymentID(paymentID kernel.UUID) error {
	if err := paymentID.Validate(); err != nil {
		return err
	}
	c.paymentID = paymentID
	return nil
}

func (c *ReviewPaymentCommand) setVerdict(verdict payment.Status) error {
	if verdict != payment.StatusConfirmed && verdict != payment.StatusRejected {
		return errs.NewValueIsInvalidErrorWithCause(
			"verdict",
			fmt.Errorf("review verdict must be %s or %s",
				payment.StatusConfirmed, payment.StatusRejected),
		)
	}
	c.verdict = verdict
	return nil
}
