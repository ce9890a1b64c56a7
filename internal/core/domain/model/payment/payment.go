package payment

import (
	"errors"
	"fmt"
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrPaymentIsNotConstructed is returned when a Payment instance was not
	// created through NewPayment or RestorePayment.
	ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment or RestorePayment")
)

// PlaceholderMethod is the payment method recorded on auto-created payments
// until the driver submits real transfer details.
const PlaceholderMethod = "PENDING"

// Payment is the commission record for one delivered order.
//
// Invariants:
//   - exactly one Payment per order (enforced together with the repository's
//     unique index on the order reference)
//   - amount is always the commission for the order price at the time of
//     creation or resubmission
//   - driverConfirmed is the driver's separate attestation and never changes
//     the admin-side status
type Payment struct {
	id              kernel.UUID
	orderID         kernel.UUID
	driverID        kernel.UUID
	amount          decimal.Decimal
	status          Status
	driverConfirmed bool
	hasIssue        bool
	issueDetails    string
	method          string
	reference       string
	screenshot      string
	notes           string
	createdAt       time.Time
	updatedAt       time.Time

	isConstructed bool
}

// NewPayment creates the commission record for a freshly delivered order.
// The amount is computed from the order price; method and reference are
// placeholders until the driver submits the actual transfer details.
func NewPayment(id, orderID, driverID kernel.UUID, orderPrice decimal.Decimal) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		driverID.Validate(),
	); err != nil {
		return nil, err
	}
	if orderPrice.IsNegative() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"orderPrice",
			fmt.Errorf("%s is negative", orderPrice),
		)
	}

	now := time.Now().UTC()
	return &Payment{
		id:            id,
		orderID:       orderID,
		driverID:      driverID,
		amount:        CommissionFor(orderPrice),
		status:        StatusPending,
		method:        PlaceholderMethod,
		reference:     fmt.Sprintf("PENDING-%s", orderID),
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}, nil
}

// RestorePayment reconstructs a Payment from persistence.
func RestorePayment(
	id, orderID, driverID kernel.UUID,
	amount decimal.Decimal,
	status Status,
	driverConfirmed bool,
	hasIssue bool,
	issueDetails string,
	method, reference, screenshot, notes string,
	createdAt, updatedAt time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		driverID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Payment{
		id:              id,
		orderID:         orderID,
		driverID:        driverID,
		amount:          amount,
		status:          status,
		driverConfirmed: driverConfirmed,
		hasIssue:        hasIssue,
		issueDetails:    issueDetails,
		method:          method,
		reference:       reference,
		screenshot:      screenshot,
		notes:           notes,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		isConstructed:   true,
	}, nil
}

// Validate ensures the Payment instance was properly constructed.
func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

// ID returns the payment's unique identifier.
func (p *Payment) ID() kernel.UUID { return p.id }

// Order returns the ID of the order this commission belongs to.
func (p *Payment) Order() kernel.UUID { return p.orderID }

// Driver returns the ID of the driver who owes the commission.
func (p *Payment) Driver() kernel.UUID { return p.driverID }

// Amount returns the commission amount.
func (p *Payment) Amount() decimal.Decimal { return p.amount }

// Status returns the admin-side confirmation status.
func (p *Payment) Status() Status { return p.status }

// DriverConfirmed reports whether the driver has attested awareness of
// the charge. Independent of the admin-side status.
func (p *Payment) DriverConfirmed() bool { return p.driverConfirmed }

// HasIssue reports whether the driver flagged a problem with this payment.
func (p *Payment) HasIssue() bool { return p.hasIssue }

// IssueDetails returns the driver's free-text issue description.
func (p *Payment) IssueDetails() string { return p.issueDetails }

// Method returns the payment method supplied by the driver.
func (p *Payment) Method() string { return p.method }

// Reference returns the transfer reference supplied by the driver.
func (p *Payment) Reference() string { return p.reference }

// Screenshot returns the transfer-evidence location, if any.
func (p *Payment) Screenshot() string { return p.screenshot }

// Notes returns the admin's review notes.
func (p *Payment) Notes() string { return p.notes }

// CreatedAt returns the creation time.
func (p *Payment) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last modification time.
func (p *Payment) UpdatedAt() time.Time { return p.updatedAt }

// BelongsToDriver reports whether the given driver owns this payment.
func (p *Payment) BelongsToDriver(driverID kernel.UUID) bool {
	return p.driverID.IsEqual(driverID)
}

// Submit records the driver's transfer details, recomputes the amount from
// the current order price and resets the record for a fresh admin review.
// Any previous admin notes are cleared.
func (p *Payment) Submit(orderPrice decimal.Decimal, method, reference, screenshot string) error {
	if method == "" {
		return errs.NewValueIsRequiredError("paymentMethod")
	}
	if reference == "" {
		return errs.NewValueIsRequiredError("paymentReference")
	}

	p.method = method
	p.reference = reference
	p.screenshot = screenshot
	p.amount = CommissionFor(orderPrice)
	p.status = StatusPending
	p.notes = ""
	p.touch()
	return nil
}

// Review records the admin's verdict. Only Confirmed and Rejected are
// accepted; anything else is a validation error.
func (p *Payment) Review(status Status, notes string) error {
	if status != StatusConfirmed && status != StatusRejected {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("review verdict must be CONFIRMED or REJECTED, got %s", status),
		)
	}

	p.status = status
	p.notes = notes
	p.touch()
	return nil
}

// DriverConfirm records the driver's attestation of the charge.
// Does not affect the admin-side status or the order's commission flag.
func (p *Payment) DriverConfirm() {
	p.driverConfirmed = true
	p.touch()
}

// ReportIssue flags the payment as disputed by the driver.
func (p *Payment) ReportIssue(details string) {
	if details == "" {
		details = "Driver reported an issue"
	}
	p.hasIssue = true
	p.issueDetails = details
	p.touch()
}

func (p *Payment) touch() {
	p.updatedAt = time.Now().UTC()
}
