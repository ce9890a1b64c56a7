package order

import (
	"fmt"
	"strings"

	"shipment/internal/pkg/errs"
)

// PaymentState tracks the client's payment for the shipment itself.
// It is independent of the driver's commission, which lives on the
// Payment record in the payment package.
type PaymentState int

const (
	// PaymentStateUnknown represents an invalid or undefined state.
	PaymentStateUnknown PaymentState = iota

	// PaymentStatePending means the client has not yet paid for the shipment.
	PaymentStatePending

	// PaymentStatePaid means the client has paid for the shipment.
	PaymentStatePaid
)

func getPaymentStateStrings() map[PaymentState]string {
	return map[PaymentState]string{
		PaymentStateUnknown: "UNKNOWN",
		PaymentStatePending: "PENDING",
		PaymentStatePaid:    "PAID",
	}
}

// PaymentStateFromString parses a payment state, case-insensitively.
func PaymentStateFromString(s string) (PaymentState, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for state, str := range getPaymentStateStrings() {
		if state != PaymentStateUnknown && str == normalized {
			return state, nil
		}
	}
	return PaymentStateUnknown, errs.NewValueIsInvalidErrorWithCause(
		"paymentState",
		fmt.Errorf("%q is not a valid payment state", s),
	)
}

// String returns the wire name of the payment state.
func (p PaymentState) String() string {
	if str, ok := getPaymentStateStrings()[p]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks if the PaymentState value is defined and non-Unknown.
func (p PaymentState) Validate() error {
	switch p {
	case PaymentStatePending, PaymentStatePaid:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"paymentState",
			fmt.Errorf("%d is not a valid payment state", p),
		)
	}
}
