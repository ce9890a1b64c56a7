package payment

import (
	"fmt"
	"strings"

	"shipment/internal/pkg/errs"
)

// Status represents the admin-side confirmation state of a commission payment.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// StatusPending means the payment awaits admin review. Auto-created
	// records and driver resubmissions both land here.
	StatusPending

	// StatusConfirmed means an admin verified the bank transfer.
	// Confirming also marks the parent order's commission as paid.
	StatusConfirmed

	// StatusRejected means an admin rejected the attested transfer;
	// the driver may resubmit.
	StatusRejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "UNKNOWN",
		StatusPending:   "PENDING",
		StatusConfirmed: "CONFIRMED",
		StatusRejected:  "REJECTED",
	}
}

// StatusFromString parses a payment status, case-insensitively.
func StatusFromString(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == normalized {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid payment status", s),
	)
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks if the Status value is defined and non-Unknown.
func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid payment status", s),
		)
	}
}
