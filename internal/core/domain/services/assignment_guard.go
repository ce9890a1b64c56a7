package services

import (
	"shipment/internal/pkg/errs"
)

// MaxUnconfirmedPayments is the number of payments a driver may leave
// unconfirmed before losing the ability to accept new orders. The cap keeps
// commission debt from growing unbounded.
const MaxUnconfirmedPayments = 3

var (
	// ErrDriverHasActiveOrder is returned when the driver already holds an
	// order in Accepted, PickedUp or InTransit status. A driver handles one
	// shipment at a time.
	ErrDriverHasActiveOrder = errs.NewPermissionDeniedError(
		"driver already has an active order; complete or cancel it before accepting a new one")

	// ErrDriverHasUnconfirmedPayments is returned when the driver has reached
	// the unconfirmed-payment cap.
	ErrDriverHasUnconfirmedPayments = errs.NewPermissionDeniedError(
		"driver has too many unconfirmed payments; confirm pending payments before accepting new orders")
)

// AssignmentGuard decides whether a driver may accept a new order.
//
// The guard is advisory: it is evaluated against counts read inside the
// accepting transaction, but the conditional status write on the order is
// the actual protection against double assignment. Re-check immediately
// before that write to keep the race window small.
type AssignmentGuard struct{}

// NewAssignmentGuard creates a new AssignmentGuard instance.
func NewAssignmentGuard() AssignmentGuard {
	return AssignmentGuard{}
}

// Check evaluates eligibility from the driver's current counts:
// activeOrders is the number of orders the driver holds in an active status,
// unconfirmedPayments the number of payment records the driver has not yet
// confirmed. Returns nil when the driver may accept an order.
func (AssignmentGuard) Check(activeOrders, unconfirmedPayments int) error {
	if activeOrders > 0 {
		return ErrDriverHasActiveOrder
	}
	if unconfirmedPayments >= MaxUnconfirmedPayments {
		return ErrDriverHasUnconfirmedPayments
	}
	return nil
}
