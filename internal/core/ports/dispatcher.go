package ports

import (
	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/domain/model/payment"
)

// EventKind enumerates the lifecycle and ledger events the core emits.
type EventKind int

const (
	// EventOrderCreated fans out a new-orders-available notification to
	// every idle driver.
	EventOrderCreated EventKind = iota + 1

	// EventOrderStatusChanged notifies the order's client (and, on
	// cancellation of an assigned order, the detached driver).
	EventOrderStatusChanged

	// EventOrderAssigned notifies the client that a driver accepted their
	// order.
	EventOrderAssigned

	// EventPaymentReviewed notifies the driver of the admin's verdict.
	EventPaymentReviewed

	// EventPaymentIssueReported broadcasts to all admins.
	EventPaymentIssueReported

	// EventDriverDeactivated notifies a driver their account was
	// deactivated by the unpaid-commission policy.
	EventDriverDeactivated
)

// Event is the payload the core hands to the notification dispatcher.
// Only the fields relevant to the kind are set.
type Event struct {
	Kind           EventKind
	OrderID        kernel.UUID
	TrackingNumber string
	ClientID       kernel.UUID
	DriverID       *kernel.UUID
	PreviousStatus order.Status
	NewStatus      order.Status
	PaymentID      kernel.UUID
	PaymentStatus  payment.Status
	Details        string
}

// NotificationDispatcher is the fire-and-forget boundary between business
// transactions and notification delivery. Dispatch must not block on or
// surface delivery failures: the triggering transaction has already
// committed, and a lost notification must never corrupt it. Implementations
// deliver asynchronously and log failures.
type NotificationDispatcher interface {
	Dispatch(event Event)
}
