// Package notification contains the Notification entity appended to a user's
// notification list by the order lifecycle and the payment ledger. Entries
// are append-only; only the read flag ever changes, and only the recipient
// changes it.
package notification

import (
	"errors"
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/errs"
)

// ErrNotificationIsNotConstructed is returned when a Notification was not
// created through NewNotification or RestoreNotification.
var ErrNotificationIsNotConstructed = errors.New("Notification must be created via NewNotification or RestoreNotification")

// Type tags carried by notifications so clients can render them and route
// taps to the right screen.
const (
	TypeNewOrdersAvailable = "NEW_ORDERS_AVAILABLE"
	TypeOrderAssigned      = "ORDER_ASSIGNED"
	TypeOrderStatusUpdate  = "ORDER_STATUS_UPDATE"
	TypeOrderCancelled     = "ORDER_CANCELLED"
	TypePaymentReviewed    = "PAYMENT_REVIEWED"
	TypePaymentIssue       = "PAYMENT_ISSUE"
	TypeAccountDeactivated = "ACCOUNT_DEACTIVATED"
)

// Payload is the structured data attached to a notification.
// Fields are optional; zero values mean "not applicable".
type Payload struct {
	OrderID        string `json:"orderId,omitempty"`
	PaymentID      string `json:"paymentId,omitempty"`
	TrackingNumber string `json:"trackingNumber,omitempty"`
	PreviousStatus string `json:"previousStatus,omitempty"`
	NewStatus      string `json:"newStatus,omitempty"`
	Details        string `json:"details,omitempty"`
}

// Notification is one entry in a user's notification list.
type Notification struct {
	id        kernel.UUID
	userID    kernel.UUID
	title     string
	message   string
	kind      string
	read      bool
	payload   Payload
	createdAt time.Time

	isConstructed bool
}

// NewNotification creates an unread notification for a user.
func NewNotification(id, userID kernel.UUID, title, message, kind string, payload Payload) (*Notification, error) {
	if err := errors.Join(id.Validate(), userID.Validate()); err != nil {
		return nil, err
	}
	if title == "" {
		return nil, errs.NewValueIsRequiredError("title")
	}
	if message == "" {
		return nil, errs.NewValueIsRequiredError("message")
	}
	if kind == "" {
		return nil, errs.NewValueIsRequiredError("type")
	}

	return &Notification{
		id:            id,
		userID:        userID,
		title:         title,
		message:       message,
		kind:          kind,
		payload:       payload,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreNotification reconstructs a Notification from persistence.
func RestoreNotification(
	id, userID kernel.UUID,
	title, message, kind string,
	read bool,
	payload Payload,
	createdAt time.Time,
) (*Notification, error) {
	n, err := NewNotification(id, userID, title, message, kind, payload)
	if err != nil {
		return nil, err
	}
	n.read = read
	n.createdAt = createdAt
	return n, nil
}

// Validate ensures the Notification was properly constructed.
func (n *Notification) Validate() error {
	if n == nil || !n.isConstructed {
		return ErrNotificationIsNotConstructed
	}
	return nil
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// User returns the recipient.
func (n *Notification) User() kernel.UUID { return n.userID }

// Title returns the short headline.
func (n *Notification) Title() string { return n.title }

// Message returns the body text.
func (n *Notification) Message() string { return n.message }

// Type returns the type tag.
func (n *Notification) Type() string { return n.kind }

// Read reports whether the recipient has read the notification.
func (n *Notification) Read() bool { return n.read }

// Payload returns the structured data attached to the notification.
func (n *Notification) Payload() Payload { return n.payload }

// CreatedAt returns the creation time.
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// MarkRead sets the read flag. Only the recipient triggers this.
func (n *Notification) MarkRead() {
	n.read = true
}
