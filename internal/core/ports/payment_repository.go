package ports

import (
	"context"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/payment"
)

// PaymentRepository defines the persistence contract for commission records.
type PaymentRepository interface {
	// Add persists a new payment. The storage layer keeps a unique index on
	// the order reference; inserting a second payment for the same order
	// fails with a ConflictError, which together with an in-transaction
	// existence check guarantees at most one payment per order even under
	// concurrent delivery marking.
	Add(ctx context.Context, aggregate *payment.Payment) error

	// Update persists changes to an existing payment.
	Update(ctx context.Context, aggregate *payment.Payment) error

	// Get retrieves a payment by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*payment.Payment, error)

	// GetByOrder retrieves the payment belonging to an order, or an
	// ObjectNotFoundError if none exists yet.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*payment.Payment, error)

	// CountUnconfirmedByDriver counts the driver's payments with
	// driverConfirmed still false. Feeds the assignment guard's cap.
	CountUnconfirmedByDriver(ctx context.Context, driverID kernel.UUID) (int, error)
}
