// Package ports defines the contracts between the domain core and the
// infrastructure adapters: repositories, the unit of work, and the
// notification dispatcher. These interfaces enable dependency inversion
// and testability.
package ports

import (
	"context"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order without a status
	// precondition. Used for fields that are not part of the lifecycle
	// race, such as the commission-paid flag.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateInStatus persists the aggregate conditionally on the stored
	// row still holding the expected status. This is the optimistic write
	// backing every lifecycle transition: the update runs as
	// "... WHERE id = ? AND status = ?" and a zero-row result is returned
	// as a ConflictError, never silently ignored.
	UpdateInStatus(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// CountActiveByDriver counts the driver's orders in Accepted, PickedUp
	// or InTransit status. Used by the assignment guard's exclusivity check.
	CountActiveByDriver(ctx context.Context, driverID kernel.UUID) (int, error)

	// CountUnpaidDeliveredByDriver counts the driver's Delivered orders
	// whose commission has not been confirmed. Feeds the deactivation policy.
	CountUnpaidDeliveredByDriver(ctx context.Context, driverID kernel.UUID) (int, error)

	// ListDriversWithUnpaidDelivered returns the IDs of drivers holding at
	// least min delivered orders with unconfirmed commission. Used by the
	// periodic standing sweep.
	ListDriversWithUnpaidDelivered(ctx context.Context, min int) ([]kernel.UUID, error)
}
