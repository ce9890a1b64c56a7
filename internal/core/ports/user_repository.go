package ports

import (
	"context"

	"shipment/internal/core/domain/model/kernel"
)

// UserRepository is the narrow slice of the user store this subsystem needs.
// Full user-profile CRUD lives outside the core; here only the driver's
// active flag and a few recipient lookups are touched.
type UserRepository interface {
	// SetActive flips a user's active flag. Within this subsystem it is
	// called exclusively by the payment ledger's deactivation policy, and
	// only ever with false; reactivation is an administrative action
	// outside the subsystem.
	SetActive(ctx context.Context, userID kernel.UUID, active bool) error

	// IsActive reports whether the user's account is currently active.
	IsActive(ctx context.Context, userID kernel.UUID) (bool, error)

	// GetIdleDriverIDs returns active, confirmed drivers that hold no order
	// in an active status. These are the recipients of new-orders-available
	// notifications.
	GetIdleDriverIDs(ctx context.Context) ([]kernel.UUID, error)

	// GetAdminIDs returns all admin users. Admin-directed notifications are
	// fanned out to each of them.
	GetAdminIDs(ctx context.Context) ([]kernel.UUID, error)
}
