package ports

import (
	"context"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/notification"
)

// NotificationRepository defines the persistence contract for per-user
// notification lists. Lists are append-only; entries are never deleted.
type NotificationRepository interface {
	// Append adds a notification to the recipient's list, creating the
	// list if absent.
	Append(ctx context.Context, aggregate *notification.Notification) error

	// ListByUser returns the user's notifications in append order.
	ListByUser(ctx context.Context, userID kernel.UUID) ([]*notification.Notification, error)

	// MarkRead sets the read flag on the given notifications, scoped to the
	// recipient so a user cannot mark another user's entries.
	MarkRead(ctx context.Context, userID kernel.UUID, ids []kernel.UUID) error
}
