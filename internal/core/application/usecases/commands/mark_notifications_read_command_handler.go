package commands

import (
	"context"
)

// MarkNotificationsReadCommandHandler marks the user's notifications read.
// Scoping by owner lives in the repository query, so one user can never
// flip another user's notifications.
type MarkNotificationsReadCommandHandler struct {
	uowFactory NotificationUoWFactory
}

// NewMarkNotificationsReadCommandHandler creates a handler for mark-read.
func NewMarkNotificationsReadCommandHandler(
	uowFactory NotificationUoWFactory,
) MarkNotificationsReadCommandHandler {
	return MarkNotificationsReadCommandHandler{uowFactory: uowFactory}
}

// Handle marks the given notifications read for their owner.
func (h MarkNotificationsReadCommandHandler) Handle(
	ctx context.Context, cmd MarkNotificationsReadCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback(ctx) //nolint:errcheck //ignore err

	if err := uow.NotificationRepository().MarkRead(
		ctx, cmd.UserID(), cmd.NotificationIDs(),
	); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
