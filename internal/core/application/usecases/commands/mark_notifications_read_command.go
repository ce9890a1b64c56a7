package commands

import (
	"errors"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/errs"
	"shipment/internal/pkg/guard"
)

var (
	ErrMarkNotificationsReadCommandIsNotConstructed = errors.New(
		"MarkNotificationsReadCommand must be created via NewMarkNotificationsReadCommand constructor",
	)
)

// MarkNotificationsReadCommand marks a batch of the user's own
// notifications as read.
type MarkNotificationsReadCommand struct { //nolint:recvcheck //using for validation
	userID          kernel.UUID
	notificationIDs []kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkNotificationsReadCommand creates a mark-read command.
func NewMarkNotificationsReadCommand(
	userID kernel.UUID, notificationIDs []kernel.UUID,
) (MarkNotificationsReadCommand, error) {
	cmd := MarkNotificationsReadCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUserID(userID),
		cmd.setNotificationIDs(notificationIDs),
	); err != nil {
		return MarkNotificationsReadCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkNotificationsReadCommand) Validate() error {
	return c.guard.Validate(ErrMarkNotificationsReadCommandIsNotConstructed)
}

// UserID returns the notifications' owner.
func (c MarkNotificationsReadCommand) UserID() kernel.UUID { return c.userID }

// NotificationIDs returns the notifications to mark as read.
func (c MarkNotificationsReadCommand) NotificationIDs() []kernel.UUID {
	return c.notificationIDs
}

func (c *MarkNotificationsReadCommand) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	c.userID = userID
	return nil
}

func (c *MarkNotificationsReadCommand) setNotificationIDs(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return errs.NewValueIsRequiredError("notificationIds")
	}
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
	}
	c.notificationIDs = ids
	return nil
}
