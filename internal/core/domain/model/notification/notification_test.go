package notification_test

import (
	"testing"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/notification"
	"shipment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNotification(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		n, err := notification.NewNotification(
			kernel.NewUUID(), kernel.NewUUID(),
			"Order Accepted", "Your order is on its way",
			notification.TypeOrderStatusUpdate,
			notification.Payload{TrackingNumber: "SHP123456001"},
		)
		require.NoError(t, err)

		assert.False(t, n.Read())
		assert.Equal(t, notification.TypeOrderStatusUpdate, n.Type())
		assert.Equal(t, "SHP123456001", n.Payload().TrackingNumber)
	})

	t.Run("missing title", func(t *testing.T) {
		_, err := notification.NewNotification(
			kernel.NewUUID(), kernel.NewUUID(),
			"", "body", notification.TypeOrderStatusUpdate, notification.Payload{},
		)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestNotificationMarkRead(t *testing.T) {
	n, err := notification.NewNotification(
		kernel.NewUUID(), kernel.NewUUID(),
		"t", "m", notification.TypePaymentIssue, notification.Payload{},
	)
	require.NoError(t, err)

	n.MarkRead()
	assert.True(t, n.Read())
}

func TestNotificationValidate(t *testing.T) {
	var n notification.Notification
	assert.ErrorIs(t, n.Validate(), notification.ErrNotificationIsNotConstructed)
}
