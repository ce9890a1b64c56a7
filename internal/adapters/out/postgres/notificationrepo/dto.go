// Package notificationrepo persists per-user notification rows appended by
// the dispatcher.
package notificationrepo

import (
	"encoding/json"
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/notification"

	"github.com/google/uuid"
)

// NotificationDTO represents the database structure for notifications.
// Payload is the event context serialized as JSON.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_notifications_user_created,priority:1"`
	Title     string
	Message   string
	Type      string `gorm:"size:32"`
	Read      bool
	Payload   []byte    `gorm:"type:jsonb"`
	CreatedAt time.Time `gorm:"index:idx_notifications_user_created,priority:2"`
}

// TableName overrides GORM's default naming convention to use "notifications".
func (NotificationDTO) TableName() string {
	return "notifications"
}

func fromDomain(n *notification.Notification) (NotificationDTO, error) {
	payload, err := json.Marshal(n.Payload())
	if err != nil {
		return NotificationDTO{}, err
	}

	return NotificationDTO{
		ID:        n.ID().Bytes(),
		UserID:    n.User().Bytes(),
		Title:     n.Title(),
		Message:   n.Message(),
		Type:      n.Type(),
		Read:      n.Read(),
		Payload:   payload,
		CreatedAt: n.CreatedAt(),
	}, nil
}

func toDomain(dto NotificationDTO) (*notification.Notification, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	var payload notification.Payload
	if len(dto.Payload) > 0 {
		if err = json.Unmarshal(dto.Payload, &payload); err != nil {
			return nil, err
		}
	}

	return notification.RestoreNotification(
		id, userID, dto.Title, dto.Message, dto.Type, dto.Read, payload, dto.CreatedAt)
}
