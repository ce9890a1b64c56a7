package notificationrepo

import (
	"context"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/notification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Append saves a new notification row.
func (r *GormNotificationRepository) Append(
	ctx context.Context, n *notification.Notification,
) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(n)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Create(&dto).Error
}

// ListByUser returns the user's notifications, oldest first, matching the
// order in which the dispatcher appended them.
func (r *GormNotificationRepository) ListByUser(
	ctx context.Context, userID kernel.UUID,
) ([]*notification.Notification, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		notifications = append(notifications, n)
	}

	return notifications, nil
}

// MarkRead flags the given notifications as read, scoped to their owner.
// IDs belonging to other users are silently skipped.
func (r *GormNotificationRepository) MarkRead(
	ctx context.Context, userID kernel.UUID, ids []kernel.UUID,
) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		raw = append(raw, id.Bytes())
	}

	return r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("user_id = ? AND id IN ?", userID.Bytes(), raw).
		Update("read", true).Error
}
