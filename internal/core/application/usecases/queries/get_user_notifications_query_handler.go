package queries

import (
	"context"
	"time"

	"shipment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetUserNotificationsQueryHandler reads a user's notification feed.
type GetUserNotificationsQueryHandler struct {
	db *gorm.DB
}

// NewGetUserNotificationsQueryHandler creates a handler for notification
// feed queries.
func NewGetUserNotificationsQueryHandler(db *gorm.DB) GetUserNotificationsQueryHandler {
	return GetUserNotificationsQueryHandler{db: db}
}

// Handle executes the query. Notifications come back oldest first, matching
// the order they were dispatched in.
func (h GetUserNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetUserNotificationsQuery,
) ([]GetUserNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			title,
			message,
			type,
			read,
			payload,
			created_at
		FROM notifications
		WHERE user_id = ?
		ORDER BY created_at, id
	`, uuid.UUID(query.UserID().Bytes())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := make([]GetUserNotificationsQueryResponse, 0)
	for rows.Next() {
		var (
			id        uuid.UUID
			title     string
			message   string
			kind      string
			read      bool
			payload   []byte
			createdAt time.Time
		)

		err = rows.Scan(
			&id,
			&title,
			&message,
			&kind,
			&read,
			&payload,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		resp := GetUserNotificationsQueryResponse{
			Title:     title,
			Message:   message,
			Type:      kind,
			Read:      read,
			Payload:   payload,
			CreatedAt: createdAt,
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}

		notifications = append(notifications, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}
