package queries

import (
	"errors"
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/guard"
)

var (
	ErrGetUserNotificationsQueryIsNotConstructed = errors.New(
		"GetUserNotificationsQuery must be created via NewGetUserNotificationsQuery constructor",
	)
)

// GetUserNotificationsQuery retrieves a user's notification feed in the
// order the notifications were produced.
type GetUserNotificationsQuery struct { //nolint:recvcheck //using for validation
	userID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetUserNotificationsQuery creates a query for the given user.
func NewGetUserNotificationsQuery(userID kernel.UUID) (GetUserNotificationsQuery, error) {
	q := GetUserNotificationsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setUserID(userID); err != nil {
		return GetUserNotificationsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetUserNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetUserNotificationsQueryIsNotConstructed)
}

// UserID returns the feed owner.
func (q GetUserNotificationsQuery) UserID() kernel.UUID { return q.userID }

func (q *GetUserNotificationsQuery) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	q.userID = userID
	return nil
}

// GetUserNotificationsQueryResponse is one notification row.
type GetUserNotificationsQueryResponse struct {
	ID        kernel.UUID
	Title     string
	Message   string
	Type      string
	Read      bool
	Payload   []byte
	CreatedAt time.Time
}
