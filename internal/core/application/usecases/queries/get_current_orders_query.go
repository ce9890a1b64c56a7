package queries

import (
	"errors"
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetCurrentOrdersQueryIsNotConstructed = errors.New(
		"GetCurrentOrdersQuery must be created via NewGetCurrentOrdersQuery constructor",
	)
)

// GetCurrentOrdersQuery retrieves the in-flight orders visible to an actor.
// Clients see their own orders that are not yet delivered or cancelled;
// drivers see the orders assigned to them that are still moving; admins
// see every in-flight order in the system.
type GetCurrentOrdersQuery struct { //nolint:recvcheck //using for validation
	actor order.Actor

	guard guard.ConstructorGuard
}

// NewGetCurrentOrdersQuery creates a query scoped to the given actor.
func NewGetCurrentOrdersQuery(actor order.Actor) (GetCurrentOrdersQuery, error) {
	q := GetCurrentOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setActor(actor); err != nil {
		return GetCurrentOrdersQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCurrentOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetCurrentOrdersQueryIsNotConstructed)
}

// Actor returns the identity the result set is scoped to.
func (q GetCurrentOrdersQuery) Actor() order.Actor { return q.actor }

func (q *GetCurrentOrdersQuery) setActor(actor order.Actor) error {
	if err := errors.Join(actor.ID.Validate(), actor.Role.Validate()); err != nil {
		return err
	}
	q.actor = actor
	return nil
}

// GetCurrentOrdersQueryResponse is one in-flight order row.
type GetCurrentOrdersQueryResponse struct {
	ID             kernel.UUID
	TrackingNumber string
	Status         string
	ClientID       kernel.UUID
	DriverID       *kernel.UUID
	PickupCity     string
	DeliveryCity   string
	Price          decimal.Decimal
	CreatedAt      time.Time
}
