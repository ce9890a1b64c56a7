package queries

import (
	"errors"
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrGetDriverPendingPaymentsQueryIsNotConstructed = errors.New(
		"GetDriverPendingPaymentsQuery must be created via NewGetDriverPendingPaymentsQuery constructor",
	)
)

// GetDriverPendingPaymentsQuery lists the commission payments a driver has
// not yet confirmed sending. This is the driver's "what do I still owe"
// view and the same set that gates accepting new orders.
type GetDriverPendingPaymentsQuery struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetDriverPendingPaymentsQuery creates a query for the given driver.
func NewGetDriverPendingPaymentsQuery(driverID kernel.UUID) (GetDriverPendingPaymentsQuery, error) {
	q := GetDriverPendingPaymentsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := q.setDriverID(driverID); err != nil {
		return GetDriverPendingPaymentsQuery{}, err
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetDriverPendingPaymentsQuery) Validate() error {
	return q.guard.Validate(ErrGetDriverPendingPaymentsQueryIsNotConstructed)
}

// DriverID returns the driver whose pending payments are requested.
func (q GetDriverPendingPaymentsQuery) DriverID() kernel.UUID { return q.driverID }

func (q *GetDriverPendingPaymentsQuery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	q.driverID = driverID
	return nil
}

// GetDriverPendingPaymentsQueryResponse is one unconfirmed commission row,
// joined with the order it settles so the driver can recognize it.
type GetDriverPendingPaymentsQueryResponse struct {
	PaymentID      kernel.UUID
	OrderID        kernel.UUID
	TrackingNumber string
	Amount         decimal.Decimal
	Status         string
	HasIssue       bool
	CreatedAt      time.Time
}
