package queries

import (
	"context"
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetDriverPendingPaymentsQueryHandler reads unconfirmed commission payments
// for a driver, joined with their orders for the tracking number.
type GetDriverPendingPaymentsQueryHandler struct {
	db *gorm.DB
}

// NewGetDriverPendingPaymentsQueryHandler creates a handler for pending
// payment queries.
func NewGetDriverPendingPaymentsQueryHandler(db *gorm.DB) GetDriverPendingPaymentsQueryHandler {
	return GetDriverPendingPaymentsQueryHandler{db: db}
}

// Handle executes the query. A payment stays in this list until the driver
// confirms having sent the transfer, regardless of the admin's verdict.
// Oldest debts come first.
func (h GetDriverPendingPaymentsQueryHandler) Handle(
	ctx context.Context,
	query GetDriverPendingPaymentsQuery,
) ([]GetDriverPendingPaymentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.order_id,
			o.tracking_number,
			p.amount,
			p.status,
			p.has_issue,
			p.created_at
		FROM payments p
		JOIN orders o ON o.id = p.order_id
		WHERE p.driver_id = ? AND p.driver_confirmed = false
		ORDER BY p.created_at, p.id
	`, uuid.UUID(query.DriverID().Bytes())).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]GetDriverPendingPaymentsQueryResponse, 0)
	for rows.Next() {
		var (
			id             uuid.UUID
			orderID        uuid.UUID
			trackingNumber string
			amount         decimal.Decimal
			status         int
			hasIssue       bool
			createdAt      time.Time
		)

		err = rows.Scan(
			&id,
			&orderID,
			&trackingNumber,
			&amount,
			&status,
			&hasIssue,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		resp := GetDriverPendingPaymentsQueryResponse{
			TrackingNumber: trackingNumber,
			Amount:         amount,
			Status:         payment.Status(status).String(),
			HasIssue:       hasIssue,
			CreatedAt:      createdAt,
		}

		resp.PaymentID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.OrderID, err = kernel.UUIDFromBytes(orderID[:])
		if err != nil {
			return nil, err
		}

		payments = append(payments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return payments, nil
}
