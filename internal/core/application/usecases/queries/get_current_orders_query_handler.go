package queries

import (
	"context"
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetCurrentOrdersQueryHandler reads in-flight orders straight from the
// database, bypassing the aggregate layer.
type GetCurrentOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetCurrentOrdersQueryHandler creates a handler for current-order queries.
func NewGetCurrentOrdersQueryHandler(db *gorm.DB) GetCurrentOrdersQueryHandler {
	return GetCurrentOrdersQueryHandler{db: db}
}

// Handle executes the query. The scoping column depends on the actor's role:
// clients filter on client_id across all non-terminal statuses, drivers on
// driver_id across the statuses a driver can hold, and admins get everything
// non-terminal. Results are newest first.
func (h GetCurrentOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetCurrentOrdersQuery,
) ([]GetCurrentOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	statuses := []int{
		int(order.StatusPending),
		int(order.StatusAccepted),
		int(order.StatusPickedUp),
		int(order.StatusInTransit),
	}

	const baseQuery = `
		SELECT
			id,
			tracking_number,
			status,
			client_id,
			driver_id,
			pickup_city,
			delivery_city,
			price,
			created_at
		FROM orders
	`

	actor := query.Actor()
	var rowsQuery *gorm.DB
	switch actor.Role {
	case order.RoleClient:
		rowsQuery = h.db.WithContext(ctx).Raw(
			baseQuery+`WHERE client_id = ? AND status IN ? ORDER BY created_at DESC, id`,
			uuid.UUID(actor.ID.Bytes()), statuses)
	case order.RoleDriver:
		rowsQuery = h.db.WithContext(ctx).Raw(
			baseQuery+`WHERE driver_id = ? AND status IN ? ORDER BY created_at DESC, id`,
			uuid.UUID(actor.ID.Bytes()), statuses)
	default:
		rowsQuery = h.db.WithContext(ctx).Raw(
			baseQuery+`WHERE status IN ? ORDER BY created_at DESC, id`, statuses)
	}

	rows, err := rowsQuery.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]GetCurrentOrdersQueryResponse, 0)
	for rows.Next() {
		var (
			id             uuid.UUID
			trackingNumber string
			status         int
			clientID       uuid.UUID
			driverID       *uuid.UUID
			pickupCity     string
			deliveryCity   string
			price          decimal.Decimal
			createdAt      time.Time
		)

		err = rows.Scan(
			&id,
			&trackingNumber,
			&status,
			&clientID,
			&driverID,
			&pickupCity,
			&deliveryCity,
			&price,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		resp := GetCurrentOrdersQueryResponse{
			TrackingNumber: trackingNumber,
			Status:         order.Status(status).String(),
			PickupCity:     pickupCity,
			DeliveryCity:   deliveryCity,
			Price:          price,
			CreatedAt:      createdAt,
		}

		resp.ID, err = kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		resp.ClientID, err = kernel.UUIDFromBytes(clientID[:])
		if err != nil {
			return nil, err
		}
		if driverID != nil {
			restored, idErr := kernel.UUIDFromBytes(driverID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.DriverID = &restored
		}

		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
