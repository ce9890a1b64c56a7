package orderrepo

import (
	"context"
	"errors"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database. A tracking number collision is
// reported as a ConflictError so callers can regenerate and retry.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("order", aggregate.ID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order without a status precondition.
// Select("*") forces zero-valued columns (cleared driver, false flags)
// to be written as well.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// UpdateInStatus saves the order only if the stored row still holds the
// expected status. A zero-row update means a concurrent transition won the
// race and is reported as a ConflictError.
func (r *GormOrderRepository) UpdateInStatus(
	ctx context.Context, aggregate *order.Order, expected order.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if err := expected.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected)).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewConflictError("order", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// CountActiveByDriver counts the driver's orders in Accepted, PickedUp or
// InTransit status.
func (r *GormOrderRepository) CountActiveByDriver(
	ctx context.Context, driverID kernel.UUID,
) (int, error) {
	if err := driverID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("driver_id = ? AND status IN ?", driverID.Bytes(), activeStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// CountUnpaidDeliveredByDriver counts the driver's delivered orders whose
// commission is still unconfirmed.
func (r *GormOrderRepository) CountUnpaidDeliveredByDriver(
	ctx context.Context, driverID kernel.UUID,
) (int, error) {
	if err := driverID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("driver_id = ? AND status = ? AND commission_paid = ?",
			driverID.Bytes(), int(order.StatusDelivered), false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// ListDriversWithUnpaidDelivered returns drivers holding at least min
// delivered orders with unconfirmed commission.
func (r *GormOrderRepository) ListDriversWithUnpaidDelivered(
	ctx context.Context, min int,
) ([]kernel.UUID, error) {
	rows, err := r.db.WithContext(ctx).Raw(`
		SELECT driver_id
		FROM orders
		WHERE driver_id IS NOT NULL
		  AND status = ?
		  AND commission_paid = false
		GROUP BY driver_id
		HAVING COUNT(*) >= ?
	`, int(order.StatusDelivered), min).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	driverIDs := make([]kernel.UUID, 0)
	for rows.Next() {
		var raw uuid.UUID
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		driverIDs = append(driverIDs, driverID)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return driverIDs, nil
}

func activeStatuses() []int {
	return []int{
		int(order.StatusAccepted),
		int(order.StatusPickedUp),
		int(order.StatusInTransit),
	}
}
