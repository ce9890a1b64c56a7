package userrepo

import (
	"context"
	"errors"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"

	"shipment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// SetActive flips the account's active flag.
func (r *GormUserRepository) SetActive(ctx context.Context, id kernel.UUID, active bool) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&UserDTO{}).
		Where("id = ?", id.Bytes()).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("user", id.String())
	}

	return nil
}

// IsActive reports whether the account is currently active.
func (r *GormUserRepository) IsActive(ctx context.Context, id kernel.UUID) (bool, error) {
	if err := id.Validate(); err != nil {
		return false, err
	}

	var dto UserDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.NewObjectNotFoundError("user", id.String())
		}
		return false, err
	}

	return dto.IsActive, nil
}

// GetIdleDriverIDs returns active drivers not currently holding an order.
// These are the recipients of new-orders-available notifications.
func (r *GormUserRepository) GetIdleDriverIDs(ctx context.Context) ([]kernel.UUID, error) {
	return r.scanIDs(r.db.WithContext(ctx).Raw(`
		SELECT u.id
		FROM users u
		WHERE u.role = ?
		  AND u.is_active = true
		  AND NOT EXISTS (
			SELECT 1 FROM orders o
			WHERE o.driver_id = u.id AND o.status IN ?
		  )
	`, order.RoleDriver.String(), []int{
		int(order.StatusAccepted),
		int(order.StatusPickedUp),
		int(order.StatusInTransit),
	}))
}

// GetAdminIDs returns every admin account. Admin broadcasts fan out into
// one notification per admin.
func (r *GormUserRepository) GetAdminIDs(ctx context.Context) ([]kernel.UUID, error) {
	return r.scanIDs(r.db.WithContext(ctx).Raw(`
		SELECT id FROM users WHERE role = ?
	`, order.RoleAdmin.String()))
}

func (r *GormUserRepository) scanIDs(query *gorm.DB) ([]kernel.UUID, error) {
	rows, err := query.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]kernel.UUID, 0)
	for rows.Next() {
		var raw uuid.UUID
		if err = rows.Scan(&raw); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(raw[:])
		if idErr != nil {
			return nil, idErr
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
