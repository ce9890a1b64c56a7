// Package userrepo persists account records: role, confirmation and the
// one-way active flag driven by the commission deactivation policy.
package userrepo

import (
	"time"

	"github.com/google/uuid"
)

// UserDTO represents the database structure for persisting user accounts.
type UserDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role        string    `gorm:"size:16;index"`
	IsActive    bool
	IsConfirmed bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName overrides GORM's default naming convention to use "users".
func (UserDTO) TableName() string {
	return "users"
}
