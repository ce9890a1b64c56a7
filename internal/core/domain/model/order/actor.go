package order

import (
	"fmt"
	"strings"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/errs"
)

// Role identifies which kind of user is acting on an order.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleClient is the customer who created the shipment order.
	RoleClient

	// RoleDriver is the driver carrying the shipment.
	RoleDriver

	// RoleAdmin is the operator, permitted to drive any legal edge.
	RoleAdmin
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown: "UNKNOWN",
		RoleClient:  "CLIENT",
		RoleDriver:  "DRIVER",
		RoleAdmin:   "ADMIN",
	}
}

// RoleFromString parses a role from its wire representation.
// Parsing is case-insensitive; this is the single normalization point
// for incoming role strings.
func RoleFromString(s string) (Role, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == normalized {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a valid role", s),
	)
}

// String returns the wire name of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks if the Role value is defined and non-Unknown.
func (r Role) Validate() error {
	switch r {
	case RoleClient, RoleDriver, RoleAdmin:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("%d is not a valid role", r),
		)
	}
}

// MayTransition reports whether the role is permitted to drive the edge
// from one status to another, independent of edge legality in the graph.
//
// Rules:
//   - Clients may only cancel, and only from Pending or Accepted.
//   - Drivers advance their own delivery (PickedUp, InTransit, Delivered)
//     and may cancel from Accepted or PickedUp.
//   - Admins may drive any edge that the graph allows.
func (r Role) MayTransition(from, to Status) bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleClient:
		return to == StatusCancelled && (from == StatusPending || from == StatusAccepted)
	case RoleDriver:
		if to == StatusCancelled {
			return from == StatusAccepted || from == StatusPickedUp
		}
		return to == StatusPickedUp || to == StatusInTransit || to == StatusDelivered
	default:
		return false
	}
}

// Actor is the identity on whose behalf an order operation runs.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

// NewActor creates a validated Actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	return Actor{ID: id, Role: role}, nil
}
