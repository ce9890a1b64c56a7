package order

import (
	"fmt"
	"strings"

	"shipment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Pending ──> Accepted ──> PickedUp ──> InTransit ──> Delivered
//	   │            │            │
//	   └────────────┴────────────┴──> Cancelled
//
// Delivered and Cancelled are terminal states with no further transitions.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusPending is the initial status when an order is first created.
	// Orders in this status are waiting for a driver to accept them.
	StatusPending

	// StatusAccepted indicates a driver has accepted the order.
	StatusAccepted

	// StatusPickedUp indicates the driver has collected the package.
	StatusPickedUp

	// StatusInTransit indicates the package is on its way to the
	// delivery address.
	StatusInTransit

	// StatusDelivered indicates the package reached its destination.
	// Terminal; reaching it triggers commission tracking.
	StatusDelivered

	// StatusCancelled indicates the order was abandoned before delivery.
	// Terminal; cancelled orders are retained for history but can never
	// be assigned again.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "UNKNOWN",
		StatusPending:   "PENDING",
		StatusAccepted:  "ACCEPTED",
		StatusPickedUp:  "PICKED_UP",
		StatusInTransit: "IN_TRANSIT",
		StatusDelivered: "DELIVERED",
		StatusCancelled: "CANCELLED",
	}
}

// getTransitions returns the legal edges of the status graph.
func getTransitions() map[Status][]Status {
	return map[Status][]Status{
		StatusPending:   {StatusAccepted, StatusCancelled},
		StatusAccepted:  {StatusPickedUp, StatusCancelled},
		StatusPickedUp:  {StatusInTransit, StatusCancelled},
		StatusInTransit: {StatusDelivered},
		StatusDelivered: {},
		StatusCancelled: {},
	}
}

// StatusFromString parses a status from its wire representation.
// Parsing is case-insensitive; this is the single place where incoming
// status strings are normalized. Returns an error for unknown values.
func StatusFromString(s string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for status, str := range getStatusStrings() {
		if status != StatusUnknown && str == normalized {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status",
		fmt.Errorf("%q is not a valid order status", s),
	)
}

// String returns the wire name of the status.
// Implements fmt.Stringer and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Validate checks if the Status value is a defined, non-Unknown state.
func (s Status) Validate() error {
	if _, ok := getTransitions()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%d is not a valid status", s),
		)
	}
	return nil
}

// IsTerminal reports whether no further transitions exist from this status.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// IsActive reports whether the order occupies its driver.
// A driver holding an order in an active status may not accept another one.
func (s Status) IsActive() bool {
	return s == StatusAccepted || s == StatusPickedUp || s == StatusInTransit
}

// CanTransitionTo reports whether the edge from s to target exists
// in the status graph.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates the edge from s to target and returns the new status.
//
// Returns:
//   - (target, nil) when the edge is legal
//   - (0, ValueIsInvalidError) when target is not a defined status or the
//     edge does not exist (e.g. the order is already terminal)
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(target) {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("cannot transition from %s to %s", s, target),
		)
	}

	return target, nil
}
