package order

import (
	"errors"
	"fmt"
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder. This ensures all orders are
	// properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a shipment order in the system. It is the aggregate root
// that manages the order lifecycle from creation through driver assignment
// to delivery or cancellation.
//
// Order maintains these invariants:
//   - Must have a valid unique identifier, client and tracking number
//   - Price must not be negative
//   - Status transitions follow the lifecycle graph and the actor's role
//   - A driver is referenced only while status is Accepted, PickedUp,
//     InTransit or Delivered; any cancellation clears the reference
//   - Can only be created through NewOrder or RestoreOrder
//
// The struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	id             kernel.UUID
	trackingNumber string
	clientID       kernel.UUID
	driverID       *kernel.UUID
	pickup         Address
	delivery       Address
	pkg            PackageDetails
	price          decimal.Decimal
	paymentState   PaymentState
	commissionPaid bool
	status         Status
	createdAt      time.Time
	updatedAt      time.Time
	deliveredAt    *time.Time

	isConstructed bool
}

// NewOrder creates a new Order in Pending status with a freshly generated
// tracking number. This is the only way to create a brand-new order.
//
// Parameters:
//   - id: unique identifier for the order
//   - clientID: the client creating the shipment
//   - pickup, delivery: validated addresses
//   - pkg: validated package details
//   - price: shipment price, must not be negative
func NewOrder(
	id kernel.UUID,
	clientID kernel.UUID,
	pickup Address,
	delivery Address,
	pkg PackageDetails,
	price decimal.Decimal,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		clientID.Validate(),
		pickup.Validate(),
		delivery.Validate(),
		pkg.Validate(),
		validatePrice(price),
	); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Order{
		id:             id,
		trackingNumber: NewTrackingNumber(),
		clientID:       clientID,
		pickup:         pickup,
		delivery:       delivery,
		pkg:            pkg,
		price:          price,
		paymentState:   PaymentStatePending,
		status:         StatusPending,
		createdAt:      now,
		updatedAt:      now,
		isConstructed:  true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence.
// It re-validates the cross-field invariants, in particular the consistency
// between status and driver assignment.
func RestoreOrder(
	id kernel.UUID,
	trackingNumber string,
	clientID kernel.UUID,
	driverID *kernel.UUID,
	pickup Address,
	delivery Address,
	pkg PackageDetails,
	price decimal.Decimal,
	paymentState PaymentState,
	commissionPaid bool,
	status Status,
	createdAt time.Time,
	updatedAt time.Time,
	deliveredAt *time.Time,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		clientID.Validate(),
		pickup.Validate(),
		delivery.Validate(),
		pkg.Validate(),
		validatePrice(price),
		paymentState.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if trackingNumber == "" {
		return nil, errs.NewValueIsRequiredError("trackingNumber")
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
	}
	if err := validateDriverForStatus(status, driverID != nil); err != nil {
		return nil, err
	}

	return &Order{
		id:             id,
		trackingNumber: trackingNumber,
		clientID:       clientID,
		driverID:       driverID,
		pickup:         pickup,
		delivery:       delivery,
		pkg:            pkg,
		price:          price,
		paymentState:   paymentState,
		commissionPaid: commissionPaid,
		status:         status,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
		deliveredAt:    deliveredAt,
		isConstructed:  true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// TrackingNumber returns the human-readable tracking number.
func (o *Order) TrackingNumber() string { return o.trackingNumber }

// Client returns the client who created the order.
func (o *Order) Client() kernel.UUID { return o.clientID }

// Driver returns the assigned driver's ID, or nil if none is assigned.
func (o *Order) Driver() *kernel.UUID { return o.driverID }

// Pickup returns the pickup address.
func (o *Order) Pickup() Address { return o.pickup }

// Delivery returns the delivery address.
func (o *Order) Delivery() Address { return o.delivery }

// Package returns the package details.
func (o *Order) Package() PackageDetails { return o.pkg }

// Price returns the shipment price.
func (o *Order) Price() decimal.Decimal { return o.price }

// PaymentState returns the client's payment state for the shipment.
// Settlement happens outside this subsystem; the state is carried
// through persistence unchanged.
func (o *Order) PaymentState() PaymentState { return o.paymentState }

// CommissionPaid reports whether the driver's commission for this
// delivery has been confirmed by an admin.
func (o *Order) CommissionPaid() bool { return o.commissionPaid }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// CreatedAt returns the creation time.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// UpdatedAt returns the last modification time.
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// DeliveredAt returns the actual delivery time, or nil if not delivered.
func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// Accept assigns the order to a driver and moves it to Accepted.
//
// The order must be in Pending status. Eligibility of the driver
// (no other active order, unconfirmed-payment cap) is checked by the
// application layer before calling; the conditional write on the previous
// status in the repository is the final safety net against two drivers
// accepting the same order.
func (o *Order) Accept(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(StatusAccepted)
	if err != nil {
		return err
	}

	o.status = newStatus
	o.driverID = &driverID
	o.touch()
	return nil
}

// TransitionTo advances the order to the target status on behalf of an actor.
//
// Checks, in order:
//  1. the actor's role permits the edge (PermissionDeniedError otherwise)
//  2. the actor owns the order: a client must be the order's client, a
//     driver must be the assigned driver (PermissionDeniedError otherwise)
//  3. the edge is legal in the status graph (ValueIsInvalidError otherwise)
//
// Side effects of a successful transition:
//   - reaching Delivered records the actual delivery time
//   - reaching Cancelled clears the driver reference, so cancelled orders
//     never hold a driver
func (o *Order) TransitionTo(target Status, actor Actor) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := o.authorize(target, actor); err != nil {
		return err
	}

	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	o.status = newStatus
	switch newStatus {
	case StatusDelivered:
		now := time.Now().UTC()
		o.deliveredAt = &now
	case StatusCancelled:
		o.driverID = nil
	}
	o.touch()
	return nil
}

// MarkCommissionPaid flags the driver's commission for this delivery as
// confirmed. Called by the payment ledger when an admin confirms the payment.
func (o *Order) MarkCommissionPaid() {
	o.commissionPaid = true
	o.touch()
}

func (o *Order) authorize(target Status, actor Actor) error {
	if err := actor.Role.Validate(); err != nil {
		return err
	}

	if !actor.Role.MayTransition(o.status, target) {
		return errs.NewPermissionDeniedErrorWithCause(
			"transition not allowed",
			fmt.Errorf("role %s cannot move order from %s to %s", actor.Role, o.status, target),
		)
	}

	switch actor.Role {
	case RoleClient:
		if !actor.ID.IsEqual(o.clientID) {
			return errs.NewPermissionDeniedError("clients may only modify their own orders")
		}
	case RoleDriver:
		if o.driverID == nil || !actor.ID.IsEqual(*o.driverID) {
			return errs.NewPermissionDeniedError("drivers may only modify orders assigned to them")
		}
	case RoleAdmin:
		// admins act on any order
	}

	return nil
}

func (o *Order) touch() {
	o.updatedAt = time.Now().UTC()
}

func validatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"price",
			fmt.Errorf("%s is negative", price),
		)
	}
	return nil
}

// validateDriverForStatus enforces the consistency between status and
// driver assignment when restoring from persistence.
//
// Rules:
//   - Pending and Cancelled orders must not reference a driver
//   - Accepted, PickedUp, InTransit and Delivered orders must reference one
func validateDriverForStatus(status Status, hasDriver bool) error {
	assignable := status.IsActive() || status == StatusDelivered

	if hasDriver && !assignable {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver",
			fmt.Errorf("%s order cannot reference a driver", status),
		)
	}
	if !hasDriver && assignable {
		return errs.NewValueIsInvalidErrorWithCause(
			"driver",
			fmt.Errorf("%s order must reference a driver", status),
		)
	}
	return nil
}
