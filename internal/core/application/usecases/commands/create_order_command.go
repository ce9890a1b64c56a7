package commands

import (
	"errors"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
)

// CreateOrderCommand represents a client's request to create a new shipment
// order. Encapsulates the pickup and delivery addresses, the package
// details and the agreed price.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	clientID kernel.UUID
	pickup   order.Address
	delivery order.Address
	pkg      order.PackageDetails
	price    decimal.Decimal

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new shipment order.
// Validates identifiers, both addresses, the package details and that the
// price is not negative.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	clientID kernel.UUID,
	pickup order.Address,
	delivery order.Address,
	pkg order.PackageDetails,
	price decimal.Decimal,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setClientID(clientID),
		cmd.setPickup(pickup),
		cmd.setDelivery(delivery),
		cmd.setPackage(pkg),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.price = price

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

// ClientID returns the client creating the order.
func (c CreateOrderCommand) ClientID() kernel.UUID { return c.clientID }

// Pickup returns the pickup address.
func (c CreateOrderCommand) Pickup() order.Address { return c.pickup }

// Delivery returns the delivery address.
func (c CreateOrderCommand) Delivery() order.Address { return c.delivery }

// Package returns the package details.
func (c CreateOrderCommand) Package() order.PackageDetails { return c.pkg }

// Price returns the shipment price.
func (c CreateOrderCommand) Price() decimal.Decimal { return c.price }

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setClientID(clientID kernel.UUID) error {
	if err := clientID.Validate(); err != nil {
		return err
	}
	c.clientID = clientID
	return nil
}

func (c *CreateOrderCommand) setPickup(pickup order.Address) error {
	if err := pickup.Validate(); err != nil {
		return err
	}
	c.pickup = pickup
	return nil
}

func (c *CreateOrderCommand) setDelivery(delivery order.Address) error {
	if err := delivery.Validate(); err != nil {
		return err
	}
	c.delivery = delivery
	return nil
}

func (c *CreateOrderCommand) setPackage(pkg order.PackageDetails) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	c.pkg = pkg
	return nil
}
