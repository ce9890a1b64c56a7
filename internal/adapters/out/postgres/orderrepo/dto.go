// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. Implements the repository pattern for the order domain
// aggregate, handling the conversion between domain entities and database
// representations.
package orderrepo

import (
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Tracking numbers carry a unique index so a generation collision surfaces as
// a constraint violation instead of a silent duplicate.
type OrderDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingNumber     string     `gorm:"size:16;uniqueIndex"`
	ClientID           uuid.UUID  `gorm:"type:uuid;index"`
	DriverID           *uuid.UUID `gorm:"type:uuid;index"`
	Pickup             AddressDTO `gorm:"embedded;embeddedPrefix:pickup_"`
	Delivery           AddressDTO `gorm:"embedded;embeddedPrefix:delivery_"`
	PackageDescription string
	PackageWeightKG    float64
	Price              decimal.Decimal `gorm:"type:numeric(12,2)"`
	PaymentState       int
	CommissionPaid     bool
	Status             int `gorm:"index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeliveredAt        *time.Time
}

// TableName overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// AddressDTO represents an embedded pickup or delivery address.
type AddressDTO struct {
	Line1        string
	City         string
	ContactPhone string
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	return OrderDTO{
		ID:             aggregate.ID().Bytes(),
		TrackingNumber: aggregate.TrackingNumber(),
		ClientID:       aggregate.Client().Bytes(),
		DriverID:       driverID,
		Pickup: AddressDTO{
			Line1:        aggregate.Pickup().Line1(),
			City:         aggregate.Pickup().City(),
			ContactPhone: aggregate.Pickup().ContactPhone(),
		},
		Delivery: AddressDTO{
			Line1:        aggregate.Delivery().Line1(),
			City:         aggregate.Delivery().City(),
			ContactPhone: aggregate.Delivery().ContactPhone(),
		},
		PackageDescription: aggregate.Package().Description(),
		PackageWeightKG:    aggregate.Package().WeightKG(),
		Price:              aggregate.Price(),
		PaymentState:       int(aggregate.PaymentState()),
		CommissionPaid:     aggregate.CommissionPaid(),
		Status:             int(aggregate.Status()),
		CreatedAt:          aggregate.CreatedAt(),
		UpdatedAt:          aggregate.UpdatedAt(),
		DeliveredAt:        aggregate.DeliveredAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	clientID, err := kernel.UUIDFromBytes(dto.ClientID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	pickup, err := order.NewAddress(dto.Pickup.Line1, dto.Pickup.City, dto.Pickup.ContactPhone)
	if err != nil {
		return nil, err
	}

	delivery, err := order.NewAddress(dto.Delivery.Line1, dto.Delivery.City, dto.Delivery.ContactPhone)
	if err != nil {
		return nil, err
	}

	pkg, err := order.NewPackageDetails(dto.PackageDescription, dto.PackageWeightKG)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id,
		dto.TrackingNumber,
		clientID,
		driverID,
		pickup,
		delivery,
		pkg,
		dto.Price,
		order.PaymentState(dto.PaymentState),
		dto.CommissionPaid,
		order.Status(dto.Status),
		dto.CreatedAt,
		dto.UpdatedAt,
		dto.DeliveredAt,
	)
}
