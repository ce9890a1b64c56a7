// Package paymentrepo persists commission payment aggregates. The unique
// index on order_id enforces the one-payment-per-order ledger invariant at
// the database level.
package paymentrepo

import (
	"time"

	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/payment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentDTO represents the database structure for persisting payments.
type PaymentDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID         uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	DriverID        uuid.UUID `gorm:"type:uuid;index"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2)"`
	Status          int             `gorm:"index"`
	DriverConfirmed bool
	HasIssue        bool
	IssueDetails    string
	Method          string
	Reference       string
	Screenshot      string
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName overrides GORM's default naming convention to use "payments".
func (PaymentDTO) TableName() string {
	return "payments"
}

func fromDomain(record *payment.Payment) PaymentDTO {
	return PaymentDTO{
		ID:              record.ID().Bytes(),
		OrderID:         record.Order().Bytes(),
		DriverID:        record.Driver().Bytes(),
		Amount:          record.Amount(),
		Status:          int(record.Status()),
		DriverConfirmed: record.DriverConfirmed(),
		HasIssue:        record.HasIssue(),
		IssueDetails:    record.IssueDetails(),
		Method:          record.Method(),
		Reference:       record.Reference(),
		Screenshot:      record.Screenshot(),
		Notes:           record.Notes(),
		CreatedAt:       record.CreatedAt(),
		UpdatedAt:       record.UpdatedAt(),
	}
}

func toDomain(dto PaymentDTO) (*payment.Payment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	return payment.RestorePayment(
		id,
		orderID,
		driverID,
		dto.Amount,
		payment.Status(dto.Status),
		dto.DriverConfirmed,
		dto.HasIssue,
		dto.IssueDetails,
		dto.Method,
		dto.Reference,
		dto.Screenshot,
		dto.Notes,
		dto.CreatedAt,
		dto.UpdatedAt,
	)
}
