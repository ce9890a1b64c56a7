package http

import (
	"encoding/json"
	"time"

	"shipment/internal/core/application/usecases/queries"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/domain/model/payment"
)

// Error is the uniform error body returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AddressRequest carries one address of a new shipment.
type AddressRequest struct {
	Line1        string `json:"line1"`
	City         string `json:"city"`
	ContactPhone string `json:"contactPhone,omitempty"`
}

// PackageRequest carries the package details of a new shipment.
type PackageRequest struct {
	Description string  `json:"description"`
	WeightKG    float64 `json:"weightKg"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	Pickup   AddressRequest `json:"pickup"`
	Delivery AddressRequest `json:"delivery"`
	Package  PackageRequest `json:"package"`
	Price    string         `json:"price"`
}

// UpdateStatusRequest is the body of PATCH /api/v1/orders/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// SubmitPaymentRequest is the body of POST /api/v1/payments/submit/:orderId.
type SubmitPaymentRequest struct {
	Method     string `json:"method"`
	Reference  string `json:"reference"`
	Screenshot string `json:"screenshot,omitempty"`
}

// ReviewPaymentRequest is the body of PUT /api/v1/payments/confirm/:paymentId.
type ReviewPaymentRequest struct {
	Verdict string `json:"verdict"`
	Notes   string `json:"notes,omitempty"`
}

// ReportIssueRequest is the body of POST /api/v1/payments/driver-report/:paymentId.
type ReportIssueRequest struct {
	Details string `json:"details,omitempty"`
}

// MarkReadRequest is the body of PUT /api/v1/notifications/read.
type MarkReadRequest struct {
	IDs []string `json:"ids"`
}

// OrderResponse is the full order representation returned by write endpoints.
type OrderResponse struct {
	ID             string         `json:"id"`
	TrackingNumber string         `json:"trackingNumber"`
	Status         string         `json:"status"`
	ClientID       string         `json:"clientId"`
	DriverID       *string        `json:"driverId,omitempty"`
	Pickup         AddressRequest `json:"pickup"`
	Delivery       AddressRequest `json:"delivery"`
	Package        PackageRequest `json:"package"`
	Price          string         `json:"price"`
	CommissionPaid bool           `json:"commissionPaid"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
	DeliveredAt    *time.Time     `json:"deliveredAt,omitempty"`
	Warning        string         `json:"warning,omitempty"`
}

func orderToResponse(o *order.Order) OrderResponse {
	resp := OrderResponse{
		ID:             o.ID().String(),
		TrackingNumber: o.TrackingNumber(),
		Status:         o.Status().String(),
		ClientID:       o.Client().String(),
		Pickup: AddressRequest{
			Line1:        o.Pickup().Line1(),
			City:         o.Pickup().City(),
			ContactPhone: o.Pickup().ContactPhone(),
		},
		Delivery: AddressRequest{
			Line1:        o.Delivery().Line1(),
			City:         o.Delivery().City(),
			ContactPhone: o.Delivery().ContactPhone(),
		},
		Package: PackageRequest{
			Description: o.Package().Description(),
			WeightKG:    o.Package().WeightKG(),
		},
		Price:          o.Price().String(),
		CommissionPaid: o.CommissionPaid(),
		CreatedAt:      o.CreatedAt(),
		UpdatedAt:      o.UpdatedAt(),
		DeliveredAt:    o.DeliveredAt(),
	}
	if driver := o.Driver(); driver != nil {
		id := driver.String()
		resp.DriverID = &id
	}
	return resp
}

// PaymentResponse is the payment representation returned by ledger endpoints.
type PaymentResponse struct {
	ID              string    `json:"id"`
	OrderID         string    `json:"orderId"`
	DriverID        string    `json:"driverId"`
	Amount          string    `json:"amount"`
	Status          string    `json:"status"`
	DriverConfirmed bool      `json:"driverConfirmed"`
	HasIssue        bool      `json:"hasIssue"`
	IssueDetails    string    `json:"issueDetails,omitempty"`
	Method          string    `json:"method"`
	Reference       string    `json:"reference,omitempty"`
	Screenshot      string    `json:"screenshot,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func paymentToResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:              p.ID().String(),
		OrderID:         p.Order().String(),
		DriverID:        p.Driver().String(),
		Amount:          p.Amount().String(),
		Status:          p.Status().String(),
		DriverConfirmed: p.DriverConfirmed(),
		HasIssue:        p.HasIssue(),
		IssueDetails:    p.IssueDetails(),
		Method:          p.Method(),
		Reference:       p.Reference(),
		Screenshot:      p.Screenshot(),
		Notes:           p.Notes(),
		CreatedAt:       p.CreatedAt(),
		UpdatedAt:       p.UpdatedAt(),
	}
}

// CurrentOrderResponse is one row of GET /api/v1/orders/current.
type CurrentOrderResponse struct {
	ID             string    `json:"id"`
	TrackingNumber string    `json:"trackingNumber"`
	Status         string    `json:"status"`
	ClientID       string    `json:"clientId"`
	DriverID       *string   `json:"driverId,omitempty"`
	PickupCity     string    `json:"pickupCity"`
	DeliveryCity   string    `json:"deliveryCity"`
	Price          string    `json:"price"`
	CreatedAt      time.Time `json:"createdAt"`
}

func currentOrderToResponse(row queries.GetCurrentOrdersQueryResponse) CurrentOrderResponse {
	resp := CurrentOrderResponse{
		ID:             row.ID.String(),
		TrackingNumber: row.TrackingNumber,
		Status:         row.Status,
		ClientID:       row.ClientID.String(),
		PickupCity:     row.PickupCity,
		DeliveryCity:   row.DeliveryCity,
		Price:          row.Price.String(),
		CreatedAt:      row.CreatedAt,
	}
	if row.DriverID != nil {
		id := row.DriverID.String()
		resp.DriverID = &id
	}
	return resp
}

// PendingPaymentResponse is one row of GET /api/v1/payments/driver-pending.
type PendingPaymentResponse struct {
	PaymentID      string    `json:"paymentId"`
	OrderID        string    `json:"orderId"`
	TrackingNumber string    `json:"trackingNumber"`
	Amount         string    `json:"amount"`
	Status         string    `json:"status"`
	HasIssue       bool      `json:"hasIssue"`
	CreatedAt      time.Time `json:"createdAt"`
}

func pendingPaymentToResponse(row queries.GetDriverPendingPaymentsQueryResponse) PendingPaymentResponse {
	return PendingPaymentResponse{
		PaymentID:      row.PaymentID.String(),
		OrderID:        row.OrderID.String(),
		TrackingNumber: row.TrackingNumber,
		Amount:         row.Amount.String(),
		Status:         row.Status,
		HasIssue:       row.HasIssue,
		CreatedAt:      row.CreatedAt,
	}
}

// NotificationResponse is one row of GET /api/v1/notifications.
type NotificationResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Message   string          `json:"message"`
	Type      string          `json:"type"`
	Read      bool            `json:"read"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

func notificationToResponse(row queries.GetUserNotificationsQueryResponse) NotificationResponse {
	return NotificationResponse{
		ID:        row.ID.String(),
		Title:     row.Title,
		Message:   row.Message,
		Type:      row.Type,
		Read:      row.Read,
		Payload:   row.Payload,
		CreatedAt: row.CreatedAt,
	}
}
