// Package http exposes the shipment coordination API over echo.
// Handlers translate between the wire format and the application's
// commands and queries; all business rules live below this layer.
package http

import (
	"net/http"

	"shipment/internal/core/application/usecases/commands"
	"shipment/internal/core/application/usecases/queries"
	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/domain/model/payment"
	"shipment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	acceptOrderHandler       commands.AcceptOrderCommandHandler
	transitionOrderHandler   commands.TransitionOrderCommandHandler
	submitPaymentHandler     commands.SubmitPaymentCommandHandler
	reviewPaymentHandler     commands.ReviewPaymentCommandHandler
	confirmPaymentHandler    commands.ConfirmPaymentCommandHandler
	reportIssueHandler       commands.ReportPaymentIssueCommandHandler
	markNotificationsHandler commands.MarkNotificationsReadCommandHandler

	// Query handlers
	currentOrdersHandler   queries.GetCurrentOrdersQueryHandler
	pendingPaymentsHandler queries.GetDriverPendingPaymentsQueryHandler
	notificationsHandler   queries.GetUserNotificationsQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	acceptOrderHandler commands.AcceptOrderCommandHandler,
	transitionOrderHandler commands.TransitionOrderCommandHandler,
	submitPaymentHandler commands.SubmitPaymentCommandHandler,
	reviewPaymentHandler commands.ReviewPaymentCommandHandler,
	confirmPaymentHandler commands.ConfirmPaymentCommandHandler,
	reportIssueHandler commands.ReportPaymentIssueCommandHandler,
	markNotificationsHandler commands.MarkNotificationsReadCommandHandler,
	currentOrdersHandler queries.GetCurrentOrdersQueryHandler,
	pendingPaymentsHandler queries.GetDriverPendingPaymentsQueryHandler,
	notificationsHandler queries.GetUserNotificationsQueryHandler,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		acceptOrderHandler:       acceptOrderHandler,
		transitionOrderHandler:   transitionOrderHandler,
		submitPaymentHandler:     submitPaymentHandler,
		reviewPaymentHandler:     reviewPaymentHandler,
		confirmPaymentHandler:    confirmPaymentHandler,
		reportIssueHandler:       reportIssueHandler,
		markNotificationsHandler: markNotificationsHandler,
		currentOrdersHandler:     currentOrdersHandler,
		pendingPaymentsHandler:   pendingPaymentsHandler,
		notificationsHandler:     notificationsHandler,
	}
}

// RegisterRoutes attaches every endpoint to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/orders/current", s.GetCurrentOrders)

	api.POST("/payments/submit/:orderId", s.SubmitPayment)
	api.PUT("/payments/confirm/:paymentId", s.ReviewPayment)
	api.PUT("/payments/driver-confirm/:paymentId", s.DriverConfirmPayment)
	api.POST("/payments/driver-report/:paymentId", s.ReportPaymentIssue)
	api.GET("/payments/driver-pending", s.GetDriverPendingPayments)

	api.GET("/notifications", s.GetNotifications)
	api.PUT("/notifications/read", s.MarkNotificationsRead)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateOrder handles POST /api/v1/orders - a client places a shipment.
func (s *Server) CreateOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, order.RoleClient); err != nil {
		return respondError(ctx, err)
	}

	var req CreateOrderRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	pickup, err := order.NewAddress(req.Pickup.Line1, req.Pickup.City, req.Pickup.ContactPhone)
	if err != nil {
		return respondError(ctx, err)
	}
	delivery, err := order.NewAddress(req.Delivery.Line1, req.Delivery.City, req.Delivery.ContactPhone)
	if err != nil {
		return respondError(ctx, err)
	}
	pkg, err := order.NewPackageDetails(req.Package.Description, req.Package.WeightKG)
	if err != nil {
		return respondError(ctx, err)
	}
	price, err := decimal.NewFromString(req.Price)
	if err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("price", err))
	}

	cmd, err := commands.NewCreateOrderCommand(
		kernel.NewUUID(), actor.ID, pickup, delivery, pkg, price)
	if err != nil {
		return respondError(ctx, err)
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderToResponse(created))
}

// AcceptOrder handles POST /api/v1/orders/:id/accept - a driver takes a
// pending order.
func (s *Server) AcceptOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, order.RoleDriver); err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAcceptOrderCommand(orderID, actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	accepted, err := s.acceptOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, orderToResponse(accepted))
}

// UpdateOrderStatus handles PATCH /api/v1/orders/:id/status - moves an order
// along its lifecycle.
func (s *Server) UpdateOrderStatus(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req UpdateStatusRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	target, err := order.StatusFromString(req.Status)
	if err != nil {
		return respondError(ctx, err)
	}

	return s.transition(ctx, orderID, target, actor)
}

// CancelOrder handles POST /api/v1/orders/:id/cancel. Cancellation is a
// regular lifecycle edge; the dedicated route just spares clients from
// knowing the status vocabulary.
func (s *Server) CancelOrder(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, err)
	}

	return s.transition(ctx, orderID, order.StatusCancelled, actor)
}

func (s *Server) transition(
	ctx echo.Context, orderID kernel.UUID, target order.Status, actor order.Actor,
) error {
	cmd, err := commands.NewTransitionOrderCommand(orderID, target, actor)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	resp := orderToResponse(result.Order)
	if result.CommissionWarning != nil {
		resp.Warning = "commission tracking is delayed; it will be reconciled automatically"
	}

	return ctx.JSON(http.StatusOK, resp)
}

// GetCurrentOrders handles GET /api/v1/orders/current.
func (s *Server) GetCurrentOrders(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetCurrentOrdersQuery(actor)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.currentOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]CurrentOrderResponse, len(rows))
	for i, row := range rows {
		response[i] = currentOrderToResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// SubmitPayment handles POST /api/v1/payments/submit/:orderId - a driver
// attests to having sent the commission transfer.
func (s *Server) SubmitPayment(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, order.RoleDriver); err != nil {
		return respondError(ctx, err)
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req SubmitPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewSubmitPaymentCommand(
		orderID, actor.ID, req.Method, req.Reference, req.Screenshot)
	if err != nil {
		return respondError(ctx, err)
	}

	submitted, err := s.submitPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, paymentToResponse(submitted))
}

// ReviewPayment handles PUT /api/v1/payments/confirm/:paymentId - an admin
// confirms or rejects a submitted payment.
func (s *Server) ReviewPayment(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, order.RoleAdmin); err != nil {
		return respondError(ctx, err)
	}

	paymentID, err := kernel.UUIDFromString(ctx.Param("paymentId"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req ReviewPaymentRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	verdict, err := payment.StatusFromString(req.Verdict)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewReviewPaymentCommand(paymentID, verdict, req.Notes)
	if err != nil {
		return respondError(ctx, err)
	}

	reviewed, err := s.reviewPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, paymentToResponse(reviewed))
}

// DriverConfirmPayment handles PUT /api/v1/payments/driver-confirm/:paymentId.
func (s *Server) DriverConfirmPayment(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, order.RoleDriver); err != nil {
		return respondError(ctx, err)
	}

	paymentID, err := kernel.UUIDFromString(ctx.Param("paymentId"))
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewConfirmPaymentCommand(paymentID, actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	confirmed, err := s.confirmPaymentHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, paymentToResponse(confirmed))
}

// ReportPaymentIssue handles POST /api/v1/payments/driver-report/:paymentId.
func (s *Server) ReportPaymentIssue(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, order.RoleDriver); err != nil {
		return respondError(ctx, err)
	}

	paymentID, err := kernel.UUIDFromString(ctx.Param("paymentId"))
	if err != nil {
		return respondError(ctx, err)
	}

	var req ReportIssueRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	cmd, err := commands.NewReportPaymentIssueCommand(paymentID, actor.ID, req.Details)
	if err != nil {
		return respondError(ctx, err)
	}

	reported, err := s.reportIssueHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, paymentToResponse(reported))
}

// GetDriverPendingPayments handles GET /api/v1/payments/driver-pending.
func (s *Server) GetDriverPendingPayments(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = requireRole(actor, order.RoleDriver); err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetDriverPendingPaymentsQuery(actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.pendingPaymentsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]PendingPaymentResponse, len(rows))
	for i, row := range rows {
		response[i] = pendingPaymentToResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetNotifications handles GET /api/v1/notifications.
func (s *Server) GetNotifications(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	query, err := queries.NewGetUserNotificationsQuery(actor.ID)
	if err != nil {
		return respondError(ctx, err)
	}

	rows, err := s.notificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	response := make([]NotificationResponse, len(rows))
	for i, row := range rows {
		response[i] = notificationToResponse(row)
	}

	return ctx.JSON(http.StatusOK, response)
}

// MarkNotificationsRead handles PUT /api/v1/notifications/read.
func (s *Server) MarkNotificationsRead(ctx echo.Context) error {
	actor, err := actorFromRequest(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req MarkReadRequest
	if err = ctx.Bind(&req); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	ids := make([]kernel.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return respondError(ctx, parseErr)
		}
		ids = append(ids, id)
	}

	cmd, err := commands.NewMarkNotificationsReadCommand(actor.ID, ids)
	if err != nil {
		return respondError(ctx, err)
	}

	if err = s.markNotificationsHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}
