package commands_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"shipment/internal/core/application/usecases/commands"
	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/domain/model/payment"
	"shipment/internal/core/ports"
	"shipment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func driverActor(t *testing.T, driverID kernel.UUID) order.Actor {
	t.Helper()
	actor, err := order.NewActor(driverID, order.RoleDriver)
	require.NoError(t, err)
	return actor
}

func TestTransitionOrderCommandHandler_Handle_DriverPickup(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	accepted := newOrderInStatus(clientID, driverID, order.StatusAccepted)

	cmd, err := commands.NewTransitionOrderCommand(
		accepted.ID(), order.StatusPickedUp, driverActor(t, driverID))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, accepted.ID()).Return(accepted, nil).Once(),
		orderRepo.On("UpdateInStatus", ctx, mock.AnythingOfType("*order.Order"), order.StatusAccepted).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := &RecordingDispatcher{}

	handler := commands.NewTransitionOrderCommandHandler(factory, dispatcher, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, result.CommissionWarning)
	assert.Equal(t, order.StatusPickedUp, result.Order.Status())

	require.Len(t, dispatcher.Events, 1)
	event := dispatcher.Events[0]
	assert.Equal(t, ports.EventOrderStatusChanged, event.Kind)
	assert.Equal(t, order.StatusAccepted, event.PreviousStatus)
	assert.Equal(t, order.StatusPickedUp, event.NewStatus)
	require.NotNil(t, event.DriverID)
	assert.True(t, event.DriverID.IsEqual(driverID))

	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_DeliveryCreatesPayment(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	inTransit := newOrderInStatus(clientID, driverID, order.StatusInTransit)

	cmd, err := commands.NewTransitionOrderCommand(
		inTransit.ID(), order.StatusDelivered, driverActor(t, driverID))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	txUoW := new(MockUoW)

	mock.InOrder(
		txUoW.On("Begin", ctx).Return(nil).Once(),
		txUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, inTransit.ID()).Return(inTransit, nil).Once(),
		orderRepo.On("UpdateInStatus", ctx, mock.AnythingOfType("*order.Order"), order.StatusInTransit).
			Return(nil).Once(),
		txUoW.On("Commit", ctx).Return(nil).Once(),
		txUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	// Second transaction records the commission and re-checks standing.
	ledgerOrderRepo := new(MockOrderRepository)
	paymentRepo := new(MockPaymentRepository)
	userRepo := new(MockUserRepository)
	ledgerUoW := new(MockUoW)

	mock.InOrder(
		ledgerUoW.On("Begin", ctx).Return(nil).Once(),
		ledgerUoW.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("GetByOrder", ctx, inTransit.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderId", inTransit.ID().String())).Once(),
		paymentRepo.On("Add", ctx, mock.MatchedBy(func(p *payment.Payment) bool {
			return p.Order().IsEqual(inTransit.ID()) &&
				p.Driver().IsEqual(driverID) &&
				p.Amount().Equal(decimal.NewFromFloat(5.00)) &&
				p.Status() == payment.StatusPending
		})).Return(nil).Once(),
		ledgerUoW.On("OrderRepository").Return(ledgerOrderRepo).Once(),
		ledgerUoW.On("UserRepository").Return(userRepo).Once(),
		ledgerOrderRepo.On("CountUnpaidDeliveredByDriver", ctx, driverID).Return(1, nil).Once(),
		ledgerUoW.On("Commit", ctx).Return(nil).Once(),
		ledgerUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(txUoW).Once()
	factory.On("Create").Return(ledgerUoW).Once()

	dispatcher := &RecordingDispatcher{}

	handler := commands.NewTransitionOrderCommandHandler(factory, dispatcher, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, result.CommissionWarning)
	assert.Equal(t, order.StatusDelivered, result.Order.Status())
	assert.NotNil(t, result.Order.DeliveredAt())

	require.Len(t, dispatcher.Events, 1)
	assert.Equal(t, ports.EventOrderStatusChanged, dispatcher.Events[0].Kind)

	paymentRepo.AssertExpectations(t)
	userRepo.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
	factory.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_DeliveryDeactivatesDriver(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	inTransit := newOrderInStatus(clientID, driverID, order.StatusInTransit)

	cmd, err := commands.NewTransitionOrderCommand(
		inTransit.ID(), order.StatusDelivered, driverActor(t, driverID))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	txUoW := new(MockUoW)

	mock.InOrder(
		txUoW.On("Begin", ctx).Return(nil).Once(),
		txUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, inTransit.ID()).Return(inTransit, nil).Once(),
		orderRepo.On("UpdateInStatus", ctx, mock.AnythingOfType("*order.Order"), order.StatusInTransit).
			Return(nil).Once(),
		txUoW.On("Commit", ctx).Return(nil).Once(),
		txUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	ledgerOrderRepo := new(MockOrderRepository)
	paymentRepo := new(MockPaymentRepository)
	userRepo := new(MockUserRepository)
	ledgerUoW := new(MockUoW)

	// This delivery is the third unpaid one; the driver crosses the cap.
	mock.InOrder(
		ledgerUoW.On("Begin", ctx).Return(nil).Once(),
		ledgerUoW.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("GetByOrder", ctx, inTransit.ID()).
			Return(nil, errs.NewObjectNotFoundError("orderId", inTransit.ID().String())).Once(),
		paymentRepo.On("Add", ctx, mock.AnythingOfType("*payment.Payment")).Return(nil).Once(),
		ledgerUoW.On("OrderRepository").Return(ledgerOrderRepo).Once(),
		ledgerUoW.On("UserRepository").Return(userRepo).Once(),
		ledgerOrderRepo.On("CountUnpaidDeliveredByDriver", ctx, driverID).Return(3, nil).Once(),
		userRepo.On("IsActive", ctx, driverID).Return(true, nil).Once(),
		userRepo.On("SetActive", ctx, driverID, false).Return(nil).Once(),
		ledgerUoW.On("Commit", ctx).Return(nil).Once(),
		ledgerUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(txUoW).Once()
	factory.On("Create").Return(ledgerUoW).Once()

	dispatcher := &RecordingDispatcher{}

	handler := commands.NewTransitionOrderCommandHandler(factory, dispatcher, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NoError(t, result.CommissionWarning)

	require.Len(t, dispatcher.Events, 2)
	assert.Equal(t, ports.EventDriverDeactivated, dispatcher.Events[0].Kind)
	require.NotNil(t, dispatcher.Events[0].DriverID)
	assert.True(t, dispatcher.Events[0].DriverID.IsEqual(driverID))
	assert.Equal(t, ports.EventOrderStatusChanged, dispatcher.Events[1].Kind)

	userRepo.AssertExpectations(t)
}

func TestTransitionOrderCommandHandler_Handle_CommissionFailureIsWarning(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	inTransit := newOrderInStatus(clientID, driverID, order.StatusInTransit)

	cmd, err := commands.NewTransitionOrderCommand(
		inTransit.ID(), order.StatusDelivered, driverActor(t, driverID))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	txUoW := new(MockUoW)

	mock.InOrder(
		txUoW.On("Begin", ctx).Return(nil).Once(),
		txUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, inTransit.ID()).Return(inTransit, nil).Once(),
		orderRepo.On("UpdateInStatus", ctx, mock.AnythingOfType("*order.Order"), order.StatusInTransit).
			Return(nil).Once(),
		txUoW.On("Commit", ctx).Return(nil).Once(),
		txUoW.On("Rollback", ctx).Return(nil).Once(),
	)

	ledgerUoW := new(MockUoW)
	ledgerUoW.On("Begin", ctx).Return(errors.New("connection lost")).Once()

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(txUoW).Once()
	factory.On("Create").Return(ledgerUoW).Once()

	dispatcher := &RecordingDispatcher{}

	handler := commands.NewTransitionOrderCommandHandler(factory, dispatcher, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	// Delivery already committed; commission tracking failure must not
	// fail the transition.
	require.NoError(t, err)
	require.Error(t, result.CommissionWarning)
	require.EqualError(t, result.CommissionWarning, "connection lost")
	assert.Equal(t, order.StatusDelivered, result.Order.Status())

	require.Len(t, dispatcher.Events, 1)
	assert.Equal(t, ports.EventOrderStatusChanged, dispatcher.Events[0].Kind)
}

func TestTransitionOrderCommandHandler_Handle_CancelDetachesDriver(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	accepted := newOrderInStatus(clientID, driverID, order.StatusAccepted)

	actor, err := order.NewActor(clientID, order.RoleClient)
	require.NoError(t, err)

	cmd, err := commands.NewTransitionOrderCommand(accepted.ID(), order.StatusCancelled, actor)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, accepted.ID()).Return(accepted, nil).Once(),
		orderRepo.On("UpdateInStatus", ctx, mock.AnythingOfType("*order.Order"), order.StatusAccepted).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := &RecordingDispatcher{}

	handler := commands.NewTransitionOrderCommandHandler(factory, dispatcher, discardLogger())
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.StatusCancelled, result.Order.Status())
	assert.Nil(t, result.Order.Driver())

	// The detached driver still gets notified about the cancellation.
	require.Len(t, dispatcher.Events, 1)
	event := dispatcher.Events[0]
	require.NotNil(t, event.DriverID)
	assert.True(t, event.DriverID.IsEqual(driverID))
	assert.Equal(t, order.StatusCancelled, event.NewStatus)
}

func TestTransitionOrderCommandHandler_Handle_IllegalEdge(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	pending := newPendingOrder(clientID)

	admin, err := order.NewActor(kernel.NewUUID(), order.RoleAdmin)
	require.NoError(t, err)

	cmd, err := commands.NewTransitionOrderCommand(pending.ID(), order.StatusDelivered, admin)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	dispatcher := &RecordingDispatcher{}

	handler := commands.NewTransitionOrderCommandHandler(factory, dispatcher, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Empty(t, dispatcher.Events)
	orderRepo.AssertNotCalled(t, "UpdateInStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransitionOrderCommandHandler_Handle_ForeignClient(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	pending := newPendingOrder(clientID)

	stranger, err := order.NewActor(kernel.NewUUID(), order.RoleClient)
	require.NoError(t, err)

	cmd, err := commands.NewTransitionOrderCommand(pending.ID(), order.StatusCancelled, stranger)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockLedgerUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewTransitionOrderCommandHandler(factory, &RecordingDispatcher{}, discardLogger())
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
}
