package commands_test

import (
	"testing"

	"shipment/internal/core/application/usecases/commands"
	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/domain/model/payment"
	"shipment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConfirmPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	delivered := newOrderInStatus(clientID, driverID, order.StatusDelivered)
	record := newPendingPayment(t, delivered)

	cmd, err := commands.NewConfirmPaymentCommand(record.ID(), driverID)
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("Get", ctx, record.ID()).Return(record, nil).Once(),
		paymentRepo.On("Update", ctx, mock.MatchedBy(func(p *payment.Payment) bool {
			return p.DriverConfirmed() && p.Status() == payment.StatusPending
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmPaymentCommandHandler(factory)
	confirmed, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, confirmed.DriverConfirmed())

	paymentRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmPaymentCommandHandler_Handle_ForeignDriver(t *testing.T) {
	ctx := t.Context()

	clientID := kernel.NewUUID()
	driverID := kernel.NewUUID()
	delivered := newOrderInStatus(clientID, driverID, order.StatusDelivered)
	record := newPendingPayment(t, delivered)

	cmd, err := commands.NewConfirmPaymentCommand(record.ID(), kernel.NewUUID())
	require.NoError(t, err)

	paymentRepo := new(MockPaymentRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("PaymentRepository").Return(paymentRepo).Once(),
		paymentRepo.On("Get", ctx, record.ID()).Return(record, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPaymentUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewConfirmPaymentCommandHandler(factory)
	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
