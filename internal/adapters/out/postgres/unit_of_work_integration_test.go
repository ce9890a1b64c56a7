package postgres_test

import (
	"context"
	"testing"
	"time"

	postgresadapter "shipment/internal/adapters/out/postgres"
	"shipment/internal/adapters/out/postgres/notificationrepo"
	"shipment/internal/adapters/out/postgres/orderrepo"
	"shipment/internal/adapters/out/postgres/paymentrepo"
	"shipment/internal/adapters/out/postgres/userrepo"
	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/order"
	"shipment/internal/core/domain/model/payment"
	"shipment/internal/core/ports"
	"shipment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies the GORM-based Unit of Work
// implementation against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&paymentrepo.PaymentDTO{},
		&userrepo.UserDTO{},
		&notificationrepo.NotificationDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgresadapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE orders, payments, users, notifications").Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder() *order.Order {
	pickup, err := order.NewAddress("12 Harbour Road", "Cape Town", "")
	suite.Require().NoError(err)
	delivery, err := order.NewAddress("48 Long Street", "Durban", "")
	suite.Require().NoError(err)
	pkg, err := order.NewPackageDetails("Documents", 1.5)
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), kernel.NewUUID(), pickup, delivery, pkg, decimal.NewFromInt(200))
	suite.Require().NoError(err)
	return o
}

func (suite *UnitOfWorkIntegrationTestSuite) TestFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2)

	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.PaymentRepository())
	suite.NotNil(uow1.UserRepository())
	suite.NotNil(uow1.NotificationRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	// Begin is idempotent while a transaction is active.
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().Error(uow.Commit(ctx))
	suite.Require().Error(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestSingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	o := suite.newOrder()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	// Visible inside the transaction before commit.
	inside, err := uow.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(inside.ID().IsEqual(o.ID()))

	suite.Require().NoError(uow.Commit(ctx))

	after, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(after.ID().IsEqual(o.ID()))
}

// TestLedgerTransactionAtomicity writes an order, its commission payment and
// a driver flag in one transaction, the shape the delivery and review
// handlers rely on.
func (suite *UnitOfWorkIntegrationTestSuite) TestLedgerTransactionAtomicity() {
	ctx := context.Background()
	driverID := kernel.NewUUID()

	o := suite.newOrder()
	suite.Require().NoError(suite.db.Create(&userrepo.UserDTO{
		ID:          driverID.Bytes(),
		Role:        "DRIVER",
		IsActive:    true,
		IsConfirmed: true,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}).Error)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))

	record, err := payment.NewPayment(kernel.NewUUID(), o.ID(), driverID, o.Price())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.PaymentRepository().Add(ctx, record))

	suite.Require().NoError(uow.UserRepository().SetActive(ctx, driverID, false))

	suite.Require().NoError(uow.Commit(ctx))

	fresh := suite.factory.Create()
	persisted, err := fresh.PaymentRepository().GetByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(persisted.Amount().Equal(decimal.NewFromFloat(5.00)))

	active, err := fresh.UserRepository().IsActive(ctx, driverID)
	suite.Require().NoError(err)
	suite.False(active)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()

	o := suite.newOrder()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
