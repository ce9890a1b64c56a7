package notificationrepo_test

import (
	"context"
	"testing"
	"time"

	"shipment/internal/adapters/out/postgres/notificationrepo"
	"shipment/internal/core/domain/model/kernel"
	"shipment/internal/core/domain/model/notification"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NotificationRepositoryIntegrationTestSuite verifies the append-only
// notification store against a real database.
type NotificationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *notificationrepo.GormNotificationRepository
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&notificationrepo.NotificationDTO{}))
}

func (suite *NotificationRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE notifications").Error)
	suite.repository = notificationrepo.NewGormNotificationRepository(suite.db)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *NotificationRepositoryIntegrationTestSuite) appendAt(
	userID kernel.UUID, title string, at time.Time,
) *notification.Notification {
	n, err := notification.RestoreNotification(
		kernel.NewUUID(), userID,
		title, "message body", notification.TypeOrderStatusUpdate,
		false,
		notification.Payload{OrderID: kernel.NewUUID().String()},
		at,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Append(context.Background(), n))
	return n
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestAppendAndListByUser_OldestFirst() {
	ctx := context.Background()
	userID := kernel.NewUUID()
	base := time.Now().UTC().Add(-time.Hour)

	// Insert out of chronological order on purpose.
	suite.appendAt(userID, "second", base.Add(2*time.Minute))
	suite.appendAt(userID, "first", base.Add(1*time.Minute))
	suite.appendAt(userID, "third", base.Add(3*time.Minute))
	suite.appendAt(kernel.NewUUID(), "other user", base)

	list, err := suite.repository.ListByUser(ctx, userID)
	suite.Require().NoError(err)

	suite.Require().Len(list, 3)
	suite.Equal("first", list[0].Title())
	suite.Equal("second", list[1].Title())
	suite.Equal("third", list[2].Title())
	suite.False(list[0].Read())
	suite.NotEmpty(list[0].Payload().OrderID)
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestMarkRead_ScopedToOwner() {
	ctx := context.Background()
	owner := kernel.NewUUID()
	stranger := kernel.NewUUID()
	base := time.Now().UTC().Add(-time.Hour)

	mine := suite.appendAt(owner, "mine", base)
	alsoMine := suite.appendAt(owner, "also mine", base.Add(time.Minute))
	theirs := suite.appendAt(stranger, "theirs", base)

	// Owner marks one of their own plus someone else's ID; the stranger's
	// row must stay untouched.
	err := suite.repository.MarkRead(ctx, owner,
		[]kernel.UUID{mine.ID(), theirs.ID()})
	suite.Require().NoError(err)

	ownerList, err := suite.repository.ListByUser(ctx, owner)
	suite.Require().NoError(err)
	suite.Require().Len(ownerList, 2)
	suite.True(ownerList[0].Read())
	suite.False(ownerList[1].Read())
	suite.True(ownerList[1].ID().IsEqual(alsoMine.ID()))

	strangerList, err := suite.repository.ListByUser(ctx, stranger)
	suite.Require().NoError(err)
	suite.Require().Len(strangerList, 1)
	suite.False(strangerList[0].Read())
}

func (suite *NotificationRepositoryIntegrationTestSuite) TestMarkRead_EmptyIDsIsNoOp() {
	err := suite.repository.MarkRead(context.Background(), kernel.NewUUID(), nil)
	suite.Require().NoError(err)
}

func TestNotificationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(NotificationRepositoryIntegrationTestSuite))
}
