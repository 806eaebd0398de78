package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	postgres_adapter "parceltrack/internal/adapters/out/postgres"
	"parceltrack/internal/adapters/out/postgres/accountrepo"
	"parceltrack/internal/adapters/out/postgres/parcelrepo"
	"parceltrack/internal/core/domain/model/account"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/parcel"
	"parceltrack/internal/core/ports"
	"parceltrack/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite provides comprehensive integration testing
// for the GORM-based Unit of Work implementation with real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
// Runs database migrations to prepare schema for unit of work operations.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	// Connect to database
	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	// Run migrations
	err = db.AutoMigrate(
		&accountrepo.AccountDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.ParcelAgentDTO{},
		&parcelrepo.StatusLogDTO{},
	)
	suite.Require().NoError(err)

	// Create factory
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest ensures clean database state before each test.
// Truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE parcels, parcel_agents, parcel_status_log, accounts").Error
	suite.Require().NoError(err)
}

// TearDownSuite cleans up PostgreSQL container after all tests complete.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

// TestUnitOfWorkFactory_Create verifies factory creates unit of work instances
// with proper initialization and isolation between instances.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	// Create multiple unit of work instances
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	// Verify instances are different
	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	// Verify both instances provide access to repositories
	suite.NotNil(uow1.ParcelRepository(), "First instance should provide parcel repository")
	suite.NotNil(uow1.AccountRepository(), "First instance should provide account repository")
	suite.NotNil(uow2.ParcelRepository(), "Second instance should provide parcel repository")
	suite.NotNil(uow2.AccountRepository(), "Second instance should provide account repository")
}

// TestUnitOfWork_TransactionLifecycle verifies proper transaction management
// including begin, commit, and rollback operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Test begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	// Test multiple begin calls are safe
	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	// Test commit
	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	// Test rollback on new transaction
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

// TestUnitOfWork_TransactionErrors verifies error handling for invalid transaction operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	// Test commit without begin
	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	// Test rollback without begin
	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_SingleRepositoryTransaction verifies repository operations
// within a single transaction boundary work correctly.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SingleRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	sender := createTestAccount(account.RoleSender)
	recipient := createTestAccount(account.RoleReceiver)
	testParcel := createTestParcel(suite.T(), sender, recipient)

	// Begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Add parcel within transaction
	err = uow.ParcelRepository().Add(ctx, testParcel)
	suite.Require().NoError(err)

	// Verify parcel exists within transaction
	retrieved, err := uow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	suite.True(testParcel.ID().IsEqual(retrieved.ID()))

	// Commit transaction
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify parcel persists after commit using new unit of work
	newUow := suite.factory.Create()
	retrieved, err = newUow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	suite.True(testParcel.ID().IsEqual(retrieved.ID()))
	suite.Equal(testParcel.TrackingID(), retrieved.TrackingID())
}

// TestUnitOfWork_MultiRepositoryTransaction verifies multiple repository operations
// within a single transaction work atomically.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_MultiRepositoryTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	sender := createTestAccount(account.RoleSender)
	recipient := createTestAccount(account.RoleReceiver)
	testParcel := createTestParcel(suite.T(), sender, recipient)

	// Begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Add entities using different repositories within same transaction
	err = uow.AccountRepository().Add(ctx, sender)
	suite.Require().NoError(err)

	err = uow.AccountRepository().Add(ctx, recipient)
	suite.Require().NoError(err)

	err = uow.ParcelRepository().Add(ctx, testParcel)
	suite.Require().NoError(err)

	// Commit transaction
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Verify all entities persisted correctly
	newUow := suite.factory.Create()

	retrievedSender, err := newUow.AccountRepository().Get(ctx, sender.ID())
	suite.Require().NoError(err)
	suite.Equal(sender.Email(), retrievedSender.Email())

	retrievedParcel, err := newUow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	suite.True(sender.ID().IsEqual(retrievedParcel.SenderID()))
	suite.True(recipient.ID().IsEqual(retrievedParcel.RecipientID()))
}

// TestUnitOfWork_TransactionRollback verifies rollback discards all changes
// made within the transaction across multiple repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	sender := createTestAccount(account.RoleSender)
	recipient := createTestAccount(account.RoleReceiver)
	testParcel := createTestParcel(suite.T(), sender, recipient)

	// Begin transaction
	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Add entities within transaction
	err = uow.AccountRepository().Add(ctx, sender)
	suite.Require().NoError(err)

	err = uow.ParcelRepository().Add(ctx, testParcel)
	suite.Require().NoError(err)

	// Verify entities exist within transaction
	_, err = uow.AccountRepository().Get(ctx, sender.ID())
	suite.Require().NoError(err)

	_, err = uow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)

	// Rollback transaction
	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	// Verify entities do not exist after rollback using new unit of work
	newUow := suite.factory.Create()

	_, err = newUow.AccountRepository().Get(ctx, sender.ID())
	suite.Require().Error(err, "Account should not exist after rollback")

	_, err = newUow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().Error(err, "Parcel should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that repositories obtained
// from different unit of work instances operate independently.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	// Create two unit of work instances
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	sender := createTestAccount(account.RoleSender)
	recipient := createTestAccount(account.RoleReceiver)
	parcel1 := createTestParcel(suite.T(), sender, recipient)
	parcel2 := createTestParcel(suite.T(), sender, recipient)

	// Begin transactions on both
	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	// Add different parcels in each transaction
	err = uow1.ParcelRepository().Add(ctx, parcel1)
	suite.Require().NoError(err)

	err = uow2.ParcelRepository().Add(ctx, parcel2)
	suite.Require().NoError(err)

	// Each transaction should only see its own changes
	_, err = uow1.ParcelRepository().Get(ctx, parcel1.ID())
	suite.Require().NoError(err, "UOW1 should see parcel1")

	_, err = uow1.ParcelRepository().Get(ctx, parcel2.ID())
	suite.Require().Error(err, "UOW1 should not see parcel2")

	_, err = uow2.ParcelRepository().Get(ctx, parcel2.ID())
	suite.Require().NoError(err, "UOW2 should see parcel2")

	_, err = uow2.ParcelRepository().Get(ctx, parcel1.ID())
	suite.Require().Error(err, "UOW2 should not see parcel1")

	// Commit first transaction
	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	// Rollback second transaction
	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	// Verify only parcel1 persisted
	newUow := suite.factory.Create()
	_, err = newUow.ParcelRepository().Get(ctx, parcel1.ID())
	suite.Require().NoError(err, "Parcel1 should persist after commit")

	_, err = newUow.ParcelRepository().Get(ctx, parcel2.ID())
	suite.Require().Error(err, "Parcel2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies that repositories work correctly
// without explicit transaction boundaries for immediate operations.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	sender := createTestAccount(account.RoleSender)
	recipient := createTestAccount(account.RoleReceiver)
	testParcel := createTestParcel(suite.T(), sender, recipient)

	// Add parcel without beginning transaction (should auto-commit)
	err := uow.ParcelRepository().Add(ctx, testParcel)
	suite.Require().NoError(err)

	// Verify parcel persists immediately
	retrieved, err := uow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	suite.True(testParcel.ID().IsEqual(retrieved.ID()))

	// Verify with new unit of work instance
	newUow := suite.factory.Create()
	retrieved, err = newUow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	suite.True(testParcel.ID().IsEqual(retrieved.ID()))
}

// TestUnitOfWork_StatusProgressionWorkflow walks a parcel through the delivery
// workflow across several transactions and verifies the persisted audit log
// reflects every hop in order.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StatusProgressionWorkflow() {
	ctx := context.Background()

	sender := createTestAccount(account.RoleSender)
	recipient := createTestAccount(account.RoleReceiver)
	admin := createTestAccount(account.RoleAdmin)
	testParcel := createTestParcel(suite.T(), sender, recipient)

	// Book the parcel
	uow := suite.factory.Create()
	err := uow.Begin(ctx)
	suite.Require().NoError(err)
	err = uow.ParcelRepository().Add(ctx, testParcel)
	suite.Require().NoError(err)
	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	// Advance one status per transaction, reloading each time
	steps := []parcel.Status{
		parcel.StatusApproved,
		parcel.StatusPicked,
		parcel.StatusDispatched,
		parcel.StatusInTransit,
		parcel.StatusOutForDelivery,
		parcel.StatusDelivered,
	}
	for _, step := range steps {
		uow = suite.factory.Create()
		err = uow.Begin(ctx)
		suite.Require().NoError(err)

		current, getErr := uow.ParcelRepository().Get(ctx, testParcel.ID())
		suite.Require().NoError(getErr)

		err = current.ChangeStatus(step, admin.ID(), nil, "", time.Now())
		suite.Require().NoError(err)

		err = uow.ParcelRepository().Update(ctx, current)
		suite.Require().NoError(err)

		err = uow.Commit(ctx)
		suite.Require().NoError(err)
	}

	// Verify the final state and audit log
	newUow := suite.factory.Create()
	final, err := newUow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)

	suite.Equal(parcel.StatusDelivered, final.Status())
	suite.NotNil(final.DeliveredAt())
	suite.Equal(int64(7), final.Version(), "Six updates should advance version from 1 to 7")

	log := final.StatusLog()
	suite.Require().Len(log, len(steps)+1, "Booking entry plus one entry per hop")
	suite.Equal(parcel.StatusRequested, log[0].Status())
	for i, step := range steps {
		suite.Equal(step, log[i+1].Status())
		suite.True(admin.ID().IsEqual(log[i+1].ActorID()))
	}
}

// TestUnitOfWork_StaleVersionConflict verifies that a write based on a stale
// read loses against a concurrent committed update.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_StaleVersionConflict() {
	ctx := context.Background()

	sender := createTestAccount(account.RoleSender)
	recipient := createTestAccount(account.RoleReceiver)
	admin := createTestAccount(account.RoleAdmin)
	testParcel := createTestParcel(suite.T(), sender, recipient)

	setupUow := suite.factory.Create()
	err := setupUow.ParcelRepository().Add(ctx, testParcel)
	suite.Require().NoError(err)

	// Two actors load the same stored version
	firstUow := suite.factory.Create()
	firstCopy, err := firstUow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)

	secondUow := suite.factory.Create()
	secondCopy, err := secondUow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)

	// First write wins
	err = firstCopy.ChangeStatus(parcel.StatusApproved, admin.ID(), nil, "", time.Now())
	suite.Require().NoError(err)
	err = firstUow.ParcelRepository().Update(ctx, firstCopy)
	suite.Require().NoError(err)

	// Second write is rejected with a version conflict
	err = secondCopy.ChangeStatus(parcel.StatusCancelled, admin.ID(), nil, "", time.Now())
	suite.Require().NoError(err)
	err = secondUow.ParcelRepository().Update(ctx, secondCopy)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	// Stored state reflects only the first write
	finalUow := suite.factory.Create()
	final, err := finalUow.ParcelRepository().Get(ctx, testParcel.ID())
	suite.Require().NoError(err)
	suite.Equal(parcel.StatusApproved, final.Status())
	suite.Nil(final.CancelledAt())
}

// createTestAccount creates a valid account of the given role for testing purposes.
func createTestAccount(role account.Role) *account.Account {
	id := kernel.NewUUID()
	email := fmt.Sprintf("%s@example.com", id.String())
	acc, _ := account.NewAccount(id, "Test Account", email, role)
	return acc
}

// createTestParcel creates a valid parcel booked by sender for recipient.
func createTestParcel(t *testing.T, sender, recipient *account.Account) *parcel.Parcel {
	t.Helper()

	pickup, err := kernel.NewAddress("House 12, Road 3", "Dhaka", "", "1207", "Bangladesh")
	if err != nil {
		t.Fatal(err)
	}
	delivery, err := kernel.NewAddress("Station Road 45", "Chattogram", "", "4000", "Bangladesh")
	if err != nil {
		t.Fatal(err)
	}

	now := time.Now()
	p, err := parcel.NewParcel(
		kernel.NewUUID(),
		kernel.NewTrackingID(now),
		sender.ID(),
		recipient.ID(),
		pickup,
		delivery,
		2.5,
		parcel.ShippingStandard,
		150,
		now,
	)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
