package queries_test

import (
	"context"
	"testing"
	"time"

	"storefront/internal/adapters/out/postgres/orderrepo"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"
	"storefront/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's aggregate tracker in query tests.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type QueryHandlersTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository
}

func (suite *QueryHandlersTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.ItemDTO{}))
	suite.repo = orderrepo.NewGormOrderRepository(db, noopTracker{})
}

func (suite *QueryHandlersTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)
}

func (suite *QueryHandlersTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersTestSuite) addOrder(gatewayRef string, status order.Status, shipment *order.ShipmentInfo) *order.Order {
	amounts, err := order.NewAmounts(500, 50)
	suite.Require().NoError(err)
	address, err := order.NewAddress(
		"Jane Doe", "jane@example.com", "+15550100",
		"1 Main St", "Springfield", "IL", "62701",
	)
	suite.Require().NoError(err)
	item, err := order.NewItem("sku-1", "Blue Mug", 250, 2)
	suite.Require().NoError(err)

	now := time.Now().UTC()
	o, err := order.RestoreOrder(
		kernel.NewUUID(), gatewayRef, amounts, address, []order.Item{item},
		status, shipment, now, now,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), o))
	return o
}

func (suite *QueryHandlersTestSuite) TestGetTracking_ShippedOrder() {
	info, err := order.NewShipmentInfo("AWB123", "https://track.example.com/AWB123", "Acme")
	suite.Require().NoError(err)
	o := suite.addOrder("gw_1", order.Shipped, &info)

	handler := queries.NewGetTrackingQueryHandler(suite.db)
	query, err := queries.NewGetTrackingQuery(o.ID())
	suite.Require().NoError(err)

	resp, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.True(resp.ID.IsEqual(o.ID()))
	suite.Equal("shipped", resp.Status)
	suite.Equal("AWB123", resp.TrackingID)
	suite.Equal("https://track.example.com/AWB123", resp.TrackingURL)
	suite.Equal("Acme", resp.CourierName)
}

func (suite *QueryHandlersTestSuite) TestGetTracking_OrderWithoutShipment() {
	o := suite.addOrder("gw_1", order.Paid, nil)

	handler := queries.NewGetTrackingQueryHandler(suite.db)
	query, err := queries.NewGetTrackingQuery(o.ID())
	suite.Require().NoError(err)

	resp, err := handler.Handle(context.Background(), query)
	suite.Require().NoError(err)

	suite.Equal("paid", resp.Status)
	suite.Empty(resp.TrackingID)
	suite.Empty(resp.TrackingURL)
}

func (suite *QueryHandlersTestSuite) TestGetTracking_NotFound() {
	handler := queries.NewGetTrackingQueryHandler(suite.db)
	query, err := queries.NewGetTrackingQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *QueryHandlersTestSuite) TestGetUnshippedOrders() {
	deferred := suite.addOrder("gw_1", order.Paid, nil)
	suite.addOrder("gw_2", order.Pending, nil)

	info, err := order.NewShipmentInfo("AWB123", "https://track.example.com/AWB123", "Acme")
	suite.Require().NoError(err)
	suite.addOrder("gw_3", order.Shipped, &info)

	handler := queries.NewGetUnshippedOrdersQueryHandler(suite.db)

	resp, err := handler.Handle(context.Background(), queries.NewGetUnshippedOrdersQuery())
	suite.Require().NoError(err)

	suite.Require().Len(resp, 1)
	suite.True(resp[0].ID.IsEqual(deferred.ID()))
	suite.Equal("gw_1", resp[0].GatewayOrderRef)
	suite.Equal(550.0, resp[0].Total)
}

func (suite *QueryHandlersTestSuite) TestGetUnshippedOrders_Empty() {
	handler := queries.NewGetUnshippedOrdersQueryHandler(suite.db)

	resp, err := handler.Handle(context.Background(), queries.NewGetUnshippedOrdersQuery())
	suite.Require().NoError(err)

	suite.Empty(resp)
}

func TestQueryHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersTestSuite))
}
