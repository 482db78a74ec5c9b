package cmd

import (
	"log/slog"

	"storefront/internal/adapters/out/carrier"
	"storefront/internal/adapters/out/kafka"
	"storefront/internal/adapters/out/notify"
	"storefront/internal/adapters/out/postgres"
	"storefront/internal/core/application/fulfillment"
	"storefront/internal/core/application/usecases/commands"
	"storefront/internal/core/application/usecases/queries"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	logger     *slog.Logger

	provisioner *fulfillment.ShipmentProvisioner
	notifier    *fulfillment.NotificationFanout
	publisher   ports.OrderEventPublisher
}

func NewCompositionRoot(
	config Config,
	gormDB *gorm.DB,
	rabbit notify.QueuePublisher,
	logger *slog.Logger,
) (CompositionRoot, error) {
	carrierClient := carrier.NewClient(config.CarrierBaseURL, config.CarrierAPIKey)

	provisioner, err := fulfillment.NewShipmentProvisioner(
		carrierClient, config.DefaultCourierID, config.TrackingURLBase, logger)
	if err != nil {
		return CompositionRoot{}, err
	}

	channels := []ports.NotificationChannel{
		notify.NewCustomerEmailChannel(rabbit, config.EmailQueue),
		notify.NewOperatorEmailChannel(rabbit, config.EmailQueue, config.OperatorEmail),
		notify.NewCustomerSMSChannel(rabbit, config.SMSQueue),
	}

	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:      logger,
		provisioner: provisioner,
		notifier:    fulfillment.NewNotificationFanout(channels, logger),
		publisher:   kafka.NewOrderChangedPublisher(config.KafkaHost, config.KafkaOrderChangedTopic),
	}, nil
}

// Close releases outbound connections owned by the composition root.
func (c *CompositionRoot) Close() error {
	if closer, ok := c.publisher.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func (c *CompositionRoot) CreateConfirmPaymentCommandHandler() commands.ConfirmPaymentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewConfirmPaymentCommandHandler(
		f,
		services.NewSignatureVerifier(c.config.PaymentGatewaySecret),
		c.provisioner,
		c.notifier,
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateShipmentCommandHandler(
		f,
		c.provisioner,
		c.notifier,
		c.publisher,
		c.logger,
	)
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	return queries.NewGetTrackingQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUnshippedOrdersQueryHandler() queries.GetUnshippedOrdersQueryHandler {
	return queries.NewGetUnshippedOrdersQueryHandler(c.gormDB)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
