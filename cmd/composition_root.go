package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/notify"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/clock"
	"fulfillment/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	logger     *slog.Logger
	clock      ports.Clock
	window     kernel.CancellationWindow

	registry *prometheus.Registry
	metrics  *metrics.Metrics

	dispatcher *notify.Dispatcher
	kafkaSink  *notify.KafkaSink
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	window, err := kernel.NewCancellationWindow(cfg.CancellationWindow)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	c := &CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
		clock:      clock.System{},
		window:     window,
		registry:   registry,
		metrics:    metrics.New(registry),
	}

	var sink ports.NotificationSink = notify.NewLogSink(logger)
	if brokers := notify.ParseBrokers(cfg.KafkaBrokers); len(brokers) > 0 {
		c.kafkaSink = notify.NewKafkaSink(notify.NewKafkaWriter(brokers, cfg.KafkaNotificationTopic), c.clock)
		sink = c.kafkaSink
	}
	c.dispatcher = notify.NewDispatcher(sink, notify.DispatcherConfig{
		Workers:     cfg.NotifyWorkers,
		QueueSize:   cfg.NotifyQueueSize,
		MaxAttempts: cfg.NotifyMaxAttempts,
	}, logger, c.metrics)

	return c, nil
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) batchOrderUoWFactory() commands.BatchOrderUoWFactory {
	return FuncBatchOrderUoWFactory(func() commands.BatchOrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) notifier() commands.CancellationNotifier {
	return commands.NewCancellationNotifier(c.dispatcher, c.logger)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	return commands.NewCancelOrderCommandHandler(c.orderUoWFactory(), c.window, c.clock, c.notifier())
}

func (c *CompositionRoot) CreateReActivateOrderCommandHandler() commands.ReActivateOrderCommandHandler {
	return commands.NewReActivateOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateReOrderCommandHandler() commands.ReOrderCommandHandler {
	return commands.NewReOrderCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateCancelItemCommandHandler() commands.CancelItemCommandHandler {
	return commands.NewCancelItemCommandHandler(
		c.orderUoWFactory(), services.NewCancellationPolicy(c.window), c.clock, c.notifier(),
	)
}

func (c *CompositionRoot) CreateReturnItemCommandHandler() commands.ReturnItemCommandHandler {
	return commands.NewReturnItemCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateRecomputeShippedStatusCommandHandler() commands.RecomputeShippedStatusCommandHandler {
	return commands.NewRecomputeShippedStatusCommandHandler(c.batchOrderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateToggleProcessedCommandHandler() commands.ToggleProcessedCommandHandler {
	return commands.NewToggleProcessedCommandHandler(c.orderUoWFactory(), services.NewCancellationPolicy(c.window), c.clock)
}

func (c *CompositionRoot) CreateChangeShippedStatusCommandHandler() commands.ChangeShippedStatusCommandHandler {
	return commands.NewChangeShippedStatusCommandHandler(c.orderUoWFactory(), c.clock)
}

func (c *CompositionRoot) CreateSellerCancelOrderDetailCommandHandler() commands.SellerCancelOrderDetailCommandHandler {
	return commands.NewSellerCancelOrderDetailCommandHandler(
		c.orderUoWFactory(), services.NewCancellationPolicy(c.window), c.clock, c.notifier(),
	)
}

func (c *CompositionRoot) CreateDeclineStaleItemsCommandHandler() commands.DeclineStaleItemsCommandHandler {
	return commands.NewDeclineStaleItemsCommandHandler(
		c.batchOrderUoWFactory(), services.NewAutoDeclinePolicy(c.window), c.clock, c.notifier(),
	)
}

func (c *CompositionRoot) CreateGetCustomerOrdersQueryHandler() queries.GetCustomerOrdersQueryHandler {
	return queries.NewGetCustomerOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSellerOrderDetailsQueryHandler() queries.GetSellerOrderDetailsQueryHandler {
	return queries.NewGetSellerOrderDetailsQueryHandler(c.uowFactory.SellerDetailReader())
}

// CreateRouter wires every use case into the HTTP API.
func (c *CompositionRoot) CreateRouter() *echo.Echo {
	cancelOrder := c.CreateCancelOrderCommandHandler()
	reactivate := c.CreateReActivateOrderCommandHandler()
	reorder := c.CreateReOrderCommandHandler()
	cancelItem := c.CreateCancelItemCommandHandler()
	returnItem := c.CreateReturnItemCommandHandler()
	recompute := c.CreateRecomputeShippedStatusCommandHandler()
	toggle := c.CreateToggleProcessedCommandHandler()
	shipped := c.CreateChangeShippedStatusCommandHandler()
	sellerCancel := c.CreateSellerCancelOrderDetailCommandHandler()

	server := httpadapter.NewServer(httpadapter.Handlers{
		CancelOrder:         &cancelOrder,
		ReActivateOrder:     &reactivate,
		ReOrder:             &reorder,
		CancelItem:          &cancelItem,
		ReturnItem:          &returnItem,
		RecomputeShipped:    &recompute,
		ToggleProcessed:     &toggle,
		ChangeShippedStatus: &shipped,
		SellerCancelItem:    &sellerCancel,
		CustomerOrders:      c.CreateGetCustomerOrdersQueryHandler(),
		SellerOrderDetails:  c.CreateGetSellerOrderDetailsQueryHandler(),
	}, c.logger)

	return httpadapter.NewRouter(server, httpadapter.RouterConfig{
		JWTSecret: []byte(c.cfg.JWTSecret),
		Metrics:   c.metrics,
		Gatherer:  c.registry,
		Health:    c.ping,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	decline := c.CreateDeclineStaleItemsCommandHandler()
	return jobs.NewJobManager(
		jobs.NewAutoDeclineJob(&decline, c.cfg.SweepInterval, c.cfg.SweepRetryInterval, c.logger, c.metrics),
	)
}

// StartNotifications launches the notification workers.
func (c *CompositionRoot) StartNotifications() {
	c.dispatcher.Start()
}

// Close drains pending notifications and releases the broker and database connections.
func (c *CompositionRoot) Close(ctx context.Context) error {
	var errList []error
	errList = append(errList, c.dispatcher.Stop(ctx))
	if c.kafkaSink != nil {
		errList = append(errList, c.kafkaSink.Close())
	}
	if sqlDB, err := c.gormDB.DB(); err == nil {
		errList = append(errList, sqlDB.Close())
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) ping(ctx context.Context) error {
	sqlDB, err := c.gormDB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBatchOrderUoWFactory func() commands.BatchOrderUoW

func (f FuncBatchOrderUoWFactory) Create() commands.BatchOrderUoW {
	return f()
}
