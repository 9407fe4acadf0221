package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	httpin "handoff/internal/adapters/in/http"
	kafkain "handoff/internal/adapters/in/kafka"
	"handoff/internal/adapters/out/carrier"
	kafkaout "handoff/internal/adapters/out/kafka"
	"handoff/internal/adapters/out/postgres"
	"handoff/internal/adapters/out/redislock"
	"handoff/internal/core/application/usecases/commands"
	"handoff/internal/core/application/usecases/queries"
	"handoff/internal/core/domain/services"
	"handoff/internal/core/ports"
	"handoff/internal/jobs"
	"handoff/internal/pkg/keylock"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	locker     ports.RecordLocker
	carriers   *carrier.Registry
	producer   *kafkaout.Producer
	publisher  *kafkaout.ShipmentEventPublisher
	engine     services.GeoProximityEngine
	logger     *slog.Logger

	closers []func() error
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	engine, err := services.NewGeoProximityEngine(configs.MaxLocationAccuracyMeters)
	if err != nil {
		return nil, err
	}
	if err = configs.Policy.Validate(); err != nil {
		return nil, err
	}

	carriersConfig := carrier.DefaultConfig()
	if configs.CarriersConfig != "" {
		if carriersConfig, err = carrier.LoadConfig(configs.CarriersConfig); err != nil {
			return nil, err
		}
	}
	carriers, err := carrier.Build(carriersConfig)
	if err != nil {
		return nil, err
	}

	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		carriers:   carriers,
		engine:     engine,
		logger:     logger,
	}

	if c.locker, err = c.newRecordLocker(); err != nil {
		return nil, err
	}

	c.producer = kafkaout.NewProducer(configs.KafkaBrokers)
	c.closers = append(c.closers, c.producer.Close)
	c.publisher = kafkaout.NewShipmentEventPublisher(c.producer, configs.KafkaShipmentStatusTopic)

	logger.Info("Composition root ready",
		"carriers", carriers.Codes(), "redis_locks", configs.RedisAddr != "")
	return c, nil
}

func (c *CompositionRoot) newRecordLocker() (ports.RecordLocker, error) {
	if c.configs.RedisAddr == "" {
		return keylock.New(c.configs.RecordLockWait), nil
	}

	locker := redislock.New(c.configs.RedisAddr, c.configs.RecordLockTTL, c.configs.RecordLockWait)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := locker.Ping(ctx); err != nil {
		_ = locker.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", c.configs.RedisAddr, err)
	}
	c.closers = append(c.closers, locker.Close)
	return locker, nil
}

// Close releases the broker and lock connections.
func (c *CompositionRoot) Close() error {
	var err error
	for i := len(c.closers) - 1; i >= 0; i-- {
		err = errors.Join(err, c.closers[i]())
	}
	return err
}

func (c *CompositionRoot) newUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) newRecipientUoWFactory() commands.RecipientUoWFactory {
	return FuncRecipientUoWFactory(func() commands.RecipientUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) newShipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) newReaderFactory() queries.ReaderFactory {
	return FuncReaderFactory(func() queries.Reader {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) newOutcomeNotifier() commands.OutcomeNotifier {
	return commands.NewOutcomeNotifier(c.publisher, c.carriers, c.logger)
}

func (c *CompositionRoot) CreateSubmitAttestationCommandHandler() commands.SubmitAttestationCommandHandler {
	return commands.NewSubmitAttestationCommandHandler(
		c.newUoWFactory(), c.locker, c.newOutcomeNotifier(), c.engine, c.configs.Policy)
}

func (c *CompositionRoot) CreateMarkUnavailableCommandHandler() commands.MarkUnavailableCommandHandler {
	return commands.NewMarkUnavailableCommandHandler(
		c.newUoWFactory(), c.locker, c.newOutcomeNotifier(), c.engine, c.configs.Policy)
}

func (c *CompositionRoot) CreateConfirmAsAlternateCommandHandler() commands.ConfirmAsAlternateCommandHandler {
	return commands.NewConfirmAsAlternateCommandHandler(
		c.newUoWFactory(), c.locker, c.newOutcomeNotifier(), c.engine, c.configs.Policy)
}

func (c *CompositionRoot) CreateShareLinksCommandHandler() commands.ShareLinksCommandHandler {
	return commands.NewShareLinksCommandHandler(c.newRecipientUoWFactory(), c.configs.PublicBaseURL)
}

func (c *CompositionRoot) CreateRevokeShareLinkCommandHandler() commands.RevokeShareLinkCommandHandler {
	return commands.NewRevokeShareLinkCommandHandler(c.newRecipientUoWFactory())
}

func (c *CompositionRoot) CreateExpireShareLinksCommandHandler() commands.ExpireShareLinksCommandHandler {
	return commands.NewExpireShareLinksCommandHandler(c.newRecipientUoWFactory())
}

func (c *CompositionRoot) CreateRecordAgeVerificationCommandHandler() commands.RecordAgeVerificationCommandHandler {
	return commands.NewRecordAgeVerificationCommandHandler(c.newUoWFactory(), c.locker)
}

func (c *CompositionRoot) CreateRegisterShipmentLegCommandHandler() commands.RegisterShipmentLegCommandHandler {
	return commands.NewRegisterShipmentLegCommandHandler(
		c.newShipmentUoWFactory(), c.carriers, c.configs.DefaultProximityRadiusMeters)
}

func (c *CompositionRoot) CreateCarrierWebhookCommandHandler() commands.CarrierWebhookCommandHandler {
	return commands.NewCarrierWebhookCommandHandler(c.carriers, c.logger)
}

func (c *CompositionRoot) CreateRescheduleConfirmationsCommandHandler() commands.RescheduleConfirmationsCommandHandler {
	return commands.NewRescheduleConfirmationsCommandHandler(c.newUoWFactory(), c.locker, c.configs.Policy, c.logger)
}

func (c *CompositionRoot) CreateAutoReturnConfirmationsCommandHandler() commands.AutoReturnConfirmationsCommandHandler {
	return commands.NewAutoReturnConfirmationsCommandHandler(
		c.newUoWFactory(), c.locker, c.newOutcomeNotifier(), c.configs.Policy, c.logger)
}

func (c *CompositionRoot) CreateGetConfirmationStatusQueryHandler() queries.GetConfirmationStatusQueryHandler {
	return queries.NewGetConfirmationStatusQueryHandler(c.newReaderFactory(), c.configs.Policy)
}

func (c *CompositionRoot) CreateResolveShareLinkQueryHandler() queries.ResolveShareLinkQueryHandler {
	return queries.NewResolveShareLinkQueryHandler(c.newReaderFactory(), c.configs.Policy)
}

func (c *CompositionRoot) CreateGetShareLinksQueryHandler() queries.GetShareLinksQueryHandler {
	return queries.NewGetShareLinksQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTrackingQueryHandler() queries.GetTrackingQueryHandler {
	return queries.NewGetTrackingQueryHandler(c.newReaderFactory(), c.carriers)
}

func (c *CompositionRoot) CreateIdentityResolver() ports.IdentityResolver {
	return httpin.NewJWTIdentityResolver(c.configs.JWTSecret)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	submit := c.CreateSubmitAttestationCommandHandler()
	unavailable := c.CreateMarkUnavailableCommandHandler()
	alternate := c.CreateConfirmAsAlternateCommandHandler()
	share := c.CreateShareLinksCommandHandler()
	revoke := c.CreateRevokeShareLinkCommandHandler()
	ageVerification := c.CreateRecordAgeVerificationCommandHandler()
	webhook := c.CreateCarrierWebhookCommandHandler()

	return httpin.NewServer(httpin.Handlers{
		SubmitAttestation:     &submit,
		MarkUnavailable:       &unavailable,
		ConfirmAsAlternate:    &alternate,
		ShareLinks:            &share,
		RevokeShareLink:       &revoke,
		RecordAgeVerification: &ageVerification,
		CarrierWebhook:        &webhook,

		GetConfirmationStatus: c.CreateGetConfirmationStatusQueryHandler(),
		ResolveShareLink:      c.CreateResolveShareLinkQueryHandler(),
		GetShareLinks:         c.CreateGetShareLinksQueryHandler(),
		GetTracking:           c.CreateGetTrackingQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	reschedule := c.CreateRescheduleConfirmationsCommandHandler()
	autoReturn := c.CreateAutoReturnConfirmationsCommandHandler()
	expireLinks := c.CreateExpireShareLinksCommandHandler()
	return jobs.NewJobManager(&reschedule, &autoReturn, &expireLinks, c.configs.Schedules, c.logger)
}

func (c *CompositionRoot) CreateDispatchConsumer() *kafkain.DispatchConsumer {
	consumer := kafkaout.NewConsumer(
		c.configs.KafkaBrokers, c.configs.KafkaShipmentDispatchedTopic, c.configs.KafkaConsumerGroup)
	c.closers = append(c.closers, consumer.Close)

	register := c.CreateRegisterShipmentLegCommandHandler()
	return kafkain.NewDispatchConsumer(consumer, &register, c.logger)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncRecipientUoWFactory func() commands.RecipientUoW

func (f FuncRecipientUoWFactory) Create() commands.RecipientUoW {
	return f()
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}

type FuncReaderFactory func() queries.Reader

func (f FuncReaderFactory) Create() queries.Reader {
	return f()
}
