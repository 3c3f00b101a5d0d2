package app

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/ridwan89/swiftbus-booking/internal/booking"
	"github.com/ridwan89/swiftbus-booking/internal/catalog"
	"github.com/ridwan89/swiftbus-booking/internal/config"
	"github.com/ridwan89/swiftbus-booking/internal/events"
	"github.com/ridwan89/swiftbus-booking/internal/manifest"
	internalRedis "github.com/ridwan89/swiftbus-booking/internal/redis"
	"github.com/ridwan89/swiftbus-booking/internal/repository/memory"
	"github.com/ridwan89/swiftbus-booking/internal/service"
	"github.com/ridwan89/swiftbus-booking/internal/tracking"
)

// Services is the wired application core shared by every command.
type Services struct {
	Catalog   *catalog.Catalog
	Publisher events.Publisher
	Booking   *service.BookingService
	Tracking  *service.TrackingService
	Manifest  *service.ManifestService
	Payment   *service.PaymentService
	Receipt   *service.ReceiptService
	Playback  *service.Playback
}

// NewServices wires data sources, stores and services from configuration.
// redisClient may be nil, in which case playback runs without a lock.
func NewServices(cfg *config.Config, redisClient *redis.Client, observer func(*service.TrackingView)) (*Services, error) {
	trips, err := loadCatalog(cfg.Data.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	roster, err := loadRoster(cfg.Data.RosterFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	publisher := newPublisher(cfg.Kafka)

	// Initialize repositories.
	bookingRepo := memory.NewBookingRepository()
	paymentRepo := memory.NewPaymentRepository()

	// Initialize services.
	notificationService := service.NewNotificationService(nil)
	composer := booking.NewComposer(booking.NewClockCodes(time.Now), time.Now)
	bookingService := service.NewBookingService(trips, composer, bookingRepo, publisher, notificationService)

	policy := tracking.Stop
	if cfg.Tracking.Loop {
		policy = tracking.Loop
	}
	trackingService := service.NewTrackingService(bookingRepo, policy, publisher, notificationService)

	var locks internalRedis.LockStoreInterface
	if redisClient != nil {
		locks = internalRedis.NewLockStore(redisClient)
	}
	playback := service.NewPlayback(trackingService, locks, cfg.Tracking.Interval, observer)

	retries := cfg.Payment.MaxRetries
	if retries < 0 {
		retries = 0
	}
	paymentService := service.NewPaymentService(
		paymentRepo,
		bookingRepo,
		service.NewSimulatedPSP(cfg.Payment.Delay),
		service.PaymentConfig{MaxRetries: uint64(retries)},
		publisher,
		notificationService,
	)

	return &Services{
		Catalog:   trips,
		Publisher: publisher,
		Booking:   bookingService,
		Tracking:  trackingService,
		Manifest:  service.NewManifestService(trips, roster, bookingRepo),
		Payment:   paymentService,
		Receipt:   service.NewReceiptService(notificationService),
		Playback:  playback,
	}, nil
}

// Close stops playback and flushes the event publisher.
func (s *Services) Close() {
	s.Playback.Close()
	if err := s.Publisher.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close event publisher")
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}

func loadRoster(path string) (*manifest.Roster, error) {
	if path == "" {
		return manifest.DefaultRoster()
	}
	return manifest.LoadRosterFile(path)
}

func newPublisher(cfg config.KafkaConfig) events.Publisher {
	if cfg.Brokers == "" {
		return events.NewLogPublisher()
	}
	log.Info().Str("brokers", cfg.Brokers).Str("topic", cfg.Topic).Msg("publishing booking events to kafka")
	return events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Brokers, cfg.Topic))
}
