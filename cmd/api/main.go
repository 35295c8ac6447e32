package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/mateusmacedo/train-booking/internal/auth"
	"github.com/mateusmacedo/train-booking/internal/auth/session"
	"github.com/mateusmacedo/train-booking/internal/booking"
	bookingApp "github.com/mateusmacedo/train-booking/internal/booking/application"
	bookingDomain "github.com/mateusmacedo/train-booking/internal/booking/domain"
	bookingInfra "github.com/mateusmacedo/train-booking/internal/booking/infrastructure"
	"github.com/mateusmacedo/train-booking/internal/config"
	"github.com/mateusmacedo/train-booking/internal/route"
	routeDomain "github.com/mateusmacedo/train-booking/internal/route/domain"
	routeInfra "github.com/mateusmacedo/train-booking/internal/route/infrastructure"
	"github.com/mateusmacedo/train-booking/internal/train"
	trainDomain "github.com/mateusmacedo/train-booking/internal/train/domain"
	trainInfra "github.com/mateusmacedo/train-booking/internal/train/infrastructure"
	"github.com/mateusmacedo/train-booking/internal/user"
	userDomain "github.com/mateusmacedo/train-booking/internal/user/domain"
	userInfra "github.com/mateusmacedo/train-booking/internal/user/infrastructure"
	pkgApp "github.com/mateusmacedo/train-booking/pkg/application"
	pkgDomain "github.com/mateusmacedo/train-booking/pkg/domain"
	pkgInfra "github.com/mateusmacedo/train-booking/pkg/infrastructure"
	channelsAdapter "github.com/mateusmacedo/train-booking/pkg/infrastructure/channels/adapter"
	"github.com/mateusmacedo/train-booking/pkg/infrastructure/database"
	"github.com/mateusmacedo/train-booking/pkg/infrastructure/httpx"
	redisAdapter "github.com/mateusmacedo/train-booking/pkg/infrastructure/redis/adapter"
	watermillAdapter "github.com/mateusmacedo/train-booking/pkg/infrastructure/watermill/adapter"
	"github.com/mateusmacedo/train-booking/pkg/infrastructure/watermill/publisher"
	zapAdapter "github.com/mateusmacedo/train-booking/pkg/infrastructure/zaplogger/adapter"
)

const brokerInProcess = "inprocess"

type repositories struct {
	routes   routeDomain.RouteRepository
	trains   trainDomain.TrainRepository
	users    userDomain.UserRepository
	bookings bookingDomain.BookingRepository
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	appLogger, err := zapAdapter.NewZapAppLogger(cfg.AppName, cfg.LogLevel)
	if err != nil {
		panic(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		pkgApp.LogError(context.Background(), appLogger, "server stopped with error", err, nil)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, appLogger pkgApp.AppLogger) error {
	repos, err := buildRepositories(cfg, appLogger)
	if err != nil {
		return err
	}

	var redisClient redis.UniversalClient
	if cfg.RedisAddr != "" {
		redisClient, err = redisAdapter.NewRedisClient(ctx, redisAdapter.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	eventBus, closeEvents, err := buildEventBus(cfg, redisClient, appLogger)
	if err != nil {
		return err
	}
	defer closeEvents()

	var sessionStore session.Store = session.NewInMemoryStore(cfg.SessionTTL, pkgInfra.GenerateUUID)
	if redisClient != nil {
		sessionStore = session.NewRedisStore(redisClient, cfg.SessionTTL, pkgInfra.GenerateUUID)
	}
	sessions := session.NewManager(sessionStore, session.CookieConfig{
		Name:   session.DefaultCookieName,
		Secure: cfg.SessionCookieSecure,
		TTL:    cfg.SessionTTL,
	}, appLogger)

	userSlice := user.NewUserSlice(repos.users, sessions, pkgInfra.GenerateUUID, appLogger)
	authSlice := auth.NewAuthSlice(userSlice.Service, sessions, appLogger)
	routeSlice := route.NewRouteSlice(repos.routes, pkgInfra.GenerateUUID, appLogger)
	trainSlice := train.NewTrainSlice(repos.trains, pkgInfra.GenerateUUID, appLogger)
	bookingSlice := booking.NewBookingSlice(repos.bookings, repos.trains, eventBus, pkgInfra.GenerateUUID, appLogger)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(httpx.RequestLogger(appLogger))
	router.Use(middleware.Recoverer)

	userSlice.RegisterRoutes(router)
	authSlice.RegisterRoutes(router)
	routeSlice.RegisterRoutes(router)
	trainSlice.RegisterRoutes(router)
	bookingSlice.RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		pkgApp.LogInfo(ctx, appLogger, "server starting", map[string]interface{}{"addr": cfg.HTTPAddr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	pkgApp.LogInfo(context.Background(), appLogger, "shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	pkgApp.LogInfo(context.Background(), appLogger, "server stopped", nil)
	return nil
}

func buildRepositories(cfg config.Config, appLogger pkgApp.AppLogger) (repositories, error) {
	if cfg.DatabaseDSN == "" {
		pkgApp.LogInfo(context.Background(), appLogger, "using in-memory repositories", nil)
		return repositories{
			routes:   routeInfra.NewInMemoryRouteRepository(appLogger),
			trains:   trainInfra.NewInMemoryTrainRepository(appLogger),
			users:    userInfra.NewInMemoryUserRepository(appLogger),
			bookings: bookingInfra.NewInMemoryBookingRepository(appLogger),
		}, nil
	}

	db, err := database.OpenPostgres(cfg.DatabaseDSN, appLogger)
	if err != nil {
		return repositories{}, err
	}
	if cfg.AutoMigrate {
		if err := migrate(db); err != nil {
			pkgApp.LogError(context.Background(), appLogger, "auto migration failed", err, nil)
			return repositories{}, err
		}
	}

	return repositories{
		routes:   routeInfra.NewGormRouteRepository(db, appLogger),
		trains:   trainInfra.NewGormTrainRepository(db, appLogger),
		users:    userInfra.NewGormUserRepository(db, appLogger),
		bookings: bookingInfra.NewGormBookingRepository(db, appLogger),
	}, nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&routeDomain.Route{},
		&trainDomain.Train{},
		&trainDomain.Availability{},
		&userDomain.User{},
		&bookingDomain.Booking{},
	)
}

// buildEventBus returns the booking event bus and a func releasing its publisher.
func buildEventBus(cfg config.Config, redisClient redis.UniversalClient, appLogger pkgApp.AppLogger) (bookingApp.BookingEventBus, func(), error) {
	if cfg.EventBroker == brokerInProcess {
		bus := pkgInfra.NewSimpleEventBus[pkgDomain.Event[bookingApp.BookingEventData], bookingApp.BookingEventData](appLogger)
		return bus, func() {}, nil
	}

	pub, err := publisher.New(publisher.Config{
		Broker:       cfg.EventBroker,
		ClientID:     cfg.AppName,
		KafkaBrokers: cfg.KafkaBrokers,
		RedisClient:  redisClient,
	}, watermillAdapter.NewWatermillLoggerAdapter(appLogger))
	if err != nil {
		return nil, nil, err
	}

	closePublisher := func() {
		if err := pub.Close(); err != nil {
			pkgApp.LogError(context.Background(), appLogger, "failed to close event publisher", err, nil)
		}
	}
	return channelsAdapter.NewWatermillEventBus[pkgDomain.Event[bookingApp.BookingEventData], bookingApp.BookingEventData](pub, appLogger), closePublisher, nil
}
