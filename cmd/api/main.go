package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	httptransport "github.com/spec-kit/order-service/internal/api/http"
	"github.com/spec-kit/order-service/internal/api/http/handlers"
	"github.com/spec-kit/order-service/internal/auth"
	"github.com/spec-kit/order-service/internal/config"
	"github.com/spec-kit/order-service/internal/events"
	"github.com/spec-kit/order-service/internal/observability"
	"github.com/spec-kit/order-service/internal/persistence"
	"github.com/spec-kit/order-service/internal/repository"
	"github.com/spec-kit/order-service/internal/repository/memory"
	"github.com/spec-kit/order-service/internal/service"
	"github.com/spec-kit/order-service/internal/worker"
)

type repositories struct {
	users    repository.UserRepository
	products repository.ProductRepository
	orders   repository.OrderRepository
	store    handlers.Pinger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	repos := buildRepositories(cfg.Postgres, pg)
	dependencies := map[string]handlers.Pinger{"store": repos.store}

	var revocations auth.RevocationStore
	if redis.Enabled() {
		revocations = auth.NewRedisRevocationStore(redis.Client)
		dependencies["redis"] = redis
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification), logger)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		UserRepo:    repos.users,
		Revocations: revocations,
	})
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:   repos.orders,
		ProductRepo: repos.products,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})
	productService := service.NewProductService(repos.products)

	app := httptransport.NewApp(cfg.App.Name, logger, cfg.App.RequestTimeout(), httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Auth:           handlers.NewAuthHandler(authService),
		Orders:         handlers.NewOrdersHandler(orderService),
		Products:       handlers.NewProductsHandler(productService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), repos.users, revocations),
		Metrics:        observability.NewMetrics("orders"),
	})

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
}

func buildRepositories(cfg config.PostgresConfig, pg *persistence.Postgres) repositories {
	if cfg.InMemory() {
		store := memory.NewStore()
		return repositories{
			users:    store.Users(),
			products: store.Products(),
			orders:   store.Orders(),
			store:    store,
		}
	}
	pool := pg.PoolHandle()
	return repositories{
		users:    repository.NewUserRepository(pool),
		products: repository.NewProductRepository(pool),
		orders:   repository.NewOrderRepository(pool),
		store:    pg,
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
