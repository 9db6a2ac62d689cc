package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	httpadapter "skillgraphpoc/src/adapters/http"
	"skillgraphpoc/src/helper/env"
	"skillgraphpoc/src/infra/kafka"
	"skillgraphpoc/src/infra/postgres"
	"skillgraphpoc/src/infra/redis"
	"skillgraphpoc/src/repositories"
	"skillgraphpoc/src/services/accounts"
	"skillgraphpoc/src/services/events"
	"skillgraphpoc/src/services/state"

	"go.uber.org/fx"
)

func main() {
	// Configurar logger
	log.SetOutput(os.Stdout)
	log.Println("Starting API server with Uber Fx...")

	app := fx.New(
		// Providers
		fx.Provide(
			newLogger,
			newReadWriteClient,
			newRedisClient,
			newKafkaClient,
			newEventPublisher,
			newStateQueryRepository,
			newCachedStateRepository,
			newStateWriteRepository,
			newAccountRepository,
			newStateService,
			newAccountService,
			newServer,
		),

		// Invocations
		fx.Invoke(runMigrations),
		fx.Invoke(registerServerHooks),
	)

	// Start the application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	// Wait for app to exit gracefully
	<-app.Done()
}

func newLogger() *slog.Logger {
	logLevel := env.GetString("LOG_LEVEL", "info")
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	logger := slog.New(h)
	slog.SetDefault(logger)
	return logger
}

// newReadWriteClient configura os pools de leitura e escrita do postgres
func newReadWriteClient() (*postgres.ReadWriteClient, error) {
	dbReadHost := env.MustGetString("DB_READ_HOST")
	dbWriteHost := env.MustGetString("DB_WRITE_HOST")
	dbReadPort := env.GetString("DB_READ_PORT", "5432")
	dbWritePort := env.GetString("DB_WRITE_PORT", "5432")
	dbname := env.MustGetString("DB_NAME")
	dbUser := env.MustGetString("DB_USER")
	dbPassword := env.MustGetString("DB_PASSWORD")
	maxConnections := env.GetInt("DB_MAX_POOL_CONNECTIONS", 25)

	return postgres.NewReadWriteClient(dbReadHost, dbWriteHost, dbReadPort, dbWritePort, dbname, dbUser, dbPassword, maxConnections)
}

// runMigrations aplica as migrations no boot quando habilitado
func runMigrations() error {
	if !env.GetBool("DB_RUN_MIGRATIONS", false) {
		return nil
	}

	return postgres.RunMigrations(
		env.MustGetString("DB_WRITE_HOST"),
		env.GetString("DB_WRITE_PORT", "5432"),
		env.MustGetString("DB_NAME"),
		env.MustGetString("DB_USER"),
		env.MustGetString("DB_PASSWORD"),
		env.GetString("DB_MIGRATIONS_PATH", "migrations"),
	)
}

func newRedisClient() *redis.RedisClient {
	redisAddrs := env.MustGetString("REDIS_HOSTS")
	redisPoolSize := env.GetInt("REDIS_POOL_SIZE", 50)
	redisTTL := env.GetInt("REDIS_TTL_SECONDS", 300)

	return redis.NewRedisClient(redisAddrs, redisPoolSize, time.Duration(redisTTL)*time.Second)
}

func newKafkaClient() (*kafka.KafkaClient, error) {
	return kafka.NewKafkaClient(env.MustGetString("KAFKA_BROKERS"))
}

func newEventPublisher(logger *slog.Logger, kafkaClient *kafka.KafkaClient) *events.StateEventPublisher {
	topic := env.GetString("KAFKA_STATE_EVENTS_TOPIC", "skillgraph.state.events")
	return events.NewStateEventPublisher(logger, kafkaClient, topic)
}

func newStateQueryRepository(readWriteClient *postgres.ReadWriteClient) *repositories.StateQueryRepository {
	return repositories.NewStateQueryRepository(readWriteClient.GetReadPool())
}

func newCachedStateRepository(stateQueryRepository *repositories.StateQueryRepository, redisClient *redis.RedisClient) *repositories.CachedStateRepository {
	return repositories.NewCachedStateRepository(stateQueryRepository, redisClient)
}

func newStateWriteRepository(readWriteClient *postgres.ReadWriteClient, cachedStateRepository *repositories.CachedStateRepository) *repositories.StateWriteRepository {
	return repositories.NewStateWriteRepository(readWriteClient.GetWritePool(), cachedStateRepository)
}

func newAccountRepository(readWriteClient *postgres.ReadWriteClient) *repositories.AccountRepository {
	return repositories.NewAccountRepository(readWriteClient.GetReadPool(), readWriteClient.GetWritePool())
}

func newStateService(
	cachedStateRepository *repositories.CachedStateRepository,
	stateWriteRepository *repositories.StateWriteRepository,
	stateQueryRepository *repositories.StateQueryRepository,
	accountRepository *repositories.AccountRepository,
	eventPublisher *events.StateEventPublisher,
) *state.StateService {
	return state.NewStateService(cachedStateRepository, stateWriteRepository, stateQueryRepository, accountRepository, eventPublisher)
}

func newAccountService(accountRepository *repositories.AccountRepository) *accounts.AccountService {
	return accounts.NewAccountService(accountRepository)
}

func newServer(
	logger *slog.Logger,
	stateService *state.StateService,
	accountService *accounts.AccountService,
) *httpadapter.Server {
	port := env.GetInt("SERVER_PORT", 3001)

	return httpadapter.NewServer(logger, port, stateService, accountService)
}

// registerServerHooks registers lifecycle hooks for the HTTP server
func registerServerHooks(lc fx.Lifecycle, srv *httpadapter.Server, readWriteClient *postgres.ReadWriteClient, kafkaClient *kafka.KafkaClient) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// Start server in a separate goroutine
			go func() {
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					log.Fatalf("Server failed: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Create timeout context for graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()

			log.Println("Shutting down server...")
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Printf("Server forced to shutdown: %v", err)
				return err
			}

			if err := kafkaClient.Close(); err != nil {
				log.Printf("Failed to close kafka client: %v", err)
			}
			readWriteClient.Close()

			log.Println("Server exited gracefully")
			return nil
		},
	})
}
