package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carrental/internal/config"
	"carrental/internal/handlers"
	"carrental/internal/services"
	"carrental/internal/snapshot"
	"carrental/pkg/cache"
	"carrental/pkg/database"
	"carrental/pkg/logger"
	"carrental/pkg/storage"
	"carrental/pkg/websocket"
	"carrental/routes"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using the process environment")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.NewLogger(&logger.Config{
		Level:   logger.LogLevel(cfg.Log.Level),
		Format:  cfg.Log.Format,
		Output:  cfg.Log.Output,
		Caller:  cfg.Log.Caller,
		Colors:  cfg.Log.Colors,
		AppName: cfg.App.Name,
		Version: cfg.App.Version,
	})
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.WithError(err).Fatal("Server stopped with error")
	}
}

func run(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) error {
	infra, err := setupInfrastructure(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer infra.close(appLogger)

	// Live statistics
	wsHandler := websocket.NewHandler(ctx, websocket.Options{
		ReadBufferSize:    cfg.WebSocket.ReadBufferSize,
		WriteBufferSize:   cfg.WebSocket.WriteBufferSize,
		HandshakeTimeout:  cfg.WebSocket.HandshakeTimeout,
		PingInterval:      cfg.WebSocket.PingInterval,
		PongTimeout:       cfg.WebSocket.PongTimeout,
		MaxConnections:    cfg.WebSocket.MaxConnections,
		EnableCompression: cfg.WebSocket.EnableCompression,
		AllowedOrigins:    cfg.WebSocket.AllowedOrigins,
	}, appLogger.Entry())

	var channel services.ChannelPublisher
	if infra.cache != nil {
		channel = infra.cache
	}
	statistics := services.NewStatistics(wsHandler, channel, cfg.Rental.StatisticsChannel, appLogger)
	go statistics.Run(ctx)
	if infra.cache != nil {
		go statistics.Relay(ctx, infra.cache)
	}

	// Initialize services
	rentalService := services.NewRentalService(infra.store, services.RentalServiceConfig{
		DefaultCompanyName: cfg.Rental.DefaultCompanyName,
		PersistTimeout:     cfg.Rental.PersistTimeout,
		JWTSecret:          cfg.Security.JWTSecret,
		TokenTTL:           cfg.Security.JWTAccessTokenTTL,
	}, appLogger, statistics)

	if err := rentalService.Load(ctx); err != nil {
		return err
	}

	var autosave *services.Autosave
	if cfg.Rental.AutosaveSpec != "" {
		autosave, err = services.NewAutosave(cfg.Rental.AutosaveSpec, rentalService, cfg.Rental.PersistTimeout, appLogger)
		if err != nil {
			return err
		}
		autosave.Start()
	}

	// Initialize handlers
	if cfg.App.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router, err := routes.NewRouter(routes.Handlers{
		Admin:      handlers.NewAdminHandler(rentalService, appLogger),
		Session:    handlers.NewSessionHandler(rentalService, appLogger),
		Customer:   handlers.NewCustomerHandler(rentalService, appLogger),
		Statistics: handlers.NewStatisticsHandler(statistics, wsHandler),
		Health:     handlers.NewHealthHandler(rentalService, cfg.App.Version, infra.backends),
	}, routes.RouterConfig{
		JWTSecret:      cfg.Security.JWTSecret,
		AdminAPIKey:    cfg.Security.AdminAPIKey,
		AllowedOrigins: cfg.Security.CORSAllowedOrigins,
		TrustedProxies: cfg.Security.TrustedProxies,
		WebSocketPath:  cfg.WebSocket.Path,
	}, appLogger)
	if err != nil {
		return fmt.Errorf("failed to create router: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.App.Address(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.WithFields(map[string]interface{}{
			"address":  server.Addr,
			"backend":  cfg.Rental.SnapshotBackend,
			"env":      cfg.App.Environment,
			"autosave": cfg.Rental.AutosaveSpec,
		}).Info("Starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("failed to serve: %w", err)
		}
	case <-ctx.Done():
		appLogger.Info("Shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server shutdown failed")
	}
	if autosave != nil {
		autosave.Stop(shutdownCtx)
	}
	if err := rentalService.Persist(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Final snapshot save failed")
	}
	return nil
}

// infrastructure holds the snapshot store and the clients behind it.
type infrastructure struct {
	store    snapshot.Store
	cache    *cache.RedisCache
	backends map[string]handlers.Pinger
	closers  []io.Closer
}

func setupInfrastructure(ctx context.Context, cfg *config.Config, appLogger *logger.Logger) (*infrastructure, error) {
	infra := &infrastructure{backends: make(map[string]handlers.Pinger)}

	switch cfg.Rental.SnapshotBackend {
	case config.SnapshotBackendBlob:
		provider, err := storage.New(storage.Options{
			Provider:           cfg.Storage.Provider,
			LocalPath:          cfg.Storage.Local.BasePath,
			AWSRegion:          cfg.Storage.AWS.Region,
			AWSBucket:          cfg.Storage.AWS.Bucket,
			GCPProjectID:       cfg.Storage.GCP.ProjectID,
			GCPBucket:          cfg.Storage.GCP.Bucket,
			GCPCredentialsFile: cfg.Storage.GCP.CredentialsFile,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create storage provider: %w", err)
		}
		if closer, ok := provider.(io.Closer); ok {
			infra.closers = append(infra.closers, closer)
		}
		infra.store = snapshot.NewBlobStore(provider, cfg.Rental.SnapshotKey)

	case config.SnapshotBackendMongo:
		db, err := database.NewMongoDB(&database.DatabaseConfig{
			URI:            cfg.Database.URI,
			Database:       cfg.Database.Database,
			MaxPoolSize:    cfg.Database.MaxPoolSize,
			MinPoolSize:    cfg.Database.MinPoolSize,
			ConnectTimeout: cfg.Database.ConnectTimeout,
			SocketTimeout:  cfg.Database.SocketTimeout,
		})
		if err != nil {
			return nil, err
		}
		infra.closers = append(infra.closers, db)
		infra.backends["mongodb"] = db

		if cfg.Database.RunMigrations {
			if err := database.NewMigrator(db.Database, appLogger.Entry()).Up(ctx); err != nil {
				infra.close(appLogger)
				return nil, err
			}
		}
		infra.store = snapshot.NewMongoStore(db.Collection(database.SnapshotsCollection), cfg.Rental.SnapshotKey)

	case config.SnapshotBackendRedis:
		c, err := infra.redis(cfg)
		if err != nil {
			return nil, err
		}
		infra.store = snapshot.NewRedisStore(c, cfg.Rental.SnapshotKey)

	case config.SnapshotBackendMemory:
		appLogger.Warn("Snapshots are kept in memory only")
		infra.store = snapshot.NewMemoryStore()
	}

	if cfg.Rental.StatisticsChannel != "" {
		if _, err := infra.redis(cfg); err != nil {
			infra.close(appLogger)
			return nil, err
		}
	}
	return infra, nil
}

// redis connects on first use so the client is shared by the snapshot
// store and the statistics channel.
func (i *infrastructure) redis(cfg *config.Config) (*cache.RedisCache, error) {
	if i.cache != nil {
		return i.cache, nil
	}
	c, err := cache.NewRedisCache(&cache.RedisConfig{
		Host:         cfg.Redis.Host,
		Port:         cfg.Redis.Port,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	i.cache = c
	i.closers = append(i.closers, c)
	i.backends["redis"] = c
	return c, nil
}

func (i *infrastructure) close(appLogger *logger.Logger) {
	for _, closer := range i.closers {
		if err := closer.Close(); err != nil {
			appLogger.WithError(err).Warn("Failed to close backend")
		}
	}
	i.closers = nil
}
