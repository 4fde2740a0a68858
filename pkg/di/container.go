package di

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"tasklist-api/application/serviceimpl"
	"tasklist-api/domain/ports"
	"tasklist-api/domain/repositories"
	"tasklist-api/domain/services"
	"tasklist-api/infrastructure/messaging"
	natspkg "tasklist-api/infrastructure/nats"
	"tasklist-api/infrastructure/postgres"
	redispkg "tasklist-api/infrastructure/redis"
	"tasklist-api/infrastructure/storage"
	"tasklist-api/infrastructure/websocket"
	"tasklist-api/interfaces/api/handlers"
	"tasklist-api/pkg/config"
	"tasklist-api/pkg/logger"
	"tasklist-api/pkg/scheduler"
)

type Container struct {
	// Configuration
	Config *config.Config

	// Infrastructure
	DB             *gorm.DB
	RedisClient    *redispkg.Client // optional: token blacklist
	NATSClient     *natspkg.Client  // optional: change events ข้าม instance
	Storage        ports.StoragePort
	EventScheduler scheduler.EventScheduler

	// Messaging Ports
	EventPublisher  ports.EventPublisherPort
	EventSubscriber ports.EventSubscriberPort
	TokenBlacklist  ports.TokenBlacklistPort // nil ถ้าไม่มี Redis

	// Repositories
	UserRepository       repositories.UserRepository
	CollectionRepository repositories.CollectionRepository
	TaskRepository       repositories.TaskRepository

	// Services
	UserService        services.UserService
	CollectionService  services.CollectionService
	TaskService        services.TaskService
	DashboardService   services.DashboardService
	ExportService      services.ExportService
	ExpirySweepService services.ExpirySweepService

	// WebSocket & Broadcasting
	ChangeBroadcaster *websocket.ChangeBroadcaster
}

func NewContainer() *Container {
	return &Container{}
}

// Initialize สร้างทุกอย่างสำหรับ API server
func (c *Container) Initialize() error {
	if err := c.InitializeCore(); err != nil {
		return err
	}

	if err := c.initScheduler(); err != nil {
		return err
	}

	if err := c.initChangeBroadcaster(); err != nil {
		return err
	}

	return nil
}

// InitializeCore สร้าง infrastructure, repositories และ services โดยไม่ start background jobs
// (todoctl ใช้ตัวนี้)
func (c *Container) InitializeCore() error {
	if err := c.initConfig(); err != nil {
		return err
	}

	if err := c.initLogger(); err != nil {
		return err
	}

	if err := c.initInfrastructure(); err != nil {
		return err
	}

	if err := c.initRepositories(); err != nil {
		return err
	}

	return c.initServices()
}

func (c *Container) initConfig() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	c.Config = cfg
	logger.Info("Configuration loaded")
	return nil
}

func (c *Container) initLogger() error {
	logConfig := logger.Config{
		Level:      c.Config.Log.Level,
		Format:     c.Config.Log.Format,
		Output:     c.Config.Log.Output,
		FilePath:   c.Config.Log.FilePath,
		MaxSize:    c.Config.Log.MaxSize,
		MaxBackups: c.Config.Log.MaxBackups,
		MaxAge:     c.Config.Log.MaxAge,
		Compress:   c.Config.Log.Compress,
	}

	if err := logger.Init(logConfig); err != nil {
		return err
	}

	logger.Info("Logger initialized",
		"level", c.Config.Log.Level,
		"format", c.Config.Log.Format,
		"output", c.Config.Log.Output,
	)
	return nil
}

func (c *Container) initInfrastructure() error {
	// Initialize Database
	dbConfig := postgres.DatabaseConfig{
		Host:     c.Config.Database.Host,
		Port:     c.Config.Database.Port,
		User:     c.Config.Database.User,
		Password: c.Config.Database.Password,
		DBName:   c.Config.Database.DBName,
		SSLMode:  c.Config.Database.SSLMode,
		LogLevel: c.Config.Database.LogLevel,
	}

	db, err := postgres.NewDatabase(dbConfig)
	if err != nil {
		return err
	}
	c.DB = db
	logger.Info("Database connected", "host", c.Config.Database.Host, "db", c.Config.Database.DBName)

	if c.Config.Database.AutoMigrate {
		if err := c.Migrate(); err != nil {
			return err
		}
	}

	// Initialize Redis Client (optional - graceful degradation)
	if c.Config.Redis.URL != "" {
		redisClient, err := redispkg.NewClient(&c.Config.Redis)
		if err != nil {
			logger.Warn("Redis client initialization failed (token revocation disabled)", "error", err)
		} else {
			c.RedisClient = redisClient
			c.TokenBlacklist = redispkg.NewTokenBlacklist(redisClient)
			logger.Info("Redis client initialized", "url", c.Config.Redis.URL)
		}
	} else {
		logger.Warn("Redis not configured (logout will not revoke tokens)")
	}

	c.initMessagingPorts()

	// Initialize Storage (Port/Adapter pattern)
	return c.initStorage()
}

// Migrate สร้าง/อัปเดต tables
func (c *Container) Migrate() error {
	if err := postgres.Migrate(c.DB); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Info("Database migrated")
	return nil
}

// initMessagingPorts ใช้ NATS ถ้ามี ไม่งั้นใช้ in-process bus
func (c *Container) initMessagingPorts() {
	if c.Config.NATS.URL != "" {
		natsClient, err := natspkg.NewClient(natspkg.ClientConfig{
			URL:           c.Config.NATS.URL,
			SubjectPrefix: c.Config.NATS.SubjectPrefix,
			Name:          c.Config.App.Name,
		})
		if err != nil {
			logger.Warn("NATS client initialization failed (falling back to local event bus)", "error", err)
		} else {
			c.NATSClient = natsClient
			c.EventPublisher = messaging.NewNATSEventPublisher(natspkg.NewPublisher(natsClient))
			c.EventSubscriber = messaging.NewNATSEventSubscriber(natspkg.NewSubscriber(natsClient))
			logger.Info("Messaging ports initialized (NATS)", "url", c.Config.NATS.URL)
			return
		}
	}

	bus := messaging.NewLocalEventBus()
	c.EventPublisher = bus
	c.EventSubscriber = bus
	logger.Info("Messaging ports initialized (local event bus)")
}

// initStorage สร้าง storage adapter ตาม config
func (c *Container) initStorage() error {
	switch c.Config.Storage.Type {
	case "s3":
		// S3-Compatible Storage (MinIO / Cloudflare R2)
		s3Config := storage.S3StorageConfig{
			Endpoint:  c.Config.Storage.S3.Endpoint,
			AccessKey: c.Config.Storage.S3.AccessKey,
			SecretKey: c.Config.Storage.S3.SecretKey,
			Bucket:    c.Config.Storage.S3.Bucket,
			UseSSL:    c.Config.Storage.S3.UseSSL,
			Region:    c.Config.Storage.S3.Region,
			PublicURL: c.Config.Storage.S3.PublicURL,
		}
		s3Storage, err := storage.NewS3Storage(s3Config)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		c.Storage = s3Storage

	default:
		if c.Config.Storage.Type != "local" {
			logger.Warn("Unknown storage type, using local", "type", c.Config.Storage.Type)
		}
		localStorage, err := storage.NewLocalStorage(storage.LocalStorageConfig{
			BasePath: c.Config.Storage.BasePath,
			BaseURL:  c.Config.Storage.BaseURL,
		})
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		c.Storage = localStorage
		logger.Info("Local Storage initialized", "path", c.Config.Storage.BasePath)
	}

	return nil
}

func (c *Container) initRepositories() error {
	c.UserRepository = postgres.NewUserRepository(c.DB)
	c.CollectionRepository = postgres.NewCollectionRepository(c.DB)
	c.TaskRepository = postgres.NewTaskRepository(c.DB)
	logger.Info("Repositories initialized")
	return nil
}

func (c *Container) initServices() error {
	c.UserService = serviceimpl.NewUserService(
		c.UserRepository,
		c.TokenBlacklist,
		c.Config.JWT.Secret,
		c.Config.JWT.TTL,
	)
	c.CollectionService = serviceimpl.NewCollectionService(c.CollectionRepository, c.EventPublisher)
	c.TaskService = serviceimpl.NewTaskService(c.TaskRepository, c.EventPublisher)
	c.DashboardService = serviceimpl.NewDashboardService(c.CollectionService)
	c.ExportService = serviceimpl.NewExportService(c.CollectionService, c.Storage)

	// scheduler ถูกสร้างทีหลังใน initScheduler จึงส่ง nil ไปก่อนสำหรับ todoctl
	c.ExpirySweepService = serviceimpl.NewExpirySweepService(
		c.TaskRepository,
		c.EventPublisher,
		nil,
		c.Config.Expiry.SweepCron,
		c.Config.Expiry.WarnAhead,
	)

	logger.Info("Services initialized")
	return nil
}

func (c *Container) initScheduler() error {
	c.EventScheduler = scheduler.NewEventScheduler()

	c.ExpirySweepService = serviceimpl.NewExpirySweepService(
		c.TaskRepository,
		c.EventPublisher,
		c.EventScheduler,
		c.Config.Expiry.SweepCron,
		c.Config.Expiry.WarnAhead,
	)

	if err := c.ExpirySweepService.RegisterSweepJob(); err != nil {
		logger.Warn("Failed to register expiry sweep job", "error", err)
	} else if c.Config.Expiry.SweepCron != "" {
		logger.Info("Expiry sweep job registered", "cron", c.Config.Expiry.SweepCron)
	}

	// Start the scheduler
	c.EventScheduler.Start()
	logger.Info("Event scheduler started")
	return nil
}

func (c *Container) initChangeBroadcaster() error {
	c.ChangeBroadcaster = websocket.NewChangeBroadcaster(c.EventSubscriber, websocket.Manager)
	if err := c.ChangeBroadcaster.Start(); err != nil {
		// ไม่ fatal: API ยังใช้งานได้ แค่ไม่มี push
		logger.Warn("Failed to start change broadcaster", "error", err)
	}
	return nil
}

func (c *Container) Cleanup() error {
	logger.Info("Starting cleanup...")

	// Stop change broadcaster (unsubscribes)
	if c.ChangeBroadcaster != nil {
		c.ChangeBroadcaster.Stop()
		logger.Info("Change broadcaster stopped")
	}

	// Stop scheduler
	if c.EventScheduler != nil {
		if c.EventScheduler.IsRunning() {
			c.EventScheduler.Stop()
			logger.Info("Event scheduler stopped")
		}
	}

	// Close NATS connection
	if c.NATSClient != nil {
		if err := c.NATSClient.Close(); err != nil {
			logger.Warn("Failed to close NATS connection", "error", err)
		} else {
			logger.Info("NATS connection closed")
		}
	}

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			logger.Warn("Failed to close Redis connection", "error", err)
		} else {
			logger.Info("Redis connection closed")
		}
	}

	// Close database connection
	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Failed to close database connection", "error", err)
			} else {
				logger.Info("Database connection closed")
			}
		}
	}

	logger.Info("Cleanup completed")
	return nil
}

// healthChecks รวม check ของ infrastructure ที่เปิดใช้อยู่
func (c *Container) healthChecks() map[string]handlers.HealthCheck {
	checks := make(map[string]handlers.HealthCheck)

	if c.DB != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := c.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if c.RedisClient != nil {
		checks["redis"] = c.RedisClient.Ping
	}
	if c.NATSClient != nil {
		checks["nats"] = c.NATSClient.Ping
	}
	if c.ChangeBroadcaster != nil {
		checks["change_broadcaster"] = func(ctx context.Context) error {
			if !c.ChangeBroadcaster.IsRunning() {
				return errors.New("not running")
			}
			return nil
		}
	}

	return checks
}

func (c *Container) GetConfig() *config.Config {
	return c.Config
}

func (c *Container) GetHandlerServices() *handlers.Services {
	return &handlers.Services{
		UserService:       c.UserService,
		TaskService:       c.TaskService,
		CollectionService: c.CollectionService,
		DashboardService:  c.DashboardService,
		ExportService:     c.ExportService,
		ExpirySweep:       c.ExpirySweepService,
		TokenBlacklist:    c.TokenBlacklist,
		GoogleConfig:      c.Config.Google,
		HealthChecks:      c.healthChecks(),
		JWTSecret:         c.Config.JWT.Secret,
	}
}
