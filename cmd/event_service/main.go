package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	accountapp "event_management_service/internal/account/app"
	accountdomain "event_management_service/internal/account/domain"
	accountrepo "event_management_service/internal/account/repository"
	"event_management_service/internal/api/handlers"
	"event_management_service/internal/api/router"
	chatapp "event_management_service/internal/chat/app"
	chatrepo "event_management_service/internal/chat/repository"
	eventapp "event_management_service/internal/event/app"
	eventrepo "event_management_service/internal/event/repository"
	mailrepo "event_management_service/internal/mailer/repository"
	vendorapp "event_management_service/internal/vendors/app"
	vendorrepo "event_management_service/internal/vendors/repository"
	"event_management_service/pkg/config"
	"event_management_service/pkg/database"
	"event_management_service/pkg/encrypt"
	"event_management_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

// userEmailDirectory resolves a user id to a mail address for the
// vendor approval notification
type userEmailDirectory struct {
	repo accountrepo.UserRepository
}

func (d userEmailDirectory) FindEmail(ctx context.Context, userID int64) (string, error) {
	user, err := d.repo.FindByUser(ctx, &accountdomain.UserQuery{ID: &userID})
	if err != nil {
		return "", err
	}
	return user.Email, nil
}

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.EventService, config.EnvConfig.EventServiceLogPath)
	cfg := config.LoadConfig[config.EventService](config.EnvConfig.EventService, config.EnvConfig.EventServiceYAMLPath)

	ctx := context.Background()

	// PostgreSQL, pgx pool for accounts and a gorm handle for the catalogues
	pgURI := fmt.Sprintf("postgres://%s:%s@%s:%d/%s",
		cfg.PostgreSQL.User, cfg.PostgreSQL.Password,
		cfg.PostgreSQL.Host, cfg.PostgreSQL.Port, cfg.PostgreSQL.Database)
	pgPool, err := database.NewDatabaseConnection(database.Connection{
		ConnectStr:    pgURI,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval) * time.Second,
	})
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to postgreSQL database after retries",
			zap.String("address", fmt.Sprintf("[%s:%d]", cfg.PostgreSQL.Host, cfg.PostgreSQL.Port)),
			zap.Error(err),
		)
	}
	defer pgPool.Close()

	gormDB, err := database.NewGormConnection(database.Connection{
		ConnectStr:    pgURI,
		RetryCount:    cfg.PostgreSQL.RetryCount,
		RetryInterval: time.Duration(cfg.PostgreSQL.RetryInterval) * time.Second,
	})
	if err != nil {
		logger.Log.Fatal("Unable to open gorm connection after retries", zap.Error(err))
	}

	// MongoDB stores chat rooms and messages
	mongoURI := fmt.Sprintf("mongodb://%s:%s@%s:%d",
		cfg.Mongo.User, cfg.Mongo.Password, cfg.Mongo.Host, cfg.Mongo.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    mongoURI,
			RetryCount:    cfg.Mongo.RetryCount,
			RetryInterval: time.Duration(cfg.Mongo.RetryInterval) * time.Second,
		},
		cfg.Mongo.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", mongoURI)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	// Redis carries sessions and the chat pub/sub channels
	masterName, sentinel := config.GetRedisSetting()
	sessionRepo, err := database.NewRedisRepository[accountdomain.UserSession](masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}
	redisClient, err := database.NewRedisClient(masterName, sentinel, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}

	// Kafka carries outbound mail tasks to the mailer worker
	kafkaWriter, err := database.NewKafkaWriterWithRetry(database.KafkaConnection{
		Brokers:       cfg.Kafka.Brokers,
		Topic:         cfg.Kafka.Topic,
		RetryCount:    cfg.Kafka.RetryCount,
		RetryInterval: time.Duration(cfg.Kafka.RetryInterval) * time.Second,
	})
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect kafka err : %v", err))
	}
	defer kafkaWriter.Close()

	// MinIO holds profile, event and vendor images
	minioClient, err := database.NewMinIOConnection(database.MinIOConnection{
		Endpoint:      cfg.MinIO.Endpoint,
		User:          cfg.MinIO.User,
		Password:      cfg.MinIO.Password,
		BucketName:    cfg.MinIO.Bucket,
		UseSSL:        cfg.MinIO.UseSSL,
		RetryCount:    cfg.MinIO.RetryCount,
		RetryInterval: time.Duration(cfg.MinIO.RetryInterval) * time.Second,
	})
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect minio err : %v", err))
	}

	// repositories
	userRepo := accountrepo.NewUserRepository(pgPool)
	forumRepo := eventrepo.NewForumRepo(gormDB)
	eventRepo := eventrepo.NewEventRepo(gormDB)
	vendorRepo := vendorrepo.NewVendorRepo(gormDB)
	roomRepo := chatrepo.NewMongoRoomRepository(mongo.Database)
	msgRepo := chatrepo.NewMongoMessageRepository(mongo.Database)
	pubSub := chatrepo.NewRedisPubSub(redisClient)
	mailQueue := mailrepo.NewKafkaMailQueue(kafkaWriter)

	if err := forumRepo.AutoMigrate(); err != nil {
		logger.Log.Fatal("forum migrate failed", zap.Error(err))
	}
	if err := eventRepo.AutoMigrate(); err != nil {
		logger.Log.Fatal("event migrate failed", zap.Error(err))
	}
	if err := vendorRepo.AutoMigrate(); err != nil {
		logger.Log.Fatal("vendor migrate failed", zap.Error(err))
	}
	if err := roomRepo.EnsureIndexes(ctx); err != nil {
		logger.Log.Fatal("chat room indexes failed", zap.Error(err))
	}

	// use cases
	accountUC := accountapp.NewAccountUseCase(
		userRepo,
		cfg.SessionTTL,
		sessionRepo,
		mailQueue,
		minioClient,
		encrypt.HashPassword,
		cfg.PasswordResetBaseURL,
	)
	forumUC := eventapp.NewForumUseCase(forumRepo)
	eventUC := eventapp.NewEventUseCase(eventRepo, minioClient)
	vendorUC := vendorapp.NewVendorUseCase(vendorRepo, userEmailDirectory{repo: userRepo}, mailQueue, minioClient)
	roomUC := chatapp.NewRoomUseCase(roomRepo, userRepo)
	sendMessageUC := chatapp.NewSendMessageUseCase(roomUC, msgRepo, pubSub)
	chatWebsocket := chatapp.NewChatWebsocketHandler(roomUC, sendMessageUC, pubSub)

	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.EventServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	router.RegisterRoutes(r,
		handlers.NewAccountHandler(accountUC),
		handlers.NewForumHandler(forumUC),
		handlers.NewEventHandler(eventUC),
		handlers.NewVendorHandler(vendorUC),
		handlers.NewChatHandler(roomUC, sendMessageUC),
		chatWebsocket,
	)

	port := ":" + cfg.Port
	log.Printf("Event Service listening on %s", port)
	if err := r.Listen(port); err != nil {
		log.Fatalf("Failed to start Fiber: %v", err)
	}
}
