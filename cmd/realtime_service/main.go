package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	chatapp "devconnect_backend/internal/chat/app"
	chatrepo "devconnect_backend/internal/chat/repository"
	chatrouter "devconnect_backend/internal/chat/router"
	contentapp "devconnect_backend/internal/content/app"
	contentrepo "devconnect_backend/internal/content/repository"
	contentrouter "devconnect_backend/internal/content/router"
	memberapp "devconnect_backend/internal/member/app"
	memberrepo "devconnect_backend/internal/member/repository"
	memberrouter "devconnect_backend/internal/member/router"
	notifapp "devconnect_backend/internal/notification/app"
	notifrepo "devconnect_backend/internal/notification/repository"
	notifrouter "devconnect_backend/internal/notification/router"
	rtapp "devconnect_backend/internal/realtime/app"
	rtrepo "devconnect_backend/internal/realtime/repository"
	rtrouter "devconnect_backend/internal/realtime/router"
	"devconnect_backend/pkg/cache"
	"devconnect_backend/pkg/config"
	"devconnect_backend/pkg/database"
	"devconnect_backend/pkg/logger"
	"devconnect_backend/pkg/tasks"

	"github.com/gofiber/fiber/v2"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.RealtimeService, config.EnvConfig.RealtimeServiceLogPath)
	cfg := config.LoadConfig[config.Realtime](config.EnvConfig.RealtimeService, config.EnvConfig.RealtimeServiceYAMLPath)

	ctx := context.Background()

	uri := fmt.Sprintf("mongodb://%s:%s@%s:%d", cfg.MongoSQL.User, cfg.MongoSQL.Password, cfg.MongoSQL.Host, cfg.MongoSQL.Port)
	mongo, err := database.NewMongoDB(ctx,
		database.Connection{
			ConnectStr:    uri,
			RetryCount:    cfg.MongoSQL.RetryCount,
			RetryInterval: time.Duration(cfg.MongoSQL.RetryInterval),
		},
		cfg.MongoSQL.Database)
	if err != nil {
		logger.Log.Fatal(
			"Unable to connect to mongoDB database after retries",
			zap.String("address", fmt.Sprintf("[%s]", uri)),
			zap.Error(err),
		)
	}
	defer mongo.Close(ctx)

	redisClient, err := database.NewRedisClient(cfg.Redis.URL, cfg.Redis.RedisDB)
	if err != nil {
		logger.Log.Fatal(fmt.Sprintf("connect redis err : %v", err))
	}
	defer redisClient.Close()

	// repositories
	memberRepo := memberrepo.NewMongoMemberRepository(mongo.Database)
	chatRepo := chatrepo.NewMongoChatRepository(mongo.Database)
	msgRepo := chatrepo.NewMongoMessageRepository(mongo.Database)
	notifRepo := notifrepo.NewMongoNotificationRepository(mongo.Database)
	postRepo := contentrepo.NewMongoPostRepository(mongo.Database)
	commentRepo := contentrepo.NewMongoCommentRepository(mongo.Database)
	issueRepo := contentrepo.NewMongoIssueRepository(mongo.Database)
	presenceRepo := rtrepo.NewRedisPresenceRepository(redisClient)

	bus := rtrepo.NewRedisPubSub(redisClient)
	cacheSvc := cache.NewService(cache.NewRedisBackend(redisClient))
	runner := tasks.NewRunner(30 * time.Second)

	// usecases
	memberUC := memberapp.NewMemberUseCase(memberRepo)
	chatUC := chatapp.NewChatUseCase(chatRepo, msgRepo, bus)
	publisher := rtapp.NewRoomPublisher(bus)
	notifUC := notifapp.NewNotificationUseCase(notifRepo, publisher, runner)
	contentUC := contentapp.NewContentUseCase(
		postRepo, commentRepo, issueRepo,
		cacheSvc, notifUC, memberUC, runner,
		cfg.Cache.PostTTL, cfg.Cache.ListTTL,
	)

	// realtime fan-out
	hub := rtapp.NewHub()
	backplane := rtapp.NewBackplane(bus, hub)
	if err := backplane.Start(ctx); err != nil {
		logger.Log.Fatal(fmt.Sprintf("backplane start err : %v", err))
	}

	presence := rtapp.NewPresenceTracker(presenceRepo, bus, cfg.Presence.TTL)
	presence.StartCleanup(ctx, cfg.Presence.CleanupInterval)

	gateway := rtapp.NewGateway(hub, presence, bus, chatUC, notifUC)

	r := fiber.New()
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.RealtimeServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(fiber_log.New(fiber_log.Config{
		Output: file,
	}))

	memberrouter.RegisterRoutes(r, &memberapp.MemberHandler{UseCase: memberUC})
	chatrouter.RegisterRoutes(r, &chatapp.ChatHandler{UseCase: chatUC})
	contentrouter.RegisterRoutes(r, &contentapp.ContentHandler{UseCase: contentUC})
	notifrouter.RegisterRoutes(r, &notifapp.NotificationHandler{UseCase: notifUC})
	rtrouter.RegisterRoutes(r, gateway, &rtapp.PresenceHandler{Tracker: presence})

	go func() {
		port := ":" + cfg.Port
		logger.Log.Info("Realtime Service listening on " + port)
		if err := r.Listen(port); err != nil {
			log.Fatalf("Failed to start Fiber: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("shutting down")
	if err := r.Shutdown(); err != nil {
		logger.Log.Errorf("fiber shutdown err:", err)
	}
	backplane.Close()

	drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := runner.Wait(drainCtx); err != nil {
		logger.Log.Errorf("background task drain err:", err)
	}
	logger.Log.Sync()
}
