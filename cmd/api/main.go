package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/helpdesk-kit/support-service/internal/ai"
	httptransport "github.com/helpdesk-kit/support-service/internal/api/http"
	"github.com/helpdesk-kit/support-service/internal/api/http/handlers"
	"github.com/helpdesk-kit/support-service/internal/auth"
	"github.com/helpdesk-kit/support-service/internal/cache"
	"github.com/helpdesk-kit/support-service/internal/config"
	"github.com/helpdesk-kit/support-service/internal/events"
	"github.com/helpdesk-kit/support-service/internal/observability"
	"github.com/helpdesk-kit/support-service/internal/persistence"
	"github.com/helpdesk-kit/support-service/internal/realtime"
	"github.com/helpdesk-kit/support-service/internal/repository"
	"github.com/helpdesk-kit/support-service/internal/service"
	"github.com/helpdesk-kit/support-service/internal/storage"
	"github.com/helpdesk-kit/support-service/internal/worker"
)

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

	var objectStore storage.ObjectStore = storage.Unconfigured{}
	if cfg.Storage.Endpoint != "" {
		minioStore, err := storage.NewMinioStore(cfg.Storage)
		if err != nil {
			logger.Fatal("failed to connect object store", zap.Error(err))
		}
		objectStore = minioStore
	} else {
		logger.Warn("STORAGE_ENDPOINT not provided; attachment uploads will fail")
	}

	pool := pg.PoolHandle()
	profileRepo := repository.NewProfileRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	attachmentRepo := repository.NewAttachmentRepository(pool)
	faqRepo := repository.NewFAQRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()
	broker := realtime.NewRedisBroker(redis.Client, logger)
	cacheClient := cache.New(redis.Client)

	identityService := service.NewIdentityService(profileRepo, logger)
	ticketService := service.NewTicketService(ticketRepo, profileRepo, attachmentRepo, objectStore, dispatcher, logger)
	commentService := service.NewCommentService(commentRepo, ticketRepo, broker, dispatcher, logger)
	attachmentService := service.NewAttachmentService(attachmentRepo, ticketRepo, objectStore, dispatcher, logger)
	faqService := service.NewFAQService(faqRepo, cacheClient, cfg.OpenAI.FAQCacheTTL(), logger)
	chatService := service.NewChatService(ai.NewOpenAIClient(cfg.OpenAI), faqService, ticketService, logger)

	notificationService := service.NewNotificationService(cfg.Notification, logger)
	notificationService.RegisterHandlers(dispatcher)
	worker.StartNotificationWorker(ctx, notificationService, logger)

	tokenManager := auth.NewTokenManager(cfg.Auth.JWTSecret)
	authMiddleware := auth.NewAuthMiddleware(tokenManager, identityService)

	app := fiber.New(fiber.Config{
		AppName:   cfg.App.Name,
		BodyLimit: service.MaxAttachmentSize + 1<<20,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:          handlers.NewUsersHandler(identityService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Comments:       handlers.NewCommentsHandler(commentService),
		Attachments:    handlers.NewAttachmentsHandler(attachmentService),
		FAQs:           handlers.NewFAQsHandler(faqService),
		Chat:           handlers.NewChatHandler(chatService),
		AuthMiddleware: authMiddleware,
		RequestTimeout: cfg.App.RequestTimeout(),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
