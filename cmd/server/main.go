package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/wepoYJ/wepo-server/engagement"
	engagementHandlers "github.com/wepoYJ/wepo-server/engagement/handlers"
	engagementServices "github.com/wepoYJ/wepo-server/engagement/services"
	"github.com/wepoYJ/wepo-server/internal/cache"
	"github.com/wepoYJ/wepo-server/internal/database/postgres"
	platformconfig "github.com/wepoYJ/wepo-server/internal/platform/config"
	"github.com/wepoYJ/wepo-server/internal/pkg/snowflake"
	"github.com/wepoYJ/wepo-server/notifications"
	noticeHandlers "github.com/wepoYJ/wepo-server/notifications/handlers"
	noticeRepository "github.com/wepoYJ/wepo-server/notifications/repository"
	noticeServices "github.com/wepoYJ/wepo-server/notifications/services"
	"github.com/wepoYJ/wepo-server/posts"
	"github.com/wepoYJ/wepo-server/posts/handlers"
	postsRepository "github.com/wepoYJ/wepo-server/posts/repository"
	postsServices "github.com/wepoYJ/wepo-server/posts/services"
)

func main() {
	cfg, err := platformconfig.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load platform config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			// If response already set by handler, don't override it
			if len(c.Response().Body()) > 0 {
				return nil
			}

			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.WebDomain,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, X-User-Id, X-User-Name",
		AllowMethods:     "GET, POST, PUT, DELETE, PATCH, OPTIONS",
	}))

	ctx := context.Background()

	pgClient, err := postgres.NewClient(ctx, &cfg.Database.Postgres)
	if err != nil {
		log.Fatalf("Failed to create postgres client: %v", err)
	}

	engagementCache, err := cache.New(&cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to create cache: %v", err)
	}
	if err := engagementCache.Ping(ctx); err != nil {
		log.Fatalf("Cache is unreachable: %v", err)
	}

	idNode, err := snowflake.NewNode(cfg.Snowflake.DatacenterID, cfg.Snowflake.WorkerID)
	if err != nil {
		log.Fatalf("Failed to create id generator: %v", err)
	}

	postRepo := postsRepository.NewPostgresRepository(pgClient)
	noticeRepo := noticeRepository.NewPostgresRepository(pgClient)

	counterService := engagementServices.NewCounterService(engagementCache)
	engagementService := engagementServices.NewEngagementService(engagementCache)
	noticeService := noticeServices.NewNoticeService(noticeRepo)
	postService := postsServices.NewPostService(postRepo, idNode, counterService, engagementService, noticeService)

	posts.RegisterRoutes(app, &posts.PostsHandlers{
		PostHandler: handlers.NewPostHandler(postService),
	})
	engagement.RegisterRoutes(app, &engagement.EngagementHandlers{
		EngagementHandler: engagementHandlers.NewEngagementHandler(engagementService),
	})
	notifications.RegisterRoutes(app, &notifications.NotificationsHandlers{
		NoticeHandler: noticeHandlers.NewNoticeHandler(noticeService),
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Starting %s server on %s", cfg.App.Name, addr)
	log.Fatal(app.Listen(addr))
}
