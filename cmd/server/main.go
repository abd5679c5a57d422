package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/hupe1980/tripmesh"
	"github.com/hupe1980/tripmesh/config"
	"github.com/hupe1980/tripmesh/core"
	"github.com/hupe1980/tripmesh/logging"
	"github.com/hupe1980/tripmesh/model"
	"github.com/hupe1980/tripmesh/model/anthropic"
	"github.com/hupe1980/tripmesh/model/openai"
	"github.com/hupe1980/tripmesh/search"
	"github.com/hupe1980/tripmesh/session"
	"github.com/hupe1980/tripmesh/travel"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()
	logger := logging.NewZapAdapter(zapLogger)

	store := newStore(cfg, logger)

	bot := tripmesh.New(
		travel.NewAnalyzer(newModel(cfg)),
		search.NewTavilyClient(cfg.TavilyAPIKey, func(o *search.TavilyOptions) {
			o.MaxResults = cfg.MaxSearchResults
		}),
		travel.NewGenerator(newModel(cfg)),
		travel.NewFollowUpChecker(),
		func(o *tripmesh.Options) {
			o.Store = store
			o.WindowSize = cfg.ContextWindowSize
			o.CallTimeout = cfg.CallTimeout
			o.MaxSearchResults = cfg.MaxSearchResults
			o.Logger = logger
		},
	)
	defer bot.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := bot.EnsureReady(startupCtx); err != nil {
		// Memory is optional: the engine degrades to stateless turns.
		logger.Warn("session store not ready at startup", "error", err.Error())
	}
	cancel()

	app := fiber.New(fiber.Config{
		AppName:      "tripmesh",
		ErrorHandler: errorHandler,
	})
	app.Use(recover.New())
	app.Use(cors.New())

	registerRoutes(app, bot)

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		logger.Info("shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	logger.Info("server listening", "port", cfg.Port, "provider", cfg.ModelProvider)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}

func newModel(cfg *config.Config) model.Model {
	if cfg.ModelProvider == "anthropic" {
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.APIKey = cfg.AnthropicAPIKey
		})
	}
	return openai.NewModel(func(o *openai.Options) {
		o.APIKey = cfg.OpenAIAPIKey
	})
}

func newStore(cfg *config.Config, logger logging.Logger) core.SessionStore {
	if cfg.RedisAddr == "" {
		logger.Info("using in-memory session store")
		return session.NewInMemoryStore(func(o *session.Options) {
			o.TTL = cfg.SessionTTL
			o.MaxMessages = cfg.MaxMessagesPerSession
		})
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	logger.Info("using redis session store", "addr", cfg.RedisAddr)
	return session.NewRedisStore(client, func(o *session.RedisOptions) {
		o.TTL = cfg.SessionTTL
		o.MaxMessages = cfg.MaxMessagesPerSession
		o.Logger = logger
	})
}

type chatRequest struct {
	Message    string `json:"message"`
	SessionKey string `json:"sessionId"`
}

func registerRoutes(app *fiber.App, bot *tripmesh.Chatbot) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "tripmesh",
			"message": "Travel chatbot API",
			"endpoints": []string{
				"POST /api/chat",
				"GET /api/history/:sessionId",
				"DELETE /api/history/:sessionId",
				"GET /api/summary/:sessionId",
				"GET /api/health",
			},
		})
	})

	api := app.Group("/api")

	api.Post("/chat", func(c *fiber.Ctx) error {
		var req chatRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}

		result, err := bot.HandleTurn(c.Context(), req.SessionKey, req.Message)
		if err != nil {
			return err
		}
		return c.JSON(result)
	})

	api.Get("/history/:sessionId", func(c *fiber.Ctx) error {
		log, err := bot.GetHistory(c.Context(), c.Params("sessionId"))
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"sessionId": c.Params("sessionId"),
			"messages":  log,
		})
	})

	api.Delete("/history/:sessionId", func(c *fiber.Ctx) error {
		if err := bot.ClearHistory(c.Context(), c.Params("sessionId")); err != nil {
			return err
		}
		return c.JSON(fiber.Map{
			"sessionId": c.Params("sessionId"),
			"cleared":   true,
		})
	})

	api.Get("/summary/:sessionId", func(c *fiber.Ctx) error {
		summary, err := bot.GetSummary(c.Context(), c.Params("sessionId"))
		if err != nil {
			return err
		}
		return c.JSON(summary)
	})

	api.Get("/health", func(c *fiber.Ctx) error {
		health := bot.HealthCheck(c.Context())
		status := fiber.StatusOK
		if health.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(health)
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}
