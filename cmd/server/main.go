package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"taskpilot/internal/config"
	"taskpilot/internal/dispatch"
	"taskpilot/internal/execution"
	"taskpilot/internal/handlers"
	"taskpilot/internal/logging"
	"taskpilot/internal/middleware"
	"taskpilot/internal/models"
	"taskpilot/internal/nlp"
	"taskpilot/internal/services"
	"taskpilot/internal/tools"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Initialize structured logging (JSON in production, text in dev)
	logging.Init()

	log.Println("🚀 Starting TaskPilot Server...")

	// Load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  No .env file found or error loading it: %v", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	cfg := config.Load()
	log.Printf("📋 Configuration loaded (Port: %s, MaxConcurrentTasks: %d)", cfg.Port, cfg.MaxConcurrentTasks)

	// Redis is optional; without it interaction enrichment is disabled
	redisService, err := services.NewRedisService(cfg.RedisURL)
	if err != nil {
		log.Printf("⚠️ Failed to connect to Redis: %v (enrichment disabled)", err)
		redisService = nil
	} else {
		defer redisService.Close()
	}

	schedulerService, schedErr := services.NewSchedulerService()
	if schedErr != nil {
		log.Fatalf("❌ Failed to create scheduler: %v", schedErr)
	}
	schedulerService.Start()

	metrics := services.InitMetrics()

	// Tool registry shared by the chat pipeline and the task API
	registry := tools.NewRegistry()
	mustRegister(registry, tools.NewFileTool())
	mustRegister(registry, tools.NewReminderTool(schedulerService))
	mustRegister(registry, tools.NewScriptTool(cfg.TaskTimeout))
	mustRegister(registry, tools.NewSearchTool(cfg.SearchMaxResults))
	mustRegister(registry, tools.NewSystemInfoTool())
	log.Printf("🔧 Registered %d tools", registry.Count())

	taskStore := execution.NewTaskStore()
	engine := execution.NewEngine(taskStore, registry, cfg.MaxConcurrentTasks)
	engine.OnDone(func(task models.Task) {
		metrics.TasksCompleted.WithLabelValues(string(task.Status)).Inc()
	})

	conversations := services.NewConversationManager(cfg.MaxConversationHistory)
	sink := services.NewEnrichmentSink(redisService, cfg.EnrichmentBuffer, func() {
		metrics.EnrichmentDrops.Inc()
	})

	// No trainable predictor wired yet; the heuristic scorer handles everything
	classifier := nlp.NewClassifier(nil)
	extractor := nlp.NewEntityExtractor()
	enhancer := nlp.NewContextEnhancer()
	dispatcher := dispatch.NewDispatcher(registry)

	chatService := services.NewChatService(
		classifier, extractor, enhancer,
		conversations, dispatcher, sink, metrics,
		cfg.ConversationMemoryWindow,
	)

	app := fiber.New(fiber.Config{
		AppName:      "TaskPilot",
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New())

	// Prometheus metrics middleware
	prometheus := fiberprometheus.New("taskpilot")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)
	log.Println("📊 Prometheus metrics endpoint enabled at /metrics")

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	rateLimitConfig := middleware.LoadRateLimitConfig()
	app.Use("/api", middleware.GlobalAPIRateLimiter(rateLimitConfig))
	log.Printf("🛡️  [RATE-LIMIT] Global=%d/min, Chat=%d/min", rateLimitConfig.GlobalAPIMax, rateLimitConfig.ChatMax)

	// Handlers
	chatHandler := handlers.NewChatHandler(chatService)
	taskHandler := handlers.NewTaskHandler(engine, taskStore)
	conversationHandler := handlers.NewConversationHandler(conversations)
	healthHandler := handlers.NewHealthHandler(conversations, schedulerService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"name":    "TaskPilot",
			"status":  "running",
			"message": "Conversational task automation server",
		})
	})
	app.Get("/health", healthHandler.Handle)

	api := app.Group("/api/v1")
	api.Post("/chat", middleware.ChatRateLimiter(rateLimitConfig), chatHandler.Chat)
	api.Post("/learn", chatHandler.Learn)
	api.Post("/tasks", taskHandler.Submit)
	api.Get("/tasks", taskHandler.List)
	api.Get("/tasks/:id", taskHandler.Get)
	api.Get("/conversations", conversationHandler.List)
	api.Get("/conversations/:id", conversationHandler.Get)
	api.Delete("/conversations/:id", conversationHandler.Clear)

	log.Printf("📡 Health check: http://localhost:%s/health", cfg.Port)
	log.Printf("💬 Chat endpoint: http://localhost:%s/api/v1/chat", cfg.Port)

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("\n🛑 Shutting down server...")

		if err := schedulerService.Stop(); err != nil {
			log.Printf("⚠️ Error stopping scheduler: %v", err)
		}

		sink.Stop()

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️ Error shutting down server: %v", err)
		}
	}()

	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func mustRegister(registry *tools.Registry, tool *tools.Tool) {
	if err := registry.Register(tool); err != nil {
		log.Fatalf("❌ Failed to register tool: %v", err)
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
