package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"rakhadian/hr-ai-platform/internal/config"
	"rakhadian/hr-ai-platform/internal/handlers"
	"rakhadian/hr-ai-platform/internal/middleware"
	"rakhadian/hr-ai-platform/internal/models"
	"rakhadian/hr-ai-platform/internal/repositories"
	"rakhadian/hr-ai-platform/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	bookingRepo := repositories.NewBookingRepository(db)
	policyRepo := repositories.NewPolicyDocumentRepository(db)
	userRepo := repositories.NewUserRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	extractorService := services.NewExtractorService()
	log.Println("✅ Services initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, cfg.Gemini.Model)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize Qdrant-backed policy index
	vectorIndexService, err := services.NewVectorIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		geminiService,
		extractorService,
		cfg.Policy.DocumentPath,
		cfg.Policy.ChunkSize,
		cfg.Policy.ChunkOverlap,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// HR services
	skillService := services.NewSkillService(geminiService)
	hrService := services.NewHRService(
		geminiService,
		skillService,
		extractorService,
		storageService,
		policyRepo,
		cfg.Gemini.MaxRetries,
	)
	technicalService := services.NewTechnicalService(geminiService, cfg.Gemini.MaxRetries)
	log.Println("✅ HR services initialized")

	// AutoSphere services
	bookingService := services.NewBookingService(bookingRepo, geminiService)
	chatService := services.NewChatService(geminiService, vectorIndexService, bookingService, cfg.Policy.TopK)
	log.Println("✅ AutoSphere services initialized")

	// Auth
	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	hrHandler := handlers.NewHRHandler(
		hrService,
		technicalService,
		extractorService,
		cfg.Storage.MaxFileSize,
	)
	chatHandler := handlers.NewChatHandler(chatService, bookingService)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "HR AI Platform API",
		ReadTimeout:  120 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 12,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Auth
	api.Post("/auth/login", authHandler.HandleLogin)

	// HR endpoints (authenticated; policy upload and the technical
	// interview tools are HR Manager only)
	hr := api.Group("/hr", middleware.RequireAuth(authService))
	hr.Post("/cv/evaluate", hrHandler.HandleEvaluateCVs)
	hr.Post("/policy/upload", middleware.RequireRole(models.RoleHRManager), hrHandler.HandleUploadPolicies)
	hr.Post("/policy/ask", hrHandler.HandleAskPolicyQuestion)
	hr.Post("/technical/generate-questions", middleware.RequireRole(models.RoleHRManager), hrHandler.HandleGenerateQuestions)
	hr.Post("/technical/evaluate-answers", middleware.RequireRole(models.RoleHRManager), hrHandler.HandleEvaluateAnswers)

	// AutoSphere endpoints (authenticated)
	autosphere := api.Group("/autosphere", middleware.RequireAuth(authService))
	autosphere.Post("/chat", chatHandler.HandleChat)
	autosphere.Post("/bookings", chatHandler.HandleCreateBooking)
	autosphere.Get("/bookings", chatHandler.HandleSearchBookings)
	autosphere.Get("/bookings/:booking_id", chatHandler.HandleGetBooking)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "HR AI Platform API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/auth/login",
				"POST /api/v1/hr/cv/evaluate",
				"POST /api/v1/hr/policy/upload",
				"POST /api/v1/hr/policy/ask",
				"POST /api/v1/hr/technical/generate-questions",
				"POST /api/v1/hr/technical/evaluate-answers",
				"POST /api/v1/autosphere/chat",
				"POST /api/v1/autosphere/bookings",
				"GET /api/v1/autosphere/bookings",
				"GET /api/v1/autosphere/bookings/:booking_id",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
