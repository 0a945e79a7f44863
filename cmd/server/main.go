package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/mindhaven/mindhaven-backend/internal/api"
	"github.com/mindhaven/mindhaven-backend/internal/auth"
	"github.com/mindhaven/mindhaven-backend/internal/config"
	"github.com/mindhaven/mindhaven-backend/internal/database"
	"github.com/mindhaven/mindhaven-backend/internal/llm"
	"github.com/mindhaven/mindhaven-backend/internal/ml"
	"github.com/mindhaven/mindhaven-backend/internal/repository/postgres"
	"github.com/mindhaven/mindhaven-backend/internal/services"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("failed to load configuration")
	}

	// Connect to database
	db, err := database.NewConnection(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.Database); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	// Initialize Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "MindHaven Backend",
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     getOrigins(),
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize repositories
	messageRepo := postgres.NewMessageRepository(db.DB)
	checkinRepo := postgres.NewCheckinRepository(db.DB)
	exerciseRepo := postgres.NewExerciseRepository(db.DB)
	emotionRepo := postgres.NewEmotionRepository(db.DB)
	userRepo := postgres.NewUserRepository(db.DB)
	sessionRepo := postgres.NewUserSessionRepository(db.DB)

	// Initialize auth service
	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = "change-me-in-production" // Default for development
		log.Warn("using default JWT secret, set MINDHAVEN_JWT_SECRET in production")
	}
	authService := auth.NewService(userRepo, sessionRepo, jwtSecret, log)

	// Initialize external collaborators
	mlClient := ml.NewClient(cfg.MLService)

	llmClient, err := llm.NewClient(cfg.LLM)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize chat-completion client")
	}

	// Initialize services
	svc := services.NewServices(services.Deps{
		Messages:  messageRepo,
		Checkins:  checkinRepo,
		Exercises: exerciseRepo,
		Emotions:  emotionRepo,
		Users:     userRepo,
		Analyzer:  mlClient,
		Detector:  mlClient,
		Completer: llmClient,
		Log:       log,
	})

	// Setup routes with authentication
	api.SetupRoutes(app, svc, authService, log)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.WithField("addr", addr).Info("MindHaven backend starting")
	if err := app.Listen(addr); err != nil {
		log.WithError(err).Fatal("failed to start server")
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

func getOrigins() string {
	origins := os.Getenv("MINDHAVEN_CORS_ORIGINS")
	if origins == "" {
		return "http://localhost:5173,http://localhost:3000"
	}
	return origins
}
