package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
	"github.com/mindhaven/mindhaven-backend/internal/api/handlers"
	"github.com/mindhaven/mindhaven-backend/internal/api/middleware"
	"github.com/mindhaven/mindhaven-backend/internal/auth"
	"github.com/mindhaven/mindhaven-backend/internal/services"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, svc *services.Services, authService *auth.Service, log *logrus.Logger) {
	api := app.Group("/api/v1")

	// ========================================
	// Public routes (no authentication needed)
	// ========================================

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "mindhaven-backend",
		})
	})

	authGroup := api.Group("/auth")
	authGroup.Post("/login", handlers.Login(authService, log))
	authGroup.Post("/signup", handlers.Signup(authService, log))
	authGroup.Post("/refresh", handlers.RefreshToken(authService))
	authGroup.Post("/logout", middleware.AuthRequired(authService), handlers.Logout(authService, log))

	// Curated content needs no account
	api.Get("/content/exercises", handlers.ListContentExercises())
	api.Get("/content/games", handlers.ListContentGames())

	// ========================================
	// Protected routes (authentication required)
	// ========================================

	protected := api.Group("", middleware.AuthRequired(authService))

	// Account
	protected.Get("/auth/me", handlers.GetCurrentUser(authService))
	protected.Put("/auth/password", handlers.ChangePassword(authService))
	protected.Get("/profile/me", handlers.GetProfile(authService))
	protected.Put("/profile/me", handlers.UpdateProfile(authService))

	// Chat
	protected.Post("/chat/message", handlers.SendMessage(svc, log))
	protected.Get("/chat/history/me", handlers.GetHistory(svc))

	// Dashboard and check-ins
	protected.Get("/dashboard/summary/me", handlers.GetDashboard(svc))
	protected.Post("/dashboard/checkin", handlers.CreateCheckin(svc))

	// Exercises
	protected.Get("/exercises/search", handlers.SearchExercises(svc))
	protected.Get("/exercises/recommend", handlers.RecommendExercises(svc))
	protected.Post("/exercises/seed-dev", handlers.SeedDevExercises(svc))

	// Games
	protected.Get("/games/recommend", handlers.RecommendGame(svc))

	// Face emotion
	protected.Post("/emotion/face", handlers.AnalyzeFace(svc, log))

	// ========================================
	// WebSocket routes (with auth)
	// ========================================

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			token := c.Query("token")
			if token == "" {
				token = auth.ExtractTokenFromBearer(c.Get("Authorization"))
			}

			if token != "" {
				user, _, err := authService.ValidateAccessToken(c.Context(), token)
				if err == nil {
					c.Locals("user_id", user.ID)
					c.Locals("allowed", true)
					return c.Next()
				}
			}

			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required for WebSocket",
			})
		}
		return fiber.ErrUpgradeRequired
	})

	app.Get("/ws/chat", websocket.New(handlers.ChatSocket(svc, log)))
}
