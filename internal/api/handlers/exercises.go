package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-backend/internal/api/middleware"
	"github.com/mindhaven/mindhaven-backend/internal/models"
	"github.com/mindhaven/mindhaven-backend/internal/services"
)

// ExerciseListResponse wraps a list of exercises
type ExerciseListResponse struct {
	Items []models.Exercise `json:"items"`
}

// SearchExercises filters the exercise catalog
func SearchExercises(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userContext := middleware.GetUserContext(c)
		if userContext == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		items, err := svc.Exercises.Search(
			c.Context(),
			c.Query("q"),
			c.Query("type"),
			c.QueryInt("limit", 10),
		)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if items == nil {
			items = []models.Exercise{}
		}
		return c.JSON(ExerciseListResponse{Items: items})
	}
}

// RecommendExercises picks exercises matching the user's latest stress signal
func RecommendExercises(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userContext := middleware.GetUserContext(c)
		if userContext == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		items, err := svc.Exercises.Recommend(c.Context(), userContext.UserID, c.QueryInt("limit", 5))
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if items == nil {
			items = []models.Exercise{}
		}
		return c.JSON(ExerciseListResponse{Items: items})
	}
}

// SeedDevExercises inserts the starter exercises. Dev convenience only.
func SeedDevExercises(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userContext := middleware.GetUserContext(c)
		if userContext == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		inserted, err := svc.Exercises.SeedDev(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if inserted == 0 {
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{
				"message": "Exercises already exist, skipping seeding.",
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Seeded example exercises",
			"count":   inserted,
		})
	}
}
