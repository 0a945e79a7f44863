package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-backend/internal/api/middleware"
	"github.com/mindhaven/mindhaven-backend/internal/services"
)

// GetDashboard returns the per-day mood rollup for the authenticated user
func GetDashboard(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userContext := middleware.GetUserContext(c)
		if userContext == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		summary, err := svc.Dashboard.Summarize(c.Context(), userContext.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(summary)
	}
}

// CreateCheckin records a manual mood check-in
func CreateCheckin(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userContext := middleware.GetUserContext(c)
		if userContext == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		mood := c.Query("mood")
		if mood == "" {
			var req struct {
				Mood string `json:"mood"`
			}
			if err := c.BodyParser(&req); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid request body",
				})
			}
			mood = req.Mood
		}

		if err := svc.Dashboard.Checkin(c.Context(), userContext.UserID, mood); err != nil {
			if err == services.ErrInvalidMood {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
					"error": "Invalid mood value",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Check-in saved",
			"mood":    mood,
		})
	}
}
