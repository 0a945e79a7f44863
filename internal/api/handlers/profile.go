package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/mindhaven/mindhaven-backend/internal/api/middleware"
	"github.com/mindhaven/mindhaven-backend/internal/auth"
)

// GetProfile returns the current user's profile
func GetProfile(authService *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userContext := middleware.GetUserContext(c)
		if userContext == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		user, err := authService.GetUser(c.Context(), userContext.UserID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}

		return c.JSON(toUserResponse(user))
	}
}

// UpdateProfile updates the current user's profile. Omitted fields are left unchanged.
func UpdateProfile(authService *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userContext := middleware.GetUserContext(c)
		if userContext == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		var req struct {
			DisplayName *string `json:"display_name"`
			Language    *string `json:"language"`
			Timezone    *string `json:"timezone"`
			Goal        *string `json:"goal"`
			ShowStreaks *bool   `json:"show_streaks"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		user, err := authService.UpdateProfile(c.Context(), userContext.UserID, auth.ProfileUpdate{
			DisplayName: req.DisplayName,
			Language:    req.Language,
			Timezone:    req.Timezone,
			Goal:        req.Goal,
			ShowStreaks: req.ShowStreaks,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update profile",
			})
		}

		return c.JSON(toUserResponse(user))
	}
}
