package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// ContentItem is a static curated content entry
type ContentItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description"`
}

// ListContentExercises returns the curated quick exercise list
func ListContentExercises() fiber.Handler {
	items := []ContentItem{
		{
			ID:          "breath-1",
			Title:       "2-minute breathing exercise",
			Category:    "breathing",
			Description: "Inhale 4s, hold 4s, exhale 6s.",
		},
		{
			ID:          "ground-1",
			Title:       "5-4-3-2-1 grounding",
			Category:    "grounding",
			Description: "Notice 5 things you see, 4 you feel, 3 you hear, 2 you smell, 1 you taste.",
		},
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"items": items})
	}
}

// ListContentGames returns the curated game list
func ListContentGames() fiber.Handler {
	items := []ContentItem{
		{
			ID:          "focus-1",
			Title:       "Focus dots",
			Description: "Tap moving dots in order to gently train focus.",
		},
		{
			ID:          "memory-1",
			Title:       "Memory flip",
			Description: "Match calming image pairs.",
		},
	}

	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"items": items})
	}
}
