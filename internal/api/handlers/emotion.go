package handlers

import (
	"errors"
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/mindhaven/mindhaven-backend/internal/api/middleware"
	"github.com/mindhaven/mindhaven-backend/internal/ml"
	"github.com/mindhaven/mindhaven-backend/internal/services"
)

// AnalyzeFace forwards an uploaded face image to the ML service and stores the result
func AnalyzeFace(svc *services.Services, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userContext := middleware.GetUserContext(c)
		if userContext == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Image file is required",
			})
		}

		file, err := fileHeader.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to read image file",
			})
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Failed to read image file",
			})
		}

		filename := fileHeader.Filename
		if filename == "" {
			filename = "face.jpg"
		}
		contentType := fileHeader.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}

		result, err := svc.Emotion.AnalyzeFace(c.Context(), userContext.UserID, filename, contentType, data)
		if err != nil {
			log.WithError(err).Error("face emotion analysis failed")
			if errors.Is(err, ml.ErrUnavailable) {
				return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
					"error": "ML service error",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to analyze image",
			})
		}

		return c.JSON(result)
	}
}
