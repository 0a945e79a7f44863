package handlers

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/mindhaven/mindhaven-backend/internal/api/middleware"
	"github.com/mindhaven/mindhaven-backend/internal/ml"
	"github.com/mindhaven/mindhaven-backend/internal/models"
	"github.com/mindhaven/mindhaven-backend/internal/services"
)

// ChatMessageRequest represents an inbound chat message
type ChatMessageRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatMessageResponse represents the assistant's reply with its analysis
type ChatMessageResponse struct {
	Reply          string  `json:"reply"`
	Source         string  `json:"source"`
	SentimentLabel string  `json:"sentiment_label"`
	StressLabel    string  `json:"stress_label"`
	StressScore    float64 `json:"stress_score"`
	RiskFlag       bool    `json:"risk_flag"`
}

// ChatHistoryResponse represents a user's full chat history
type ChatHistoryResponse struct {
	UserID   string               `json:"user_id"`
	Messages []models.ChatMessage `json:"messages"`
}

func toChatResponse(reply *services.ChatReply) ChatMessageResponse {
	return ChatMessageResponse{
		Reply:          reply.Text,
		Source:         reply.Source,
		SentimentLabel: reply.Analysis.SentimentLabel,
		StressLabel:    reply.Analysis.StressLabel,
		StressScore:    reply.Analysis.StressScore,
		RiskFlag:       reply.Analysis.RiskFlag,
	}
}

// SendMessage handles one chat turn
func SendMessage(svc *services.Services, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userContext := middleware.GetUserContext(c)
		if userContext == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		var req ChatMessageRequest
		if err := c.BodyParser(&req); err != nil || req.Message == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Message is required",
			})
		}

		reply, err := svc.Chat.SendMessage(c.Context(), userContext.UserID, req.Message)
		if err != nil {
			log.WithError(err).Error("chat turn failed")
			if errors.Is(err, ml.ErrUnavailable) {
				return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
					"error": "Analysis service unavailable",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to process message",
			})
		}

		return c.JSON(toChatResponse(reply))
	}
}

// GetHistory returns the authenticated user's chat history
func GetHistory(svc *services.Services) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userContext := middleware.GetUserContext(c)
		if userContext == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Not authenticated",
			})
		}

		messages, err := svc.Chat.History(c.Context(), userContext.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(ChatHistoryResponse{
			UserID:   userContext.UserID.String(),
			Messages: messages,
		})
	}
}

// wsChatRequest and wsChatError are the websocket chat frame shapes
type wsChatRequest struct {
	Message string `json:"message"`
}

type wsChatError struct {
	Error string `json:"error"`
}

// ChatSocket serves chat turns over a websocket. Each inbound frame is one
// user message; each outbound frame is the reply with its analysis.
func ChatSocket(svc *services.Services, log *logrus.Logger) func(*websocket.Conn) {
	return func(conn *websocket.Conn) {
		// Cancelled when the socket closes so in-flight classifier and
		// completion calls don't outlive the connection.
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		defer conn.Close()

		userID, ok := conn.Locals("user_id").(uuid.UUID)
		if !ok {
			conn.WriteJSON(wsChatError{Error: "Not authenticated"})
			return
		}

		for {
			var req wsChatRequest
			if err := conn.ReadJSON(&req); err != nil {
				return
			}
			if req.Message == "" {
				conn.WriteJSON(wsChatError{Error: "Message is required"})
				continue
			}

			reply, err := svc.Chat.SendMessage(ctx, userID, req.Message)
			if err != nil {
				log.WithError(err).Error("websocket chat turn failed")
				conn.WriteJSON(wsChatError{Error: "Failed to process message"})
				continue
			}

			if err := conn.WriteJSON(toChatResponse(reply)); err != nil {
				return
			}
		}
	}
}
