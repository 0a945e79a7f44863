package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/mindhaven/mindhaven-backend/internal/models"
)

// Practical caps on how much history a single aggregation will scan.
const (
	MaxMessagesScanned = 2000
	MaxCheckinsScanned = 1000
	MaxHistoryReturned = 500
)

// MessageRepository defines the chat message store surface
type MessageRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	// ListByUser returns all messages for a user, ascending by creation time.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error)
	// ListAssistantByUser returns assistant-authored messages only, ascending.
	ListAssistantByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error)
	// LatestAssistantByUser returns the newest assistant message, or nil when
	// the user has no assistant messages yet.
	LatestAssistantByUser(ctx context.Context, userID uuid.UUID) (*models.ChatMessage, error)
	// RecentByUser returns the newest messages for a user, ascending within the window.
	RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error)
	// RecentAssistantByUser returns the newest assistant messages, newest first.
	RecentAssistantByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error)
	CountByUser(ctx context.Context, userID uuid.UUID) (int, error)
}

// CheckinRepository defines the mood check-in store surface
type CheckinRepository interface {
	Create(ctx context.Context, checkin *models.MoodCheckin) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.MoodCheckin, error)
}

// ExerciseRepository defines the exercise catalog surface
type ExerciseRepository interface {
	Create(ctx context.Context, exercise *models.Exercise) error
	Count(ctx context.Context) (int, error)
	// Search filters by optional free text (title/description/tags) and optional type.
	Search(ctx context.Context, query, exerciseType string, limit int) ([]models.Exercise, error)
	ListByTypes(ctx context.Context, types []string, limit int) ([]models.Exercise, error)
}

// EmotionRepository defines the face-emotion result store surface
type EmotionRepository interface {
	Create(ctx context.Context, emotion *models.FaceEmotion) error
}
