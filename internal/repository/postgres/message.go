package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mindhaven/mindhaven-backend/internal/models"
	"github.com/mindhaven/mindhaven-backend/internal/repository"
)

// MessageRepository implements repository.MessageRepository using PostgreSQL
type MessageRepository struct {
	db *sqlx.DB
}

// NewMessageRepository creates a new PostgreSQL message repository
func NewMessageRepository(db *sqlx.DB) repository.MessageRepository {
	return &MessageRepository{db: db}
}

// Create appends a new chat message
func (r *MessageRepository) Create(ctx context.Context, message *models.ChatMessage) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO chat_messages (id, user_id, sender, text, sentiment_label, stress_label, stress_score, risk_flag, created_at)
		VALUES (:id, :user_id, :sender, :text, :sentiment_label, :stress_label, :stress_score, :risk_flag, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, message)
	return err
}

// ListByUser retrieves all messages for a user, ascending by creation time
func (r *MessageRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	query := `
		SELECT id, user_id, sender, text, sentiment_label, stress_label, stress_score, risk_flag, created_at
		FROM chat_messages
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT $2
	`

	err := r.db.SelectContext(ctx, &messages, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// ListAssistantByUser retrieves assistant-authored messages only, ascending
func (r *MessageRepository) ListAssistantByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	query := `
		SELECT id, user_id, sender, text, sentiment_label, stress_label, stress_score, risk_flag, created_at
		FROM chat_messages
		WHERE user_id = $1 AND sender = $2
		ORDER BY created_at ASC
		LIMIT $3
	`

	err := r.db.SelectContext(ctx, &messages, query, userID, models.SenderAssistant, limit)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// LatestAssistantByUser retrieves the newest assistant message for a user
func (r *MessageRepository) LatestAssistantByUser(ctx context.Context, userID uuid.UUID) (*models.ChatMessage, error) {
	var message models.ChatMessage
	query := `
		SELECT id, user_id, sender, text, sentiment_label, stress_label, stress_score, risk_flag, created_at
		FROM chat_messages
		WHERE user_id = $1 AND sender = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	err := r.db.GetContext(ctx, &message, query, userID, models.SenderAssistant)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return &message, nil
}

// RecentAssistantByUser retrieves the newest assistant messages, newest first
func (r *MessageRepository) RecentAssistantByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	query := `
		SELECT id, user_id, sender, text, sentiment_label, stress_label, stress_score, risk_flag, created_at
		FROM chat_messages
		WHERE user_id = $1 AND sender = $2
		ORDER BY created_at DESC
		LIMIT $3
	`

	err := r.db.SelectContext(ctx, &messages, query, userID, models.SenderAssistant, limit)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// RecentByUser retrieves the newest messages, returned ascending within the window
func (r *MessageRepository) RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	query := `
		SELECT * FROM (
			SELECT id, user_id, sender, text, sentiment_label, stress_label, stress_score, risk_flag, created_at
			FROM chat_messages
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
		) recent
		ORDER BY created_at ASC
	`

	err := r.db.SelectContext(ctx, &messages, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

// CountByUser counts all messages for a user
func (r *MessageRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM chat_messages WHERE user_id = $1", userID)
	return count, err
}
