package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mindhaven/mindhaven-backend/internal/models"
	"github.com/mindhaven/mindhaven-backend/internal/repository"
)

// EmotionRepository implements repository.EmotionRepository using PostgreSQL
type EmotionRepository struct {
	db *sqlx.DB
}

// NewEmotionRepository creates a new PostgreSQL face-emotion repository
func NewEmotionRepository(db *sqlx.DB) repository.EmotionRepository {
	return &EmotionRepository{db: db}
}

// Create stores a face-emotion detection result
func (r *EmotionRepository) Create(ctx context.Context, emotion *models.FaceEmotion) error {
	if emotion.ID == uuid.Nil {
		emotion.ID = uuid.New()
	}
	if emotion.CreatedAt.IsZero() {
		emotion.CreatedAt = time.Now().UTC()
	}
	if emotion.Scores == nil {
		emotion.Scores = make(models.JSONB)
	}

	query := `
		INSERT INTO face_emotions (id, user_id, emotion, scores, created_at)
		VALUES (:id, :user_id, :emotion, :scores, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, emotion)
	return err
}
