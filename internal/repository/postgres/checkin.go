package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mindhaven/mindhaven-backend/internal/models"
	"github.com/mindhaven/mindhaven-backend/internal/repository"
)

// CheckinRepository implements repository.CheckinRepository using PostgreSQL
type CheckinRepository struct {
	db *sqlx.DB
}

// NewCheckinRepository creates a new PostgreSQL check-in repository
func NewCheckinRepository(db *sqlx.DB) repository.CheckinRepository {
	return &CheckinRepository{db: db}
}

// Create appends a new mood check-in
func (r *CheckinRepository) Create(ctx context.Context, checkin *models.MoodCheckin) error {
	if checkin.ID == uuid.Nil {
		checkin.ID = uuid.New()
	}
	if checkin.CreatedAt.IsZero() {
		checkin.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO mood_checkins (id, user_id, mood, created_at)
		VALUES (:id, :user_id, :mood, :created_at)
	`

	_, err := r.db.NamedExecContext(ctx, query, checkin)
	return err
}

// ListByUser retrieves check-ins for a user, ascending by creation time
func (r *CheckinRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.MoodCheckin, error) {
	var checkins []models.MoodCheckin
	query := `
		SELECT id, user_id, mood, created_at
		FROM mood_checkins
		WHERE user_id = $1
		ORDER BY created_at ASC
		LIMIT $2
	`

	err := r.db.SelectContext(ctx, &checkins, query, userID, limit)
	if err != nil {
		return nil, err
	}

	return checkins, nil
}
