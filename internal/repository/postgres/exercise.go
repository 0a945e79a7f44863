package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mindhaven/mindhaven-backend/internal/models"
	"github.com/mindhaven/mindhaven-backend/internal/repository"
)

// ExerciseRepository implements repository.ExerciseRepository using PostgreSQL
type ExerciseRepository struct {
	db *sqlx.DB
}

// NewExerciseRepository creates a new PostgreSQL exercise repository
func NewExerciseRepository(db *sqlx.DB) repository.ExerciseRepository {
	return &ExerciseRepository{db: db}
}

// Create inserts a new exercise into the catalog
func (r *ExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}

	query := `
		INSERT INTO exercises (id, title, type, duration_minutes, difficulty, tags, description, steps)
		VALUES (:id, :title, :type, :duration_minutes, :difficulty, :tags, :description, :steps)
	`

	_, err := r.db.NamedExecContext(ctx, query, exercise)
	return err
}

// Count returns the catalog size
func (r *ExerciseRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM exercises")
	return count, err
}

// Search filters the catalog by optional free text and optional type
func (r *ExerciseRepository) Search(ctx context.Context, query, exerciseType string, limit int) ([]models.Exercise, error) {
	var exercises []models.Exercise

	sql := `
		SELECT id, title, type, duration_minutes, difficulty, tags, description, steps
		FROM exercises
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = '' OR title ILIKE '%' || $2 || '%'
		       OR description ILIKE '%' || $2 || '%'
		       OR EXISTS (SELECT 1 FROM unnest(tags) tag WHERE tag ILIKE '%' || $2 || '%'))
		LIMIT $3
	`

	err := r.db.SelectContext(ctx, &exercises, sql, exerciseType, query, limit)
	if err != nil {
		return nil, err
	}

	return exercises, nil
}

// ListByTypes retrieves exercises matching any of the given types
func (r *ExerciseRepository) ListByTypes(ctx context.Context, types []string, limit int) ([]models.Exercise, error) {
	var exercises []models.Exercise
	query := `
		SELECT id, title, type, duration_minutes, difficulty, tags, description, steps
		FROM exercises
		WHERE type = ANY($1)
		LIMIT $2
	`

	err := r.db.SelectContext(ctx, &exercises, query, pq.Array(types), limit)
	if err != nil {
		return nil, err
	}

	return exercises, nil
}
