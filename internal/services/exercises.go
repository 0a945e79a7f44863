package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/mindhaven/mindhaven-backend/internal/models"
	"github.com/mindhaven/mindhaven-backend/internal/repository"
)

// Default limits for exercise queries
const (
	defaultSearchLimit    = 10
	defaultRecommendLimit = 5
)

// ExerciseService serves the exercise catalog and stress-driven picks
type ExerciseService struct {
	exercises repository.ExerciseRepository
	recommend *RecommendationService
}

// NewExerciseService creates a new exercise service
func NewExerciseService(exercises repository.ExerciseRepository, recommend *RecommendationService) *ExerciseService {
	return &ExerciseService{
		exercises: exercises,
		recommend: recommend,
	}
}

// Search filters the catalog by optional free text and type
func (s *ExerciseService) Search(ctx context.Context, query, exerciseType string, limit int) ([]models.Exercise, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	return s.exercises.Search(ctx, query, exerciseType, limit)
}

// Recommend picks exercises matching the user's latest stress signal
func (s *ExerciseService) Recommend(ctx context.Context, userID uuid.UUID, limit int) ([]models.Exercise, error) {
	if limit <= 0 {
		limit = defaultRecommendLimit
	}

	types, err := s.recommend.ExerciseTypes(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.exercises.ListByTypes(ctx, types, limit)
}

// SeedDev inserts the starter exercises if the catalog is empty.
// Returns the number of exercises inserted (zero when already seeded).
func (s *ExerciseService) SeedDev(ctx context.Context) (int, error) {
	count, err := s.exercises.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for i := range starterExercises {
		exercise := starterExercises[i]
		exercise.ID = uuid.New()
		if err := s.exercises.Create(ctx, &exercise); err != nil {
			return 0, err
		}
	}

	return len(starterExercises), nil
}

var starterExercises = []models.Exercise{
	{
		Title:           "Box breathing (4-4-4-4)",
		Type:            ExerciseBreathing,
		DurationMinutes: 5,
		Difficulty:      "easy",
		Tags:            []string{"anxiety", "panic", "sleep"},
		Description:     "A simple paced breathing technique to calm your nervous system.",
		Steps: []string{
			"Sit comfortably with your feet on the floor.",
			"Inhale gently through your nose for 4 seconds.",
			"Hold your breath for 4 seconds.",
			"Exhale slowly through your mouth for 4 seconds.",
			"Pause for 4 seconds before the next inhale.",
			"Repeat for 4-6 cycles, staying aware of the air moving in and out.",
		},
	},
	{
		Title:           "5-4-3-2-1 grounding",
		Type:            ExerciseGrounding,
		DurationMinutes: 7,
		Difficulty:      "easy",
		Tags:            []string{"anxiety", "dissociation", "panic"},
		Description:     "Use your senses to bring yourself back to the present moment.",
		Steps: []string{
			"Look around and name 5 things you can see.",
			"Name 4 things you can feel (e.g., your feet on the floor).",
			"Name 3 things you can hear.",
			"Name 2 things you can smell (or recall smells you like).",
			"Name 1 thing you can taste or a taste you enjoy.",
			"Take a slow breath and notice how your body feels now.",
		},
	},
	{
		Title:           "Evening reflection journaling",
		Type:            ExerciseJournaling,
		DurationMinutes: 10,
		Difficulty:      "medium",
		Tags:            []string{"stress", "reflection", "sleep"},
		Description:     "Process your day and prepare for rest with a short writing routine.",
		Steps: []string{
			"Write down three things that happened today (small or big).",
			"For each one, note how it made you feel.",
			"Write one thing you are grateful for, even if it's small.",
			"Write one thing you would like to let go of before sleep.",
			"Close with one kind sentence to yourself (e.g., \"I did my best today\").",
		},
	},
}
