package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/mindhaven/mindhaven-backend/internal/models"
	"github.com/mindhaven/mindhaven-backend/internal/repository"
)

// Exercise types, in the vocabulary the catalog uses
const (
	ExerciseBreathing  = "breathing"
	ExerciseGrounding  = "grounding"
	ExerciseJournaling = "journaling"
)

// Suggested game scenes
const (
	GameFocus  = "focus"
	GameMemory = "memory"
	GameRelax  = "relax"
)

// Stress thresholds used by the recommenders and the dashboard
const (
	// HighStressThreshold marks a single message as high stress
	HighStressThreshold = 0.75
	// ModerateStressThreshold marks a single message as moderately stressed
	ModerateStressThreshold = 0.4
	// HighStressDayThreshold marks a whole day as high stress on its average
	HighStressDayThreshold = 0.7
)

// StressLabelStressed is the classifier's positive stress label
const StressLabelStressed = "stressed"

// StressSignal is the latest classifier output a recommendation keys off.
// A nil signal means the user has no scored assistant messages yet.
type StressSignal struct {
	StressScore float64
	StressLabel string
	RiskFlag    bool
}

// GameRecommendation is the game picker output
type GameRecommendation struct {
	SuggestedGame string   `json:"suggested_game"`
	Reason        string   `json:"reason"`
	StressScore   *float64 `json:"stress_score"`
	RiskFlag      bool     `json:"risk_flag"`
}

// RecommendExerciseTypes orders exercise types by how strongly they are
// suggested for the given signal. First entry is the strongest suggestion.
func RecommendExerciseTypes(signal *StressSignal) []string {
	if signal == nil {
		return []string{ExerciseBreathing, ExerciseGrounding, ExerciseJournaling}
	}

	switch {
	case signal.RiskFlag || signal.StressScore >= HighStressThreshold:
		return []string{ExerciseBreathing, ExerciseGrounding}
	case signal.StressScore >= ModerateStressThreshold || signal.StressLabel == StressLabelStressed:
		return []string{ExerciseGrounding, ExerciseBreathing, ExerciseJournaling}
	default:
		return []string{ExerciseJournaling, ExerciseGrounding, ExerciseBreathing}
	}
}

// RecommendGame picks one game scene for the given signal.
//
// High risk or very high stress gets the guided breathing orb; moderate
// stress gets the relaxation scene; low stress gets the memory cubes.
func RecommendGame(signal *StressSignal) GameRecommendation {
	if signal == nil {
		return GameRecommendation{
			SuggestedGame: GameFocus,
			Reason:        "No stress data yet. Start with a simple focus breathing exercise.",
			StressScore:   nil,
			RiskFlag:      false,
		}
	}

	score := signal.StressScore
	rec := GameRecommendation{StressScore: &score, RiskFlag: signal.RiskFlag}

	switch {
	case signal.RiskFlag || signal.StressScore >= HighStressThreshold:
		rec.SuggestedGame = GameFocus
		rec.Reason = "High stress detected. A guided breathing focus game is suggested."
	case signal.StressScore >= ModerateStressThreshold:
		rec.SuggestedGame = GameRelax
		rec.Reason = "Stress is moderate. A relaxation scene may help you unwind."
	default:
		rec.SuggestedGame = GameMemory
		rec.Reason = "Stress is relatively low. A gentle memory game can support focus."
	}

	return rec
}

// RecommendationService resolves the latest stress signal from the message
// store and applies the pure heuristics above.
type RecommendationService struct {
	messages repository.MessageRepository
}

// NewRecommendationService creates a new recommendation service
func NewRecommendationService(messages repository.MessageRepository) *RecommendationService {
	return &RecommendationService{messages: messages}
}

// ExerciseTypes returns the ordered exercise types for a user's latest signal
func (s *RecommendationService) ExerciseTypes(ctx context.Context, userID uuid.UUID) ([]string, error) {
	signal, err := s.latestSignal(ctx, userID)
	if err != nil {
		return nil, err
	}
	return RecommendExerciseTypes(signal), nil
}

// Game returns the suggested game for a user's latest signal
func (s *RecommendationService) Game(ctx context.Context, userID uuid.UUID) (GameRecommendation, error) {
	latest, err := s.messages.LatestAssistantByUser(ctx, userID)
	if err != nil {
		return GameRecommendation{}, err
	}
	return RecommendGame(signalFromMessage(latest)), nil
}

// latestSignal looks at the few most recent assistant messages and uses the
// newest one carrying a stress score, falling back to the newest overall.
func (s *RecommendationService) latestSignal(ctx context.Context, userID uuid.UUID) (*StressSignal, error) {
	recent, err := s.messages.RecentAssistantByUser(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return nil, nil
	}

	for _, msg := range recent {
		if msg.StressScore != nil {
			return signalFromMessage(&msg), nil
		}
	}
	return signalFromMessage(&recent[0]), nil
}

// signalFromMessage maps a stored assistant message to a StressSignal,
// defaulting absent classifier fields conservatively.
func signalFromMessage(msg *models.ChatMessage) *StressSignal {
	if msg == nil {
		return nil
	}

	signal := &StressSignal{StressLabel: "not_stressed"}
	if msg.StressScore != nil {
		signal.StressScore = *msg.StressScore
	}
	if msg.StressLabel != nil {
		signal.StressLabel = *msg.StressLabel
	}
	if msg.RiskFlag != nil {
		signal.RiskFlag = *msg.RiskFlag
	}
	return signal
}
