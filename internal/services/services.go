package services

import (
	"github.com/sirupsen/logrus"
	"github.com/mindhaven/mindhaven-backend/internal/auth"
	"github.com/mindhaven/mindhaven-backend/internal/llm"
	"github.com/mindhaven/mindhaven-backend/internal/repository"
)

// Services holds all service instances
type Services struct {
	Chat      *ChatService
	Dashboard *DashboardService
	Recommend *RecommendationService
	Exercises *ExerciseService
	Emotion   *EmotionService
}

// Deps carries everything the services need
type Deps struct {
	Messages  repository.MessageRepository
	Checkins  repository.CheckinRepository
	Exercises repository.ExerciseRepository
	Emotions  repository.EmotionRepository
	Users     auth.UserRepository
	Analyzer  Analyzer
	Detector  FaceDetector
	Completer llm.Completer
	Log       *logrus.Logger
}

// NewServices creates all service instances
func NewServices(deps Deps) *Services {
	recommend := NewRecommendationService(deps.Messages)

	return &Services{
		Chat:      NewChatService(deps.Messages, deps.Users, deps.Analyzer, deps.Completer, deps.Log),
		Dashboard: NewDashboardService(deps.Messages, deps.Checkins, deps.Log),
		Recommend: recommend,
		Exercises: NewExerciseService(deps.Exercises, recommend),
		Emotion:   NewEmotionService(deps.Detector, deps.Emotions),
	}
}
