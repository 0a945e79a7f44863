package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/mindhaven/mindhaven-backend/internal/ml"
	"github.com/mindhaven/mindhaven-backend/internal/models"
	"github.com/mindhaven/mindhaven-backend/internal/repository"
)

// FaceDetector runs face-emotion detection on an uploaded image
type FaceDetector interface {
	DetectFaceEmotion(ctx context.Context, filename, contentType string, data []byte) (*ml.FaceResult, error)
}

// EmotionService forwards face images to the detector and records results
type EmotionService struct {
	detector FaceDetector
	emotions repository.EmotionRepository
}

// NewEmotionService creates a new emotion service
func NewEmotionService(detector FaceDetector, emotions repository.EmotionRepository) *EmotionService {
	return &EmotionService{
		detector: detector,
		emotions: emotions,
	}
}

// AnalyzeFace detects the dominant emotion in a face image and stores the result
func (s *EmotionService) AnalyzeFace(ctx context.Context, userID uuid.UUID, filename, contentType string, data []byte) (*ml.FaceResult, error) {
	result, err := s.detector.DetectFaceEmotion(ctx, filename, contentType, data)
	if err != nil {
		return nil, err
	}

	record := &models.FaceEmotion{
		UserID:  userID,
		Emotion: result.Emotion,
		Scores:  models.JSONB(result.Scores),
	}
	if err := s.emotions.Create(ctx, record); err != nil {
		return nil, err
	}

	return result, nil
}
