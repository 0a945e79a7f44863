package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/mindhaven/mindhaven-backend/internal/ml"
	"github.com/mindhaven/mindhaven-backend/internal/models"
)

type fakeEmotionRepo struct {
	records []models.FaceEmotion
}

func (f *fakeEmotionRepo) Create(ctx context.Context, emotion *models.FaceEmotion) error {
	if emotion.ID == uuid.Nil {
		emotion.ID = uuid.New()
	}
	f.records = append(f.records, *emotion)
	return nil
}

type fakeDetector struct {
	result *ml.FaceResult
	err    error
}

func (f *fakeDetector) DetectFaceEmotion(ctx context.Context, filename, contentType string, data []byte) (*ml.FaceResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func TestAnalyzeFace_StoresResult(t *testing.T) {
	userID := uuid.New()
	repo := &fakeEmotionRepo{}
	detector := &fakeDetector{result: &ml.FaceResult{
		Emotion: "happy",
		Scores:  map[string]interface{}{"happy": 0.9},
	}}

	svc := NewEmotionService(detector, repo)

	result, err := svc.AnalyzeFace(context.Background(), userID, "face.jpg", "image/jpeg", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "happy", result.Emotion)

	require.Len(t, repo.records, 1)
	assert.Equal(t, userID, repo.records[0].UserID)
	assert.Equal(t, "happy", repo.records[0].Emotion)
	assert.Equal(t, 0.9, repo.records[0].Scores["happy"])
}

func TestAnalyzeFace_DetectorFailureNotStored(t *testing.T) {
	repo := &fakeEmotionRepo{}
	detector := &fakeDetector{err: ml.ErrUnavailable}

	svc := NewEmotionService(detector, repo)

	result, err := svc.AnalyzeFace(context.Background(), uuid.New(), "face.jpg", "image/jpeg", []byte("img"))
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ml.ErrUnavailable)
	assert.Empty(t, repo.records)
}
