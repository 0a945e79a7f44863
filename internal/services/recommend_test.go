package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/mindhaven/mindhaven-backend/internal/models"
)

func TestRecommendExerciseTypes(t *testing.T) {
	tests := []struct {
		name   string
		signal *StressSignal
		want   []string
	}{
		{
			name:   "no signal",
			signal: nil,
			want:   []string{ExerciseBreathing, ExerciseGrounding, ExerciseJournaling},
		},
		{
			name:   "risk flag set",
			signal: &StressSignal{StressScore: 0.1, RiskFlag: true},
			want:   []string{ExerciseBreathing, ExerciseGrounding},
		},
		{
			name:   "high stress at threshold",
			signal: &StressSignal{StressScore: 0.75},
			want:   []string{ExerciseBreathing, ExerciseGrounding},
		},
		{
			name:   "moderate stress",
			signal: &StressSignal{StressScore: 0.5},
			want:   []string{ExerciseGrounding, ExerciseBreathing, ExerciseJournaling},
		},
		{
			name:   "stressed label with low score",
			signal: &StressSignal{StressScore: 0.1, StressLabel: StressLabelStressed},
			want:   []string{ExerciseGrounding, ExerciseBreathing, ExerciseJournaling},
		},
		{
			name:   "calm",
			signal: &StressSignal{StressScore: 0.1, StressLabel: "not_stressed"},
			want:   []string{ExerciseJournaling, ExerciseGrounding, ExerciseBreathing},
		},
		{
			name:   "just below moderate",
			signal: &StressSignal{StressScore: 0.39},
			want:   []string{ExerciseJournaling, ExerciseGrounding, ExerciseBreathing},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RecommendExerciseTypes(tt.signal))
		})
	}
}

func TestRecommendGame_NoSignal(t *testing.T) {
	rec := RecommendGame(nil)
	assert.Equal(t, GameFocus, rec.SuggestedGame)
	assert.Nil(t, rec.StressScore)
	assert.False(t, rec.RiskFlag)
}

func TestRecommendGame_Tiers(t *testing.T) {
	tests := []struct {
		name   string
		signal StressSignal
		want   string
	}{
		{"risk flag", StressSignal{StressScore: 0.2, RiskFlag: true}, GameFocus},
		{"high stress at threshold", StressSignal{StressScore: 0.75}, GameFocus},
		{"moderate stress", StressSignal{StressScore: 0.4}, GameRelax},
		{"low stress", StressSignal{StressScore: 0.39}, GameMemory},
		{"zero stress", StressSignal{}, GameMemory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := RecommendGame(&tt.signal)
			assert.Equal(t, tt.want, rec.SuggestedGame)
			require.NotNil(t, rec.StressScore)
			assert.Equal(t, tt.signal.StressScore, *rec.StressScore)
			assert.Equal(t, tt.signal.RiskFlag, rec.RiskFlag)
			assert.NotEmpty(t, rec.Reason)
		})
	}
}

func TestExerciseTypes_UsesNewestScoredMessage(t *testing.T) {
	userID := uuid.New()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	messages := &fakeMessageRepo{messages: []models.ChatMessage{
		assistantMsg(userID, base, "negative", 0.9),
		{
			// newest message has no score, older scored one wins
			ID:        uuid.New(),
			UserID:    userID,
			Sender:    models.SenderAssistant,
			Text:      "unscored",
			CreatedAt: base.Add(time.Hour),
		},
	}}

	svc := NewRecommendationService(messages)

	types, err := svc.ExerciseTypes(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, []string{ExerciseBreathing, ExerciseGrounding}, types)
}

func TestExerciseTypes_NoMessagesDefaults(t *testing.T) {
	svc := NewRecommendationService(&fakeMessageRepo{})

	types, err := svc.ExerciseTypes(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []string{ExerciseBreathing, ExerciseGrounding, ExerciseJournaling}, types)
}

func TestGame_UsesLatestAssistantMessage(t *testing.T) {
	userID := uuid.New()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	messages := &fakeMessageRepo{messages: []models.ChatMessage{
		assistantMsg(userID, base, "negative", 0.9),
		assistantMsg(userID, base.Add(time.Hour), "neutral", 0.1),
	}}

	svc := NewRecommendationService(messages)

	rec, err := svc.Game(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, GameMemory, rec.SuggestedGame)
	require.NotNil(t, rec.StressScore)
	assert.Equal(t, 0.1, *rec.StressScore)
}

func TestGame_NoMessages(t *testing.T) {
	svc := NewRecommendationService(&fakeMessageRepo{})

	rec, err := svc.Game(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, GameFocus, rec.SuggestedGame)
	assert.Nil(t, rec.StressScore)
}
