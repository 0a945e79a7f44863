package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/mindhaven/mindhaven-backend/internal/models"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func assistantMsg(userID uuid.UUID, at time.Time, sentiment string, stress float64) models.ChatMessage {
	return models.ChatMessage{
		ID:             uuid.New(),
		UserID:         userID,
		Sender:         models.SenderAssistant,
		Text:           "reply",
		SentimentLabel: strPtr(sentiment),
		StressScore:    floatPtr(stress),
		CreatedAt:      at,
	}
}

func TestSummarize_AveragesOneDay(t *testing.T) {
	userID := uuid.New()
	day := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	messages := &fakeMessageRepo{messages: []models.ChatMessage{
		assistantMsg(userID, day, "positive", 0.2),
		assistantMsg(userID, day.Add(2*time.Hour), "negative", 0.8),
	}}

	svc := NewDashboardService(messages, &fakeCheckinRepo{}, testLogger())

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, summary.Days, 1)

	assert.Equal(t, "2024-01-01", summary.Days[0].Date)
	assert.InDelta(t, 0.25, summary.Days[0].AvgSentiment, 1e-9) // (1.0 + -0.5) / 2
	assert.InDelta(t, 0.5, summary.Days[0].AvgStress, 1e-9)
	assert.Equal(t, 0, summary.HighStressDays)
}

func TestSummarize_GroupsByUTCDay(t *testing.T) {
	userID := uuid.New()
	loc := time.FixedZone("UTC+9", 9*3600)

	messages := &fakeMessageRepo{messages: []models.ChatMessage{
		// 2024-01-02 07:00 local is 2024-01-01 22:00 UTC
		assistantMsg(userID, time.Date(2024, 1, 2, 7, 0, 0, 0, loc), "neutral", 0.1),
		assistantMsg(userID, time.Date(2024, 1, 2, 12, 0, 0, 0, loc), "neutral", 0.3),
	}}

	svc := NewDashboardService(messages, &fakeCheckinRepo{}, testLogger())

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, summary.Days, 2)

	assert.Equal(t, "2024-01-01", summary.Days[0].Date)
	assert.Equal(t, "2024-01-02", summary.Days[1].Date)
}

func TestSummarize_CheckinOnlyDayDropped(t *testing.T) {
	userID := uuid.New()

	checkins := &fakeCheckinRepo{checkins: []models.MoodCheckin{
		{
			ID:        uuid.New(),
			UserID:    userID,
			Mood:      "positive",
			CreatedAt: time.Date(2024, 1, 5, 9, 0, 0, 0, time.UTC),
		},
	}}

	svc := NewDashboardService(&fakeMessageRepo{}, checkins, testLogger())

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, summary.Days)
	assert.Equal(t, 0, summary.HighStressDays)
}

func TestSummarize_CheckinBlendsIntoSentiment(t *testing.T) {
	userID := uuid.New()
	day := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	messages := &fakeMessageRepo{messages: []models.ChatMessage{
		assistantMsg(userID, day, "positive", 0.2),
	}}
	checkins := &fakeCheckinRepo{checkins: []models.MoodCheckin{
		{ID: uuid.New(), UserID: userID, Mood: "very_positive", CreatedAt: day.Add(time.Hour)},
	}}

	svc := NewDashboardService(messages, checkins, testLogger())

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, summary.Days, 1)

	// message "positive" is 1.0, check-in "very_positive" is 1.0
	assert.InDelta(t, 1.0, summary.Days[0].AvgSentiment, 1e-9)
	// check-in adds no stress sample
	assert.InDelta(t, 0.2, summary.Days[0].AvgStress, 1e-9)
}

func TestSummarize_HighStressDayBoundary(t *testing.T) {
	userID := uuid.New()

	messages := &fakeMessageRepo{messages: []models.ChatMessage{
		// exactly at the threshold counts
		assistantMsg(userID, time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC), "negative", 0.7),
		// just below does not
		assistantMsg(userID, time.Date(2024, 2, 2, 9, 0, 0, 0, time.UTC), "negative", 0.69),
		assistantMsg(userID, time.Date(2024, 2, 3, 9, 0, 0, 0, time.UTC), "very_negative", 0.9),
	}}

	svc := NewDashboardService(messages, &fakeCheckinRepo{}, testLogger())

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, summary.Days, 3)
	assert.Equal(t, 2, summary.HighStressDays)
}

func TestSummarize_MissingClassifierFieldsScoreNeutral(t *testing.T) {
	userID := uuid.New()

	messages := &fakeMessageRepo{messages: []models.ChatMessage{
		{
			ID:        uuid.New(),
			UserID:    userID,
			Sender:    models.SenderAssistant,
			Text:      "unscored reply",
			CreatedAt: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
		},
	}}

	svc := NewDashboardService(messages, &fakeCheckinRepo{}, testLogger())

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, summary.Days, 1)
	assert.Equal(t, 0.0, summary.Days[0].AvgSentiment)
	assert.Equal(t, 0.0, summary.Days[0].AvgStress)
}

func TestSummarize_SkipsRecordsWithoutTimestamp(t *testing.T) {
	userID := uuid.New()

	messages := &fakeMessageRepo{messages: []models.ChatMessage{
		{
			ID:             uuid.New(),
			UserID:         userID,
			Sender:         models.SenderAssistant,
			SentimentLabel: strPtr("negative"),
			StressScore:    floatPtr(0.9),
			// zero CreatedAt
		},
		assistantMsg(userID, time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC), "neutral", 0.1),
	}}

	svc := NewDashboardService(messages, &fakeCheckinRepo{}, testLogger())

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, summary.Days, 1)
	assert.Equal(t, "2024-05-01", summary.Days[0].Date)
}

func TestSummarize_DaysSortedAscending(t *testing.T) {
	userID := uuid.New()

	messages := &fakeMessageRepo{messages: []models.ChatMessage{
		assistantMsg(userID, time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC), "neutral", 0.1),
		assistantMsg(userID, time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC), "neutral", 0.1),
		assistantMsg(userID, time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC), "neutral", 0.1),
	}}

	svc := NewDashboardService(messages, &fakeCheckinRepo{}, testLogger())

	summary, err := svc.Summarize(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, summary.Days, 3)
	assert.Equal(t, "2024-06-01", summary.Days[0].Date)
	assert.Equal(t, "2024-06-02", summary.Days[1].Date)
	assert.Equal(t, "2024-06-03", summary.Days[2].Date)
}

func TestCheckin_ValidMood(t *testing.T) {
	userID := uuid.New()
	checkins := &fakeCheckinRepo{}
	svc := NewDashboardService(&fakeMessageRepo{}, checkins, testLogger())

	err := svc.Checkin(context.Background(), userID, "positive")
	require.NoError(t, err)
	require.Len(t, checkins.checkins, 1)
	assert.Equal(t, userID, checkins.checkins[0].UserID)
	assert.Equal(t, "positive", checkins.checkins[0].Mood)
}

func TestCheckin_InvalidMood(t *testing.T) {
	svc := NewDashboardService(&fakeMessageRepo{}, &fakeCheckinRepo{}, testLogger())

	err := svc.Checkin(context.Background(), uuid.New(), "ecstatic")
	assert.ErrorIs(t, err, ErrInvalidMood)
}
