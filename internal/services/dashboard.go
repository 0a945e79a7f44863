package services

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/mindhaven/mindhaven-backend/internal/models"
	"github.com/mindhaven/mindhaven-backend/internal/repository"
)

// ErrInvalidMood is returned when a check-in mood label is not recognized
var ErrInvalidMood = errors.New("invalid mood value")

// sentimentScores maps the classifier's 4-point sentiment labels onto [-1, 1].
// Unknown labels score 0.
var sentimentScores = map[string]float64{
	"very_negative": -1.0,
	"negative":      -0.5,
	"neutral":       0.0,
	"positive":      1.0,
}

// moodScores maps the 5-point manual check-in labels onto [-1, 1].
// Deliberately a different scale than the model output; both feed the same
// per-day average. See DESIGN.md before changing either mapping.
var moodScores = map[string]float64{
	"very_negative": -1.0,
	"negative":      -0.5,
	"neutral":       0.0,
	"positive":      0.5,
	"very_positive": 1.0,
}

// DashboardService reduces chat history and check-ins into daily mood rollups
type DashboardService struct {
	messages repository.MessageRepository
	checkins repository.CheckinRepository
	log      *logrus.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(messages repository.MessageRepository, checkins repository.CheckinRepository, log *logrus.Logger) *DashboardService {
	return &DashboardService{
		messages: messages,
		checkins: checkins,
		log:      log,
	}
}

// Summarize computes the per-day sentiment/stress rollup for one user.
//
// Assistant messages contribute a sentiment sample and a stress sample to
// their UTC calendar day; check-ins contribute a sentiment sample only. A day
// appears in the output only when it has at least one stress sample, so
// check-in-only days are dropped. Records without a usable timestamp are
// skipped, never surfaced as errors.
func (s *DashboardService) Summarize(ctx context.Context, userID uuid.UUID) (*models.DashboardSummary, error) {
	messages, err := s.messages.ListAssistantByUser(ctx, userID, repository.MaxMessagesScanned)
	if err != nil {
		return nil, err
	}

	checkins, err := s.checkins.ListByUser(ctx, userID, repository.MaxCheckinsScanned)
	if err != nil {
		return nil, err
	}

	perDaySentiment := make(map[string][]float64)
	perDayStress := make(map[string][]float64)

	for _, msg := range messages {
		if msg.CreatedAt.IsZero() {
			s.log.WithField("message_id", msg.ID).Warn("skipping message without timestamp")
			continue
		}

		day := msg.CreatedAt.UTC().Format("2006-01-02")

		label := "neutral"
		if msg.SentimentLabel != nil {
			label = *msg.SentimentLabel
		}
		perDaySentiment[day] = append(perDaySentiment[day], sentimentScores[label])

		var stress float64
		if msg.StressScore != nil {
			stress = *msg.StressScore
		}
		perDayStress[day] = append(perDayStress[day], stress)
	}

	for _, checkin := range checkins {
		if checkin.CreatedAt.IsZero() {
			s.log.WithField("checkin_id", checkin.ID).Warn("skipping check-in without timestamp")
			continue
		}

		day := checkin.CreatedAt.UTC().Format("2006-01-02")
		perDaySentiment[day] = append(perDaySentiment[day], moodScores[checkin.Mood])
	}

	days := make([]models.DaySummary, 0, len(perDaySentiment))
	highStressDays := 0

	for day, sentiments := range perDaySentiment {
		stresses := perDayStress[day]
		if len(stresses) == 0 {
			// Check-ins alone don't make a dashboard day
			continue
		}

		avgStress := mean(stresses)
		if avgStress >= HighStressDayThreshold {
			highStressDays++
		}

		days = append(days, models.DaySummary{
			Date:         day,
			AvgSentiment: mean(sentiments),
			AvgStress:    avgStress,
		})
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Date < days[j].Date })

	return &models.DashboardSummary{
		UserID:         userID,
		Days:           days,
		HighStressDays: highStressDays,
	}, nil
}

// Checkin records a manual mood check-in
func (s *DashboardService) Checkin(ctx context.Context, userID uuid.UUID, mood string) error {
	if _, ok := moodScores[mood]; !ok {
		return ErrInvalidMood
	}

	return s.checkins.Create(ctx, &models.MoodCheckin{
		UserID: userID,
		Mood:   mood,
	})
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
