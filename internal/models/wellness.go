package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Message sender constants
const (
	SenderUser      = "user"
	SenderAssistant = "assistant"
)

// Mood labels accepted for manual check-ins
var ValidMoods = []string{
	"very_negative",
	"negative",
	"neutral",
	"positive",
	"very_positive",
}

// ChatMessage is one entry in a user's chat history. Classifier fields are
// populated only on assistant-authored rows.
type ChatMessage struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	Sender         string    `json:"sender" db:"sender"`
	Text           string    `json:"text" db:"text"`
	SentimentLabel *string   `json:"sentiment_label,omitempty" db:"sentiment_label"`
	StressLabel    *string   `json:"stress_label,omitempty" db:"stress_label"`
	StressScore    *float64  `json:"stress_score,omitempty" db:"stress_score"`
	RiskFlag       *bool     `json:"risk_flag,omitempty" db:"risk_flag"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// MoodCheckin is a manually self-reported mood entry, independent of chat
type MoodCheckin struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Mood      string    `json:"mood" db:"mood"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Exercise is a guided wellness exercise
type Exercise struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	Title           string         `json:"title" db:"title"`
	Type            string         `json:"type" db:"type"`
	DurationMinutes int            `json:"duration_minutes" db:"duration_minutes"`
	Difficulty      string         `json:"difficulty" db:"difficulty"`
	Tags            pq.StringArray `json:"tags" db:"tags"`
	Description     string         `json:"description" db:"description"`
	Steps           pq.StringArray `json:"steps" db:"steps"`
}

// FaceEmotion is a stored face-emotion detection result
type FaceEmotion struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Emotion   string    `json:"emotion" db:"emotion"`
	Scores    JSONB     `json:"scores" db:"scores"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// DaySummary is one calendar day of aggregated mood data. Derived, never persisted.
type DaySummary struct {
	Date         string  `json:"date"`
	AvgSentiment float64 `json:"avg_sentiment"`
	AvgStress    float64 `json:"avg_stress"`
}

// DashboardSummary is the full per-user dashboard rollup
type DashboardSummary struct {
	UserID         uuid.UUID    `json:"user_id"`
	Days           []DaySummary `json:"days"`
	HighStressDays int          `json:"high_stress_days"`
}

// JSONB type for JSON columns
type JSONB map[string]interface{}

// Value implements driver.Valuer for JSONB
func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner for JSONB
func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSONB)
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("cannot scan %T into JSONB", value)
	}

	return json.Unmarshal(bytes, j)
}
