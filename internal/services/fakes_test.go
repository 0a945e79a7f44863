package services

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/mindhaven/mindhaven-backend/internal/llm"
	"github.com/mindhaven/mindhaven-backend/internal/ml"
	"github.com/mindhaven/mindhaven-backend/internal/models"
)

// fakeMessageRepo is an in-memory MessageRepository for service tests
type fakeMessageRepo struct {
	messages []models.ChatMessage
	failNext error
}

func (f *fakeMessageRepo) Create(ctx context.Context, message *models.ChatMessage) error {
	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeMessageRepo) forUser(userID uuid.UUID, sender string) []models.ChatMessage {
	var out []models.ChatMessage
	for _, m := range f.messages {
		if m.UserID != userID {
			continue
		}
		if sender != "" && m.Sender != sender {
			continue
		}
		out = append(out, m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (f *fakeMessageRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	return capAt(f.forUser(userID, ""), limit), nil
}

func (f *fakeMessageRepo) ListAssistantByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	return capAt(f.forUser(userID, models.SenderAssistant), limit), nil
}

func (f *fakeMessageRepo) LatestAssistantByUser(ctx context.Context, userID uuid.UUID) (*models.ChatMessage, error) {
	msgs := f.forUser(userID, models.SenderAssistant)
	if len(msgs) == 0 {
		return nil, nil
	}
	latest := msgs[len(msgs)-1]
	return &latest, nil
}

func (f *fakeMessageRepo) RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	msgs := f.forUser(userID, "")
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return msgs, nil
}

func (f *fakeMessageRepo) RecentAssistantByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.ChatMessage, error) {
	msgs := f.forUser(userID, models.SenderAssistant)
	if len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	// newest first
	out := make([]models.ChatMessage, 0, len(msgs))
	for i := len(msgs) - 1; i >= 0; i-- {
		out = append(out, msgs[i])
	}
	return out, nil
}

func (f *fakeMessageRepo) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return len(f.forUser(userID, "")), nil
}

func capAt(msgs []models.ChatMessage, limit int) []models.ChatMessage {
	if len(msgs) > limit {
		return msgs[:limit]
	}
	return msgs
}

// fakeCheckinRepo is an in-memory CheckinRepository
type fakeCheckinRepo struct {
	checkins []models.MoodCheckin
}

func (f *fakeCheckinRepo) Create(ctx context.Context, checkin *models.MoodCheckin) error {
	if checkin.ID == uuid.Nil {
		checkin.ID = uuid.New()
	}
	f.checkins = append(f.checkins, *checkin)
	return nil
}

func (f *fakeCheckinRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.MoodCheckin, error) {
	var out []models.MoodCheckin
	for _, c := range f.checkins {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeExerciseRepo is an in-memory ExerciseRepository
type fakeExerciseRepo struct {
	exercises []models.Exercise
}

func (f *fakeExerciseRepo) Create(ctx context.Context, exercise *models.Exercise) error {
	if exercise.ID == uuid.Nil {
		exercise.ID = uuid.New()
	}
	f.exercises = append(f.exercises, *exercise)
	return nil
}

func (f *fakeExerciseRepo) Count(ctx context.Context) (int, error) {
	return len(f.exercises), nil
}

func (f *fakeExerciseRepo) Search(ctx context.Context, query, exerciseType string, limit int) ([]models.Exercise, error) {
	var out []models.Exercise
	for _, e := range f.exercises {
		if exerciseType != "" && e.Type != exerciseType {
			continue
		}
		out = append(out, e)
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeExerciseRepo) ListByTypes(ctx context.Context, types []string, limit int) ([]models.Exercise, error) {
	wanted := make(map[string]bool, len(types))
	for _, t := range types {
		wanted[t] = true
	}
	var out []models.Exercise
	for _, e := range f.exercises {
		if wanted[e.Type] {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// fakeUserRepo backs ChatService prompt personalization
type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if f.users == nil {
		f.users = make(map[uuid.UUID]*models.User)
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	if u, ok := f.users[userID]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

// fakeAnalyzer returns a canned classification or an error
type fakeAnalyzer struct {
	analysis ml.Analysis
	err      error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, text string) (*ml.Analysis, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := f.analysis
	return &out, nil
}

// fakeCompleter returns a canned completion or an error, recording the prompt
type fakeCompleter struct {
	reply      string
	err        error
	lastPrompt []llm.Message
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	f.lastPrompt = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func strPtr(s string) *string     { return &s }
func floatPtr(v float64) *float64 { return &v }
