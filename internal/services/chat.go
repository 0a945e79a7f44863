package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/mindhaven/mindhaven-backend/internal/auth"
	"github.com/mindhaven/mindhaven-backend/internal/llm"
	"github.com/mindhaven/mindhaven-backend/internal/ml"
	"github.com/mindhaven/mindhaven-backend/internal/models"
	"github.com/mindhaven/mindhaven-backend/internal/repository"
)

// How many stored messages are replayed to the model as conversation history
const historyWindow = 4

// Reply sources
const (
	ReplyGenerated = "generated"
	ReplyFallback  = "fallback"
)

// Analyzer scores free text for sentiment and stress
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*ml.Analysis, error)
}

// ChatReply is the outcome of one chat turn. Source records whether the text
// came from the model or from the local rule-based fallback.
type ChatReply struct {
	Text     string
	Source   string
	Analysis ml.Analysis
}

// ChatService orchestrates one chat turn: persist, classify, complete, persist
type ChatService struct {
	messages  repository.MessageRepository
	users     auth.UserRepository
	analyzer  Analyzer
	completer llm.Completer
	log       *logrus.Logger
}

// NewChatService creates a new chat service
func NewChatService(
	messages repository.MessageRepository,
	users auth.UserRepository,
	analyzer Analyzer,
	completer llm.Completer,
	log *logrus.Logger,
) *ChatService {
	return &ChatService{
		messages:  messages,
		users:     users,
		analyzer:  analyzer,
		completer: completer,
		log:       log,
	}
}

// SendMessage handles one user chat message and produces the assistant reply.
//
// The user message is persisted before classification, so a classifier outage
// never loses what the user wrote. A completion failure downgrades to the
// rule-based fallback; a classifier failure is a hard error.
func (s *ChatService) SendMessage(ctx context.Context, userID uuid.UUID, text string) (*ChatReply, error) {
	userMsg := &models.ChatMessage{
		UserID: userID,
		Sender: models.SenderUser,
		Text:   text,
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to store user message: %w", err)
	}

	analysis, err := s.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to classify message: %w", err)
	}

	var profile *models.User
	if user, err := s.users.GetByID(ctx, userID); err == nil {
		profile = user
	}

	count, err := s.messages.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.messages.RecentByUser(ctx, userID, historyWindow)
	if err != nil {
		return nil, err
	}

	prompt := []llm.Message{{Role: "system", Content: buildSystemPrompt(profile, analysis, count)}}
	for _, msg := range history {
		role := "user"
		if msg.Sender == models.SenderAssistant {
			role = "assistant"
		}
		prompt = append(prompt, llm.Message{Role: role, Content: msg.Text})
	}
	prompt = append(prompt, llm.Message{Role: "user", Content: text})

	reply := ChatReply{Source: ReplyGenerated, Analysis: *analysis}
	reply.Text, err = s.completer.Complete(ctx, prompt)
	if err != nil {
		s.log.WithError(err).Error("completion failed, using fallback reply")
		reply.Text = fallbackReply(analysis)
		reply.Source = ReplyFallback
	}

	assistantMsg := &models.ChatMessage{
		UserID:         userID,
		Sender:         models.SenderAssistant,
		Text:           reply.Text,
		SentimentLabel: &analysis.SentimentLabel,
		StressLabel:    &analysis.StressLabel,
		StressScore:    &analysis.StressScore,
		RiskFlag:       &analysis.RiskFlag,
	}
	if err := s.messages.Create(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to store assistant message: %w", err)
	}

	return &reply, nil
}

// History returns a user's full chat history, oldest first
func (s *ChatService) History(ctx context.Context, userID uuid.UUID) ([]models.ChatMessage, error) {
	return s.messages.ListByUser(ctx, userID, repository.MaxHistoryReturned)
}

// buildSystemPrompt personalizes the assistant with profile details and the
// stress context of the current message.
func buildSystemPrompt(profile *models.User, analysis *ml.Analysis, messageCount int) string {
	displayName := "unknown"
	goal := "not specified"
	language := "en"
	if profile != nil {
		if profile.DisplayName != "" {
			displayName = profile.DisplayName
		}
		if profile.Goal != "" {
			goal = profile.Goal
		}
		if profile.Language != "" {
			language = profile.Language
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a mental wellness assistant.\n\n")
	fmt.Fprintf(&b, "User profile:\n- Name: %s\n- Goal: %s\n- Language: %s\n\n", displayName, goal, language)
	fmt.Fprintf(&b, "Sentiment / stress:\n- Stress score (0-1): %g\n- High risk: %t\n\n", analysis.StressScore, analysis.RiskFlag)
	b.WriteString("Be warm, empathetic, short and practical. " +
		"Do NOT give medical diagnoses. Encourage professional help for severe cases.\n")

	// Early in a conversation, greet and anchor on the user's goal
	if messageCount < 3 {
		if profile != nil && profile.DisplayName != "" {
			fmt.Fprintf(&b, "Greet them as %s. ", profile.DisplayName)
		}
		if profile != nil && profile.Goal != "" {
			fmt.Fprintf(&b, "Support their goal: '%s'. ", profile.Goal)
		}
	}

	switch {
	case analysis.RiskFlag:
		b.WriteString("User is in high stress. Offer grounding exercise + ask softly if they want a quick 3D relaxation game.")
	case analysis.StressScore >= ModerateStressThreshold:
		b.WriteString("User shows signs of stress. Suggest breathing or grounding.")
	default:
		b.WriteString("User is calm. Encourage progress toward their goal.")
	}

	return b.String()
}

// fallbackReply mirrors the original rule-based replies used before the model
// integration. Selected deterministically from the classifier signal.
func fallbackReply(analysis *ml.Analysis) string {
	if analysis.RiskFlag {
		return "I'm really sorry that things feel so intense right now. " +
			"You're not alone. Would you like to try a short grounding exercise?"
	}
	if analysis.StressLabel == StressLabelStressed {
		return "It sounds like you're dealing with a lot. " +
			"Thank you for sharing this with me. " +
			"Can you tell me a bit more about what's making today difficult?"
	}
	return "Thanks for sharing. How are you feeling about this situation right now?"
}
