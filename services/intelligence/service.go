// Package intelligence is the AI sports assistant: chat with short-lived
// history plus workout plan and career roadmap generators.
package intelligence

import (
	"context"
	"strings"
	"time"

	"athletetech/models"
	"athletetech/utils"

	"go.uber.org/zap"
)

const (
	// ChatTTL is how long an idle conversation is remembered.
	ChatTTL = 30 * time.Minute
	// maxHistory is the number of stored messages, user and model turns together.
	maxHistory = 20
)

type AssistantService interface {
	Chat(ctx context.Context, userID, message string) (*models.AIResponse, error)
	ClearChat(ctx context.Context, userID string) error
	WorkoutPlan(ctx context.Context, req models.WorkoutPlanRequest) (*models.AIResponse, error)
	CareerRoadmap(ctx context.Context, req models.CareerRoadmapRequest) (*models.AIResponse, error)
}

type DefaultAssistantService struct {
	gen   Generator
	store ContextStore
	now   func() time.Time
}

func NewDefaultAssistantService(gen Generator, store ContextStore) *DefaultAssistantService {
	return &DefaultAssistantService{gen: gen, store: store, now: time.Now}
}

func (s *DefaultAssistantService) Chat(ctx context.Context, userID, message string) (*models.AIResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, invalid("message", "please enter a question")
	}
	logger := utils.GetLogger().With(zap.String("userId", userID))

	aiCtx, err := s.store.Get(ctx, userID)
	if err != nil {
		logger.Warn("chat history unavailable", zap.Error(err))
		aiCtx = &models.AIContext{}
	}

	reply, err := s.generate(ctx, chatPrompt(message), aiCtx.History)
	if err != nil {
		return nil, err
	}

	aiCtx.History = append(aiCtx.History,
		models.AIMessage{Role: "user", Text: message},
		models.AIMessage{Role: "model", Text: reply})
	if n := len(aiCtx.History); n > maxHistory {
		aiCtx.History = aiCtx.History[n-maxHistory:]
	}
	if err := s.store.Set(ctx, userID, aiCtx); err != nil {
		logger.Warn("chat history not saved", zap.Error(err))
	}
	return &models.AIResponse{Response: reply, GeneratedAt: s.now()}, nil
}

func (s *DefaultAssistantService) ClearChat(ctx context.Context, userID string) error {
	return s.store.Clear(ctx, userID)
}

func (s *DefaultAssistantService) WorkoutPlan(ctx context.Context, req models.WorkoutPlanRequest) (*models.AIResponse, error) {
	req.Sport = strings.TrimSpace(req.Sport)
	req.Level = strings.TrimSpace(req.Level)
	req.Goals = strings.TrimSpace(req.Goals)
	if req.Sport == "" || req.Level == "" || req.Goals == "" {
		return nil, invalid("workout", "sport, level and goals are required")
	}
	if req.DaysPerWeek == 0 {
		req.DaysPerWeek = 3
	}
	if req.DaysPerWeek < 1 || req.DaysPerWeek > 7 {
		return nil, invalid("daysPerWeek", "training days must be between 1 and 7")
	}
	if req.SessionHours == 0 {
		req.SessionHours = 1
	}
	if req.SessionHours < 1 || req.SessionHours > 4 {
		return nil, invalid("sessionHours", "session length must be between 1 and 4 hours")
	}

	plan, err := s.generate(ctx, workoutPrompt(req), nil)
	if err != nil {
		return nil, err
	}
	return &models.AIResponse{Response: plan, GeneratedAt: s.now()}, nil
}

func (s *DefaultAssistantService) CareerRoadmap(ctx context.Context, req models.CareerRoadmapRequest) (*models.AIResponse, error) {
	req.Sport = strings.TrimSpace(req.Sport)
	req.CurrentLevel = strings.TrimSpace(req.CurrentLevel)
	req.Goals = strings.TrimSpace(req.Goals)
	req.Timeframe = strings.TrimSpace(req.Timeframe)
	if req.Sport == "" || req.CurrentLevel == "" || req.Goals == "" || req.Timeframe == "" {
		return nil, invalid("roadmap", "sport, current level, goals and timeframe are required")
	}

	roadmap, err := s.generate(ctx, roadmapPrompt(req), nil)
	if err != nil {
		return nil, err
	}
	return &models.AIResponse{Response: roadmap, GeneratedAt: s.now()}, nil
}

func (s *DefaultAssistantService) generate(ctx context.Context, prompt string, history []models.AIMessage) (string, error) {
	reply, err := s.gen.GenerateContent(ctx, prompt, history)
	if err != nil {
		mapped := classify(err)
		utils.GetLogger().Error("assistant generation failed", zap.Error(err), zap.String("mapped", mapped.Error()))
		return "", mapped
	}
	return reply, nil
}
