package models

import "time"

// AIRequest is the chat payload coming from the frontend into /api/ai/chat.
type AIRequest struct {
	Message string `json:"message"`
}

// AIResponse is what the chat and generator handlers return.
type AIResponse struct {
	Response    string    `json:"response"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// AIMessage is one turn of the stored chat history.
type AIMessage struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

// AIContext is the per-user chat state kept in the cache.
type AIContext struct {
	History []AIMessage `json:"history"`
}

// WorkoutPlanRequest drives the workout plan generator.
type WorkoutPlanRequest struct {
	Sport        string `json:"sport"`
	Level        string `json:"level"`
	Goals        string `json:"goals"`
	DaysPerWeek  int    `json:"daysPerWeek"`
	SessionHours int    `json:"sessionHours"`
}

// CareerRoadmapRequest drives the career roadmap generator.
type CareerRoadmapRequest struct {
	Sport        string `json:"sport"`
	CurrentLevel string `json:"currentLevel"`
	Goals        string `json:"goals"`
	Timeframe    string `json:"timeframe"`
}
