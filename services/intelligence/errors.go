package intelligence

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	ErrInvalidAPIKey   = errors.New("Invalid API key. Please check your configuration.")
	ErrModel           = errors.New("Error accessing AI model. Please try again later.")
	ErrContentFiltered = errors.New("Your request was filtered due to content safety policies.")
	ErrRateLimited     = errors.New("Rate limit exceeded. Please try again later.")
	ErrGeneric         = errors.New("Failed to get response. Please try again.")
)

// ValidationError is a missing or malformed assistant input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// classify maps a generator failure onto the user-facing errors above.
func classify(err error) error {
	var blocked *genai.BlockedError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrInvalidAPIKey):
		return ErrInvalidAPIKey
	case errors.As(err, &blocked):
		return ErrContentFiltered
	}

	switch status.Code(err) {
	case codes.ResourceExhausted:
		return ErrRateLimited
	case codes.Unauthenticated, codes.PermissionDenied:
		return ErrInvalidAPIKey
	case codes.NotFound:
		return ErrModel
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "api key"):
		return ErrInvalidAPIKey
	case strings.Contains(msg, "429") || strings.Contains(msg, "quota"):
		return ErrRateLimited
	case strings.Contains(msg, "content filtered") || strings.Contains(msg, "safety"):
		return ErrContentFiltered
	case strings.Contains(msg, "model"):
		return ErrModel
	}
	return ErrGeneric
}
