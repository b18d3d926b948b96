package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"letterwriter-backend/internal/models"
)

const DefaultLetterTimeout = 30 * time.Second

type LetterService struct {
	chat    ChatCaller
	timeout time.Duration
}

func NewLetterService(chat ChatCaller, timeout time.Duration) *LetterService {
	if timeout <= 0 {
		timeout = DefaultLetterTimeout
	}
	return &LetterService{chat: chat, timeout: timeout}
}

// GenerateLetter builds the letter prompt and makes exactly one chat call.
func (s *LetterService) GenerateLetter(ctx context.Context, req models.LetterRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.chat.CallChat(ctx, []models.Message{BuildLetterPrompt(req)})
	if err != nil {
		log.Printf("Letter generation failed: recipient=%q occasion=%q err=%v", req.RecipientName, req.Occasion, err)
		return "", normalizeLetterError(ctx, err)
	}
	return text, nil
}

// BuildLetterPrompt returns the single user message sent for a letter.
func BuildLetterPrompt(req models.LetterRequest) models.Message {
	return models.Message{
		Role: "user",
		Content: fmt.Sprintf("Generate a %s %s letter for %s on the occasion of %s.",
			req.Tone, req.Style, req.RecipientName, req.Occasion),
	}
}

func normalizeLetterError(ctx context.Context, err error) error {
	var (
		timeoutErr     *UpstreamTimeoutError
		unavailableErr *UpstreamUnavailableError
		emptyErr       *EmptyUpstreamResponseError
		rateErr        *RateLimitError
	)
	switch {
	case errors.As(err, &timeoutErr), errors.As(err, &unavailableErr), errors.As(err, &emptyErr), errors.As(err, &rateErr):
		return err
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return &UpstreamTimeoutError{Message: "AI request timed out", Err: err}
	default:
		return &UpstreamError{Message: "Failed to generate letter", Err: err}
	}
}
