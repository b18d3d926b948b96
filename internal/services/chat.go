package services

import (
	"context"
	"errors"
	"log"

	"letterwriter-backend/internal/models"
)

type ChatService struct {
	client CompletionClient
	model  string
}

func NewChatService(client CompletionClient, model string) *ChatService {
	return &ChatService{client: client, model: model}
}

// Chat returns the text of the first completion for messages. Messages are
// expected to have passed ValidateChatMessages.
func (s *ChatService) Chat(ctx context.Context, messages []models.Message) (string, error) {
	result, err := s.client.Complete(ctx, CompletionRequest{
		Model:          s.model,
		Messages:       messages,
		CandidateCount: 1,
	})
	if err != nil {
		log.Printf("Chat completion failed: model=%s messages=%d err=%v", s.model, len(messages), err)
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &UpstreamTimeoutError{Message: "AI request timed out", Err: err}
		}
		return "", &UpstreamError{Message: "Failed to get response from AI", Err: err}
	}

	if result == nil || len(result.Choices) == 0 {
		log.Printf("WARNING: chat completion returned no choices: model=%s", s.model)
		return "", &EmptyUpstreamResponseError{Message: "No response from AI"}
	}

	first := result.Choices[0]
	if first.Content == "" {
		log.Printf("WARNING: first choice has no text: model=%s finish_reason=%s", s.model, first.FinishReason)
		return "", &EmptyUpstreamResponseError{Message: "No response from AI"}
	}

	return first.Content, nil
}
