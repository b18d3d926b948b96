package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"letterwriter-backend/internal/models"
)

// CompletionRequest asks the upstream provider for completions of a
// conversation.
type CompletionRequest struct {
	Model          string
	Messages       []models.Message
	CandidateCount int
}

// Choice is one completion candidate, normalized from the provider format.
type Choice struct {
	Content      string
	FinishReason string
}

type CompletionResult struct {
	Choices []Choice
}

// CompletionClient is the upstream LLM provider seen by ChatService.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error)
}

// GeminiClient implements CompletionClient on top of the Gemini SDK.
// The underlying client is shared and never mutated after construction.
type GeminiClient struct {
	client      *genai.Client
	temperature float32
	rateChan    chan struct{} // Token bucket
}

func NewGeminiClient(apiKey string, concurrentReqs int) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	if concurrentReqs < 1 {
		concurrentReqs = 1
	}
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	return &GeminiClient{
		client:      client,
		temperature: 0.7,
		rateChan:    rateChan,
	}, nil
}

func (g *GeminiClient) Close() {
	g.client.Close()
}

// acquireRate blocks until a rate slot is available
func (g *GeminiClient) acquireRate(ctx context.Context) error {
	select {
	case <-g.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(time.Minute):
		return fmt.Errorf("timeout waiting for Gemini rate slot")
	}
}

func (g *GeminiClient) releaseRate() {
	g.rateChan <- struct{}{}
}

// Complete sends the conversation as a chat session: every message but the
// last becomes history and the last one is sent as the new turn.
func (g *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (*CompletionResult, error) {
	if err := g.acquireRate(ctx); err != nil {
		return nil, err
	}
	defer g.releaseRate()

	// A model handle is a cheap value; one per call keeps settings local.
	model := g.client.GenerativeModel(req.Model)
	model.SetTemperature(g.temperature)
	if req.CandidateCount > 0 {
		model.SetCandidateCount(int32(req.CandidateCount))
	}

	system, contents := toGeminiContents(req.Messages)
	if len(contents) == 0 {
		return nil, fmt.Errorf("no messages to send")
	}
	model.SystemInstruction = system

	// SendMessage always sends the new turn as "user", so a conversation
	// ending in an assistant/model message reaches Gemini with that last
	// role rewritten to "user".
	cs := model.StartChat()
	cs.History = contents[:len(contents)-1]

	resp, err := cs.SendMessage(ctx, contents[len(contents)-1].Parts...)
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	return toCompletionResult(resp), nil
}

// toGeminiContents maps role/content messages onto Gemini contents.
// System messages become the system instruction unless the conversation
// has nothing else, in which case they are sent as user turns.
func toGeminiContents(messages []models.Message) (*genai.Content, []*genai.Content) {
	var systemParts []genai.Part
	var contents []*genai.Content

	for _, msg := range messages {
		switch strings.ToLower(msg.Role) {
		case "system":
			systemParts = append(systemParts, genai.Text(msg.Content))
		case "assistant", "model":
			contents = append(contents, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(msg.Content)}})
		default:
			contents = append(contents, &genai.Content{Role: "user", Parts: []genai.Part{genai.Text(msg.Content)}})
		}
	}

	if len(systemParts) == 0 {
		return nil, contents
	}
	if len(contents) == 0 {
		return nil, []*genai.Content{{Role: "user", Parts: systemParts}}
	}
	return &genai.Content{Parts: systemParts}, contents
}

func toCompletionResult(resp *genai.GenerateContentResponse) *CompletionResult {
	result := &CompletionResult{}
	if resp == nil {
		return result
	}
	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		result.Choices = append(result.Choices, Choice{
			Content:      candidateText(cand),
			FinishReason: cand.FinishReason.String(),
		})
	}
	return result
}

func candidateText(cand *genai.Candidate) string {
	var text strings.Builder
	if cand.Content != nil {
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return text.String()
}
