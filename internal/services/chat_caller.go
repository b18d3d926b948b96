package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"

	"letterwriter-backend/internal/models"
	"letterwriter-backend/internal/requestctx"
)

const maxChatResponseBytes = 1 << 20

// ChatCaller is the chat capability used by LetterService.
type ChatCaller interface {
	CallChat(ctx context.Context, messages []models.Message) (string, error)
}

// DirectChatCaller calls ChatService in-process.
type DirectChatCaller struct {
	chat *ChatService
}

func NewDirectChatCaller(chat *ChatService) *DirectChatCaller {
	return &DirectChatCaller{chat: chat}
}

func (c *DirectChatCaller) CallChat(ctx context.Context, messages []models.Message) (string, error) {
	return c.chat.Chat(ctx, messages)
}

// HTTPChatCaller posts to a chat endpoint over the network, normally this
// service's own /chatWithAi route.
type HTTPChatCaller struct {
	endpoint string
	httpDo   *http.Client
}

func NewHTTPChatCaller(endpoint string, httpClient *http.Client) *HTTPChatCaller {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &HTTPChatCaller{endpoint: endpoint, httpDo: httpClient}
}

func (c *HTTPChatCaller) CallChat(ctx context.Context, messages []models.Message) (string, error) {
	data, err := json.Marshal(models.ChatRequest{Messages: messages})
	if err != nil {
		return "", &UpstreamError{Message: "Failed to encode chat request", Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return "", &UpstreamError{Message: "Failed to build chat request", Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if id := requestctx.RequestID(ctx); id != "" {
		httpReq.Header.Set(requestctx.RequestIDHeader, id)
	}
	// The chat route is keyed by client IP; forward the original one so the
	// nested call is not counted against the loopback address.
	if ip := requestctx.ClientIP(ctx); ip != "" {
		httpReq.Header.Set("X-Forwarded-For", ip)
	}

	resp, err := c.httpDo.Do(httpReq)
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxChatResponseBytes))
	if err != nil {
		return "", classifyTransportError(ctx, err)
	}

	var env models.Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", &UpstreamError{
			Message: "Invalid response from chat endpoint",
			Err:     fmt.Errorf("chat endpoint http %d: %w", resp.StatusCode, err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		nested := fmt.Errorf("chat endpoint http %d: %s", resp.StatusCode, env.Error)
		switch resp.StatusCode {
		case http.StatusGatewayTimeout:
			return "", &UpstreamTimeoutError{Message: "AI request timed out", Err: nested}
		case http.StatusTooManyRequests:
			return "", &RateLimitError{Message: "Too many requests. Please try again later.", Err: nested}
		case http.StatusServiceUnavailable:
			return "", &UpstreamUnavailableError{Message: "Chat service unavailable", Err: nested}
		default:
			return "", &UpstreamError{Message: "Chat endpoint returned an error", Err: nested}
		}
	}

	if env.Data == "" {
		return "", &EmptyUpstreamResponseError{Message: "No response from AI"}
	}
	return env.Data, nil
}

// classifyTransportError separates deadlines and unreachable targets from
// other transport failures.
func classifyTransportError(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &UpstreamTimeoutError{Message: "AI request timed out", Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &UpstreamTimeoutError{Message: "AI request timed out", Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return &UpstreamUnavailableError{Message: "Chat service unavailable", Err: err}
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return &UpstreamUnavailableError{Message: "Chat service unavailable", Err: err}
	}

	return &UpstreamError{Message: "Chat request failed", Err: err}
}
