package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"letterwriter-backend/internal/models"
	"letterwriter-backend/internal/services"
)

type stubChatService struct {
	reply    string
	err      error
	called   bool
	messages []models.Message
}

func (s *stubChatService) Chat(ctx context.Context, messages []models.Message) (string, error) {
	s.called = true
	s.messages = messages
	return s.reply, s.err
}

type stubLetterService struct {
	letter string
	err    error
	called bool
	req    models.LetterRequest
}

func (s *stubLetterService) GenerateLetter(ctx context.Context, req models.LetterRequest) (string, error) {
	s.called = true
	s.req = req
	return s.letter, s.err
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) models.Envelope {
	t.Helper()
	var env models.Envelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return env
}

// ─── Chat Handler Tests ───

func TestChatHandler_Success(t *testing.T) {
	svc := &stubChatService{reply: "Hello"}
	h := NewChatHandler(svc, false)

	body := `{"messages":[{"role":"user","content":"Hi"}]}`
	req := httptest.NewRequest(http.MethodPost, "/chatWithAi", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	h.ChatWithAI(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}
	env := decodeEnvelope(t, rr)
	if !env.Success || env.Message != "Chat with AI successful" || env.Data != "Hello" {
		t.Errorf("Unexpected envelope: %+v", env)
	}
	if env.Timestamp == "" {
		t.Error("Expected timestamp on success")
	}
	if env.Error != "" || env.Details != "" {
		t.Errorf("Expected no failure fields, got %+v", env)
	}
}

func TestChatHandler_ValidationFailsFast(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"no messages key", `{}`},
		{"empty messages", `{"messages":[]}`},
		{"messages not array", `{"messages":"hi"}`},
		{"missing content", `{"messages":[{"role":"user"}]}`},
		{"numeric role", `{"messages":[{"role":3,"content":"hi"}]}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubChatService{reply: "unused"}
			h := NewChatHandler(svc, false)

			req := httptest.NewRequest(http.MethodPost, "/chatWithAi", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			h.ChatWithAI(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", rr.Code)
			}
			if svc.called {
				t.Error("Expected no upstream call for invalid input")
			}
			env := decodeEnvelope(t, rr)
			if env.Success || env.Error == "" {
				t.Errorf("Expected failure envelope, got %+v", env)
			}
		})
	}
}

func TestChatHandler_InvalidJSON(t *testing.T) {
	h := NewChatHandler(&stubChatService{}, false)

	req := httptest.NewRequest(http.MethodPost, "/chatWithAi", strings.NewReader(`{"messages":`))
	rr := httptest.NewRecorder()
	h.ChatWithAI(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if env.Error != "Invalid JSON" || env.Success {
		t.Errorf("Expected Invalid JSON error, got %+v", env)
	}
}

func TestChatHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"empty upstream", &services.EmptyUpstreamResponseError{Message: "No response from AI"}, http.StatusInternalServerError},
		{"upstream error", &services.UpstreamError{Message: "Failed to get response from AI", Err: errors.New("401 bad key")}, http.StatusInternalServerError},
		{"timeout", &services.UpstreamTimeoutError{Message: "AI request timed out"}, http.StatusGatewayTimeout},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewChatHandler(&stubChatService{err: tc.err}, false)

			req := httptest.NewRequest(http.MethodPost, "/chatWithAi", strings.NewReader(`{"messages":[{"role":"user","content":"Hi"}]}`))
			rr := httptest.NewRecorder()
			h.ChatWithAI(rr, req)

			if rr.Code != tc.status {
				t.Fatalf("Expected status %d, got %d", tc.status, rr.Code)
			}
			env := decodeEnvelope(t, rr)
			if env.Success {
				t.Error("Expected success=false")
			}
			if env.Details != "" {
				t.Errorf("Expected details to be hidden outside development, got %q", env.Details)
			}
			if strings.Contains(env.Error, "401 bad key") {
				t.Errorf("Provider error leaked into error field: %q", env.Error)
			}
		})
	}
}

func TestChatHandler_DetailsInDevelopment(t *testing.T) {
	h := NewChatHandler(&stubChatService{err: &services.UpstreamError{Message: "Failed to get response from AI", Err: errors.New("401 bad key")}}, true)

	req := httptest.NewRequest(http.MethodPost, "/chatWithAi", strings.NewReader(`{"messages":[{"role":"user","content":"Hi"}]}`))
	rr := httptest.NewRecorder()
	h.ChatWithAI(rr, req)

	env := decodeEnvelope(t, rr)
	if !strings.Contains(env.Details, "401 bad key") {
		t.Errorf("Expected details with provider message, got %q", env.Details)
	}
}

// ─── Letter Handler Tests ───

func TestLetterHandler_Success(t *testing.T) {
	svc := &stubLetterService{letter: "Dear Ana, ..."}
	h := NewLetterHandler(svc, false)

	body := `{"LetterRecipientName":"Ana","LetterOccasion":"Birthday"}`
	req := httptest.NewRequest(http.MethodPost, "/generateLetter", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.GenerateLetter(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	env := decodeEnvelope(t, rr)
	if !env.Success || env.Message != "Letter generated successfully" || env.Data != "Dear Ana, ..." {
		t.Errorf("Unexpected envelope: %+v", env)
	}

	want := models.LetterRequest{RecipientName: "Ana", Occasion: "Birthday", Tone: "friendly", Style: "formal"}
	if svc.req != want {
		t.Errorf("Expected %+v, got %+v", want, svc.req)
	}
}

func TestLetterHandler_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing recipient", `{"LetterOccasion":"Birthday"}`},
		{"missing occasion", `{"LetterRecipientName":"Ana"}`},
		{"empty body", `{}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubLetterService{}
			h := NewLetterHandler(svc, false)

			req := httptest.NewRequest(http.MethodPost, "/generateLetter", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			h.GenerateLetter(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Expected status 400, got %d", rr.Code)
			}
			if svc.called {
				t.Error("Expected no letter generation for invalid input")
			}
		})
	}
}

func TestLetterHandler_ServiceErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unavailable", &services.UpstreamUnavailableError{Message: "Chat service unavailable"}, http.StatusServiceUnavailable},
		{"timeout", &services.UpstreamTimeoutError{Message: "AI request timed out"}, http.StatusGatewayTimeout},
		{"nested rate limit", &services.RateLimitError{Message: "Too many requests. Please try again later."}, http.StatusTooManyRequests},
		{"upstream error", &services.UpstreamError{Message: "Failed to generate letter"}, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewLetterHandler(&stubLetterService{err: tc.err}, false)

			body := `{"LetterRecipientName":"Ana","LetterOccasion":"Birthday"}`
			req := httptest.NewRequest(http.MethodPost, "/generateLetter", strings.NewReader(body))
			rr := httptest.NewRecorder()
			h.GenerateLetter(rr, req)

			if rr.Code != tc.status {
				t.Fatalf("Expected status %d, got %d", tc.status, rr.Code)
			}
			if env := decodeEnvelope(t, rr); env.Success {
				t.Error("Expected success=false")
			}
		})
	}
}

// ─── Index Handler Tests ───

func TestIndexHandler(t *testing.T) {
	h := NewIndexHandler("Letter Writer API", []string{"GET /", "POST /chatWithAi"})

	rr := httptest.NewRecorder()
	h.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp models.IndexResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Message != "Letter Writer API is running" || len(resp.Endpoints) != 2 {
		t.Errorf("Unexpected index response: %+v", resp)
	}

	rr = httptest.NewRecorder()
	h.NotFound(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("Expected status 404, got %d", rr.Code)
	}
	var nf models.NotFoundResponse
	json.NewDecoder(rr.Body).Decode(&nf)
	if nf.Error != "Route not found" || nf.Success || len(nf.AvailableRoutes) != 2 {
		t.Errorf("Unexpected not-found response: %+v", nf)
	}
}
