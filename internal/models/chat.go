package models

// Message represents a single turn in a conversation.
type Message struct {
	Role    string `json:"role"` // "user", "assistant" or "system"
	Content string `json:"content"`
}

// ChatRequest is the payload sent to the chat endpoint by the letter
// delegation. Inbound bodies are parsed through the validator instead.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}
