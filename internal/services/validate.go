package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"letterwriter-backend/internal/models"
)

// ValidateChatMessages parses the raw "messages" value of a chat request.
// The returned slice holds the messages exactly as sent, in order.
func ValidateChatMessages(raw json.RawMessage) ([]models.Message, error) {
	if isAbsent(raw) {
		return nil, missingField("messages", "Messages array is required")
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, missingField("messages", "Messages must be an array")
	}
	if len(items) == 0 {
		return nil, missingField("messages", "Messages array must not be empty")
	}

	messages := make([]models.Message, 0, len(items))
	for i, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil || fields == nil {
			return nil, invalidShape(fmt.Sprintf("messages[%d]", i), "Each message must be an object with role and content")
		}

		role, ok := nonEmptyString(fields["role"])
		if !ok {
			return nil, invalidShape(fmt.Sprintf("messages[%d].role", i), "Each message must have a string role")
		}
		content, ok := nonEmptyString(fields["content"])
		if !ok {
			return nil, invalidShape(fmt.Sprintf("messages[%d].content", i), "Each message must have a string content")
		}

		messages = append(messages, models.Message{Role: role, Content: content})
	}

	return messages, nil
}

// ValidateLetterRequest parses a letter payload and applies defaults.
// A field is blank when it is absent, null, or whitespace only.
func ValidateLetterRequest(in models.LetterInput) (models.LetterRequest, error) {
	recipient, err := optionalString("LetterRecipientName", in.RecipientName)
	if err != nil {
		return models.LetterRequest{}, err
	}
	occasion, err := optionalString("LetterOccasion", in.Occasion)
	if err != nil {
		return models.LetterRequest{}, err
	}
	tone, err := optionalString("LetterTone", in.Tone)
	if err != nil {
		return models.LetterRequest{}, err
	}
	style, err := optionalString("LetterStyle", in.Style)
	if err != nil {
		return models.LetterRequest{}, err
	}

	if recipient == "" {
		return models.LetterRequest{}, missingField("LetterRecipientName", "LetterRecipientName is required")
	}
	if occasion == "" {
		return models.LetterRequest{}, missingField("LetterOccasion", "LetterOccasion is required")
	}
	if tone == "" {
		tone = models.DefaultLetterTone
	}
	if style == "" {
		style = models.DefaultLetterStyle
	}

	return models.LetterRequest{
		RecipientName: recipient,
		Occasion:      occasion,
		Tone:          tone,
		Style:         style,
	}, nil
}

func isAbsent(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func nonEmptyString(raw json.RawMessage) (string, bool) {
	if isAbsent(raw) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}

// optionalString returns "" for blank values and rejects non-strings.
func optionalString(field string, raw json.RawMessage) (string, error) {
	if isAbsent(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", invalidShape(field, field+" must be a string")
	}
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return s, nil
}
