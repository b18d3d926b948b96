package models

import "encoding/json"

const (
	DefaultLetterTone  = "friendly"
	DefaultLetterStyle = "formal"
)

// LetterInput is the raw generateLetter payload. Fields stay undecoded so
// the validator can tell an absent value from a value of the wrong type.
type LetterInput struct {
	RecipientName json.RawMessage `json:"LetterRecipientName"`
	Occasion      json.RawMessage `json:"LetterOccasion"`
	Tone          json.RawMessage `json:"LetterTone"`
	Style         json.RawMessage `json:"LetterStyle"`
}

// LetterRequest is a validated letter request with defaults applied.
type LetterRequest struct {
	RecipientName string `json:"recipient_name"`
	Occasion      string `json:"occasion"`
	Tone          string `json:"tone"`
	Style         string `json:"style"`
}
