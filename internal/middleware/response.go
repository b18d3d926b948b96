package middleware

import (
	"encoding/json"
	"net/http"

	"letterwriter-backend/internal/models"
)

func writeError(w http.ResponseWriter, status int, message, errText string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(models.Envelope{
		Success: false,
		Message: message,
		Error:   errText,
	})
}
