package handlers

import (
	"context"
	"net/http"

	"letterwriter-backend/internal/models"
	"letterwriter-backend/internal/services"
)

type letterService interface {
	GenerateLetter(ctx context.Context, req models.LetterRequest) (string, error)
}

type LetterHandler struct {
	letterService letterService
	devMode       bool
}

func NewLetterHandler(letterService letterService, devMode bool) *LetterHandler {
	return &LetterHandler{letterService: letterService, devMode: devMode}
}

func (h *LetterHandler) GenerateLetter(w http.ResponseWriter, r *http.Request) {
	var in models.LetterInput
	if err := decodeBody(w, r, &in); err != nil {
		writeInvalidJSON(w)
		return
	}

	req, err := services.ValidateLetterRequest(in)
	if err != nil {
		handleServiceError(w, r, err, "Letter generation failed", h.devMode)
		return
	}

	letter, err := h.letterService.GenerateLetter(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err, "Letter generation failed", h.devMode)
		return
	}

	writeJSON(w, http.StatusOK, successResp("Letter generated successfully", letter))
}
