package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"letterwriter-backend/internal/middleware"
	"letterwriter-backend/internal/models"
	"letterwriter-backend/internal/services"
)

const maxBodyBytes = 1 << 20

var errInvalidJSON = errors.New("Invalid JSON")

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func successResp(message, data string) models.Envelope {
	return models.Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	}
}

func errorResp(message, errText string) models.Envelope {
	return models.Envelope{
		Success: false,
		Message: message,
		Error:   errText,
	}
}

// decodeBody unmarshals a JSON request body into v. An empty body leaves v
// untouched, as if {} had been sent.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return errInvalidJSON
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errInvalidJSON
	}
	return nil
}

func writeInvalidJSON(w http.ResponseWriter) {
	writeJSON(w, http.StatusBadRequest, errorResp("Request body could not be parsed", errInvalidJSON.Error()))
}

// handleServiceError maps the service error taxonomy onto HTTP statuses.
// Error details are included only when devMode is set.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, failMessage string, devMode bool) {
	var (
		validationErr  *services.ValidationError
		emptyErr       *services.EmptyUpstreamResponseError
		unavailableErr *services.UpstreamUnavailableError
		timeoutErr     *services.UpstreamTimeoutError
		rateErr        *services.RateLimitError
		upstreamErr    *services.UpstreamError
	)

	status := http.StatusInternalServerError
	resp := errorResp(failMessage, "Something went wrong")

	switch {
	case errors.As(err, &validationErr):
		status = http.StatusBadRequest
		resp = errorResp("Validation failed", validationErr.Message)
	case errors.As(err, &emptyErr):
		resp.Error = emptyErr.Message
	case errors.As(err, &unavailableErr):
		status = http.StatusServiceUnavailable
		resp.Error = unavailableErr.Message
	case errors.As(err, &timeoutErr):
		status = http.StatusGatewayTimeout
		resp.Error = timeoutErr.Message
	case errors.As(err, &rateErr):
		status = http.StatusTooManyRequests
		resp = errorResp("Rate limit exceeded", rateErr.Message)
	case errors.As(err, &upstreamErr):
		resp.Error = upstreamErr.Message
	}

	if status >= http.StatusInternalServerError {
		log.Printf("Request failed: request_id=%s path=%s status=%d err=%v",
			middleware.GetRequestID(r.Context()), r.URL.Path, status, err)
	}
	if devMode {
		resp.Details = err.Error()
	}

	writeJSON(w, status, resp)
}
