package models

// Envelope is the uniform response wrapper returned by the AI routes.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Data      string `json:"data,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
	Details   string `json:"details,omitempty"`
}

// IndexResponse is served on GET /.
type IndexResponse struct {
	Message   string   `json:"message"`
	Status    string   `json:"status"`
	Endpoints []string `json:"endpoints"`
}

// NotFoundResponse is served for unmatched routes.
type NotFoundResponse struct {
	Error           string   `json:"error"`
	Success         bool     `json:"success"`
	AvailableRoutes []string `json:"available_routes"`
}
