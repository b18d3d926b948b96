package handlers

import (
	"fmt"
	"net/http"

	"letterwriter-backend/internal/models"
)

// IndexHandler serves the service banner, health probe and 404 catalogue.
type IndexHandler struct {
	serviceName string
	routes      []string
}

func NewIndexHandler(serviceName string, routes []string) *IndexHandler {
	return &IndexHandler{serviceName: serviceName, routes: routes}
}

func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.IndexResponse{
		Message:   fmt.Sprintf("%s is running", h.serviceName),
		Status:    "ok",
		Endpoints: h.routes,
	})
}

func (h *IndexHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *IndexHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, models.NotFoundResponse{
		Error:           "Route not found",
		Success:         false,
		AvailableRoutes: h.routes,
	})
}
