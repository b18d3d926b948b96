package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"letterwriter-backend/internal/handlers"
	"letterwriter-backend/internal/middleware"
)

// Routes lists the public endpoints, as shown on / and in 404 responses.
var Routes = []string{
	"GET /",
	"GET /health",
	"POST /chatWithAi",
	"POST /generateLetter",
}

func New(
	indexHandler *handlers.IndexHandler,
	chatHandler *handlers.ChatHandler,
	letterHandler *handlers.LetterHandler,
	aiLimiter *middleware.RateLimiter,
	corsOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CORS(corsOrigin))

	r.Get("/", indexHandler.Index)
	r.Get("/health", indexHandler.Health)

	// ──── AI Routes ────
	r.Group(func(r chi.Router) {
		if aiLimiter != nil {
			r.Use(aiLimiter.Middleware)
		}
		r.Post("/chatWithAi", chatHandler.ChatWithAI)
		r.Post("/generateLetter", letterHandler.GenerateLetter)
		r.Post("/genereteLetter", letterHandler.GenerateLetter) // legacy spelling
	})

	r.NotFound(indexHandler.NotFound)
	r.MethodNotAllowed(indexHandler.NotFound)

	return r
}
