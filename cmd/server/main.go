package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"letterwriter-backend/internal/config"
	"letterwriter-backend/internal/database"
	"letterwriter-backend/internal/handlers"
	"letterwriter-backend/internal/middleware"
	"letterwriter-backend/internal/router"
	"letterwriter-backend/internal/services"
)

func main() {
	log.Println("🚀 Starting Letter Writer Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize Gemini Client ────
	geminiClient, err := services.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiConcurrentReqs)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer geminiClient.Close()
	log.Printf("✓ Gemini client initialized (model %s)", cfg.GeminiModel)

	// ──── Step 3: Rate Limit Store ────
	var store middleware.CounterStore
	if cfg.RedisURL != "" {
		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("✗ Redis connection failed: %v", err)
		}
		defer redisClient.Close()
		store = middleware.NewRedisStore(redisClient)
		log.Println("✓ Redis connected (shared rate limits)")
	} else {
		store = middleware.NewMemoryStore(time.Minute)
		log.Println("✓ In-memory rate limits")
	}
	aiLimiter := middleware.NewRateLimiter(store, cfg.RateLimitPerMinute, time.Minute)

	// ──── Step 4: Initialize Services ────
	chatService := services.NewChatService(geminiClient, cfg.GeminiModel)

	var chatCaller services.ChatCaller
	switch cfg.ChatTransport {
	case config.TransportHTTP:
		chatCaller = services.NewHTTPChatCaller(cfg.ChatEndpointURL, &http.Client{})
		log.Printf("✓ Letters delegate to %s", cfg.ChatEndpointURL)
	default:
		chatCaller = services.NewDirectChatCaller(chatService)
		log.Println("✓ Letters delegate to the in-process chat service")
	}
	letterService := services.NewLetterService(chatCaller, cfg.LetterTimeout)

	// ──── Step 5: Initialize Handlers ────
	indexHandler := handlers.NewIndexHandler(cfg.ServiceName, router.Routes)
	chatHandler := handlers.NewChatHandler(chatService, cfg.IsDevelopment())
	letterHandler := handlers.NewLetterHandler(letterService, cfg.IsDevelopment())

	// ──── Step 6: Start HTTP Server ────
	r := router.New(indexHandler, chatHandler, letterHandler, aiLimiter, cfg.CORSOrigin)

	// WriteTimeout leaves room for the letter delegation on top of the
	// upstream call.
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.LetterTimeout + 30*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ %s ready on http://localhost:%s", cfg.ServiceName, cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}
