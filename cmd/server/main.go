// Kisan - Smart Agent Server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dineshreddy8742/Bheema/internal/agent"
	"github.com/dineshreddy8742/Bheema/internal/api"
	"github.com/dineshreddy8742/Bheema/internal/collab"
	"github.com/dineshreddy8742/Bheema/internal/config"
	"github.com/dineshreddy8742/Bheema/internal/middleware"
	"github.com/dineshreddy8742/Bheema/internal/store"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the session repository.
	var sessions store.SessionRepository
	if cfg.SessionDBPath != "" {
		repo, err := store.NewSQLite(cfg.SessionDBPath)
		if err != nil {
			slog.Error("Failed to initialize session database", "error", err)
			os.Exit(1)
		}
		slog.Info("Session database connected", "path", cfg.SessionDBPath)
		sessions = repo
	} else {
		sessions = store.NewMemory()
		slog.Info("Using in-memory session store")
	}
	defer func() {
		if closeErr := sessions.Close(); closeErr != nil {
			slog.Error("Failed to close session store", "error", closeErr)
		}
	}()

	// Initialize collaborators. Each one is optional; missing credentials
	// leave the corresponding features on their fallback paths.
	var textGen collab.TextGenerator
	if cfg.GeminiAPIKey != "" {
		gemini, err := collab.NewGemini(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Warn("Failed to initialize Gemini client, text features will be limited", "error", err)
		} else {
			textGen = gemini
			slog.Info("Gemini client initialized", "model", cfg.GeminiModel)
		}
	} else {
		slog.Info("GEMINI_API_KEY not set, text features will be limited")
	}

	var (
		vision      collab.VisionLabeler
		transcriber collab.Transcriber
		synth       collab.SpeechSynthesizer
	)
	if cfg.GoogleCredentialsJSON != "" {
		creds := []byte(cfg.GoogleCredentialsJSON)

		v, err := collab.NewVision(ctx, creds)
		if err != nil {
			slog.Warn("Failed to initialize Vision client, image analysis will be limited", "error", err)
		} else {
			defer v.Close()
			vision = v
		}

		stt, err := collab.NewSpeechToText(ctx, creds)
		if err != nil {
			slog.Warn("Failed to initialize Speech-to-Text client, voice commands disabled", "error", err)
		} else {
			defer stt.Close()
			transcriber = stt
		}

		tts, err := collab.NewTextToSpeech(ctx, creds)
		if err != nil {
			slog.Warn("Failed to initialize Text-to-Speech client, spoken replies disabled", "error", err)
		} else {
			defer tts.Close()
			synth = tts
		}
	} else {
		slog.Info("GOOGLE_APPLICATION_CREDENTIALS_JSON not set, vision and speech features disabled")
	}

	// Initialize the agent and handlers.
	smartAgent := agent.New(agent.Deps{
		Sessions:    sessions,
		TextGen:     textGen,
		Vision:      vision,
		Transcriber: transcriber,
	})

	baseHandler := api.NewHandler(smartAgent, cfg.MaxUploadBytes)
	agentHandler := api.NewAgentHandler(baseHandler)
	speechHandler := api.NewSpeechHandler(synth)
	pagesHandler := api.NewPagesHandler(baseHandler)

	// Setup router.
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	agentHandler.RegisterRoutes(r)
	speechHandler.RegisterRoutes(r)
	pagesHandler.RegisterRoutes(r)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
