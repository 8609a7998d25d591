// Package mockapi is an in-memory stand-in for the wardrobe backend. It
// serves the same JSON contract as the real service (cookie sessions,
// outfits, suggestions, weekly plans, chat) so the client can be developed
// and tested without it. Failures can be injected per route.
package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/dmitrijs2005/wardrobe/internal/common"
	"github.com/dmitrijs2005/wardrobe/internal/logging"
)

type Server struct {
	cfg    Config
	log    logging.Logger
	store  *store
	faults *faults
	router chi.Router
}

// New builds a Server. Zero-valued Config fields fall back to the
// MOCKAPI_* defaults.
func New(cfg Config, log logging.Logger) *Server {
	if cfg.SecretKey == "" {
		cfg.SecretKey = "devsecret"
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = time.Hour
	}
	if cfg.PlanDays <= 0 {
		cfg.PlanDays = 7
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = "https://images.mock.local"
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"http://localhost:3000"}
	}

	s := &Server{
		cfg:    cfg,
		log:    log,
		store:  newStore(),
		faults: newFaults(),
		router: chi.NewRouter(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	r := s.router

	r.Use(chimiddleware.Recoverer)
	r.Use(s.requestLogger)
	// Browser frontends send the auth_token cookie cross-origin.
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", common.RequestIDHeaderName},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)
	r.Use(s.injectFaults)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", s.handleSignup)
		r.Post("/login", s.handleLogin)
		r.Post("/logout", s.handleLogout)
		r.With(s.requireUser).Get("/session", s.handleSession)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireUser)

		r.Get("/outfit/get-outfits", s.handleListOutfits)
		r.Post("/outfit/upload-outfit", s.handleUploadOutfit)
		r.Delete("/outfit/delete-outfit", s.handleDeleteOutfit)
		r.Put("/outfit/update-outfit", s.handleUpdateOutfit)
		r.Post("/outfit/suggest-outfit", s.handleSuggest)

		r.Put("/weekly/create-plan", s.handleCreatePlan)
		r.Get("/weekly/plan", s.handleGetPlans)

		r.Post("/chat/outfit-chat", s.handleChat)
	})
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		s.log.Info(r.Context(), "request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", r.Header.Get(common.RequestIDHeaderName),
		)
	})
}

// Run serves on cfg.Addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info(ctx, "mock backend listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	s.log.Info(ctx, "mock backend stopped")
	return nil
}
