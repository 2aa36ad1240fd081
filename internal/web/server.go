// Package web serves a small read-only API over the places
// collection: listing, search, stats and a dedupe dry-run endpoint.
package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/wanderlist/internal/repo"
	"github.com/wanderlist/internal/web/handlers"
	"github.com/wanderlist/internal/web/middleware"
)

// Server wires the router and HTTP server over a places repository.
type Server struct {
	config     *Config
	repo       repo.PlacesRepository
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a web server reading from the given repository.
func NewServer(config *Config, r repo.PlacesRepository) *Server {
	server := &Server{
		config: config,
		repo:   r,
	}

	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      server.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	placesHandler := &handlers.PlacesHandler{Repo: s.repo}
	statsHandler := &handlers.StatsHandler{Repo: s.repo}
	dedupeHandler := &handlers.DedupeHandler{Repo: s.repo}

	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/places", placesHandler.ListPlaces).Methods("GET")
	api.HandleFunc("/places/search", placesHandler.SearchPlaces).Methods("GET")
	api.HandleFunc("/places/{id}", placesHandler.GetPlace).Methods("GET")

	api.HandleFunc("/stats", statsHandler.GetStats).Methods("GET")

	api.HandleFunc("/dedupe/check", dedupeHandler.CheckDuplicates).Methods("POST")

	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging())
	api.Use(middleware.APIKey(s.config.APIKey))
}

// Start runs the server until SIGINT/SIGTERM, then shuts down
// gracefully.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		fmt.Printf("Starting server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server error: %v\n", err)
		}
	}()

	<-stop
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	fmt.Println("Server stopped")
	return nil
}
