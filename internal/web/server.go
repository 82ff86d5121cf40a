// Package web serves the resolution engines over HTTP.
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

	"github.com/pcode-matching/internal/admin"
)

// Server represents the web server
type Server struct {
	config     *Config
	levels     map[int]*admin.Level
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a web server over the given resolution engines,
// keyed by admin level.
func NewServer(config *Config, levels map[int]*admin.Level) (*Server, error) {
	if len(levels) == 0 {
		return nil, fmt.Errorf("no admin levels to serve")
	}

	server := &Server{
		config: config,
		levels: levels,
	}
	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      server.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/resolve", s.handleResolve).Methods("GET")
	api.HandleFunc("/pcodes", s.handlePCodes).Methods("GET")
	api.HandleFunc("/diagnostics/matches", s.handleMatches).Methods("GET")
	api.HandleFunc("/diagnostics/ignored", s.handleIgnored).Methods("GET")
	api.HandleFunc("/diagnostics/errors", s.handleErrors).Methods("GET")
	api.HandleFunc("/diagnostics/reset", s.handleReset).Methods("POST")

	s.router.HandleFunc("/healthz", s.handleHealthz).Methods("GET")

	s.router.Use(RequestLogging())
	s.router.Use(CORS())
}

// Start runs the server until SIGINT or SIGTERM, then shuts down
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
		fmt.Printf("Server shutdown error: %v\n", err)
	}

	fmt.Println("Server stopped")
	return nil
}
