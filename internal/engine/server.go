package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

type Server struct {
	engine          *Engine
	router          *mux.Router
	metadataHandler *MetadataHandlers
}

func NewServer(engine *Engine) *Server {
	s := &Server{
		engine:          engine,
		router:          mux.NewRouter(),
		metadataHandler: NewMetadataHandlers(engine),
	}
	s.setupRoutes()
	s.setupMiddleware()
	return s
}

func (s *Server) setupMiddleware() {
	// CORS middleware
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	// Logging middleware
	s.router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			if s.engine.logger != nil {
				s.engine.logger.Debugf("%s %s completed in %s", r.Method, r.URL.Path, time.Since(start))
			}
		})
	})
}

func (s *Server) setupRoutes() {
	// Health check endpoint
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api/v1").Subrouter()

	// Database service endpoints
	services := api.PathPrefix("/services").Subrouter()
	services.HandleFunc("", s.metadataHandler.CreateService).Methods(http.MethodPost)
	services.HandleFunc("/{service_name}/metadata", s.metadataHandler.ExtractMetadata).Methods(http.MethodGet)
	services.HandleFunc("/{service_name}/tables", s.metadataHandler.ListTables).Methods(http.MethodGet)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	s.engine.Checker().RunCheck("catalog", func() error {
		return s.engine.Catalog().CheckHealth(ctx)
	})

	response := map[string]interface{}{
		"status":    s.engine.Checker().GetOverallStatus(),
		"service":   "catalogwire",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if info, err := s.engine.Catalog().ServerVersion(ctx); err == nil {
		response["catalog_healthy"] = true
		response["catalog_version"] = info.Version
	} else {
		response["catalog_healthy"] = false
		response["catalog_error"] = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
