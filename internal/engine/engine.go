package engine

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/catalogwire/catalogwire/pkg/catalog"
	"github.com/catalogwire/catalogwire/pkg/config"
	"github.com/catalogwire/catalogwire/pkg/health"
	"github.com/catalogwire/catalogwire/pkg/logger"
)

type Engine struct {
	config  *config.Config
	server  *http.Server
	client  *catalog.Client
	checker *health.Checker
	logger  *logger.Logger
	state   struct {
		sync.Mutex
		isRunning         bool
		ongoingOperations int32
	}
	metrics struct {
		requestsProcessed int64
		errors            int64
	}
}

func NewEngine(cfg *config.Config) *Engine {
	return &Engine{
		config:  cfg,
		checker: health.NewChecker(),
	}
}

// SetLogger sets the logger for the engine
func (e *Engine) SetLogger(logger *logger.Logger) {
	e.logger = logger
}

// Catalog returns the catalog client the engine talks through.
func (e *Engine) Catalog() *catalog.Client {
	return e.client
}

// Checker returns the engine's health checker.
func (e *Engine) Checker() *health.Checker {
	return e.checker
}

func (e *Engine) Start(ctx context.Context) error {
	e.state.Lock()
	if e.state.isRunning {
		e.state.Unlock()
		return fmt.Errorf("engine is already running")
	}
	e.state.isRunning = true
	e.state.Unlock()

	if e.logger != nil {
		e.logger.Infof("Starting catalogwire engine...")
	}

	// Build the catalog client
	catalogURL := e.config.GetOrDefault("catalog.url", catalog.DefaultBaseURL)
	opts := []catalog.Option{
		catalog.WithLogger(e.logger),
		catalog.WithTimeout(time.Duration(e.config.GetInt("catalog.request_timeout", 30)) * time.Second),
	}
	if token := e.config.Get("catalog.token"); token != "" {
		opts = append(opts, catalog.WithToken(token))
	}
	e.client = catalog.New(catalogURL, opts...)

	if e.logger != nil {
		e.logger.Infof("Catalog endpoint: %s", e.client.BaseURL())
	}

	// Initialize HTTP server
	// Check for external_port from environment first, then fall back to config
	portStr := os.Getenv("EXTERNAL_PORT")
	if portStr == "" {
		portStr = e.config.Get("server.http_port")
	}
	if portStr == "" {
		portStr = "8080" // Default HTTP port
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		if e.logger != nil {
			e.logger.Errorf("Invalid HTTP port configuration: %v", err)
		}
		e.state.Lock()
		e.state.isRunning = false
		e.state.Unlock()
		return fmt.Errorf("invalid port configuration: %v", err)
	}

	e.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: NewServer(e),
	}

	if e.logger != nil {
		e.logger.Infof("Starting HTTP server on port: %d", port)
	}

	// Start HTTP server
	go func() {
		if err := e.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			if e.logger != nil {
				e.logger.Errorf("HTTP server error: %v", err)
			}
			atomic.AddInt64(&e.metrics.errors, 1)
		}
	}()

	if e.logger != nil {
		e.logger.Infof("catalogwire engine started successfully")
	}

	return nil
}

func (e *Engine) Stop(ctx context.Context) error {
	e.state.Lock()
	if !e.state.isRunning {
		e.state.Unlock()
		return nil
	}
	e.state.isRunning = false
	e.state.Unlock()

	if e.server != nil {
		return e.server.Shutdown(ctx)
	}

	return nil
}

func (e *Engine) GetMetrics() map[string]int64 {
	return map[string]int64{
		"requests_processed": atomic.LoadInt64(&e.metrics.requestsProcessed),
		"errors":             atomic.LoadInt64(&e.metrics.errors),
	}
}

func (e *Engine) CheckHealth() error {
	e.state.Lock()
	defer e.state.Unlock()

	if !e.state.isRunning {
		return fmt.Errorf("service not initialized")
	}

	return nil
}

func (e *Engine) TrackOperation() {
	atomic.AddInt32(&e.state.ongoingOperations, 1)
	atomic.AddInt64(&e.metrics.requestsProcessed, 1)
}

func (e *Engine) UntrackOperation() {
	atomic.AddInt32(&e.state.ongoingOperations, -1)
}

func (e *Engine) trackError() {
	atomic.AddInt64(&e.metrics.errors, 1)
}
