// Package api exposes the demo's screens as JSON endpoints: account
// summary, transaction history with filters, preference management, the
// login flow, and the stubbed money-movement forms.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"bankdemo/pkg/bank"
	"bankdemo/pkg/identity"
	"bankdemo/pkg/logging"
	"bankdemo/pkg/metrics"
	"bankdemo/pkg/prefs"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server serves the demo API over the canonical dataset.
type Server struct {
	dataset   *bank.Dataset
	prefs     *prefs.Manager
	idp       identity.Provider
	collector metrics.Collector
	logger    *logging.Logger
	server    *http.Server
	config    ServerConfig
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	// Address to listen on (e.g., ":8080")
	Address string

	// ReadTimeout for HTTP requests
	ReadTimeout time.Duration

	// WriteTimeout for HTTP responses
	WriteTimeout time.Duration
}

// DefaultServerConfig returns a default configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Address:      ":8080",
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
}

// NewServer creates the API server.
func NewServer(dataset *bank.Dataset, prefsManager *prefs.Manager, idp identity.Provider, collector metrics.Collector, config ServerConfig) *Server {
	s := &Server{
		dataset:   dataset,
		prefs:     prefsManager,
		idp:       idp,
		collector: collector,
		logger:    logging.Global().Named("api"),
		config:    config,
	}

	s.server = &http.Server{
		Addr:         config.Address,
		Handler:      s.Router(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// Router builds the route table. Exposed so tests can drive handlers
// through httptest without binding a port.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", s.instrument("/health", s.handleHealth)).Methods(http.MethodGet)

	r.HandleFunc("/accounts", s.instrument("/accounts", s.handleListAccounts)).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}", s.instrument("/accounts/{id}", s.handleGetAccount)).Methods(http.MethodGet)
	r.HandleFunc("/accounts/{id}/transactions", s.instrument("/accounts/{id}/transactions", s.handleAccountTransactions)).Methods(http.MethodGet)

	r.HandleFunc("/transactions", s.instrument("/transactions", s.handleListTransactions)).Methods(http.MethodGet)
	r.HandleFunc("/transactions/recent", s.instrument("/transactions/recent", s.handleRecentTransactions)).Methods(http.MethodGet)

	r.HandleFunc("/preferences/visible-accounts", s.instrument("/preferences/visible-accounts", s.handleGetVisibleAccounts)).Methods(http.MethodGet)
	r.HandleFunc("/preferences/visible-accounts", s.instrument("/preferences/visible-accounts", s.handlePutVisibleAccounts)).Methods(http.MethodPut)
	r.HandleFunc("/preferences/account-order", s.instrument("/preferences/account-order", s.handleGetAccountOrder)).Methods(http.MethodGet)
	r.HandleFunc("/preferences/account-order", s.instrument("/preferences/account-order", s.handlePutAccountOrder)).Methods(http.MethodPut)

	r.HandleFunc("/auth/signup", s.instrument("/auth/signup", s.handleSignUp)).Methods(http.MethodPost)
	r.HandleFunc("/auth/confirm", s.instrument("/auth/confirm", s.handleConfirmSignUp)).Methods(http.MethodPost)
	r.HandleFunc("/auth/signin", s.instrument("/auth/signin", s.handleSignIn)).Methods(http.MethodPost)
	r.HandleFunc("/auth/signout", s.instrument("/auth/signout", s.handleSignOut)).Methods(http.MethodPost)
	r.HandleFunc("/auth/session", s.instrument("/auth/session", s.handleSession)).Methods(http.MethodGet)

	r.HandleFunc("/transfers", s.instrument("/transfers", s.handleTransfer)).Methods(http.MethodPost)
	r.HandleFunc("/deposits", s.instrument("/deposits", s.handleDeposit)).Methods(http.MethodPost)
	r.HandleFunc("/bill-payments", s.instrument("/bill-payments", s.handleBillPayment)).Methods(http.MethodPost)
	r.HandleFunc("/zelle-payments", s.instrument("/zelle-payments", s.handleZellePayment)).Methods(http.MethodPost)

	r.HandleFunc("/theme", s.instrument("/theme", s.handleTheme)).Methods(http.MethodGet)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	return r
}

// Start starts the HTTP server in a goroutine.
func (s *Server) Start() error {
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// instrument wraps a handler with request metrics and debug logging,
// labeled by the route template rather than the concrete path.
func (s *Server) instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		h(sw, r)

		duration := time.Since(start)
		s.collector.RecordRequest(route, r.Method, sw.status, duration)
		s.logger.Debug("request handled",
			zap.String("route", route),
			zap.String("method", r.Method),
			zap.Int("status", sw.status),
			zap.Duration("duration", duration),
		)
	}
}

// statusWriter captures the response status for instrumentation.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
