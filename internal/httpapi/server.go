// Package httpapi exposes the operator surface: health, metrics, and the
// manual billing trigger.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pgdesk/pgdesk/internal/billing"
)

// BillingRunner triggers billing runs on demand.
type BillingRunner interface {
	RunTick(ctx context.Context) (billing.Report, error)
	RunProperty(ctx context.Context, propertyID string) (billing.Report, error)
}

// Server serves the HTTP API
type Server struct {
	http   *http.Server
	logger *slog.Logger
}

// NewServer builds the server and its routes
func NewServer(addr string, runner BillingRunner, logger *slog.Logger) *Server {
	s := &Server{logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /v1/billing/run", s.handleBillingRun(runner))

	s.http = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown is called
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type billingRunRequest struct {
	PropertyID string `json:"property_id"`
}

type billingRunResponse struct {
	Properties         int      `json:"properties"`
	Tenants            int      `json:"tenants"`
	ObligationsCreated int      `json:"obligations_created"`
	FeesUpdated        int      `json:"fees_updated"`
	Errors             []string `json:"errors,omitempty"`
}

func (s *Server) handleBillingRun(runner BillingRunner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req billingRunRequest
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				s.writeError(w, http.StatusBadRequest, "invalid request body")
				return
			}
		}

		var (
			report billing.Report
			err    error
		)
		if req.PropertyID != "" {
			report, err = runner.RunProperty(r.Context(), req.PropertyID)
		} else {
			report, err = runner.RunTick(r.Context())
		}
		if err != nil {
			s.logger.Error("manual billing run failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "billing run failed")
			return
		}

		resp := billingRunResponse{
			Properties:         report.Properties,
			Tenants:            report.Tenants,
			ObligationsCreated: report.ObligationsCreated,
			FeesUpdated:        report.FeesUpdated,
		}
		for _, te := range report.Errors {
			resp.Errors = append(resp.Errors, fmt.Sprintf("property %s tenant %s: %v", te.PropertyID, te.TenantID, te.Err))
		}
		s.writeJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
