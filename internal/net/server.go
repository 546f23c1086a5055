package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"

	"github.com/shenxianovo/trading-simulator/internal/common"
	"github.com/shenxianovo/trading-simulator/internal/exchange"
)

const (
	defaultReadTimeout     = 5 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// Server is the JSON/HTTP front of the exchange service.
type Server struct {
	address string
	port    int
	svc     *exchange.Service
	router  *mux.Router
}

func New(address string, port int, svc *exchange.Service) *Server {
	s := &Server{
		address: address,
		port:    port,
		svc:     svc,
		router:  mux.NewRouter(),
	}

	api := s.router.PathPrefix("/api/trading").Subrouter()
	api.HandleFunc("/order", s.handleSubmit).Methods(http.MethodPost)
	api.HandleFunc("/order", s.handleCancel).Methods(http.MethodDelete)
	api.HandleFunc("/book/{securityId}", s.handleDepth).Methods(http.MethodGet)
	api.HandleFunc("/book/{securityId}/reset", s.handleReset).Methods(http.MethodPost)
	return s
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	t, ctx := tomb.WithContext(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", s.address, s.port),
		Handler:      s.router,
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
	}

	t.Go(func() error {
		log.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to serve: %w", err)
		}
		return nil
	})
	t.Go(func() error {
		<-t.Dying()
		log.Info().Msg("server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return t.Wait()
}

// handleSubmit accepts an order submission and responds with the matched
// order, or with the rejection record when the order fails validation or
// risk. Both shapes go back with 200: a rejection is a report, not a
// transport failure.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub common.OrderSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed order json"})
		return
	}

	result := s.svc.Submit(sub)
	if result.Reject != nil {
		writeJSON(w, http.StatusOK, result.Reject)
		return
	}
	writeJSON(w, http.StatusOK, result.Order)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	var req CancelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed cancel json"})
		return
	}

	cancelled := s.svc.Cancel(req.ClOrderID, req.SecurityID, req.Side, req.Price, req.ShareholderID)
	writeJSON(w, http.StatusOK, CancelResponse{
		ClOrderID:  req.ClOrderID,
		SecurityID: req.SecurityID,
		Cancelled:  cancelled,
	})
}

func (s *Server) handleDepth(w http.ResponseWriter, r *http.Request) {
	securityID := mux.Vars(r)["securityId"]
	bids, asks := s.svc.Depth(securityID)
	writeJSON(w, http.StatusOK, DepthResponse{
		SecurityID: securityID,
		Bids:       toLevelViews(bids),
		Asks:       toLevelViews(asks),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	securityID := mux.Vars(r)["securityId"]
	s.svc.ResetBook(securityID)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("unable to write response")
	}
}
