// Package server exposes the logbook report as a JSON API
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"logbook/internal/currency"
	"logbook/internal/dates"
	"logbook/internal/report"
	"logbook/internal/stats"
	"logbook/internal/storage"
)

// Server serves the dashboard API for a single pilot
type Server struct {
	store   storage.Storage
	builder *report.Builder
	pilotID uuid.UUID
	logger  *zap.Logger
	metrics *Metrics
	router  *mux.Router
	now     func() time.Time

	// Mode is reported on the root endpoint
	Mode string
}

// New creates the server and registers its routes
func New(store storage.Storage, builder *report.Builder, pilotID uuid.UUID, logger *zap.Logger, metrics *Metrics) *Server {
	s := &Server{
		store:   store,
		builder: builder,
		pilotID: pilotID,
		logger:  logger,
		metrics: metrics,
		router:  mux.NewRouter(),
		now:     time.Now,
		Mode:    "api",
	}

	s.router.Use(metrics.middleware)
	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.handleRoot).Methods(http.MethodGet)
	s.router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	api.HandleFunc("/currency", s.handleCurrency).Methods(http.MethodGet)
	api.HandleFunc("/medical", s.handleMedical).Methods(http.MethodGet)
	api.HandleFunc("/flights/recent", s.handleRecentFlights).Methods(http.MethodGet)
	api.HandleFunc("/statistics/monthly", s.handleMonthly).Methods(http.MethodGet)
	api.HandleFunc("/leaderboards", s.handleLeaderboards).Methods(http.MethodGet)
	return s
}

// Handle registers an extra endpoint, e.g. the Telegram webhook
func (s *Server) Handle(path string, h http.Handler, methods ...string) {
	route := s.router.Handle(path, h)
	if len(methods) > 0 {
		route.Methods(methods...)
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, "Pilot logbook is running (mode: %s)", s.Mode)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var bad badRequest
	switch {
	case errors.As(err, &bad):
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: bad.Error()})
	case errors.Is(err, storage.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	default:
		s.logger.Error("Request failed", zap.String("path", r.URL.Path), zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

// asOf reads the optional as_of query parameter, defaulting to today
func (s *Server) asOf(r *http.Request) (time.Time, error) {
	v := r.URL.Query().Get("as_of")
	if v == "" {
		return dates.Day(s.now()), nil
	}
	t, err := dates.ParseISO(v)
	if err != nil {
		return time.Time{}, badRequest{msg: fmt.Sprintf("invalid as_of %q, expected YYYY-MM-DD", v)}
	}
	return t, nil
}

// maxLimit bounds the length of list responses
const maxLimit = 1000

// positiveInt reads an optional integer query parameter in [1, upper]
func positiveInt(r *http.Request, name string, def, upper int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > upper {
		return 0, badRequest{msg: fmt.Sprintf("invalid %s %q, expected an integer from 1 to %d", name, v, upper)}
	}
	return n, nil
}

func (s *Server) buildReport(r *http.Request) (*report.Report, error) {
	asOf, err := s.asOf(r)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	rep, err := s.builder.Build(r.Context(), s.pilotID, asOf)
	s.metrics.ObserveReport(time.Since(start), err)
	return rep, err
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	rep, err := s.buildReport(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rep)
}

type currencyResponse struct {
	AsOf               string                   `json:"as_of"`
	Currency           currency.PassengerStatus `json:"currency"`
	DayDaysRemaining   *int                     `json:"day_days_remaining"`
	NightDaysRemaining *int                     `json:"night_days_remaining"`
}

func (s *Server) handleCurrency(w http.ResponseWriter, r *http.Request) {
	rep, err := s.buildReport(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, currencyResponse{
		AsOf:               rep.AsOf,
		Currency:           rep.Stats.Currency,
		DayDaysRemaining:   rep.Stats.DayCurrencyDays,
		NightDaysRemaining: rep.Stats.NightCurrencyDays,
	})
}

func (s *Server) handleMedical(w http.ResponseWriter, r *http.Request) {
	rep, err := s.buildReport(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"medical": rep.Stats.Medical,
		"license": rep.Stats.License,
	})
}

func (s *Server) handleRecentFlights(w http.ResponseWriter, r *http.Request) {
	limit, err := positiveInt(r, "limit", stats.DefaultLimit, maxLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	flights, err := s.store.ListFlights(r.Context(), s.pilotID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats.RecentFlights(flights, limit))
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	months, err := positiveInt(r, "months", stats.DefaultMonths, stats.MaxMonths)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	asOf, err := s.asOf(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	flights, err := s.store.ListFlights(r.Context(), s.pilotID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats.MonthlyBreakdown(flights, months, asOf))
}

func (s *Server) handleLeaderboards(w http.ResponseWriter, r *http.Request) {
	limit, err := positiveInt(r, "limit", stats.DefaultLimit, maxLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ledger, err := storage.LoadLedger(r.Context(), s.store, s.pilotID)
	if err != nil && !errors.Is(err, storage.ErrMedicals) {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report.Leaderboards{
		Passengers:  stats.PassengerLeaderboard(ledger.Flights, limit),
		Instructors: stats.InstructorLeaderboard(ledger.Flights, ledger.Grounds, limit),
	})
}
