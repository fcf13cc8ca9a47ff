package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"event_reminder/internal/app"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Server exposes the operator endpoints over HTTP.
type Server struct {
	httpServer *http.Server
	reminders  app.ReminderService
	jwtSecret  []byte
	logger     *logrus.Entry
}

func NewServer(addr, jwtSecret string, reminders app.ReminderService, logger *logrus.Entry) *Server {
	s := &Server{
		reminders: reminders,
		jwtSecret: []byte(jwtSecret),
		logger:    logger,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(s.authMiddleware)
	api.HandleFunc("/events/{id:[0-9]+}/reminders/send", s.handleForceSend).Methods(http.MethodPost)
	api.HandleFunc("/reminders/run", s.handleRunPass).Methods(http.MethodPost)

	r.Use(s.loggingMiddleware)
	r.Use(s.recoveryMiddleware)
	return r
}

// Start serves in the background; errors other than a clean shutdown are logged.
func (s *Server) Start() {
	go func() {
		s.logger.WithField("addr", s.httpServer.Addr).Info("HTTP API listening")
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.WithError(err).Error("HTTP API stopped")
		}
	}()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"remote_addr": r.RemoteAddr,
			"status":      rec.status,
			"duration":    time.Since(start).String(),
		}).Info("HTTP request")
	})
}

func (s *Server) recoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.WithField("panic", rec).Error("Recovered from panic")
				respondWithError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
