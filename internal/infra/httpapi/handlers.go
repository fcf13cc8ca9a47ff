package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"event_reminder/internal/app"

	"github.com/gorilla/mux"
)

type errorResponse struct {
	Error string `json:"error"`
}

type failureResponse struct {
	Recipient string `json:"recipient"`
	Error     string `json:"error"`
}

type manualSendResponse struct {
	EventID    int64             `json:"event_id"`
	Occurrence string            `json:"occurrence"`
	Days       int               `json:"days"`
	Label      string            `json:"label"`
	Delivered  []string          `json:"delivered"`
	Failures   []failureResponse `json:"failures,omitempty"`
}

type passResponse struct {
	RunID            string    `json:"run_id"`
	Date             string    `json:"date"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
	EventsConsidered int       `json:"events_considered"`
	EventsSkipped    int       `json:"events_skipped"`
	RemindersSent    int       `json:"reminders_sent"`
	RemindersFailed  int       `json:"reminders_failed"`
	Errors           int       `json:"errors"`
}

func (s *Server) handleForceSend(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || eventID <= 0 {
		respondWithError(w, http.StatusBadRequest, "invalid event id")
		return
	}
	logger := s.logger.WithField("event_id", eventID)

	result, err := s.reminders.ForceSend(r.Context(), eventID)
	switch {
	case err == nil:
		respondWithJSON(w, http.StatusOK, toManualSendResponse(result))
	case errors.Is(err, app.ErrEventNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrNoRecipients), errors.Is(err, app.ErrNoDate):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, app.ErrSendFailed) && result != nil:
		logger.WithError(err).Warn("Manual send failed for every recipient")
		respondWithJSON(w, http.StatusBadGateway, toManualSendResponse(result))
	default:
		logger.WithError(err).Error("Manual send failed")
		respondWithError(w, http.StatusInternalServerError, "failed to send reminder")
	}
}

func (s *Server) handleRunPass(w http.ResponseWriter, r *http.Request) {
	report, err := s.reminders.RunDailyPass(r.Context())
	switch {
	case err == nil:
		respondWithJSON(w, http.StatusOK, toPassResponse(report))
	case errors.Is(err, app.ErrPassInProgress):
		respondWithError(w, http.StatusConflict, err.Error())
	default:
		s.logger.WithError(err).Error("Reminder pass failed")
		respondWithError(w, http.StatusInternalServerError, "reminder pass failed")
	}
}

func toManualSendResponse(m *app.ManualResult) manualSendResponse {
	resp := manualSendResponse{
		EventID:    m.EventID,
		Occurrence: m.Occurrence.String(),
		Days:       m.Days,
		Label:      m.Label,
		Delivered:  m.Delivered,
	}
	if resp.Delivered == nil {
		resp.Delivered = []string{}
	}
	for _, f := range m.Failures {
		resp.Failures = append(resp.Failures, failureResponse{Recipient: f.Recipient, Error: f.Err.Error()})
	}
	return resp
}

func toPassResponse(p *app.PassReport) passResponse {
	return passResponse{
		RunID:            p.RunID,
		Date:             p.Date.String(),
		StartedAt:        p.StartedAt,
		FinishedAt:       p.FinishedAt,
		EventsConsidered: p.EventsConsidered,
		EventsSkipped:    p.EventsSkipped,
		RemindersSent:    p.RemindersSent,
		RemindersFailed:  p.RemindersFailed,
		Errors:           p.Errors,
	}
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
