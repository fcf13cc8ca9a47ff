package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"event_reminder/internal/app"
	"event_reminder/internal/domain/notify"
	"event_reminder/internal/domain/reminder"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type fakeReminders struct {
	forceResult *app.ManualResult
	forceErr    error
	forcedIDs   []int64
	passReport  *app.PassReport
	passErr     error
	passes      int
}

func (f *fakeReminders) RunDailyPass(context.Context) (*app.PassReport, error) {
	f.passes++
	return f.passReport, f.passErr
}

func (f *fakeReminders) ForceSend(_ context.Context, eventID int64) (*app.ManualResult, error) {
	f.forcedIDs = append(f.forcedIDs, eventID)
	return f.forceResult, f.forceErr
}

func newTestServer(fr *fakeReminders) http.Handler {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return NewServer(":0", testSecret, fr, logrus.NewEntry(l)).Handler()
}

func signToken(t *testing.T, method jwt.SigningMethod, secret string, exp time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{"sub": "operator", "iat": time.Now().Unix()}
	if !exp.IsZero() {
		claims["exp"] = exp.Unix()
	}
	tok, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func doRequest(h http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthzNeedsNoToken(t *testing.T) {
	rec := doRequest(newTestServer(&fakeReminders{}), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthRejectsBadTokens(t *testing.T) {
	fr := &fakeReminders{}
	h := newTestServer(fr)
	valid := time.Now().Add(time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing", token: ""},
		{name: "garbage", token: "not-a-jwt"},
		{name: "wrong secret", token: signToken(t, jwt.SigningMethodHS256, "another-secret-another-secret-xx", valid)},
		{name: "wrong algorithm", token: signToken(t, jwt.SigningMethodHS512, testSecret, valid)},
		{name: "expired", token: signToken(t, jwt.SigningMethodHS256, testSecret, time.Now().Add(-time.Hour))},
		{name: "no expiry", token: signToken(t, jwt.SigningMethodHS256, testSecret, time.Time{})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(h, http.MethodPost, "/api/reminders/run", tt.token)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
	if fr.passes != 0 {
		t.Fatalf("pass must not run for rejected requests, ran %d times", fr.passes)
	}
}

func TestForceSendStatusMapping(t *testing.T) {
	okResult := &app.ManualResult{
		EventID:    7,
		Occurrence: reminder.NewDate(2026, 6, 13),
		Days:       3,
		Label:      "3 days before the event",
		Delivered:  []string{"a@example.com"},
	}
	failedResult := &app.ManualResult{
		EventID:  7,
		Failures: []notify.RecipientFailure{{Recipient: "a@example.com", Err: errors.New("refused")}},
	}

	tests := []struct {
		name     string
		result   *app.ManualResult
		err      error
		wantCode int
	}{
		{name: "sent", result: okResult, wantCode: http.StatusOK},
		{name: "not found", err: fmt.Errorf("%w: %d", app.ErrEventNotFound, 7), wantCode: http.StatusNotFound},
		{name: "no recipients", err: app.ErrNoRecipients, wantCode: http.StatusUnprocessableEntity},
		{name: "no date", err: app.ErrNoDate, wantCode: http.StatusUnprocessableEntity},
		{name: "all failed", result: failedResult, err: app.ErrSendFailed, wantCode: http.StatusBadGateway},
		{name: "store error", err: errors.New("connection refused"), wantCode: http.StatusInternalServerError},
	}
	token := signToken(t, jwt.SigningMethodHS256, testSecret, time.Now().Add(time.Hour))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := &fakeReminders{forceResult: tt.result, forceErr: tt.err}
			rec := doRequest(newTestServer(fr), http.MethodPost, "/api/events/7/reminders/send", token)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d (%s)", tt.wantCode, rec.Code, rec.Body.String())
			}
			if len(fr.forcedIDs) != 1 || fr.forcedIDs[0] != 7 {
				t.Fatalf("unexpected forced ids %v", fr.forcedIDs)
			}
		})
	}
}

func TestForceSendResponseBody(t *testing.T) {
	fr := &fakeReminders{forceResult: &app.ManualResult{
		EventID:    7,
		Occurrence: reminder.NewDate(2026, 6, 7),
		Days:       -3,
		Label:      "3 days after the event",
		Delivered:  []string{"a@example.com"},
	}}
	token := signToken(t, jwt.SigningMethodHS256, testSecret, time.Now().Add(time.Hour))
	rec := doRequest(newTestServer(fr), http.MethodPost, "/api/events/7/reminders/send", token)

	var body manualSendResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Occurrence != "2026-06-07" || body.Days != -3 || body.Label != "3 days after the event" {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestForceSendRejectsZeroID(t *testing.T) {
	fr := &fakeReminders{}
	token := signToken(t, jwt.SigningMethodHS256, testSecret, time.Now().Add(time.Hour))
	rec := doRequest(newTestServer(fr), http.MethodPost, "/api/events/0/reminders/send", token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(fr.forcedIDs) != 0 {
		t.Fatal("service must not be called for an invalid id")
	}
}

func TestRunPass(t *testing.T) {
	token := signToken(t, jwt.SigningMethodHS256, testSecret, time.Now().Add(time.Hour))

	fr := &fakeReminders{passReport: &app.PassReport{RunID: "r1", Date: reminder.NewDate(2026, 6, 10), RemindersSent: 2}}
	rec := doRequest(newTestServer(fr), http.MethodPost, "/api/reminders/run", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body passResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.RunID != "r1" || body.Date != "2026-06-10" || body.RemindersSent != 2 {
		t.Fatalf("unexpected body %+v", body)
	}

	busy := &fakeReminders{passErr: app.ErrPassInProgress}
	rec = doRequest(newTestServer(busy), http.MethodPost, "/api/reminders/run", token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
