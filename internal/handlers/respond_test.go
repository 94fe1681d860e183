package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"weddinghub/internal/service"
)

func TestRespondErrorWritesJSONBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondError(recorder, http.StatusTeapot, "teapot", nil)

	if recorder.Code != http.StatusTeapot {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}
	if ct := recorder.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected JSON content type, got %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["error"] != "teapot" {
		t.Fatalf("expected error 'teapot', got %q", body["error"])
	}
}

func TestRespondErrorLogsInternalDetail(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	respondError(recorder, http.StatusInternalServerError, "internal server error", errors.New("boom"))

	if !strings.Contains(buf.String(), "boom") {
		t.Fatalf("expected log to include error detail, got %q", buf.String())
	}
	if strings.Contains(recorder.Body.String(), "boom") {
		t.Fatalf("internal detail leaked to the client: %q", recorder.Body.String())
	}
}

func TestRespondServiceErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: service.ErrNotFound, wantStatus: http.StatusNotFound},
		{name: "malformed input", err: fmt.Errorf("%w: bad field", service.ErrMalformedInput), wantStatus: http.StatusBadRequest},
		{name: "conflict", err: fmt.Errorf("%w: duplicate", service.ErrConflict), wantStatus: http.StatusConflict},
		{name: "invalid credentials", err: service.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized},
		{name: "locked out", err: service.ErrLockedOut, wantStatus: http.StatusTooManyRequests},
		{name: "not authorized", err: service.ErrNotAuthorized, wantStatus: http.StatusForbidden},
		{name: "unknown error is opaque 500", err: errors.New("sql: database is locked"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondServiceError(recorder, tt.err)

			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusInternalServerError &&
				strings.Contains(recorder.Body.String(), "database") {
				t.Errorf("internal error detail leaked: %q", recorder.Body.String())
			}
		})
	}
}
