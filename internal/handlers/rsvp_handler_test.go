package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"weddinghub/internal/models"
	"weddinghub/internal/security"
	"weddinghub/internal/service"
)

type stubGuestStore struct {
	guests map[string]*models.Guest // keyed by ID
	codes  map[string]string        // invitation code -> guest ID
}

func (s *stubGuestStore) GetByID(id string) (*models.Guest, error) {
	return s.guests[id], nil
}

func (s *stubGuestStore) GetByInvitationCode(code string) (*models.Guest, error) {
	id, ok := s.codes[code]
	if !ok {
		return nil, nil
	}
	return s.guests[id], nil
}

func (s *stubGuestStore) SubmitRSVP(guestID string, attending bool, dietary, specialRequests *string, plusOnes []models.PlusOne) (*models.Guest, error) {
	guest := s.guests[guestID]
	now := time.Now()
	guest.Attending = &attending
	guest.RSVPReceivedAt = &now
	guest.DietaryRestrictions = dietary
	guest.SpecialRequests = specialRequests
	if attending {
		guest.PlusOnes = plusOnes
	} else {
		guest.PlusOnes = nil
	}
	return guest, nil
}

type stubEmailLogStore struct{ logs []*models.EmailLog }

func (s *stubEmailLogStore) Create(entry *models.EmailLog) error {
	s.logs = append(s.logs, entry)
	return nil
}

type stubSender struct{}

func (stubSender) SendRSVPConfirmation(ctx context.Context, toEmail, firstName string, attending bool, plusOneCount int) service.SendResult {
	return service.SendResult{Success: true, MessageID: "test-message"}
}

func newTestRSVPHandler() (*RSVPHandler, *stubGuestStore) {
	store := &stubGuestStore{
		guests: map[string]*models.Guest{
			"g1": {ID: "g1", FirstName: "Jordan", LastName: "Miller", Email: "jordan@example.com"},
		},
		codes: map[string]string{"JM2026-41": "g1"},
	}
	rsvpService := service.NewRSVPService(store, &stubEmailLogStore{}, stubSender{})
	grants := security.NewGrantIssuer("test-grant-secret", time.Hour)
	return NewRSVPHandler(rsvpService, grants), store
}

func newRSVPMux(h *RSVPHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rsvp/access", h.CheckAccess)
	mux.HandleFunc("GET /api/rsvp/{code}", h.LookupCode)
	mux.HandleFunc("POST /api/rsvp/{code}", h.SubmitRSVP)
	return mux
}

func TestLookupCodeReturnsReducedGuest(t *testing.T) {
	handler, _ := newTestRSVPHandler()
	mux := newRSVPMux(handler)

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/rsvp/JM2026-41", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["firstName"] != "Jordan" {
		t.Errorf("firstName = %v, want Jordan", body["firstName"])
	}
	if body["hasResponded"] != false {
		t.Errorf("hasResponded = %v, want false", body["hasResponded"])
	}
	if _, leaked := body["email"]; leaked {
		t.Error("code lookup must not reveal the guest's email")
	}
}

func TestLookupCodeUnknown(t *testing.T) {
	handler, _ := newTestRSVPHandler()
	mux := newRSVPMux(handler)

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/rsvp/ZZ9999", nil))

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", recorder.Code)
	}
}

func TestSubmitRSVPAttendingSetsGrantCookie(t *testing.T) {
	handler, _ := newTestRSVPHandler()
	mux := newRSVPMux(handler)

	payload := `{"attending": true, "plusOnes": [{"firstName": "Robin", "lastName": "Miller"}]}`
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/rsvp/JM2026-41", strings.NewReader(payload)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	cookie := findCookie(recorder.Result().Cookies(), security.GrantCookieName)
	if cookie == nil {
		t.Fatal("expected a grant cookie on an attending RSVP")
	}
	if cookie.Value == "" || cookie.MaxAge < 0 {
		t.Fatalf("expected a live grant cookie, got value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestSubmitRSVPDecliningClearsGrantCookie(t *testing.T) {
	handler, _ := newTestRSVPHandler()
	mux := newRSVPMux(handler)

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/rsvp/JM2026-41", strings.NewReader(`{"attending": false}`)))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	cookie := findCookie(recorder.Result().Cookies(), security.GrantCookieName)
	if cookie == nil {
		t.Fatal("expected a delete cookie on a declining RSVP")
	}
	if cookie.Value != "" || cookie.MaxAge >= 0 {
		t.Fatalf("expected an expiring cookie, got value=%q maxAge=%d", cookie.Value, cookie.MaxAge)
	}
}

func TestCheckAccessHonorsCurrentRSVPState(t *testing.T) {
	handler, store := newTestRSVPHandler()
	mux := newRSVPMux(handler)

	// RSVP yes to pick up a grant.
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/api/rsvp/JM2026-41", strings.NewReader(`{"attending": true}`)))
	grant := findCookie(recorder.Result().Cookies(), security.GrantCookieName)
	if grant == nil {
		t.Fatal("expected a grant cookie")
	}

	check := func() bool {
		req := httptest.NewRequest(http.MethodGet, "/api/rsvp/access", nil)
		req.AddCookie(&http.Cookie{Name: security.GrantCookieName, Value: grant.Value})
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("access check returned %d", rec.Code)
		}
		var body map[string]interface{}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		return body["hasAccess"] == true
	}

	if !check() {
		t.Fatal("attending guest should have access")
	}

	// Flip the RSVP to declining; the same token must stop working.
	declined := false
	store.guests["g1"].Attending = &declined

	if check() {
		t.Fatal("access must follow the current guest record, not the token")
	}
}

func TestCheckAccessWithoutCookie(t *testing.T) {
	handler, _ := newTestRSVPHandler()
	mux := newRSVPMux(handler)

	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/rsvp/access", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), `"hasAccess":false`) {
		t.Fatalf("expected hasAccess false, got %s", recorder.Body.String())
	}
}

func TestCheckAccessWithForgedToken(t *testing.T) {
	handler, _ := newTestRSVPHandler()
	mux := newRSVPMux(handler)

	req := httptest.NewRequest(http.MethodGet, "/api/rsvp/access", nil)
	req.AddCookie(&http.Cookie{Name: security.GrantCookieName, Value: "not-a-real-token"})
	recorder := httptest.NewRecorder()
	mux.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), `"hasAccess":false`) {
		t.Fatalf("expected hasAccess false, got %s", recorder.Body.String())
	}
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}
