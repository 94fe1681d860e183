package handlers

import (
	"net/http"
	"time"

	"weddinghub/internal/security"
	"weddinghub/internal/service"
)

// RSVPHandler serves the public invitation-code RSVP flow
type RSVPHandler struct {
	rsvpService *service.RSVPService
	grants      *security.GrantIssuer
}

// NewRSVPHandler creates a new RSVP handler
func NewRSVPHandler(rsvpService *service.RSVPService, grants *security.GrantIssuer) *RSVPHandler {
	return &RSVPHandler{rsvpService: rsvpService, grants: grants}
}

// LookupCode resolves an invitation code to the guest's current RSVP
// state. GET /api/rsvp/{code}
func (h *RSVPHandler) LookupCode(w http.ResponseWriter, r *http.Request) {
	guest, err := h.rsvpService.LookupByCode(r.PathValue("code"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toRSVPGuestView(guest))
}

// SubmitRSVP records an RSVP for the guest holding the code. An
// attending guest walks away with an access-grant cookie for the gated
// detail pages; declining clears any grant. POST /api/rsvp/{code}
func (h *RSVPHandler) SubmitRSVP(w http.ResponseWriter, r *http.Request) {
	var sub service.RSVPSubmission
	if err := decodeJSON(r, &sub); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	guest, err := h.rsvpService.SubmitRSVP(r.Context(), r.PathValue("code"), sub)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if guest.IsAttending() {
		token, err := h.grants.Issue(guest.ID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "internal server error", err)
			return
		}
		http.SetCookie(w, security.CreateSessionCookie(r, security.GrantCookieName, token, time.Now().Add(h.grants.TTL())))
	} else {
		http.SetCookie(w, security.CreateDeleteCookie(r, security.GrantCookieName))
	}

	respondJSON(w, http.StatusOK, toRSVPGuestView(guest))
}

// CheckAccess reports whether the caller's grant still names an
// attending guest. The answer comes from the guest record as it is now,
// not from the token. GET /api/rsvp/access
func (h *RSVPHandler) CheckAccess(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(security.GrantCookieName)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]bool{"hasAccess": false})
		return
	}

	guestID, err := h.grants.Verify(cookie.Value)
	if err != nil {
		http.SetCookie(w, security.CreateDeleteCookie(r, security.GrantCookieName))
		respondJSON(w, http.StatusOK, map[string]bool{"hasAccess": false})
		return
	}

	guest, err := h.rsvpService.CheckAccess(guestID)
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]bool{"hasAccess": false})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"hasAccess": true,
		"firstName": guest.FirstName,
	})
}
