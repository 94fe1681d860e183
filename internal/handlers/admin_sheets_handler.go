package handlers

import (
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"weddinghub/internal/security"
	"weddinghub/internal/service"
)

const (
	sheetsStateCookie = "sheets_oauth_state"
	sheetsTokenCookie = "sheets_oauth_token"

	// tokens are only held long enough to run one import
	sheetsCookieTTL = 10 * time.Minute
)

// AdminSheetsHandler imports guests from a Google Sheet via OAuth
type AdminSheetsHandler struct {
	sheets *service.SheetsService
}

// NewAdminSheetsHandler creates a new Sheets import handler
func NewAdminSheetsHandler(sheets *service.SheetsService) *AdminSheetsHandler {
	return &AdminSheetsHandler{sheets: sheets}
}

// Start begins the OAuth consent flow.
// GET /api/admin/sheets/auth
func (h *AdminSheetsHandler) Start(w http.ResponseWriter, r *http.Request) {
	if !h.sheets.IsConfigured() {
		respondError(w, http.StatusServiceUnavailable, "Google Sheets import is not configured", nil)
		return
	}

	state := security.GenerateSessionID()
	h.setTempCookie(w, r, sheetsStateCookie, state)

	http.Redirect(w, r, h.sheets.AuthURL(state), http.StatusFound)
}

// Callback handles the OAuth redirect, trading the code for a token held
// in a short-lived cookie. GET /api/admin/sheets/callback
func (h *AdminSheetsHandler) Callback(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	code := r.URL.Query().Get("code")
	if code == "" {
		respondError(w, http.StatusBadRequest, "missing authorization code", nil)
		return
	}

	stateCookie, err := r.Cookie(sheetsStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != state {
		respondError(w, http.StatusBadRequest, "invalid oauth state", nil)
		return
	}
	h.clearTempCookie(w, r, sheetsStateCookie)

	token, err := h.sheets.Exchange(r.Context(), code)
	if err != nil {
		respondError(w, http.StatusBadGateway, "failed to exchange authorization code", err)
		return
	}

	h.setTempCookie(w, r, sheetsTokenCookie, token.AccessToken)
	http.Redirect(w, r, "/admin/guests/import", http.StatusSeeOther)
}

// Import fetches and imports rows from an authorized spreadsheet.
// POST /api/admin/sheets/import
func (h *AdminSheetsHandler) Import(w http.ResponseWriter, r *http.Request) {
	tokenCookie, err := r.Cookie(sheetsTokenCookie)
	if err != nil || tokenCookie.Value == "" {
		respondError(w, http.StatusUnauthorized, "spreadsheet access not authorized", nil)
		return
	}

	var body struct {
		SpreadsheetID string `json:"spreadsheetId"`
		Range         string `json:"range"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	token := &oauth2.Token{AccessToken: tokenCookie.Value}
	report, err := h.sheets.Import(r.Context(), token, body.SpreadsheetID, body.Range)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	h.clearTempCookie(w, r, sheetsTokenCookie)
	respondJSON(w, http.StatusOK, report)
}

func (h *AdminSheetsHandler) setTempCookie(w http.ResponseWriter, r *http.Request, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(sheetsCookieTTL),
		MaxAge:   int(sheetsCookieTTL.Seconds()),
	})
}

func (h *AdminSheetsHandler) clearTempCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
