package handlers

import (
	"net/http"

	"weddinghub/internal/security"
	"weddinghub/internal/service"
)

// AuthHandler serves admin login and logout
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login authenticates an admin and sets the session cookie.
// POST /api/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	user, session, err := h.authService.Login(r.Context(), body.Email, body.Password, security.GetClientIP(r))
	if err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, AdminSessionCookie, session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusOK, toUserView(user))
}

// Logout ends the admin session. POST /api/admin/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(AdminSessionCookie); err == nil {
		if err := h.authService.Logout(cookie.Value); err != nil {
			respondError(w, http.StatusInternalServerError, "internal server error", err)
			return
		}
	}
	http.SetCookie(w, security.CreateDeleteCookie(r, AdminSessionCookie))
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the authenticated admin. GET /api/admin/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		respondError(w, http.StatusUnauthorized, "authentication required", nil)
		return
	}
	respondJSON(w, http.StatusOK, toUserView(user))
}
