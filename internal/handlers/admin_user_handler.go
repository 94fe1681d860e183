package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"weddinghub/internal/models"
	"weddinghub/internal/repository"
	"weddinghub/internal/security"
	"weddinghub/internal/validation"
)

// AdminUserHandler manages admin accounts
type AdminUserHandler struct {
	users *repository.UserRepository
}

// NewAdminUserHandler creates a new admin user handler
func NewAdminUserHandler(users *repository.UserRepository) *AdminUserHandler {
	return &AdminUserHandler{users: users}
}

// List returns all admin users. GET /api/admin/users
func (h *AdminUserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListAll()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}

	views := make([]userView, 0, len(users))
	for i := range users {
		views = append(views, toUserView(&users[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

// Create adds an admin account. POST /api/admin/users
func (h *AdminUserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	body.Email = strings.ToLower(strings.TrimSpace(body.Email))
	body.Name = strings.TrimSpace(body.Name)
	if !validation.IsValidEmail(body.Email) {
		respondError(w, http.StatusBadRequest, "invalid email address", nil)
		return
	}
	if len(body.Password) < 8 {
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters", nil)
		return
	}
	if body.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	existing, err := h.users.GetByEmail(body.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}
	if existing != nil {
		respondError(w, http.StatusConflict, "a user with that email already exists", nil)
		return
	}

	hash, err := security.HashPassword(body.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}

	user := &models.User{
		Email:        body.Email,
		PasswordHash: hash,
		Name:         body.Name,
		IsAdmin:      true,
	}
	if err := h.users.Create(user); err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}
	respondJSON(w, http.StatusCreated, toUserView(user))
}

// ChangePassword replaces an admin account's password.
// PUT /api/admin/users/{id}/password
func (h *AdminUserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id", nil)
		return
	}

	var body struct {
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if len(body.Password) < 8 {
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters", nil)
		return
	}

	hash, err := security.HashPassword(body.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}

	if err := h.users.UpdatePassword(id, hash); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

// Delete removes an admin account. Deleting your own account is refused
// so the back office cannot lock everyone out. DELETE /api/admin/users/{id}
func (h *AdminUserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id", nil)
		return
	}

	if current := GetUserFromContext(r.Context()); current != nil && current.ID == id {
		respondError(w, http.StatusBadRequest, "cannot delete your own account", nil)
		return
	}

	if err := h.users.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "user deleted"})
}
