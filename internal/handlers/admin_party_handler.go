package handlers

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"weddinghub/internal/models"
	"weddinghub/internal/repository"
)

// AdminPartyHandler manages wedding party members
type AdminPartyHandler struct {
	party *repository.PartyRepository
}

// NewAdminPartyHandler creates a new admin wedding party handler
func NewAdminPartyHandler(party *repository.PartyRepository) *AdminPartyHandler {
	return &AdminPartyHandler{party: party}
}

type partyMemberInput struct {
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Side      string  `json:"side"`
	Bio       *string `json:"bio"`
	ImageURL  *string `json:"imageUrl"`
	SortOrder int     `json:"sortOrder"`
}

func (in *partyMemberInput) validate() string {
	in.Name = strings.TrimSpace(in.Name)
	in.Role = strings.TrimSpace(in.Role)
	if in.Name == "" {
		return "name is required"
	}
	if in.Role == "" {
		return "role is required"
	}
	if in.Side != models.PartySideBride && in.Side != models.PartySideGroom {
		return "side must be bride or groom"
	}
	return ""
}

// List returns all wedding party members. GET /api/admin/wedding-party
func (h *AdminPartyHandler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.party.ListAll()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}

	views := make([]partyMemberView, 0, len(members))
	for i := range members {
		views = append(views, toPartyMemberView(&members[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

// Create adds a wedding party member. POST /api/admin/wedding-party
func (h *AdminPartyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input partyMemberInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if msg := input.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg, nil)
		return
	}

	member := &models.WeddingPartyMember{
		Name:      input.Name,
		Role:      input.Role,
		Side:      input.Side,
		Bio:       input.Bio,
		ImageURL:  input.ImageURL,
		SortOrder: input.SortOrder,
	}
	if err := h.party.Create(member); err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}
	respondJSON(w, http.StatusCreated, toPartyMemberView(member))
}

// Update edits a wedding party member. PUT /api/admin/wedding-party/{id}
func (h *AdminPartyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id", nil)
		return
	}

	var input partyMemberInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if msg := input.validate(); msg != "" {
		respondError(w, http.StatusBadRequest, msg, nil)
		return
	}

	member := &models.WeddingPartyMember{
		ID:        id,
		Name:      input.Name,
		Role:      input.Role,
		Side:      input.Side,
		Bio:       input.Bio,
		ImageURL:  input.ImageURL,
		SortOrder: input.SortOrder,
	}
	if err := h.party.Update(member); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}
	respondJSON(w, http.StatusOK, toPartyMemberView(member))
}

// Delete removes a wedding party member.
// DELETE /api/admin/wedding-party/{id}
func (h *AdminPartyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid id", nil)
		return
	}

	if err := h.party.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			respondError(w, http.StatusNotFound, "not found", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "member deleted"})
}
