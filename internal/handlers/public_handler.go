package handlers

import (
	"net/http"

	"weddinghub/internal/models"
	"weddinghub/internal/repository"
	"weddinghub/internal/service"
)

// PublicHandler serves the unauthenticated wedding-site endpoints
type PublicHandler struct {
	guestService *service.GuestService
	venues       *repository.VenueRepository
	party        *repository.PartyRepository
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(guestService *service.GuestService, venues *repository.VenueRepository, party *repository.PartyRepository) *PublicHandler {
	return &PublicHandler{guestService: guestService, venues: venues, party: party}
}

// SubmitSaveTheDate captures a save-the-date signup.
// POST /api/save-the-date
func (h *PublicHandler) SubmitSaveTheDate(w http.ResponseWriter, r *http.Request) {
	var signup service.SaveTheDateSignup
	if err := decodeJSON(r, &signup); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if _, err := h.guestService.SubmitSaveTheDate(r.Context(), signup); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]string{"message": "You're on the list!"})
}

// GetVenue returns the wedding venue. GET /api/venue
func (h *PublicHandler) GetVenue(w http.ResponseWriter, r *http.Request) {
	venue, err := h.venues.GetVenue()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}
	if venue == nil {
		respondError(w, http.StatusNotFound, "not found", nil)
		return
	}
	respondJSON(w, http.StatusOK, toVenueView(venue))
}

// GetEvents returns the public event schedule. GET /api/events
func (h *PublicHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.venues.ListPublicEvents()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}

	views := make([]eventView, 0, len(events))
	for i := range events {
		views = append(views, toEventView(&events[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

// GetHotels returns accommodation suggestions, recommended first.
// GET /api/hotels
func (h *PublicHandler) GetHotels(w http.ResponseWriter, r *http.Request) {
	hotels, err := h.venues.ListHotels()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}

	views := make([]hotelView, 0, len(hotels))
	for i := range hotels {
		views = append(views, toHotelView(&hotels[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

// GetWeddingParty returns the wedding party grouped by side.
// GET /api/wedding-party
func (h *PublicHandler) GetWeddingParty(w http.ResponseWriter, r *http.Request) {
	members, err := h.party.ListAll()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}

	grouped := map[string][]partyMemberView{
		models.PartySideBride: {},
		models.PartySideGroom: {},
	}
	for i := range members {
		m := &members[i]
		grouped[m.Side] = append(grouped[m.Side], toPartyMemberView(m))
	}
	respondJSON(w, http.StatusOK, grouped)
}
