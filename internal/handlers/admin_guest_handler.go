package handlers

import (
	"io"
	"net/http"

	"weddinghub/internal/service"
)

// csvTemplate is the downloadable import template with one example row
const csvTemplate = `First Name,Last Name,Email,Phone,Address,City,State,Zip,Dietary Restrictions,Notes
Jordan,Miller,jordan@example.com,555-123-4567,123 Main St,Denver,CO,80202,Vegetarian,College friend
`

// AdminGuestHandler serves the guest-list back office
type AdminGuestHandler struct {
	guestService  *service.GuestService
	importService *service.ImportService
	inviteService *service.InviteService
}

// NewAdminGuestHandler creates a new admin guest handler
func NewAdminGuestHandler(guestService *service.GuestService, importService *service.ImportService, inviteService *service.InviteService) *AdminGuestHandler {
	return &AdminGuestHandler{
		guestService:  guestService,
		importService: importService,
		inviteService: inviteService,
	}
}

// ListGuests returns the full guest list. GET /api/admin/guests
func (h *AdminGuestHandler) ListGuests(w http.ResponseWriter, r *http.Request) {
	guests, err := h.guestService.ListGuests()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toGuestViews(guests))
}

// CreateGuest adds a guest. POST /api/admin/guests
func (h *AdminGuestHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var input service.GuestInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	guest, err := h.guestService.CreateGuest(input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, toGuestView(guest))
}

// GetGuest returns one guest with plus-ones. GET /api/admin/guests/{id}
func (h *AdminGuestHandler) GetGuest(w http.ResponseWriter, r *http.Request) {
	guest, err := h.guestService.GetGuest(r.PathValue("id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toGuestView(guest))
}

// UpdateGuest applies an edit. PUT /api/admin/guests/{id}
func (h *AdminGuestHandler) UpdateGuest(w http.ResponseWriter, r *http.Request) {
	var input service.GuestInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	guest, err := h.guestService.UpdateGuest(r.PathValue("id"), input)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, toGuestView(guest))
}

// DeleteGuest removes a guest. DELETE /api/admin/guests/{id}
func (h *AdminGuestHandler) DeleteGuest(w http.ResponseWriter, r *http.Request) {
	if err := h.guestService.DeleteGuest(r.PathValue("id")); err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "guest deleted"})
}

// Stats returns guest-list counters. GET /api/admin/guests/stats
func (h *AdminGuestHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.guestService.Stats()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// ExportCSV downloads the guest list as CSV.
// GET /api/admin/guests/export
func (h *AdminGuestHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	out, err := h.guestService.ExportCSV()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="guest-list.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(out))
}

// DownloadTemplate serves the import template CSV.
// GET /api/admin/guests/import/template
func (h *AdminGuestHandler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="guest-import-template.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csvTemplate))
}

// PreviewImport parses an uploaded CSV without writing anything.
// POST /api/admin/guests/import/preview
func (h *AdminGuestHandler) PreviewImport(w http.ResponseWriter, r *http.Request) {
	data, err := h.readUpload(w, r)
	if err != nil {
		return
	}

	preview, err := h.importService.PreviewCSV(data)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, preview)
}

// Import creates guests from an uploaded CSV.
// POST /api/admin/guests/import
func (h *AdminGuestHandler) Import(w http.ResponseWriter, r *http.Request) {
	data, err := h.readUpload(w, r)
	if err != nil {
		return
	}

	report, err := h.importService.ImportCSV(data)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// GenerateCodes assigns invitation codes to guests missing one.
// POST /api/admin/guests/generate-codes
func (h *AdminGuestHandler) GenerateCodes(w http.ResponseWriter, r *http.Request) {
	assigned, err := h.inviteService.AssignMissingCodes()
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"assigned": assigned})
}

// readUpload pulls the "file" part out of a multipart upload, enforcing
// the structural checks. On failure the response is already written and
// a non-nil error tells the caller to stop.
func (h *AdminGuestHandler) readUpload(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "missing file upload", err)
		return nil, err
	}
	defer file.Close()

	if err := h.importService.CheckUpload(header.Filename, header.Size); err != nil {
		respondServiceError(w, err)
		return nil, err
	}

	data, err := io.ReadAll(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read upload", err)
		return nil, err
	}
	return data, nil
}
