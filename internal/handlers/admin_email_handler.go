package handlers

import (
	"net/http"
	"strconv"

	"weddinghub/internal/models"
	"weddinghub/internal/repository"
	"weddinghub/internal/service"
	"weddinghub/internal/validation"
)

// AdminEmailHandler serves campaign sends and email diagnostics
type AdminEmailHandler struct {
	inviteService *service.InviteService
	emailService  *service.EmailService
	emailLogs     *repository.EmailLogRepository
	guests        *repository.GuestRepository
}

// NewAdminEmailHandler creates a new admin email handler
func NewAdminEmailHandler(inviteService *service.InviteService, emailService *service.EmailService, emailLogs *repository.EmailLogRepository, guests *repository.GuestRepository) *AdminEmailHandler {
	return &AdminEmailHandler{
		inviteService: inviteService,
		emailService:  emailService,
		emailLogs:     emailLogs,
		guests:        guests,
	}
}

// SendCampaign emails save-the-dates to every guest still waiting on one.
// POST /api/admin/emails/campaign
func (h *AdminEmailHandler) SendCampaign(w http.ResponseWriter, r *http.Request) {
	report, err := h.inviteService.SendSaveTheDates(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

// CampaignPreview renders the save-the-date email with sample values so
// the admin can see it before sending. GET /api/admin/emails/campaign/preview
func (h *AdminEmailHandler) CampaignPreview(w http.ResponseWriter, r *http.Request) {
	firstName := r.URL.Query().Get("firstName")
	if firstName == "" {
		firstName = "Jordan"
	}
	code := r.URL.Query().Get("code")
	if code == "" {
		code = "JM2026-41"
	}
	respondJSON(w, http.StatusOK, h.emailService.PreviewSaveTheDate(firstName, code))
}

// CampaignStats returns invitation-code coverage and how many guests are
// still waiting on a send. GET /api/admin/emails/campaign/stats
func (h *AdminEmailHandler) CampaignStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.guests.SaveTheDateStats()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// Stats returns aggregate delivery counters. GET /api/admin/emails/stats
func (h *AdminEmailHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.emailLogs.Stats()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// Recent returns the latest send attempts. GET /api/admin/emails/recent
func (h *AdminEmailHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	logs, err := h.emailLogs.ListRecent(limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}

	views := make([]emailLogView, 0, len(logs))
	for i := range logs {
		views = append(views, toEmailLogView(&logs[i]))
	}
	respondJSON(w, http.StatusOK, views)
}

// SendTest sends a test email to verify SES configuration.
// POST /api/admin/emails/test
func (h *AdminEmailHandler) SendTest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if !validation.IsValidEmail(body.Email) {
		respondError(w, http.StatusBadRequest, "invalid email address", nil)
		return
	}

	result := h.emailService.SendTest(r.Context(), body.Email)

	status := models.EmailStatusSent
	if !result.Success {
		status = models.EmailStatusFailed
	}
	entry := &models.EmailLog{
		EmailType:      models.EmailTypeTest,
		RecipientEmail: body.Email,
		Subject:        "Wedding site email test",
		Status:         status,
	}
	if result.MessageID != "" {
		entry.MessageID = &result.MessageID
	}
	if err := h.emailLogs.Create(entry); err != nil {
		respondError(w, http.StatusInternalServerError, "internal server error", err)
		return
	}

	if !result.Success {
		respondError(w, http.StatusBadGateway, "test email failed: "+result.Error, nil)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "test email sent"})
}

// TrackOpen is the open-tracking webhook target; it stamps the matching
// log entry and always answers 200 so mail clients see nothing unusual.
// POST /api/emails/opened/{messageID}
func (h *AdminEmailHandler) TrackOpen(w http.ResponseWriter, r *http.Request) {
	if id := r.PathValue("messageID"); id != "" {
		if err := h.emailLogs.MarkOpened(id); err != nil {
			respondError(w, http.StatusInternalServerError, "internal server error", err)
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "ok"})
}
