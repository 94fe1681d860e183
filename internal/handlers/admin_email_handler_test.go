package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"weddinghub/internal/config"
	"weddinghub/internal/service"
)

func newPreviewHandler(t *testing.T) *AdminEmailHandler {
	t.Helper()
	emailService, err := service.NewEmailService(&config.Config{
		CoupleNames:     "Emme & CeeJay",
		WeddingYear:     "2026",
		WeddingLocation: "Colorado",
		AppBaseURL:      "https://example.com",
	})
	if err != nil {
		t.Fatalf("NewEmailService failed: %v", err)
	}
	return NewAdminEmailHandler(nil, emailService, nil, nil)
}

func TestCampaignPreviewRendersTemplate(t *testing.T) {
	handler := newPreviewHandler(t)

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/emails/campaign/preview?firstName=Alice&code=AJ2026-17", nil)
	handler.CampaignPreview(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	var preview service.EmailPreview
	if err := json.Unmarshal(recorder.Body.Bytes(), &preview); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !strings.Contains(preview.Subject, "Save the Date") {
		t.Errorf("subject = %q, want save-the-date subject", preview.Subject)
	}
	if !strings.Contains(preview.HTML, "AJ2026-17") {
		t.Error("HTML preview should show the invitation code")
	}
	if !strings.Contains(preview.Text, "Alice") {
		t.Error("text preview should address the sample guest")
	}
}

func TestCampaignPreviewDefaultsSampleValues(t *testing.T) {
	handler := newPreviewHandler(t)

	recorder := httptest.NewRecorder()
	handler.CampaignPreview(recorder, httptest.NewRequest(http.MethodGet, "/api/admin/emails/campaign/preview", nil))

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "JM2026-41") {
		t.Error("preview without parameters should use a sample code")
	}
}
