package service

import (
	"fmt"
	"strings"
	"time"

	"weddinghub/internal/models"
)

// exportHeaders is the column order of the guest-list export
var exportHeaders = []string{
	"First Name", "Last Name", "Email", "Phone",
	"Address", "City", "State", "Zip",
	"Invitation Code", "Invited", "RSVP Received", "Attending",
	"Plus Ones", "Dietary Restrictions", "Table", "Notes",
}

// ExportCSV renders the full guest list as CSV for download
func (s *GuestService) ExportCSV() (string, error) {
	guests, err := s.guests.ListAll()
	if err != nil {
		return "", fmt.Errorf("export guests: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(strings.Join(exportHeaders, ","))
	sb.WriteString("\n")

	for i := range guests {
		g := &guests[i]

		var plusOneNames []string
		for _, po := range g.PlusOnes {
			plusOneNames = append(plusOneNames, po.FullName())
		}

		fields := []string{
			g.FirstName,
			g.LastName,
			g.Email,
			derefOr(g.Phone, ""),
			derefOr(g.AddressLine1, ""),
			derefOr(g.City, ""),
			derefOr(g.State, ""),
			derefOr(g.ZipCode, ""),
			derefOr(g.InvitationCode, ""),
			exportTime(g.InvitationSentAt),
			exportTime(g.RSVPReceivedAt),
			exportAttending(g),
			strings.Join(plusOneNames, "; "),
			derefOr(g.DietaryRestrictions, ""),
			exportTable(g.TableNumber),
			derefOr(g.Notes, ""),
		}

		for j, f := range fields {
			fields[j] = escapeCSV(f)
		}
		sb.WriteString(strings.Join(fields, ","))
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// escapeCSV quotes a field when it contains a comma, quote or newline
func escapeCSV(field string) string {
	if !strings.ContainsAny(field, ",\"\n") {
		return field
	}
	return `"` + strings.ReplaceAll(field, `"`, `""`) + `"`
}

func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func exportTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func exportAttending(g *models.Guest) string {
	if !g.HasResponded() || g.Attending == nil {
		return ""
	}
	if *g.Attending {
		return "Yes"
	}
	return "No"
}

func exportTable(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}
