package service

import (
	"fmt"
	"strings"

	"weddinghub/internal/models"
	"weddinghub/internal/validation"
)

// maxReportedErrors caps the error list returned to the client; the
// full count is still reported so nothing is hidden
const maxReportedErrors = 10

// previewRowLimit caps how many parsed rows a preview returns
const previewRowLimit = 10

// ImportGuestStore is the guest persistence the import pipeline needs
type ImportGuestStore interface {
	GetByEmail(email string) (*models.Guest, error)
	Create(g *models.Guest) error
}

// ImportService turns uploaded guest-list CSVs (and spreadsheet rows
// from other sources) into guest records.
type ImportService struct {
	guests  ImportGuestStore
	maxSize int64
}

// NewImportService creates a new import service. maxSize bounds accepted
// upload sizes in bytes.
func NewImportService(guests ImportGuestStore, maxSize int64) *ImportService {
	if maxSize <= 0 {
		maxSize = 5 * 1024 * 1024
	}
	return &ImportService{guests: guests, maxSize: maxSize}
}

// headerAliases maps the canonical guest fields to the header spellings
// accepted in uploads. Matching is case-insensitive on the trimmed header.
var headerAliases = map[string][]string{
	"firstName":           {"first name", "firstname", "first", "given name"},
	"lastName":            {"last name", "lastname", "last", "surname", "family name"},
	"email":               {"email", "email address", "e-mail"},
	"phone":               {"phone", "phone number", "telephone", "mobile"},
	"addressLine1":        {"address", "address line 1", "address1", "street", "street address"},
	"addressLine2":        {"address line 2", "address2", "apt", "unit"},
	"city":                {"city", "town"},
	"state":               {"state", "province", "region"},
	"zipCode":             {"zip", "zip code", "zipcode", "postal code"},
	"country":             {"country"},
	"dietaryRestrictions": {"dietary restrictions", "dietary", "diet", "allergies"},
	"notes":               {"notes", "comments"},
}

// requiredFields must all resolve to a column for an import to proceed
var requiredFields = []string{"firstName", "lastName", "email"}

// ImportPreview shows what an import would do without writing anything
type ImportPreview struct {
	Headers     []string       `json:"headers"`
	Rows        []GuestRow     `json:"rows"`
	TotalRows   int            `json:"totalRows"`
	ValidRows   int            `json:"validRows"`
	Errors      []string       `json:"errors"`
	TotalErrors int            `json:"totalErrors"`
}

// ImportReport summarizes a completed import
type ImportReport struct {
	Imported    int      `json:"imported"`
	Skipped     int      `json:"skipped"`
	Errors      []string `json:"errors"`
	TotalErrors int      `json:"totalErrors"`
}

// GuestRow is one parsed, validated upload row
type GuestRow struct {
	FirstName           string  `json:"firstName"`
	LastName            string  `json:"lastName"`
	Email               string  `json:"email"`
	Phone               *string `json:"phone"`
	AddressLine1        *string `json:"addressLine1"`
	AddressLine2        *string `json:"addressLine2"`
	City                *string `json:"city"`
	State               *string `json:"state"`
	ZipCode             *string `json:"zipCode"`
	Country             *string `json:"country"`
	DietaryRestrictions *string `json:"dietaryRestrictions"`
	Notes               *string `json:"notes"`
}

// CheckUpload rejects uploads on structure before any parsing: the file
// must carry a .csv name and fit the size limit.
func (s *ImportService) CheckUpload(filename string, size int64) error {
	if !strings.HasSuffix(strings.ToLower(filename), ".csv") {
		return fmt.Errorf("%w: file must be a .csv", ErrMalformedInput)
	}
	if size > s.maxSize {
		return fmt.Errorf("%w: file exceeds %d byte limit", ErrMalformedInput, s.maxSize)
	}
	return nil
}

// PreviewCSV parses an upload and reports what an import would do. At
// most ten rows come back for display; totals always reflect every
// scanned row.
func (s *ImportService) PreviewCSV(data []byte) (*ImportPreview, error) {
	headers, rows, parseErrs, err := s.parse(data)
	if err != nil {
		return nil, err
	}

	preview := &ImportPreview{
		Headers:   headers,
		TotalRows: len(rows) + countRowErrors(parseErrs),
	}

	seen := make(map[string]bool)
	var allErrors []string
	allErrors = append(allErrors, parseErrs...)

	for _, row := range rows {
		if dup := s.duplicateError(row, seen); dup != "" {
			allErrors = append(allErrors, dup)
			continue
		}
		seen[strings.ToLower(row.Email)] = true
		preview.ValidRows++
		if len(preview.Rows) < previewRowLimit {
			preview.Rows = append(preview.Rows, row)
		}
	}

	preview.TotalErrors = len(allErrors)
	preview.Errors = capErrors(allErrors)
	return preview, nil
}

// ImportCSV parses an upload and creates a guest per valid row. Rows
// that fail validation or duplicate an existing guest are skipped and
// reported; one bad row never aborts the rest.
func (s *ImportService) ImportCSV(data []byte) (*ImportReport, error) {
	_, rows, parseErrs, err := s.parse(data)
	if err != nil {
		return nil, err
	}
	return s.persistRows(rows, parseErrs), nil
}

// ImportRows feeds externally sourced spreadsheet rows (first row being
// headers) through the same validation and persistence as a CSV upload
func (s *ImportService) ImportRows(values [][]string) (*ImportReport, error) {
	if len(values) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", ErrMalformedInput)
	}

	columns, err := resolveColumns(values[0])
	if err != nil {
		return nil, err
	}

	rows, parseErrs := s.buildRows(values[1:], columns)
	return s.persistRows(rows, parseErrs), nil
}

// persistRows creates a guest per valid row, skipping duplicates
func (s *ImportService) persistRows(rows []GuestRow, parseErrs []string) *ImportReport {
	report := &ImportReport{Skipped: countRowErrors(parseErrs)}
	allErrors := append([]string{}, parseErrs...)

	seen := make(map[string]bool)
	for _, row := range rows {
		if dup := s.duplicateError(row, seen); dup != "" {
			allErrors = append(allErrors, dup)
			report.Skipped++
			continue
		}
		seen[strings.ToLower(row.Email)] = true

		guest := &models.Guest{
			FirstName:           row.FirstName,
			LastName:            row.LastName,
			Email:               row.Email,
			Phone:               row.Phone,
			AddressLine1:        row.AddressLine1,
			AddressLine2:        row.AddressLine2,
			City:                row.City,
			State:               row.State,
			ZipCode:             row.ZipCode,
			Country:             row.Country,
			DietaryRestrictions: row.DietaryRestrictions,
			Notes:               row.Notes,
		}
		if err := s.guests.Create(guest); err != nil {
			allErrors = append(allErrors, fmt.Sprintf("Failed to save %s: storage error", row.Email))
			report.Skipped++
			continue
		}
		report.Imported++
	}

	report.TotalErrors = len(allErrors)
	report.Errors = capErrors(allErrors)
	return report
}

// parse splits CSV data into validated rows plus per-row error strings
func (s *ImportService) parse(data []byte) (headers []string, rows []GuestRow, rowErrors []string, err error) {
	lines := splitLines(string(data))
	if len(lines) < 2 {
		return nil, nil, nil, fmt.Errorf("%w: need a header row and at least one data row", ErrMalformedInput)
	}

	headers = parseCSVLine(lines[0])
	columns, err := resolveColumns(headers)
	if err != nil {
		return nil, nil, nil, err
	}

	var records [][]string
	for _, line := range lines[1:] {
		records = append(records, parseCSVLine(line))
	}

	rows, rowErrors = s.buildRows(records, columns)
	return headers, rows, rowErrors, nil
}

// buildRows validates record slices against the resolved column map.
// Row numbers in error strings count the header as row 1, so the first
// data row is "Row 2" and matches what a spreadsheet shows.
func (s *ImportService) buildRows(records [][]string, columns map[string]int) ([]GuestRow, []string) {
	var rows []GuestRow
	var rowErrors []string

	for i, record := range records {
		rowNum := i + 2

		get := func(field string) string {
			idx, ok := columns[field]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		row := GuestRow{
			FirstName: get("firstName"),
			LastName:  get("lastName"),
			Email:     get("email"),
		}

		if row.FirstName == "" || row.LastName == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: first and last name are required", rowNum))
			continue
		}
		if row.Email == "" {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: email is required", rowNum))
			continue
		}
		if !validation.IsValidEmail(row.Email) {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: invalid email %q", rowNum, row.Email))
			continue
		}

		if phone := get("phone"); phone != "" {
			if err := validation.ValidatePhone(phone); err != nil {
				rowErrors = append(rowErrors, fmt.Sprintf("Row %d: invalid phone %q", rowNum, phone))
				continue
			}
			normalized := validation.NormalizePhone(phone)
			row.Phone = &normalized
		}

		row.AddressLine1 = optional(get("addressLine1"))
		row.AddressLine2 = optional(get("addressLine2"))
		row.City = optional(get("city"))
		row.State = optional(get("state"))
		row.ZipCode = optional(get("zipCode"))
		row.Country = optional(get("country"))
		row.DietaryRestrictions = optional(get("dietaryRestrictions"))
		row.Notes = optional(get("notes"))

		rows = append(rows, row)
	}

	return rows, rowErrors
}

// duplicateError returns a non-empty message when the row's email is
// already in this upload or in the guest table
func (s *ImportService) duplicateError(row GuestRow, seen map[string]bool) string {
	key := strings.ToLower(row.Email)
	if seen[key] {
		return fmt.Sprintf("Duplicate email in file: %s", row.Email)
	}

	existing, err := s.guests.GetByEmail(row.Email)
	if err != nil {
		return fmt.Sprintf("Failed to check %s: storage error", row.Email)
	}
	if existing != nil {
		return fmt.Sprintf("Guest already exists: %s", row.Email)
	}
	return ""
}

// resolveColumns maps canonical fields to column indexes via the alias
// table. Missing required columns abort the import.
func resolveColumns(headers []string) (map[string]int, error) {
	columns := make(map[string]int)

	for idx, header := range headers {
		normalized := strings.ToLower(strings.TrimSpace(header))
		for field, aliases := range headerAliases {
			if _, taken := columns[field]; taken {
				continue
			}
			for _, alias := range aliases {
				if normalized == alias {
					columns[field] = idx
					break
				}
			}
		}
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := columns[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required column(s): %s", ErrMalformedInput, strings.Join(missing, ", "))
	}

	return columns, nil
}

// parseCSVLine splits one CSV line honoring double quotes. A doubled
// quote inside a quoted field is a literal quote.
func parseCSVLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	fields = append(fields, current.String())
	return fields
}

// splitLines breaks CSV data into non-empty lines, tolerating both LF
// and CRLF endings
func splitLines(data string) []string {
	var lines []string
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func countRowErrors(errs []string) int {
	return len(errs)
}

func capErrors(errs []string) []string {
	if len(errs) > maxReportedErrors {
		return errs[:maxReportedErrors]
	}
	return errs
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
