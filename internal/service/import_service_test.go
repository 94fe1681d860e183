package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"weddinghub/internal/models"
)

type fakeImportStore struct {
	existing map[string]*models.Guest
	created  []*models.Guest
}

func newFakeImportStore(existingEmails ...string) *fakeImportStore {
	s := &fakeImportStore{existing: make(map[string]*models.Guest)}
	for _, e := range existingEmails {
		s.existing[e] = &models.Guest{ID: "existing", Email: e}
	}
	return s
}

func (s *fakeImportStore) GetByEmail(email string) (*models.Guest, error) {
	return s.existing[email], nil
}

func (s *fakeImportStore) Create(g *models.Guest) error {
	s.created = append(s.created, g)
	return nil
}

func TestCheckUpload(t *testing.T) {
	svc := NewImportService(newFakeImportStore(), 1024)

	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{name: "valid csv", filename: "guests.csv", size: 512, wantErr: false},
		{name: "uppercase extension", filename: "GUESTS.CSV", size: 512, wantErr: false},
		{name: "wrong extension", filename: "guests.xlsx", size: 512, wantErr: true},
		{name: "no extension", filename: "guests", size: 512, wantErr: true},
		{name: "too large", filename: "guests.csv", size: 2048, wantErr: true},
		{name: "at the limit", filename: "guests.csv", size: 1024, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.CheckUpload(tt.filename, tt.size)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckUpload(%q, %d) error = %v, wantErr %v", tt.filename, tt.size, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrMalformedInput) {
				t.Errorf("structural failures should wrap ErrMalformedInput, got %v", err)
			}
		})
	}
}

func TestParseCSVLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []string
	}{
		{
			name:     "plain fields",
			line:     "a,b,c",
			expected: []string{"a", "b", "c"},
		},
		{
			name:     "quoted field with comma",
			line:     `Jordan,"Miller, Jr.",j@example.com`,
			expected: []string{"Jordan", "Miller, Jr.", "j@example.com"},
		},
		{
			name:     "doubled quote is a literal quote",
			line:     `"say ""hi""",b`,
			expected: []string{`say "hi"`, "b"},
		},
		{
			name:     "empty fields",
			line:     "a,,c",
			expected: []string{"a", "", "c"},
		},
		{
			name:     "trailing empty field",
			line:     "a,b,",
			expected: []string{"a", "b", ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseCSVLine(tt.line)
			if len(result) != len(tt.expected) {
				t.Fatalf("parseCSVLine(%q) = %v, want %v", tt.line, result, tt.expected)
			}
			for i := range result {
				if result[i] != tt.expected[i] {
					t.Errorf("field %d = %q, want %q", i, result[i], tt.expected[i])
				}
			}
		})
	}
}

func TestResolveColumnsAliases(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		wantErr bool
	}{
		{
			name:    "canonical headers",
			headers: []string{"First Name", "Last Name", "Email"},
			wantErr: false,
		},
		{
			name:    "alias headers",
			headers: []string{"first", "surname", "e-mail", "mobile", "zip"},
			wantErr: false,
		},
		{
			name:    "case and whitespace insensitive",
			headers: []string{"  FIRST NAME ", "LastName", "Email Address"},
			wantErr: false,
		},
		{
			name:    "missing email column",
			headers: []string{"First Name", "Last Name", "Phone"},
			wantErr: true,
		},
		{
			name:    "unrecognized headers only",
			headers: []string{"foo", "bar"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveColumns(tt.headers)
			if (err != nil) != tt.wantErr {
				t.Errorf("resolveColumns(%v) error = %v, wantErr %v", tt.headers, err, tt.wantErr)
			}
		})
	}
}

func TestImportCSV(t *testing.T) {
	store := newFakeImportStore("taken@example.com")
	svc := NewImportService(store, 0)

	csv := strings.Join([]string{
		"First Name,Last Name,Email,Phone,City",
		"Jordan,Miller,jordan@example.com,555-123-4567,Denver",
		"Casey,Reyes,taken@example.com,,Boulder",      // already in the guest table
		"Sam,,missing-name@example.com,,",             // missing last name
		"Robin,Lee,not-an-email,,",                    // bad email
		"Alex,Kim,alex@example.com,12,Golden",         // bad phone
		"Jordan,Miller,jordan@example.com,,Denver",    // duplicate within the file
		`Pat,"O'Brien, III",pat@example.com,,Lakewood`, // quoted field
	}, "\n")

	report, err := svc.ImportCSV([]byte(csv))
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}

	if report.Imported != 2 {
		t.Errorf("imported = %d, want 2", report.Imported)
	}
	if report.Skipped != 5 {
		t.Errorf("skipped = %d, want 5", report.Skipped)
	}
	if report.TotalErrors != 5 {
		t.Errorf("totalErrors = %d, want 5", report.TotalErrors)
	}

	if len(store.created) != 2 {
		t.Fatalf("created %d guests, want 2", len(store.created))
	}
	if store.created[0].Phone == nil || *store.created[0].Phone != "+15551234567" {
		t.Errorf("phone not normalized: %v", store.created[0].Phone)
	}
	if store.created[1].LastName != "O'Brien, III" {
		t.Errorf("quoted last name = %q, want \"O'Brien, III\"", store.created[1].LastName)
	}
	if store.created[0].City == nil || *store.created[0].City != "Denver" {
		t.Errorf("optional city not carried: %v", store.created[0].City)
	}
}

func TestImportCSVRowNumbersInErrors(t *testing.T) {
	svc := NewImportService(newFakeImportStore(), 0)

	// Row numbers count the header as row 1, matching the spreadsheet
	// the admin is looking at.
	csv := "First Name,Last Name,Email\n,,first@example.com\nJordan,Miller,jordan@example.com\n,,third@example.com\n"
	report, err := svc.ImportCSV([]byte(csv))
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}
	if len(report.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %v", report.Errors)
	}
	if !strings.HasPrefix(report.Errors[0], "Row 2:") {
		t.Errorf("first data row should report as Row 2: %q", report.Errors[0])
	}
	if !strings.HasPrefix(report.Errors[1], "Row 4:") {
		t.Errorf("third data row should report as Row 4: %q", report.Errors[1])
	}
}

func TestImportCSVErrorListCapped(t *testing.T) {
	svc := NewImportService(newFakeImportStore(), 0)

	var sb strings.Builder
	sb.WriteString("First Name,Last Name,Email\n")
	for i := 0; i < 15; i++ {
		sb.WriteString(fmt.Sprintf("Guest%d,,missing%d@example.com\n", i, i))
	}

	report, err := svc.ImportCSV([]byte(sb.String()))
	if err != nil {
		t.Fatalf("ImportCSV failed: %v", err)
	}
	if len(report.Errors) != maxReportedErrors {
		t.Errorf("errors list length = %d, want %d", len(report.Errors), maxReportedErrors)
	}
	if report.TotalErrors != 15 {
		t.Errorf("totalErrors = %d, want 15", report.TotalErrors)
	}
}

func TestImportCSVRejectsHeaderOnly(t *testing.T) {
	svc := NewImportService(newFakeImportStore(), 0)

	_, err := svc.ImportCSV([]byte("First Name,Last Name,Email\n"))
	if !errors.Is(err, ErrMalformedInput) {
		t.Errorf("header-only file error = %v, want ErrMalformedInput", err)
	}
}

func TestPreviewCSVLimitsRowsNotTotals(t *testing.T) {
	svc := NewImportService(newFakeImportStore(), 0)

	var sb strings.Builder
	sb.WriteString("First Name,Last Name,Email\n")
	for i := 0; i < 25; i++ {
		sb.WriteString(fmt.Sprintf("Guest%d,Lastname,guest%d@example.com\n", i, i))
	}

	preview, err := svc.PreviewCSV([]byte(sb.String()))
	if err != nil {
		t.Fatalf("PreviewCSV failed: %v", err)
	}
	if len(preview.Rows) != previewRowLimit {
		t.Errorf("preview rows = %d, want %d", len(preview.Rows), previewRowLimit)
	}
	if preview.TotalRows != 25 {
		t.Errorf("totalRows = %d, want 25", preview.TotalRows)
	}
	if preview.ValidRows != 25 {
		t.Errorf("validRows = %d, want 25", preview.ValidRows)
	}
}

func TestPreviewCSVDoesNotWrite(t *testing.T) {
	store := newFakeImportStore()
	svc := NewImportService(store, 0)

	csv := "First Name,Last Name,Email\nJordan,Miller,jordan@example.com\n"
	if _, err := svc.PreviewCSV([]byte(csv)); err != nil {
		t.Fatalf("PreviewCSV failed: %v", err)
	}
	if len(store.created) != 0 {
		t.Errorf("preview created %d guests, want 0", len(store.created))
	}
}

func TestImportRowsFromSpreadsheet(t *testing.T) {
	store := newFakeImportStore()
	svc := NewImportService(store, 0)

	values := [][]string{
		{"First Name", "Last Name", "Email"},
		{"Jordan", "Miller", "jordan@example.com"},
		{"Casey", "Reyes", "casey@example.com"},
	}

	report, err := svc.ImportRows(values)
	if err != nil {
		t.Fatalf("ImportRows failed: %v", err)
	}
	if report.Imported != 2 {
		t.Errorf("imported = %d, want 2", report.Imported)
	}
}
