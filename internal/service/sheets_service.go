package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// sheetsValuesURL is the Sheets API v4 values endpoint
const sheetsValuesURL = "https://sheets.googleapis.com/v4/spreadsheets/%s/values/%s"

// SheetsService imports guests straight from a Google Sheet. The admin
// authorizes read-only access through OAuth, then names a spreadsheet
// and range; the fetched rows run through the same pipeline as a CSV
// upload.
type SheetsService struct {
	config   *oauth2.Config
	importer *ImportService
}

// NewSheetsService creates a new Sheets import service. With no client
// credentials configured the service reports itself unavailable.
func NewSheetsService(clientID, clientSecret, redirectURL string, importer *ImportService) *SheetsService {
	return &SheetsService{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{"https://www.googleapis.com/auth/spreadsheets.readonly"},
		},
		importer: importer,
	}
}

// IsConfigured reports whether OAuth client credentials are present
func (s *SheetsService) IsConfigured() bool {
	return s.config.ClientID != "" && s.config.ClientSecret != ""
}

// AuthURL returns the Google consent URL for the given CSRF state
func (s *SheetsService) AuthURL(state string) string {
	return s.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for a token
func (s *SheetsService) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}

// Import fetches the named range from a spreadsheet and imports its rows.
// The first fetched row must be a header row.
func (s *SheetsService) Import(ctx context.Context, token *oauth2.Token, spreadsheetID, readRange string) (*ImportReport, error) {
	values, err := s.fetchValues(ctx, token, spreadsheetID, readRange)
	if err != nil {
		return nil, err
	}
	return s.importer.ImportRows(values)
}

func (s *SheetsService) fetchValues(ctx context.Context, token *oauth2.Token, spreadsheetID, readRange string) ([][]string, error) {
	if spreadsheetID == "" || readRange == "" {
		return nil, fmt.Errorf("%w: spreadsheet id and range are required", ErrMalformedInput)
	}

	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	endpoint := fmt.Sprintf(sheetsValuesURL, url.PathEscape(spreadsheetID), url.PathEscape(readRange))
	resp, err := client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch spreadsheet values: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch spreadsheet values: status %d", resp.StatusCode)
	}

	// Cells arrive untyped; everything is coerced to a string the same
	// way a CSV cell would read
	var payload struct {
		Values [][]interface{} `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("parse spreadsheet response: %w", err)
	}

	values := make([][]string, 0, len(payload.Values))
	for _, row := range payload.Values {
		cells := make([]string, 0, len(row))
		for _, cell := range row {
			cells = append(cells, fmt.Sprintf("%v", cell))
		}
		values = append(values, cells)
	}
	return values, nil
}
