package validation

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		wantErr bool
	}{
		{"valid email", "alice@example.com", false},
		{"valid with plus", "alice+rsvp@example.com", false},
		{"valid with subdomain", "bob@mail.example.co.uk", false},
		{"trims whitespace", "  alice@example.com  ", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
		{"missing at", "alice.example.com", true},
		{"missing domain", "alice@", true},
		{"missing tld", "alice@example", true},
		{"spaces inside", "alice smith@example.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEmail(%q) error = %v, wantErr %v", tt.email, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		phone   string
		wantErr bool
	}{
		{"empty is valid", "", false},
		{"dashes", "555-555-5555", false},
		{"parentheses", "(555) 555-5555", false},
		{"dots", "555.555.5555", false},
		{"country code", "+1 555-555-5555", false},
		{"bare digits", "5555555555", false},
		{"too short", "555-5555", true},
		{"letters", "555-CALL-NOW", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePhone(tt.phone)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePhone(%q) error = %v, wantErr %v", tt.phone, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"ten digits", "5555555555", "+15555555555"},
		{"formatted", "(555) 123-4567", "+15551234567"},
		{"with country code", "+1 555 123 4567", "+15551234567"},
		{"eleven digits leading one", "15551234567", "+15551234567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizePhone(tt.phone); got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.phone, got, tt.want)
			}
		})
	}
}

func TestValidateZip(t *testing.T) {
	tests := []struct {
		name    string
		zip     string
		wantErr bool
	}{
		{"empty is valid", "", false},
		{"five digits", "80401", false},
		{"zip plus four", "80401-1234", false},
		{"too short", "8040", true},
		{"letters", "8O4O1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateZip(tt.zip)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateZip(%q) error = %v, wantErr %v", tt.zip, err, tt.wantErr)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	if err := ValidateName("firstName", "Alice"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateName("firstName", "   "); err == nil {
		t.Error("expected error for blank name")
	}
}
