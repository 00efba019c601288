package util

import "testing"

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Priya Sharma", false},
		{"valid with punctuation", "Dr. O'Neil-Kumar", false},
		{"too short", "A", true},
		{"only spaces", "   ", true},
		{"digits", "Priya123", true},
		{"html", "<script>", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateName(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateName(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestValidatePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain 10 digits", "9876543210", false},
		{"with country code", "+919876543210", false},
		{"with separators", "(987) 654-3210", false},
		{"empty", "", true},
		{"too short", "12345", true},
		{"letters", "98765abcde", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePhone(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidatePhone(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestValidateMobile(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"exactly 10 digits", "9876543210", false},
		{"nine digits", "987654321", true},
		{"eleven digits", "98765432101", true},
		{"country code", "+919876543210", true},
		{"empty", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateMobile(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateMobile(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail(""); err != nil {
		t.Fatalf("empty email should be accepted: %v", err)
	}
	if err := ValidateEmail("priya@example.com"); err != nil {
		t.Fatalf("valid email rejected: %v", err)
	}
	if err := ValidateEmail("not-an-email"); err == nil {
		t.Fatal("invalid email accepted")
	}
}

func TestNormalizePhone(t *testing.T) {
	if got := NormalizePhone(" (987) 654-3210 "); got != "9876543210" {
		t.Fatalf("NormalizePhone = %q", got)
	}
}
