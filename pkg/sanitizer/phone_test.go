package sanitizer

import "testing"

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		regions []string
		want    string
	}{
		{
			name:  "valid E.164 format",
			input: "+14155552671",
			want:  "+14155552671",
		},
		{
			name:  "with parentheses and dashes",
			input: "+1 (415) 555-2671",
			want:  "+14155552671",
		},
		{
			name:  "with spaces",
			input: "+972 54 123 4567",
			want:  "+972541234567",
		},
		{
			name:  "region outside the configured list",
			input: "+880 1712-345678",
			want:  "+8801712345678",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +972541234567  ",
			want:  "+972541234567",
		},
		{
			name:    "national number in first region",
			input:   "(212) 555-1234",
			regions: []string{"US"},
			want:    "+12125551234",
		},
		{
			name:    "national number with trunk prefix",
			input:   "054-123-4567",
			regions: []string{"IL"},
			want:    "+972541234567",
		},
		{
			name:    "lower-case region",
			input:   "(212) 555-1234",
			regions: []string{"us"},
			want:    "+12125551234",
		},
		{
			name:  "free text kept",
			input: "  ask   for Dana ",
			want:  "ask for Dana",
		},
		{
			name:  "too short kept",
			input: "555",
			want:  "555",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input, tt.regions...)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := NormalizePhone(got, tt.regions...); again != got {
				t.Errorf("not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestPhoneNormalizer(t *testing.T) {
	normalize := PhoneNormalizer([]string{"IL"})
	if got := normalize("054-123-4567"); got != "+972541234567" {
		t.Errorf("expected +972541234567, got %q", got)
	}
}

func TestSupportedRegion(t *testing.T) {
	tests := []struct {
		region string
		want   bool
	}{
		{"US", true},
		{"il", true},
		{"XX", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := SupportedRegion(tt.region); got != tt.want {
			t.Errorf("SupportedRegion(%q) = %v, want %v", tt.region, got, tt.want)
		}
	}
}
