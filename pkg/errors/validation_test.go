package errors

import (
	"strings"
	"testing"
)

func TestValidatePrefix(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"typical", "ASN-", false},
		{"empty", "", false},
		{"unicode", "Archiv-Ä", false},
		{"too long", strings.Repeat("a", 65), true},
		{"newline", "ASN\n", true},
		{"null byte", "A\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePrefix(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePrefix(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidConfig) {
				t.Errorf("expected INVALID_CONFIGURATION, got %v", GetCode(err))
			}
		})
	}
}

func TestValidateTemplate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"url", "https://paperless.local/?id={label}", false},
		{"json", `{"label":"{label}","type":"asn"}`, false},
		{"static", "no placeholder", false},
		{"too long", strings.Repeat("x", 2049), true},
		{"null byte", "a\x00b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTemplate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTemplate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateFormatID(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"avery-l4731", false},
		{"AVERY-L4731", false},
		{"herma_4345", false},
		{"", true},
		{"   ", true},
		{"-leading", true},
		{"has space", true},
		{"../etc", true},
	}

	for _, tt := range tests {
		err := ValidateFormatID(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormatID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}

func TestValidateNonNegative(t *testing.T) {
	if err := ValidateNonNegative("count", 0); err != nil {
		t.Errorf("0 should be valid: %v", err)
	}
	err := ValidateNonNegative("count", -3)
	if err == nil {
		t.Fatal("negative should fail")
	}
	if !strings.Contains(err.Error(), "count must be >= 0, got -3") {
		t.Errorf("unexpected message: %v", err)
	}
}
