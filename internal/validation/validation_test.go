package validation

import (
	"strings"
	"testing"
)

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"trims whitespace", "  hello  ", 100, "hello"},
		{"limits length", strings.Repeat("a", 50), 10, strings.Repeat("a", 10)},
		{"removes null bytes", "he\x00llo", 100, "hello"},
		{"empty string", "", 100, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeString(tc.input, tc.maxLen); got != tc.want {
				t.Errorf("SanitizeString(%q, %d) = %q, want %q", tc.input, tc.maxLen, got, tc.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	errs := Validate(
		Required("repId", ""),
		Required("customerName", "Lakeside Vet"),
		MaxLength("note", strings.Repeat("x", 20), 10),
		NonNegative("monthlyTotal", -1),
	)

	if len(errs) != 3 {
		t.Fatalf("Expected 3 errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != "repId" {
		t.Errorf("First error field = %q, want repId", errs[0].Field)
	}
	if errs.Error() != "repId: is required" {
		t.Errorf("Error() = %q", errs.Error())
	}
}

func TestValidate_NoErrors(t *testing.T) {
	errs := Validate(
		Required("repId", "rep-1"),
		NonNegative("monthlyTotal", 99.99),
	)
	if len(errs) != 0 {
		t.Errorf("Expected no errors, got %v", errs)
	}
	if ValidationErrors(nil).Error() != "validation failed" {
		t.Errorf("Empty errors message = %q", ValidationErrors(nil).Error())
	}
}
