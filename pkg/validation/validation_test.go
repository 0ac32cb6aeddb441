package validation

import (
	"strings"
	"testing"
)

func TestValidateTitle(t *testing.T) {
	if ValidateTitle("") {
		t.Error("empty title accepted")
	}
	if ValidateTitle("   ") {
		t.Error("whitespace-only title accepted")
	}
	if !ValidateTitle("My first upload") {
		t.Error("valid title rejected")
	}
	if ValidateTitle(strings.Repeat("a", MaxTitleLength+1)) {
		t.Error("overlong title accepted")
	}
}

func TestValidateDescription(t *testing.T) {
	if !ValidateDescription("") {
		t.Error("empty description rejected")
	}
	if ValidateDescription(strings.Repeat("a", MaxDescriptionLength+1)) {
		t.Error("overlong description accepted")
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  hello\x00world  "); got != "helloworld" {
		t.Errorf("SanitizeString = %q", got)
	}
}
