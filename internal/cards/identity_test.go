package cards

import "testing"

func TestNormalizeCardNumber(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1", "001"},
		{"18", "018"},
		{"177", "177"},
		{"18a", "018A"},
		{"018A", "018A"},
		{"7 ", "007"},
		{" 7", "007"},
		{"GG05", "GG05"},
		{"gg05", "GG05"},
		{"SWSH284", "SWSH284"},
		{"", ""},
		{"   ", ""},
		{"0", "000"},
		{"1234", "1234"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := NormalizeCardNumber(tt.input)
			if result != tt.expected {
				t.Errorf("NormalizeCardNumber(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestBuildCardIdentifier(t *testing.T) {
	tests := []struct {
		set      string
		number   string
		expected string
		ok       bool
	}{
		{"svi", "7", "SVI~007", true},
		{"SVI", "007", "SVI~007", true},
		{" svi ", "7", "SVI~007", true},
		{"pal", "18a", "PAL~018A", true},
		{"crz", "GG05", "CRZ~GG05", true},
		{"", "7", "", false},
		{"svi", "", "", false},
		{"  ", "  ", "", false},
	}

	for _, tt := range tests {
		id, ok := BuildCardIdentifier(tt.set, tt.number)
		if ok != tt.ok {
			t.Errorf("BuildCardIdentifier(%q, %q) ok = %v, want %v", tt.set, tt.number, ok, tt.ok)
			continue
		}
		if id != tt.expected {
			t.Errorf("BuildCardIdentifier(%q, %q) = %q, want %q", tt.set, tt.number, id, tt.expected)
		}
	}
}

// Two cards with the same printed identity must normalize to the same
// identifier regardless of input casing and padding.
func TestBuildCardIdentifierCanonical(t *testing.T) {
	a, _ := BuildCardIdentifier("svi", "7")
	b, _ := BuildCardIdentifier("SVI", "007")
	c, _ := BuildCardIdentifier(" Svi", "007")
	if a != b || b != c {
		t.Errorf("identifiers differ for the same printing: %q, %q, %q", a, b, c)
	}
}

func TestSplitCardIdentifier(t *testing.T) {
	set, num, ok := SplitCardIdentifier("SVI~007")
	if !ok || set != "SVI" || num != "007" {
		t.Errorf("SplitCardIdentifier(SVI~007) = (%q, %q, %v)", set, num, ok)
	}

	if _, _, ok := SplitCardIdentifier("no-separator"); ok {
		t.Error("expected ok=false for identifier without separator")
	}
	if _, _, ok := SplitCardIdentifier("~007"); ok {
		t.Error("expected ok=false for identifier with empty set")
	}
}
