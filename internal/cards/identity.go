// Package cards normalizes printed card identities and classifies cards into
// display categories. Identifiers are canonical "SET~NUMBER" strings so that
// the same printing always maps to the same key regardless of how a decklist
// export spelled it.
package cards

import (
	"regexp"
	"strings"
)

// IdentifierSeparator joins the set code and the normalized card number.
const IdentifierSeparator = "~"

// numberPattern matches card numbers of the form "18", "18a", "177". Numbers
// with a non-numeric prefix (promo codes like "GG05" or "SWSH284") do not
// match and are passed through verbatim.
var numberPattern = regexp.MustCompile(`^([0-9]+)([A-Za-z]*)$`)

// NormalizeCardNumber canonicalizes a printed card number: the numeric part is
// zero-padded to at least 3 digits and any trailing letter suffix is
// uppercased ("18a" -> "018A", "7" -> "007"). Inputs that do not start with
// digits are returned uppercased as-is. Empty input stays empty.
func NormalizeCardNumber(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	m := numberPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return strings.ToUpper(trimmed)
	}

	digits := m[1]
	for len(digits) < 3 {
		digits = "0" + digits
	}
	return digits + strings.ToUpper(m[2])
}

// BuildCardIdentifier returns the canonical "SET~NUMBER" identifier for a
// card, or ok=false when either part is empty after normalization. Two cards
// with the same printed identity always produce the same identifier,
// independent of input casing or zero padding.
func BuildCardIdentifier(setCode, number string) (string, bool) {
	set := strings.ToUpper(strings.TrimSpace(setCode))
	num := NormalizeCardNumber(number)
	if set == "" || num == "" {
		return "", false
	}
	return set + IdentifierSeparator + num, true
}

// SplitCardIdentifier is the inverse of BuildCardIdentifier for well-formed
// identifiers. ok=false when the input is not a SET~NUMBER string.
func SplitCardIdentifier(id string) (setCode, number string, ok bool) {
	set, num, found := strings.Cut(id, IdentifierSeparator)
	if !found || set == "" || num == "" {
		return "", "", false
	}
	return set, num, true
}
