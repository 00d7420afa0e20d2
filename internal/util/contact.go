package util

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// CollapseSpaces trims and squeezes internal whitespace to single spaces.
func CollapseSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// NormalizeEmail lowercases and trims. It normalizes only; plausibility is
// checked separately and full RFC validation is the importer's job.
func NormalizeEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// PlausibleEmail reports whether the address has exactly one @ with a
// non-empty local part and a dotted domain.
func PlausibleEmail(input string) bool {
	at := strings.Index(input, "@")
	if at <= 0 || at != strings.LastIndex(input, "@") {
		return false
	}
	domain := input[at+1:]
	if domain == "" || strings.Contains(domain, " ") {
		return false
	}
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}

// HouseNumberDigits keeps only the leading digits of a house number:
// "11A" -> "11", "12 Bus 3" -> "12". No leading digits yields "".
func HouseNumberDigits(input string) string {
	s := strings.TrimSpace(input)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

// NormalizeBelgianPhone rewrites a free-form phone value to the 0032-prefixed
// form the BIN importer expects. Spaces, dots, dashes and slashes are dropped;
// a leading + is kept for prefix detection.
//
//	"+32 478 12 34 56" -> "0032478123456"
//	"0478/12.34.56"    -> "0032478123456"
//	"478123456"        -> "0032478123456"
//
// Values with a foreign prefix come back unchanged so the caller can reject
// them instead of guessing.
func NormalizeBelgianPhone(input string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(input) {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	s := b.String()

	switch {
	case s == "":
		return ""
	case strings.HasPrefix(s, "0032"):
		return s
	case strings.HasPrefix(s, "+32"):
		return "0032" + s[3:]
	case strings.HasPrefix(s, "0"):
		return "0032" + s[1:]
	case strings.HasPrefix(s, "4"):
		// Mobile subscriber number written without any prefix.
		return "0032" + s
	default:
		return s
	}
}

// ValidBelgianPhone reports whether a normalized value is a usable Belgian
// number: the 0032 prefix plus an 8 digit (fixed line) or 9 digit (mobile)
// subscriber part.
func ValidBelgianPhone(normalized string) bool {
	if !strings.HasPrefix(normalized, "0032") {
		return false
	}
	rest := normalized[4:]
	if len(rest) != 8 && len(rest) != 9 {
		return false
	}
	for i := 0; i < len(rest); i++ {
		if rest[i] < '0' || rest[i] > '9' {
			return false
		}
	}
	return true
}
