package utils

import (
	"strings"
)

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizePhone drops spaces, dashes, dots and brackets. A leading "+" is kept.
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	var out strings.Builder
	for i, r := range raw {
		switch {
		case r == '+' && i == 0:
			out.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')':
		default:
			out.WriteRune(r)
		}
	}
	return out.String()
}

// ValidPhone expects a normalized phone: optional "+" then 6..20 ASCII digits.
func ValidPhone(phone string) bool {
	digits := strings.TrimPrefix(phone, "+")
	if len(digits) < 6 || len(digits) > 20 {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// SplitTags splits comma/semicolon separated tags into a cleaned, de-duplicated list.
func SplitTags(raw string) []string {
	out := []string{}
	seen := map[string]bool{}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
