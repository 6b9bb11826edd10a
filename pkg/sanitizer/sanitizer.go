// Package sanitizer normalizes user-supplied strings before validation:
// emails are lowercased and trimmed, free text has its whitespace collapsed.
package sanitizer

import (
	"strings"
	"unicode"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func trimAndLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NormalizeEmail lowercases and trims an address. Validity is the
// validator's job; an empty input stays empty.
func NormalizeEmail(email string) string {
	p := Pipeline{trimAndLower}
	return p.Apply(email)
}

// NormalizeText cleans free text such as a booking purpose or comment.
func NormalizeText(s string) string {
	return TrimAndNormalize(s)
}

// NormalizeEmails applies NormalizeEmail across a slice, dropping empties
// and duplicates while preserving order.
func NormalizeEmails(emails []string) []string {
	seen := make(map[string]struct{})
	out := []string{}

	for _, e := range emails {
		n := NormalizeEmail(e)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}

	return out
}
