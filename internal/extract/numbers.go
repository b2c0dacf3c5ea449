// internal/extract/numbers.go
package extract

import (
	"strconv"
	"strings"
)

// ParseCount parses an engagement count with an optional K/M/B magnitude
// suffix: "1.2K" -> 1200, "3M" -> 3000000, "500" -> 500. Thousands
// separators are stripped, the result is floored to an integer, and
// unparseable input yields 0 rather than an error.
func ParseCount(s string) int64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return 0
	}

	multiplier := int64(1)
	switch strings.ToLower(s[len(s)-1:]) {
	case "k":
		multiplier = 1_000
		s = s[:len(s)-1]
	case "m":
		multiplier = 1_000_000
		s = s[:len(s)-1]
	case "b":
		multiplier = 1_000_000_000
		s = s[:len(s)-1]
	}

	if multiplier == 1 {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0
		}
		return n
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return int64(f * float64(multiplier))
}

// extractJSONObject returns the balanced JSON object beginning at the first
// '{' at or after start, tracking strings and escapes so braces inside
// values do not terminate the scan. Regex alone cannot bound nested
// structures in the embedded payloads.
func extractJSONObject(s string, start int) (string, bool) {
	i := strings.IndexByte(s[start:], '{')
	if i < 0 {
		return "", false
	}
	i += start

	depth := 0
	inString := false
	escaped := false
	for j := i; j < len(s); j++ {
		c := s[j]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[i : j+1], true
				}
			}
		}
	}
	return "", false
}
