package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSON finds the first balanced JSON object in a string and returns it.
// Markdown fences commonly emitted by LLMs are stripped first. Returns ""
// when no object is found.
func ExtractJSON(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")

	for _, fence := range []string{"```json", "```yaml", "```text", "```", "`json", "`"} {
		s = strings.ReplaceAll(s, fence, "")
	}

	first := ""
	for start := strings.Index(s, "{"); start != -1; {
		candidate := balancedObject(s, start)
		if candidate == "" {
			break
		}
		if json.Valid([]byte(candidate)) {
			return candidate
		}
		// invalid candidate: keep scanning from the next opening brace,
		// which also tries objects nested inside this one
		if first == "" {
			first = candidate
		}
		rest := strings.Index(s[start+1:], "{")
		if rest == -1 {
			break
		}
		start += 1 + rest
	}

	// best effort: hand back the first balanced candidate anyway
	return first
}

// balancedObject returns the brace-balanced substring starting at start, or
// "" when the object never closes.
func balancedObject(s string, start int) string {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(s[start : i+1])
			}
		}
	}
	return ""
}
