package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedJSONRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	newlineRunRe = regexp.MustCompile(`[\r\n]+`)
)

var quoteReplacer = strings.NewReplacer(
	"“", `"`, // left double
	"”", `"`, // right double
	"‘", "'", // left single
	"’", "'", // right single
)

// ExtractJSON recovers a JSON candidate from free-form model output.
// Priority: the first fenced block, then the first balanced {...} or
// [...] span, then the raw text unchanged. The result is normalized
// (fence markers stripped, typographic quotes replaced, newline runs
// collapsed) but not guaranteed to parse; see ParseStrict.
func ExtractJSON(raw string) string {
	candidate := raw

	if m := fencedJSONRe.FindStringSubmatch(raw); m != nil {
		candidate = m[1]
	} else if span := balancedSpan(raw); span != "" {
		candidate = span
	}

	return normalize(candidate)
}

// ParseStrict parses candidate as JSON. On failure it returns an
// *ErrInvalidContent carrying raw for operator diagnostics.
func ParseStrict(candidate, raw string) (json.RawMessage, error) {
	var parsed any
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, &ErrInvalidContent{Raw: raw, Err: fmt.Errorf("not valid JSON: %w", err)}
	}
	return json.RawMessage(candidate), nil
}

// balancedSpan returns the first balanced {...} or [...] span in s,
// or "" if none closes. Brackets inside JSON strings are skipped.
func balancedSpan(s string) string {
	start := -1
	var open, close byte
	for i := 0; i < len(s); i++ {
		if s[i] == '{' || s[i] == '[' {
			start = i
			open = s[i]
			if open == '{' {
				close = '}'
			} else {
				close = ']'
			}
			break
		}
	}
	if start == -1 {
		return ""
	}

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
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = quoteReplacer.Replace(s)
	s = newlineRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
