package llm

import (
	"encoding/json"
	"regexp"
	"strings"
)

var markdownCodeRegex = regexp.MustCompile("```(?:json)?\\s*([\\s\\S]*?)```")

// ExtractJSON locates the first well-formed JSON object or array within s,
// which may be surrounded by explanatory prose or markdown fences. Returns
// the empty string when no valid JSON value is found. Extraction is
// deliberately separate from schema validation: this only finds JSON, it
// does not judge its shape.
func ExtractJSON(s string) string {
	// Markdown code blocks first; many models fence their JSON.
	if strings.Contains(s, "```") {
		if matches := markdownCodeRegex.FindStringSubmatch(s); len(matches) > 1 {
			candidate := strings.TrimSpace(matches[1])
			if json.Valid([]byte(candidate)) {
				return candidate
			}
		}
	}

	if candidate := scanBalanced(s, '{', '}'); candidate != "" {
		return candidate
	}
	return scanBalanced(s, '[', ']')
}

// scanBalanced finds the first balanced opener..closer span that parses as
// valid JSON, tracking string context and escapes so brackets inside
// string values are ignored.
func scanBalanced(s string, opener, closer byte) string {
	for i := 0; i < len(s); i++ {
		if s[i] != opener {
			continue
		}
		level := 0
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
				escaped = true
			case '"':
				inString = !inString
			case opener:
				if !inString {
					level++
				}
			case closer:
				if !inString {
					level--
					if level == 0 {
						candidate := s[i : j+1]
						if json.Valid([]byte(candidate)) {
							return candidate
						}
						j = len(s) // invalid; try the next opener
					}
				}
			}
		}
	}
	return ""
}
