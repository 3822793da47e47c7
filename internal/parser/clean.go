package parser

import (
	"regexp"
	"strings"
)

var languageTag = regexp.MustCompile(`(?i)^json`)

// CleanModelText strips the decoration models put around JSON output despite
// instructions not to. If the text contains code fences, the first fenced
// segment holding both an opening and closing brace is extracted and any
// leading "json" language tag removed.
func CleanModelText(text string) string {
	text = strings.TrimSpace(text)

	if strings.Contains(text, "```") {
		for _, part := range strings.Split(text, "```") {
			if strings.Contains(part, "{") && strings.Contains(part, "}") {
				text = strings.TrimSpace(part)
				text = strings.TrimSpace(languageTag.ReplaceAllString(text, ""))
				break
			}
		}
	}

	return text
}
