// Package worklog implements the work_done micro-format and the lab's
// business-day calendar.
package worklog

import (
	"regexp"
	"strings"
)

// work_done is informal: zero or more [tag] groups followed by free text,
// e.g. "[PCR] [细胞培养] 传代第18代". There is no escape sequence; every
// bracketed group is a tag, so free text cannot carry literal brackets.
// Compose strips them instead of guessing.
var tagPattern = regexp.MustCompile(`\[([^\]]+)\]`)

// Parse extracts all bracketed tags left to right and returns the residual
// free text with the tag groups removed and whitespace trimmed.
func Parse(workDone string) (tags []string, supplement string) {
	matches := tagPattern.FindAllStringSubmatch(workDone, -1)
	tags = make([]string, 0, len(matches))
	for _, m := range matches {
		tags = append(tags, m[1])
	}
	supplement = strings.TrimSpace(tagPattern.ReplaceAllString(workDone, ""))
	return tags, supplement
}

// Compose builds a work_done string from tags and free text. Literal
// brackets in the supplement are dropped so the result parses back to the
// same tags and text.
func Compose(tags []string, supplement string) string {
	supplement = strings.NewReplacer("[", "", "]", "").Replace(supplement)
	supplement = strings.TrimSpace(supplement)

	parts := make([]string, 0, len(tags)+1)
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		parts = append(parts, "["+tag+"]")
	}
	if supplement != "" {
		parts = append(parts, supplement)
	}
	return strings.Join(parts, " ")
}
