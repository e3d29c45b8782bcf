package compare

import (
	"regexp"
	"strings"
)

// Keywords match as whole words, so classList and typeof do not count as class or type
var (
	structuralKeywords = regexp.MustCompile(`\b(?:export|import|class|function|interface|type)\b`)
	statementKeywords  = regexp.MustCompile(`\b(?:const|let|var|return|throw)\b`)
	commentMarkers     = []string{"//", "/*", "*", "#"}
)

// ClassifySignificance rates a single line by lexical cues.
// The checks form a cascade: structural keywords win over statement keywords,
// which win over the blank/comment test; anything else is Medium.
func ClassifySignificance(line string) Level {
	trimmed := strings.TrimSpace(line)

	if structuralKeywords.MatchString(trimmed) {
		return High
	}
	if statementKeywords.MatchString(trimmed) {
		return Medium
	}
	if trimmed == "" || isComment(trimmed) {
		return Low
	}
	return Medium
}

func isComment(trimmed string) bool {
	for _, marker := range commentMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}
