package refactor

import (
	"fmt"
	"strings"

	"github.com/fumiya-kume/ccrefactor/pkg/errors"
)

// maxLineDelta is the largest allowed change in non-blank lines, as a fraction of
// the original count
const maxLineDelta = 0.1

// CheckPreservation rejects a rewrite whose non-blank line count moved by more than
// 10% of the original, or whose braces no longer balance in a brace-delimited language
func CheckPreservation(path, original, rewritten string) error {
	before := nonBlankLines(original)
	after := nonBlankLines(rewritten)

	delta := after - before
	if delta < 0 {
		delta = -delta
	}
	if float64(delta) > maxLineDelta*float64(before) {
		return errors.GuardRejectedError(path,
			fmt.Sprintf("non-blank lines changed from %d to %d, more than %.0f%% of the original",
				before, after, maxLineDelta*100))
	}

	if UsesBraces(path) {
		open, closing := strings.Count(rewritten, "{"), strings.Count(rewritten, "}")
		if open != closing {
			return errors.GuardRejectedError(path,
				fmt.Sprintf("unbalanced braces after rewrite: %d '{' and %d '}'", open, closing))
		}
	}
	return nil
}

func nonBlankLines(content string) int {
	n := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}
