package diff

import (
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
)

// DefaultContext is the number of context lines around each hunk
const DefaultContext = 3

// Unified renders a classic unified patch (---/+++ headers, @@ hunks).
// Identical inputs produce an empty string.
func Unified(fromName, toName, baseline, local string, context int) (string, error) {
	if baseline == local {
		return "", nil
	}
	if context <= 0 {
		context = DefaultContext
	}

	u := difflib.UnifiedDiff{
		A:        SplitLines(baseline),
		B:        SplitLines(local),
		FromFile: fromName,
		ToFile:   toName,
		Context:  context,
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil {
		return "", fmt.Errorf("failed to render unified diff: %w", err)
	}
	return s, nil
}
