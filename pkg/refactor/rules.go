package refactor

import (
	"regexp"
	"strings"

	"github.com/fumiya-kume/ccrefactor/pkg/errors"
	"github.com/fumiya-kume/ccrefactor/pkg/logger"
)

// Rule names
const (
	RuleConsistentNaming    = "consistent-naming"
	RuleRemoveUnusedImports = "remove-unused-imports"
	RuleOrganizeImports     = "organize-imports"
	RuleFormatCode          = "format-code"
)

// DefaultRules is the chain used when the caller names no rules
var DefaultRules = []string{
	RuleConsistentNaming,
	RuleRemoveUnusedImports,
	RuleOrganizeImports,
	RuleFormatCode,
}

// ApplyFunc rewrites content and returns the 1-based lines it touched.
// An unchanged result must return the input and no lines.
type ApplyFunc func(content string, patterns Patterns) (string, []int)

// Rule is a named rewrite
type Rule struct {
	Name        string
	Kind        ChangeKind
	Description string
	Apply       ApplyFunc
}

var registry = map[string]Rule{
	RuleConsistentNaming: {
		Name:        RuleConsistentNaming,
		Kind:        KindRename,
		Description: "Renamed declarations to the project naming convention",
		Apply:       applyConsistentNaming,
	},
	RuleRemoveUnusedImports: {
		Name:        RuleRemoveUnusedImports,
		Kind:        KindImport,
		Description: "Removed imports with unreferenced names",
		Apply:       applyRemoveUnusedImports,
	},
	RuleOrganizeImports: {
		Name:        RuleOrganizeImports,
		Kind:        KindImport,
		Description: "Sorted imports and separated them from the code",
		Apply:       applyOrganizeImports,
	},
	RuleFormatCode: {
		Name:        RuleFormatCode,
		Kind:        KindFormat,
		Description: "Applied type annotations, const declarations and arrow functions",
		Apply:       applyFormatCode,
	},
}

// LookupRule returns the rule registered under name
func LookupRule(name string) (Rule, error) {
	rule, ok := registry[name]
	if !ok {
		return Rule{}, errors.UnsupportedRuleError(name)
	}
	return rule, nil
}

// RuleNames lists the registered rules in default order
func RuleNames() []string {
	return append([]string(nil), DefaultRules...)
}

// ApplyRules runs the named rules in order, each on the previous rule's output.
// Unknown names are skipped with a warning. Records carry no file; callers fill it in.
func ApplyRules(content string, patterns Patterns, names []string, log logger.LoggerInterface) (string, []RefactoringChange) {
	log = logger.OrNop(log)
	if len(names) == 0 {
		names = DefaultRules
	}

	changes := []RefactoringChange{}
	for _, name := range names {
		rule, err := LookupRule(name)
		if err != nil {
			log.Warn("skipping rule: %v", err)
			continue
		}

		rewritten, lines := rule.Apply(content, patterns)
		if rewritten == content {
			continue
		}

		log.Debug("applied %s to %d lines", rule.Name, len(lines))
		changes = append(changes, RefactoringChange{
			Kind:        rule.Kind,
			Rule:        rule.Name,
			Description: rule.Description,
			LineNumbers: lines,
		})
		content = rewritten
	}
	return content, changes
}

// hintEnabled reports whether a transform gated by hint is on. An empty hint list
// enables every transform.
func hintEnabled(hints []string, hint string) bool {
	if len(hints) == 0 {
		return true
	}
	for _, h := range hints {
		if strings.Contains(h, hint) {
			return true
		}
	}
	return false
}

// splitLines splits content into lines, reporting whether it ended with a newline
func splitLines(content string) ([]string, bool) {
	trailing := strings.HasSuffix(content, "\n")
	if trailing {
		content = content[:len(content)-1]
	}
	return strings.Split(content, "\n"), trailing
}

func joinLines(lines []string, trailing bool) string {
	out := strings.Join(lines, "\n")
	if trailing {
		out += "\n"
	}
	return out
}

// changedLines lists the 1-based positions where before and after differ
func changedLines(before, after []string) []int {
	n := len(before)
	if len(after) > n {
		n = len(after)
	}

	var lines []int
	for i := 0; i < n; i++ {
		if i >= len(before) || i >= len(after) || before[i] != after[i] {
			lines = append(lines, i+1)
		}
	}
	return lines
}

var identPattern = regexp.MustCompile(`[A-Za-z_$][\w$]*`)

// identifierSet collects every identifier-shaped token in text
func identifierSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, id := range identPattern.FindAllString(text, -1) {
		set[id] = true
	}
	return set
}

// renameIdentifiers replaces whole identifier tokens found in renames
func renameIdentifiers(line string, renames map[string]string) string {
	return identPattern.ReplaceAllStringFunc(line, func(id string) string {
		if to, ok := renames[id]; ok {
			return to
		}
		return id
	})
}
