package refactor

import (
	"regexp"
	"strings"
	"unicode"
)

// Hints that gate consistent-naming
const (
	HintCamelCase  = "camelCase for variables and functions"
	HintPascalCase = "PascalCase for classes and types"
)

var (
	snakeDeclaration = regexp.MustCompile(`\b(?:const|let|var|function)\s+([a-z][a-z0-9]*(?:_[a-z0-9]+)+)\b`)
	typeDeclaration  = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:declare\s+)?(?:abstract\s+)?(?:class|interface|type)\s+([a-z][\w$]*)`)
)

// applyConsistentNaming renames snake_case variable and function declarations to
// camelCase and lowercase class, interface and type declarations to PascalCase.
// Every whole-identifier reference to a renamed declaration follows it.
func applyConsistentNaming(content string, patterns Patterns) (string, []int) {
	camel := hintEnabled(patterns.Naming, HintCamelCase)
	pascal := hintEnabled(patterns.Naming, HintPascalCase)
	if !camel && !pascal {
		return content, nil
	}

	lines, trailing := splitLines(content)
	renames := make(map[string]string)

	for _, line := range lines {
		if isCommentLine(line) {
			continue
		}
		if camel {
			for _, m := range snakeDeclaration.FindAllStringSubmatch(line, -1) {
				addRename(renames, m[1], toCamelCase(m[1]))
			}
		}
		if pascal {
			if m := typeDeclaration.FindStringSubmatch(line); m != nil {
				addRename(renames, m[1], toPascalCase(m[1]))
			}
		}
	}
	if len(renames) == 0 {
		return content, nil
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = renameIdentifiers(line, renames)
	}

	rewritten := joinLines(out, trailing)
	if rewritten == content {
		return content, nil
	}
	return rewritten, changedLines(lines, out)
}

func addRename(renames map[string]string, from, to string) {
	if from == to {
		return
	}
	if _, seen := renames[from]; !seen {
		renames[from] = to
	}
}

func isCommentLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") || strings.HasPrefix(trimmed, "*")
}

// toCamelCase turns user_name into userName
func toCamelCase(name string) string {
	return withLeadingCase(dropUnderscores(name), unicode.ToLower)
}

// toPascalCase turns user_profile into UserProfile
func toPascalCase(name string) string {
	return withLeadingCase(dropUnderscores(name), unicode.ToUpper)
}

// dropUnderscores uppercases the letter after each underscore and drops the underscore
func dropUnderscores(name string) string {
	var b strings.Builder
	upper := false
	for _, r := range name {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func withLeadingCase(name string, convert func(rune) rune) string {
	if name == "" {
		return name
	}
	runes := []rune(name)
	runes[0] = convert(runes[0])
	return string(runes)
}
