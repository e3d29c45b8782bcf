package refactor

import (
	"regexp"
	"strings"
)

// Hints that gate format-code
const (
	HintTypeAnnotations = "explicit type annotations"
	HintPreferConst     = "prefer const"
	HintArrowFunctions  = "arrow functions"
)

var (
	// let name = <literal>, without an annotation
	literalLet = regexp.MustCompile("\\blet(\\s+)([A-Za-z_$][\\w$]*)(\\s*)=(\\s*)(['\"`]|-?\\d)")
	// let name [: T] = <not =>
	initializedLet = regexp.MustCompile(`\blet\s+([A-Za-z_$][\w$]*)\s*(?::[^=;]*)?=[^=]`)
	anonymousFunc  = regexp.MustCompile(`\bfunction\s*\(([^)]*)\)`)
)

// applyFormatCode annotates literal let declarations with their primitive type,
// turns let into const for variables never reassigned later, and rewrites
// anonymous function expressions as arrow functions
func applyFormatCode(content string, patterns Patterns) (string, []int) {
	lines, trailing := splitLines(content)
	out := append([]string(nil), lines...)

	if hintEnabled(patterns.Style, HintTypeAnnotations) {
		for i, line := range out {
			out[i] = annotateLiteralLet(line)
		}
	}
	if hintEnabled(patterns.Style, HintPreferConst) {
		preferConst(out)
	}
	if hintEnabled(patterns.Style, HintArrowFunctions) {
		for i, line := range out {
			out[i] = anonymousFunc.ReplaceAllString(line, "($1) =>")
		}
	}

	rewritten := joinLines(out, trailing)
	if rewritten == content {
		return content, nil
	}
	return rewritten, changedLines(lines, out)
}

func annotateLiteralLet(line string) string {
	return literalLet.ReplaceAllStringFunc(line, func(match string) string {
		m := literalLet.FindStringSubmatch(match)
		typ := "number"
		switch m[5][0] {
		case '\'', '"', '`':
			typ = "string"
		}
		return "let" + m[1] + m[2] + ": " + typ + m[3] + "=" + m[4] + m[5]
	})
}

// preferConst rewrites "let" to "const" in place when the declared name is not
// assigned, compound-assigned, incremented or decremented after its declaration
func preferConst(lines []string) {
	for i, line := range lines {
		loc := initializedLet.FindStringSubmatchIndex(line)
		if loc == nil {
			continue
		}
		name := line[loc[2]:loc[3]]

		// everything after the initializer's "=" on this line, then the following lines
		rest := append([]string{line[loc[1]-1:]}, lines[i+1:]...)
		if reassigned(name, strings.Join(rest, "\n")) {
			continue
		}

		lines[i] = line[:loc[0]] + "const" + line[loc[0]+len("let"):]
	}
}

// reassigned reports whether text assigns, compound-assigns, increments or
// decrements name
func reassigned(name, text string) bool {
	quoted := regexp.QuoteMeta(name)
	re := regexp.MustCompile(`(?:^|[^\w$.])` + quoted + `\s*(?:=(?:[^=]|$)|\+=|-=|\+\+|--)` +
		`|(?:\+\+|--)\s*` + quoted + `(?:$|[^\w$])`)
	return re.MatchString(text)
}
