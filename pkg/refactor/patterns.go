package refactor

import (
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/fumiya-kume/ccrefactor/pkg/errors"
)

// Structural hints reported by DetectPatterns. They are advisory only.
const (
	HintESModules = "ES module imports"
	HintCommonJS  = "CommonJS require"
	HintClasses   = "class-based components"
)

var (
	camelDeclaration  = regexp.MustCompile(`\b(?:const|let|var|function)\s+[a-z][a-z0-9]*[A-Z][\w$]*`)
	pascalDeclaration = regexp.MustCompile(`\b(?:class|interface|type)\s+[A-Z][\w$]*`)
	classDeclaration  = regexp.MustCompile(`\bclass\s+[A-Za-z_$]`)
	typeAnnotation    = regexp.MustCompile(`\b(?:const|let|var)\s+[A-Za-z_$][\w$]*\s*:\s*(?:string|number|boolean)\b`)
	constDeclaration  = regexp.MustCompile(`\bconst\s+[A-Za-z_$]`)
	letDeclaration    = regexp.MustCompile(`\blet\s+[A-Za-z_$]`)
	requireCall       = regexp.MustCompile(`\brequire\(\s*['"]`)
)

// DetectPatterns infers convention hints from existing code. A hint appears only
// when the code shows evidence for it, so an empty category leaves the matching
// transforms enabled.
func DetectPatterns(contents ...string) Patterns {
	code := strings.Join(contents, "\n")
	p := Patterns{}

	if camelDeclaration.MatchString(code) {
		p.Naming = append(p.Naming, HintCamelCase)
	}
	if pascalDeclaration.MatchString(code) {
		p.Naming = append(p.Naming, HintPascalCase)
	}

	if anyImportLine(code) {
		p.Structural = append(p.Structural, HintESModules)
	}
	if requireCall.MatchString(code) {
		p.Structural = append(p.Structural, HintCommonJS)
	}
	if classDeclaration.MatchString(code) {
		p.Structural = append(p.Structural, HintClasses)
	}

	if typeAnnotation.MatchString(code) {
		p.Style = append(p.Style, HintTypeAnnotations)
	}
	consts := len(constDeclaration.FindAllStringIndex(code, -1))
	lets := len(letDeclaration.FindAllStringIndex(code, -1))
	if consts > 0 && consts >= lets {
		p.Style = append(p.Style, HintPreferConst)
	}
	if strings.Contains(code, "=>") {
		p.Style = append(p.Style, HintArrowFunctions)
	}

	return p
}

// DetectPatternsInPath runs DetectPatterns over a file, or over every matching
// file below a directory
func DetectPatternsInPath(ctx context.Context, target string, extensions []string) (Patterns, error) {
	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return Patterns{}, errors.InputNotFoundError(target)
		}
		return Patterns{}, errors.FileSystemError("stat", target, err)
	}

	files := []string{target}
	if info.IsDir() {
		if files, err = collectFiles(ctx, target, extensions); err != nil {
			return Patterns{}, errors.FileSystemError("walk", target, err)
		}
	}

	contents := make([]string, 0, len(files))
	for _, file := range files {
		// #nosec G304 - files come from the user's target
		data, err := os.ReadFile(file)
		if err != nil {
			return Patterns{}, errors.FileSystemError("read", file, err)
		}
		contents = append(contents, string(data))
	}
	return DetectPatterns(contents...), nil
}

func anyImportLine(code string) bool {
	for _, line := range strings.Split(code, "\n") {
		if anyImport.MatchString(line) {
			return true
		}
	}
	return false
}

// Merge returns the union of two pattern sets, keeping first-seen order
func (p Patterns) Merge(other Patterns) Patterns {
	return Patterns{
		Naming:     mergeHints(p.Naming, other.Naming),
		Structural: mergeHints(p.Structural, other.Structural),
		Style:      mergeHints(p.Style, other.Style),
	}
}

// IsEmpty reports whether no hint is set
func (p Patterns) IsEmpty() bool {
	return len(p.Naming) == 0 && len(p.Structural) == 0 && len(p.Style) == 0
}

func mergeHints(a, b []string) []string {
	var out []string
	seen := make(map[string]bool, len(a)+len(b))
	for _, hint := range append(append([]string(nil), a...), b...) {
		if !seen[hint] {
			seen[hint] = true
			out = append(out, hint)
		}
	}
	return out
}
