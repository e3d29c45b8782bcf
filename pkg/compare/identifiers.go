package compare

import (
	"regexp"
	"strings"
)

var (
	declarationPattern = regexp.MustCompile(`\b(?:function|const|let|var)\s+([A-Za-z_$][\w$]*)`)
	callPattern        = regexp.MustCompile(`([A-Za-z_$][\w$]*)\s*\(`)
	loopOrCondition    = regexp.MustCompile(`\b(?:if|for|while)\b`)
	functionDecl       = regexp.MustCompile(`\bfunction\s+([A-Za-z_$][\w$]*)`)
	importSource       = regexp.MustCompile(`^\s*import\s+(?:[^'"]*?\s+from\s+)?['"]([^'"]+)['"]`)
	requireSource      = regexp.MustCompile(`\brequire\(\s*['"]([^'"]+)['"]\s*\)`)
)

// keywords that are followed by "(" in ordinary code but never name a callable
var nonCallable = map[string]bool{
	"function": true, "return": true, "typeof": true, "switch": true,
	"catch": true, "with": true, "await": true, "new": true, "delete": true,
	"void": true, "yield": true, "super": true, "import": true,
}

// ExtractIdentifiers scans each line for declaration-style names (function/const/let/var NAME)
// and then call-style names (NAME followed by "("). Lines mentioning if/for/while contribute
// declarations only. The scan is lexical and accepts false positives.
func ExtractIdentifiers(content string) []string {
	var ids []string
	for _, line := range strings.Split(content, "\n") {
		for _, m := range declarationPattern.FindAllStringSubmatch(line, -1) {
			ids = append(ids, m[1])
		}
		if loopOrCondition.MatchString(line) {
			continue
		}
		for _, m := range callPattern.FindAllStringSubmatch(line, -1) {
			if nonCallable[m[1]] {
				continue
			}
			ids = append(ids, m[1])
		}
	}
	return ids
}

// declaredFunctions lists names declared with the function keyword, first occurrence only
func declaredFunctions(content string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, m := range functionDecl.FindAllStringSubmatch(content, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	return names
}

// importedModules lists module specifiers from import statements and require calls
func importedModules(content string) []string {
	var mods []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(content, "\n") {
		var m []string
		if m = importSource.FindStringSubmatch(line); m == nil {
			m = requireSource.FindStringSubmatch(line)
		}
		if m != nil && !seen[m[1]] {
			seen[m[1]] = true
			mods = append(mods, m[1])
		}
	}
	return mods
}

func unique(items []string) []string {
	var out []string
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
