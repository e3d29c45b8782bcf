package refactor

import (
	"regexp"
	"sort"
	"strings"
)

var (
	importStatement = regexp.MustCompile(`^\s*import\s+(.+?)\s+from\s+['"][^'"]+['"]\s*;?\s*$`)
	anyImport       = regexp.MustCompile(`^\s*import\s`)
	topLevelImport  = regexp.MustCompile(`^import\s`)
	// the line that closes an import statement: its module specifier ends it
	importEnd       = regexp.MustCompile(`(?:^import\s+|\bfrom\s+)['"][^'"]+['"]\s*;?\s*$`)
	namespaceImport = regexp.MustCompile(`^\*\s+as\s+([A-Za-z_$][\w$]*)$`)
	bindingName     = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)
)

// importedNames extracts the local names an import clause binds:
// a default name, a brace list (honoring "as" aliases), a namespace, or a
// default followed by either of the others
func importedNames(clause string) []string {
	clause = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(clause), "type "))

	var names []string
	if open := strings.Index(clause, "{"); open >= 0 {
		end := strings.LastIndex(clause, "}")
		if end < open {
			return nil
		}
		for _, spec := range strings.Split(clause[open+1:end], ",") {
			spec = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(spec), "type "))
			if spec == "" {
				continue
			}
			if parts := strings.Fields(spec); len(parts) == 3 && parts[1] == "as" {
				spec = parts[2]
			}
			if bindingName.MatchString(spec) {
				names = append(names, spec)
			}
		}
		clause = strings.TrimSpace(clause[:open])
	}

	for _, part := range strings.Split(clause, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if m := namespaceImport.FindStringSubmatch(part); m != nil {
			names = append(names, m[1])
		} else if bindingName.MatchString(part) {
			names = append(names, part)
		}
	}
	return names
}

// applyRemoveUnusedImports drops every import line binding a name that is never
// referenced outside import lines. Side-effect imports bind nothing and stay.
func applyRemoveUnusedImports(content string, _ Patterns) (string, []int) {
	lines, trailing := splitLines(content)

	var code []string
	for _, line := range lines {
		if !anyImport.MatchString(line) {
			code = append(code, line)
		}
	}
	used := identifierSet(strings.Join(code, "\n"))

	var kept []string
	var removed []int
	for i, line := range lines {
		if m := importStatement.FindStringSubmatch(line); m != nil && !allUsed(importedNames(m[1]), used) {
			removed = append(removed, i+1)
			continue
		}
		kept = append(kept, line)
	}
	if len(removed) == 0 {
		return content, nil
	}
	return joinLines(kept, trailing && len(kept) > 0), removed
}

func allUsed(names []string, used map[string]bool) bool {
	for _, name := range names {
		if !used[name] {
			return false
		}
	}
	return true
}

// applyOrganizeImports sorts the top-level import statements, moves them to the
// top and separates them from the rest of the file by exactly one blank line. A
// statement spanning several lines moves as one unit. The order of everything
// else is kept.
func applyOrganizeImports(content string, _ Patterns) (string, []int) {
	lines, trailing := splitLines(content)

	var imports [][]string
	var rest []string
	for i := 0; i < len(lines); i++ {
		if !topLevelImport.MatchString(lines[i]) {
			rest = append(rest, lines[i])
			continue
		}

		end := i
		for end < len(lines) && !importEnd.MatchString(lines[end]) {
			end++
		}
		if end == len(lines) {
			// an unterminated statement cannot be moved safely
			return content, nil
		}
		imports = append(imports, lines[i:end+1])
		i = end
	}
	if len(imports) == 0 {
		return content, nil
	}

	sort.SliceStable(imports, func(i, j int) bool {
		return strings.Join(imports[i], "\n") < strings.Join(imports[j], "\n")
	})

	for len(rest) > 0 && strings.TrimSpace(rest[0]) == "" {
		rest = rest[1:]
	}

	var out []string
	for _, statement := range imports {
		out = append(out, statement...)
	}
	if len(rest) > 0 {
		out = append(out, "")
		out = append(out, rest...)
	}

	rewritten := joinLines(out, trailing)
	if rewritten == content {
		return content, nil
	}
	return rewritten, changedLines(lines, out)
}
