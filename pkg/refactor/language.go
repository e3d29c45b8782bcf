package refactor

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the files a directory refactor rewrites when none are configured
var DefaultExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx"}

var extensionLanguages = map[string]string{
	".js":    "JavaScript",
	".jsx":   "JavaScript",
	".mjs":   "JavaScript",
	".cjs":   "JavaScript",
	".ts":    "TypeScript",
	".tsx":   "TypeScript",
	".go":    "Go",
	".java":  "Java",
	".kt":    "Kotlin",
	".rs":    "Rust",
	".php":   "PHP",
	".c":     "C",
	".h":     "C",
	".cpp":   "C++",
	".cc":    "C++",
	".hpp":   "C++",
	".cs":    "C#",
	".swift": "Swift",
	".scala": "Scala",
	".dart":  "Dart",
	".py":    "Python",
	".rb":    "Ruby",
	".sh":    "Shell",
	".lua":   "Lua",
}

// languages whose blocks are delimited by { and }
var braceLanguages = map[string]bool{
	"JavaScript": true, "TypeScript": true, "Go": true, "Java": true, "Kotlin": true,
	"Rust": true, "PHP": true, "C": true, "C++": true, "C#": true, "Swift": true,
	"Scala": true, "Dart": true,
}

// LanguageOf names the language of path by extension, or "" when unknown
func LanguageOf(path string) string {
	return extensionLanguages[strings.ToLower(filepath.Ext(path))]
}

// UsesBraces reports whether path is written in a brace-delimited language
func UsesBraces(path string) bool {
	return braceLanguages[LanguageOf(path)]
}

// skipped directory names during a directory walk
var ignoredDirs = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
}

// isBackupDir reports whether name is a snapshot left by a directory backup
func isBackupDir(name string) bool {
	return strings.Contains(name, ".backup.")
}

// collectFiles lists the files under root with one of the given extensions in
// lexical walk order, skipping hidden, dependency and backup directories
func collectFiles(ctx context.Context, root string, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	wanted := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		wanted[strings.ToLower(ext)] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), ".") || ignoredDirs[d.Name()] || isBackupDir(d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if wanted[strings.ToLower(filepath.Ext(path))] {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
