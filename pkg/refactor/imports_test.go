package refactor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImportedNames(t *testing.T) {
	tests := []struct {
		clause   string
		expected []string
	}{
		{"{ a, b }", []string{"a", "b"}},
		{"{ a as x, b }", []string{"x", "b"}},
		{"React", []string{"React"}},
		{"React, { useState }", []string{"useState", "React"}},
		{"* as fs", []string{"fs"}},
		{"Default, * as all", []string{"Default", "all"}},
		{"type { Props }", []string{"Props"}},
		{"{ type Props, b, }", []string{"Props", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.clause, func(t *testing.T) {
			assert.Equal(t, tt.expected, importedNames(tt.clause))
		})
	}
}

func TestRemoveUnusedImports(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
		lines    []int
	}{
		{
			name:     "one unused name drops the line",
			content:  "import { a, b } from 'm';\nconsole.log(a);",
			expected: "console.log(a);",
			lines:    []int{1},
		},
		{
			name:     "side-effect import stays",
			content:  "import './polyfill';\nrun();",
			expected: "import './polyfill';\nrun();",
		},
		{
			name:     "default and named both used",
			content:  "import React, { useState } from 'react';\nconst [s] = useState(React);",
			expected: "import React, { useState } from 'react';\nconst [s] = useState(React);",
		},
		{
			name:     "unused namespace",
			content:  "import * as fs from 'fs';\nconst x = 1;\n",
			expected: "const x = 1;\n",
			lines:    []int{1},
		},
		{
			name:     "mention in another import is not a use",
			content:  "import { a } from 'x';\nimport { b } from 'y';\nb();",
			expected: "import { b } from 'y';\nb();",
			lines:    []int{1},
		},
		{
			name:     "aliased name is what must be used",
			content:  "import { a as alpha } from 'x';\na();",
			expected: "a();",
			lines:    []int{1},
		},
		{
			name:     "substring is not a use",
			content:  "import { map } from 'x';\nmapper();",
			expected: "mapper();",
			lines:    []int{1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, lines := applyRemoveUnusedImports(tt.content, Patterns{})
			assert.Equal(t, tt.expected, out)
			assert.Equal(t, tt.lines, lines)
		})
	}
}

func TestOrganizeImports(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected string
		lines    []int
	}{
		{
			name:     "sorts and hoists",
			content:  "import b from 'b';\nconst x = 1;\nimport a from 'a';\n",
			expected: "import a from 'a';\nimport b from 'b';\n\nconst x = 1;\n",
			lines:    []int{1, 2, 3, 4},
		},
		{
			name:     "collapses blank lines after imports",
			content:  "import a from 'a';\n\n\n\nrun();",
			expected: "import a from 'a';\n\nrun();",
			lines:    []int{3, 4, 5},
		},
		{
			name:     "adds the separator",
			content:  "import a from 'a';\nrun();",
			expected: "import a from 'a';\n\nrun();",
			lines:    []int{2, 3},
		},
		{
			name:     "already organized",
			content:  "import a from 'a';\nimport b from 'b';\n\nrun();\n",
			expected: "import a from 'a';\nimport b from 'b';\n\nrun();\n",
		},
		{
			name:     "only imports",
			content:  "import b from 'b';\nimport a from 'a';\n",
			expected: "import a from 'a';\nimport b from 'b';\n",
			lines:    []int{1, 2},
		},
		{
			name:     "no imports",
			content:  "run();\n\nstop();\n",
			expected: "run();\n\nstop();\n",
		},
		{
			name:     "multi-line statement moves as one unit",
			content:  "import { z } from 'z';\nimport {\n  a,\n} from 'a';\nrun(a, z);",
			expected: "import {\n  a,\n} from 'a';\nimport { z } from 'z';\n\nrun(a, z);",
			lines:    []int{1, 2, 3, 4, 5, 6},
		},
		{
			name:     "multi-line statement already in place",
			content:  "import {\n  a,\n  b,\n} from 'y';\nimport { c } from 'c';\n\nuse(a, b, c);\n",
			expected: "import {\n  a,\n  b,\n} from 'y';\nimport { c } from 'c';\n\nuse(a, b, c);\n",
		},
		{
			name:     "unterminated statement is left alone",
			content:  "import b from 'b';\nimport {\n  a,\n",
			expected: "import b from 'b';\nimport {\n  a,\n",
		},
		{
			name:     "indented import is not top-level",
			content:  "import a from 'a';\n\nfunction f() {\n  import b from 'b';\n}",
			expected: "import a from 'a';\n\nfunction f() {\n  import b from 'b';\n}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, lines := applyOrganizeImports(tt.content, Patterns{})
			assert.Equal(t, tt.expected, out)
			assert.Equal(t, tt.lines, lines)
		})
	}
}

func TestOrganizeImportsIdempotent(t *testing.T) {
	inputs := []string{
		"import b from 'b';\nconst x = 1;\nimport a from 'a';\n",
		"const x = 1;\n\nimport z from 'z';\n\n\nimport y from 'y';\nrun(x);",
		"import a from 'a';",
		"\n\nimport c from 'c';\n\n",
		"",
		"no imports here",
		"run();\nimport {\n  b,\n} from 'b';\nimport a from 'a';\n",
	}

	for _, in := range inputs {
		once, _ := applyOrganizeImports(in, Patterns{})
		twice, lines := applyOrganizeImports(once, Patterns{})
		assert.Equal(t, once, twice, "input %q", in)
		assert.Empty(t, lines, "input %q", in)
	}
}
