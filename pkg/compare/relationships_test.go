package compare

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectRenames(t *testing.T) {
	tests := []struct {
		name     string
		local    string
		baseline string
		expected []RelationshipRecord
	}{
		{
			name:     "suffix added",
			local:    "function getUserInfo2(id) {\n  return id;\n}",
			baseline: "function getUserInfo(id) {\n  return id;\n}",
			expected: []RelationshipRecord{{
				Kind:         MethodRename,
				OldReference: "getUserInfo",
				NewReference: "getUserInfo2",
				Confidence:   Similarity("getUserInfo2", "getUserInfo"),
				Description:  `Method "getUserInfo" appears to have been renamed to "getUserInfo2"`,
			}},
		},
		{
			name:     "unrelated names",
			local:    "function a() {}",
			baseline: "function xyz() {}",
			expected: nil,
		},
		{
			name:     "identical content",
			local:    "const total = compute(1);",
			baseline: "const total = compute(1);",
			expected: nil,
		},
		{
			name:     "new identifier next to existing ones",
			local:    "const total = compute(1);\nconst extra = 2;",
			baseline: "const total = compute(1);",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectRenames(tt.local, tt.baseline))
		})
	}
}

func TestDetectRenamesNeverBelowThreshold(t *testing.T) {
	local := "function fetchAll() {}\nfunction b() {}\nfunction loadUsers() {}"
	baseline := "function fetchAl() {}\nfunction q() {}\nfunction loadUser() {}"

	records := DetectRenames(local, baseline)
	require.NotEmpty(t, records)
	for _, r := range records {
		assert.Greater(t, r.Confidence, AcceptanceThreshold)
		assert.LessOrEqual(t, r.Confidence, 1.0)
		assert.Equal(t, MethodRename, r.Kind)
	}
}

func TestDetectRenamesTieGoesToEarliestBaseline(t *testing.T) {
	local := "function loadA() {}"
	baseline := "function loadB() {}\nfunction loadC() {}"

	records := DetectRenames(local, baseline)
	require.Len(t, records, 1)
	assert.Equal(t, "loadB", records[0].OldReference)
	assert.InDelta(t, 0.8, records[0].Confidence, 1e-9)
}

func TestDetectLogicChanges(t *testing.T) {
	baseline := "if (a) {\n  run();\n} else {\n  stop();\n}"
	local := "while (x) {\n  tick();\n}\nif (a) {\n  run();\n} else {\n  stop();\n}"

	records := DetectLogicChanges(local, baseline)
	require.Len(t, records, 3)

	assert.Equal(t, "if (a) {", records[0].OldReference)
	assert.Equal(t, "while (x) {", records[0].NewReference)
	assert.Equal(t, "Control flow modified: if (a) { -> while (x) {", records[0].Description)

	assert.Equal(t, "} else {", records[1].OldReference)
	assert.Equal(t, "if (a) {", records[1].NewReference)

	assert.Equal(t, "", records[2].OldReference)
	assert.Equal(t, "} else {", records[2].NewReference)
	assert.Equal(t, "Control flow added: } else {", records[2].Description)

	for _, r := range records {
		assert.Equal(t, LogicChange, r.Kind)
		assert.Equal(t, 0.9, r.Confidence)
	}
}

func TestDetectLogicChangesRemoved(t *testing.T) {
	baseline := "try {\n  risky();\n} catch (e) {\n}"
	local := "risky();"

	records := DetectLogicChanges(local, baseline)
	require.Len(t, records, 2)
	assert.Equal(t, "Control flow removed: try {", records[0].Description)
	assert.Equal(t, "Control flow removed: } catch (e) {", records[1].Description)
}

func TestDetectLogicChangesIgnoresIndentation(t *testing.T) {
	assert.Empty(t, DetectLogicChanges("    if (a) {", "if (a) {"))
}

func TestDetectDependencyChanges(t *testing.T) {
	baseline := "import React from 'react';\nconst fs = require('fs');"
	local := "import React from 'react';\nimport { z } from 'zod';"

	records := DetectDependencyChanges(local, baseline)
	require.Len(t, records, 2)

	assert.Equal(t, "fs", records[0].OldReference)
	assert.Equal(t, "Dependency removed: fs", records[0].Description)
	assert.Equal(t, "zod", records[1].NewReference)
	assert.Equal(t, "Dependency added: zod", records[1].Description)
	for _, r := range records {
		assert.Equal(t, DependencyChange, r.Kind)
		assert.Equal(t, 1.0, r.Confidence)
	}
}

func TestDetectMethodMoves(t *testing.T) {
	baseline := "function a() {}\nfunction b() {}\nfunction c() {}"
	local := "function b() {}\nfunction a() {}\nfunction c() {}\nfunction d() {}"

	records := DetectMethodMoves(local, baseline)
	require.Len(t, records, 2)

	assert.Equal(t, "a#1", records[0].OldReference)
	assert.Equal(t, "a#2", records[0].NewReference)
	assert.Equal(t, `Method "a" moved from position 1 to 2`, records[0].Description)
	assert.Equal(t, "b#2", records[1].OldReference)
	assert.Equal(t, "b#1", records[1].NewReference)
	for _, r := range records {
		assert.Equal(t, MethodMove, r.Kind)
		assert.Equal(t, 0.8, r.Confidence)
	}
}

func TestDetectMethodMovesIgnoresInsertions(t *testing.T) {
	baseline := "function a() {}\nfunction b() {}"
	local := "function helper() {}\nfunction a() {}\nfunction b() {}"

	assert.Empty(t, DetectMethodMoves(local, baseline))
}
