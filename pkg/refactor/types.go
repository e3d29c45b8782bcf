// Package refactor rewrites source files with an ordered chain of textual rules and
// refuses to persist rewrites that fail the logic-preservation guard.
package refactor

// ChangeKind classifies what a rule changed
type ChangeKind string

const (
	KindRename    ChangeKind = "rename"
	KindFormat    ChangeKind = "format"
	KindImport    ChangeKind = "import"
	KindStructure ChangeKind = "structure"
)

// RefactoringChange records one rule that changed one file
type RefactoringChange struct {
	File        string     `json:"file"`
	Kind        ChangeKind `json:"kind"`
	Rule        string     `json:"rule"`
	Description string     `json:"description"`
	// LineNumbers are 1-based, relative to the content the rule received
	LineNumbers []int `json:"line_numbers"`
}

// RefactoringResult is the outcome of one Refactor call
type RefactoringResult struct {
	ID         string              `json:"id"`
	Files      []string            `json:"files"`
	Changes    []RefactoringChange `json:"changes"`
	BackupPath string              `json:"backup_path,omitempty"`
	DryRun     bool                `json:"dry_run,omitempty"`
}

// Patterns are advisory hints about the conventions of the code being refactored.
// Each hint is matched by substring against a fixed vocabulary.
type Patterns struct {
	Naming     []string `json:"naming" yaml:"naming"`
	Structural []string `json:"structural" yaml:"structural"`
	Style      []string `json:"style" yaml:"style"`
}

// Options controls a Refactor call
type Options struct {
	// Rules is the ordered rule chain; empty means DefaultRules
	Rules         []string
	PreserveLogic bool
	CreateBackup  bool
	// DryRun plans and reports changes without writing files or backups
	DryRun bool
}
